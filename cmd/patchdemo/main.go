// Command patchdemo exercises internal/world end to end: it builds a
// small demo catalog, fixes a handful of neighborhoods around the
// origin, and reports what landed where. It is developer tooling, not
// part of the library's contract.
package main

import (
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	const n = 16
	const gibbsIterations = 4
	const seed = 42

	types := buildDemoCatalog(seed, 4)
	slog.Info("demo catalog built", "types", len(types), "n", n, "gibbs_iterations", gibbsIterations)

	m := world.New[struct{}](n, gibbsIterations, types, nil, seed)
	m.SetLogger(logger)

	centers := []geom.Position{
		{X: 0, Y: 0},
		{X: n * 3, Y: 0},
		{X: 0, Y: n * 3},
		{X: -n * 2, Y: -n * 2},
	}

	for _, c := range centers {
		index, _, positions := m.GetFixedNeighborhood(c)
		slog.Info("fixed neighborhood", "center", c, "own_index", index, "block", positions)
	}

	bl := geom.Position{X: -n * 5, Y: -n * 5}
	tr := geom.Position{X: n * 5, Y: n * 5}
	items := m.GetItems(bl, tr)

	byType := make(map[uint32]int)
	for _, it := range items {
		byType[it.Type]++
	}

	slog.Info("demo run complete",
		"total_items", humanize.Comma(int64(len(items))),
		"items_by_type", byType,
	)
}
