// Command patchinspect loads a map previously written by
// world.Map.SaveFile, builds a SQLite index over its materialized
// patches, and prints a summary report. It is developer tooling, not
// part of the library's contract.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/patchworld/mrf/internal/catalog"
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/inspect"
	"github.com/patchworld/mrf/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	mapPath := flag.String("map", "", "path to a map file written by SaveFile")
	dbPath := flag.String("db", "", "path to the SQLite index to create")
	flag.Parse()

	if *mapPath == "" || *dbPath == "" {
		slog.Error("both -map and -db are required")
		os.Exit(1)
	}

	// The inspection index does not need to know what an item type
	// actually does, only how many there were; an empty catalog is fine
	// since LoadMapFile never evaluates ItemType methods.
	var types []catalog.ItemType

	m, err := world.LoadMapFile[struct{}](*mapPath, types, nil, nil)
	if err != nil {
		slog.Error("failed to load map", "path", *mapPath, "error", err)
		os.Exit(1)
	}
	slog.Info("map loaded", "path", *mapPath, "n", m.N(), "gibbs_iterations", m.GibbsIterations())

	idx, err := inspect.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open index", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer idx.Close()

	huge := int64(1) << 40
	bl := geom.Position{X: -huge, Y: -huge}
	tr := geom.Position{X: huge, Y: huge}
	if err := inspect.BuildFromMap(idx, m, bl, tr); err != nil {
		slog.Error("failed to build index", "error", err)
		os.Exit(1)
	}

	records, err := idx.Patches()
	if err != nil {
		slog.Error("failed to list patches", "error", err)
		os.Exit(1)
	}

	byType, err := idx.ItemsByType()
	if err != nil {
		slog.Error("failed to summarize items", "error", err)
		os.Exit(1)
	}

	totalItems := 0
	fixedCount := 0
	for _, r := range records {
		totalItems += r.ItemCount
		if r.Fixed {
			fixedCount++
		}
	}

	slog.Info("inspection summary",
		"run_id", idx.ID(),
		"patches", humanize.Comma(int64(len(records))),
		"fixed_patches", humanize.Comma(int64(fixedCount)),
		"items", humanize.Comma(int64(totalItems)),
		"items_by_type", byType,
	)
}
