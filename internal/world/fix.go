package world

import (
	"golang.org/x/exp/slices"

	"github.com/patchworld/mrf/internal/gibbs"
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/patch"
)

// fixPatches runs the fixing protocol over inputPatches at
// inputPositions: every already-fixed input patch is skipped when
// building the sampling-target set, but every input patch — fixed or
// not — ends up marked fixed when this returns.
//
// If every input patch is already fixed, this is a complete no-op: it
// neither materializes new patches nor draws from the PRNG, which is
// what makes GetFixedNeighborhood idempotent once a block is settled.
func (m *Map[D]) fixPatches(inputPatches []*patch.Patch[D], inputPositions []geom.Position) {
	var candidates []geom.Position
	anyUnfixed := false
	for i, p := range inputPatches {
		if p.Fixed {
			continue
		}
		anyUnfixed = true
		k := inputPositions[i]
		candidates = append(candidates,
			k.UpLeft(), k.Up(), k.UpRight(),
			k.Left(), k, k.Right(),
			k.DownLeft(), k.Down(), k.DownRight(),
		)
	}
	if !anyUnfixed {
		return
	}

	m.store.Reserve(len(candidates))
	slices.SortFunc(candidates, func(a, b geom.Position) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	candidates = slices.CompactFunc(candidates, func(a, b geom.Position) bool { return a == b })

	var targets []geom.Position
	for _, pos := range candidates {
		p := m.store.GetOrMake(pos)
		if p.Fixed {
			continue
		}
		targets = append(targets, pos)
	}

	if len(targets) > 0 {
		field := gibbs.New[D](m.cache, m.n, targets, m.store.Get)
		for i := uint32(0); i < m.gibbsIterations; i++ {
			field.Sweep(m.rng)
		}
	}

	for _, p := range inputPatches {
		p.Fixed = true
	}
}
