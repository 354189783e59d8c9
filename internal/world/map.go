// Package world exposes Map, the public facade over a patch-sharded
// Markov Random Field: lazy materialization, fixed-neighborhood queries,
// and the fixing protocol that runs Gibbs sweeps to commit a patch's
// items for good.
package world

import (
	"log/slog"

	"github.com/patchworld/mrf/internal/catalog"
	"github.com/patchworld/mrf/internal/patch"
	"github.com/patchworld/mrf/internal/rng"
)

// Map is the single-writer, non-concurrent-safe facade over a patch
// store. It owns the exclusive PRNG stream that makes every fixing
// operation reproducible from a seed: there is no internal
// synchronization, and callers sharing a Map across goroutines must
// provide their own.
type Map[D any] struct {
	store           *patch.Store[D]
	n               uint32
	gibbsIterations uint32
	types           []catalog.ItemType
	cache           *catalog.InteractionCache
	rng             *rng.LCG
	logger          *slog.Logger
	codec           patch.DataCodec[D]
}

// New constructs an empty map of n×n tiles. n must be even and at least
// 2, the quadrant-partitioned sampler's precondition — this is checked
// here, once, rather than on every sweep. gibbsIterations is
// the number of full sweeps fix_patches runs before committing a patch.
// If seed is omitted the generator starts from seed 1.
func New[D any](n, gibbsIterations uint32, types []catalog.ItemType, codec patch.DataCodec[D], seed ...uint32) *Map[D] {
	if n < 2 || n%2 != 0 {
		panic("world: n must be even and at least 2")
	}

	s := uint32(1)
	if len(seed) > 0 {
		s = seed[0]
	}

	return &Map[D]{
		store:           patch.NewStore[D](0, codec),
		n:               n,
		gibbsIterations: gibbsIterations,
		types:           types,
		cache:           catalog.NewInteractionCache(types, n),
		rng:             rng.New(s),
		logger:          slog.Default(),
		codec:           codec,
	}
}

// SetSeed reseeds the map's PRNG stream without otherwise touching the
// store. Later fixings draw from the new stream; already-fixed patches
// are unaffected, since their item contents never change once fixed.
func (m *Map[D]) SetSeed(seed uint32) {
	m.rng.Seed(seed)
}

// SetLogger replaces the map's diagnostic sink. The default is
// slog.Default(); library code never installs a process-wide logger of
// its own.
func (m *Map[D]) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// N returns the tile side length the map was constructed with.
func (m *Map[D]) N() uint32 { return m.n }

// GibbsIterations returns the number of sweeps each fixing performs.
func (m *Map[D]) GibbsIterations() uint32 { return m.gibbsIterations }

// ItemTypes returns the catalog the map was constructed with.
func (m *Map[D]) ItemTypes() []catalog.ItemType { return m.types }
