package patch

import (
	"golang.org/x/exp/slices"

	"github.com/patchworld/mrf/internal/geom"
)

// Store maps patch coordinates to patches. Keys are unique by
// construction; Go's built-in map already gives O(1) expected lookup
// without a hand-rolled open-addressing scheme or an empty-position
// sentinel, so Store is a thin wrapper rather than a reimplementation of
// a hash map.
type Store[D any] struct {
	patches map[geom.Position]*Patch[D]
	codec   DataCodec[D]
}

// NewStore returns an empty store with initial bucket capacity for
// capacityHint entries. codec, if non-nil, constructs the payload for
// every patch GetOrMake materializes; pass nil when D's zero value is
// already a valid patch payload.
func NewStore[D any](capacityHint int, codec DataCodec[D]) *Store[D] {
	return &Store[D]{patches: make(map[geom.Position]*Patch[D], capacityHint), codec: codec}
}

// Get returns the patch at pos and whether it exists.
func (s *Store[D]) Get(pos geom.Position) (*Patch[D], bool) {
	p, ok := s.patches[pos]
	return p, ok
}

// GetOrMake returns the existing patch at pos, or inserts and returns a
// freshly initialized empty, unfixed patch if absent. A newly inserted
// patch's payload comes from the store's codec, if one was supplied.
func (s *Store[D]) GetOrMake(pos geom.Position) *Patch[D] {
	if p, ok := s.patches[pos]; ok {
		return p
	}
	p := NewWithData[D](s.codec)
	s.patches[pos] = p
	return p
}

// Set inserts p at pos directly, overwriting whatever was there. It
// exists for internal/world's persistence loader, which already has a
// fully formed patch to install rather than an empty one to fill in.
func (s *Store[D]) Set(pos geom.Position, p *Patch[D]) {
	s.patches[pos] = p
}

// Reserve is a documented no-op: Go's map grows transparently on insert
// and exposes no pre-sizing hook after construction. It is kept as a
// call site so world.Map's fixing protocol has somewhere to express its
// bulk-reservation intent, even though there is nothing for it to do
// here.
func (s *Store[D]) Reserve(additional int) {}

// Len returns the number of patches currently in the store.
func (s *Store[D]) Len() int { return len(s.patches) }

// Range calls visit for every (position, patch) pair in the store in
// unspecified order, stopping early if visit returns false. Go's map
// iteration order is randomized per run and not even stable across two
// iterations of the same map, so callers that need a reproducible walk
// must use Positions instead.
func (s *Store[D]) Range(visit func(geom.Position, *Patch[D]) bool) {
	for pos, p := range s.patches {
		if !visit(pos, p) {
			return
		}
	}
}

// Positions returns every materialized patch coordinate, sorted x-major
// then y via geom.Position.Less. Callers that need a deterministic,
// repeatable walk over the store — range queries, serialization — use
// this instead of Range.
func (s *Store[D]) Positions() []geom.Position {
	positions := make([]geom.Position, 0, len(s.patches))
	for pos := range s.patches {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b geom.Position) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return positions
}
