package world

import (
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/patch"
)

// neighborhoodPositions returns the 2×2 block of patch positions that
// covers the n×n box centered on w — w's own patch plus the three
// neighbors adjacent to the quadrant w lies in — plus the index of w's
// own patch within that block.
//
//	offset.X < n/2, offset.Y < n/2   -> bottom-left quadrant of w's patch: index 1
//	offset.X < n/2, offset.Y >= n/2  -> top-left quadrant: index 3
//	offset.X >= n/2, offset.Y < n/2  -> bottom-right quadrant: index 0
//	offset.X >= n/2, offset.Y >= n/2 -> top-right quadrant: index 2
//
// The block's four positions are always laid out [corner, +right, +down,
// +right+down] relative to corner; since Down decreases Y, corner is the
// block's top-left patch.
func neighborhoodPositions(n uint32, w geom.Position) (positions [4]geom.Position, index int) {
	patchPos, offset := geom.WorldToPatchOffset(n, w)
	half := int64(n / 2)

	var corner geom.Position
	switch {
	case offset.X < half && offset.Y < half:
		corner, index = patchPos.Left(), 1
	case offset.X < half && offset.Y >= half:
		corner, index = patchPos.Left().Up(), 3
	case offset.X >= half && offset.Y < half:
		corner, index = patchPos, 0
	default:
		corner, index = patchPos.Up(), 2
	}

	positions[0] = corner
	positions[1] = corner.Right()
	positions[2] = corner.Down()
	positions[3] = positions[2].Right()
	return positions, index
}

// GetFixedNeighborhood materializes and fixes the 2×2 block of patches
// whose quadrants cover world position w, then returns the block. Every
// returned patch is fixed: its item contents will never change again.
// Calling this again for a w that maps to the same block is idempotent
// and performs no further PRNG draws once every patch in the block is
// already fixed.
func (m *Map[D]) GetFixedNeighborhood(w geom.Position) (index int, patches [4]*patch.Patch[D], positions [4]geom.Position) {
	positions, index = neighborhoodPositions(m.n, w)
	for i, pos := range positions {
		patches[i] = m.store.GetOrMake(pos)
	}
	m.fixPatches(patches[:], positions[:])
	return index, patches, positions
}

// GetNeighborhood is the read-only counterpart to GetFixedNeighborhood:
// it never materializes or fixes anything, returning only the patches
// that already exist in the 2×2 block. index is remapped to that patch's
// position within the compact result, or left at -1 if w's own patch is
// among the missing ones.
func (m *Map[D]) GetNeighborhood(w geom.Position) (count int, patches []*patch.Patch[D], positions []geom.Position, index int) {
	all, origIndex := neighborhoodPositions(m.n, w)
	index = -1
	for i, pos := range all {
		p, ok := m.store.Get(pos)
		if !ok {
			continue
		}
		if i == origIndex {
			index = len(patches)
		}
		patches = append(patches, p)
		positions = append(positions, pos)
	}
	return len(patches), patches, positions, index
}
