// Package gibbs builds the conditional Markov Random Field over a set of
// target patches and performs single-site Gibbs sweeps over them, subject
// to per-item-type intensities and pairwise interactions supplied by
// internal/catalog. Each sweep picks exactly one quadrant per iteration
// within a target patch.
package gibbs

import (
	"math"

	"github.com/patchworld/mrf/internal/catalog"
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/item"
	"github.com/patchworld/mrf/internal/patch"
	"github.com/patchworld/mrf/internal/rng"
)

// Lookup resolves a patch position to its patch, if one has been
// materialized. It is satisfied by patch.Store[D].Get and deliberately
// does not distinguish fixed from unfixed patches: both conditioning
// neighbors and the mutable targets themselves are read through the same
// function, since a single-site update conditions on every other item
// currently present regardless of whether its patch is fixed yet.
type Lookup[D any] func(geom.Position) (*patch.Patch[D], bool)

// Field is the joint conditional MRF over the items that could lie in a
// set of target patches, given the patches currently materialized around
// them.
type Field[D any] struct {
	cache   *catalog.InteractionCache
	n       uint32
	targets []geom.Position
	lookup  Lookup[D]

	// visits counts single-site updates performed across all sweeps. It
	// exists as a diagnostic/test hook: a correct sweep performs exactly
	// n*n visits per target patch, one per quadrant draw, never more.
	visits uint64
}

// Visits returns the number of single-site updates performed so far.
func (f *Field[D]) Visits() uint64 { return f.visits }

// New builds a field over targets for tiles of side n, querying
// conditioning and target patch contents through lookup.
func New[D any](cache *catalog.InteractionCache, n uint32, targets []geom.Position, lookup Lookup[D]) *Field[D] {
	return &Field[D]{cache: cache, n: n, targets: targets, lookup: lookup}
}

// Sweep performs one full pass of single-site Gibbs updates over every
// target patch's cells.
func (f *Field[D]) Sweep(r *rng.LCG) {
	for _, pos := range f.targets {
		f.iterateNeighborhoods(pos, r)
	}
}

// quadrant identifies one of the four (n/2)×(n/2) partitions of a patch.
type quadrant int

const (
	quadBottomLeft quadrant = iota
	quadTopLeft
	quadBottomRight
	quadTopRight
)

// iterateNeighborhoods runs n*n single-site updates over patch pos,
// partitioned into quadrants whose conditioning neighbor sets only ever
// touch three of the patch's eight neighbors: each quadrant's interaction
// radius reaches at most n/2, so it cannot see past the quadrant
// diagonally opposite it.
func (f *Field[D]) iterateNeighborhoods(pos geom.Position, r *rng.LCG) {
	current, ok := f.lookup(pos)
	if !ok {
		return
	}

	top, hasTop := f.lookup(pos.Up())
	bottom, hasBottom := f.lookup(pos.Down())
	left, hasLeft := f.lookup(pos.Left())
	right, hasRight := f.lookup(pos.Right())
	topLeft, hasTopLeft := f.lookup(pos.UpLeft())
	topRight, hasTopRight := f.lookup(pos.UpRight())
	bottomLeft, hasBottomLeft := f.lookup(pos.DownLeft())
	bottomRight, hasBottomRight := f.lookup(pos.DownRight())

	bl := []*patch.Patch[D]{current}
	if hasLeft {
		bl = append(bl, left)
	}
	if hasBottom {
		bl = append(bl, bottom)
	}
	if hasBottomLeft {
		bl = append(bl, bottomLeft)
	}

	tl := []*patch.Patch[D]{current}
	if hasLeft {
		tl = append(tl, left)
	}
	if hasTop {
		tl = append(tl, top)
	}
	if hasTopLeft {
		tl = append(tl, topLeft)
	}

	br := []*patch.Patch[D]{current}
	if hasRight {
		br = append(br, right)
	}
	if hasBottom {
		br = append(br, bottom)
	}
	if hasBottomRight {
		br = append(br, bottomRight)
	}

	tr := []*patch.Patch[D]{current}
	if hasRight {
		tr = append(tr, right)
	}
	if hasTop {
		tr = append(tr, top)
	}
	if hasTopRight {
		tr = append(tr, topRight)
	}

	halfN := int64(f.n / 2)
	total := f.n * f.n
	for i := uint32(0); i < total; i++ {
		switch quadrant(r.Intn(4)) {
		case quadBottomLeft:
			lx, ly := r.Intn(int(halfN)), r.Intn(int(halfN))
			f.updateCell(current, pos, int64(lx), int64(ly), bl, r)
		case quadTopLeft:
			lx, ly := r.Intn(int(halfN)), r.Intn(int(halfN))+int(halfN)
			f.updateCell(current, pos, int64(lx), int64(ly), tl, r)
		case quadBottomRight:
			lx, ly := r.Intn(int(halfN))+int(halfN), r.Intn(int(halfN))
			f.updateCell(current, pos, int64(lx), int64(ly), br, r)
		case quadTopRight:
			lx, ly := r.Intn(int(halfN))+int(halfN), r.Intn(int(halfN))+int(halfN)
			f.updateCell(current, pos, int64(lx), int64(ly), tr, r)
		}
	}
}

// updateCell performs a single-site Gibbs update at local offset (lx, ly)
// within the patch at patchPos, conditioning on every item currently
// present in neighborhood (which always includes current itself).
func (f *Field[D]) updateCell(current *patch.Patch[D], patchPos geom.Position, lx, ly int64, neighborhood []*patch.Patch[D], r *rng.LCG) {
	f.visits++

	cellPos := geom.Position{
		X: patchPos.X*int64(f.n) + lx,
		Y: patchPos.Y*int64(f.n) + ly,
	}

	current.Items = removeItemAt(current.Items, cellPos)

	typeCount := f.cache.TypeCount()
	weights := make([]float64, typeCount+1) // index 0 == "no item"
	weights[0] = 1.0

	for t := 0; t < typeCount; t++ {
		energy := 0.0
		for _, p := range neighborhood {
			for _, other := range p.Items {
				if other.Location == cellPos {
					continue
				}
				dx := cellPos.X - other.Location.X
				dy := cellPos.Y - other.Location.Y
				radius := f.cache.ItemTypes()[t].InteractionRadius(other.Type)
				if radius == 0 {
					continue
				}
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				energy += f.cache.Energy(uint32(t), other.Type, dx, dy)
			}
		}
		weights[t+1] = f.cache.Intensity(uint32(t)) * math.Exp(-energy)
	}

	choice := categorical(weights, r)
	if choice == 0 {
		return
	}
	current.Items = append(current.Items, item.New(uint32(choice-1), cellPos))
}

// removeItemAt returns items with any entry at pos removed. At most one
// entry can exist at a given world position at a time within a single
// unfixed patch, since updateCell always removes before it (maybe)
// re-adds.
func removeItemAt(items []item.Item, pos geom.Position) []item.Item {
	for i, it := range items {
		if it.Location == pos {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// categorical draws an index from an unnormalized categorical distribution
// using r's next uniform draw.
func categorical(weights []float64, r *rng.LCG) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
