package inspect

import (
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/item"
	"github.com/patchworld/mrf/internal/patch"
	"github.com/patchworld/mrf/internal/world"
)

// BuildFromMap walks every patch of m within [bl, tr] and replaces idx's
// contents with what it finds. Passing the widest rectangle the caller
// can afford indexes the whole materialized map; a narrower one indexes
// just a region of interest.
func BuildFromMap[D any](idx *Index, m *world.Map[D], bl, tr geom.Position) error {
	patches := make(map[geom.Position][]item.Item)
	fixed := make(map[geom.Position]bool)

	m.GetState(bl, tr, func(p *patch.Patch[D], pos geom.Position) bool {
		items := make([]item.Item, len(p.Items))
		copy(items, p.Items)
		patches[pos] = items
		fixed[pos] = p.Fixed
		return true
	})

	return idx.IndexPatches(patches, fixed)
}
