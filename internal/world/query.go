package world

import (
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/item"
	"github.com/patchworld/mrf/internal/patch"
)

// GetState visits every materialized patch whose patch-coordinate lies
// within the closed rectangle spanned by bl and tr (given as world
// coordinates), in x-major-then-y order, stopping early if visit returns
// false. Patches that have never been materialized are simply absent
// from the walk — this is a read-only query and never inserts.
//
// This walks the store's materialized patches and filters by bounds,
// rather than iterating every patch coordinate in the rectangle: a
// caller's rectangle is often far larger than what has actually been
// touched (patchinspect's "index everything" use passes a near-unbounded
// rectangle), and the store itself is the only thing guaranteed to be
// small. The walk still visits patches in sorted order — via
// Store.Positions rather than Store.Range — so that two identically
// seeded and sequenced maps produce identical walks.
func (m *Map[D]) GetState(bl, tr geom.Position, visit func(*patch.Patch[D], geom.Position) bool) {
	blPatch := geom.WorldToPatch(m.n, bl)
	trPatch := geom.WorldToPatch(m.n, tr)

	for _, pos := range m.store.Positions() {
		if pos.X < blPatch.X || pos.X > trPatch.X || pos.Y < blPatch.Y || pos.Y > trPatch.Y {
			continue
		}
		p, _ := m.store.Get(pos)
		if !visit(p, pos) {
			return
		}
	}
}

// GetItems returns every item within the closed world-coordinate
// rectangle [bl, tr], drawn from whichever patches are already
// materialized. It does not fix or otherwise mutate anything.
func (m *Map[D]) GetItems(bl, tr geom.Position) []item.Item {
	var items []item.Item
	m.GetState(bl, tr, func(p *patch.Patch[D], pos geom.Position) bool {
		for _, it := range p.Items {
			if it.Location.X < bl.X || it.Location.X > tr.X {
				continue
			}
			if it.Location.Y < bl.Y || it.Location.Y > tr.Y {
				continue
			}
			items = append(items, it)
		}
		return true
	})
	return items
}

// GetPatchIfExists returns the patch at pos without materializing it,
// and whether it exists. This is the non-erroring counterpart to
// GetExistingPatch, for callers that treat absence as an ordinary case
// rather than a logic error.
func (m *Map[D]) GetPatchIfExists(pos geom.Position) (*patch.Patch[D], bool) {
	return m.store.Get(pos)
}

// GetExistingPatch returns the patch at pos, treating its absence as a
// logic error: it logs a diagnostic through the map's injectable sink
// and returns ErrPatchNotFound rather than inserting one.
func (m *Map[D]) GetExistingPatch(pos geom.Position) (*patch.Patch[D], error) {
	p, ok := m.store.Get(pos)
	if !ok {
		m.logger.Debug("world: GetExistingPatch on unmaterialized patch", "pos", pos)
		return nil, ErrPatchNotFound
	}
	return p, nil
}
