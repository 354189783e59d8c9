package gibbs

import (
	"testing"

	"github.com/patchworld/mrf/internal/catalog"
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/patch"
	"github.com/patchworld/mrf/internal/rng"
)

func newTestStore(n int) (*patch.Store[int], func(geom.Position) (*patch.Patch[int], bool)) {
	s := patch.NewStore[int](16, nil)
	return s, s.Get
}

func TestSweepSingleQuadrant(t *testing.T) {
	const n = 8
	store, lookup := newTestStore(n)
	pos := geom.Position{X: 0, Y: 0}
	store.GetOrMake(pos)

	types := []catalog.ItemType{catalog.Simple{Lambda: 1.0, Radius: 0, Energy: 0}}
	cache := catalog.NewInteractionCache(types, n)

	f := New[int](cache, n, []geom.Position{pos}, lookup)
	r := rng.New(1)
	f.Sweep(r)

	if f.Visits() != n*n {
		t.Errorf("Visits() = %d; want %d (exactly one quadrant per iteration, not four)", f.Visits(), n*n)
	}
}

func TestSweepPlacesOnlyWithinTargetPatch(t *testing.T) {
	const n = 8
	store, lookup := newTestStore(n)
	pos := geom.Position{X: -1, Y: 2}
	store.GetOrMake(pos)

	types := []catalog.ItemType{catalog.Simple{Lambda: 1e6, Radius: 0, Energy: 0}}
	cache := catalog.NewInteractionCache(types, n)

	f := New[int](cache, n, []geom.Position{pos}, lookup)
	r := rng.New(2)
	for i := 0; i < 5; i++ {
		f.Sweep(r)
	}

	p, _ := store.Get(pos)
	for _, it := range p.Items {
		patchPos := geom.WorldToPatch(n, it.Location)
		if patchPos != pos {
			t.Fatalf("item at %v belongs to patch %v, not target patch %v", it.Location, patchPos, pos)
		}
	}
}

func TestSweepIsDeterministic(t *testing.T) {
	const n = 8
	types := []catalog.ItemType{catalog.Simple{Lambda: 0.8, Radius: 2, Energy: 1.5}}

	run := func(seed uint32) []geom.Position {
		store, lookup := newTestStore(n)
		pos := geom.Position{X: 0, Y: 0}
		store.GetOrMake(pos)
		cache := catalog.NewInteractionCache(types, n)
		f := New[int](cache, n, []geom.Position{pos}, lookup)
		r := rng.New(seed)
		for i := 0; i < 10; i++ {
			f.Sweep(r)
		}
		p, _ := store.Get(pos)
		locs := make([]geom.Position, len(p.Items))
		for i, it := range p.Items {
			locs[i] = it.Location
		}
		return locs
	}

	a := run(42)
	b := run(42)
	if len(a) != len(b) {
		t.Fatalf("item counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("item %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
