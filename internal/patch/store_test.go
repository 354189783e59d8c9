package patch

import (
	"io"
	"testing"

	"github.com/patchworld/mrf/internal/geom"
)

type fakeCodec struct{ initial int }

func (c fakeCodec) New() int { return c.initial }

func (c fakeCodec) Encode(w io.Writer, data int, scribe any) error { return nil }

func (c fakeCodec) Decode(r io.Reader, scribe any) (int, error) { return 0, nil }

func TestGetOrMakeInsertsEmptyUnfixed(t *testing.T) {
	s := NewStore[int](4, nil)
	pos := geom.Position{X: 2, Y: -3}

	if _, ok := s.Get(pos); ok {
		t.Fatal("store should start empty")
	}

	p := s.GetOrMake(pos)
	if p.Fixed {
		t.Error("freshly made patch should not be fixed")
	}
	if len(p.Items) != 0 {
		t.Error("freshly made patch should have no items")
	}

	p2 := s.GetOrMake(pos)
	if p2 != p {
		t.Error("GetOrMake should return the same patch pointer on repeat calls")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d; want 1", s.Len())
	}
}

func TestGetOrMakeConstructsDataViaCodec(t *testing.T) {
	s := NewStore[int](4, fakeCodec{initial: 42})
	pos := geom.Position{X: 0, Y: 0}

	p := s.GetOrMake(pos)
	if p.Data != 42 {
		t.Errorf("GetOrMake with a codec gave Data = %d; want 42 from codec.New", p.Data)
	}

	p2 := s.GetOrMake(pos)
	if p2.Data != 42 {
		t.Error("GetOrMake on an existing patch should not re-run the codec")
	}
}

func TestSetInstallsPatchDirectly(t *testing.T) {
	s := NewStore[int](4, nil)
	pos := geom.Position{X: 5, Y: 5}
	p := New[int]()
	p.Fixed = true
	p.Data = 42

	s.Set(pos, p)

	got, ok := s.Get(pos)
	if !ok {
		t.Fatal("Set did not install the patch")
	}
	if got != p {
		t.Error("Get did not return the same pointer passed to Set")
	}
	if !got.Fixed || got.Data != 42 {
		t.Errorf("got %+v; want Fixed=true Data=42", got)
	}
}

func TestRangeStopsOnFalse(t *testing.T) {
	s := NewStore[int](4, nil)
	for i := int64(0); i < 5; i++ {
		s.GetOrMake(geom.Position{X: i, Y: 0})
	}

	visited := 0
	s.Range(func(geom.Position, *Patch[int]) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("Range visited %d patches after early stop; want 2", visited)
	}
}

func TestPositionsAreSortedXMajorThenY(t *testing.T) {
	s := NewStore[int](4, nil)
	unordered := []geom.Position{
		{X: 1, Y: 5}, {X: -2, Y: 0}, {X: 1, Y: -5}, {X: 0, Y: 0}, {X: -2, Y: 3},
	}
	for _, pos := range unordered {
		s.GetOrMake(pos)
	}

	positions := s.Positions()
	if len(positions) != len(unordered) {
		t.Fatalf("Positions returned %d entries; want %d", len(positions), len(unordered))
	}
	for i := 1; i < len(positions); i++ {
		if !positions[i-1].Less(positions[i]) {
			t.Errorf("Positions not strictly sorted at index %d: %v before %v", i, positions[i-1], positions[i])
		}
	}
}
