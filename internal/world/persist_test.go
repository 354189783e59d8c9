package world

import (
	"bytes"
	"testing"

	"github.com/patchworld/mrf/internal/geom"
)

func TestWriteToReadMapRoundTrip(t *testing.T) {
	m := newTestMap(8, 11)
	m.GetFixedNeighborhood(geom.Position{X: 0, Y: 0})
	m.GetFixedNeighborhood(geom.Position{X: 40, Y: -40})

	var buf bytes.Buffer
	if err := m.WriteTo(&buf, nil); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	loaded, err := ReadMap[int](&buf, m.ItemTypes(), nil, nil)
	if err != nil {
		t.Fatalf("ReadMap: %v", err)
	}

	if loaded.N() != m.N() {
		t.Errorf("N() = %d; want %d", loaded.N(), m.N())
	}
	if loaded.GibbsIterations() != m.GibbsIterations() {
		t.Errorf("GibbsIterations() = %d; want %d", loaded.GibbsIterations(), m.GibbsIterations())
	}

	before := m.GetItems(geom.Position{X: -1000, Y: -1000}, geom.Position{X: 1000, Y: 1000})
	after := loaded.GetItems(geom.Position{X: -1000, Y: -1000}, geom.Position{X: 1000, Y: 1000})
	if len(before) != len(after) {
		t.Fatalf("item count changed across round trip: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("item %d changed across round trip: %v vs %v", i, before[i], after[i])
		}
	}
}

func TestReadMapRejectsTruncatedStream(t *testing.T) {
	m := newTestMap(8, 1)
	m.GetFixedNeighborhood(geom.Position{X: 0, Y: 0})

	var buf bytes.Buffer
	if err := m.WriteTo(&buf, nil); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()/2])
	if _, err := ReadMap[int](truncated, m.ItemTypes(), nil, nil); err == nil {
		t.Error("ReadMap on a truncated stream should return an error")
	}
}

func TestSaveLoadFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/map.mrf"

	m := newTestMap(8, 5)
	m.GetFixedNeighborhood(geom.Position{X: 0, Y: 0})

	if err := m.SaveFile(path, nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	loaded, err := LoadMapFile[int](path, m.ItemTypes(), nil, nil)
	if err != nil {
		t.Fatalf("LoadMapFile: %v", err)
	}

	before := m.GetItems(geom.Position{X: -1000, Y: -1000}, geom.Position{X: 1000, Y: 1000})
	after := loaded.GetItems(geom.Position{X: -1000, Y: -1000}, geom.Position{X: 1000, Y: 1000})
	if len(before) != len(after) {
		t.Fatalf("item count changed across file round trip: %d vs %d", len(before), len(after))
	}
}
