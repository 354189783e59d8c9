package world

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/patchworld/mrf/internal/catalog"
	"github.com/patchworld/mrf/internal/geom"
	"github.com/patchworld/mrf/internal/item"
	"github.com/patchworld/mrf/internal/patch"
	"github.com/patchworld/mrf/internal/persist"
	"github.com/patchworld/mrf/internal/rng"
)

// WriteTo encodes the map in the library's binary wire format: the
// PRNG's textual state, n, gibbs_iterations, then the patch store —
// count followed by (position, patch) pairs in x-major-then-y order,
// each patch as fixed · items · caller data. The per-patch data codec
// supplied to New delegates the data's own encoding; scribe is passed
// through to it uninterpreted.
//
// Patches are walked via Store.Positions, not Store.Range: two
// identically seeded and sequenced maps must produce identical
// serialized bytes, which a walk in Go's randomized map-iteration order
// cannot guarantee.
func (m *Map[D]) WriteTo(w io.Writer, scribe any) error {
	state, err := m.rng.MarshalText()
	if err != nil {
		return fmt.Errorf("world: marshal rng state: %w", err)
	}
	if err := persist.WriteBytes(w, state); err != nil {
		return err
	}
	if err := persist.WriteUint32(w, m.n); err != nil {
		return err
	}
	if err := persist.WriteUint32(w, m.gibbsIterations); err != nil {
		return err
	}

	if err := persist.WriteUint32(w, uint32(m.store.Len())); err != nil {
		return err
	}

	for _, pos := range m.store.Positions() {
		p, _ := m.store.Get(pos)
		if err := writePatch(w, pos, p, m.codec, scribe); err != nil {
			return err
		}
	}
	return nil
}

func writePatch[D any](w io.Writer, pos geom.Position, p *patch.Patch[D], codec patch.DataCodec[D], scribe any) error {
	if err := persist.WriteInt64(w, pos.X); err != nil {
		return err
	}
	if err := persist.WriteInt64(w, pos.Y); err != nil {
		return err
	}
	if err := persist.WriteBool(w, p.Fixed); err != nil {
		return err
	}
	if err := persist.WriteUint32(w, uint32(len(p.Items))); err != nil {
		return err
	}
	for _, it := range p.Items {
		if err := writeItem(w, it); err != nil {
			return err
		}
	}
	if codec != nil {
		if err := codec.Encode(w, p.Data, scribe); err != nil {
			return fmt.Errorf("world: encode patch data at %v: %w", pos, err)
		}
	}
	return nil
}

func writeItem(w io.Writer, it item.Item) error {
	if err := persist.WriteUint32(w, it.Type); err != nil {
		return err
	}
	if err := persist.WriteInt64(w, it.Location.X); err != nil {
		return err
	}
	if err := persist.WriteInt64(w, it.Location.Y); err != nil {
		return err
	}
	if err := persist.WriteUint64(w, it.CreationTime); err != nil {
		return err
	}
	if err := persist.WriteUint64(w, it.DeletionTime); err != nil {
		return err
	}
	return nil
}

// ReadMap decodes a map previously encoded by WriteTo. types and codec
// are supplied by the caller, not persisted — the item catalog and the
// per-patch data codec are external collaborators the format never
// serializes itself.
func ReadMap[D any](r io.Reader, types []catalog.ItemType, codec patch.DataCodec[D], scribe any) (*Map[D], error) {
	state, err := persist.ReadBytes(r)
	if err != nil {
		return nil, fmt.Errorf("world: read rng state: %w", err)
	}
	g := &rng.LCG{}
	if err := g.UnmarshalText(state); err != nil {
		return nil, fmt.Errorf("world: unmarshal rng state: %w", err)
	}

	n, err := persist.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("world: read n: %w", err)
	}
	gibbsIterations, err := persist.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("world: read gibbs_iterations: %w", err)
	}

	count, err := persist.ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("world: read patch count: %w", err)
	}

	m := &Map[D]{
		store:           patch.NewStore[D](int(count), codec),
		n:               n,
		gibbsIterations: gibbsIterations,
		types:           types,
		cache:           catalog.NewInteractionCache(types, n),
		rng:             g,
		logger:          slog.Default(),
		codec:           codec,
	}

	for i := uint32(0); i < count; i++ {
		pos, p, err := readPatch[D](r, codec, scribe)
		if err != nil {
			return nil, fmt.Errorf("world: read patch %d: %w", i, err)
		}
		m.store.Set(pos, p)
	}

	return m, nil
}

func readPatch[D any](r io.Reader, codec patch.DataCodec[D], scribe any) (geom.Position, *patch.Patch[D], error) {
	x, err := persist.ReadInt64(r)
	if err != nil {
		return geom.Position{}, nil, err
	}
	y, err := persist.ReadInt64(r)
	if err != nil {
		return geom.Position{}, nil, err
	}
	pos := geom.Position{X: x, Y: y}

	fixed, err := persist.ReadBool(r)
	if err != nil {
		return pos, nil, err
	}

	itemCount, err := persist.ReadUint32(r)
	if err != nil {
		return pos, nil, err
	}
	items := make([]item.Item, itemCount)
	for i := range items {
		it, err := readItem(r)
		if err != nil {
			return pos, nil, err
		}
		items[i] = it
	}

	p := patch.New[D]()
	p.Items = items
	p.Fixed = fixed
	if codec != nil {
		data, err := codec.Decode(r, scribe)
		if err != nil {
			return pos, nil, fmt.Errorf("decode patch data: %w", err)
		}
		p.Data = data
	}
	return pos, p, nil
}

func readItem(r io.Reader) (item.Item, error) {
	typ, err := persist.ReadUint32(r)
	if err != nil {
		return item.Item{}, err
	}
	x, err := persist.ReadInt64(r)
	if err != nil {
		return item.Item{}, err
	}
	y, err := persist.ReadInt64(r)
	if err != nil {
		return item.Item{}, err
	}
	created, err := persist.ReadUint64(r)
	if err != nil {
		return item.Item{}, err
	}
	deleted, err := persist.ReadUint64(r)
	if err != nil {
		return item.Item{}, err
	}
	return item.Item{
		Type:         typ,
		Location:     geom.Position{X: x, Y: y},
		CreationTime: created,
		DeletionTime: deleted,
	}, nil
}

// SaveFile wraps WriteTo in a buffered, zstd-compressed file at path.
func (m *Map[D]) SaveFile(path string, scribe any) error {
	return persist.SaveFile(path, func(w *bufio.Writer) error {
		return m.WriteTo(w, scribe)
	})
}

// LoadMapFile wraps ReadMap, reading a file previously written by SaveFile.
func LoadMapFile[D any](path string, types []catalog.ItemType, codec patch.DataCodec[D], scribe any) (*Map[D], error) {
	var m *Map[D]
	err := persist.LoadFile(path, func(r *bufio.Reader) error {
		loaded, err := ReadMap[D](r, types, codec, scribe)
		if err != nil {
			return err
		}
		m = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
