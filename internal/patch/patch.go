// Package patch defines a single tile's payload and the store that maps
// patch coordinates to patches.
package patch

import (
	"io"

	"github.com/patchworld/mrf/internal/item"
)

// Patch is a single n×n tile: its insertion-ordered item list, whether it
// has been fixed, and an opaque, caller-supplied payload D.
//
// Once Fixed is true, neither Items nor Data is mutated by this package
// again — that transition is one-way.
type Patch[D any] struct {
	Items []item.Item
	Fixed bool
	Data  D
}

// New returns a freshly initialized, unfixed, empty patch holding data's
// zero value.
func New[D any]() *Patch[D] {
	return &Patch[D]{Items: make([]item.Item, 0, 8)}
}

// NewWithData returns a freshly initialized, unfixed, empty patch whose
// payload is constructed via codec.New rather than left at Go's zero
// value. Callers whose D needs real setup beyond zero-init supply a
// codec; callers for whom the zero value already is a valid D pass nil
// and get exactly what New returns.
func NewWithData[D any](codec DataCodec[D]) *Patch[D] {
	p := New[D]()
	if codec != nil {
		p.Data = codec.New()
	}
	return p
}

// DataCodec is the contract a caller supplies for its opaque per-patch
// payload type D: construction of a fresh value, and a pair of
// (de)serialization operations taking an opaque "scribe" context the core
// never interprets. D itself carries no methods — Go value semantics
// already give "move" (assignment) and "drop" (garbage collection) for
// free, so DataCodec only needs to cover what Go cannot derive
// automatically: construction and wire encoding.
type DataCodec[D any] interface {
	// New returns a freshly constructed D for a patch materialized
	// without one loaded off the wire. It is never called on the decode
	// path, where Decode already produces a complete value.
	New() D
	Encode(w io.Writer, data D, scribe any) error
	Decode(r io.Reader, scribe any) (D, error)
}
