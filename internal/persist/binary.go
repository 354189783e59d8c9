// Package persist provides the low-level binary encoding primitives and
// the compressed-file envelope that internal/world's codec builds on. It
// owns none of the map's own wire layout — that lives in
// internal/world/persist.go, which has the struct knowledge this package
// deliberately does not need.
package persist

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteUint32 writes v in the host's native byte order, matching
// encoding/binary.NativeEndian's use elsewhere in this codec — the wire
// format is not meant to be portable across architectures of differing
// endianness: no version header, native sizes throughout.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint32 reads a value written by WriteUint32.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(buf[:]), nil
}

// WriteUint64 writes v in the host's native byte order.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint64 reads a value written by WriteUint64.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// WriteInt64 writes v in the host's native byte order.
func WriteInt64(w io.Writer, v int64) error {
	return WriteUint64(w, uint64(v))
}

// ReadInt64 reads a value written by WriteInt64.
func ReadInt64(r io.Reader) (int64, error) {
	v, err := ReadUint64(r)
	return int64(v), err
}

// WriteBool writes v as a single byte.
func WriteBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadBool reads a value written by WriteBool.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

// WriteBytes writes b as a uint32 length prefix followed by the raw
// bytes — the length-prefixed form used for the PRNG state string.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteUint32(w, uint32(len(b))); err != nil {
		return fmt.Errorf("persist: write length prefix: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	if err != nil {
		return fmt.Errorf("persist: write bytes: %w", err)
	}
	return nil
}

// ReadBytes reads a value written by WriteBytes.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, fmt.Errorf("persist: read length prefix: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("persist: read bytes: %w", err)
	}
	return buf, nil
}
