package persist

import (
	"bufio"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// bufferSize is the write-buffer size wrapped around the zstd stream: a
// zstd encoder around the file, a buffered writer around that, and the
// raw wire format's own bytes written through both.
const bufferSize = 256 * 1024

// SaveFile creates (or truncates) path and runs write against a buffered,
// zstd-compressed stream over it. The stream written by write is exactly
// the uncompressed wire format — compression here is an outer envelope
// only, never part of the format itself.
func SaveFile(path string, write func(w *bufio.Writer) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", path, err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("persist: new zstd writer: %w", err)
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, bufferSize)
	if err := write(bw); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("persist: flush %s: %w", path, err)
	}
	return nil
}

// LoadFile opens path and runs read against a buffered, zstd-decompressed
// stream over it.
func LoadFile(path string, read func(r *bufio.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return fmt.Errorf("persist: new zstd reader: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, bufferSize)
	if err := read(br); err != nil {
		return fmt.Errorf("persist: read %s: %w", path, err)
	}
	return nil
}
