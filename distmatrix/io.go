package distmatrix

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// On-disk layout (little-endian, no version byte):
//
//	[int32 rows][int32 cols][float32 × rows×cols, row-major]
//
// Save may wrap the whole layout in a zstd or lz4 frame stream. Load sniffs
// the frame magic and decodes transparently.
const headerSize = 8

// Frame magics as they appear on disk.
var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// chunkEntries is the number of floats converted per buffered write/read.
const chunkEntries = 1 << 14

// Compression selects the stream codec used by Save.
type Compression uint8

const (
	// CompressionNone writes the raw layout.
	CompressionNone Compression = iota
	// CompressionLZ4 wraps the layout in an LZ4 frame (fast).
	CompressionLZ4
	// CompressionZSTD wraps the layout in a zstd frame (better ratio).
	CompressionZSTD
)

// String returns the configuration name of c.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression maps "none" (or ""), "lz4" and "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// countingWriter tracks bytes written for io.WriterTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo writes the raw layout to w.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(int32(m.rows)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(int32(m.cols)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return cw.n, fmt.Errorf("distmatrix: write header: %w", err)
	}

	buf := make([]byte, 4*min(len(m.data), chunkEntries))
	for off := 0; off < len(m.data); off += chunkEntries {
		part := m.data[off:min(off+chunkEntries, len(m.data))]
		for i, v := range part {
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
		}
		if _, err := bw.Write(buf[:4*len(part)]); err != nil {
			return cw.n, fmt.Errorf("distmatrix: write data: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("distmatrix: flush: %w", err)
	}

	return cw.n, nil
}

// ReadFrom reads the raw layout from r and replaces the receiver's shape and
// contents. On error the receiver is left unchanged.
func (m *Matrix) ReadFrom(r io.Reader) (int64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	fresh, n, err := readRaw(r)
	if err != nil {
		return n, err
	}
	*m = *fresh

	return n, nil
}

// readRaw decodes one matrix. The data slice grows chunk by chunk so a
// forged header cannot force a huge allocation before the data is seen.
func readRaw(r io.Reader) (*Matrix, int64, error) {
	var hdr [headerSize]byte
	n, err := io.ReadFull(r, hdr[:])
	total := int64(n)
	if err != nil {
		return nil, total, fmt.Errorf("%w: read header: %w", ErrCorrupt, err)
	}
	rows := int64(int32(binary.LittleEndian.Uint32(hdr[0:])))
	cols := int64(int32(binary.LittleEndian.Uint32(hdr[4:])))
	if err := checkShape(rows, cols); err != nil {
		return nil, total, fmt.Errorf("%w: header %dx%d: %w", ErrCorrupt, rows, cols, err)
	}

	want := int(rows * cols)
	data := make([]float32, 0, min(want, chunkEntries))
	buf := make([]byte, 4*min(want, chunkEntries))
	for len(data) < want {
		k := min(want-len(data), chunkEntries)
		n, err := io.ReadFull(r, buf[:4*k])
		total += int64(n)
		if err != nil {
			return nil, total, fmt.Errorf("%w: read data at entry %d of %d: %w", ErrCorrupt, len(data), want, err)
		}
		for i := 0; i < k; i++ {
			data = append(data, math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:])))
		}
	}

	return &Matrix{rows: int(rows), cols: int(cols), data: data}, total, nil
}

// Encode writes m to w through the given codec.
func (m *Matrix) Encode(w io.Writer, c Compression) error {
	switch c {
	case CompressionNone:
		_, err := m.WriteTo(w)
		return err
	case CompressionZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("distmatrix: zstd writer: %w", err)
		}
		if _, err := m.WriteTo(enc); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err := m.WriteTo(zw); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}

// Decode reads one matrix from r, detecting a zstd or lz4 frame by its magic.
func Decode(r io.Reader) (*Matrix, Compression, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, CompressionNone, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	switch {
	case bytes.Equal(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, CompressionZSTD, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		defer dec.Close()
		m, _, err := readRaw(dec)
		return m, CompressionZSTD, err
	case bytes.Equal(head, lz4Magic):
		m, _, err := readRaw(lz4.NewReader(br))
		return m, CompressionLZ4, err
	default:
		m, _, err := readRaw(br)
		return m, CompressionNone, err
	}
}

// Save writes m to path via a temporary file and an atomic rename, so a
// crash never leaves a half-written matrix under path. Options other than
// WithCompression and WithLogger are ignored.
func (m *Matrix) Save(path string, opts ...Option) (err error) {
	if m == nil {
		return ErrNilMatrix
	}
	cfg := buildOptions(opts)
	defer func() { cfg.Logger.LogSave(context.Background(), "distance matrix", path, err) }()

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFile, err)
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	if err := m.Encode(f, cfg.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrFile, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrFile, err)
	}

	return nil
}

// LoadFile reads a matrix written by Save (any compression).
// A path that cannot be opened reports ErrFile; bad content reports ErrCorrupt.
func LoadFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	defer f.Close()

	m, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("distmatrix: load %s: %w", path, err)
	}

	return m, nil
}

// Load replaces the receiver with the matrix stored at path. Nothing is
// merged: on success the previous shape and contents are gone, on failure
// the receiver is untouched.
func (m *Matrix) Load(path string) error {
	if m == nil {
		return ErrNilMatrix
	}
	fresh, err := LoadFile(path)
	if err != nil {
		return err
	}
	*m = *fresh

	return nil
}
