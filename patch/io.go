package patch

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// On-disk layout (little-endian):
//
//	[uint64 vertexCount][uint64 patchesPerVertex]
//	for each vertex, for each patch: [uint64 patchSize][int32 × patchSize vertex ids]
const (
	maxVertices = math.MaxInt32
	maxPatches  = 1 << 16
)

// Write encodes lists to w. All lists must have the same length.
func Write(w io.Writer, lists []List) (int64, error) {
	per, err := patchesPerVertex(lists)
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	var b8 [8]byte
	putU64 := func(x uint64) error {
		binary.LittleEndian.PutUint64(b8[:], x)
		_, err := bw.Write(b8[:])
		return err
	}

	if err := putU64(uint64(len(lists))); err != nil {
		return cw.n, err
	}
	if err := putU64(uint64(per)); err != nil {
		return cw.n, err
	}
	var b4 [4]byte
	for _, l := range lists {
		for _, p := range l {
			if err := putU64(uint64(len(p))); err != nil {
				return cw.n, err
			}
			for _, id := range p {
				binary.LittleEndian.PutUint32(b4[:], uint32(int32(id)))
				if _, err := bw.Write(b4[:]); err != nil {
					return cw.n, err
				}
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return cw.n, err
	}

	return cw.n, nil
}

// Read decodes lists written by Write.
func Read(r io.Reader) ([]List, error) {
	br := bufio.NewReader(r)
	var b8 [8]byte
	getU64 := func(what string) (uint64, error) {
		if _, err := io.ReadFull(br, b8[:]); err != nil {
			return 0, fmt.Errorf("%w: read %s: %w", ErrCorrupt, what, err)
		}
		return binary.LittleEndian.Uint64(b8[:]), nil
	}

	nv, err := getU64("vertex count")
	if err != nil {
		return nil, err
	}
	per, err := getU64("patches per vertex")
	if err != nil {
		return nil, err
	}
	if nv > maxVertices || per > maxPatches {
		return nil, fmt.Errorf("%w: header %d vertices × %d patches", ErrCorrupt, nv, per)
	}

	lists := make([]List, 0, min(nv, 1<<16))
	var b4 [4]byte
	for v := uint64(0); v < nv; v++ {
		l := make(List, per)
		for i := range l {
			size, err := getU64("patch size")
			if err != nil {
				return nil, err
			}
			if size > maxVertices {
				return nil, fmt.Errorf("%w: vertex %d patch %d has size %d", ErrCorrupt, v, i, size)
			}
			p := make(Patch, 0, min(size, 1<<16))
			for k := uint64(0); k < size; k++ {
				if _, err := io.ReadFull(br, b4[:]); err != nil {
					return nil, fmt.Errorf("%w: read id: %w", ErrCorrupt, err)
				}
				id := int32(binary.LittleEndian.Uint32(b4[:]))
				if id < 0 {
					return nil, fmt.Errorf("%w: negative vertex id %d", ErrCorrupt, id)
				}
				p = append(p, int(id))
			}
			l[i] = p
		}
		lists = append(lists, l)
	}

	return lists, nil
}

// patchesPerVertex returns the common list length, or ErrRagged.
func patchesPerVertex(lists []List) (int, error) {
	per := 0
	if len(lists) > 0 {
		per = len(lists[0])
	}
	for v, l := range lists {
		if len(l) != per {
			return 0, fmt.Errorf("%w: vertex %d has %d patches, want %d", ErrRagged, v, len(l), per)
		}
	}

	return per, nil
}

// Save writes lists to path through a temporary file and an atomic rename.
func Save(path string, lists []List) error {
	if _, err := patchesPerVertex(lists); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFile, err)
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := Write(f, lists); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrFile, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrFile, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrFile, err)
	}

	return nil
}

// Load reads lists written by Save.
func Load(path string) ([]List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	defer f.Close()

	lists, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("patch: load %s: %w", path, err)
	}

	return lists, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
