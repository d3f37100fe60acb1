package patch

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap returns p as a roaring bitmap.
func (p Patch) Bitmap() *roaring.Bitmap {
	bm := roaring.New()
	for _, w := range p {
		bm.Add(uint32(w))
	}

	return bm
}

// Bitmaps returns one bitmap per patch, in radius order.
func (l List) Bitmaps() []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, len(l))
	for i, p := range l {
		out[i] = p.Bitmap()
	}

	return out
}

// Ring returns the vertices that enter at patch i: patch[i] minus patch[i-1].
// Ring(0) is patch[0].
func (l List) Ring(i int) (*roaring.Bitmap, error) {
	if i < 0 || i >= len(l) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPatchIndex, i, len(l))
	}
	cur := l[i].Bitmap()
	if i == 0 {
		return cur, nil
	}

	return roaring.AndNot(cur, l[i-1].Bitmap()), nil
}

// Nested reports whether every patch is a subset of the next one.
func (l List) Nested() bool {
	bms := l.Bitmaps()
	for i := 1; i < len(bms); i++ {
		if bms[i-1].AndCardinality(bms[i]) != bms[i-1].GetCardinality() {
			return false
		}
	}

	return true
}

// Overlap returns the Jaccard index |a ∩ b| / |a ∪ b| of two patches.
// Two empty patches overlap fully.
func Overlap(a, b Patch) float64 {
	ba, bb := a.Bitmap(), b.Bitmap()
	union := ba.OrCardinality(bb)
	if union == 0 {
		return 1
	}

	return float64(ba.AndCardinality(bb)) / float64(union)
}
