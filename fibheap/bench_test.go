// Package fibheap_test provides benchmarks for the Fibonacci heap.
// Over M inserts followed by M extractions the per-extraction cost must grow
// like log M, so ns/op of BenchmarkInsertExtract/M should grow slowly with M.
package fibheap_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/meshpatch/fibheap"
)

func BenchmarkInsertExtract(b *testing.B) {
	for _, m := range []int{1_000, 10_000, 100_000} {
		b.Run(fmt.Sprintf("M=%d", m), func(b *testing.B) {
			rng := rand.New(rand.NewSource(1))
			keys := make([]float64, m)
			for i := range keys {
				keys[i] = rng.Float64()
			}
			h := fibheap.NewWithCapacity(m)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for j, k := range keys {
					h.Insert(k, j)
				}
				for !h.Empty() {
					_, _, _ = h.ExtractMin()
				}
				h.Reset()
			}
		})
	}
}

// BenchmarkDecreaseKey mirrors a shortest-path run: all keys start at +Inf
// and are repeatedly lowered between extractions.
func BenchmarkDecreaseKey(b *testing.B) {
	const m = 10_000
	rng := rand.New(rand.NewSource(2))
	h := fibheap.NewWithCapacity(m)
	hs := make([]fibheap.Handle, m)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range hs {
			hs[j] = h.Insert(float64(m+j), j)
		}
		for !h.Empty() {
			k, _, _ := h.ExtractMin()
			for t := 0; t < 3; t++ {
				x := hs[rng.Intn(m)]
				if cur, err := h.Key(x); err == nil && cur > k {
					_ = h.DecreaseKey(x, k+(cur-k)*rng.Float64())
				}
			}
		}
		h.Reset()
	}
}
