// Package fibheap provides a mergeable min-priority queue (Fibonacci heap)
// over (key, payload) pairs, built for Dijkstra-style shortest-path runs that
// need a true decrease-key instead of the "lazy duplicate push" strategy.
//
// Overview:
//
//   - Nodes live in an Arena: one growable slice of node records addressed by
//     integer Handle. There are no pointers between nodes, no recursive
//     destruction, and releasing a whole heap is a single slice truncation.
//   - Sibling lists (the root list and every child list) are circular,
//     doubly-linked rings over the arena. The ring type owns all link
//     surgery, so splice/insert/remove are O(1) index re-links.
//   - Heap keeps a handle to the minimum root plus node, tree and mark counts.
//
// Operations and complexity:
//
//   - Insert:             O(1) actual.
//   - Min:                O(1).
//   - ExtractMin:         O(log n) amortized (consolidates equal-degree trees).
//   - DecreaseKey:        O(1) amortized (cut + cascading cut).
//   - Union:              O(1) when both heaps share an Arena; O(m) re-homing otherwise.
//   - ExtractForDeletion: O(degree) actual, no consolidation; teardown only.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidOperation: root of every invalid-operation condition.
//   - ErrKeyIncrease:      DecreaseKey was given a key greater than the current key.
//   - ErrInvalidHandle:    the handle is out of range or already extracted.
//
// An empty heap is never an error: ExtractMin and Min report ok == false.
//
// Example:
//
//	h := fibheap.New()
//	a := h.Insert(5, 100)
//	h.Insert(3, 200)
//	_ = h.DecreaseKey(a, 1)
//	key, payload, _ := h.ExtractMin() // 1, 100
package fibheap
