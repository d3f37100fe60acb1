// SPDX-License-Identifier: MIT

package fibheap

import "fmt"

// Heap is a Fibonacci min-heap over an Arena.
//
// The zero value is not usable; construct with New, NewWithCapacity or NewInArena.
// A Heap is not safe for concurrent use: give every goroutine its own instance.
type Heap struct {
	arena     *Arena
	ownsArena bool  // Reset may truncate the arena only when no other heap shares it
	id        int32 // owner id inside arena

	min    Handle // minimum root or NilHandle
	n      int    // live nodes
	trees  int    // roots in the root ring
	marked int    // marked nodes

	degrees []Handle // consolidate: degree -> root
	roots   []Handle // consolidate: root snapshot
}

// New returns an empty heap with a private arena.
// Complexity: O(1).
func New() *Heap {
	return NewWithCapacity(0)
}

// NewWithCapacity returns an empty heap whose private arena can hold
// capacity nodes before growing. Single-source runs size it to the vertex count.
func NewWithCapacity(capacity int) *Heap {
	h := NewInArena(NewArena(capacity))
	h.ownsArena = true

	return h
}

// NewInArena returns an empty heap allocating its nodes from a. Heaps sharing
// one arena merge in O(1) and keep their handles valid across Union.
func NewInArena(a *Arena) *Heap {
	return &Heap{arena: a, id: a.register(), min: NilHandle}
}

// Len returns the number of nodes in the heap.
func (h *Heap) Len() int { return h.n }

// Empty reports whether the heap holds no nodes.
func (h *Heap) Empty() bool { return h.min == NilHandle }

// Trees returns the number of trees on the root list.
func (h *Heap) Trees() int { return h.trees }

// Marked returns the number of marked nodes.
func (h *Heap) Marked() int { return h.marked }

// Arena returns the backing arena.
func (h *Heap) Arena() *Arena { return h.arena }

// Insert creates a singleton node and splices it into the root list.
// Complexity: O(1) actual.
func (h *Heap) Insert(key float64, payload int) Handle {
	x := h.arena.alloc(key, payload, h.id)
	if h.min == NilHandle {
		h.min = x
	} else {
		ring{h.arena}.insertAfter(h.min, x)
		if key < h.arena.nodes[h.min].key {
			h.min = x
		}
	}
	h.n++
	h.trees++

	return x
}

// Min returns the minimum entry without removing it.
func (h *Heap) Min() (key float64, payload int, ok bool) {
	if h.min == NilHandle {
		return 0, 0, false
	}
	n := h.arena.nodes[h.min]

	return n.key, n.payload, true
}

// owns reports whether x is a live node of this heap. A live handle of
// another heap in the same arena, or one moved away by Union, is rejected.
func (h *Heap) owns(x Handle) bool {
	return h.arena.live(x) && h.arena.ownerOf(x) == h.id
}

// Key returns the current key of a live node of h.
func (h *Heap) Key(x Handle) (float64, error) {
	if !h.owns(x) {
		return 0, fmt.Errorf("Key(%d): %w", x, ErrInvalidHandle)
	}

	return h.arena.nodes[x].key, nil
}

// Payload returns the payload of a node, live or extracted.
func (h *Heap) Payload(x Handle) (int, error) {
	if x < 0 || int(x) >= len(h.arena.nodes) {
		return 0, fmt.Errorf("Payload(%d): %w", x, ErrInvalidHandle)
	}

	return h.arena.nodes[x].payload, nil
}

// ExtractMin removes the minimum node and returns its key and payload.
// ok is false when the heap is empty.
//
// Implementation:
//   - Stage 1: promote the minimum's children to the root list.
//   - Stage 2: unlink the minimum and detach it.
//   - Stage 3: consolidate equal-degree trees and locate the new minimum.
//
// Complexity: O(log n) amortized; O(n) worst case on an insert-only heap.
func (h *Heap) ExtractMin() (key float64, payload int, ok bool) {
	z, next := h.unlinkMin()
	if z == NilHandle {
		return 0, 0, false
	}
	key, payload = h.arena.nodes[z].key, h.arena.nodes[z].payload
	h.arena.detach(z)

	if next == NilHandle {
		h.min = NilHandle
	} else {
		h.min = next
		h.consolidate()
	}

	return key, payload, true
}

// ExtractForDeletion unlinks the minimum exactly like ExtractMin but skips
// consolidation, so the reported "minimum" of later calls is an arbitrary root.
// It exists for draining a heap before bulk release; do not mix it with
// further priority operations on the same heap.
func (h *Heap) ExtractForDeletion() (key float64, payload int, ok bool) {
	z, next := h.unlinkMin()
	if z == NilHandle {
		return 0, 0, false
	}
	key, payload = h.arena.nodes[z].key, h.arena.nodes[z].payload
	h.arena.detach(z)
	h.min = next

	return key, payload, true
}

// Drain empties the heap through ExtractForDeletion, handing every remaining
// entry to fn (which may be nil), then releases the nodes.
func (h *Heap) Drain(fn func(key float64, payload int)) {
	for {
		k, p, ok := h.ExtractForDeletion()
		if !ok {
			break
		}
		if fn != nil {
			fn(k, p)
		}
	}
	h.Reset()
}

// Reset forgets every node. When the heap owns its arena the arena is
// truncated too, keeping its capacity for the next run. A heap sharing its
// arena takes a fresh id so the abandoned nodes no longer resolve to it.
func (h *Heap) Reset() {
	h.min = NilHandle
	h.n, h.trees, h.marked = 0, 0, 0
	if h.ownsArena {
		h.arena.Reset()
		return
	}
	h.id = h.arena.register()
}

// unlinkMin moves the minimum's children to the root list and removes the
// minimum from it. It returns the removed node and some remaining root.
func (h *Heap) unlinkMin() (z, next Handle) {
	z = h.min
	if z == NilHandle {
		return NilHandle, NilHandle
	}
	r := ring{h.arena}
	nodes := h.arena.nodes

	if c := nodes[z].child; c != NilHandle {
		// Every child becomes a root: clear parent and mark.
		x := c
		for {
			nodes[x].parent = NilHandle
			if nodes[x].mark {
				nodes[x].mark = false
				h.marked--
			}
			x = r.next(x)
			if x == c {
				break
			}
		}
		r.splice(z, c)
		h.trees += int(nodes[z].degree)
		nodes[z].child = NilHandle
		nodes[z].degree = 0
	}

	next = r.remove(z)
	h.trees--
	h.n--

	return z, next
}

// consolidate links roots of equal degree until all root degrees differ,
// then rebuilds the minimum pointer and the tree count.
func (h *Heap) consolidate() {
	nodes := h.arena.nodes
	h.roots = ring{h.arena}.collect(h.min, h.roots[:0])
	for i := range h.degrees {
		h.degrees[i] = NilHandle
	}

	var (
		x, y Handle
		d    int32
	)
	for _, w := range h.roots {
		x = w
		d = nodes[x].degree
		for {
			for int(d) >= len(h.degrees) {
				h.degrees = append(h.degrees, NilHandle)
			}
			y = h.degrees[d]
			if y == NilHandle {
				break
			}
			if nodes[y].key < nodes[x].key {
				x, y = y, x
			}
			h.link(y, x)
			h.degrees[d] = NilHandle
			d++
		}
		h.degrees[d] = x
	}

	h.min = NilHandle
	h.trees = 0
	for _, x = range h.degrees {
		if x == NilHandle {
			continue
		}
		nodes[x].parent = NilHandle
		h.trees++
		if h.min == NilHandle || nodes[x].key < nodes[h.min].key {
			h.min = x
		}
	}
}

// link makes root y a child of root x.
func (h *Heap) link(y, x Handle) {
	r := ring{h.arena}
	nodes := h.arena.nodes

	r.remove(y)
	if c := nodes[x].child; c == NilHandle {
		r.singleton(y)
		nodes[x].child = y
	} else {
		r.insertAfter(c, y)
	}
	nodes[y].parent = x
	nodes[x].degree++
	if nodes[y].mark {
		nodes[y].mark = false
		h.marked--
	}
}

// DecreaseKey lowers the key of x to newKey.
//
// Implementation:
//   - Stage 1: validate the handle and reject newKey > key (ErrKeyIncrease).
//   - Stage 2: if heap order with the parent breaks, cut x to the root list
//     and cascade cuts through marked ancestors; mark the first unmarked one.
//   - Stage 3: refresh the minimum pointer.
//
// Complexity: O(1) amortized.
func (h *Heap) DecreaseKey(x Handle, newKey float64) error {
	if !h.owns(x) {
		return fmt.Errorf("DecreaseKey(%d): %w", x, ErrInvalidHandle)
	}
	nodes := h.arena.nodes
	if newKey > nodes[x].key {
		return fmt.Errorf("DecreaseKey(%d): %g > %g: %w", x, newKey, nodes[x].key, ErrKeyIncrease)
	}
	nodes[x].key = newKey

	if p := nodes[x].parent; p != NilHandle && newKey < nodes[p].key {
		h.cut(x, p)
		h.cascadingCut(p)
	}
	if newKey < nodes[h.min].key {
		h.min = x
	}

	return nil
}

// cut moves x from the child list of p to the root list.
func (h *Heap) cut(x, p Handle) {
	r := ring{h.arena}
	nodes := h.arena.nodes

	rest := r.remove(x)
	if nodes[p].child == x {
		nodes[p].child = rest
	}
	nodes[p].degree--

	r.insertAfter(h.min, x)
	nodes[x].parent = NilHandle
	if nodes[x].mark {
		nodes[x].mark = false
		h.marked--
	}
	h.trees++
}

// cascadingCut walks up from y: marked ancestors are cut, the first unmarked
// non-root ancestor is marked and the walk stops.
func (h *Heap) cascadingCut(y Handle) {
	nodes := h.arena.nodes
	for {
		z := nodes[y].parent
		if z == NilHandle {
			return
		}
		if !nodes[y].mark {
			nodes[y].mark = true
			h.marked++
			return
		}
		h.cut(y, z)
		y = z
	}
}

// Union moves every node of other into h and leaves other empty.
//
// When both heaps share an Arena the root rings are spliced in O(1) and all
// handles stay valid. Otherwise the other forest is copied into h's arena in
// O(m) and handles issued by other are no longer usable. Either way, handles
// issued by other are rejected by later calls on other.
func (h *Heap) Union(other *Heap) {
	if other == nil || other == h || other.min == NilHandle {
		return
	}

	otherMin := other.min
	if other.arena != h.arena {
		otherMin = h.adopt(other)
	} else {
		h.arena.merge(other.id, h.id)
	}

	if h.min == NilHandle {
		h.min = otherMin
	} else {
		ring{h.arena}.splice(h.min, otherMin)
		if h.arena.nodes[otherMin].key < h.arena.nodes[h.min].key {
			h.min = otherMin
		}
	}
	h.n += other.n
	h.trees += other.trees
	h.marked += other.marked

	// other is consumed; its nodes now belong to h.
	other.min = NilHandle
	other.n, other.trees, other.marked = 0, 0, 0
	switch {
	case other.arena == h.arena:
		other.id = other.arena.register()
	case other.ownsArena:
		other.arena.Reset()
	}
}

// adopt copies the forest of o into h's arena and returns the new handle of
// o's minimum. The source nodes are detached afterwards.
func (h *Heap) adopt(o *Heap) Handle {
	src := o.arena
	srcRing := ring{src}

	remap := make(map[Handle]Handle, o.n)
	order := make([]Handle, 0, o.n)
	stack := srcRing.collect(o.min, make([]Handle, 0, o.trees))
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		remap[x] = h.arena.alloc(src.nodes[x].key, src.nodes[x].payload, h.id)
		order = append(order, x)
		if c := src.nodes[x].child; c != NilHandle {
			stack = srcRing.collect(c, stack)
		}
	}

	mapped := func(x Handle) Handle {
		if x == NilHandle {
			return NilHandle
		}
		return remap[x]
	}
	for _, x := range order {
		s := src.nodes[x]
		nx := remap[x]
		d := &h.arena.nodes[nx]
		d.parent = mapped(s.parent)
		d.child = mapped(s.child)
		d.degree = s.degree
		d.mark = s.mark
		sl := src.links[x]
		h.arena.links[nx] = link{prev: remap[sl.prev], next: remap[sl.next]}
	}
	newMin := remap[o.min]
	for _, x := range order {
		src.detach(x)
	}

	return newMin
}
