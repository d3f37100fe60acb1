package fibheap

// Validate exposes the forest invariant check to fibheap_test.
func Validate(h *Heap) error { return h.validate() }

// Degree exposes a node's child count to fibheap_test.
func Degree(h *Heap, x Handle) int { return int(h.arena.nodes[x].degree) }

// Parent exposes a node's parent handle to fibheap_test.
func Parent(h *Heap, x Handle) Handle { return h.arena.nodes[x].parent }

// IsMarked exposes a node's mark bit to fibheap_test.
func IsMarked(h *Heap, x Handle) bool { return h.arena.nodes[x].mark }
