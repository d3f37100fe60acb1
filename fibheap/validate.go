package fibheap

import "fmt"

// validate walks the whole forest and checks structural invariants:
// heap order, ownership, parent/child consistency, degree counts, ring symmetry,
// the node/tree/mark counters and the minimum pointer.
// Complexity: O(n). Used by tests.
func (h *Heap) validate() error {
	if h.min == NilHandle {
		if h.n != 0 || h.trees != 0 || h.marked != 0 {
			return fmt.Errorf("empty heap with counters n=%d trees=%d marked=%d", h.n, h.trees, h.marked)
		}
		return nil
	}

	r := ring{h.arena}
	nodes := h.arena.nodes
	roots := r.collect(h.min, nil)
	if len(roots) != h.trees {
		return fmt.Errorf("trees=%d but root ring has %d", h.trees, len(roots))
	}

	count, marked := 0, 0
	var walk func(x, parent Handle) error
	walk = func(x, parent Handle) error {
		nd := nodes[x]
		if nd.state != stateLive {
			return fmt.Errorf("node %d reachable but detached", x)
		}
		if id := h.arena.ownerOf(x); id != h.id {
			return fmt.Errorf("node %d owned by heap %d, not %d", x, id, h.id)
		}
		if nd.parent != parent {
			return fmt.Errorf("node %d parent=%d want %d", x, nd.parent, parent)
		}
		if parent != NilHandle && nd.key < nodes[parent].key {
			return fmt.Errorf("heap order: node %d key %g < parent %d key %g", x, nd.key, parent, nodes[parent].key)
		}
		if l := h.arena.links[x]; h.arena.links[l.next].prev != x || h.arena.links[l.prev].next != x {
			return fmt.Errorf("ring asymmetry at node %d", x)
		}
		count++
		if nd.mark {
			marked++
		}
		children := r.collect(nd.child, nil)
		if len(children) != int(nd.degree) {
			return fmt.Errorf("node %d degree=%d but has %d children", x, nd.degree, len(children))
		}
		for _, c := range children {
			if err := walk(c, x); err != nil {
				return err
			}
		}
		return nil
	}

	for _, x := range roots {
		if nodes[x].key < nodes[h.min].key {
			return fmt.Errorf("min %d key %g but root %d has %g", h.min, nodes[h.min].key, x, nodes[x].key)
		}
		if err := walk(x, NilHandle); err != nil {
			return err
		}
	}
	if count != h.n {
		return fmt.Errorf("n=%d but forest has %d nodes", h.n, count)
	}
	if marked != h.marked {
		return fmt.Errorf("marked=%d but forest has %d marked", h.marked, marked)
	}

	return nil
}
