package fibheap

// ring performs circular doubly-linked list surgery over an Arena's link table.
// A ring is identified by any of its members; NilHandle is the empty ring.
type ring struct {
	a *Arena
}

// singleton makes x a one-element ring.
func (r ring) singleton(x Handle) {
	r.a.links[x] = link{prev: x, next: x}
}

// next returns the successor of x.
func (r ring) next(x Handle) Handle { return r.a.links[x].next }

// insertAfter links the singleton x right after at.
func (r ring) insertAfter(at, x Handle) {
	l := r.a.links
	nx := l[at].next
	l[x] = link{prev: at, next: nx}
	l[at].next = x
	l[nx].prev = x
}

// remove unlinks x and returns another member of the ring it left,
// or NilHandle if x was alone. x becomes a singleton.
func (r ring) remove(x Handle) Handle {
	l := r.a.links
	p, n := l[x].prev, l[x].next
	if n == x {
		return NilHandle
	}
	l[p].next = n
	l[n].prev = p
	l[x] = link{prev: x, next: x}

	return n
}

// splice concatenates the ring containing a with the ring containing b.
// Both must be non-empty and distinct. O(1).
func (r ring) splice(a, b Handle) {
	l := r.a.links
	an := l[a].next
	bp := l[b].prev
	l[a].next = b
	l[b].prev = a
	l[bp].next = an
	l[an].prev = bp
}

// collect appends every member of the ring starting at start to dst.
func (r ring) collect(start Handle, dst []Handle) []Handle {
	if start == NilHandle {
		return dst
	}
	x := start
	for {
		dst = append(dst, x)
		x = r.a.links[x].next
		if x == start {
			return dst
		}
	}
}
