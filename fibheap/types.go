// SPDX-License-Identifier: MIT

package fibheap

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by heap operations.
var (
	// ErrInvalidOperation is the root of every invalid-operation condition.
	ErrInvalidOperation = errors.New("fibheap: invalid operation")

	// ErrKeyIncrease indicates DecreaseKey was called with a key larger than the node's key.
	ErrKeyIncrease = fmt.Errorf("%w: new key is greater than current key", ErrInvalidOperation)

	// ErrInvalidHandle indicates the handle does not name a live node of the heap.
	ErrInvalidHandle = fmt.Errorf("%w: handle is not a live node of this heap", ErrInvalidOperation)
)

// Handle addresses a node inside an Arena.
type Handle int32

// NilHandle is the "no node" sentinel used for empty relations.
const NilHandle Handle = -1

// nodeState tracks whether a node is still owned by a heap.
type nodeState uint8

const (
	stateLive     nodeState = iota // linked into some heap's forest
	stateDetached                  // extracted; all relations cleared
)

// node is the per-entry record. Sibling links are kept apart in Arena.links
// and manipulated only through ring.
type node struct {
	key     float64 // priority (tentative distance)
	payload int     // caller data (vertex index)
	parent  Handle  // NilHandle for roots
	child   Handle  // any one child; NilHandle if degree == 0
	degree  int32   // number of children
	owner   int32   // id of the heap that inserted or adopted the node
	mark    bool    // lost a child since it last became a child
	state   nodeState
}

// link holds the two sibling neighbours of a node in its circular list.
type link struct {
	prev, next Handle
}

// Arena is the backing store for one or more heaps.
//
// Heaps created with NewInArena over the same Arena can be merged by Union in
// O(1) and keep every Handle valid. An Arena is not safe for concurrent use.
type Arena struct {
	nodes []node
	links []link

	// owners is a union-find forest over heap ids: a heap consumed by a
	// same-arena Union points at the heap that absorbed it.
	owners []int32
}

// NewArena returns an Arena with room for capacity nodes before growing.
// Complexity: O(capacity) for the allocation.
func NewArena(capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}

	return &Arena{
		nodes: make([]node, 0, capacity),
		links: make([]link, 0, capacity),
	}
}

// Len reports how many node slots have been allocated (live and detached).
func (a *Arena) Len() int { return len(a.nodes) }

// Reset releases every node in bulk while keeping the allocated capacity.
// All handles issued by the arena become invalid; heap ids stay registered.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
	a.links = a.links[:0]
}

// register issues a fresh heap id.
func (a *Arena) register() int32 {
	id := int32(len(a.owners))
	a.owners = append(a.owners, id)

	return id
}

// merge records that every node of heap from now belongs to heap into.
func (a *Arena) merge(from, into int32) { a.owners[from] = into }

// ownerOf resolves the heap id currently holding node h.
func (a *Arena) ownerOf(h Handle) int32 {
	id := a.nodes[h].owner
	for a.owners[id] != id {
		a.owners[id] = a.owners[a.owners[id]] // path halving
		id = a.owners[id]
	}
	a.nodes[h].owner = id

	return id
}

// alloc appends a singleton node owned by heap owner and returns its handle.
func (a *Arena) alloc(key float64, payload int, owner int32) Handle {
	h := Handle(len(a.nodes))
	a.nodes = append(a.nodes, node{
		key:     key,
		payload: payload,
		parent:  NilHandle,
		child:   NilHandle,
		owner:   owner,
	})
	a.links = append(a.links, link{prev: h, next: h})

	return h
}

// live reports whether h names a node that is still inside a heap.
func (a *Arena) live(h Handle) bool {
	return h >= 0 && int(h) < len(a.nodes) && a.nodes[h].state == stateLive
}

// detach clears all four relations of h and flags it as extracted.
func (a *Arena) detach(h Handle) {
	n := &a.nodes[h]
	n.parent, n.child = NilHandle, NilHandle
	n.degree = 0
	n.mark = false
	n.state = stateDetached
	a.links[h] = link{prev: h, next: h}
}
