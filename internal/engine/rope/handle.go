package rope

import "sync/atomic"

// sharedNode is the reference-counted cell a SharedHandle points at.
type sharedNode struct {
	refs atomic.Int32
	node *Node
}

// SharedHandle is an atomically-cloneable, reference-counted pointer to a
// Node. Cloning a Rope clones its root SharedHandle: an O(1) atomic
// increment, no node data copied. Mutating code must call makeUnique
// before writing through a handle, so that a node with more than one
// handle pointing at it is never observed to change by any of its other
// holders (invariant 7, "COW discipline").
type SharedHandle struct {
	shared *sharedNode
}

// newHandle wraps n in a fresh, uniquely-owned handle.
func newHandle(n *Node) SharedHandle {
	s := &sharedNode{node: n}
	s.refs.Store(1)
	return SharedHandle{shared: s}
}

// Clone returns a new handle to the same node, bumping the strong count.
func (h SharedHandle) Clone() SharedHandle {
	if h.shared == nil {
		return h
	}
	h.shared.refs.Add(1)
	return h
}

// Node returns the handle's current node. Never mutate the result
// in place; go through makeUnique first.
func (h SharedHandle) Node() *Node {
	if h.shared == nil {
		return nil
	}
	return h.shared.node
}

// IsValid reports whether h points at a node at all.
func (h SharedHandle) IsValid() bool {
	return h.shared != nil
}

// isUnique reports whether h's node has a strong count of 1. Counts are
// never decremented (see StrongCount), so a false result can also mean
// the other handles are no longer reachable.
func (h SharedHandle) isUnique() bool {
	return h.shared != nil && h.shared.refs.Load() == 1
}

// StrongCount returns the number of handles created for this node
// (newHandle plus every Clone). Nothing decrements it, so handles that
// have since become unreachable are still counted. Exposed for tests (S6 checks that a clone's root is observably
// shared) and diagnostics; ordinary editing code has no need for it.
func (h SharedHandle) StrongCount() int32 {
	if h.shared == nil {
		return 0
	}
	return h.shared.refs.Load()
}

// makeUnique is the COW step (§4.3): it returns a handle guaranteed to be
// the only reference to its node, cloning one level deep if some other
// handle currently shares it. The returned *Node is always safe to
// mutate in place.
func makeUnique(h SharedHandle) (SharedHandle, *Node) {
	if h.shared == nil {
		n := newLeaf("")
		return newHandle(n), n
	}
	if h.isUnique() {
		return h, h.shared.node
	}
	clone := h.shared.node.shallowClone()
	return newHandle(clone), clone
}
