// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

import "sort"

// node is the single representation backing both of the tree's node
// layouts (spec.md §3/§4.1). Which layout is in effect is selected by
// isCompressed:
//
//   - normal node (isCompressed == false): edges holds 0 or more
//     distinct bytes in strictly ascending order, and children holds one
//     child per edge at the matching index. len(edges) == 0 is a leaf.
//   - compressed node (isCompressed == true): edges holds a string of
//     two or more bytes representing a collapsed chain of single-child
//     nodes, and children holds exactly one entry, reached by matching
//     the whole string.
//
// A node may additionally be a key node (isKey), in which case it
// carries an associated value unless isNullValue is set, matching
// rax.c's iskey/isnull/size/data layout but using a Go slice-backed
// struct instead of a hand-packed variable-length allocation: Go's
// garbage collector and slice growth already give us the "grow without
// manual realloc" behavior spec.md §9's DESIGN NOTES calls out as the
// preferred alternative to raxReallocForData/raxNodeCurrentLength.
type node struct {
	isKey        bool
	isNullValue  bool
	isCompressed bool
	edges        []byte
	children     []*node
	value        interface{}
}

// newLeafNode returns an empty normal node with no children and no key.
func newLeafNode() *node {
	return &node{}
}

// newNormalNode allocates a normal node with room for size edges and
// size children, all zeroed, no value. Mirrors raxNewNode.
func newNormalNode(size int) *node {
	return &node{
		edges:    make([]byte, size),
		children: make([]*node, size),
	}
}

// size reports the number of edges at this node, interpreted per layout:
// for a normal node it is the child count; for a compressed node it is
// the length of the collapsed edge string.
func (n *node) size() int {
	return len(n.edges)
}

// isLeaf reports whether this node is a normal node with no children.
// Per invariant 3, a compressed node is never a leaf.
func (n *node) isLeaf() bool {
	return !n.isCompressed && len(n.edges) == 0
}

// setValue sets the node's associated value and marks it as a key node.
// If isNull is true, the value slot is treated as the distinguished null
// payload and no value is stored, matching raxSetData's isnull handling.
func (n *node) setValue(v interface{}, isNull bool) {
	n.isKey = true
	n.isNullValue = isNull
	if isNull {
		n.value = nil
	} else {
		n.value = v
	}
}

// getValue returns the node's associated value and whether it is a key
// node at all. A key node with the null value returns (nil, true).
func (n *node) getValue() (interface{}, bool) {
	if !n.isKey {
		return nil, false
	}
	if n.isNullValue {
		return nil, true
	}
	return n.value, true
}

// clearKey removes key status (and any value) from the node, without
// touching its children. Used by the deleter's first step.
func (n *node) clearKey() {
	n.isKey = false
	n.isNullValue = false
	n.value = nil
}

// findChild returns the child reached by edge byte c in a normal node,
// its index, and whether it was found. Edges are kept in ascending
// order (invariant 2), so a binary search suffices, matching the
// teacher's node16 lookup via sort.Search.
func (n *node) findChild(c byte) (child *node, idx int, ok bool) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i] >= c })
	if i < len(n.edges) && n.edges[i] == c {
		return n.children[i], i, true
	}
	return nil, -1, false
}

// childIndex returns the index of child within n's children, or -1 if
// not present. For a compressed node this is always 0 when child
// matches the sole child. Mirrors raxFindParentLink's linear scan.
func (n *node) childIndex(child *node) int {
	if n.isCompressed {
		if len(n.children) == 1 && n.children[0] == child {
			return 0
		}
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// addChild inserts a new empty leaf for edge byte c into n, preserving
// ascending edge order (invariant 2). n must not be compressed. Returns
// the new child and its index; the caller uses the index to address the
// child's slot directly (children is a slice, so the slot is stable
// until the next structural mutation of n).
//
// Mirrors raxAddChild, minus the hand-rolled memmove dance: append plus
// copy achieves the same ascending insertion using Go slice growth.
func (n *node) addChild(c byte, alloc Allocator) (child *node, idx int, ok bool) {
	if !alloc.Grow() {
		return nil, 0, false
	}
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i] >= c })

	n.edges = append(n.edges, 0)
	copy(n.edges[i+1:], n.edges[i:len(n.edges)-1])
	n.edges[i] = c

	child = newLeafNode()
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:len(n.children)-1])
	n.children[i] = child

	return child, i, true
}

// compress turns n, which must be an empty (size 0) normal node, into a
// compressed node whose edge string is s and whose single child is a
// freshly allocated empty leaf. n's key/value status, if any, is left
// untouched (it is still reachable through n itself, not the new
// child) exactly as raxCompressNode preserves it. Returns the new
// child.
func (n *node) compress(s []byte, alloc Allocator) (child *node, ok bool) {
	if !alloc.Grow() {
		return nil, false
	}
	child = newLeafNode()
	n.isCompressed = true
	n.edges = append([]byte(nil), s...)
	n.children = []*node{child}
	return child, true
}

// removeChild removes the edge and pointer for child from parent and
// returns the node that should replace parent in its own parent's link
// (it is the same pointer for a normal node, and a fresh empty normal
// node for a compressed parent, since removing a compressed node's only
// child can't leave a dangling compressed node per invariant 3).
// Mirrors raxRemoveChild.
func removeChild(parent *node, child *node) *node {
	if parent.isCompressed {
		replacement := newLeafNode()
		if parent.isKey {
			replacement.isKey = true
			replacement.isNullValue = parent.isNullValue
			replacement.value = parent.value
		}
		return replacement
	}

	idx := parent.childIndex(child)
	parent.edges = append(parent.edges[:idx], parent.edges[idx+1:]...)
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	return parent
}

// attachChild inserts an already-constructed child at the sorted position
// for edge byte c. Unlike addChild it does not allocate a fresh leaf: the
// caller supplies a subtree it has already built (used by the inserter
// when wiring the two branches produced by splitting a compressed node).
func (n *node) attachChild(c byte, child *node) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i] >= c })
	n.edges = append(n.edges, 0)
	copy(n.edges[i+1:], n.edges[i:len(n.edges)-1])
	n.edges[i] = c

	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:len(n.children)-1])
	n.children[i] = child
}

// wrapChild wraps child behind an edge string of bytes, returning child
// itself unchanged (and allocated == false) when bytes is empty rather
// than introducing a node for a zero-length hop. This is the building
// block the inserter uses to reattach the trailing portion of a
// compressed edge, or a new key's tail, after a split.
func wrapChild(bytes []byte, child *node) (n *node, allocated bool) {
	if len(bytes) == 0 {
		return child, false
	}
	n = &node{edges: append([]byte(nil), bytes...)}
	n.isCompressed = len(bytes) > 1
	n.children = []*node{child}
	return n, true
}

// splitCompressedEdge builds a node holding edges, the leading part of a
// compressed node being split, preserving iskey/value from the original
// as directed by spec.md §4.4 Case B step 2 / Case C step 2. If
// len(edges) == 1 the result is a normal single-edge node rather than a compressed one,
// since a length-1 compressed node must never exist (spec.md §4.1).
func splitCompressedEdge(edges []byte, iskey bool, isnull bool, value interface{}) *node {
	n := &node{edges: append([]byte(nil), edges...)}
	n.isCompressed = len(edges) > 1
	if iskey {
		n.isKey = true
		n.isNullValue = isnull
		n.value = value
	}
	return n
}
