// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

// Tree is a compressed radix tree mapping byte-string keys to arbitrary
// values. The zero value is not usable; construct one with New. Mirrors
// rax.c's rax struct (head/numele/numnodes) and the teacher's tree/newArt
// shape (a small container wrapping the root plus bookkeeping counters).
type Tree struct {
	root     *node
	elements int
	alloc    Allocator
}

// New returns an empty tree that never reports allocation failure.
func New() *Tree {
	return NewWithAllocator(unlimitedAllocator{})
}

// NewWithAllocator returns an empty tree whose mutating operations
// consult alloc before growing the tree's storage, for tests that need
// to exercise the ErrOutOfMemory path deterministically (see FailAfter).
func NewWithAllocator(alloc Allocator) *Tree {
	return &Tree{root: newLeafNode(), alloc: alloc}
}

// Len reports the number of keys stored in the tree.
func (t *Tree) Len() int {
	return t.elements
}

// NumNodes reports the number of internal nodes currently backing the
// tree, exposed for the same debugging purpose as rax.c's numnodes
// field. Unlike rax.c's incrementally maintained counter, this walks the
// tree on demand: mutation paths that partially apply under allocation
// failure would otherwise be able to drift an incrementally maintained
// count out of sync with reality.
func (t *Tree) NumNodes() int {
	return countNodes(t.root)
}

func countNodes(n *node) int {
	total := 1
	for _, c := range n.children {
		total += countNodes(c)
	}
	return total
}

// Find looks up key and reports whether it is present. A key inserted
// with a nil value is found with (nil, true), same as any other key.
func (t *Tree) Find(key []byte) (interface{}, bool) {
	matched, h, _, splitPos, _, _ := t.lowWalk(key, false, unlimitedAllocator{})
	if matched != len(key) || (h.isCompressed && splitPos != 0) {
		return nil, false
	}
	return h.getValue()
}

// Clear discards every key, resetting the tree to the state New returns.
func (t *Tree) Clear() {
	t.root = newLeafNode()
	t.elements = 0
}

// WalkFunc is called once per key during Walk, in ascending key order.
// Returning false stops the walk early.
type WalkFunc func(key []byte, value interface{}) bool

// Walk performs an in-order traversal of every key in the tree, calling
// fn for each one. It is a thin convenience layered on top of the
// iterator rather than a second traversal implementation, mirroring how
// the teacher's Each/eachHelper is just a recursive descent kept
// separate from Search/Insert/Delete.
func (t *Tree) Walk(fn WalkFunc) {
	it := t.Iterator()
	if ok, _ := it.Seek(SeekFirst, nil); !ok {
		return
	}
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			return
		}
	}
}
