// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

// Remove deletes key from the tree and reports whether it was present.
// Mirrors raxRemove's two-phase cleanup: upward pruning of nodes left
// with no children and no key of their own, followed by re-compression
// of any chain of single-child non-key nodes the pruning (or the loss of
// a branching point) exposed.
//
// Remove consults the tree's Allocator while collecting the ancestor
// stack it needs for cleanup; if the allocator refuses to grow the
// stack past its inline capacity, Remove reports false without
// modifying the tree, the same as a key that was never found. This can
// only happen with a deliberately limiting Allocator (see FailAfter);
// the default Allocator never refuses.
func (t *Tree) Remove(key []byte) bool {
	matched, h, _, splitPos, stack, oom := t.lowWalk(key, true, t.alloc)
	if oom {
		return false
	}
	if matched != len(key) || (h.isCompressed && splitPos != 0) || !h.isKey {
		return false
	}
	h.clearKey()
	t.elements--

	tryCompress := false

	if h.size() == 0 {
		// The key's node has no children of its own: walk back up,
		// discarding nodes that existed only to lead here and hold no
		// key of their own, until a branching point, a key, or the
		// root is reached.
		var child *node
		for h != t.root {
			child = h
			parent, _ := stack.pop()
			h = parent
			if h.isKey || (!h.isCompressed && h.size() != 1) {
				break
			}
		}
		if child != nil {
			replacement := removeChild(h, child)
			if replacement != h {
				if h == t.root {
					t.root = replacement
				} else if grandparent, ok := stack.peek(); ok {
					idx := grandparent.childIndex(h)
					grandparent.children[idx] = replacement
				}
			}
			if replacement.size() == 1 && !replacement.isKey {
				tryCompress = true
				h = replacement
			}
		}
	} else if h.isCompressed || h.size() == 1 {
		// h kept a single onward path after losing its key: either it is
		// itself compressed (always exactly one child), or it is a normal
		// node that had just one child already. Either way that chain may
		// now be collapsible into h.
		tryCompress = true
	}

	if tryCompress {
		t.recompress(h, stack)
	}

	return true
}

// recompress implements raxRemove's re-compression pass: h is a
// non-key node with a single onward path (a normal node of size 1, or a
// compressed node) that may now be mergeable with its own chain of
// likewise-collapsible descendants, and possibly with collapsible
// ancestors above it reachable via stack.
func (t *Tree) recompress(h *node, stack *nodeStack) {
	var parent *node
	for {
		p, ok := stack.pop()
		if !ok {
			parent = nil
			break
		}
		if p.isKey || (!p.isCompressed && p.size() != 1) {
			parent = p
			break
		}
		h = p
	}
	start := h

	nodes := 1
	comprSize := start.size()
	for h.size() != 0 {
		next := h.children[0]
		h = next
		if h.isKey || (!h.isCompressed && h.size() != 1) {
			break
		}
		// Stop before the merged edge would exceed MaxCompressedEdge.
		if comprSize+h.size() > MaxCompressedEdge {
			break
		}
		nodes++
		comprSize += h.size()
	}
	if nodes <= 1 {
		return
	}

	var merged []byte
	cur := start
	for i := 0; i < nodes; i++ {
		merged = append(merged, cur.edges...)
		cur = cur.children[0]
	}

	replacement := &node{
		isCompressed: len(merged) > 1,
		edges:        merged,
		children:     []*node{h},
	}
	if parent == nil {
		t.root = replacement
	} else {
		idx := parent.childIndex(start)
		parent.children[idx] = replacement
	}
}
