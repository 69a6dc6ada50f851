// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

// MaxCompressedEdge bounds how many bytes a single compressed node's edge
// string may hold. spec.md leaves the exact value non-normative ("a few
// hundred bytes", mirroring rax.c's undocumented RAX_NODE_MAX_SIZE) and
// says only that it trades compression aggressiveness against how much a
// single node reallocation has to move; 256 is a round number with no
// further significance.
const MaxCompressedEdge = 256

// Insert associates value with key, overwriting any existing value. It
// reports whether the key was newly created (false means an existing
// key's value was replaced). A nil value is stored as the tree's null
// value marker rather than as an ordinary interface{} nil.
func (t *Tree) Insert(key []byte, value interface{}) (inserted bool, err error) {
	return t.genericInsert(key, value, true)
}

// TryInsert is like Insert but never overwrites an existing key: if key
// is already present, it reports (false, nil) and leaves the tree
// unchanged.
func (t *Tree) TryInsert(key []byte, value interface{}) (inserted bool, err error) {
	return t.genericInsert(key, value, false)
}

func (t *Tree) genericInsert(key []byte, value interface{}, overwrite bool) (bool, error) {
	isNull := value == nil
	alloc := t.alloc

	matched, h, pl, splitPos, _, _ := t.lowWalk(key, false, alloc)

	// Case A: the whole key was consumed and we did not stop in the
	// middle of a compressed node's edge, so h is exactly the key's
	// arrival point.
	if matched == len(key) && (!h.isCompressed || splitPos == 0) {
		if h.isKey {
			if !overwrite {
				return false, nil
			}
			h.setValue(value, isNull)
			return false, nil
		}
		h.setValue(value, isNull)
		t.elements++
		return true, nil
	}

	// Case B: the walk diverged from an existing byte partway through a
	// compressed node's edge, with more key bytes still to place.
	if h.isCompressed && matched != len(key) {
		if !t.splitOnMismatch(key, matched, h, pl, splitPos, value, isNull, alloc) {
			return false, ErrOutOfMemory
		}
		t.elements++
		return true, nil
	}

	// Case C: the key ran out while still inside a compressed node's
	// edge, i.e. the key is a proper prefix of that edge.
	if h.isCompressed && matched == len(key) {
		if !t.splitOnPrefix(h, pl, splitPos, value, isNull, alloc) {
			return false, ErrOutOfMemory
		}
		t.elements++
		return true, nil
	}

	// Case D: the walk ran off the tree at a normal node with key bytes
	// still remaining; append the missing suffix.
	if !t.appendSuffix(key, matched, h, value, isNull, alloc) {
		return false, ErrOutOfMemory
	}
	t.elements++
	return true, nil
}

// splitOnMismatch implements rax.c's ALGO 1: h is a compressed node whose
// edge diverges from key at splitPos. h's own continuation (its
// remaining edge bytes and its existing child) becomes one branch of a
// fresh normal node, optionally preceded by a node holding the shared
// prefix if splitPos > 0; the rest of key becomes the other branch,
// attached afterwards by the same logic appendSuffix uses for Case D so
// that a long remainder is still subject to MaxCompressedEdge.
func (t *Tree) splitOnMismatch(key []byte, matched int, h *node, pl link, splitPos int, value interface{}, isNull bool, alloc Allocator) bool {
	prefix := h.edges[:splitPos]
	oldByte := h.edges[splitPos]
	oldSuffix := h.edges[splitPos+1:]

	oldBranch, allocated := wrapChild(oldSuffix, h.children[0])
	if allocated && !alloc.Grow() {
		return false
	}

	if !alloc.Grow() {
		return false
	}
	splitNode := newNormalNode(0)
	splitNode.attachChild(oldByte, oldBranch)

	top := splitNode
	if splitPos > 0 {
		if !alloc.Grow() {
			return false
		}
		top = splitCompressedEdge(prefix, h.isKey, h.isNullValue, h.value)
		top.children = []*node{splitNode}
	} else if h.isKey {
		top.isKey = true
		top.isNullValue = h.isNullValue
		top.value = h.value
	}

	pl.set(top)

	return t.appendSuffix(key, matched, splitNode, value, isNull, alloc)
}

// splitOnPrefix implements rax.c's ALGO 2: key ends exactly splitPos
// bytes into h's edge. The prefix keeps whatever key/value h itself
// carried (its arrival point is unchanged); a new node placed right after
// the prefix becomes the arrival point for the key just inserted, with
// h's original remaining edge and child reattached beneath it.
func (t *Tree) splitOnPrefix(h *node, pl link, splitPos int, value interface{}, isNull bool, alloc Allocator) bool {
	prefix := h.edges[:splitPos]
	postfix := h.edges[splitPos:]

	tail, _ := wrapChild(postfix, h.children[0])
	if !alloc.Grow() {
		return false
	}
	tail.setValue(value, isNull)

	if !alloc.Grow() {
		return false
	}
	head := splitCompressedEdge(prefix, h.isKey, h.isNullValue, h.value)
	head.children = []*node{tail}

	pl.set(head)
	return true
}

// appendSuffix implements rax.c's trailing while loop: h is a normal
// node with no edge for key[matched], so the rest of key must be
// appended as new nodes. An empty normal node absorbs as much of the
// remaining string as a single compressed edge (bounded by
// MaxCompressedEdge); anything else is added a byte at a time.
func (t *Tree) appendSuffix(key []byte, matched int, h *node, value interface{}, isNull bool, alloc Allocator) bool {
	for matched < len(key) {
		if h.size() == 0 && len(key)-matched > 1 {
			n := len(key) - matched
			if n > MaxCompressedEdge {
				n = MaxCompressedEdge
			}
			child, ok := h.compress(key[matched:matched+n], alloc)
			if !ok {
				return false
			}
			h = child
			matched += n
		} else {
			child, _, ok := h.addChild(key[matched], alloc)
			if !ok {
				return false
			}
			h = child
			matched++
		}
	}
	h.setValue(value, isNull)
	return true
}
