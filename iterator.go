// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

import (
	"math/rand"
	"sort"
)

// SeekOp selects the relative position an Iterator seeks to. The zero
// value is SeekFirst.
type SeekOp int

const (
	// SeekFirst positions at the leftmost (smallest) key. Corresponds to
	// the "^" operator.
	SeekFirst SeekOp = iota
	// SeekLast positions at the rightmost (largest) key. Corresponds to
	// the "$" operator.
	SeekLast
	// SeekEQ positions at key if present, else EOF. Corresponds to "==".
	SeekEQ
	// SeekGE positions at the smallest key >= the given key. Corresponds
	// to ">=".
	SeekGE
	// SeekGT positions at the smallest key > the given key. Corresponds
	// to ">".
	SeekGT
	// SeekLE positions at the largest key <= the given key. Corresponds
	// to "<=".
	SeekLE
	// SeekLT positions at the largest key < the given key. Corresponds
	// to "<".
	SeekLT
)

// pathFrame records one ancestor on the path from the root to the
// iterator's current node: the ancestor itself, the index of the edge
// that was followed out of it (meaningful only for a normal node — a
// compressed node has exactly one child), and the length the key buffer
// had on arrival at the ancestor, i.e. before its own edge was
// consumed. Mirrors spec.md §4.6's "ancestor node and the index within
// the ancestor that leads to the next edge".
type pathFrame struct {
	node   *node
	idx    int
	keyLen int
}

// Iterator is a bidirectional, stack-based cursor over a Tree's keys in
// lexicographic order. The zero value is not usable; obtain one with
// (*Tree).Iterator. An Iterator must be positioned with Seek before
// Next or Prev produce meaningful results, and is invalidated by any
// mutation performed on the tree after positioning (spec.md §4.6,
// "Cancellation and resumption").
type Iterator struct {
	tree       *Tree
	key        []byte
	stack      []pathFrame
	node       *node
	eof        bool
	justSeeked bool
}

// Iterator returns a new, unpositioned iterator over t. Call Seek before
// Next or Prev.
func (t *Tree) Iterator() *Iterator {
	return &Iterator{tree: t, node: t.root}
}

func (it *Iterator) reset() {
	it.node = it.tree.root
	it.key = it.key[:0]
	it.stack = it.stack[:0]
	it.eof = false
	it.justSeeked = false
}

// Key returns a copy of the key at the iterator's current position. Its
// result is a snapshot: later iterator movement does not affect it.
func (it *Iterator) Key() []byte {
	return append([]byte(nil), it.key...)
}

// Value returns the value stored at the iterator's current position, or
// nil if the current node is not a key (e.g. after a Seek, Next or Prev
// that reported EOF).
func (it *Iterator) Value() interface{} {
	if it.eof {
		return nil
	}
	v, _ := it.node.getValue()
	return v
}

// moveToChild descends one level from the current node into child idx,
// pushing a path frame so the move can later be undone or its sibling
// explored.
func (it *Iterator) moveToChild(idx int) {
	n := it.node
	it.stack = append(it.stack, pathFrame{node: n, idx: idx, keyLen: len(it.key)})
	if n.isCompressed {
		it.key = append(it.key, n.edges...)
	} else {
		it.key = append(it.key, n.edges[idx])
	}
	it.node = n.children[idx]
}

func (it *Iterator) descendSmallest() { it.moveToChild(0) }

// descendLargest moves to the child that sorts last among the current
// node's children. A compressed node always has exactly one child no
// matter how long its edge string is, so it must use index 0 like
// descendSmallest; only a normal node's last edge is at len(edges)-1.
func (it *Iterator) descendLargest() {
	if it.node.isCompressed {
		it.moveToChild(0)
		return
	}
	it.moveToChild(len(it.node.edges) - 1)
}

func (it *Iterator) moveToParent() {
	f := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.key = it.key[:f.keyLen]
	it.node = f.node
}

// seekFirstKey moves forward from the current node (inclusive) to the
// smallest key at or below it, reporting whether one exists. A node's
// own key, if any, always precedes anything in its subtree, so it is
// checked before descending.
func (it *Iterator) seekFirstKey() bool {
	for {
		if it.node.isKey {
			return true
		}
		if len(it.node.children) == 0 {
			return false
		}
		it.descendSmallest()
	}
}

// seekLastKey moves forward from the current node (inclusive) to the
// largest key at or below it. A node's subtree, if any, always sorts
// after the node's own key, so descent is always preferred; only a
// childless node's own key can be the answer.
func (it *Iterator) seekLastKey() bool {
	for len(it.node.children) > 0 {
		it.descendLargest()
	}
	return it.node.isKey
}

// ascendForward pops path frames looking for an unexplored larger
// sibling. A compressed frame never has one (its node has exactly one
// child) and is skipped over. Returns true with it.node repositioned at
// the sibling subtree's root (not yet resolved to a key) if one is
// found.
func (it *Iterator) ascendForward() bool {
	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		it.key = it.key[:f.keyLen]
		if f.node.isCompressed {
			continue
		}
		if f.idx+1 < len(f.node.edges) {
			newIdx := f.idx + 1
			it.key = append(it.key, f.node.edges[newIdx])
			it.node = f.node.children[newIdx]
			it.stack = append(it.stack, pathFrame{node: f.node, idx: newIdx, keyLen: f.keyLen})
			return true
		}
	}
	return false
}

// ascendBackwardOnce pops path frames looking for an unexplored smaller
// sibling, descending to its largest key if found. If a frame has no
// smaller sibling, the frame's own node becomes the candidate (a node's
// key, if any, precedes everything already visited in its subtree via
// the larger-sibling path), landing there and returning immediately if
// it is a key, otherwise continuing to ascend.
func (it *Iterator) ascendBackwardOnce() bool {
	for len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		it.key = it.key[:f.keyLen]
		if !f.node.isCompressed && f.idx > 0 {
			newIdx := f.idx - 1
			it.key = append(it.key, f.node.edges[newIdx])
			it.node = f.node.children[newIdx]
			it.stack = append(it.stack, pathFrame{node: f.node, idx: newIdx, keyLen: f.keyLen})
			if it.seekLastKey() {
				return true
			}
			continue
		}
		it.node = f.node
		if f.node.isKey {
			return true
		}
	}
	return false
}

// Next advances to the lexicographically next key, reporting whether one
// exists. Per spec.md §4.6's worked examples (e.g. `seek("^", "") then
// next() == alien`), the first call after a Seek realizes the position
// Seek found rather than moving past it; later calls descend into the
// current node's own subtree first (everything there sorts after it),
// else climb the path stack for an unexplored larger sibling.
func (it *Iterator) Next() bool {
	if it.eof {
		return false
	}
	if it.justSeeked {
		it.justSeeked = false
		return true
	}
	if len(it.node.children) > 0 {
		it.descendSmallest()
		if it.seekFirstKey() {
			return true
		}
	}
	for it.ascendForward() {
		if it.seekFirstKey() {
			return true
		}
	}
	it.eof = true
	return false
}

// Prev advances to the lexicographically previous key, reporting whether
// one exists. Like Next, its first call after a Seek realizes the
// position Seek found. Unlike Next, it never descends into the current
// node's own subtree (everything there sorts after the current key); it
// climbs the path stack for an unexplored smaller sibling, taking its
// largest key, or for an ancestor that is itself a key.
func (it *Iterator) Prev() bool {
	if it.eof {
		return false
	}
	if it.justSeeked {
		it.justSeeked = false
		return true
	}
	it.justSeeked = false
	if it.ascendBackwardOnce() {
		return true
	}
	it.eof = true
	return false
}

// walkTo descends from the root following key, mirroring lowWalk but
// building the iterator's key buffer and ancestor stack (with sibling
// indices) as it goes instead of just counting matched bytes. It resets
// the iterator first. matched is how many bytes of key were consumed;
// atBoundary is false only when the walk stopped partway through a
// compressed node's edge (key exhausted as a proper prefix of that
// edge), in which case it.node's own key status describes a shorter,
// unrelated string and must not be trusted for key itself.
func (it *Iterator) walkTo(key []byte) (matched int, atBoundary bool) {
	it.reset()
	h := it.tree.root
	i := 0
	for h.size() != 0 && i < len(key) {
		if h.isCompressed {
			j := 0
			for j < h.size() && i < len(key) {
				if h.edges[j] != key[i] {
					break
				}
				j++
				i++
			}
			if j != h.size() {
				it.node = h
				return i, false
			}
			it.stack = append(it.stack, pathFrame{node: h, idx: 0, keyLen: len(it.key)})
			it.key = append(it.key, h.edges...)
			h = h.children[0]
		} else {
			_, idx, ok := h.findChild(key[i])
			if !ok {
				it.node = h
				return i, true
			}
			it.stack = append(it.stack, pathFrame{node: h, idx: idx, keyLen: len(it.key)})
			it.key = append(it.key, key[i])
			h = h.children[idx]
			i++
		}
	}
	it.node = h
	return i, true
}

// divergesGreater is called when walkTo stopped short of key at position
// matched, with it.node the node the mismatch happened at (not yet
// pushed onto the stack). It reports whether it.node's subtree lies
// entirely above key, repositioning the iterator into that subtree (past
// the point of divergence) when so.
func (it *Iterator) divergesGreater(key []byte, matched int) bool {
	h := it.node
	if h.isCompressed {
		j := matched - len(it.key)
		if h.edges[j] > key[matched] {
			it.stack = append(it.stack, pathFrame{node: h, idx: 0, keyLen: len(it.key)})
			it.key = append(it.key, h.edges...)
			it.node = h.children[0]
			return true
		}
		return false
	}
	i := sort.Search(len(h.edges), func(i int) bool { return h.edges[i] >= key[matched] })
	if i < len(h.edges) {
		it.stack = append(it.stack, pathFrame{node: h, idx: i, keyLen: len(it.key)})
		it.key = append(it.key, h.edges[i])
		it.node = h.children[i]
		return true
	}
	return false
}

// divergesLess is the mirror of divergesGreater: reports whether
// it.node's subtree lies entirely below key, repositioning into it when
// so.
func (it *Iterator) divergesLess(key []byte, matched int) bool {
	h := it.node
	if h.isCompressed {
		j := matched - len(it.key)
		if h.edges[j] < key[matched] {
			it.stack = append(it.stack, pathFrame{node: h, idx: 0, keyLen: len(it.key)})
			it.key = append(it.key, h.edges...)
			it.node = h.children[0]
			return true
		}
		return false
	}
	i := sort.Search(len(h.edges), func(i int) bool { return h.edges[i] >= key[matched] })
	if i > 0 {
		idx := i - 1
		it.stack = append(it.stack, pathFrame{node: h, idx: idx, keyLen: len(it.key)})
		it.key = append(it.key, h.edges[idx])
		it.node = h.children[idx]
		return true
	}
	return false
}

func (it *Iterator) seekFirst() bool {
	it.reset()
	if it.seekFirstKey() {
		it.justSeeked = true
		return true
	}
	it.eof = true
	return false
}

func (it *Iterator) seekLast() bool {
	it.reset()
	if it.seekLastKey() {
		it.justSeeked = true
		return true
	}
	it.eof = true
	return false
}

func (it *Iterator) seekEQ(key []byte) bool {
	matched, atBoundary := it.walkTo(key)
	if matched == len(key) && atBoundary && it.node.isKey {
		it.justSeeked = true
		return true
	}
	it.eof = true
	return false
}

// seekForward implements both SeekGE (inclusive) and SeekGT (exclusive).
func (it *Iterator) seekForward(key []byte, inclusive bool) bool {
	matched, atBoundary := it.walkTo(key)
	if matched == len(key) {
		if atBoundary && inclusive && it.node.isKey {
			it.justSeeked = true
			return true
		}
		if len(it.node.children) > 0 {
			it.descendSmallest()
			if it.seekFirstKey() {
				it.justSeeked = true
				return true
			}
		}
	} else if it.divergesGreater(key, matched) {
		if it.seekFirstKey() {
			it.justSeeked = true
			return true
		}
	}
	for it.ascendForward() {
		if it.seekFirstKey() {
			it.justSeeked = true
			return true
		}
	}
	it.eof = true
	return false
}

// seekBackward implements both SeekLE (inclusive) and SeekLT (exclusive).
func (it *Iterator) seekBackward(key []byte, inclusive bool) bool {
	matched, atBoundary := it.walkTo(key)
	if matched == len(key) {
		if atBoundary && inclusive && it.node.isKey {
			it.justSeeked = true
			return true
		}
	} else if it.divergesLess(key, matched) {
		if it.seekLastKey() {
			it.justSeeked = true
			return true
		}
		it.eof = true
		return false
	}
	if len(it.key) < len(key) && it.node.isKey {
		// it.node's own key is a proper prefix of key: it sorts below key
		// and above everything ascendBackwardOnce could reach.
		it.justSeeked = true
		return true
	}
	if it.ascendBackwardOnce() {
		it.justSeeked = true
		return true
	}
	it.eof = true
	return false
}

// Seek positions the iterator per op, reporting whether it landed on a
// key (false means EOF). An unrecognized op positions at EOF and reports
// ErrInvalidSeekOp, per spec.md §7.
func (it *Iterator) Seek(op SeekOp, key []byte) (bool, error) {
	switch op {
	case SeekFirst:
		return it.seekFirst(), nil
	case SeekLast:
		return it.seekLast(), nil
	case SeekEQ:
		return it.seekEQ(key), nil
	case SeekGE:
		return it.seekForward(key, true), nil
	case SeekGT:
		return it.seekForward(key, false), nil
	case SeekLE:
		return it.seekBackward(key, true), nil
	case SeekLT:
		return it.seekBackward(key, false), nil
	default:
		it.reset()
		it.eof = true
		return false, ErrInvalidSeekOp
	}
}

// RandomWalk takes up to steps random moves from the current position,
// at each step choosing uniformly among moving to the parent (if any)
// and moving to each child, and reports whether it moved at all (false
// means the walk was aborted immediately because no move was possible,
// e.g. an isolated root). It does not stop early on entering a key node;
// the caller reads Key/Value after the walk completes. Grounded on
// spec.md §4.6's random_walk description.
func (it *Iterator) RandomWalk(steps int) bool {
	if it.eof || steps <= 0 {
		return false
	}
	it.justSeeked = false
	moved := false
	for s := 0; s < steps; s++ {
		numChildren := len(it.node.children)
		total := numChildren
		if len(it.stack) > 0 {
			total++
		}
		if total == 0 {
			break
		}
		choice := rand.Intn(total)
		if len(it.stack) > 0 && choice == numChildren {
			it.moveToParent()
		} else {
			it.moveToChild(choice)
		}
		moved = true
	}
	return moved
}
