// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

// Package patricia implements an in-memory, ordered, space-compact
// associative map keyed by arbitrary byte strings: a compressed radix
// tree, also known as a Patricia trie or "rax".
//
// # Overview
//
// The tree stores a byte-string-to-value association using two kinds of
// node, both sharing the same representation (see node.go):
//
//   - a normal node, holding an ascending-ordered set of single edge
//     bytes, one child per edge;
//   - a compressed node, holding a multi-byte edge string collapsed
//     from what would otherwise be a chain of single-child nodes, with
//     exactly one child.
//
// Path compression keeps the tree's memory footprint close to the sum
// of the stored keys rather than proportional to the number of radix
// levels, at the cost of extra bookkeeping on insert and delete: a
// compressed node must be split when an inserted key diverges from it,
// and freshly uncompressed chains created by delete must be
// re-collapsed.
//
// # Usage
//
//	t := patricia.New()
//	t.Insert([]byte("romane"), 1)
//	t.Insert([]byte("romanus"), 2)
//	v, ok := t.Find([]byte("romane"))
//
//	it := t.Iterator()
//	it.Seek(patricia.SeekGE, []byte("rom"))
//	for it.Next() {
//	    key, value := it.Key(), it.Value()
//	    _ = key
//	    _ = value
//	}
//
// # Concurrency
//
// The tree provides no internal synchronization. Concurrent readers are
// safe only when no mutation runs concurrently with them; concurrent
// mutation is undefined behavior. An Iterator observes a snapshot of the
// tree as of its last Seek/Next/Prev call and is invalidated by any
// mutation performed on the tree in between.
package patricia
