// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

import "errors"

// ErrOutOfMemory is returned by Insert when the tree's Allocator reports
// that it can no longer grow the tree. The tree is left in a structurally
// valid state: invariants on edge ordering and compression are preserved,
// though the insert that failed is not applied.
var ErrOutOfMemory = errors.New("patricia: out of memory")

// ErrInvalidSeekOp is returned by Iterator.Seek when op is not one of the
// recognized SeekOp values. The iterator is positioned at EOF.
var ErrInvalidSeekOp = errors.New("patricia: invalid seek operator")

// Allocator is the injection point used to model allocation failure.
// Real Go allocations cannot be made to fail on demand from user code, so
// tests that exercise the OutOfMemory contract described by spec.md §4.4
// and §7 (mirroring original_source/rax-oom-test.c's failure-injection
// harness) supply a deliberately failing Allocator instead. The default
// Allocator never fails.
//
// Grow is consulted before any operation that would enlarge the tree's
// node or stack storage: adding a child, compressing a node, splitting a
// node, and growing the deleter's ancestor stack past its inline
// capacity. The iterator never consults it. Returning false aborts the
// mutation currently in progress.
type Allocator interface {
	Grow() bool
}

// unlimitedAllocator never fails; it is the Allocator used by New.
type unlimitedAllocator struct{}

func (unlimitedAllocator) Grow() bool { return true }

// FailAfter returns an Allocator that permits the first n allocation
// requests and fails every request after that, for use in tests that
// need to exercise Insert's ErrOutOfMemory path deterministically.
func FailAfter(n int) Allocator {
	return &countingAllocator{remaining: n}
}

type countingAllocator struct {
	remaining int
}

func (a *countingAllocator) Grow() bool {
	if a.remaining <= 0 {
		return false
	}
	a.remaining--
	return true
}
