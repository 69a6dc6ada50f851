// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLeafNodeIsEmptyAndNotAKey(t *testing.T) {
	n := newLeafNode()
	assert.Equal(t, 0, n.size())
	assert.True(t, n.isLeaf())
	assert.False(t, n.isKey)
}

func TestSetValueAndGetValueRoundTrip(t *testing.T) {
	n := newLeafNode()
	n.setValue("hello", false)

	v, ok := n.getValue()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestSetValueWithNullMarksKeyWithoutStoringValue(t *testing.T) {
	n := newLeafNode()
	n.setValue("ignored", true)

	v, ok := n.getValue()
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestGetValueOnNonKeyNodeReportsNotFound(t *testing.T) {
	n := newLeafNode()
	v, ok := n.getValue()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestClearKeyRemovesKeyStatusButKeepsChildren(t *testing.T) {
	n := newNormalNode(0)
	child, _, ok := n.addChild('a', unlimitedAllocator{})
	assert.True(t, ok)
	n.setValue(1, false)

	n.clearKey()

	assert.False(t, n.isKey)
	assert.Nil(t, n.value)
	c, _, found := n.findChild('a')
	assert.True(t, found)
	assert.Same(t, child, c)
}

func TestAddChildKeepsEdgesInAscendingOrder(t *testing.T) {
	n := newNormalNode(0)
	for _, c := range []byte{'d', 'b', 'a', 'c'} {
		_, _, ok := n.addChild(c, unlimitedAllocator{})
		assert.True(t, ok)
	}
	assert.Equal(t, []byte("abcd"), n.edges)
}

func TestFindChildReportsMissingByte(t *testing.T) {
	n := newNormalNode(0)
	n.addChild('a', unlimitedAllocator{})
	n.addChild('z', unlimitedAllocator{})

	_, _, found := n.findChild('m')
	assert.False(t, found)
}

func TestCompressTurnsEmptyNormalNodeIntoCompressedNode(t *testing.T) {
	n := newNormalNode(0)
	n.setValue(42, false)

	child, ok := n.compress([]byte("bar"), unlimitedAllocator{})
	assert.True(t, ok)

	assert.True(t, n.isCompressed)
	assert.Equal(t, []byte("bar"), n.edges)
	assert.Len(t, n.children, 1)
	assert.Same(t, child, n.children[0])
	// The key that lived on n before compression stays on n, not the
	// freshly allocated child.
	v, isKey := n.getValue()
	assert.True(t, isKey)
	assert.Equal(t, 42, v)
}

func TestRemoveChildOnNormalNodeDropsEdgeAndChild(t *testing.T) {
	n := newNormalNode(0)
	a, _, _ := n.addChild('a', unlimitedAllocator{})
	n.addChild('b', unlimitedAllocator{})

	replacement := removeChild(n, a)

	assert.Same(t, n, replacement)
	assert.Equal(t, []byte("b"), n.edges)
}

func TestRemoveChildOnCompressedNodeReturnsFreshLeafPreservingKey(t *testing.T) {
	n := &node{isCompressed: true, edges: []byte("bar")}
	n.setValue(7, false)
	child := newLeafNode()
	n.children = []*node{child}

	replacement := removeChild(n, child)

	assert.NotSame(t, n, replacement)
	assert.True(t, replacement.isKey)
	v, _ := replacement.getValue()
	assert.Equal(t, 7, v)
	assert.Equal(t, 0, replacement.size())
}

func TestWrapChildWithEmptyBytesReturnsChildUnwrapped(t *testing.T) {
	child := newLeafNode()
	n, allocated := wrapChild(nil, child)
	assert.False(t, allocated)
	assert.Same(t, child, n)
}

func TestWrapChildWithBytesWrapsInCompressedNodeWhenLongerThanOne(t *testing.T) {
	child := newLeafNode()
	n, allocated := wrapChild([]byte("ar"), child)
	assert.True(t, allocated)
	assert.True(t, n.isCompressed)
	assert.Equal(t, []byte("ar"), n.edges)
	assert.Same(t, child, n.children[0])
}

func TestWrapChildWithSingleByteDoesNotProduceCompressedNode(t *testing.T) {
	child := newLeafNode()
	n, allocated := wrapChild([]byte("a"), child)
	assert.True(t, allocated)
	assert.False(t, n.isCompressed)
	assert.Equal(t, []byte("a"), n.edges)
}

func TestAttachChildInsertsAtSortedPosition(t *testing.T) {
	n := newNormalNode(0)
	first := newLeafNode()
	second := newLeafNode()
	n.attachChild('c', first)
	n.attachChild('a', second)

	assert.Equal(t, []byte("ac"), n.edges)
	assert.Same(t, second, n.children[0])
	assert.Same(t, first, n.children[1])
}

func TestSplitCompressedEdgeSingleByteIsNotCompressed(t *testing.T) {
	n := splitCompressedEdge([]byte("a"), true, false, 5)
	assert.False(t, n.isCompressed)
	assert.True(t, n.isKey)
	v, _ := n.getValue()
	assert.Equal(t, 5, v)
}

func TestSplitCompressedEdgeMultiByteIsCompressed(t *testing.T) {
	n := splitCompressedEdge([]byte("abc"), false, false, nil)
	assert.True(t, n.isCompressed)
	assert.False(t, n.isKey)
}
