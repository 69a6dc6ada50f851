// Copyright © 2026, The radixkv Authors.
// Use of this source code is governed by the
// MIT license that can be found in the LICENSE file.

package patricia

import (
	"fmt"
	"strings"
)

// Show returns a depth-first ASCII rendering of the tree's node
// structure, for debugging only: spec.md §6 places no requirement that
// any consumer parse this back, so the format is not stable across
// versions. Mirrors rax.c's raxShow/raxRecursiveShow/raxDebugShowNode.
func (t *Tree) Show() string {
	var b strings.Builder
	showNode(&b, t.root, "", 0)
	return b.String()
}

func showNode(b *strings.Builder, n *node, edge string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if edge != "" {
		fmt.Fprintf(b, "%q ", edge)
	}
	if n.isCompressed {
		fmt.Fprintf(b, "(compr %q)", string(n.edges))
	} else {
		fmt.Fprintf(b, "(node size=%d)", n.size())
	}
	if n.isKey {
		if n.isNullValue {
			b.WriteString(" [key: null]")
		} else {
			fmt.Fprintf(b, " [key: %v]", n.value)
		}
	}
	b.WriteString("\n")

	if n.isCompressed {
		showNode(b, n.children[0], "", depth+1)
		return
	}
	for i, c := range n.children {
		showNode(b, c, string(n.edges[i]), depth+1)
	}
}
