// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"io"
	"strings"
)

// Dump renders the tree's structure — scheme choices, constants, nesting —
// for verification and debugging. Nothing in the library calls it;
// production builds simply never link a caller.
func (t *Tree) Dump(w io.Writer) {
	t.root.dump(w, 0)
}

// String renders the tree as Dump does.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
