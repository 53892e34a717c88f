// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
)

// additiveNode masks the value by modular addition of a pool constant
// before handing it to a nested transform. Addition mod 2^w is a bijection
// on the fixed-width domain; the nested transform excludes this scheme at
// its own level so the constant cannot cancel against an immediate child.
//
// Seed indexes: 1 nested subtree, 2 constant draw.
type additiveNode struct {
	mask  uint64
	c     uint64
	inner node
}

func newAdditive(width int, ctx context, seed Seed, avail Cycles, sameWidth bool) *additiveNode {
	pool := ctx.pool()
	c := randomConst(Derive(seed, 2), []uint64{1, uint64(pool[0]), uint64(pool[1]), uint64(pool[2])})
	inner := buildNode(width, ctx, Derive(seed, 1), avail+ctx.contextCycles(), schemeAdditive, sameWidth)
	return &additiveNode{mask: widthMask(width), c: c, inner: inner}
}

func (n *additiveNode) words() int       { return n.inner.words() }
func (n *additiveNode) scheme() schemeID { return schemeAdditive }

func (n *additiveNode) encode(x uint64, out []uint64) {
	n.inner.encode((x+n.c)&n.mask, out)
}

func (n *additiveNode) decode(in []uint64) uint64 {
	return (n.inner.decode(in) - n.c) & n.mask
}

func (n *additiveNode) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%sadditive c=%d\n", indent(depth), n.c)
	n.inner.dump(w, depth+1)
}
