// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
)

// mulOddNode multiplies by the modular inverse of an odd pool constant on
// encode and by the constant itself on decode. Every odd integer is a unit
// mod 2^w, so both directions are bijections. Keeping the inverse on the
// encode side means the constant that reaches the artifact's hot decode
// path is not the one that pairs with the stored form directly — and the
// inverse itself sits behind its own hidden-constant tree.
//
// Seed indexes: 1 nested subtree, 2 constant draw, 3 hidden inverse.
type mulOddNode struct {
	mask  uint64
	c     uint64
	cinv  *hiddenConst
	inner node
}

func newMulOdd(width int, ctx context, seed Seed, avail Cycles, sameWidth bool) *mulOddNode {
	pool := ctx.pool()
	c := randomConst(Derive(seed, 2), []uint64{uint64(pool[0]), uint64(pool[1]), uint64(pool[2])})
	mask := widthMask(width)
	cinv := ctx.hideConst(width, modInverse(c, mask), Derive(seed, 3))
	inner := buildNode(width, ctx, Derive(seed, 1), avail+ctx.contextCycles(), schemeMulOdd, sameWidth)
	return &mulOddNode{mask: mask, c: c, cinv: cinv, inner: inner}
}

func (n *mulOddNode) words() int       { return n.inner.words() }
func (n *mulOddNode) scheme() schemeID { return schemeMulOdd }

func (n *mulOddNode) encode(x uint64, out []uint64) {
	n.inner.encode(x*n.cinv.value()&n.mask, out)
}

func (n *mulOddNode) decode(in []uint64) uint64 {
	return n.inner.decode(in) * n.c & n.mask
}

func (n *mulOddNode) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%smul-odd c=%d\n", indent(depth), n.c)
	fmt.Fprintf(w, "%sinverse:\n", indent(depth+1))
	n.cinv.root.dump(w, depth+2)
	n.inner.dump(w, depth+1)
}
