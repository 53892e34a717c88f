// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
)

// feistelNode runs one half-width Feistel-like round: the two halves swap
// position, with the incoming top half mixed additively into the bottom
// through a randomized polynomial of the half-width domain. Whatever the
// polynomial computes, subtracting the same value undoes the mix, so the
// round is a bijection for free. The combined value then feeds a nested
// transform.
//
// Seed indexes: 1 budget split, 2 nested subtree, 3 polynomial.
type feistelNode struct {
	halfBits int
	halfMask uint64
	f        *polyFunc
	inner    node
}

func newFeistel(width int, ctx context, seed Seed, avail Cycles, sameWidth bool) *feistelNode {
	shares := splitBudget(Derive(seed, 1), avail, []descriptor{
		{true, 0, 100}, // polynomial
		{true, 0, 100}, // nested transform
	})
	inner := buildNode(width, ctx, Derive(seed, 2), shares[1]+ctx.contextCycles(), schemeNone, sameWidth)
	f := newPolyFunc(width/2, Derive(seed, 3), shares[0])
	return &feistelNode{
		halfBits: width / 2,
		halfMask: widthMask(width / 2),
		f:        f,
		inner:    inner,
	}
}

func (n *feistelNode) words() int       { return n.inner.words() }
func (n *feistelNode) scheme() schemeID { return schemeFeistel }

func (n *feistelNode) encode(x uint64, out []uint64) {
	top := x >> n.halfBits
	mixed := (x&n.halfMask + n.f.eval(top)) & n.halfMask
	n.inner.encode(mixed<<n.halfBits|top, out)
}

func (n *feistelNode) decode(in []uint64) uint64 {
	y := n.inner.decode(in)
	top := y & n.halfMask // the original top half, carried through unchanged
	mixed := y >> n.halfBits
	bottom := (mixed - n.f.eval(top)) & n.halfMask
	return top<<n.halfBits | bottom
}

func (n *feistelNode) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%sfeistel\n", indent(depth))
	n.f.dump(w, depth+1)
	n.inner.dump(w, depth+1)
}
