// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
)

// splitJoinNode transforms the two halves of the value through independent
// same-width subtrees, recombines them with their positions swapped, and
// hands the result to a nested transform. Concatenating two independent
// bijections is itself a bijection over the full width, and the trailing
// recursion preserves it.
//
// The half subtrees must keep a single-word same-width representation so
// the halves can recombine; the builder masks out the widening pair scheme
// for them, and the width check below guards the invariant against any
// future scheme that might violate it.
//
// Seed indexes: 1 three-way budget split, 2 nested subtree, 3/4/5 top-half
// split/context/subtree, 6/7/8 the same for the bottom half.
type splitJoinNode struct {
	halfBits int
	halfMask uint64
	top      node // transforms the incoming top half (stored low)
	bottom   node // transforms the incoming bottom half (stored high)
	inner    node
}

func newSplitJoin(width int, ctx context, seed Seed, avail Cycles, sameWidth bool) *splitJoinNode {
	shares := splitBudget(Derive(seed, 1), avail, []descriptor{
		{true, 0, 200}, // nested transform
		{true, 0, 100}, // top half
		{true, 0, 100}, // bottom half
	})
	inner := buildNode(width, ctx, Derive(seed, 2), shares[0]+ctx.contextCycles(), schemeNone, sameWidth)
	top := buildHalf(width/2, ctx, seed, shares[1], 3, 4, 5)
	bottom := buildHalf(width/2, ctx, seed, shares[2], 6, 7, 8)
	return &splitJoinNode{
		halfBits: width / 2,
		halfMask: widthMask(width / 2),
		top:      top,
		bottom:   bottom,
		inner:    inner,
	}
}

// buildHalf grows one independent half subtree: the half's budget is split
// between a side context of its own and the subtree built under it.
func buildHalf(width int, ctx context, seed Seed, cycles Cycles, splitIdx, ctxIdx, injIdx int) node {
	shares := splitBudget(Derive(seed, splitIdx), cycles, []descriptor{
		{true, 0, 100}, // context
		{true, 0, 100}, // subtree
	})
	side := ctx.sideFor(width, Derive(seed, ctxIdx), shares[0])
	n := buildNode(width, side, Derive(seed, injIdx), shares[1]+side.contextCycles(), schemeNone, true)
	if n.words() != 1 {
		panic("bijection: half subtree widened its representation")
	}
	return n
}

func (n *splitJoinNode) words() int       { return n.inner.words() }
func (n *splitJoinNode) scheme() schemeID { return schemeSplitJoin }

func (n *splitJoinNode) encode(x uint64, out []uint64) {
	a := encodeWord(n.top, x>>n.halfBits)
	b := encodeWord(n.bottom, x&n.halfMask)
	n.inner.encode(b<<n.halfBits|a, out)
}

func (n *splitJoinNode) decode(in []uint64) uint64 {
	y := n.inner.decode(in)
	a := n.top.decode([]uint64{y & n.halfMask})
	b := n.bottom.decode([]uint64{y >> n.halfBits})
	return a<<n.halfBits | b
}

func (n *splitJoinNode) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%ssplit-join\n", indent(depth))
	fmt.Fprintf(w, "%stop:\n", indent(depth+1))
	n.top.dump(w, depth+2)
	fmt.Fprintf(w, "%sbottom:\n", indent(depth+1))
	n.bottom.dump(w, depth+2)
	fmt.Fprintf(w, "%sjoined:\n", indent(depth+1))
	n.inner.dump(w, depth+2)
}
