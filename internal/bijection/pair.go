// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
)

// pairNode splits the value into half-width halves and stores each behind
// an independent subtree without recombining them: the representation
// widens to both halves' representations side by side, trading storage for
// the cost of a join. A pair of independent bijections is trivially
// bijective over the pair.
//
// Seed indexes: 1 two-way budget split, 2/3/4 low-half split/context/
// subtree, 5/6/7 the same for the high half.
type pairNode struct {
	halfBits int
	halfMask uint64
	lo, hi   node
	loWords  int
}

func newPair(width int, ctx context, seed Seed, avail Cycles) *pairNode {
	shares := splitBudget(Derive(seed, 1), avail, []descriptor{
		{true, 0, 100}, // low half
		{true, 0, 100}, // high half
	})
	lo := buildPairHalf(width/2, ctx, seed, shares[0], 2, 3, 4)
	hi := buildPairHalf(width/2, ctx, seed, shares[1], 5, 6, 7)
	return &pairNode{
		halfBits: width / 2,
		halfMask: widthMask(width / 2),
		lo:       lo,
		hi:       hi,
		loWords:  lo.words(),
	}
}

// buildPairHalf grows one unconstrained half subtree under a recursive
// context of its own: unlike split-join halves, these never recombine, so
// they may widen further.
func buildPairHalf(width int, ctx context, seed Seed, cycles Cycles, splitIdx, ctxIdx, injIdx int) node {
	shares := splitBudget(Derive(seed, splitIdx), cycles, []descriptor{
		{true, 0, 100}, // context
		{true, 0, 100}, // subtree
	})
	sub := ctx.recursiveFor(width, Derive(seed, ctxIdx), shares[0])
	return buildNode(width, sub, Derive(seed, injIdx), shares[1]+sub.contextCycles(), schemeNone, false)
}

func (n *pairNode) words() int       { return n.lo.words() + n.hi.words() }
func (n *pairNode) scheme() schemeID { return schemePair }

func (n *pairNode) encode(x uint64, out []uint64) {
	n.lo.encode(x&n.halfMask, out[:n.loWords])
	n.hi.encode(x>>n.halfBits, out[n.loWords:])
}

func (n *pairNode) decode(in []uint64) uint64 {
	lo := n.lo.decode(in[:n.loWords])
	hi := n.hi.decode(in[n.loWords:])
	return hi<<n.halfBits | lo
}

func (n *pairNode) dump(w io.Writer, depth int) {
	fmt.Fprintf(w, "%spair\n", indent(depth))
	fmt.Fprintf(w, "%slo:\n", indent(depth+1))
	n.lo.dump(w, depth+2)
	fmt.Fprintf(w, "%shi:\n", indent(depth+1))
	n.hi.dump(w, depth+2)
}
