// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

// Package bijection composes elementary reversible integer transforms into
// randomized trees under a cycle-cost budget. A tree's Encode is a bijection
// over its domain width by construction: every catalog scheme is invertible,
// and composing them (nested, or on independent halves) preserves that.
//
// Tree construction is pure and deterministic in the seed, so the same
// (secret, call site, strength) always rebuilds the same tree; that is what
// keeps builds reproducible and the paired encode/decode halves in
// agreement. All budget violations are construction-time panics — a built
// tree has no failure modes at runtime.
package bijection

import "io"

// Params configures one tree build.
type Params struct {
	Width   int // domain width in bits: 8, 16, 32 or 64
	Seed    Seed
	Cycles  Cycles
	Consts  [3]uint8 // process-wide odd build constants
	Literal bool     // literal wrapper (encode resolved at build) vs variable
}

// Tree is one built transform: an encode/decode pair and the shape of the
// stored representation, which is one or more 64-bit words.
type Tree struct {
	width int
	root  node
}

// node is one tree node. encode must fill exactly words() entries of out;
// decode must accept the same layout.
type node interface {
	words() int
	encode(x uint64, out []uint64)
	decode(in []uint64) uint64
	scheme() schemeID
	dump(w io.Writer, depth int)
}

// Build grows a transform tree for the given parameters.
//
// Seed derivation indexes, fixed for reproducibility: index 1 derives the
// context seed, index 2 the root injection seed; each node's own indexes
// are documented at its constructor.
func Build(p Params) *Tree {
	switch p.Width {
	case 8, 16, 32, 64:
	default:
		panic("bijection: unsupported domain width")
	}
	var ctx context
	if p.Literal {
		ctx = newLiteralContext(p.Width, p.Consts, Derive(p.Seed, 1), p.Cycles)
	} else {
		ctx = varContext{consts: p.Consts}
	}
	root := buildNode(p.Width, ctx, Derive(p.Seed, 2), p.Cycles, schemeNone, false)
	return &Tree{width: p.Width, root: root}
}

// Width reports the tree's domain width in bits.
func (t *Tree) Width() int { return t.width }

// Words reports the stored representation size in 64-bit words.
func (t *Tree) Words() int { return t.root.words() }

// Encode transforms a plain value (below 2^width) into its stored form,
// filling exactly Words() entries of out.
func (t *Tree) Encode(x uint64, out []uint64) { t.root.encode(x, out) }

// Decode recovers the plain value from its stored form.
func (t *Tree) Decode(in []uint64) uint64 { return t.root.decode(in) }

// buildNode grows one subtree: select an affordable scheme for this width
// and context, then let the scheme spend the remaining budget on itself and
// its children. exclude prevents a scheme from immediately nesting its own
// kind, which could cancel out at one nesting level. sameWidth constrains
// the subtree to a single-word same-width representation, required for
// halves that must recombine.
func buildNode(width int, ctx context, seed Seed, cycles Cycles, exclude schemeID, sameWidth bool) node {
	descr := schemeDescriptors(width, ctx)
	if sameWidth {
		descr[schemePair] = descriptor{}
	}
	which := schemeID(selectDescriptor(Derive(seed, 1), cycles, descr[:], int(exclude)))
	avail := cycles - descr[which].minCycles
	if avail < 0 {
		panic("bijection: selected scheme exceeds its budget")
	}
	switch which {
	case schemeIdentity:
		return &identityNode{ctx: ctx}
	case schemeAdditive:
		return newAdditive(width, ctx, seed, avail, sameWidth)
	case schemeFeistel:
		return newFeistel(width, ctx, seed, avail, sameWidth)
	case schemeSplitJoin:
		return newSplitJoin(width, ctx, seed, avail, sameWidth)
	case schemeMulOdd:
		return newMulOdd(width, ctx, seed, avail, sameWidth)
	case schemePair:
		return newPair(width, ctx, seed, avail)
	}
	panic("unreachable")
}

// encodeWord runs a single-word subtree in place.
func encodeWord(n node, x uint64) uint64 {
	var out [1]uint64
	n.encode(x, out[:])
	return out[0]
}

// hiddenConst stores one scheme constant behind its own transform tree, so
// the plain constant does not sit next to the code using it. Encode runs
// once here; only the decode half costs at runtime.
type hiddenConst struct {
	root   node
	stored []uint64
}

func newHiddenConst(width int, c uint64, ctx context, seed Seed, cycles Cycles) *hiddenConst {
	root := buildNode(width, ctx, Derive(seed, 1), cycles, schemeNone, false)
	out := make([]uint64, root.words())
	root.encode(c, out)
	return &hiddenConst{root: root, stored: out}
}

func (h *hiddenConst) value() uint64 { return h.root.decode(h.stored) }
