// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"sync/atomic"
)

// A context supplies the final transform applied at a tree's identity leaf
// and the cost accounting rules for every node built under it. Literal
// contexts only pay the decode half at runtime, since a literal's encode is
// resolved when the tree is built; variable contexts pay both halves on
// every mutation.
type context interface {
	// contextCycles is the runtime cost of the context's own leaf
	// transform, charged into every descriptor built under it.
	contextCycles() Cycles
	// calcCycles folds a scheme's encode/decode costs into the part that
	// actually runs at runtime under this context.
	calcCycles(inj, surj Cycles) Cycles
	// literalCycles is the budget granted to constants a scheme embeds
	// (the multiply-by-odd inverse) for their own hiding.
	literalCycles() Cycles
	// hideConst wraps one embedded scheme constant in its own small tree.
	hideConst(width int, c uint64, seed Seed) *hiddenConst
	// pool returns the process-wide build constants.
	pool() [3]uint8

	finalEncode(x uint64) uint64
	finalDecode(y uint64) uint64

	// recursiveFor derives the context for a child subtree holding the
	// same stored value (pair halves); sideFor derives the context for a
	// child protecting an independent intermediate value (split-join
	// halves). Low budgets fall back to the plain variant naturally.
	recursiveFor(width int, seed Seed, cycles Cycles) context
	sideFor(width int, seed Seed, cycles Cycles) context

	describe() string
}

// zeroContext is the no-frills context used for hidden scheme constants:
// no leaf transform, no budget for nested hiding.
type zeroContext struct {
	consts [3]uint8
}

func (zeroContext) contextCycles() Cycles { return 0 }
func (zeroContext) calcCycles(inj, surj Cycles) Cycles { return surj }
func (zeroContext) literalCycles() Cycles { return 0 }
func (c zeroContext) pool() [3]uint8 { return c.consts }
func (zeroContext) finalEncode(x uint64) uint64 { return x }
func (zeroContext) finalDecode(y uint64) uint64 { return y }
func (c zeroContext) describe() string { return "embedded" }

func (c zeroContext) hideConst(width int, v uint64, seed Seed) *hiddenConst {
	return newHiddenConst(width, v, c, seed, 0)
}

func (c zeroContext) recursiveFor(int, Seed, Cycles) context { return c }
func (c zeroContext) sideFor(int, Seed, Cycles) context      { return c }

// varContext backs obfuscated variables: the leaf is a plain passthrough,
// but both bijection halves run at runtime and embedded constants get a
// fixed hiding budget of their own.
type varContext struct {
	consts [3]uint8
}

const varLiteralCycles = 50

func (varContext) contextCycles() Cycles { return 0 }
func (varContext) calcCycles(inj, surj Cycles) Cycles { return inj + surj }
func (varContext) literalCycles() Cycles { return varLiteralCycles }
func (c varContext) pool() [3]uint8 { return c.consts }
func (varContext) finalEncode(x uint64) uint64 { return x }
func (varContext) finalDecode(y uint64) uint64 { return y }
func (c varContext) describe() string { return "var" }

func (c varContext) hideConst(width int, v uint64, seed Seed) *hiddenConst {
	ctx := newLiteralContext(width, c.consts, Derive(seed, 1), varLiteralCycles)
	return newHiddenConst(width, v, ctx, Derive(seed, 2), varLiteralCycles)
}

func (c varContext) recursiveFor(int, Seed, Cycles) context { return c }
func (c varContext) sideFor(int, Seed, Cycles) context      { return c }

// literalContext backs obfuscated literals. One of the leaf variants below
// is chosen by the usual selector against the leaf catalog; only the decode
// half of anything built under it costs at runtime.
type literalContext struct {
	consts [3]uint8
	leaf   literalLeaf
}

// literalLeaf is one way of hiding the final stored form of a literal.
type literalLeaf interface {
	cycles() Cycles
	encode(x uint64) uint64
	decode(y uint64) uint64
	describe() string
}

// Leaf catalog: plain embedding, a frozen process-wide value, a value
// recovered through an alias-opaque zero, and a rotating global whose value
// changes on every read while preserving an algebraic invariant. The
// rotating variant is expensive due to worst-case cross-core caching of its
// shared state.
func leafDescriptors() []descriptor {
	return []descriptor{
		{false, 0, 1},    // plain
		{true, 6, 100},   // frozen global
		{true, 20, 100},  // aliased zero
		{true, 100, 100}, // rotating invariant
	}
}

func newLiteralContext(width int, consts [3]uint8, seed Seed, cycles Cycles) *literalContext {
	mask := widthMask(width)
	var leaf literalLeaf
	switch which := selectDescriptor(Derive(seed, 1), cycles, leafDescriptors(), -1); which {
	case 0:
		leaf = plainLeaf{}
	case 1:
		leaf = newFrozenLeaf(mask, consts, Derive(seed, 2))
	case 2:
		leaf = aliasedLeaf{mask: mask}
	case 3:
		leaf = newRotatingLeaf(width, Derive(seed, 2))
	default:
		panic(fmt.Sprintf("bijection: leaf catalog returned %d", which))
	}
	return &literalContext{consts: consts, leaf: leaf}
}

func (c *literalContext) contextCycles() Cycles { return c.leaf.cycles() }
func (*literalContext) calcCycles(inj, surj Cycles) Cycles { return surj }
func (*literalContext) literalCycles() Cycles { return 0 }
func (c *literalContext) pool() [3]uint8 { return c.consts }
func (c *literalContext) finalEncode(x uint64) uint64 { return c.leaf.encode(x) }
func (c *literalContext) finalDecode(y uint64) uint64 { return c.leaf.decode(y) }
func (c *literalContext) describe() string { return c.leaf.describe() }

func (c *literalContext) hideConst(width int, v uint64, seed Seed) *hiddenConst {
	return newHiddenConst(width, v, zeroContext{consts: c.consts}, seed, 0)
}

func (c *literalContext) recursiveFor(width int, seed Seed, cycles Cycles) context {
	return newLiteralContext(width, c.consts, Derive(seed, 1), cycles)
}

func (c *literalContext) sideFor(width int, seed Seed, cycles Cycles) context {
	return newLiteralContext(width, c.consts, Derive(seed, 2), cycles)
}

// plainLeaf embeds the stored form as-is.
type plainLeaf struct{}

func (plainLeaf) cycles() Cycles { return 0 }
func (plainLeaf) encode(x uint64) uint64 { return x }
func (plainLeaf) decode(y uint64) uint64 { return y }
func (plainLeaf) describe() string { return "plain" }

// frozenLeaf offsets the stored form by a pool constant kept in a
// process-wide mutable cell. The cell never changes after initialization,
// but being mutable state, the plain offset cannot be folded into the
// artifact next to the stored form.
type frozenLeaf struct {
	mask  uint64
	c     uint64
	state *atomic.Uint64
}

func newFrozenLeaf(mask uint64, consts [3]uint8, seed Seed) *frozenLeaf {
	c := randomConst(Derive(seed, 1), []uint64{uint64(consts[0]), uint64(consts[1]), uint64(consts[2])})
	state := new(atomic.Uint64)
	state.Store(c)
	return &frozenLeaf{mask: mask, c: c, state: state}
}

func (l *frozenLeaf) cycles() Cycles { return 6 }

func (l *frozenLeaf) encode(x uint64) uint64 {
	return (x + l.c) & l.mask
}

func (l *frozenLeaf) decode(y uint64) uint64 {
	return (y - l.state.Load()) & l.mask
}

func (l *frozenLeaf) describe() string { return fmt.Sprintf("frozen-global(c=%d)", l.c) }

// aliasedZero returns zero through two pointer writes the compiler must
// assume may alias, so the decode below cannot be folded to a no-op.
//
//go:noinline
func aliasedZero(x, y *uint64) uint64 {
	*x = 0
	*y = 1
	return *x
}

// aliasedLeaf stores the plain form but recovers it through an
// alias-opaque zero, keeping the decode path from looking like a direct
// load.
type aliasedLeaf struct {
	mask uint64
}

func (aliasedLeaf) cycles() Cycles { return 20 }
func (aliasedLeaf) encode(x uint64) uint64 { return x }

func (l aliasedLeaf) decode(y uint64) uint64 {
	var a, b uint64
	z := aliasedZero(&a, &b)
	return (y - z) & l.mask
}

func (aliasedLeaf) describe() string { return "aliased" }

// rotatingLeaf offsets the stored form by c, where the process-wide state
// cell rotates on every decode under the invariant state mod m == c. Any
// interleaving of the atomic updates preserves the invariant, so concurrent
// decodes need no lock: correctness depends on the recurrence being closed
// under repeated application, not on which update wins.
type rotatingLeaf struct {
	mask     uint64
	mod      uint64
	c        uint64
	delta    uint64
	deltaMod uint64
	state    *atomic.Uint64
}

// rotationChecks is how many recurrence steps are verified at build time.
const rotationChecks = 100

func newRotatingLeaf(width int, seed Seed) *rotatingLeaf {
	mask := widthMask(width)
	halfMask := widthMask(width / 2)

	// Draw the modulus from the half-width range directly; halfMask+1 never
	// wraps, unlike the full-width mask+1 at 64 bits.
	mod := weakRandom(Derive(seed, 1), halfMask+1)
	if mod == 0 {
		mod = 100 // remap the one degenerate modulus
	}
	c := weakRandom(Derive(seed, 2), mod)

	maxMul1 := mask / mod
	mul1 := uint64(1)
	if maxMul1 > 2 {
		mul1 = 1 + weakRandom(Derive(seed, 3), roughSqrt(maxMul1))
	}
	delta := mul1 * mod

	maxMul2 := mask / delta
	mul2 := uint64(1)
	if maxMul2 > 2 {
		mul2 = 1 + weakRandom(Derive(seed, 4), maxMul2)
	}
	// Extra slack beyond the rough sqrt bound: cap mul2 so that
	// state+delta can never wrap the domain width, since a wrapped
	// intermediate would silently break the invariant.
	if limit := (mask - delta) / mod; mul2 > limit && limit >= 1 {
		mul2 = limit
	}
	deltaMod := mul2 * mod

	mul3 := weakRandom(Derive(seed, 5), mul2)
	if mul3 == 0 {
		mul3 = 1
	}
	c0 := (c + mul3*mod) % deltaMod

	l := &rotatingLeaf{mask: mask, mod: mod, c: c, delta: delta, deltaMod: deltaMod, state: new(atomic.Uint64)}
	l.state.Store(c0)

	x := c0
	for i := 0; i < rotationChecks; i++ {
		if x%mod != c {
			panic("bijection: rotation recurrence broke its invariant")
		}
		x = (x + delta) % deltaMod
	}
	return l
}

func (l *rotatingLeaf) cycles() Cycles { return 100 }

func (l *rotatingLeaf) encode(x uint64) uint64 {
	return (x + l.c) & l.mask
}

func (l *rotatingLeaf) decode(y uint64) uint64 {
	for {
		old := l.state.Load()
		next := (old + l.delta) % l.deltaMod
		if l.state.CompareAndSwap(old, next) {
			return (y - next%l.mod) & l.mask
		}
	}
}

func (l *rotatingLeaf) describe() string {
	return fmt.Sprintf("rotating(m=%d,c=%d)", l.mod, l.c)
}
