// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

// A descriptor annotates one selectable entry: whether it spends leftover
// budget on nested sub-transforms, the minimum cycles it needs, and its
// selection weight. Weight zero disables an entry entirely.
type descriptor struct {
	recursive bool
	minCycles Cycles
	weight    uint64
}

// schemeID indexes the fixed scheme catalog.
type schemeID int

const (
	schemeIdentity schemeID = iota
	schemeAdditive
	schemeFeistel
	schemeSplitJoin
	schemeMulOdd
	schemePair
	numSchemes

	// schemeNone disables exclusion in selector calls.
	schemeNone schemeID = -1
)

func (id schemeID) String() string {
	switch id {
	case schemeIdentity:
		return "identity"
	case schemeAdditive:
		return "additive"
	case schemeFeistel:
		return "feistel"
	case schemeSplitJoin:
		return "split-join"
	case schemeMulOdd:
		return "mul-odd"
	case schemePair:
		return "pair"
	}
	return "unknown"
}

// schemeDescriptors computes the catalog valid for one domain width under
// one context. Minimum costs account for the context's own leaf transform
// and for which halves of the bijection actually run at runtime: literal
// contexts only pay the decode half, variable contexts pay both.
//
// Half-width schemes are disabled below 16 bits, where no meaningful
// half-width integer exists.
func schemeDescriptors(width int, ctx context) [numSchemes]descriptor {
	cc := ctx.contextCycles()
	d := [numSchemes]descriptor{
		schemeIdentity:  {false, cc + ctx.calcCycles(0, 0), 1},
		schemeAdditive:  {true, cc + ctx.calcCycles(1, 1), 100},
		schemeFeistel:   {true, cc + ctx.calcCycles(7, 7), 100},
		schemeSplitJoin: {true, cc + ctx.calcCycles(7, 7), 100},
		schemeMulOdd:    {true, cc + ctx.calcCycles(3+ctx.literalCycles(), 3), 100},
		schemePair:      {true, cc + ctx.calcCycles(3, 3), 100},
	}
	if width <= 8 {
		d[schemeFeistel] = descriptor{}
		d[schemeSplitJoin] = descriptor{}
		d[schemePair] = descriptor{}
	}
	return d
}
