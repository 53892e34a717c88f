// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

// ExpCycles maps an obfuscation strength level to a cycle budget.
// Each unit of level multiplies the budget by roughly sqrt(10), with odd
// levels carrying a x3 kicker: levels 0..6 map to 1, 3, 10, 30, 100, 300
// and 1000 cycles. Negative levels budget nothing at all.
//
// The curve is a policy choice; the only contract is that it is monotonic
// non-decreasing and that level 0 still affords the identity scheme.
func ExpCycles(level int) Cycles {
	if level < 0 {
		return 0
	}
	ret := Cycles(1)
	if level&1 == 1 {
		ret *= 3
		level--
	}
	for i := 0; i < level/2; i++ {
		ret *= 10
	}
	return ret
}
