// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSelectDescriptor(t *testing.T) {
	t.Parallel()
	descr := []descriptor{
		{false, 0, 1},   // identity-like fallback
		{true, 2, 100},  // cheap recursive
		{true, 50, 100}, // expensive recursive
	}

	seed := Seed(3)
	for i := 0; i < 500; i++ {
		seed = Derive(seed, 1)

		// No budget: only the fallback is affordable.
		qt.Assert(t, qt.Equals(selectDescriptor(seed, 0, descr, -1), 0))

		// Any affordable recursive entry beats the fallback.
		qt.Assert(t, qt.Equals(selectDescriptor(seed, 10, descr, -1), 1))

		// Exclusion removes an entry even when affordable.
		qt.Assert(t, qt.Equals(selectDescriptor(seed, 10, descr, 1), 0))

		// With both recursive entries affordable, the pick is one of them,
		// never the fallback.
		which := selectDescriptor(seed, 100, descr, -1)
		qt.Assert(t, qt.IsTrue(which == 1 || which == 2))
	}

	qt.Assert(t, qt.PanicMatches(func() {
		selectDescriptor(1, 0, []descriptor{{false, 5, 1}}, -1)
	}, "bijection: no affordable entry in selection pool"))
}

func TestSplitBudget(t *testing.T) {
	t.Parallel()
	parts := []descriptor{
		{true, 3, 200},
		{true, 0, 100},
		{true, 7, 100},
	}
	var minSum Cycles
	for _, p := range parts {
		minSum += p.minCycles
	}

	seed := Seed(11)
	for _, budget := range []Cycles{minSum, minSum + 1, 50, 1000} {
		for i := 0; i < 200; i++ {
			seed = Derive(seed, 1)
			out := splitBudget(seed, budget, parts)
			qt.Assert(t, qt.Equals(len(out), len(parts)))
			var sum Cycles
			for j, p := range parts {
				qt.Assert(t, qt.IsTrue(out[j] >= p.minCycles))
				sum += out[j]
			}
			qt.Assert(t, qt.IsTrue(sum <= budget))
		}
	}

	qt.Assert(t, qt.PanicMatches(func() {
		splitBudget(1, 2, parts)
	}, "bijection: budget split underflow"))
}
