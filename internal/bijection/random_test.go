// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDeriveChains(t *testing.T) {
	t.Parallel()
	seed := Seed(0x1234567890abcdef)
	qt.Assert(t, qt.Equals(Derive(seed, 0), seed))
	qt.Assert(t, qt.Equals(Derive(seed, 3), Derive(Derive(seed, 2), 1)))
	qt.Assert(t, qt.Not(qt.Equals(Derive(seed, 1), seed)))
}

func TestSeedFromSite(t *testing.T) {
	t.Parallel()
	base := SeedFromSite(1, "a/b.go", 10, 0)
	qt.Assert(t, qt.Equals(SeedFromSite(1, "a/b.go", 10, 0), base))

	// The fold and the final derivation are both bijections of the running
	// state, so for a fixed file any line or index change must change the
	// seed.
	qt.Assert(t, qt.Not(qt.Equals(SeedFromSite(1, "a/b.go", 11, 0), base)))
	qt.Assert(t, qt.Not(qt.Equals(SeedFromSite(1, "a/b.go", 10, 1), base)))
	qt.Assert(t, qt.Not(qt.Equals(SeedFromSite(2, "a/b.go", 10, 0), base)))
}

func TestWeakRandomRange(t *testing.T) {
	t.Parallel()
	seed := Seed(99)
	for _, n := range []uint64{1, 2, 7, 100, 1 << 40} {
		for i := 0; i < 200; i++ {
			seed = Derive(seed, 1)
			qt.Assert(t, qt.IsTrue(weakRandom(seed, n) < n))
		}
	}
}

func TestPickWeighted(t *testing.T) {
	t.Parallel()
	// A zero weight disables its entry no matter the seed.
	seed := Seed(7)
	hits := make([]int, 4)
	for i := 0; i < 1000; i++ {
		seed = Derive(seed, 1)
		hits[pickWeighted(seed, []uint64{0, 100, 0, 100})]++
	}
	qt.Assert(t, qt.Equals(hits[0], 0))
	qt.Assert(t, qt.Equals(hits[2], 0))
	qt.Assert(t, qt.Equals(hits[1]+hits[3], 1000))

	qt.Assert(t, qt.PanicMatches(func() {
		pickWeighted(1, []uint64{0, 0})
	}, "bijection: weighted pick over an empty pool"))
}

func TestExpCycles(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		level int
		want  Cycles
	}{
		{-3, 0},
		{-1, 0},
		{0, 1},
		{1, 3},
		{2, 10},
		{3, 30},
		{4, 100},
		{5, 300},
		{6, 1000},
		{7, 3000},
		{8, 10000},
	} {
		qt.Assert(t, qt.Equals(ExpCycles(tc.level), tc.want), qt.Commentf("level %d", tc.level))
	}
}
