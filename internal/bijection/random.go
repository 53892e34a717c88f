// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

// Seed is an opaque 64-bit state from which every randomized choice in a
// transform tree is derived. Each tree node derives its own seeds with fixed
// per-purpose iteration indexes, so a build is a pure function of the root
// seed.
type Seed uint64

// Cycles counts the abstract runtime cost budgeted for a (sub)tree.
// Signed, so that underflow is detectable instead of silently wrapping.
type Cycles int32

const (
	lcgMul = 6364136223846793005
	lcgAdd = 1442695040888963407
)

// Derive returns the iteration-th seed in the chain rooted at seed.
// It is non-cryptographic by design: this randomness drives obfuscation
// variety, not security.
func Derive(seed Seed, iteration int) Seed {
	for i := 0; i < iteration; i++ {
		seed = seed*lcgMul + lcgAdd
	}
	return seed
}

// SeedFromSite mixes the process-wide build secret with one call site
// identity. The fold over the file bytes is order-dependent (djb2 style) so
// distinct sites diverge even under the same secret; the final Derive step
// smooths the weak low-order bits of the fold.
func SeedFromSite(secret uint64, file string, line, index int) Seed {
	s := Seed(secret ^ uint64(uint32(line)) ^ uint64(uint32(index))<<32)
	for i := 0; i < len(file); i++ {
		s = (s << 5) + s + Seed(file[i])
	}
	return Derive(s, 1)
}

// weakRandom extracts a value in [0, n) from the high bits of seed.
// Biased for large n; acceptable here.
func weakRandom(seed Seed, n uint64) uint64 {
	return (uint64(seed) >> 32) % n
}

// pickWeighted draws an index into weights proportionally to the weights.
// A zero total weight means the caller built an empty pool, which is a
// build-time bug, never a runtime condition.
func pickWeighted(seed Seed, weights []uint64) int {
	var total uint64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		panic("bijection: weighted pick over an empty pool")
	}
	ref := weakRandom(seed, total)
	for i, w := range weights {
		if ref < w {
			return i
		}
		ref -= w
	}
	panic("unreachable")
}
