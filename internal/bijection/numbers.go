// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import "golang.org/x/exp/slices"

// constPool is the fixed pool the process-wide build constants are drawn
// from. Odd only, so the same pool serves the multiply-by-odd scheme.
var constPool = [...]uint8{3, 5, 7, 15, 25, 31}

// BuildConsts derives the three process-wide pool constants for one build
// secret. They are mutually distinct; transforms assume no collisions.
func BuildConsts(secret uint64) [3]uint8 {
	a := pickConst(Derive(Seed(secret^0xcec4b8ea4b89a1a9), 1), nil)
	b := pickConst(Derive(Seed(secret^0x5eec23716fa1d0aa), 1), []uint8{a})
	c := pickConst(Derive(Seed(secret^0xfb2de18f982a2d55), 1), []uint8{a, b})
	return [3]uint8{a, b, c}
}

// pickConst draws one pool constant, never returning any excluded one.
func pickConst(seed Seed, excluded []uint8) uint8 {
	weights := make([]uint64, len(constPool))
	for i, c := range constPool {
		if !slices.Contains(excluded, c) {
			weights[i] = 100
		}
	}
	return constPool[pickWeighted(seed, weights)]
}

// randomConst draws one entry of lst.
func randomConst(seed Seed, lst []uint64) uint64 {
	return lst[weakRandom(seed, uint64(len(lst)))]
}

// modInverse computes the multiplicative inverse of c modulo 2^w, where
// mask is 2^w-1, via Newton iteration: every step doubles the number of
// correct low bits, and an odd c starts with three (c*c == 1 mod 8).
// Running the iteration mod 2^64 and masking down is sound because an
// inverse mod 2^64 reduces to an inverse mod any smaller power of two.
func modInverse(c, mask uint64) uint64 {
	if c&1 == 0 {
		panic("bijection: even constant has no inverse mod 2^n")
	}
	inv := c
	for i := 0; i < 5; i++ {
		inv *= 2 - c*inv
	}
	inv &= mask
	if c*inv&mask != 1 {
		panic("bijection: modular inverse failed self-check")
	}
	return inv
}

// roughSqrt is a deliberately cheap piecewise-linear square root
// approximation anchored at powers of four. It only bounds multiplier
// selection for the rotating-invariant context, so coarse error is fine:
// the bound is a safety margin, not a contract. Inputs at or above 2^62
// clamp to the last exact anchor.
func roughSqrt(x uint64) uint64 {
	var px, py uint64
	for i := 1; i <= 31; i++ {
		r := uint64(1) << i
		cx, cy := r*r, r
		if x < cx {
			return py + uint64(float64(x-px)*float64(cy-py)/float64(cx-px))
		}
		px, py = cx, cy
	}
	return 1 << 31
}

// widthMask returns 2^width-1 for the supported widths.
func widthMask(width int) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return 1<<width - 1
}
