// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

// selectDescriptor picks one affordable entry by weighted random choice,
// never returning exclude (pass a negative exclude to disable). Entries
// that can recurse are preferred whenever any of them is affordable, so
// remaining budget is spent on further composition rather than terminating
// early while cycles remain.
//
// The non-recursive pool can only be empty if the caller removed the
// identity entry, which has zero cost and nonzero weight; that is a
// build-time bug.
func selectDescriptor(seed Seed, budget Cycles, descr []descriptor, exclude int) int {
	rWeights := make([]uint64, len(descr))
	nrWeights := make([]uint64, len(descr))
	var sumR, sumNR uint64
	for i, d := range descr {
		if i == exclude || budget < d.minCycles {
			continue
		}
		if d.recursive {
			rWeights[i] = d.weight
			sumR += d.weight
		} else {
			nrWeights[i] = d.weight
			sumNR += d.weight
		}
	}
	if sumR > 0 {
		return pickWeighted(seed, rWeights)
	}
	if sumNR == 0 {
		panic("bijection: no affordable entry in selection pool")
	}
	return pickWeighted(seed, nrWeights)
}

// splitBudget divides budget across the parts, proportionally to their
// weights plus randomness. Every part is guaranteed its minCycles and the
// realized total never exceeds budget; the +1 on each raw magnitude avoids
// an all-zero split that the scaling step could not recover from.
func splitBudget(seed Seed, budget Cycles, parts []descriptor) []Cycles {
	leftover := budget
	for _, p := range parts {
		leftover -= p.minCycles
	}
	if leftover < 0 {
		panic("bijection: budget split underflow")
	}
	raw := make([]Cycles, len(parts))
	var total Cycles
	for i, p := range parts {
		raw[i] = Cycles(weakRandom(Derive(seed, i+1), p.weight)) + 1
		total += raw[i]
	}
	q := float64(leftover) / float64(total)
	out := make([]Cycles, len(parts))
	var realized Cycles
	for i, p := range parts {
		share := Cycles(float64(raw[i]) * q)
		out[i] = p.minCycles + share
		realized += share
	}
	if realized > leftover {
		panic("bijection: budget split exceeded leftover")
	}
	return out
}
