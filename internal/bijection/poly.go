// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package bijection

import (
	"fmt"
	"io"
	"strings"
)

type polyOp uint8

const (
	opAdd polyOp = iota // x += x0, costs 1 cycle
	opMul               // x *= x0, costs 3 cycles
)

// polyFunc is an arbitrary randomized polynomial-like mix of a half-width
// domain, used additively inside the Feistel round. It only adds and
// multiplies mod 2^w, so it needs no inverse of its own: the round applies
// the same value on both halves of the bijection.
//
// Seed indexes per step: 1 branch draw, 2 seed after a multiply, 3 seed
// after an add.
type polyFunc struct {
	mask uint64
	ops  []polyOp
	plus bool // trailing x+x0 when 1 or 2 cycles remain
}

func newPolyFunc(width int, seed Seed, cycles Cycles) *polyFunc {
	p := &polyFunc{mask: widthMask(width)}
	for cycles >= 3 {
		if pickWeighted(Derive(seed, 1), []uint64{100, 100}) == 1 {
			p.ops = append(p.ops, opMul)
			seed = Derive(seed, 2)
			cycles -= 3
		} else {
			p.ops = append(p.ops, opAdd)
			seed = Derive(seed, 3)
			cycles--
		}
	}
	p.plus = cycles > 0
	return p
}

func (p *polyFunc) eval(x0 uint64) uint64 {
	x := x0
	for _, op := range p.ops {
		if op == opMul {
			x = x * x0 & p.mask
		} else {
			x = (x + x0) & p.mask
		}
	}
	if p.plus {
		x = (x + x0) & p.mask
	}
	return x
}

func (p *polyFunc) dump(w io.Writer, depth int) {
	var steps []string
	for _, op := range p.ops {
		if op == opMul {
			steps = append(steps, "mul")
		} else {
			steps = append(steps, "add")
		}
	}
	if p.plus {
		steps = append(steps, "add")
	}
	if len(steps) == 0 {
		steps = append(steps, "id")
	}
	fmt.Fprintf(w, "%spoly %s\n", indent(depth), strings.Join(steps, ","))
}
