// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package cloak

import "golang.org/x/exp/constraints"

// A Literal holds a fixed integer whose stored form is the transformed
// representation. The encode happens once, at construction; only the decode
// half runs per read, which is why literal transforms get the cheaper cost
// accounting and the extra storage-side hiding variants.
type Literal[T constraints.Integer] struct {
	t   valueTransform
	val []uint64
}

// NewLiteral builds a hidden constant at the given site and strength level.
func NewLiteral[T constraints.Integer](cfg *Config, site Site, level int, v T) Literal[T] {
	t := newTransform(cfg, site, level, widthOf[T](), true)
	val := make([]uint64, t.words())
	t.encode(toWord(v), val)
	return Literal[T]{t: t, val: val}
}

// Value returns the plain value.
func (l Literal[T]) Value() T { return T(l.t.decode(l.val)) }
