// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package cloak

import (
	"cmp"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// A Var holds a mutable integer whose in-memory form is the transformed
// representation; the plain value exists only transiently, inside a read or
// a mutation. Every mutation decodes, applies the operation on the plain
// value, and re-encodes, so under a variable transform both halves of the
// bijection run each time.
//
// A Var is not safe for concurrent use, same as a plain integer variable.
type Var[T constraints.Integer] struct {
	t   valueTransform
	val []uint64
}

// NewVar builds a hidden variable at the given site and strength level,
// holding v.
func NewVar[T constraints.Integer](cfg *Config, site Site, level int, v T) *Var[T] {
	t := newTransform(cfg, site, level, widthOf[T](), false)
	hidden := &Var[T]{t: t, val: make([]uint64, t.words())}
	t.encode(toWord(v), hidden.val)
	return hidden
}

// Value returns the plain value.
func (v *Var[T]) Value() T { return T(v.t.decode(v.val)) }

// Set replaces the plain value. Mutators return v so that updates chain.
func (v *Var[T]) Set(x T) *Var[T] {
	v.t.encode(toWord(x), v.val)
	return v
}

func (v *Var[T]) Add(x T) *Var[T] { return v.Set(v.Value() + x) }
func (v *Var[T]) Sub(x T) *Var[T] { return v.Set(v.Value() - x) }
func (v *Var[T]) Mul(x T) *Var[T] { return v.Set(v.Value() * x) }
func (v *Var[T]) Div(x T) *Var[T] { return v.Set(v.Value() / x) }
func (v *Var[T]) Mod(x T) *Var[T] { return v.Set(v.Value() % x) }

func (v *Var[T]) Inc() *Var[T] { return v.Add(1) }
func (v *Var[T]) Dec() *Var[T] { return v.Sub(1) }

func (v *Var[T]) Equal(x T) bool   { return v.Value() == x }
func (v *Var[T]) Less(x T) bool    { return v.Value() < x }
func (v *Var[T]) Greater(x T) bool { return v.Value() > x }

// Cmp orders the hidden value against x as cmp.Compare does.
func (v *Var[T]) Cmp(x T) int { return cmp.Compare(v.Value(), x) }

func widthOf[T constraints.Integer]() int {
	return int(unsafe.Sizeof(*new(T))) * 8
}

// toWord narrows v to its type's width inside a uint64 word. Signed values
// keep their two's-complement bit pattern, which the T conversion on the
// way out restores exactly.
func toWord[T constraints.Integer](v T) uint64 {
	return uint64(v) & (^uint64(0) >> (64 - widthOf[T]()))
}
