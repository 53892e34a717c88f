// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package cloak

import "mvdan.cc/cloak/internal/bijection"

// valueTransform is what a wrapper stores its value through: either a full
// transform tree, or the single-word passthrough used when the
// configuration carries no secret.
type valueTransform interface {
	words() int
	encode(x uint64, out []uint64)
	decode(in []uint64) uint64
}

type treeTransform struct {
	tree *bijection.Tree
}

func (t treeTransform) words() int                    { return t.tree.Words() }
func (t treeTransform) encode(x uint64, out []uint64) { t.tree.Encode(x, out) }
func (t treeTransform) decode(in []uint64) uint64     { return t.tree.Decode(in) }

type passthrough struct{}

func (passthrough) words() int                    { return 1 }
func (passthrough) encode(x uint64, out []uint64) { out[0] = x }
func (passthrough) decode(in []uint64) uint64     { return in[0] }

func newTransform(cfg *Config, site Site, level, width int, literal bool) valueTransform {
	if cfg == nil || !cfg.present {
		return passthrough{}
	}
	tree := bijection.Build(bijection.Params{
		Width:   width,
		Seed:    site.seed(cfg.secret),
		Cycles:  cfg.budget(level),
		Consts:  cfg.consts,
		Literal: literal,
	})
	return treeTransform{tree: tree}
}
