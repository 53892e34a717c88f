// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

// Package cloak hides integer constants and variables behind randomized,
// reversible transforms chosen deterministically at construction time, so
// inspecting a compiled artifact does not trivially reveal the plain
// values. The transforms are cheap reversible obfuscation, not encryption.
//
// A Config carries the 64-bit build secret. Every wrapper built from the
// same secret, call site and strength level is identical, which keeps
// builds reproducible. Without a secret, every wrapper degrades to a
// transparent passthrough that behaves bit-for-bit like a plain integer —
// the mode meant for debug builds and correctness testing.
package cloak

import (
	"mvdan.cc/cloak/internal/bijection"
)

// MaxLevel is the highest meaningful strength level; levels above it are
// accepted but budget the same as intermediate ones on the fixed curve.
const MaxLevel = 6

// Config selects between the randomized engine (secret present) and the
// passthrough mode (no secret). Configs are immutable once created and safe
// for concurrent use.
type Config struct {
	secret  uint64
	present bool
	scale   int
	consts  [3]uint8
}

// New returns a configuration using the given build secret.
func New(secret uint64) *Config {
	return &Config{
		secret:  secret,
		present: true,
		consts:  bijection.BuildConsts(secret),
	}
}

// Passthrough returns a configuration with no build secret. Wrappers built
// from it store and return plain values.
func Passthrough() *Config { return &Config{} }

// WithScale returns a copy of c that shifts every requested strength level
// by n. A library built with scale 1 turns all of its level-0 call sites
// into level-1 ones without touching them.
func (c *Config) WithScale(n int) *Config {
	c2 := *c
	c2.scale = n
	return &c2
}

func (c *Config) budget(level int) bijection.Cycles {
	return bijection.ExpCycles(level + c.scale)
}
