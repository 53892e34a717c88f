// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package cloak

import (
	"runtime"

	"mvdan.cc/cloak/internal/bijection"
)

// A Site identifies one wrapper construction point, so that distinct call
// sites get distinct transform trees while rebuilding the same source with
// the same secret reproduces them exactly. Use paths relative to the module
// root; absolute paths tie the transforms to the build machine's layout.
type Site struct {
	File  string
	Line  int
	Index int
}

// At returns the site for the given file and line.
func At(file string, line int) Site {
	return Site{File: file, Line: line}
}

// Here returns the site of its own call. Handy for hand-written wrappers,
// though the file identity then follows whatever paths the build embeds.
func Here() Site {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return Site{File: "unknown", Line: 0}
	}
	return Site{File: file, Line: line}
}

// WithIndex distinguishes multiple wrappers built on the same line.
func (s Site) WithIndex(i int) Site {
	s.Index = i
	return s
}

func (s Site) seed(secret uint64) bijection.Seed {
	return bijection.SeedFromSite(secret, s.File, s.Line, s.Index)
}
