// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package cloak

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestParseSecret(t *testing.T) {
	t.Parallel()
	for _, secret := range []uint64{0, 1, 0xdeadbeefcafe1234, ^uint64(0)} {
		got, err := ParseSecret(FormatSecret(secret))
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, secret))

		// Padded base64 is accepted too.
		got, err = ParseSecret(FormatSecret(secret) + "=")
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.Equals(got, secret))
	}

	// Longer inputs use their first eight bytes.
	got, err := ParseSecret("AAAAAAAAAAAAAAAAAAAAAA")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, uint64(0)))

	_, err = ParseSecret("c2hvcnQ") // "short"
	qt.Assert(t, qt.ErrorMatches(err, `secret needs at least 8 bytes, have 5`))

	_, err = ParseSecret("not!base64@@")
	qt.Assert(t, qt.ErrorMatches(err, `error decoding secret: .*`))
}

func TestParseSecretRandom(t *testing.T) {
	t.Parallel()
	_, err := ParseSecret("random")
	qt.Assert(t, qt.IsNil(err))
}
