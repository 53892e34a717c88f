// Copyright (c) 2026, The Cloak Authors.
// See LICENSE for licensing information

package cloak

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// ParseSecret turns a command-line or environment string into a build
// secret. The value "random" draws a fresh secret from the system's
// entropy; anything else must be at least eight bytes of base64, with or
// without padding.
func ParseSecret(s string) (uint64, error) {
	if s == "random" {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			return 0, fmt.Errorf("error generating random secret: %v", err)
		}
		return binary.BigEndian.Uint64(buf), nil
	}
	// We expect unpadded base64, but to be nice, accept padded too.
	s = strings.TrimRight(s, "=")
	raw, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("error decoding secret: %v", err)
	}
	if len(raw) < 8 {
		return 0, fmt.Errorf("secret needs at least 8 bytes, have %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

// FormatSecret renders a secret the way ParseSecret accepts it.
func FormatSecret(secret uint64) string {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, secret)
	return base64.RawStdEncoding.EncodeToString(buf)
}
