// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "fmt"

// ParseColor parses a "#RGB", "#RRGGBB", or "#RRGGBBAA" string into the
// packed little-endian RGBA form Value.Color carries on the wire. Alpha
// defaults to 0xFF when omitted, per the Universal JSON bridge (spec.md
// §4.6).
func ParseColor(s string) (uint32, error) {
	if len(s) == 0 || s[0] != '#' {
		return 0, fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]

	var r, g, b, a uint8
	switch len(hex) {
	case 3:
		rr, gg, bb, err := parseShortTriplet(hex)
		if err != nil {
			return 0, err
		}
		r, g, b, a = rr, gg, bb, 0xFF
	case 6:
		rr, gg, bb, err := parseTriplet(hex)
		if err != nil {
			return 0, err
		}
		r, g, b, a = rr, gg, bb, 0xFF
	case 8:
		rr, gg, bb, err := parseTriplet(hex[:6])
		if err != nil {
			return 0, err
		}
		aa, err := parseByte(hex[6:8])
		if err != nil {
			return 0, err
		}
		r, g, b, a = rr, gg, bb, aa
	default:
		return 0, fmt.Errorf("color %q must be #RGB, #RRGGBB, or #RRGGBBAA", s)
	}

	return uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24, nil
}

// FormatColor renders v (the packed little-endian RGBA wire form) as
// "#RRGGBBAA".
func FormatColor(v uint32) string {
	r := byte(v)
	g := byte(v >> 8)
	b := byte(v >> 16)
	a := byte(v >> 24)
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

func parseShortTriplet(hex string) (r, g, b uint8, err error) {
	if len(hex) != 3 {
		return 0, 0, 0, fmt.Errorf("short color %q must have exactly 3 digits", hex)
	}
	rr, err := parseByte(hex[0:1] + hex[0:1])
	if err != nil {
		return 0, 0, 0, err
	}
	gg, err := parseByte(hex[1:2] + hex[1:2])
	if err != nil {
		return 0, 0, 0, err
	}
	bb, err := parseByte(hex[2:3] + hex[2:3])
	if err != nil {
		return 0, 0, 0, err
	}
	return rr, gg, bb, nil
}

func parseTriplet(hex string) (r, g, b uint8, err error) {
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("color %q must have exactly 6 digits", hex)
	}
	rr, err := parseByte(hex[0:2])
	if err != nil {
		return 0, 0, 0, err
	}
	gg, err := parseByte(hex[2:4])
	if err != nil {
		return 0, 0, 0, err
	}
	bb, err := parseByte(hex[4:6])
	if err != nil {
		return 0, 0, 0, err
	}
	return rr, gg, bb, nil
}

func parseByte(hex string) (uint8, error) {
	if len(hex) != 2 {
		return 0, fmt.Errorf("expected 2 hex digits, got %q", hex)
	}
	var v uint8
	for _, c := range hex {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= uint8(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint8(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint8(c-'A') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return v, nil
}
