// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "fmt"

// ExactDriftAt compares two buffers byte-for-byte and returns the offset of
// the first divergence. drift is false when the buffers are identical. A
// length mismatch is reported at the shorter buffer's length, matching
// spec.md §4.8's "aborts with ExactDriftAt(offset) if any byte differs,
// pointing at the first divergence."
func ExactDriftAt(original, produced []byte) (offset int64, drift bool) {
	n := len(original)
	if len(produced) < n {
		n = len(produced)
	}
	for i := 0; i < n; i++ {
		if original[i] != produced[i] {
			return int64(i), true
		}
	}
	if len(original) != len(produced) {
		return int64(n), true
	}
	return 0, false
}

// DescribeDivergence returns a short "(in chunk N, kind K)" / "(in trailing
// padding or trailer)" / "(in main object stream)" suffix locating offset
// within layout, for a more
// actionable error message than a bare byte number. Exact-mode metadata
// (each Chunk's Offset/Length, captured during decode) is exactly what
// makes this possible without a second parse pass.
func DescribeDivergence(layout *StreamLayout, offset int64) string {
	for i, c := range layout.Chunks {
		if offset >= c.Offset && offset < c.Offset+c.Length {
			return fmt.Sprintf(" (in chunk %d, kind %s)", i, c.Kind)
		}
	}
	if len(layout.Chunks) > 0 {
		last := layout.Chunks[len(layout.Chunks)-1]
		if offset >= last.Offset+last.Length {
			return " (in trailing padding or trailer)"
		}
	}
	return " (in main object stream)"
}
