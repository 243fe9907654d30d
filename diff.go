// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "fmt"

// GrowthBoundPercent is the size-growth ceiling a non-exact round trip is
// expected to stay within (spec.md §8's growth-bound testable property).
const GrowthBoundPercent = 5.0

// GrowthClass classifies a round trip's size delta against
// GrowthBoundPercent.
type GrowthClass uint8

const (
	GrowthPass GrowthClass = iota
	GrowthWarn
	GrowthFail
)

func (g GrowthClass) String() string {
	switch g {
	case GrowthPass:
		return "PASS"
	case GrowthWarn:
		return "WARN"
	case GrowthFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Delta is the result of comparing an original container against one
// produced from it, for the analyze subcommand and for regression tests
// that assert a round trip didn't silently drop or reorder objects.
type Delta struct {
	SizeBefore        int
	SizeAfter         int
	SizeGrowthPercent float64

	ObjectCountBefore int
	ObjectCountAfter  int

	// FirstTypeMismatchIndex is the index (among non-removed records) of the
	// first object whose type key differs between original and produced. If
	// the sequences agree up to the shorter length but differ in length, it
	// is that shorter length; it is -1 only when the sequences are identical.
	FirstTypeMismatchIndex int

	HeaderKeysAdded   []uint32
	HeaderKeysRemoved []uint32

	ChunkCountBefore int
	ChunkCountAfter  int
}

// Classify reports whether d's size growth falls within GrowthBoundPercent
// (PASS), within double that (WARN), or beyond it (FAIL). Shrinkage is
// always PASS.
func (d *Delta) Classify() GrowthClass {
	switch {
	case d.SizeGrowthPercent <= GrowthBoundPercent:
		return GrowthPass
	case d.SizeGrowthPercent <= GrowthBoundPercent*2:
		return GrowthWarn
	default:
		return GrowthFail
	}
}

// Diff compares original and produced (already-decoded Files) plus their
// raw bytes, and reports size growth, object-count drift, the first
// type-sequence mismatch, header key set changes, and chunk count drift.
func Diff(original, produced *File, originalBytes, producedBytes []byte) *Delta {
	d := &Delta{
		SizeBefore: len(originalBytes),
		SizeAfter:  len(producedBytes),
	}
	if d.SizeBefore > 0 {
		d.SizeGrowthPercent = float64(d.SizeAfter-d.SizeBefore) / float64(d.SizeBefore) * 100
	}

	a := original.Graph.CompactRecords()
	b := produced.Graph.CompactRecords()
	d.ObjectCountBefore = len(a)
	d.ObjectCountAfter = len(b)

	d.FirstTypeMismatchIndex = -1
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].TypeKey != b[i].TypeKey {
			d.FirstTypeMismatchIndex = i
			break
		}
	}
	if d.FirstTypeMismatchIndex == -1 && len(a) != len(b) {
		d.FirstTypeMismatchIndex = n
	}

	d.HeaderKeysAdded, d.HeaderKeysRemoved = diffKeySets(original.Header.PropertyKeys, produced.Header.PropertyKeys)

	d.ChunkCountBefore = len(original.Layout.Chunks)
	d.ChunkCountAfter = len(produced.Layout.Chunks)

	return d
}

func diffKeySets(before, after []uint32) (added, removed []uint32) {
	beforeSet := make(map[uint32]bool, len(before))
	for _, k := range before {
		beforeSet[k] = true
	}
	afterSet := make(map[uint32]bool, len(after))
	for _, k := range after {
		afterSet[k] = true
	}
	for _, k := range after {
		if !beforeSet[k] {
			added = append(added, k)
		}
	}
	for _, k := range before {
		if !afterSet[k] {
			removed = append(removed, k)
		}
	}
	return added, removed
}

// TrackSeries round-trips data through decode/encode cycles times in a
// row and returns the cumulative size growth (percent relative to the
// original byte count) observed after each cycle, supplementing spec.md's
// single-round-trip growth bound with the repeated-conversion tracking
// original_source/'s test harness performs (spec.md §9 supplement 1).
func TrackSeries(data []byte, ctx Context, cycles int) ([]float64, error) {
	sizes := make([]int, 0, cycles+1)
	sizes = append(sizes, len(data))

	cur := data
	for i := 0; i < cycles; i++ {
		f, err := NewBytes(cur, ctx)
		if err != nil {
			return nil, fmt.Errorf("cycle %d decode: %w", i, err)
		}
		out, err := f.Encode()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cycle %d encode: %w", i, err)
		}
		sizes = append(sizes, len(out))
		cur = out
	}

	growth := make([]float64, len(sizes)-1)
	for i := 1; i < len(sizes); i++ {
		growth[i-1] = float64(sizes[i]-sizes[0]) / float64(sizes[0]) * 100
	}
	return growth, nil
}

// HexDumpAround renders a classic 16-byte-per-line hex dump of data
// centered on offset, for surfacing exactly where an ExactContractBroken
// divergence sits (spec.md §9 supplement 3).
func HexDumpAround(data []byte, offset int64, contextBytes int) string {
	start := offset - int64(contextBytes)
	if start < 0 {
		start = 0
	}
	start -= start % 16
	end := offset + int64(contextBytes)
	if end > int64(len(data)) {
		end = int64(len(data))
	}

	out := ""
	for row := start; row < end; row += 16 {
		rowEnd := row + 16
		if rowEnd > int64(len(data)) {
			rowEnd = int64(len(data))
		}
		out += fmt.Sprintf("%08x  ", row)
		for i := row; i < row+16; i++ {
			if i < rowEnd {
				marker := ' '
				if i == offset {
					marker = '*'
				}
				out += fmt.Sprintf("%02x%c", data[i], marker)
			} else {
				out += "   "
			}
		}
		out += " |"
		for i := row; i < rowEnd; i++ {
			c := data[i]
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			out += string(rune(c))
		}
		out += "|\n"
	}
	return out
}
