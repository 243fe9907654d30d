// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// Fuzz is a go-fuzz-style harness: decode data, then re-encode it, and
// report whether the round trip completed without panicking or erroring.
// A crash or hang reported against this entry point is a bug in the
// decoder's bounds-checking, since Bitstream is supposed to turn every
// out-of-range read into an *Error rather than a panic.
func Fuzz(data []byte) int {
	f, err := NewBytes(data, Context{})
	if err != nil {
		return 0
	}
	defer f.Close()

	if _, err := f.Encode(); err != nil {
		return 0
	}
	return 1
}
