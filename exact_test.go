// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func TestExactDriftAtIdentical(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	if _, drift := ExactDriftAt(a, b); drift {
		t.Error("identical buffers should not drift")
	}
}

func TestExactDriftAtFirstMismatch(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 9, 4}
	offset, drift := ExactDriftAt(a, b)
	if !drift || offset != 2 {
		t.Errorf("ExactDriftAt = (%d, %v), want (2, true)", offset, drift)
	}
}

func TestExactDriftAtLengthMismatch(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3, 4}
	offset, drift := ExactDriftAt(a, b)
	if !drift || offset != 3 {
		t.Errorf("ExactDriftAt = (%d, %v), want (3, true)", offset, drift)
	}
}

func TestFileEncodeExactModeRoundTrip(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	original := buildContainer(Context{}, hdr, main, nil)

	f, err := NewBytes(original, Context{Exact: true})
	if err != nil {
		t.Fatalf("NewBytes error: %v", err)
	}
	defer f.Close()

	out, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if len(out) != len(original) {
		t.Fatalf("Encode length = %d, want %d", len(out), len(original))
	}
	for i := range original {
		if out[i] != original[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, out[i], original[i])
		}
	}
}

func TestFileEncodeExactModeDetectsDrift(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	original := buildContainer(Context{}, hdr, main, nil)

	f, err := NewBytes(original, Context{Exact: true})
	if err != nil {
		t.Fatalf("NewBytes error: %v", err)
	}
	defer f.Close()

	// Mutate the graph after decode so the exact-mode re-encode necessarily
	// diverges from the captured original bytes.
	f.Graph.SetProperty(1, PropName, StringValue("Renamed"))

	_, err = f.Encode()
	if err == nil {
		t.Fatal("expected ExactContractBroken error after mutating the graph, got nil")
	}
	rivErr, ok := err.(*Error)
	if !ok || rivErr.Kind != KindExactContractBroken {
		t.Errorf("got error %v, want KindExactContractBroken", err)
	}
}
