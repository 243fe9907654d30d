// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func TestVaruintRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 127, 128, 300, 16384, 1 << 35, ^uint64(0)}
	for _, v := range tests {
		buf := WriteVaruint(nil, v)
		bs := NewBitstream(NewSource(buf))
		got, err := bs.ReadVaruint()
		if err != nil {
			t.Fatalf("ReadVaruint(%d) error: %v", v, err)
		}
		if got != v {
			t.Errorf("ReadVaruint roundtrip: got %d, want %d", got, v)
		}
		if bs.Pos() != int64(len(buf)) {
			t.Errorf("ReadVaruint(%d) consumed %d bytes, want %d", v, bs.Pos(), len(buf))
		}
	}
}

func TestReadVaruintUnterminated(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80}
	bs := NewBitstream(NewSource(buf))
	if _, err := bs.ReadVaruint(); err == nil {
		t.Fatal("expected error reading unterminated varuint, got nil")
	}
}

func TestWriteVaruintWidthNonMinimal(t *testing.T) {
	buf := WriteVaruintWidth(nil, 1, 3)
	want := []byte{0x81, 0x80, 0x00}
	if len(buf) != len(want) {
		t.Fatalf("WriteVaruintWidth length = %d, want %d", len(buf), len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, buf[i], want[i])
		}
	}

	bs := NewBitstream(NewSource(buf))
	got, width, err := bs.ReadVaruintW()
	if err != nil {
		t.Fatalf("ReadVaruintW error: %v", err)
	}
	if got != 1 || width != 3 {
		t.Errorf("ReadVaruintW = (%d, %d), want (1, 3)", got, width)
	}
}

func TestStringRoundTrip(t *testing.T) {
	buf := WriteString(nil, "hello artboard")
	bs := NewBitstream(NewSource(buf))
	s, err := bs.ReadString()
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if s != "hello artboard" {
		t.Errorf("ReadString = %q, want %q", s, "hello artboard")
	}
}

func TestBytesRawRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0xff, 0x00, 0xaa}
	buf := WriteBytesRaw(nil, data)
	bs := NewBitstream(NewSource(buf))
	got, err := bs.ReadBytesRaw()
	if err != nil {
		t.Fatalf("ReadBytesRaw error: %v", err)
	}
	if len(got) != len(data) {
		t.Fatalf("ReadBytesRaw length = %d, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("byte %d = %#x, want %#x", i, got[i], data[i])
		}
	}
}

func TestColorRoundTrip(t *testing.T) {
	buf := WriteColor(nil, 0xAABBCCDD)
	bs := NewBitstream(NewSource(buf))
	got, err := bs.ReadColor()
	if err != nil {
		t.Fatalf("ReadColor error: %v", err)
	}
	if got != 0xAABBCCDD {
		t.Errorf("ReadColor = %#x, want %#x", got, 0xAABBCCDD)
	}
}

func TestF32RoundTrip(t *testing.T) {
	buf := WriteF32(nil, 3.5)
	bs := NewBitstream(NewSource(buf))
	got, err := bs.ReadF32()
	if err != nil {
		t.Fatalf("ReadF32 error: %v", err)
	}
	if got != 3.5 {
		t.Errorf("ReadF32 = %v, want 3.5", got)
	}
}

func TestReadPastEndOfBuffer(t *testing.T) {
	bs := NewBitstream(NewSource([]byte{0x01, 0x02}))
	if _, err := bs.ReadRaw(10); err == nil {
		t.Fatal("expected error reading past end of buffer, got nil")
	}
}

func TestVaruintWidth(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
	}
	for _, tt := range tests {
		if got := VaruintWidth(tt.v); got != tt.want {
			t.Errorf("VaruintWidth(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}
