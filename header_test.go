// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	hdr := newTestHeader()
	buf := EncodeHeader(nil, hdr)

	bs := NewBitstream(NewSource(buf))
	catalog := NewSchemaCatalog()
	got, err := DecodeHeader(Context{}, bs, catalog)
	if err != nil {
		t.Fatalf("DecodeHeader error: %v", err)
	}

	if got.Major != hdr.Major || got.Minor != hdr.Minor || got.FileID != hdr.FileID {
		t.Errorf("decoded header = %+v, want major/minor/fileid %d/%d/%d", got, hdr.Major, hdr.Minor, hdr.FileID)
	}
	if len(got.PropertyKeys) != len(hdr.PropertyKeys) {
		t.Fatalf("decoded %d property keys, want %d", len(got.PropertyKeys), len(hdr.PropertyKeys))
	}
	for i, k := range hdr.PropertyKeys {
		if got.PropertyKeys[i] != k {
			t.Errorf("property key %d = %d, want %d", i, got.PropertyKeys[i], k)
		}
	}
	if bs.Pos() != int64(len(buf)) {
		t.Errorf("DecodeHeader left %d bytes unconsumed", int64(len(buf))-bs.Pos())
	}
}

func TestHeaderBadMagic(t *testing.T) {
	buf := append([]byte("RIVX"), 0x07, 0x00, 0x00, 0x00)
	bs := NewBitstream(NewSource(buf))
	if _, err := DecodeHeader(Context{}, bs, NewSchemaCatalog()); err == nil {
		t.Fatal("expected error for bad magic, got nil")
	}
}

func TestHeaderUnsupportedVersion(t *testing.T) {
	hdr := &Header{Major: 999, Minor: 0, FileID: 1}
	buf := EncodeHeader(nil, hdr)
	bs := NewBitstream(NewSource(buf))
	_, err := DecodeHeader(Context{}, bs, NewSchemaCatalog())
	if err == nil {
		t.Fatal("expected Unsupported error for future major version, got nil")
	}
	rivErr, ok := err.(*Error)
	if !ok || rivErr.Kind != KindUnsupported {
		t.Errorf("got error %v, want KindUnsupported", err)
	}
}

func TestBitmapCodeForKey(t *testing.T) {
	hdr := newTestHeader()
	typ, ok := hdr.BitmapCodeForKey(PropWidth)
	if !ok {
		t.Fatal("BitmapCodeForKey(PropWidth) not found")
	}
	if typ != ValueDouble {
		t.Errorf("BitmapCodeForKey(PropWidth) = %v, want %v", typ, ValueDouble)
	}

	if _, ok := hdr.BitmapCodeForKey(999999); ok {
		t.Error("BitmapCodeForKey(999999) should not be found")
	}
}

func TestAddKeyGrowsBitmapCapacity(t *testing.T) {
	hdr := &Header{}
	for i := uint32(1); i <= 9; i++ {
		hdr.AddKey(i, ValueUint)
	}
	if hdr.BitmapCapacity() < 9 {
		t.Errorf("BitmapCapacity() = %d, want >= 9", hdr.BitmapCapacity())
	}
	if !hdr.HasKey(5) {
		t.Error("HasKey(5) = false, want true")
	}
}
