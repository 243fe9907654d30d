// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func TestDecodeStreamLayoutMainOnly(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	buf := buildContainer(Context{}, hdr, main, nil)

	bs := NewBitstream(NewSource(buf))
	bs.Seek(int64(len(EncodeHeader(nil, hdr))))
	report := &Report{}
	layout, err := DecodeStreamLayout(Context{}, bs, hdr, NewSchemaCatalog(), report)
	if err != nil {
		t.Fatalf("DecodeStreamLayout error: %v", err)
	}
	if len(layout.Main) != len(main) {
		t.Fatalf("decoded %d main records, want %d", len(layout.Main), len(main))
	}
	if len(layout.Chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(layout.Chunks))
	}
}

func TestDecodeStreamLayoutAssetPayloadChunk(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	hdr.AddKey(PropBytes, ValueBytes)
	assetChunk := &Chunk{Kind: ChunkAssetPayload, Records: []*Record{
		rec(TypeAssetPayload, uintProp(PropID, 3), bytesProp(PropBytes, []byte{0xde, 0xad, 0xbe, 0xef})),
	}}

	buf := buildContainer(Context{}, hdr, main, []*Chunk{assetChunk})
	bs := NewBitstream(NewSource(buf))
	bs.Seek(int64(len(EncodeHeader(nil, hdr))))
	report := &Report{}
	layout, err := DecodeStreamLayout(Context{}, bs, hdr, NewSchemaCatalog(), report)
	if err != nil {
		t.Fatalf("DecodeStreamLayout error: %v", err)
	}
	if len(layout.Chunks) != 1 {
		t.Fatalf("decoded %d chunks, want 1", len(layout.Chunks))
	}
	if layout.Chunks[0].Kind != ChunkAssetPayload {
		t.Errorf("chunk kind = %v, want AssetPayload", layout.Chunks[0].Kind)
	}
	v, ok := layout.Chunks[0].Records[0].Get(PropBytes)
	if !ok || len(v.Bytes) != 4 {
		t.Errorf("asset payload bytes not round-tripped: %+v", v)
	}
}

func TestDecodeStreamLayoutArtboardCatalogChunk(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	catalogChunk := &Chunk{Kind: ChunkArtboardCatalog, Records: []*Record{
		rec(TypeArtboardCatalogEntry, uintProp(PropID, 2)),
	}}

	buf := buildContainer(Context{}, hdr, main, []*Chunk{catalogChunk})
	bs := NewBitstream(NewSource(buf))
	bs.Seek(int64(len(EncodeHeader(nil, hdr))))
	report := &Report{}
	layout, err := DecodeStreamLayout(Context{}, bs, hdr, NewSchemaCatalog(), report)
	if err != nil {
		t.Fatalf("DecodeStreamLayout error: %v", err)
	}
	if len(layout.Chunks) != 1 || layout.Chunks[0].Kind != ChunkArtboardCatalog {
		t.Fatalf("expected one ArtboardCatalog chunk, got %+v", layout.Chunks)
	}
}

func TestEncodeStreamLayoutPreservesPadding(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	hdr.AddKey(PropBytes, ValueBytes)
	assetChunk := &Chunk{
		Kind:           ChunkAssetPayload,
		Records:        []*Record{rec(TypeAssetPayload, uintProp(PropID, 3), bytesProp(PropBytes, []byte{1, 2}))},
		LeadingPadding: 2,
	}
	layout := &StreamLayout{Main: main, Chunks: []*Chunk{assetChunk}, TrailingPadding: 1}
	catalog := NewSchemaCatalog()

	buf := EncodeHeader(nil, hdr)
	buf, err := EncodeStreamLayout(Context{}, buf, layout, hdr, catalog)
	if err != nil {
		t.Fatalf("EncodeStreamLayout error: %v", err)
	}

	bs := NewBitstream(NewSource(buf))
	if _, err := DecodeHeader(Context{}, bs, catalog); err != nil {
		t.Fatalf("DecodeHeader error: %v", err)
	}
	report := &Report{}
	decoded, err := DecodeStreamLayout(Context{}, bs, hdr, catalog, report)
	if err != nil {
		t.Fatalf("DecodeStreamLayout error: %v", err)
	}
	if decoded.TotalPadding() != 3 {
		t.Errorf("TotalPadding() = %d, want 3", decoded.TotalPadding())
	}
	if len(decoded.Chunks) != 1 || decoded.Chunks[0].LeadingPadding != 2 {
		t.Fatalf("chunk leading padding not preserved: %+v", decoded.Chunks)
	}
	if decoded.TrailingPadding != 1 {
		t.Errorf("TrailingPadding = %d, want 1", decoded.TrailingPadding)
	}
}

func TestDecodeStreamLayoutCapturesTrailer(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	buf := buildContainer(Context{}, hdr, main, nil)
	buf = append(buf, 0xff, 0xfe, 0xfd)

	bs := NewBitstream(NewSource(buf))
	bs.Seek(int64(len(EncodeHeader(nil, hdr))))
	report := &Report{}
	layout, err := DecodeStreamLayout(Context{}, bs, hdr, NewSchemaCatalog(), report)
	if err != nil {
		t.Fatalf("DecodeStreamLayout error: %v", err)
	}
	if len(layout.Trailer) != 3 {
		t.Fatalf("trailer length = %d, want 3", len(layout.Trailer))
	}
	if layout.Trailer[0] != 0xff || layout.Trailer[1] != 0xfe || layout.Trailer[2] != 0xfd {
		t.Errorf("trailer bytes = %v, want [ff fe fd]", layout.Trailer)
	}
}
