// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// ChunkKind classifies an auxiliary chunk by the type-key of its first
// record (spec.md §4.4).
type ChunkKind uint8

const (
	ChunkObjects ChunkKind = iota // the primary stream; never appears in Chunks, only StreamLayout.Main
	ChunkAssetPayload
	ChunkArtboardCatalog
	ChunkUnknown
)

func (k ChunkKind) String() string {
	switch k {
	case ChunkObjects:
		return "Objects"
	case ChunkAssetPayload:
		return "AssetPayload"
	case ChunkArtboardCatalog:
		return "ArtboardCatalog"
	case ChunkUnknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// Chunk is one auxiliary record sequence following the main object stream,
// delimited by a type-key 0 terminator.
type Chunk struct {
	Kind    ChunkKind
	Records []*Record

	// LeadingPadding counts extra type-key-0 terminators observed
	// immediately before this chunk (i.e. empty chunks some producers
	// emit), so exact mode can reproduce them at the right position
	// rather than only at the end of the stream.
	LeadingPadding int

	// Offset and Length are populated only in exact mode, used by the
	// exact-mode reconstructor to verify byte-for-byte equality.
	Offset int64
	Length int64
}

// classifyChunk decides a chunk's kind from its first record's type key,
// per the table in spec.md §4.4.
func classifyChunk(firstTypeKey uint32) ChunkKind {
	switch firstTypeKey {
	case TypeAssetPayload:
		return ChunkAssetPayload
	case TypeArtboardCatalogEntry, TypeArtboardCatalogMarker:
		return ChunkArtboardCatalog
	default:
		return ChunkUnknown
	}
}

// StreamLayout is the full decoded shape of a container's byte stream:
// the primary object stream, zero or more auxiliary chunks, any padding
// terminators observed between/after them, and a trailing byte region.
type StreamLayout struct {
	Main []*Record

	Chunks []*Chunk

	// TrailingPadding counts extra type-key-0 terminators observed after
	// the last chunk (or after the main stream, if there are no chunks)
	// but before the trailer region.
	TrailingPadding int

	Trailer []byte
}

// TotalPadding sums every padding terminator across the whole layout, used
// for the Validator's info-level "multi-terminator padding" report.
func (l *StreamLayout) TotalPadding() int {
	total := l.TrailingPadding
	for _, c := range l.Chunks {
		total += c.LeadingPadding
	}
	return total
}

// DecodeStreamLayout decodes the primary object stream followed by the
// chunk region, stopping at either a clean end of file or a byte region
// that cannot be parsed as a record stream (stored verbatim as Trailer).
func DecodeStreamLayout(ctx Context, bs *Bitstream, hdr *Header, catalog *SchemaCatalog, report *Report) (*StreamLayout, error) {
	layout := &StreamLayout{}

	main, err := DecodeRecords(ctx, bs, hdr, catalog, report)
	if err != nil {
		return nil, err
	}
	layout.Main = main
	trackOpaque(report, main)

	pending := 0
	for {
		if bs.Remaining() == 0 {
			layout.TrailingPadding = pending
			return layout, nil
		}

		start := bs.Pos()
		ok, recs := probeDecodeRecords(ctx, bs, hdr, catalog, report)
		if !ok {
			bs.Seek(start)
			raw, rerr := bs.ReadRaw(bs.Remaining())
			if rerr != nil {
				return nil, rerr
			}
			layout.TrailingPadding = pending
			layout.Trailer = raw
			return layout, nil
		}

		if len(recs) == 0 {
			pending++
			continue
		}

		kind := classifyChunk(recs[0].TypeKey)
		trackOpaque(report, recs)
		layout.Chunks = append(layout.Chunks, &Chunk{
			Kind:           kind,
			Records:        recs,
			LeadingPadding: pending,
			Offset:         start,
			Length:         bs.Pos() - start,
		})
		pending = 0
	}
}

// probeDecodeRecords attempts to decode one chunk's worth of records
// without mutating the caller's report, escalating warnings to hard
// failures internally so a non-record trailing byte region (spec.md §4.4's
// "trailing byte region past the last parseable chunk") is detected rather
// than silently misparsed. On success it rewinds and replays the decode
// against the caller's report and ctx, so the caller's diagnostics reflect
// ctx.Strict as configured.
func probeDecodeRecords(ctx Context, bs *Bitstream, hdr *Header, catalog *SchemaCatalog, report *Report) (bool, []*Record) {
	start := bs.Pos()
	probeCtx := ctx
	probeCtx.Strict = true
	probeReport := &Report{}

	if _, err := DecodeRecords(probeCtx, bs, hdr, catalog, probeReport); err != nil {
		bs.Seek(start)
		return false, nil
	}

	bs.Seek(start)
	recs, err := DecodeRecords(ctx, bs, hdr, catalog, report)
	if err != nil {
		bs.Seek(start)
		return false, nil
	}
	return true, recs
}

// opaqueTypeKeys lists high-numbered type keys spec.md §9 leaves
// unresolved; records of these type keys are preserved but their meaning
// is unknown to this codec.
var opaqueTypeKeys = map[uint32]bool{64: true, 7776: true, 8064: true}

func trackOpaque(report *Report, records []*Record) {
	for _, r := range records {
		if opaqueTypeKeys[r.TypeKey] {
			report.AddOpaqueTypeKey(r.TypeKey)
		}
	}
}

// EncodeStreamLayout appends the full encoded byte stream for layout to buf.
// It fails with the same SchemaViolation refusal as EncodeRecords if any
// record in the main stream or an auxiliary chunk carries an undeclared
// property key.
func EncodeStreamLayout(ctx Context, buf []byte, layout *StreamLayout, hdr *Header, catalog *SchemaCatalog) ([]byte, error) {
	var err error
	buf, err = EncodeRecords(ctx, buf, layout.Main, hdr, catalog)
	if err != nil {
		return nil, err
	}
	for _, c := range layout.Chunks {
		for i := 0; i < c.LeadingPadding; i++ {
			buf = WriteVaruint(buf, 0)
		}
		buf, err = EncodeRecords(ctx, buf, c.Records, hdr, catalog)
		if err != nil {
			return nil, err
		}
	}
	for i := 0; i < layout.TrailingPadding; i++ {
		buf = WriteVaruint(buf, 0)
	}
	buf = append(buf, layout.Trailer...)
	return buf, nil
}
