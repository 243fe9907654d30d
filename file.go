// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// File is a decoded container: its header, its full stream layout (main
// object stream, auxiliary chunks, trailer), the derived GraphModel, and
// the catalog used to interpret it. Mirrors the teacher's File type, which
// ties together DOS header / NT header / sections / directories behind one
// handle with a single Parse entry point.
type File struct {
	Header  *Header
	Layout  *StreamLayout
	Graph   *GraphModel
	Catalog *SchemaCatalog
	Report  *Report

	ctx Context
	src *Source
}

// New opens path and memory-maps it for read-only decoding.
func New(path string, ctx Context) (*File, error) {
	src, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	f, err := decode(ctx, src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return f, nil
}

// NewBytes decodes an in-memory buffer. The caller retains ownership of
// data; Close is then a no-op.
func NewBytes(data []byte, ctx Context) (*File, error) {
	return decode(ctx, NewSource(data))
}

func decode(ctx Context, src *Source) (*File, error) {
	if src.Len() < len(Magic) {
		return nil, ErrShortMagic
	}

	bs := NewBitstream(src)
	catalog := NewSchemaCatalog()
	report := &Report{}

	hdr, err := DecodeHeader(ctx, bs, catalog)
	if err != nil {
		return nil, err
	}

	layout, err := DecodeStreamLayout(ctx, bs, hdr, catalog, report)
	if err != nil {
		return nil, err
	}

	if layout.TotalPadding() > 0 {
		issue := Issue{Severity: SeverityInfo, Kind: KindMalformed, Offset: -1,
			Message: "multi-terminator padding observed in stream"}
		report.Add(issue)
		logIssue(ctx, issue)
	}

	catalogOrder := artboardCatalogOrder(layout)
	graph := NewGraphModel(layout.Main, catalogOrder)

	f := &File{
		Header:  hdr,
		Layout:  layout,
		Graph:   graph,
		Catalog: catalog,
		Report:  report,
		ctx:     ctx,
		src:     src,
	}

	return f, nil
}

// artboardCatalogOrder extracts the ordered list of artboard local ids from
// any ArtboardCatalog chunks present, in chunk and record order.
func artboardCatalogOrder(layout *StreamLayout) []uint64 {
	var order []uint64
	for _, c := range layout.Chunks {
		if c.Kind != ChunkArtboardCatalog {
			continue
		}
		for _, r := range c.Records {
			if r.TypeKey != TypeArtboardCatalogEntry {
				continue
			}
			if id, ok := r.ID(); ok {
				order = append(order, id)
			}
		}
	}
	return order
}

// Close releases any memory-mapped backing file.
func (f *File) Close() error {
	if f.src != nil {
		return f.src.Close()
	}
	return nil
}

// Encode re-serializes f. In exact mode it additionally verifies the
// produced buffer against the original bytes and returns an
// ExactContractBroken error identifying the first divergence if they
// differ.
func (f *File) Encode() ([]byte, error) {
	buf := EncodeHeader(nil, f.Header)
	layout := &StreamLayout{
		Main:            f.Graph.CompactRecords(),
		Chunks:          f.Layout.Chunks,
		TrailingPadding: f.Layout.TrailingPadding,
		Trailer:         f.Layout.Trailer,
	}
	buf, err := EncodeStreamLayout(f.ctx, buf, layout, f.Header, f.Catalog)
	if err != nil {
		return nil, err
	}

	if f.ctx.Exact && f.src != nil {
		if offset, drift := ExactDriftAt(f.src.Bytes(), buf); drift {
			where := DescribeDivergence(f.Layout, offset)
			err := newErrAt(KindExactContractBroken, offset, "exact-mode output diverges from input%s", where)
			f.ctx.log().Errorf("%s", err)
			return buf, err
		}
	}
	return buf, nil
}
