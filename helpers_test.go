// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// Shared fixture builders for the table-driven tests in this package.
// There are no real .riv sample files in this environment, so every test
// container is assembled programmatically from the same encode primitives
// the package exposes.

func newTestHeaderKeys() []uint32 {
	return []uint32{PropID, PropParentID, PropName, PropWidth, PropHeight, PropMainArtboardID}
}

// newTestHeader returns a Header whose bitmap matches the built-in catalog
// types for the well-known keys, as DecodeHeader would produce from a real
// byte stream.
func newTestHeader() *Header {
	h := &Header{Major: 7, Minor: 0, FileID: 42}
	for _, k := range newTestHeaderKeys() {
		h.AddKey(k, builtinPropertyTypes[k])
	}
	return h
}

func rec(typeKey uint32, props ...Property) *Record {
	return &Record{TypeKey: typeKey, Properties: props}
}

func uintProp(key uint32, v uint64) Property  { return Property{Key: key, Value: UintValue(v)} }
func strProp(key uint32, v string) Property   { return Property{Key: key, Value: StringValue(v)} }
func dblProp(key uint32, v float32) Property  { return Property{Key: key, Value: DoubleValue(v)} }
func bytesProp(key uint32, v []byte) Property { return Property{Key: key, Value: BytesValue(v)} }

// buildContainer encodes hdr, main records, and chunk records into a
// complete byte stream, mirroring what a real .riv file's bytes would look
// like for the same logical content. It panics on a SchemaViolation refusal
// rather than returning an error, since every fixture here is expected to
// declare its own property keys; a panic here means the test itself is
// malformed.
func buildContainer(ctx Context, hdr *Header, main []*Record, chunks []*Chunk) []byte {
	buf := EncodeHeader(nil, hdr)
	catalog := NewSchemaCatalog()
	layout := &StreamLayout{Main: main, Chunks: chunks}
	out, err := EncodeStreamLayout(ctx, buf, layout, hdr, catalog)
	if err != nil {
		panic(err)
	}
	return out
}

func minimalArtboardGraph() (*Header, []*Record) {
	hdr := newTestHeader()
	backboard := rec(TypeBackboard, uintProp(PropID, 1), uintProp(PropMainArtboardID, 2))
	artboard := rec(TypeArtboard,
		uintProp(PropID, 2),
		uintProp(PropParentID, 1),
		strProp(PropName, "Main"),
		dblProp(PropWidth, 100),
		dblProp(PropHeight, 200),
	)
	return hdr, []*Record{backboard, artboard}
}
