// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package riv implements a round-trip codec for the RIVE binary scene-graph
// container: decoding a container into a typed object graph, re-emitting a
// byte-faithful or size-bounded container from that graph, and lifting the
// graph into a stable "universal" JSON projection and back.
package riv

// Magic is the four-byte signature every container begins with.
const Magic = "RIVE"

// Well-known record type keys. Unrecognized type keys are not an error: the
// codec preserves their bytes and treats them as opaque records.
const (
	// TypeArtboard is a drawable root. A file contains one or more.
	TypeArtboard uint32 = 1

	// TypeBackboard is the file's outermost container; it names the primary
	// artboard via property MainArtboardID. At most one appears per file.
	TypeBackboard uint32 = 23

	// TypeAssetPayload opens an AssetPayload chunk: records of this type key
	// carry opaque asset bytes in property Bytes (212).
	TypeAssetPayload uint32 = 105

	// TypeArtboardCatalogMarker opens an ArtboardCatalog chunk.
	TypeArtboardCatalogMarker uint32 = 8726

	// TypeArtboardCatalogEntry is one artboard-id entry within an
	// ArtboardCatalog chunk.
	TypeArtboardCatalogEntry uint32 = 8776
)

// Well-known property keys used by the graph model and validator. Any other
// key is decoded using the header bitmap and the SchemaCatalog, without
// requiring an entry here.
const (
	// PropID is a record's stable, file-local identifier.
	PropID uint32 = 3

	// PropParentID links a record to its parent by PropID.
	PropParentID uint32 = 5

	// PropMainArtboardID, on a Backboard record, names the primary artboard.
	PropMainArtboardID uint32 = 7

	// PropWidth and PropHeight size an Artboard.
	PropWidth  uint32 = 8
	PropHeight uint32 = 9

	// PropName names a record (Artboard, among others).
	PropName uint32 = 4

	// PropBytes (212) always decodes as Bytes regardless of the header
	// bitmap; see SchemaCatalog.
	PropBytes uint32 = 212
)

// ValueType is the decoded width/shape of a property's value.
type ValueType uint8

// The value types a property can resolve to. Uint/String/Double/Color match
// the header bitmap's four 2-bit codes one-to-one; Bool and Bytes and
// Callback are catalog-only overrides never produced by the bitmap alone.
const (
	ValueUint ValueType = iota
	ValueString
	ValueDouble
	ValueColor
	ValueBool
	ValueBytes
	ValueCallback
)

func (t ValueType) String() string {
	switch t {
	case ValueUint:
		return "uint"
	case ValueString:
		return "string"
	case ValueDouble:
		return "double"
	case ValueColor:
		return "color"
	case ValueBool:
		return "bool"
	case ValueBytes:
		return "bytes"
	case ValueCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// bitmapCode maps a 2-bit header bitmap code to its base ValueType. Bool and
// Bytes are never produced directly by the bitmap; they arrive only through
// catalog overrides (SchemaCatalog.Resolve).
var bitmapCode = [4]ValueType{ValueUint, ValueString, ValueDouble, ValueColor}
