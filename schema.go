// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "fmt"

// catalogEntry is one property's compiled-in interpretation.
type catalogEntry struct {
	name string
	typ  ValueType // ValueCallback marks "unknown": defer to the bitmap.
}

// catalogTable is the full compiled-in mapping for one format major version.
type catalogTable struct {
	properties map[uint32]catalogEntry
	types      map[uint32]string
	// owner maps a property key to the type key that first declared it, for
	// disambiguation when the same numeric key is reused by unrelated
	// record families in the runtime's generated headers.
	owner map[uint32]uint32
}

// SchemaCatalog is the single source of truth for interpreting property
// keys and type keys. It is populated once from a compiled-in table keyed
// to format major version, the Go analogue of the runtime's generated
// headers that converter/analyze_riv.py scrapes at import time.
type SchemaCatalog struct {
	tables        map[uint32]catalogTable
	maxKnownMajor uint32
}

// NewSchemaCatalog returns the catalog populated with the built-in tables
// for every format major version this codec understands.
func NewSchemaCatalog() *SchemaCatalog {
	c := &SchemaCatalog{tables: map[uint32]catalogTable{}}
	c.register(7, builtinPropertyNames, builtinPropertyTypes, builtinTypeNames, builtinPropertyOwners)
	return c
}

func (c *SchemaCatalog) register(major uint32, names map[uint32]string, types map[uint32]ValueType, typeNames map[uint32]string, owners map[uint32]uint32) {
	props := make(map[uint32]catalogEntry, len(names))
	for key, name := range names {
		props[key] = catalogEntry{name: name, typ: types[key]}
	}
	c.tables[major] = catalogTable{properties: props, types: typeNames, owner: owners}
	if major > c.maxKnownMajor {
		c.maxKnownMajor = major
	}
}

// SupportsVersion reports whether major is within the compiled catalog's
// known range. A newer major than any registered table is Unsupported
// (spec.md §4.2, §7 KindUnsupported).
func (c *SchemaCatalog) SupportsVersion(major uint32) bool {
	return major <= c.maxKnownMajor
}

func (c *SchemaCatalog) table(major uint32) catalogTable {
	if t, ok := c.tables[major]; ok {
		return t
	}
	// Fall back to the newest known table; SupportsVersion already flags
	// the mismatch separately so callers can surface KindUnsupported.
	return c.tables[c.maxKnownMajor]
}

// Resolve decides a property's ValueType given its key, the format major
// version, the type key of the record the property was read from, and the
// bitmap's declared code for that key (hasBitmapSlot is false when the key
// has no bitmap slot, e.g. it is absent from the header's property table,
// and bitmapType is then ignored). Tie-break: the catalog wins except when its entry is "unknown"
// (ValueCallback sentinel meaning "no override") or when the key is
// declared owned by a different record family (owner disambiguation,
// spec.md §2's "property-key → owning-type-key"), in which case the bitmap
// wins; an unknown key with no bitmap slot falls back to ValueUint with a
// warning left to the caller.
func (c *SchemaCatalog) Resolve(major uint32, key uint32, bitmapType ValueType, hasBitmapSlot bool, recordTypeKey uint32) (ValueType, bool) {
	// PropBytes is always Bytes, regardless of the bitmap (spec.md §4.2).
	if key == PropBytes {
		return ValueBytes, true
	}
	t := c.table(major)
	if entry, ok := t.properties[key]; ok {
		if owner, hasOwner := t.owner[key]; hasOwner && owner != recordTypeKey {
			// The catalog's entry for this key was declared by a different
			// record family; it does not apply to recordTypeKey, so defer
			// to the bitmap instead of risking a misresolved type.
			if hasBitmapSlot {
				return bitmapType, true
			}
			return ValueUint, false
		}
		if entry.typ != ValueCallback {
			return entry.typ, true
		}
	}
	if hasBitmapSlot {
		return bitmapType, true
	}
	return ValueUint, false
}

// PropertyName returns a human-readable property name, or "_p<key>" when
// the catalog has no entry, matching the Universal JSON bridge's naming
// rule (spec.md §4.6).
func (c *SchemaCatalog) PropertyName(major uint32, key uint32) string {
	t := c.table(major)
	if entry, ok := t.properties[key]; ok && entry.name != "" {
		return entry.name
	}
	return fmt.Sprintf("_p%d", key)
}

// PropertyKeyForName resolves a human-readable property name back to its
// numeric key, used by the Universal JSON bridge's lower step. Ok is false
// when name is not a known property name (including "_p<key>" forms, which
// the caller parses itself).
func (c *SchemaCatalog) PropertyKeyForName(major uint32, name string) (uint32, bool) {
	t := c.table(major)
	for key, entry := range t.properties {
		if entry.name == name {
			return key, true
		}
	}
	return 0, false
}

// TypeName returns a human-readable type name, or "type_<key>" when the
// catalog has no entry.
func (c *SchemaCatalog) TypeName(major uint32, key uint32) string {
	t := c.table(major)
	if name, ok := t.types[key]; ok {
		return name
	}
	return fmt.Sprintf("type_%d", key)
}

// builtinPropertyNames, builtinPropertyTypes, builtinTypeNames, and
// builtinPropertyOwners are the compiled-in tables for format major
// version 7, distilled from the handful of property/type keys spec.md
// names explicitly plus the opaque high-numbered keys original_source/'s
// analyzer scripts observed without resolving (64, 7776, 8064 stay absent
// here deliberately — they remain opaque records per spec.md §9).
var builtinPropertyNames = map[uint32]string{
	PropID:             "id",
	PropParentID:       "parentId",
	PropName:           "name",
	PropMainArtboardID: "mainArtboardId",
	PropWidth:          "width",
	PropHeight:         "height",
	PropBytes:          "bytes",
}

var builtinPropertyTypes = map[uint32]ValueType{
	PropID:             ValueUint,
	PropParentID:       ValueUint,
	PropName:           ValueString,
	PropMainArtboardID: ValueUint,
	PropWidth:          ValueDouble,
	PropHeight:         ValueDouble,
	PropBytes:          ValueBytes,
}

var builtinTypeNames = map[uint32]string{
	TypeArtboard:              "Artboard",
	TypeBackboard:             "Backboard",
	TypeAssetPayload:          "FileAssetContents",
	TypeArtboardCatalogEntry:  "ArtboardCatalogEntry",
	TypeArtboardCatalogMarker: "ArtboardCatalogMarker",
}

var builtinPropertyOwners = map[uint32]uint32{
	PropMainArtboardID: TypeBackboard,
	PropWidth:          TypeArtboard,
	PropHeight:         TypeArtboard,
}
