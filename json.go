// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rivecodec/rivec/internal/codectext"
)

// Document is the stable "universal JSON" projection of a decoded
// container (spec.md §4.6). It is designed to marshal with encoding/json
// directly; callers needing pretty output pass it to json.MarshalIndent
// themselves, the same way the teacher leaves formatting to its callers
// rather than baking indentation into the library.
type Document struct {
	Format string `json:"format"`
	Version string `json:"version"`

	// Exact mirrors __riv_exact__: when true, Lower must be able to
	// reproduce the original structure exactly (header, chunks, and
	// per-object order all present and consistent), and Lift only ever
	// sets it true when f was itself decoded under an exact context.
	Exact bool `json:"__riv_exact__,omitempty"`

	Header *jsonHeader `json:"header,omitempty"`

	// Artboards are promoted to top level (spec.md §4.6): every artboard's
	// descendant records, plus the artboard's own record as the first
	// element, nest under its own "objects" array in original stream
	// order. The implicit Backboard record never appears here; Lower
	// synthesizes a fresh one.
	Artboards []jsonArtboard `json:"artboards"`

	// Chunks carries the raw auxiliary chunks, preserved only when Exact
	// is set (spec.md §4.6: "preserved raw chunks when __riv_exact__ is
	// set").
	Chunks []jsonChunk `json:"chunks,omitempty"`
}

type jsonHeader struct {
	Version      string   `json:"version"`
	FileID       uint64   `json:"fileId"`
	PropertyKeys []uint32 `json:"propertyKeys"`
}

type jsonArtboard struct {
	Name    string       `json:"name"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Objects []jsonObject `json:"objects"`
}

// jsonObject is one record, lifted or about to be lowered. Property is a
// name-keyed map rather than an array (spec.md §4.6: `properties: { name:
// V, ... }`); id and parentId get their own top-level fields rather than
// appearing a second time inside properties.
type jsonObject struct {
	TypeKey    uint32                 `json:"typeKey"`
	LocalID    *uint64                `json:"localId,omitempty"`
	ParentID   *uint64                `json:"parentId,omitempty"`
	Properties map[string]interface{} `json:"properties"`
}

type jsonChunk struct {
	Kind           string       `json:"kind"`
	Records        []jsonObject `json:"records"`
	LeadingPadding int          `json:"leadingPadding,omitempty"`
	Offset         int64        `json:"offset,omitempty"`
	Length         int64        `json:"length,omitempty"`
}

// Lift projects f into a Document. Exact is carried straight from f's
// decode context: Lift never claims exactness it cannot back with the
// widths/offsets already captured during an ctx.Exact decode.
func Lift(f *File) (*Document, error) {
	doc := &Document{
		Format: "universal",
		Version: "1.0",
		Exact:   f.ctx.Exact,
	}

	doc.Header = &jsonHeader{
		Version:      fmt.Sprintf("%d.%d", f.Header.Major, f.Header.Minor),
		FileID:       f.Header.FileID,
		PropertyKeys: append([]uint32(nil), f.Header.PropertyKeys...),
	}

	doc.Artboards = liftArtboards(f.Catalog, f.Header.Major, f.Graph)

	if f.ctx.Exact {
		for _, c := range f.Layout.Chunks {
			doc.Chunks = append(doc.Chunks, jsonChunk{
				Kind:           c.Kind.String(),
				Records:        liftObjects(f.Catalog, f.Header.Major, c.Records),
				LeadingPadding: c.LeadingPadding,
				Offset:         c.Offset,
				Length:         c.Length,
			})
		}
	}

	return doc, nil
}

// ownerArtboardIndex walks a record's PropParentID chain until it reaches
// an Artboard record (the one that owns it for promotion purposes), or
// reports false if the chain runs off the graph or never reaches one
// (e.g. the Backboard itself, or an orphaned record).
func ownerArtboardIndex(g *GraphModel, idx int) (int, bool) {
	seen := map[int]bool{}
	for !seen[idx] {
		seen[idx] = true
		r := g.Record(idx)
		if r == nil {
			return 0, false
		}
		if r.TypeKey == TypeArtboard {
			return idx, true
		}
		pid, ok := r.ParentID()
		if !ok {
			return 0, false
		}
		parentIdx, ok := g.Resolve(pid)
		if !ok {
			return 0, false
		}
		idx = parentIdx
	}
	return 0, false // parentId cycle
}

// liftArtboards groups every record under the artboard that owns it,
// in Graph.Artboards() order, each artboard's own record included as the
// first member of its own group.
func liftArtboards(catalog *SchemaCatalog, major uint32, g *GraphModel) []jsonArtboard {
	artboardOrder := g.Artboards()
	owned := make(map[int][]int, len(artboardOrder))
	isArtboard := make(map[int]bool, len(artboardOrder))
	for _, ai := range artboardOrder {
		isArtboard[ai] = true
	}

	for i, r := range g.Records() {
		if r == nil {
			continue
		}
		owner, ok := ownerArtboardIndex(g, i)
		if !ok || !isArtboard[owner] {
			continue
		}
		owned[owner] = append(owned[owner], i)
	}

	out := make([]jsonArtboard, 0, len(artboardOrder))
	for _, ai := range artboardOrder {
		r := g.Record(ai)
		name, _ := r.Get(PropName)
		width, _ := r.Get(PropWidth)
		height, _ := r.Get(PropHeight)
		ja := jsonArtboard{Name: name.Str, Width: float64(width.Double), Height: float64(height.Double)}
		for _, mi := range owned[ai] {
			ja.Objects = append(ja.Objects, liftObject(catalog, major, g.Record(mi)))
		}
		out = append(out, ja)
	}
	return out
}

func liftObjects(catalog *SchemaCatalog, major uint32, records []*Record) []jsonObject {
	out := make([]jsonObject, 0, len(records))
	for _, r := range records {
		out = append(out, liftObject(catalog, major, r))
	}
	return out
}

func liftObject(catalog *SchemaCatalog, major uint32, r *Record) jsonObject {
	jo := jsonObject{TypeKey: r.TypeKey, Properties: map[string]interface{}{}}
	if id, ok := r.ID(); ok {
		jo.LocalID = &id
	}
	if pid, ok := r.ParentID(); ok {
		jo.ParentID = &pid
	}
	for _, p := range r.Properties {
		if p.Key == PropID || p.Key == PropParentID {
			continue
		}
		jo.Properties[catalog.PropertyName(major, p.Key)] = valueToJSON(p.Value)
	}
	return jo
}

func valueToJSON(v Value) interface{} {
	switch v.Type {
	case ValueUint, ValueCallback:
		return v.Uint
	case ValueBool:
		return v.Bool
	case ValueString:
		return v.Str
	case ValueDouble:
		return float64(v.Double)
	case ValueColor:
		return FormatColor(v.Color)
	case ValueBytes:
		return map[string]interface{}{"$bytes": base64.StdEncoding.EncodeToString(v.Bytes)}
	default:
		return nil
	}
}

func jsonToValue(typ ValueType, raw interface{}) (Value, error) {
	switch typ {
	case ValueUint, ValueCallback:
		n, ok := raw.(float64)
		if !ok {
			return Value{}, newErr(KindMalformed, "expected numeric value for uint property")
		}
		return UintValue(uint64(n)), nil
	case ValueBool:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, newErr(KindMalformed, "expected boolean value for bool property")
		}
		return BoolValue(b), nil
	case ValueString:
		s, ok := raw.(string)
		if !ok {
			return Value{}, newErr(KindMalformed, "expected string value for string property")
		}
		normalized, err := codectext.NormalizeBytes([]byte(s))
		if err != nil {
			return Value{}, newErr(KindMalformed, "invalid string property: %v", err)
		}
		return StringValue(normalized), nil
	case ValueDouble:
		n, ok := raw.(float64)
		if !ok {
			return Value{}, newErr(KindMalformed, "expected numeric value for double property")
		}
		return DoubleValue(float32(n)), nil
	case ValueColor:
		s, ok := raw.(string)
		if !ok {
			return Value{}, newErr(KindMalformed, "expected \"#RRGGBBAA\" string for color property")
		}
		packed, err := ParseColor(s)
		if err != nil {
			return Value{}, newErr(KindMalformed, "invalid color value: %v", err)
		}
		return ColorValue(packed), nil
	case ValueBytes:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return Value{}, newErr(KindMalformed, "expected {\"$bytes\": \"...\"} for bytes property")
		}
		s, ok := m["$bytes"].(string)
		if !ok {
			return Value{}, newErr(KindMalformed, "expected {\"$bytes\": \"...\"} for bytes property")
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return Value{}, newErr(KindMalformed, "invalid base64 in $bytes property: %v", err)
		}
		return BytesValue(b), nil
	default:
		return Value{}, newErr(KindMalformed, "unknown value type %q", typ)
	}
}

// shapeInferType implements spec.md §4.6's injection type-inference rule:
// a property with no catalog-known type defaults to uint, unless the raw
// JSON value is a string (string), a float with a fractional part
// (double), or a {"$bytes": ...} object (bytes). A JSON boolean also
// becomes bool, so it can be lowered without a numeric conversion.
func shapeInferType(raw interface{}) ValueType {
	switch v := raw.(type) {
	case bool:
		return ValueBool
	case string:
		return ValueString
	case float64:
		if v != math.Trunc(v) {
			return ValueDouble
		}
		return ValueUint
	case map[string]interface{}:
		if _, ok := v["$bytes"]; ok {
			return ValueBytes
		}
	}
	return ValueUint
}

func resolvePropertyKey(catalog *SchemaCatalog, major uint32, name string) (uint32, bool) {
	if key, ok := catalog.PropertyKeyForName(major, name); ok {
		return key, true
	}
	if strings.HasPrefix(name, "_p") {
		if n, err := strconv.ParseUint(name[2:], 10, 32); err == nil {
			return uint32(n), true
		}
	}
	return 0, false
}

func parseVersion(s string) (major, minor uint32, ok bool) {
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// collectDocObjects flattens every object across every artboard and chunk,
// used only to infer each property key's ValueType before any Header
// exists to consult.
func collectDocObjects(doc *Document) []jsonObject {
	var all []jsonObject
	for _, ab := range doc.Artboards {
		all = append(all, ab.Objects...)
	}
	for _, c := range doc.Chunks {
		all = append(all, c.Records...)
	}
	return all
}

// inferKeyTypes decides every property key's ValueType once, up front:
// the compiled-in catalog wins when it has an owner-consistent entry,
// otherwise the type is inferred from the first JSON value observed for
// that key (spec.md §4.6's injection rule).
func inferKeyTypes(catalog *SchemaCatalog, major uint32, objects []jsonObject) (map[uint32]ValueType, error) {
	types := map[uint32]ValueType{}
	for _, jo := range objects {
		for name, raw := range jo.Properties {
			key, ok := resolvePropertyKey(catalog, major, name)
			if !ok {
				return nil, newErr(KindMalformed, "unknown property name %q", name)
			}
			if key == PropID || key == PropParentID {
				continue
			}
			if _, seen := types[key]; seen {
				continue
			}
			if resolved, known := catalog.Resolve(major, key, ValueUint, false, jo.TypeKey); known {
				types[key] = resolved
			} else {
				types[key] = shapeInferType(raw)
			}
		}
	}
	return types, nil
}

// nextFreeLocalID returns one past the highest localId/parentId literal
// appearing anywhere in doc, or 1 if the document is empty of ids, so
// synthesized ids (missing localIds, the reconstructed Backboard) never
// collide with an explicit one (spec.md §4.6: "missing localIds are
// assigned at write time").
func nextFreeLocalID(doc *Document) uint64 {
	var max uint64
	seen := false
	visit := func(id *uint64) {
		if id != nil && (!seen || *id > max) {
			max = *id
			seen = true
		}
	}
	for _, ab := range doc.Artboards {
		for _, jo := range ab.Objects {
			visit(jo.LocalID)
			visit(jo.ParentID)
		}
	}
	for _, c := range doc.Chunks {
		for _, jo := range c.Records {
			visit(jo.LocalID)
			visit(jo.ParentID)
		}
	}
	if !seen {
		return 1
	}
	return max + 1
}

// Lower builds a File from a Document, the inverse of Lift. When
// doc.Exact is true but the document is missing what exact reconstruction
// needs (a header property table), Lower fails with KindExactContractBroken
// rather than silently downgrading to best-effort output (spec.md §4.6).
func Lower(doc *Document, ctx Context) (*File, error) {
	if doc.Exact && (doc.Header == nil || len(doc.Header.PropertyKeys) == 0) {
		return nil, newErr(KindExactContractBroken, "exact document has no header property table")
	}

	catalog := NewSchemaCatalog()
	major, minor := uint32(7), uint32(0)
	if doc.Header != nil {
		if m, mi, ok := parseVersion(doc.Header.Version); ok {
			major, minor = m, mi
		}
	}

	allObjects := collectDocObjects(doc)
	keyTypes, err := inferKeyTypes(catalog, major, allObjects)
	if err != nil {
		return nil, err
	}

	hdr := &Header{Major: major, Minor: minor}
	if doc.Header != nil {
		hdr.FileID = doc.Header.FileID
		for _, k := range doc.Header.PropertyKeys {
			typ, ok := keyTypes[k]
			if !ok {
				typ = ValueUint
			}
			hdr.AddKey(k, typ)
		}
	}
	hdr.AddKey(PropID, ValueUint)
	hdr.AddKey(PropParentID, ValueUint)
	hdr.AddKey(PropMainArtboardID, ValueUint)
	for k, typ := range keyTypes {
		if !hdr.HasKey(k) {
			hdr.AddKey(k, typ)
		}
	}

	mainRecords, err := lowerArtboards(doc, keyTypes, catalog, major)
	if err != nil {
		return nil, err
	}

	layout := &StreamLayout{Main: mainRecords}
	for _, jc := range doc.Chunks {
		recs, err := lowerObjects(jc.Records, keyTypes, catalog, major)
		if err != nil {
			return nil, err
		}
		layout.Chunks = append(layout.Chunks, &Chunk{
			Kind:           chunkKindFromString(jc.Kind),
			Records:        recs,
			LeadingPadding: jc.LeadingPadding,
			Offset:         jc.Offset,
			Length:         jc.Length,
		})
	}

	assignDenseIDs(mainRecords)
	for _, c := range layout.Chunks {
		assignDenseIDs(c.Records)
	}

	catalogOrder := artboardCatalogOrder(layout)
	graph := NewGraphModel(mainRecords, catalogOrder)

	return &File{
		Header:  hdr,
		Layout:  layout,
		Graph:   graph,
		Catalog: catalog,
		Report:  &Report{},
		ctx:     ctx,
	}, nil
}

// lowerArtboards rebuilds the main record stream from doc's promoted
// artboards, synthesizing the implicit Backboard record Lift drops:
// its PropID reuses the first artboard's own recorded parentId when one
// was present (preserving the original file's Backboard id across a
// round trip), else a freshly assigned one; its PropMainArtboardID
// points at the first artboard encountered.
func lowerArtboards(doc *Document, keyTypes map[uint32]ValueType, catalog *SchemaCatalog, major uint32) ([]*Record, error) {
	nextID := nextFreeLocalID(doc)

	var backboardID uint64
	haveBackboardID := false
	var firstArtboardID uint64
	haveFirstArtboard := false

	var mainRecords []*Record
	for _, ab := range doc.Artboards {
		for _, jo := range ab.Objects {
			r, err := lowerObject(jo, keyTypes, catalog, major)
			if err != nil {
				return nil, err
			}
			if _, ok := r.ID(); !ok {
				r.Set(PropID, UintValue(nextID))
				nextID++
			}
			if jo.TypeKey == TypeArtboard {
				id, _ := r.ID()
				if !haveFirstArtboard {
					firstArtboardID = id
					haveFirstArtboard = true
				}
				if jo.ParentID != nil && !haveBackboardID {
					backboardID = *jo.ParentID
					haveBackboardID = true
				}
			}
			mainRecords = append(mainRecords, r)
		}
	}

	if !haveBackboardID {
		backboardID = nextID
		nextID++
	}
	backboard := &Record{TypeKey: TypeBackboard, Properties: []Property{
		{Key: PropID, Value: UintValue(backboardID)},
	}}
	if haveFirstArtboard {
		backboard.Properties = append(backboard.Properties, Property{Key: PropMainArtboardID, Value: UintValue(firstArtboardID)})
	}
	return append([]*Record{backboard}, mainRecords...), nil
}

func lowerObjects(objs []jsonObject, keyTypes map[uint32]ValueType, catalog *SchemaCatalog, major uint32) ([]*Record, error) {
	out := make([]*Record, 0, len(objs))
	for _, jo := range objs {
		r, err := lowerObject(jo, keyTypes, catalog, major)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func lowerObject(jo jsonObject, keyTypes map[uint32]ValueType, catalog *SchemaCatalog, major uint32) (*Record, error) {
	r := &Record{TypeKey: jo.TypeKey}
	if jo.LocalID != nil {
		r.Properties = append(r.Properties, Property{Key: PropID, Value: UintValue(*jo.LocalID)})
	}
	if jo.ParentID != nil {
		r.Properties = append(r.Properties, Property{Key: PropParentID, Value: UintValue(*jo.ParentID)})
	}
	for name, raw := range jo.Properties {
		key, ok := resolvePropertyKey(catalog, major, name)
		if !ok {
			return nil, newErr(KindMalformed, "unknown property name %q", name)
		}
		if key == PropID || key == PropParentID {
			continue
		}
		typ, ok := keyTypes[key]
		if !ok {
			typ = shapeInferType(raw)
		}
		v, err := jsonToValue(typ, raw)
		if err != nil {
			return nil, err
		}
		r.Properties = append(r.Properties, Property{Key: key, Value: v})
	}
	return r, nil
}

func chunkKindFromString(s string) ChunkKind {
	switch s {
	case "AssetPayload":
		return ChunkAssetPayload
	case "ArtboardCatalog":
		return ChunkArtboardCatalog
	default:
		return ChunkUnknown
	}
}

// assignDenseIDs gives every record missing a PropID a fresh id, one past
// the highest id already present, so graphs authored directly in JSON
// (without ids on every object) still resolve parent/child and catalog
// references once lowered (spec.md §9 supplement: "assigning missing
// localIds densely").
func assignDenseIDs(records []*Record) {
	var next uint64
	for _, r := range records {
		if id, ok := r.ID(); ok && id >= next {
			next = id + 1
		}
	}
	for _, r := range records {
		if _, ok := r.ID(); !ok {
			r.Set(PropID, UintValue(next))
			next++
		}
	}
}
