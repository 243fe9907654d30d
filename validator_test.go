// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func decodeFixture(t *testing.T, hdr *Header, main []*Record, chunks []*Chunk, ctx Context) *File {
	t.Helper()
	buf := buildContainer(Context{}, hdr, main, chunks)
	f, err := NewBytes(buf, ctx)
	if err != nil {
		t.Fatalf("NewBytes error: %v", err)
	}
	return f
}

func TestValidateCleanFileHasNoErrors(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	catalogChunk := &Chunk{Kind: ChunkArtboardCatalog, Records: []*Record{rec(TypeArtboardCatalogEntry, uintProp(PropID, 2))}}
	f := decodeFixture(t, hdr, main, []*Chunk{catalogChunk}, Context{})
	defer f.Close()

	report := f.Validate()
	if report.HasErrors() {
		t.Fatalf("unexpected validation errors: %+v", report.Issues)
	}
}

func TestValidateDanglingParentIDWarns(t *testing.T) {
	hdr := newTestHeader()
	main := []*Record{rec(TypeArtboard, uintProp(PropID, 1), uintProp(PropParentID, 999))}
	f := decodeFixture(t, hdr, main, nil, Context{})
	defer f.Close()

	report := f.Validate()
	found := false
	for _, i := range report.Issues {
		if i.Kind == KindReferenceUnresolved && i.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning-severity ReferenceUnresolved issue for a dangling parentId")
	}
	if report.HasErrors() {
		t.Error("dangling parentId should be a warning, not an error, outside strict mode")
	}
}

func TestValidateDanglingParentIDErrorsUnderStrict(t *testing.T) {
	hdr := newTestHeader()
	main := []*Record{rec(TypeArtboard, uintProp(PropID, 1), uintProp(PropParentID, 999))}
	f := decodeFixture(t, hdr, main, nil, Context{Strict: true})
	defer f.Close()

	report := f.Validate()
	if !report.HasErrors() {
		t.Error("expected a hard error for a dangling parentId under strict mode")
	}
}

func TestValidateArtboardCatalogWrongTypeIsError(t *testing.T) {
	hdr, main := minimalArtboardGraph()
	// Catalog entry names the Backboard record (id 1), not an Artboard.
	catalogChunk := &Chunk{Kind: ChunkArtboardCatalog, Records: []*Record{rec(TypeArtboardCatalogEntry, uintProp(PropID, 1))}}
	f := decodeFixture(t, hdr, main, []*Chunk{catalogChunk}, Context{})
	defer f.Close()

	report := f.Validate()
	if !report.HasErrors() {
		t.Error("expected an error for a catalog entry resolving to a non-Artboard record")
	}
}

func TestValidateMultipleBackboardsIsError(t *testing.T) {
	hdr := newTestHeader()
	main := []*Record{
		rec(TypeBackboard, uintProp(PropID, 1)),
		rec(TypeBackboard, uintProp(PropID, 2)),
	}
	f := decodeFixture(t, hdr, main, nil, Context{})
	defer f.Close()

	report := f.Validate()
	if !report.HasErrors() {
		t.Error("expected an error for more than one Backboard record")
	}
}
