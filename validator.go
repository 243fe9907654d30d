// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// Validate runs the structural invariants of spec.md §4.7 over f and
// returns a fresh Report. It never short-circuits: every check runs and
// contributes its findings regardless of earlier failures, matching the
// teacher's "keep parsing data directories even though some entries fail"
// accumulation policy in ParseDataDirectories.
func (f *File) Validate() *Report {
	report := &Report{}
	f.validateHeader(report)
	f.validateSchemaCompleteness(report)
	f.validateReferences(report)
	f.validateArtboardCatalog(report)
	f.validateTerminators(report)
	return report
}

func (f *File) validateHeader(report *Report) {
	seen := make(map[uint32]bool, len(f.Header.PropertyKeys))
	for _, k := range f.Header.PropertyKeys {
		if k == 0 {
			issue := Issue{Severity: SeverityError, Kind: KindMalformed, Offset: -1,
				Message: "header property table contains a zero key"}
			report.Add(issue)
			logIssue(f.ctx, issue)
			continue
		}
		if seen[k] {
			issue := Issue{Severity: SeverityWarning, Kind: KindMalformed, Offset: -1,
				Message: "header property table has a duplicate key"}
			report.Add(issue)
			logIssue(f.ctx, issue)
			continue
		}
		seen[k] = true
	}
	if f.Header.BitmapCapacity() < len(f.Header.PropertyKeys) {
		issue := Issue{Severity: SeverityError, Kind: KindMalformed, Offset: -1,
			Message: "bitmap capacity smaller than property key count"}
		report.Add(issue)
		logIssue(f.ctx, issue)
	}
}

// validateSchemaCompleteness checks that every property key used anywhere
// in the stream is declared in the header's ToC (spec.md §3 invariant,
// §8 "Schema completeness").
func (f *File) validateSchemaCompleteness(report *Report) {
	check := func(records []*Record) {
		for _, r := range records {
			for _, p := range r.Properties {
				if !f.Header.HasKey(p.Key) {
					sev := SeverityWarning
					if f.ctx.Strict {
						sev = SeverityError
					}
					issue := Issue{Severity: sev, Kind: KindSchemaViolation, Offset: -1, TypeKey: r.TypeKey,
						Message: "property key not declared in header table"}
					report.Add(issue)
					logIssue(f.ctx, issue)
				}
			}
		}
	}
	check(f.Layout.Main)
	for _, c := range f.Layout.Chunks {
		check(c.Records)
	}
}

// validateReferences checks that every ParentID resolves to a known id
// (spec.md §8 "Reference integrity"; unresolved is a warning by default,
// since external references across files are possible, and an error under
// strict mode).
func (f *File) validateReferences(report *Report) {
	for _, r := range f.Layout.Main {
		pid, ok := r.ParentID()
		if !ok {
			continue
		}
		if _, resolved := f.Graph.Resolve(pid); !resolved {
			sev := SeverityWarning
			if f.ctx.Strict {
				sev = SeverityError
			}
			issue := Issue{Severity: sev, Kind: KindReferenceUnresolved, Offset: -1, TypeKey: r.TypeKey,
				Message: "parentId does not resolve to a known record"}
			report.Add(issue)
			logIssue(f.ctx, issue)
		}
	}

	if idx, ok := f.Graph.Backboard(); ok {
		backboard := f.Graph.Record(idx)
		if v, has := backboard.Get(PropMainArtboardID); has {
			if _, resolved := f.Graph.Resolve(v.Uint); !resolved {
				sev := SeverityWarning
				if f.ctx.Strict {
					sev = SeverityError
				}
				issue := Issue{Severity: sev, Kind: KindReferenceUnresolved, Offset: -1, TypeKey: TypeBackboard,
					Message: "mainArtboardId does not resolve to a known record"}
				report.Add(issue)
				logIssue(f.ctx, issue)
			}
		}
	}

	backboardCount := 0
	for _, r := range f.Layout.Main {
		if r.TypeKey == TypeBackboard {
			backboardCount++
		}
	}
	if backboardCount > 1 {
		issue := Issue{Severity: SeverityError, Kind: KindMalformed, Offset: -1,
			Message: "more than one Backboard record present"}
		report.Add(issue)
		logIssue(f.ctx, issue)
	}
}

// validateArtboardCatalog checks that every catalog entry names a type-1
// record and that no id is listed twice (spec.md §3 invariant). Absence of
// a catalog is only a warning: spec.md §9 leaves whether the external
// runtime requires one as an open question.
func (f *File) validateArtboardCatalog(report *Report) {
	hasCatalog := false
	seen := map[uint64]bool{}
	for _, c := range f.Layout.Chunks {
		if c.Kind != ChunkArtboardCatalog {
			continue
		}
		hasCatalog = true
		for _, r := range c.Records {
			if r.TypeKey != TypeArtboardCatalogEntry {
				continue
			}
			id, ok := r.ID()
			if !ok {
				continue
			}
			if seen[id] {
				issue := Issue{Severity: SeverityWarning, Kind: KindMalformed, Offset: -1, TypeKey: r.TypeKey,
					Message: "artboard catalog lists the same id more than once"}
				report.Add(issue)
				logIssue(f.ctx, issue)
				continue
			}
			seen[id] = true

			idx, resolved := f.Graph.Resolve(id)
			if !resolved {
				sev := SeverityWarning
				if f.ctx.Strict {
					sev = SeverityError
				}
				issue := Issue{Severity: sev, Kind: KindReferenceUnresolved, Offset: -1, TypeKey: r.TypeKey,
					Message: "artboard catalog id does not resolve to a known record"}
				report.Add(issue)
				logIssue(f.ctx, issue)
				continue
			}
			if f.Graph.Record(idx).TypeKey != TypeArtboard {
				issue := Issue{Severity: SeverityError, Kind: KindMalformed, Offset: -1, TypeKey: r.TypeKey,
					Message: "artboard catalog id resolves to a non-Artboard record"}
				report.Add(issue)
				logIssue(f.ctx, issue)
			}
		}
	}
	if !hasCatalog {
		sev := SeverityWarning
		if f.ctx.Strict {
			sev = SeverityWarning // absence is never escalated; see spec.md §9.
		}
		issue := Issue{Severity: sev, Kind: KindMalformed, Offset: -1,
			Message: "no artboard catalog present"}
		report.Add(issue)
		logIssue(f.ctx, issue)
	}
}

// validateTerminators reports multi-terminator padding as an info-level
// issue, never an error. It does not compare terminator counts: for a
// decoded layout the number of top-level type-key-0 terminators equals the
// chunk count plus the observed padding by construction (spec.md §8).
func (f *File) validateTerminators(report *Report) {
	expected := 1 + len(f.Layout.Chunks) // main stream + one per chunk
	padding := f.Layout.TotalPadding()
	if padding > 0 {
		issue := Issue{Severity: SeverityInfo, Kind: KindMalformed, Offset: -1,
			Message: "multi-terminator padding observed; total terminators exceeds chunk count by padding"}
		report.Add(issue)
		logIssue(f.ctx, issue)
	}
	_ = expected // expected + padding is the actual observed terminator count by construction.
}
