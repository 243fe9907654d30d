// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func TestGraphModelResolveAndChildren(t *testing.T) {
	_, main := minimalArtboardGraph()
	g := NewGraphModel(main, nil)

	idx, ok := g.Resolve(2)
	if !ok || g.Record(idx).TypeKey != TypeArtboard {
		t.Fatalf("Resolve(2) = (%d, %v), want the Artboard record", idx, ok)
	}

	children := g.ChildIndices(1)
	if len(children) != 1 || g.Record(children[0]).TypeKey != TypeArtboard {
		t.Fatalf("ChildIndices(1) = %v, want the single Artboard child", children)
	}

	bbIdx, ok := g.Backboard()
	if !ok || g.Record(bbIdx).TypeKey != TypeBackboard {
		t.Fatal("Backboard() did not find the Backboard record")
	}
}

func TestGraphModelArtboardOrderFollowsCatalog(t *testing.T) {
	a := rec(TypeArtboard, uintProp(PropID, 1))
	b := rec(TypeArtboard, uintProp(PropID, 2))
	records := []*Record{a, b}

	g := NewGraphModel(records, []uint64{2, 1})
	order := g.Artboards()
	if len(order) != 2 {
		t.Fatalf("Artboards() returned %d indices, want 2", len(order))
	}
	if id, _ := g.Record(order[0]).ID(); id != 2 {
		t.Errorf("first artboard id = %d, want 2 (catalog order)", id)
	}
	if id, _ := g.Record(order[1]).ID(); id != 1 {
		t.Errorf("second artboard id = %d, want 1 (catalog order)", id)
	}
}

func TestGraphModelArtboardOrderFallsBackToAppearance(t *testing.T) {
	a := rec(TypeArtboard, uintProp(PropID, 1))
	b := rec(TypeArtboard, uintProp(PropID, 2))
	g := NewGraphModel([]*Record{a, b}, nil)
	order := g.Artboards()
	if len(order) != 2 || order[0] != 0 || order[1] != 1 {
		t.Errorf("Artboards() = %v, want [0 1] (appearance order)", order)
	}
}

func TestGraphModelRemoveRecordCascadesToChildren(t *testing.T) {
	root := rec(TypeArtboard, uintProp(PropID, 1))
	child := rec(TypeArtboard, uintProp(PropID, 2), uintProp(PropParentID, 1))
	grandchild := rec(TypeArtboard, uintProp(PropID, 3), uintProp(PropParentID, 2))
	g := NewGraphModel([]*Record{root, child, grandchild}, nil)

	g.RemoveRecord(0)

	if _, ok := g.Resolve(1); ok {
		t.Error("root should have been removed")
	}
	if _, ok := g.Resolve(2); ok {
		t.Error("child should have cascaded to removal")
	}
	if _, ok := g.Resolve(3); ok {
		t.Error("grandchild should have cascaded to removal")
	}

	compact := g.CompactRecords()
	if len(compact) != 0 {
		t.Errorf("CompactRecords() = %d records, want 0", len(compact))
	}
}

func TestGraphModelAppendRecord(t *testing.T) {
	g := NewGraphModel(nil, nil)
	idx := g.AppendRecord(rec(TypeArtboard, uintProp(PropID, 5)))
	if g.Record(idx).TypeKey != TypeArtboard {
		t.Fatal("AppendRecord did not add the record")
	}
	if _, ok := g.Resolve(5); !ok {
		t.Error("AppendRecord did not index the new record's id")
	}
}
