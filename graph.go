// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// GraphModel is the in-memory object graph: an arena of Records plus
// derived indices. Never materializes true pointer cycles — parent/child
// and artboard-catalog relationships are expressed as arena indices, per
// the Design Notes ("implement as arena plus index maps, never owning
// pointers").
type GraphModel struct {
	records []*Record

	idToIndex     map[uint64]int
	childrenOf    map[uint64][]int
	artboardOrder []int
}

// NewGraphModel builds a GraphModel over records, deriving the parent/child
// index from PropParentID and the artboard order from an optional catalog.
func NewGraphModel(records []*Record, catalogOrder []uint64) *GraphModel {
	g := &GraphModel{
		records:    records,
		idToIndex:  map[uint64]int{},
		childrenOf: map[uint64][]int{},
	}
	for i, r := range records {
		if id, ok := r.ID(); ok {
			if _, exists := g.idToIndex[id]; !exists {
				g.idToIndex[id] = i
			}
		}
	}
	for i, r := range records {
		if pid, ok := r.ParentID(); ok {
			g.childrenOf[pid] = append(g.childrenOf[pid], i)
		}
	}
	g.artboardOrder = g.orderArtboards(catalogOrder)
	return g
}

func (g *GraphModel) orderArtboards(catalogOrder []uint64) []int {
	byAppearance := []int{}
	for i, r := range g.records {
		if r.TypeKey == TypeArtboard {
			byAppearance = append(byAppearance, i)
		}
	}
	if len(catalogOrder) == 0 {
		return byAppearance
	}

	seen := make(map[int]bool, len(byAppearance))
	ordered := make([]int, 0, len(byAppearance))
	for _, id := range catalogOrder {
		if idx, ok := g.idToIndex[id]; ok && g.records[idx].TypeKey == TypeArtboard {
			ordered = append(ordered, idx)
			seen[idx] = true
		}
	}
	for _, idx := range byAppearance {
		if !seen[idx] {
			ordered = append(ordered, idx)
		}
	}
	return ordered
}

// Records returns every record paired with its arena index.
func (g *GraphModel) Records() []*Record { return g.records }

// Record returns the record at a given arena index.
func (g *GraphModel) Record(index int) *Record { return g.records[index] }

// Resolve returns the arena index of the record with the given local id.
func (g *GraphModel) Resolve(id uint64) (int, bool) {
	idx, ok := g.idToIndex[id]
	return idx, ok
}

// ChildIndices returns the arena indices of every record whose
// PropParentID equals parentID, in stream order.
func (g *GraphModel) ChildIndices(parentID uint64) []int {
	return g.childrenOf[parentID]
}

// Artboards returns the arena indices of type-1 records, ordered to match
// the artboard catalog when one was supplied, otherwise by appearance.
func (g *GraphModel) Artboards() []int { return g.artboardOrder }

// Backboard returns the arena index of the sole Backboard record, if any.
func (g *GraphModel) Backboard() (int, bool) {
	for i, r := range g.records {
		if r.TypeKey == TypeBackboard {
			return i, true
		}
	}
	return 0, false
}

// AppendRecord adds a new record to the arena and updates derived indices.
// If the record has no PropID, the caller is expected to have already
// assigned one (see assignDenseIDs in json.go and the JSON bridge's lower
// step) since ids are never renumbered implicitly by the graph itself.
func (g *GraphModel) AppendRecord(r *Record) int {
	idx := len(g.records)
	g.records = append(g.records, r)
	if id, ok := r.ID(); ok {
		if _, exists := g.idToIndex[id]; !exists {
			g.idToIndex[id] = idx
		}
	}
	if pid, ok := r.ParentID(); ok {
		g.childrenOf[pid] = append(g.childrenOf[pid], idx)
	}
	if r.TypeKey == TypeArtboard {
		g.artboardOrder = append(g.artboardOrder, idx)
	}
	return idx
}

// SetProperty sets key on the record at index to v.
func (g *GraphModel) SetProperty(index int, key uint32, v Value) {
	g.records[index].Set(key, v)
}

// RemoveRecord deletes the record at index and every transitive child,
// per spec.md §4.5. Removal tombstones the arena slot (sets it nil) rather
// than shifting indices, so every previously-resolved index and id mapping
// stays valid for records that survive.
func (g *GraphModel) RemoveRecord(index int) {
	if index < 0 || index >= len(g.records) || g.records[index] == nil {
		return
	}
	r := g.records[index]
	id, hasID := r.ID()

	children := append([]int(nil), g.childrenOf[func() uint64 {
		if hasID {
			return id
		}
		return 0
	}()]...)
	for _, child := range children {
		g.RemoveRecord(child)
	}

	if hasID {
		delete(g.idToIndex, id)
		delete(g.childrenOf, id)
	}
	g.records[index] = nil

	filtered := g.artboardOrder[:0]
	for _, idx := range g.artboardOrder {
		if idx != index {
			filtered = append(filtered, idx)
		}
	}
	g.artboardOrder = filtered
}

// CompactRecords returns the arena's records with tombstoned (removed)
// slots dropped, suitable for re-encoding.
func (g *GraphModel) CompactRecords() []*Record {
	out := make([]*Record, 0, len(g.records))
	for _, r := range g.records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
