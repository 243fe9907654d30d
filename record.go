// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// Property is one (key, value) pair within a Record, in file order.
// KeyWidth and ValueWidth are non-zero only when the codec decoded this
// property in exact mode, where they hold the byte width the source used
// (minimal or not); zero means "encode minimally." ValueWidth applies to the
// varuint-shaped wire forms only: Uint/Bool values directly, and the
// length prefix ahead of String/Bytes payloads.
type Property struct {
	Key        uint32
	Value      Value
	KeyWidth   int
	ValueWidth int
}

// Record is one typed, property-bearing element of the object stream.
// Property order is preserved verbatim; duplicate keys are permitted on
// read (spec.md §3).
type Record struct {
	TypeKey      uint32
	Properties   []Property
	TypeKeyWidth int // exact-mode only; 0 means encode minimally.
}

// Get returns the first property with the given key, if any.
func (r *Record) Get(key uint32) (Value, bool) {
	for _, p := range r.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the first property with the given key, or appends a new one
// if none exists. Used by GraphModel mutation operations.
func (r *Record) Set(key uint32, v Value) {
	for i := range r.Properties {
		if r.Properties[i].Key == key {
			r.Properties[i].Value = v
			r.Properties[i].ValueWidth = 0
			return
		}
	}
	r.Properties = append(r.Properties, Property{Key: key, Value: v})
}

// Remove deletes every property with the given key.
func (r *Record) Remove(key uint32) {
	out := r.Properties[:0]
	for _, p := range r.Properties {
		if p.Key != key {
			out = append(out, p)
		}
	}
	r.Properties = out
}

// ID returns the record's PropID value, if present.
func (r *Record) ID() (uint64, bool) {
	v, ok := r.Get(PropID)
	if !ok {
		return 0, false
	}
	return v.Uint, true
}

// ParentID returns the record's PropParentID value, if present.
func (r *Record) ParentID() (uint64, bool) {
	v, ok := r.Get(PropParentID)
	if !ok {
		return 0, false
	}
	return v.Uint, true
}

// Clone returns a deep copy of r, detached from any exact-mode metadata.
func (r *Record) Clone() *Record {
	out := &Record{TypeKey: r.TypeKey, Properties: make([]Property, len(r.Properties))}
	for i, p := range r.Properties {
		cp := p
		cp.KeyWidth = 0
		cp.ValueWidth = 0
		if p.Value.Type == ValueBytes {
			cp.Value.Bytes = append([]byte(nil), p.Value.Bytes...)
		}
		out.Properties[i] = cp
	}
	return out
}
