// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// Value is a tagged union of the shapes a property can hold. Exactly one
// field is meaningful, selected by Type. Replaces dynamic/reflective value
// dispatch with a compile-time tagged union plus the SchemaCatalog resolver
// (Design Notes, spec.md §9).
type Value struct {
	Type ValueType

	Uint   uint64
	Bool   bool
	Str    string
	Double float32
	Color  uint32
	Bytes  []byte
}

// UintValue, BoolValue, StringValue, DoubleValue, ColorValue, and
// BytesValue build a Value of the matching type.
func UintValue(v uint64) Value    { return Value{Type: ValueUint, Uint: v} }
func BoolValue(v bool) Value      { return Value{Type: ValueBool, Bool: v} }
func StringValue(v string) Value  { return Value{Type: ValueString, Str: v} }
func DoubleValue(v float32) Value { return Value{Type: ValueDouble, Double: v} }
func ColorValue(v uint32) Value   { return Value{Type: ValueColor, Color: v} }
func BytesValue(v []byte) Value   { return Value{Type: ValueBytes, Bytes: v} }
