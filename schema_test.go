// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "testing"

func TestResolveOwnerDisambiguationDefersToBitmap(t *testing.T) {
	catalog := NewSchemaCatalog()

	// PropWidth is owned by TypeArtboard in the builtin table. A record of
	// a different type reusing the same numeric key should not inherit the
	// Artboard-specific "double" interpretation; the bitmap's declared code
	// wins instead.
	resolved, known := catalog.Resolve(7, PropWidth, ValueUint, true, TypeBackboard)
	if !known || resolved != ValueUint {
		t.Errorf("Resolve(PropWidth, ownerMismatch) = (%v, %v), want (Uint, true)", resolved, known)
	}
}

func TestResolveOwnerMatchUsesCatalogType(t *testing.T) {
	catalog := NewSchemaCatalog()

	resolved, known := catalog.Resolve(7, PropWidth, ValueUint, true, TypeArtboard)
	if !known || resolved != ValueDouble {
		t.Errorf("Resolve(PropWidth, ownerMatch) = (%v, %v), want (Double, true)", resolved, known)
	}
}

func TestResolveUnownedKeyIgnoresRecordType(t *testing.T) {
	catalog := NewSchemaCatalog()

	// PropID has no owner entry, so it resolves the same regardless of the
	// enclosing record's type key.
	resolved, known := catalog.Resolve(7, PropID, ValueUint, true, TypeBackboard)
	if !known || resolved != ValueUint {
		t.Errorf("Resolve(PropID, Backboard) = (%v, %v), want (Uint, true)", resolved, known)
	}
	resolved, known = catalog.Resolve(7, PropID, ValueUint, true, TypeArtboard)
	if !known || resolved != ValueUint {
		t.Errorf("Resolve(PropID, Artboard) = (%v, %v), want (Uint, true)", resolved, known)
	}
}
