// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import "encoding/binary"

// Header is the decoded form of a container's fixed preamble: magic,
// version, file id, the property key table ("ToC"), and the 2-bit-per-key
// type bitmap. See spec.md §3, §4.2.
type Header struct {
	Major uint32
	Minor uint32
	// FileID is a 64-bit file identifier. The wire form is a varuint; it
	// fits in a uint64 even though spec.md's data model names it u64.
	FileID uint64

	// PropertyKeys is the header's ToC, in file order.
	PropertyKeys []uint32

	// Bitmap holds ceil(N/4) 32-bit words, 2 bits per key, little-endian
	// within each word (spec.md §3 invariant).
	Bitmap []uint32

	keyIndex map[uint32]int // PropertyKeys[v] == k, built once on decode.
}

// BitmapCapacity returns the number of 2-bit slots the bitmap provides,
// i.e. ceil(N/4)*4 where N = len(PropertyKeys).
func (h *Header) BitmapCapacity() int {
	return len(h.Bitmap) * 4
}

// indexOf returns the ToC index of key, building the lookup index lazily.
func (h *Header) indexOf(key uint32) (int, bool) {
	if h.keyIndex == nil {
		h.keyIndex = make(map[uint32]int, len(h.PropertyKeys))
		for i, k := range h.PropertyKeys {
			if _, exists := h.keyIndex[k]; !exists {
				h.keyIndex[k] = i
			}
		}
	}
	idx, ok := h.keyIndex[key]
	return idx, ok
}

// BitmapCodeForKey returns the bitmap-declared ValueType for key and
// whether key has a bitmap slot at all (i.e. appears in the header's
// property table within bitmap capacity).
func (h *Header) BitmapCodeForKey(key uint32) (ValueType, bool) {
	idx, ok := h.indexOf(key)
	if !ok {
		return ValueUint, false
	}
	bucket := idx / 4
	if bucket >= len(h.Bitmap) {
		return ValueUint, false
	}
	shift := uint((idx % 4) * 2)
	code := (h.Bitmap[bucket] >> shift) & 0x3
	return bitmapCode[code], true
}

// HasKey reports whether key is declared in the header's property table.
func (h *Header) HasKey(key uint32) bool {
	_, ok := h.indexOf(key)
	return ok
}

// AddKey appends key to the property table if not already present, growing
// the bitmap as needed. Used when encoding a graph authored from JSON that
// references a property key the header doesn't yet declare.
func (h *Header) AddKey(key uint32, typ ValueType) {
	if h.HasKey(key) {
		return
	}
	idx := len(h.PropertyKeys)
	h.PropertyKeys = append(h.PropertyKeys, key)
	if h.keyIndex == nil {
		h.keyIndex = map[uint32]int{}
	}
	h.keyIndex[key] = idx
	needWords := (idx/4 + 1)
	for len(h.Bitmap) < needWords {
		h.Bitmap = append(h.Bitmap, 0)
	}
	code := uint32(0)
	switch typ {
	case ValueUint, ValueBool, ValueCallback:
		code = 0
	case ValueString, ValueBytes:
		code = 1
	case ValueDouble:
		code = 2
	case ValueColor:
		code = 3
	}
	bucket := idx / 4
	shift := uint((idx % 4) * 2)
	h.Bitmap[bucket] |= code << shift
}

// DecodeHeader reads the fixed preamble starting at the Bitstream's current
// position (which must be 0). On return, bs is positioned immediately after
// the bitmap, ready for DecodeRecords.
func DecodeHeader(ctx Context, bs *Bitstream, catalog *SchemaCatalog) (*Header, error) {
	magicBytes, err := bs.ReadRaw(4)
	if err != nil {
		return nil, ErrShortMagic
	}
	if string(magicBytes) != Magic {
		return nil, ErrBadMagic
	}

	major, err := bs.ReadVaruint()
	if err != nil {
		return nil, err
	}
	minor, err := bs.ReadVaruint()
	if err != nil {
		return nil, err
	}
	fileID, err := bs.ReadVaruint()
	if err != nil {
		return nil, err
	}

	if !catalog.SupportsVersion(uint32(major)) {
		return nil, &Error{Kind: KindUnsupported, Offset: bs.Pos(),
			Message: "format version newer than compiled catalog knows"}
	}

	var keys []uint32
	for {
		k, err := bs.ReadVaruint()
		if err != nil {
			return nil, err
		}
		if k == 0 {
			break
		}
		keys = append(keys, uint32(k))
	}

	wordCount := (len(keys) + 3) / 4
	words := make([]uint32, wordCount)
	for i := 0; i < wordCount; i++ {
		raw, err := bs.ReadRaw(4)
		if err != nil {
			return nil, err
		}
		words[i] = binary.LittleEndian.Uint32(raw)
	}

	return &Header{
		Major:        uint32(major),
		Minor:        uint32(minor),
		FileID:       fileID,
		PropertyKeys: keys,
		Bitmap:       words,
	}, nil
}

// EncodeHeader appends the fixed preamble to buf.
func EncodeHeader(buf []byte, h *Header) []byte {
	buf = append(buf, Magic...)
	buf = WriteVaruint(buf, uint64(h.Major))
	buf = WriteVaruint(buf, uint64(h.Minor))
	buf = WriteVaruint(buf, h.FileID)
	for _, k := range h.PropertyKeys {
		buf = WriteVaruint(buf, uint64(k))
	}
	buf = WriteVaruint(buf, 0)
	for _, w := range h.Bitmap {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], w)
		buf = append(buf, tmp[:]...)
	}
	return buf
}
