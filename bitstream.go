// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

import (
	"encoding/binary"
	"math"

	"github.com/rivecodec/rivec/internal/codectext"
)

// Bitstream is a bounds-checked cursor over a Source. It never panics or
// slices out of range: every read returns an *Error (Kind: Malformed) when
// the cursor would run past the end of the buffer, mirroring the teacher's
// explicit offset/size boundary checks in ReadBytesAtOffset.
type Bitstream struct {
	src *Source
	pos int64
}

// NewBitstream returns a cursor positioned at the start of src.
func NewBitstream(src *Source) *Bitstream {
	return &Bitstream{src: src}
}

// Pos returns the current byte offset.
func (b *Bitstream) Pos() int64 { return b.pos }

// Seek repositions the cursor to an absolute offset.
func (b *Bitstream) Seek(pos int64) { b.pos = pos }

// Remaining reports how many bytes are left to read.
func (b *Bitstream) Remaining() int64 { return int64(b.src.Len()) - b.pos }

func (b *Bitstream) need(n int64) error {
	if b.pos < 0 || n < 0 || b.pos+n > int64(b.src.Len()) {
		err := newErrAt(KindMalformed, b.pos, "need %d bytes, only %d remain", n, b.Remaining())
		err.Cause = ErrTruncatedRead
		return err
	}
	return nil
}

// ReadByte reads one raw byte.
func (b *Bitstream) ReadByte() (byte, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	v := b.src.Bytes()[b.pos]
	b.pos++
	return v, nil
}

// ReadVaruint reads a LEB128-encoded unsigned integer, continuation bit high
// in each byte. Returns ErrUnterminatedVaruint-kind error if the buffer ends
// before a terminating byte (high bit clear) is seen.
func (b *Bitstream) ReadVaruint() (uint64, error) {
	v, _, err := b.ReadVaruintW()
	return v, err
}

// ReadVaruintW behaves like ReadVaruint but also returns the number of
// bytes consumed, so exact mode can capture a non-minimal source encoding
// and reproduce it on write (spec.md §4.1, §4.8).
func (b *Bitstream) ReadVaruintW() (uint64, int, error) {
	var result uint64
	var shift uint
	width := 0
	for {
		by, err := b.ReadByte()
		if err != nil {
			eofErr := newErrAt(KindMalformed, b.pos, "unexpected EOF while reading varuint")
			eofErr.Cause = ErrUnterminatedVaruint
			return 0, 0, eofErr
		}
		width++
		result |= uint64(by&0x7F) << shift
		if by&0x80 == 0 {
			return result, width, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, 0, newErrAt(KindMalformed, b.pos, "varuint exceeds 64 bits")
		}
	}
}

// WriteVaruint appends the minimal LEB128 encoding of v.
func WriteVaruint(buf []byte, v uint64) []byte {
	for {
		by := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			buf = append(buf, by|0x80)
		} else {
			buf = append(buf, by)
			return buf
		}
	}
}

// WriteVaruintWidth appends v encoded in exactly width bytes, padding with
// non-minimal continuation bytes as needed. Used by the exact-mode
// reconstructor to reproduce a non-minimal encoding observed in the source
// (spec.md §4.1, scenario 5). width must be large enough to hold v; callers
// that captured width from a real decode always satisfy this.
func WriteVaruintWidth(buf []byte, v uint64, width int) []byte {
	for i := 0; i < width; i++ {
		by := byte(v & 0x7F)
		v >>= 7
		if i == width-1 {
			buf = append(buf, by)
		} else {
			buf = append(buf, by|0x80)
		}
	}
	return buf
}

// VaruintWidth returns the number of bytes the minimal encoding of v
// occupies.
func VaruintWidth(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// ReadString reads a varuint length prefix followed by that many bytes,
// decoded as UTF-8 with U+FFFD replacement for invalid sequences. Callers
// that need a hard error on invalid UTF-8 use ReadStringStrict instead.
func (b *Bitstream) ReadString() (string, error) {
	raw, err := b.ReadBytesRaw()
	if err != nil {
		return "", err
	}
	return codectext.DecodeLenient(raw), nil
}

// ReadStringW behaves like ReadString but also returns the length prefix's
// varuint width, for exact-mode capture.
func (b *Bitstream) ReadStringW() (string, int, error) {
	raw, width, err := b.ReadBytesRawW()
	if err != nil {
		return "", 0, err
	}
	return codectext.DecodeLenient(raw), width, nil
}

// ReadStringStrict behaves like ReadString but fails on invalid UTF-8.
func (b *Bitstream) ReadStringStrict() (string, error) {
	raw, err := b.ReadBytesRaw()
	if err != nil {
		return "", err
	}
	s, ok := codectext.DecodeStrict(raw)
	if !ok {
		return "", newErrAt(KindMalformed, b.pos, "invalid UTF-8 in string property")
	}
	return s, nil
}

// WriteString appends a varuint length prefix followed by the UTF-8 bytes
// of s.
func WriteString(buf []byte, s string) []byte {
	buf = WriteVaruint(buf, uint64(len(s)))
	return append(buf, s...)
}

// ReadF32 reads 4 little-endian IEEE-754 single-precision bytes.
func (b *Bitstream) ReadF32() (float32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint32(b.src.Bytes()[b.pos : b.pos+4])
	b.pos += 4
	return math.Float32frombits(bits), nil
}

// WriteF32 appends 4 little-endian bytes.
func WriteF32(buf []byte, v float32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	return append(buf, tmp[:]...)
}

// ReadColor reads a 4-byte little-endian packed RGBA color.
func (b *Bitstream) ReadColor() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(b.src.Bytes()[b.pos : b.pos+4])
	b.pos += 4
	return v, nil
}

// WriteColor appends a 4-byte little-endian packed RGBA color.
func WriteColor(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// ReadBytesRaw reads a varuint length prefix followed by that many
// unparsed bytes.
func (b *Bitstream) ReadBytesRaw() ([]byte, error) {
	out, _, err := b.ReadBytesRawW()
	return out, err
}

// ReadBytesRawW behaves like ReadBytesRaw but also returns the length
// prefix's varuint width, for exact-mode capture.
func (b *Bitstream) ReadBytesRawW() ([]byte, int, error) {
	n, width, err := b.ReadVaruintW()
	if err != nil {
		return nil, 0, err
	}
	if err := b.need(int64(n)); err != nil {
		return nil, 0, err
	}
	out := make([]byte, n)
	copy(out, b.src.Bytes()[b.pos:b.pos+int64(n)])
	b.pos += int64(n)
	return out, width, nil
}

// WriteBytesRaw appends a varuint length prefix followed by data verbatim.
func WriteBytesRaw(buf []byte, data []byte) []byte {
	buf = WriteVaruint(buf, uint64(len(data)))
	return append(buf, data...)
}

// ReadRaw reads exactly n unparsed bytes, used for trailer and unknown-chunk
// preservation.
func (b *Bitstream) ReadRaw(n int64) ([]byte, error) {
	if err := b.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.src.Bytes()[b.pos:b.pos+n])
	b.pos += n
	return out, nil
}
