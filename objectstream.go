// Copyright 2026 The rivec Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package riv

// DecodeRecords reads a sequence of records terminated by a type-key 0,
// following spec.md §4.3's reader algorithm. It stops after consuming the
// terminator and returns the records read so far. Non-fatal problems
// (unknown property keys, mid-record EOF) are appended to report rather
// than failing the whole chunk, unless ctx.Strict escalates them.
func DecodeRecords(ctx Context, bs *Bitstream, hdr *Header, catalog *SchemaCatalog, report *Report) ([]*Record, error) {
	var records []*Record
	max := ctx.maxRecords()

	for {
		if len(records) >= max {
			return records, newErrAt(KindMalformed, bs.Pos(), "record count exceeds MaxRecords (%d)", max)
		}

		startPos := bs.Pos()
		typeKey, typeKeyWidth, err := bs.ReadVaruintW()
		if err != nil {
			if len(records) == 0 && startPos == bs.Pos() {
				// Clean EOF exactly at a chunk boundary is not an error at
				// this layer; the caller (ChunkFramer) decides whether a
				// missing terminator is itself a problem.
				issue := Issue{Severity: SeverityInfo, Kind: KindMalformed, Offset: startPos,
					Message: "stream ended without a terminator"}
				report.Add(issue)
				logIssue(ctx, issue)
				return records, nil
			}
			truncIssue := Issue{Severity: SeverityWarning, Kind: KindMalformed, Offset: startPos,
				Message: "EOF reading type key; stream truncated"}
			report.Add(truncIssue)
			logIssue(ctx, truncIssue)
			if ctx.Strict {
				return records, err
			}
			return records, nil
		}

		if typeKey == 0 {
			return records, nil
		}

		rec := &Record{TypeKey: uint32(typeKey)}
		if ctx.Exact {
			rec.TypeKeyWidth = typeKeyWidth
		}

		for {
			propPos := bs.Pos()
			key, keyWidth, err := bs.ReadVaruintW()
			if err != nil {
				issue := Issue{Severity: SeverityWarning, Kind: KindMalformed, Offset: propPos, TypeKey: rec.TypeKey,
					Message: "EOF reading property key mid-record"}
				report.Add(issue)
				logIssue(ctx, issue)
				if ctx.Strict {
					return records, err
				}
				if len(rec.Properties) > 0 {
					records = append(records, rec)
				}
				return records, nil
			}
			if key == 0 {
				break
			}

			prop, perr := decodeProperty(ctx, bs, hdr, catalog, rec.TypeKey, uint32(key), keyWidth, report)
			if perr != nil {
				issue := Issue{Severity: SeverityWarning, Kind: KindMalformed, Offset: propPos, TypeKey: rec.TypeKey,
					Message: "EOF reading property value mid-record"}
				report.Add(issue)
				logIssue(ctx, issue)
				if ctx.Strict {
					return records, perr
				}
				if len(rec.Properties) > 0 {
					records = append(records, rec)
				}
				return records, nil
			}
			rec.Properties = append(rec.Properties, prop)
		}

		records = append(records, rec)
	}
}

// decodeProperty resolves key's value type through the header bitmap and
// the SchemaCatalog (spec.md §4.2's tie-break: catalog wins, except a
// catalog "unknown" entry defers to the bitmap) and reads the value.
func decodeProperty(ctx Context, bs *Bitstream, hdr *Header, catalog *SchemaCatalog, typeKey uint32, key uint32, keyWidth int, report *Report) (Property, error) {
	bitmapType, hasSlot := hdr.BitmapCodeForKey(key)
	resolved, known := catalog.Resolve(hdr.Major, key, bitmapType, hasSlot, typeKey)

	if !hdr.HasKey(key) {
		sev := SeverityWarning
		if ctx.Strict {
			sev = SeverityError
		}
		issue := Issue{Severity: sev, Kind: KindSchemaViolation, Offset: bs.Pos(), TypeKey: typeKey,
			Message: "property key not declared in header table"}
		report.Add(issue)
		logIssue(ctx, issue)
		resolved = ValueUint
	} else if !known {
		issue := Issue{Severity: SeverityWarning, Kind: KindMalformed, Offset: bs.Pos(), TypeKey: typeKey,
			Message: "property key outside bitmap capacity; decoding as uint"}
		report.Add(issue)
		logIssue(ctx, issue)
	}

	prop := Property{Key: key}
	if ctx.Exact {
		prop.KeyWidth = keyWidth
	}

	switch resolved {
	case ValueUint, ValueCallback:
		v, width, err := bs.ReadVaruintW()
		if err != nil {
			return Property{}, err
		}
		prop.Value = UintValue(v)
		if ctx.Exact {
			prop.ValueWidth = width
		}
	case ValueBool:
		v, width, err := bs.ReadVaruintW()
		if err != nil {
			return Property{}, err
		}
		prop.Value = BoolValue(v != 0)
		if ctx.Exact {
			prop.ValueWidth = width
		}
	case ValueString:
		var s string
		var width int
		var err error
		if ctx.Strict {
			s, err = bs.ReadStringStrict()
		} else {
			s, width, err = bs.ReadStringW()
		}
		if err != nil {
			return Property{}, err
		}
		prop.Value = StringValue(s)
		if ctx.Exact {
			prop.ValueWidth = width
		}
	case ValueDouble:
		v, err := bs.ReadF32()
		if err != nil {
			return Property{}, err
		}
		prop.Value = DoubleValue(v)
	case ValueColor:
		v, err := bs.ReadColor()
		if err != nil {
			return Property{}, err
		}
		prop.Value = ColorValue(v)
	case ValueBytes:
		b, width, err := bs.ReadBytesRawW()
		if err != nil {
			return Property{}, err
		}
		prop.Value = BytesValue(b)
		if ctx.Exact {
			prop.ValueWidth = width
		}
	}
	return prop, nil
}

// EncodeRecords appends records to buf, each followed by a property
// terminator, followed by one trailing chunk terminator. When ctx.Exact is
// set and a Property/Record carries a captured width, that width is
// reproduced; otherwise the minimal encoding is used.
//
// The writer never recovers from a malformed graph (spec.md §7): a record
// carrying a property key absent from hdr's property table is refused
// outright with a SchemaViolation error, rather than silently writing a
// stream no reader could validate against its own header (spec.md §8
// scenario 4).
func EncodeRecords(ctx Context, buf []byte, records []*Record, hdr *Header, catalog *SchemaCatalog) ([]byte, error) {
	for _, rec := range records {
		buf = writeVaruintMaybeWidth(buf, uint64(rec.TypeKey), ctx.Exact, rec.TypeKeyWidth)
		for _, p := range rec.Properties {
			if !hdr.HasKey(p.Key) {
				err := newErr(KindSchemaViolation, "refusing to encode property key %d: not declared in header table", p.Key)
				ctx.log().Errorf("%s", err)
				return nil, err
			}
			buf = writeVaruintMaybeWidth(buf, uint64(p.Key), ctx.Exact, p.KeyWidth)
			buf = encodeValue(buf, p, ctx.Exact)
		}
		buf = WriteVaruint(buf, 0)
	}
	buf = WriteVaruint(buf, 0)
	return buf, nil
}

func writeVaruintMaybeWidth(buf []byte, v uint64, exact bool, width int) []byte {
	if exact && width > 0 {
		return WriteVaruintWidth(buf, v, width)
	}
	return WriteVaruint(buf, v)
}

func encodeValue(buf []byte, p Property, exact bool) []byte {
	switch p.Value.Type {
	case ValueUint, ValueCallback:
		return writeVaruintMaybeWidth(buf, p.Value.Uint, exact, p.ValueWidth)
	case ValueBool:
		v := uint64(0)
		if p.Value.Bool {
			v = 1
		}
		return writeVaruintMaybeWidth(buf, v, exact, p.ValueWidth)
	case ValueString:
		if exact && p.ValueWidth > 0 {
			buf = WriteVaruintWidth(buf, uint64(len(p.Value.Str)), p.ValueWidth)
			return append(buf, p.Value.Str...)
		}
		return WriteString(buf, p.Value.Str)
	case ValueDouble:
		return WriteF32(buf, p.Value.Double)
	case ValueColor:
		return WriteColor(buf, p.Value.Color)
	case ValueBytes:
		if exact && p.ValueWidth > 0 {
			buf = WriteVaruintWidth(buf, uint64(len(p.Value.Bytes)), p.ValueWidth)
			return append(buf, p.Value.Bytes...)
		}
		return WriteBytesRaw(buf, p.Value.Bytes)
	}
	return buf
}
