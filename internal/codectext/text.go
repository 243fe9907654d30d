// Package codectext holds the small set of text-repair helpers the codec
// needs at its two UTF-8 boundaries: decoding a container's length-prefixed
// string bytes (spec: invalid bytes are replaced, never rejected outside
// strict mode) and re-validating a JSON-authored string before it is lowered
// back into the container. Grounded on the teacher's DecodeUTF16String
// (helper.go), which leaned on the same golang.org/x/text/encoding/unicode
// package to repair a different encoding's edge cases; here it is used for
// BOM stripping rather than UTF-16 transcoding.
package codectext

import (
	"golang.org/x/text/encoding/unicode"
	"strings"
	"unicode/utf8"
)

// DecodeStrict decodes b as UTF-8, returning false if any byte sequence is
// invalid. Used when the codec is running in strict mode.
func DecodeStrict(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// DecodeLenient decodes b as UTF-8, substituting utf8.RuneError's standard
// replacement character for any invalid byte sequence rather than failing.
// This matches spec.md §4.1: "decoded as UTF-8 with replacement on invalid
// bytes."
func DecodeLenient(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		sb.WriteRune(r)
		i += size
	}
	return sb.String()
}

// StripBOM removes a leading UTF-8 byte-order mark, if present; the
// remainder is returned unchanged, without re-validation. JSON-authored strings are sometimes
// saved by editors with a BOM; the container format has no concept of one,
// so it must not survive the lower step.
func StripBOM(s string) string {
	const bom = string(rune(0xFEFF))
	return strings.TrimPrefix(s, bom)
}

// NormalizeBytes is kept for the one case StripBOM alone cannot handle: a
// string that arrived as raw bytes still carrying a UTF-16-style BOM marker
// because it was round-tripped through a tool that re-encoded it. It
// decodes through x/text's UTF-8 decoder, then strips any BOM, and always
// returns valid UTF-8 text.
func NormalizeBytes(b []byte) (string, error) {
	decoder := unicode.UTF8.NewDecoder()
	out, err := decoder.Bytes(b)
	if err != nil {
		return DecodeLenient(b), nil
	}
	return StripBOM(string(out)), nil
}
