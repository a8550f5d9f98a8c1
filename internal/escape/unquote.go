// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes the contents of JSON string literals.
package escape

import (
	"errors"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrIncomplete is reported for an escape sequence truncated by the end of
// the input.
var ErrIncomplete = errors.New("incomplete escape sequence")

// Unquote decodes the body of a JSON string literal. The input must have the
// enclosing double quotation marks already removed.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports ErrIncomplete if the input ends inside an escape sequence, along
// with the text decoded so far.
func Unquote(src mem.RO) (string, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return src.StringCopy(), nil
	}

	var sb strings.Builder
	sb.Grow(src.Len())
	for {
		sb.WriteString(src.SliceTo(i).StringCopy())

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return sb.String(), ErrIncomplete
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\\', '/':
			sb.WriteRune(r)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if src.Len() < 4 {
				return sb.String(), ErrIncomplete
			}
			if v, ok := parseHex(src.SliceTo(4)); ok {
				sb.WriteRune(rune(v))
			} else {
				sb.WriteRune(utf8.RuneError)
			}
			src = src.SliceFrom(4)
		default:
			sb.WriteRune(utf8.RuneError)
		}

		if i = mem.IndexByte(src, '\\'); i < 0 {
			sb.WriteString(src.StringCopy())
			return sb.String(), nil
		}
	}
}

// Lenient decodes s like Unquote, but discards a trailing incomplete escape
// instead of reporting an error. It is meant for text taken from documents
// that may not be well-formed.
func Lenient(s string) string {
	out, _ := Unquote(mem.S(s))
	return out
}

func parseHex(data mem.RO) (int64, bool) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
