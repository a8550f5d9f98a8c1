// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package docscan

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractValue extracts the value of the member called name from a single
// line of a JSON document. The line need not be valid JSON on its own: text
// before the member is ignored, and trailing commas, closing brackets, or
// other debris after the value do no harm.
//
// If the quoted name occurs more than once, the first occurrence with an
// extractable scalar value wins. Object, array, and null values are not
// extracted.
func ExtractValue(line, name string) (string, bool) {
	key := `"` + name + `"`
	for off := 0; ; {
		i := strings.Index(line[off:], key)
		if i < 0 {
			return "", false
		}
		i += off
		off = i + len(key)
		if i > 0 && line[i-1] == '\\' {
			continue // an escaped quote inside some other string
		}

		rest := strings.TrimLeft(line[off:], " \t")
		if !strings.HasPrefix(rest, ":") {
			continue // a value that happens to equal the name
		}
		val := strings.TrimLeft(rest[1:], " \t")
		if val == "" {
			continue
		}
		switch c := val[0]; {
		case c == '{' || c == '[' || c == 'n':
			continue
		case c == '"' || c == '-' || c == 't' || c == 'f' || ('0' <= c && c <= '9'):
			// Present the member as the first member of an object. gjson does
			// not validate beyond what it needs to find the value, so the rest
			// of the line can be as broken as it likes.
			res := gjson.Get("{"+line[i:], escapePath(name))
			if res.Type == gjson.String {
				return res.Str, true
			} else if v, ok := NormalizeLiteral(res.Raw); ok && res.Type != gjson.JSON {
				return v, true
			}
		default:
			if v, ok := NormalizeLiteral(literal(val)); ok {
				return v, true
			}
		}
	}
}

// literal returns the prefix of s up to the first delimiter that could end
// an unquoted value.
func literal(s string) string {
	if i := strings.IndexAny(s, ",}] \t"); i >= 0 {
		return s[:i]
	}
	return s
}

// escapePath escapes the characters of a member name that gjson would
// otherwise treat as path syntax.
func escapePath(name string) string {
	if !strings.ContainsAny(name, `\.*?|#@!=<>%~,:()`) {
		return name
	}
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		switch c := name[i]; c {
		case '\\', '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '~', ',', ':', '(', ')':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
