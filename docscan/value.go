// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package docscan

import (
	"strconv"
	"strings"

	"github.com/creachadair/jlink"
)

// Normalize renders the value of a scalar token for comparison.  Booleans
// are lower-cased, the decimal separator of a number is always ".", and
// strings are unquoted. Integers pass through unchanged. It reports false
// for null and for tokens that are not values.
func Normalize(tok jlink.Token, text []byte) (string, bool) {
	switch tok {
	case jlink.True, jlink.False:
		return strings.ToLower(string(text)), true
	case jlink.Integer:
		return string(text), true
	case jlink.Number:
		return strings.ReplaceAll(string(text), ",", "."), true
	case jlink.String:
		return unquote(text), true
	}
	return "", false
}

// NormalizeLiteral classifies an unquoted literal taken from a document that
// may not be well-formed, and normalizes it as Normalize would. Boolean
// constants are accepted in any letter case. It reports false for null and
// for anything that is not a recognizable scalar.
func NormalizeLiteral(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", false
	case strings.EqualFold(raw, "true"):
		return Normalize(jlink.True, []byte(raw))
	case strings.EqualFold(raw, "false"):
		return Normalize(jlink.False, []byte(raw))
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Normalize(jlink.Integer, []byte(raw))
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return "", false // not a number, e.g. NaN or Inf
	}
	num := strings.ReplaceAll(raw, ",", ".")
	if _, err := strconv.ParseFloat(num, 64); err == nil {
		return Normalize(jlink.Number, []byte(num))
	}
	return "", false
}
