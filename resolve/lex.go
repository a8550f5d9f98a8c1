// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package resolve

import (
	"strings"

	"github.com/creachadair/jlink"
	"github.com/creachadair/jlink/internal/escape"
)

// A lexeme is a token found on a single line of text.
type lexeme struct {
	kind       jlink.Token
	start, end int    // byte offsets in the line, end exclusive
	text       string // raw text, including quotes for strings
	open       bool   // a string not closed on its line
}

// value returns the text of a string lexeme with its quotes removed and its
// escapes decoded, or the raw text of any other lexeme.
func (l lexeme) value() string {
	if l.kind != jlink.String {
		return l.text
	}
	body := l.text[1:]
	if !l.open {
		body = body[:len(body)-1]
	}
	return escape.Lenient(body)
}

var delims = [...]jlink.Token{
	'{': jlink.LBrace, '}': jlink.RBrace,
	'[': jlink.LSquare, ']': jlink.RSquare,
	',': jlink.Comma, ':': jlink.Colon,
}

// lexLine splits one line of a JSON document into lexemes. It never fails:
// a string left open runs to the end of the line, comments are dropped, and
// anything else that is not punctuation becomes a literal, classified as
// well as it can be.
func lexLine(s string) []lexeme {
	var out []lexeme
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case int(c) < len(delims) && delims[c] != jlink.Invalid:
			out = append(out, lexeme{kind: delims[c], start: i, end: i + 1, text: s[i : i+1]})
			i++

		case c == '"':
			j, open := i+1, true
			for esc := false; j < len(s); j++ {
				if esc {
					esc = false
				} else if s[j] == '\\' {
					esc = true
				} else if s[j] == '"' {
					j++
					open = false
					break
				}
			}
			out = append(out, lexeme{kind: jlink.String, start: i, end: j, text: s[i:j], open: open})
			i = j

		case strings.HasPrefix(s[i:], "//"):
			i = len(s)

		case strings.HasPrefix(s[i:], "/*"):
			if k := strings.Index(s[i+2:], "*/"); k >= 0 {
				i += k + 4
			} else {
				i = len(s)
			}

		default:
			j := i + 1
			for j < len(s) && !strings.ContainsRune(" \t\r\n{}[],:\"/", rune(s[j])) {
				j++
			}
			out = append(out, lexeme{kind: classify(s[i:j]), start: i, end: j, text: s[i:j]})
			i = j
		}
	}
	return out
}

// classify reports the token type of an unquoted literal.
func classify(lit string) jlink.Token {
	switch {
	case strings.EqualFold(lit, "true"):
		return jlink.True
	case strings.EqualFold(lit, "false"):
		return jlink.False
	case strings.EqualFold(lit, "null"):
		return jlink.Null
	}
	if c := lit[0]; c != '-' && (c < '0' || c > '9') {
		return jlink.Invalid
	}
	if strings.ContainsAny(lit, ".eE") {
		return jlink.Number
	}
	return jlink.Integer
}
