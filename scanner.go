// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlink

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/creachadair/jlink/internal/escape"
	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsScalar reports whether t is a string, number, or constant token.
func (t Token) IsScalar() bool { return t >= Integer && t <= Null }

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// Lexical errors are reported as *SyntaxError. Errors from the underlying
// reader are returned wrapped but otherwise unchanged, so callers can tell
// damaged input apart from a failed read.
type Scanner struct {
	r        *bufio.Reader
	comments bool         // allow comments
	buf      bytes.Buffer // current token
	tok      Token
	err      error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. If enabled, C++ style block comments (/* ... */) and line
// comments (// ...) are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}
		if ch == '"' {
			return s.scanString(ch)
		}
		if ch == '/' && s.comments {
			return s.scanComment(ch)
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.tok = True
			want = mem.S("true")
		case 'f':
			s.tok = False
			want = mem.S("false")
		case 'n':
			s.tok = Null
			want = mem.S("null")
		default:
			return s.failf("unexpected %q", ch)
		}
		if err := s.scanName(ch); err != nil {
			return err
		} else if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
			return s.failf("unknown constant %q", got.StringCopy())
		}
		return nil
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Unquote returns the decoded contents of the current token, which must be
// a String. Invalid escapes decode to the Unicode replacement rune.
func (s *Scanner) Unquote() string {
	text := s.buf.Bytes()
	if s.tok != String || len(text) < 2 {
		return string(text)
	}
	out, _ := escape.Unquote(mem.B(text[1 : len(text)-1]))
	return out
}

// Line returns the 0-based line number on which the current token begins.
func (s *Scanner) Line() int { return s.pline }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	var esc bool
	for {
		ch, err := s.rune()
		if err != nil {
			return s.truncated(err)
		} else if ch == open && !esc {
			s.buf.WriteRune(ch)
			s.tok = String
			return nil
		}
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.buf.WriteByte(byte(ch))
			case 'u':
				s.buf.WriteByte(byte(ch))
				if err := s.readHex4(); err != nil {
					return err
				}
			default:
				return s.failf("invalid %q after escape", ch)
			}
			esc = false
		} else if ch < ' ' {
			return s.failf("unescaped control %q", ch)
		} else if ch > unicode.MaxRune {
			return s.failf("invalid Unicode rune %q", ch)
		} else {
			s.buf.WriteRune(ch)
			esc = ch == '\\'
		}
	}
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	if start == '-' {
		// A leading sign requires at least one digit.
		ch, err := s.require(isDigit, "digit")
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of an integer.
	_, ch, err := s.readWhile(isDigit)
	if err == io.EOF {
		s.tok = Integer
		return s.checkLeadingZeroes()
	} else if err != nil {
		return s.fail(err)
	}
	if err := s.checkLeadingZeroes(); err != nil {
		return err
	}

	// If a decimal point follows, consume a fractional part.
	s.tok = Integer
	if ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if err != nil && err != io.EOF {
			return s.fail(err)
		} else if nr == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
		if err == io.EOF {
			return nil
		}
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		return nil
	}

	s.buf.WriteRune(ch)
	ch, err = s.require(isExpStart, "sign or digit")
	if err != nil {
		return err
	}
	s.buf.WriteRune(ch)
	nr, _, err := s.readWhile(isDigit)
	s.tok = Number
	if nr == 0 && (ch == '-' || ch == '+') {
		return s.failf("missing exponent digits")
	} else if err == io.EOF {
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	ch, err := s.rune()
	if err != nil {
		return s.truncated(err)
	}
	switch ch {
	case '/': // line comment to LF
		s.buf.WriteRune(ch)
		_, end, err := s.readWhile(isNotLF)
		if err == nil {
			s.buf.WriteRune(end)
			s.eline++
			s.ecol = 0
		} else if err != io.EOF {
			return s.fail(err)
		}
		s.tok = LineComment
		return nil

	case '*': // block comment
		s.buf.WriteRune(ch)
		for {
			_, end, err := s.readWhile(isNotStar)
			if err != nil {
				return s.truncated(err)
			}
			s.buf.WriteRune(end) // end == '*'

			next, err := s.rune()
			if err != nil {
				return s.truncated(err)
			}
			s.buf.WriteRune(next)
			if next == '/' {
				s.tok = BlockComment
				s.countLines(s.buf.Bytes())
				return nil
			}
		}

	default:
		s.unrune()
		return s.failf("invalid %q in comment", ch)
	}
}

func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

// countLines adjusts the end line and column for newlines inside text, which
// must end at the current input position.
func (s *Scanner) countLines(text []byte) {
	if n := bytes.Count(text, []byte("\n")); n > 0 {
		s.eline += n
		s.ecol = len(text) - bytes.LastIndexByte(text, '\n') - 1
	}
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or returns an error
// mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.truncated(err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.failf("got %q, want %s", ch, label)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err != nil {
			return s.truncated(err)
		} else if !isHexDigit(ch) {
			return s.failf("invalid Unicode escape: not a hex digit: %q", ch)
		}
		s.buf.WriteRune(ch)
	}
	return nil
}

func (s *Scanner) checkLeadingZeroes() error {
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failf("extra leading zeroes")
	}
	return nil
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// fail records a failure of the underlying reader.
func (s *Scanner) fail(err error) error {
	return s.setErr(fmt.Errorf("read at offset %d: %w", s.end, err))
}

// failf records a lexical error at the current location.
func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(&SyntaxError{
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Message:  fmt.Sprintf(msg, args...),
	})
}

// truncated reports err as an unexpected end of input if it is io.EOF, or as
// a read failure otherwise.
func (s *Scanner) truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return s.failf("unexpected end of input")
	}
	return s.fail(err)
}

// SyntaxError is the concrete type of lexical errors reported by a Scanner.
type SyntaxError struct {
	Location LineCol
	Message  string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNotStar(ch rune) bool  { return ch != '*' }
func isNotLF(ch rune) bool    { return ch != '\n' }
func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:]
	}
	if buf[0] == '0' {
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
