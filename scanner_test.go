// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jlink_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jlink"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jlink.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jlink.Token{jlink.True, jlink.False, jlink.Null}},

		// Punctuation
		{"{ [ ] } , :", []jlink.Token{
			jlink.LBrace, jlink.LSquare, jlink.RSquare, jlink.RBrace, jlink.Comma, jlink.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jlink.Token{jlink.String, jlink.String, jlink.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jlink.Token{jlink.String}},
		{`"\u0000\u01fc\uAA9c"`, []jlink.Token{jlink.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jlink.Token{
			jlink.Integer, jlink.Integer, jlink.Integer,
			jlink.Number, jlink.Number, jlink.Number, jlink.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jlink.Token{
			jlink.LBrace, jlink.True, jlink.Comma, jlink.String, jlink.Colon,
			jlink.Integer, jlink.Null, jlink.LSquare, jlink.RSquare, jlink.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jlink.Token{
			jlink.LBrace,
			jlink.String, jlink.Colon, jlink.True, jlink.Comma,
			jlink.String, jlink.Colon,
			jlink.LSquare,
			jlink.Null, jlink.Comma, jlink.Integer, jlink.Comma, jlink.Number,
			jlink.RSquare,
			jlink.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jlink.Token{
			jlink.String, jlink.Comma, jlink.Integer, jlink.Comma, jlink.True,
			jlink.False, jlink.LSquare, jlink.String, jlink.RSquare,
		}},
	}

	for _, test := range tests {
		var got []jlink.Token
		s := jlink.NewScanner(strings.NewReader(test.input))
		for s.Next() == nil {
			got = append(got, s.Token())
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []jlink.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []jlink.Token{jlink.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []jlink.Token{jlink.LineComment, jlink.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []jlink.Token{jlink.LineComment},
			[]string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []jlink.Token{
			jlink.LBrace, jlink.String, jlink.Colon, jlink.Integer, jlink.Comma, jlink.LineComment,
			jlink.String, jlink.BlockComment, jlink.Colon, jlink.Number, jlink.RBrace,
		}, []string{
			"// howdy do\n", "/* hide me */",
		}},

		{`"a" // line
false /*
  this is a comment
*/ 1 null [ {} ]`, []jlink.Token{
			jlink.String, jlink.LineComment, jlink.False, jlink.BlockComment,
			jlink.Integer, jlink.Null, jlink.LSquare, jlink.LBrace, jlink.RBrace, jlink.RSquare,
		}, []string{
			"// line\n", "/*\n  this is a comment\n*/",
		}},

		{"/* x */\n{\n}//foo", []jlink.Token{
			jlink.BlockComment, jlink.LBrace, jlink.RBrace, jlink.LineComment,
		}, []string{
			"/* x */", "//foo",
		}},

		{"/**\n*/", []jlink.Token{jlink.BlockComment}, []string{"/**\n*/"}},

		{`/**/"foo"/***/"bar"/****/"baz"/*****/false/*x*/null`, []jlink.Token{
			jlink.BlockComment, jlink.String,
			jlink.BlockComment, jlink.String,
			jlink.BlockComment, jlink.String,
			jlink.BlockComment, jlink.False,
			jlink.BlockComment, jlink.Null,
		}, []string{
			"/**/", "/***/", "/****/", "/*****/", "/*x*/",
		}},
	}

	for _, test := range tests {
		var got []jlink.Token
		var coms []string
		s := jlink.NewScanner(strings.NewReader(test.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, s.Token())
			if tok := s.Token(); tok == jlink.LineComment || tok == jlink.BlockComment {
				coms = append(coms, string(s.Text()))
			}
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_decodeAs(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jlink.Token) *jlink.Scanner {
		t.Helper()
		s := jlink.NewScanner(strings.NewReader(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Integer", func(t *testing.T) {
		mustScan(t, `-15`, jlink.Integer)
	})
	t.Run("Number", func(t *testing.T) {
		mustScan(t, `3.25e-5`, jlink.Number)
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, jlink.True)
		mustScan(t, `false`, jlink.False)
		mustScan(t, `null`, jlink.Null)
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb\u0020c\n"` // as written, without quotes
		const wantDec = "a\tb c\n"         // with escapes undone
		s := mustScan(t, `"a\tb\u0020c\n"`, jlink.String)
		text := s.Text()
		if got := string(text); got != wantText {
			t.Errorf("Text: got %#q, want %#q", got, wantText)
		}
		if u, err := jlink.Unquote(string(text)); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if u != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", u, wantDec)
		}
		if got := s.Unquote(); got != wantDec {
			t.Errorf("Scanner.Unquote: got %#q, want %#q", got, wantDec)
		}
	})
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jlink.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jlink.LBrace, "1:0-1"}, {jlink.RBrace, "1:2-3"}}},
		{`"foo" // bar`, []tokPos{{jlink.String, "1:0-5"}, {jlink.LineComment, "1:6-12"}}},
		{"/* ok */\ntrue\n false\n", []tokPos{{jlink.BlockComment, "1:0-8"}, {jlink.True, "2:0-4"}, {jlink.False, "3:1-6"}}},
		{"/* abc */", []tokPos{{jlink.BlockComment, "1:0-9"}}},
		{"/* ok\n*/\n null", []tokPos{{jlink.BlockComment, "1:0-2:2"}, {jlink.Null, "3:1-5"}}},
		{"// first\n[1, /*x*/, 2\n]", []tokPos{
			{jlink.LineComment, "1:0-2:0"}, {jlink.LSquare, "2:0-1"}, {jlink.Integer, "2:1-2"},
			{jlink.Comma, "2:2-3"}, {jlink.BlockComment, "2:4-9"}, {jlink.Comma, "2:9-10"},
			{jlink.Integer, "2:11-12"}, {jlink.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jlink.NewScanner(strings.NewReader(tc.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},      // short Unicode escape
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},         // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},         // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},              // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},       // ok
	}

	for _, test := range tests {
		got, err := jlink.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if err == nil && test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := got; cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"what did you`, "at 1:13: unexpected end of input"},
		{"{\n  \"a\": tru }", "at 2:10: unknown constant \"tru\""},
		{`[01]`, "at 1:4: extra leading zeroes"},
		{`1.`, "at 1:2: no digits after decimal point"},
		{`@`, "at 1:1: unexpected '@'"},
	}
	for _, test := range tests {
		s := jlink.NewScanner(strings.NewReader(test.input))
		var err error
		for err == nil {
			err = s.Next()
		}
		var serr *jlink.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input: %#q: got %v, want *SyntaxError", test.input, err)
			continue
		}
		if got := serr.Error(); got != test.want {
			t.Errorf("Input: %#q: got %q, want %q", test.input, got, test.want)
		}
	}
}

type failReader struct{ err error }

func (f failReader) Read([]byte) (int, error) { return 0, f.err }

func TestScannerReadError(t *testing.T) {
	bad := errors.New("disk on fire")
	s := jlink.NewScanner(failReader{bad})
	err := s.Next()
	if !errors.Is(err, bad) {
		t.Fatalf("Next: got %v, want %v", err, bad)
	}
	var serr *jlink.SyntaxError
	if errors.As(err, &serr) {
		t.Errorf("Next: read failure reported as a syntax error: %v", err)
	}
}

func TestScannerLine(t *testing.T) {
	const input = "{\n  \"a\": 1,\n\n  \"b\": [true]\n}"
	want := []int{0, 1, 1, 1, 1, 3, 3, 3, 3, 3, 4}
	var got []int
	s := jlink.NewScanner(strings.NewReader(input))
	for s.Next() == nil {
		got = append(got, s.Line())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines (-want, +got):\n%s", diff)
	}
}
