// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package docscan_test

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jlink"
	"github.com/creachadair/jlink/docscan"
	"github.com/google/go-cmp/cmp"
)

func words(paths ...string) []*jlink.Word {
	out := make([]*jlink.Word, len(paths))
	for i, p := range paths {
		out[i] = jlink.MustParseWord(p)
	}
	return out
}

// collect returns a callback that records matches as "line path=value".
func collect(out *[]string) func(docscan.Match) {
	return func(m docscan.Match) {
		*out = append(*out, fmt.Sprintf("%d %s=%s", m.Line, m.Word, m.Value))
	}
}

func TestScanValid(t *testing.T) {
	const nested = `{"ref":{"id":"X"},"other":{"ref":{"id":"Y"}}}`
	const multi = `{
  "items": [
    {"id": 1, "name": "one"},
    {"id": 2.50, "ok": true}
  ],
  "id": "top",
  "nothing": null,
  "obj": {"name": "a\"b", "list": [false, "name"]}
}`
	tests := []struct {
		name  string
		input string
		words []*jlink.Word
		want  []string
	}{
		{"CompoundNested", nested, words("ref.id"), []string{"0 ref.id=X"}},
		{"SimpleAnyDepth", nested, words("id"), []string{"0 id=X", "0 id=Y"}},
		{"AncestorRequired", nested, words("other.ref.id"), []string{"0 other.ref.id=Y"}},
		{"WrongAncestor", nested, words("other.id", "ref.ref.id"), nil},
		{"MultipleWords", nested, words("id", "ref.id"), []string{"0 id=X", "0 ref.id=X", "0 id=Y"}},
		{"Arrays", multi, words("items.id", "$.id", "name", "ok"), []string{
			"2 items.id=1",
			"2 name=one",
			"3 items.id=2.50",
			"3 ok=true",
			"5 id=top",
			`7 name=a"b`,
		}},
		{"NullAndContainersSkipped", multi, words("nothing", "obj", "items", "list"), nil},
		{"Comments", "{\n // note\n \"id\": /* inline */ 5\n}", words("id"), []string{"2 id=5"}},
		{"ExtraClose", `}]{"id": 1}`, words("id"), []string{"0 id=1"}},
		{"Unterminated", "{\"a\": {\"id\": 2}\n", words("a.id"), []string{"0 a.id=2"}},
		{"MissingComma", `{"a": 1 "b": 2, "c": {"d": 3} "e": "x" "f": null "g": true}`,
			words("a", "b", "e", "g", "c.d"), []string{"0 a=1", "0 b=2", "0 c.d=3", "0 e=x", "0 g=true"}},
		{"MissingCommaArray", `{"list": ["a" "b"] "id": 4}`, words("list", "id"), []string{"0 id=4"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got []string
			if err := docscan.ScanValid(strings.NewReader(test.input), test.words, collect(&got)); err != nil {
				t.Fatalf("ScanValid: unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Matches (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestScanValidUnbalanced(t *testing.T) {
	const input = `{"a": {"id": 2}}}}], "id": 3`
	var got []string
	if err := docscan.ScanValid(strings.NewReader(input), words("id"), collect(&got)); err != nil {
		t.Fatalf("ScanValid: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"0 id=2"}, got); diff != "" {
		t.Errorf("Matches (-want, +got):\n%s", diff)
	}
}

func TestScanValidSyntaxError(t *testing.T) {
	const input = "{\"id\": 1,\n \"flag\": FALSE}"
	var got []string
	err := docscan.ScanValid(strings.NewReader(input), words("id"), collect(&got))
	var serr *jlink.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("ScanValid: got %v, want *jlink.SyntaxError", err)
	}
	if serr.Location.Line != 2 {
		t.Errorf("Error line: got %d, want 2", serr.Location.Line)
	}
	if diff := cmp.Diff([]string{"0 id=1"}, got); diff != "" {
		t.Errorf("Matches before error (-want, +got):\n%s", diff)
	}
}

const malformed = `{
  "id": "X",
  "flag": FALSE,
  "ref": {"id": 42},,
  "pi": 3.25 oops
  "name": "ok"
  }}]`

func TestScanLines(t *testing.T) {
	var got []string
	ws := words("id", "flag", "pi", "ref.id", "name")
	if err := docscan.ScanLines(strings.NewReader(malformed), ws, collect(&got)); err != nil {
		t.Fatalf("ScanLines: unexpected error: %v", err)
	}
	want := []string{
		"1 id=X", "1 ref.id=X",
		"2 flag=false",
		"3 id=42", "3 ref.id=42",
		"4 pi=3.25",
		"5 name=ok",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Matches (-want, +got):\n%s", diff)
	}
}

func TestScanBytes(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		var got []string
		mode, err := docscan.ScanBytes([]byte(`{"ref": {"id": 1}, "id": 2}`), words("ref.id"), collect(&got))
		if err != nil {
			t.Fatalf("ScanBytes: unexpected error: %v", err)
		}
		if mode != docscan.Valid {
			t.Errorf("Mode: got %v, want %v", mode, docscan.Valid)
		}
		if diff := cmp.Diff([]string{"0 ref.id=1"}, got); diff != "" {
			t.Errorf("Matches (-want, +got):\n%s", diff)
		}
	})
	t.Run("Fallback", func(t *testing.T) {
		var got []string
		mode, err := docscan.ScanBytes([]byte(malformed), words("flag"), collect(&got))
		if err != nil {
			t.Fatalf("ScanBytes: unexpected error: %v", err)
		}
		if mode != docscan.Lines {
			t.Errorf("Mode: got %v, want %v", mode, docscan.Lines)
		}
		if diff := cmp.Diff([]string{"2 flag=false"}, got); diff != "" {
			t.Errorf("Matches (-want, +got):\n%s", diff)
		}
	})
	t.Run("FallbackDiscardsPartial", func(t *testing.T) {
		// The valid scan sees "id" on line 0 before failing; only the line
		// scan results may be reported.
		var got []string
		input := "{\"id\": 1, \"x\": @}\n{\"id\": 2}"
		mode, err := docscan.ScanBytes([]byte(input), words("id"), collect(&got))
		if err != nil {
			t.Fatalf("ScanBytes: unexpected error: %v", err)
		}
		if mode != docscan.Lines {
			t.Errorf("Mode: got %v, want %v", mode, docscan.Lines)
		}
		if diff := cmp.Diff([]string{"0 id=1", "1 id=2"}, got); diff != "" {
			t.Errorf("Matches (-want, +got):\n%s", diff)
		}
	})
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.json")
	if err := os.WriteFile(path, []byte("{\n  \"id\": \"A\"\n}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var got []string
	if _, err := docscan.ScanFile(path, words("$.id"), collect(&got)); err != nil {
		t.Fatalf("ScanFile: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"1 id=A"}, got); diff != "" {
		t.Errorf("Matches (-want, +got):\n%s", diff)
	}

	got = nil
	_, err := docscan.ScanFile(filepath.Join(dir, "missing.json"), words("id"), collect(&got))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ScanFile(missing): got %v, want %v", err, fs.ErrNotExist)
	}
	if len(got) != 0 {
		t.Errorf("ScanFile(missing): unexpected matches %q", got)
	}
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		line, name string
		want       string
		ok         bool
	}{
		{`  "id": "X",`, "id", "X", true},
		{`"id":"a\"b"}`, "id", `a"b`, true},
		{`"n": -1.5e3,`, "n", "-1.5e3", true},
		{`"flag": False`, "flag", "false", true},
		{`"flag": TRUE}]`, "flag", "true", true},
		{`"id"   :   true}`, "id", "true", true},
		{`"x": "id", "id": 7`, "id", "7", true},
		{`"desc": "say \"id\": 1", "id": 2`, "id", "2", true},
		{`"id": null,`, "id", "", false},
		{`"id": {`, "id", "", false},
		{`"id": [1, 2]`, "id", "", false},
		{`"id": what`, "id", "", false},
		{`"id":`, "id", "", false},
		{`no key here`, "id", "", false},
	}
	for _, test := range tests {
		got, ok := docscan.ExtractValue(test.line, test.name)
		if got != test.want || ok != test.ok {
			t.Errorf("ExtractValue(%#q, %q): got (%q, %v), want (%q, %v)",
				test.line, test.name, got, ok, test.want, test.ok)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		tok  jlink.Token
		text string
		want string
		ok   bool
	}{
		{jlink.True, "true", "true", true},
		{jlink.False, "FALSE", "false", true},
		{jlink.Number, "3,14", "3.14", true},
		{jlink.Number, "3.14", "3.14", true},
		{jlink.Integer, "-12", "-12", true},
		{jlink.String, `"a\tb"`, "a\tb", true},
		{jlink.Null, "null", "", false},
		{jlink.LBrace, "{", "", false},
	}
	for _, test := range tests {
		got, ok := docscan.Normalize(test.tok, []byte(test.text))
		if got != test.want || ok != test.ok {
			t.Errorf("Normalize(%v, %#q): got (%q, %v), want (%q, %v)",
				test.tok, test.text, got, ok, test.want, test.ok)
		}
		if !ok || test.tok == jlink.String {
			continue
		}
		// Normalizing a normalized literal changes nothing.
		if again, _ := docscan.NormalizeLiteral(got); again != got {
			t.Errorf("NormalizeLiteral(%q): got %q, want unchanged", got, again)
		}
	}
}

func TestNormalizeLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"True", "true", true},
		{" false ", "false", true},
		{"15", "15", true},
		{"2,5", "2.5", true},
		{"1e9", "1e9", true},
		{"null", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"yes", "", false},
	}
	for _, test := range tests {
		got, ok := docscan.NormalizeLiteral(test.raw)
		if got != test.want || ok != test.ok {
			t.Errorf("NormalizeLiteral(%q): got (%q, %v), want (%q, %v)", test.raw, got, ok, test.want, test.ok)
		}
	}
}

func TestTracker(t *testing.T) {
	tr := docscan.NewTracker(words("a.b"))
	steps := []struct {
		tok  jlink.Token
		text string
	}{
		{jlink.LBrace, "{"}, {jlink.String, `"a"`}, {jlink.Colon, ":"},
		{jlink.LSquare, "["}, {jlink.LBrace, "{"}, {jlink.String, `"b"`},
		{jlink.Colon, ":"},
	}
	for _, s := range steps {
		if ms := tr.Advance(s.tok, []byte(s.text), 0); len(ms) != 0 {
			t.Fatalf("Advance(%v): unexpected matches %v", s.tok, ms)
		}
	}
	want := jlink.Scope{jlink.Anonymous, jlink.Named("a"), jlink.Anonymous}
	if diff := cmp.Diff(want, tr.Scope()); diff != "" {
		t.Errorf("Scope (-want, +got):\n%s", diff)
	}
	ms := tr.Advance(jlink.Integer, []byte("7"), 4)
	if len(ms) != 1 || ms[0].Value != "7" || ms[0].Line != 4 {
		t.Errorf("Advance(7): got %+v, want one match of 7 at line 4", ms)
	}
}
