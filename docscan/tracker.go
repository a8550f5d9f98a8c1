// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package docscan

import "github.com/creachadair/jlink"

// A Tracker follows the structure of a token stream and reports the values
// of expected words as they are seen. A Tracker is good for one document.
type Tracker struct {
	words []*jlink.Word

	scope   jlink.Scope // enclosing containers, outermost first
	objects []bool      // parallel to scope: true for objects, false for arrays
	wantKey bool        // the next string is a member key

	pending    string // the most recent unconsumed member key
	hasPending bool
}

// NewTracker returns a Tracker for the given expected words.
func NewTracker(words []*jlink.Word) *Tracker { return &Tracker{words: words} }

// Scope returns the current enclosing containers. The result is only valid
// until the next call to Advance.
func (t *Tracker) Scope() jlink.Scope { return t.scope }

// Advance updates the tracker with the next token, whose raw text is text
// and which begins on the given 0-based line. It returns the matches
// completed by the token, if any.
func (t *Tracker) Advance(tok jlink.Token, text []byte, line int) []Match {
	switch tok {
	case jlink.LBrace, jlink.LSquare:
		f := jlink.Anonymous
		if t.hasPending {
			f = jlink.Named(t.pending)
		}
		t.scope = append(t.scope, f)
		t.objects = append(t.objects, tok == jlink.LBrace)
		t.wantKey = tok == jlink.LBrace
		t.clearPending()
		return nil

	case jlink.RBrace, jlink.RSquare:
		if n := len(t.scope); n > 0 {
			t.scope = t.scope[:n-1]
			t.objects = t.objects[:n-1]
		}
		t.wantKey = false
		t.clearPending()
		return nil

	case jlink.Comma:
		t.wantKey = t.inObject()
		return nil

	case jlink.String:
		// A string in an object that is not the value of a pending key is
		// taken as a key, even if the comma before it is missing.
		if t.wantKey || (t.inObject() && !t.hasPending) {
			t.wantKey = false
			t.pending, t.hasPending = unquote(text), true
			return nil
		}
	}

	if !tok.IsScalar() || !t.hasPending {
		return nil // not a member value
	}
	name := t.pending
	t.clearPending()

	value, ok := Normalize(tok, text)
	if !ok {
		return nil
	}
	var out []Match
	for _, w := range t.words {
		if w.Matches(name, t.scope) {
			out = append(out, Match{Word: w, Line: line, Value: value})
		}
	}
	return out
}

func (t *Tracker) inObject() bool {
	n := len(t.objects)
	return n > 0 && t.objects[n-1]
}

func (t *Tracker) clearPending() { t.pending, t.hasPending = "", false }

func unquote(text []byte) string {
	s, err := jlink.Unquote(string(text))
	if err != nil {
		return string(text)
	}
	return s
}
