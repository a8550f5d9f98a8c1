// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package resolve answers the question "which property is this?" for a
// position in a JSON document. It is the inverse of the matching done by
// package docscan: instead of testing a structural context against a known
// path, it reconstructs the context at a location so that it can be compared
// with jlink.Word.Matches.
//
// Resolution looks backward from the position for the name of the property,
// and tracks bracket balance from the top of the document to find the
// containers enclosing it. It does not require the document to be
// well-formed. A Resolver remembers the containers open at each line, so
// resolving many positions costs one pass over the text above them.
package resolve

import (
	"slices"

	"github.com/creachadair/jlink"
	"github.com/creachadair/jlink/docscan"
)

// Text is the read access a Resolver needs to a document.
type Text interface {
	// LineCount reports the number of lines in the document.
	LineCount() int

	// LineText returns the text of the given 0-based line, without its
	// line terminator.
	LineText(line int) string
}

// A Resolver resolves positions in a single snapshot of a document.  Each
// line is lexed at most once, so a Resolver should not outlive the text it
// was created for: after an edit, make a new one.
type Resolver struct {
	text   Text
	lines  map[int][]lexeme
	scopes map[int]jlink.Scope // containers open at the start of each line
}

// NewResolver constructs a resolver over text.
func NewResolver(text Text) *Resolver {
	return &Resolver{
		text:   text,
		lines:  make(map[int][]lexeme),
		scopes: make(map[int]jlink.Scope),
	}
}

// At is shorthand for NewResolver(text).At(line, col).
func At(text Text, line, col int) *Context { return NewResolver(text).At(line, col) }

// At resolves the token containing byte offset col of the given 0-based line.
// The result is never nil; if the position does not fall in a property name
// or a property value, the context reports no selected property.
func (r *Resolver) At(line, col int) *Context {
	if line < 0 || line >= r.text.LineCount() {
		return &Context{line: line}
	}
	lex := r.lex(line)
	for i, l := range lex {
		if col < l.start || col >= l.end {
			continue
		}
		return r.resolve(pos{line, i})
	}
	return &Context{line: line}
}

func (r *Resolver) resolve(p pos) *Context {
	tok := r.at(p)
	ctx := &Context{line: p.line, tok: tok}
	if tok.kind != jlink.String && !tok.kind.IsScalar() {
		return ctx
	}

	// A string followed by a colon is the name of a property.
	if tok.kind == jlink.String {
		if q, ok := r.next(p); ok && r.at(q).kind == jlink.Colon {
			ctx.found = true
			ctx.name = tok.value()
			ctx.scope = r.scopeOf(p)
			return ctx
		}
	}

	// Otherwise it is a value, either of a property or of an array that is
	// itself the value of a property.
	key, ok := r.keyBefore(p)
	if !ok {
		key, ok = r.arrayKey(p)
	}
	if !ok {
		return ctx
	}
	ctx.found = true
	ctx.isValue = true
	ctx.name = r.at(key).value()
	ctx.scope = r.scopeOf(key)
	return ctx
}

// keyBefore reports the position of the property name governing the token at
// p, when p is the value of an object member.
func (r *Resolver) keyBefore(p pos) (pos, bool) {
	colon, ok := r.prev(p)
	if !ok || r.at(colon).kind != jlink.Colon {
		return pos{}, false
	}
	key, ok := r.prev(colon)
	if !ok || r.at(key).kind != jlink.String {
		return pos{}, false
	}
	return key, true
}

// arrayKey reports the position of the property name governing the array
// that contains the element at p.
func (r *Resolver) arrayKey(p pos) (pos, bool) {
	if q, ok := r.prev(p); !ok {
		return pos{}, false
	} else if k := r.at(q).kind; k != jlink.Comma && k != jlink.LSquare {
		return pos{}, false
	}
	depth := 0
	for q, ok := r.prev(p); ok; q, ok = r.prev(q) {
		switch r.at(q).kind {
		case jlink.RBrace, jlink.RSquare:
			depth++
		case jlink.LBrace:
			if depth == 0 {
				return pos{}, false
			}
			depth--
		case jlink.LSquare:
			if depth == 0 {
				return r.keyBefore(q)
			}
			depth--
		case jlink.Colon:
			if depth == 0 {
				return pos{}, false
			}
		}
	}
	return pos{}, false
}

// scopeOf returns the containers enclosing the token at p, outermost first.
// Unmatched closing brackets are tolerated.
func (r *Resolver) scopeOf(p pos) jlink.Scope {
	return slices.Clip(r.advance(r.lineScope(p.line), p.line, p.idx))
}

// lineScope returns the containers open at the start of line. Scopes are
// remembered per line, so the text above a line is walked at most once.
func (r *Resolver) lineScope(line int) jlink.Scope {
	if s, ok := r.scopes[line]; ok || line == 0 {
		return s
	}
	start := line - 1
	for start > 0 {
		if _, ok := r.scopes[start]; ok {
			break
		}
		start--
	}
	s := r.scopes[start]
	for l := start; l < line; l++ {
		s = r.advance(s, l, len(r.lex(l)))
		r.scopes[l+1] = s
	}
	return s
}

// advance applies the first n lexemes of line to the scope s. The result
// shares no storage that a later append could overwrite.
func (r *Resolver) advance(s jlink.Scope, line, n int) jlink.Scope {
	for i, l := range r.lex(line)[:n] {
		switch l.kind {
		case jlink.LBrace, jlink.LSquare:
			f := jlink.Anonymous
			if key, ok := r.keyBefore(pos{line, i}); ok {
				f = jlink.Named(r.at(key).value())
			}
			s = append(s[:len(s):len(s)], f)
		case jlink.RBrace, jlink.RSquare:
			if len(s) > 0 {
				s = s[:len(s)-1]
			}
		}
	}
	return s
}

// A pos is the location of a lexeme: its line, and its index on that line.
type pos struct{ line, idx int }

func (r *Resolver) lex(line int) []lexeme {
	if lex, ok := r.lines[line]; ok {
		return lex
	}
	lex := lexLine(r.text.LineText(line))
	r.lines[line] = lex
	return lex
}

func (r *Resolver) at(p pos) lexeme { return r.lex(p.line)[p.idx] }

// prev returns the position of the lexeme before p, crossing line
// boundaries as needed. It reports false at the start of the document.
func (r *Resolver) prev(p pos) (pos, bool) {
	if p.idx > 0 {
		return pos{p.line, p.idx - 1}, true
	}
	for line := p.line - 1; line >= 0; line-- {
		if n := len(r.lex(line)); n > 0 {
			return pos{line, n - 1}, true
		}
	}
	return pos{}, false
}

// next returns the position of the lexeme after p, crossing line boundaries
// as needed. It reports false at the end of the document.
func (r *Resolver) next(p pos) (pos, bool) {
	if p.idx+1 < len(r.lex(p.line)) {
		return pos{p.line, p.idx + 1}, true
	}
	for line, n := p.line+1, r.text.LineCount(); line < n; line++ {
		if len(r.lex(line)) > 0 {
			return pos{line, 0}, true
		}
	}
	return pos{}, false
}

// A Context is the result of resolving a position.
type Context struct {
	line    int
	tok     lexeme
	found   bool
	isValue bool
	name    string
	scope   jlink.Scope
}

// SelectedProperty returns the word naming the property the resolved token
// belongs to, as a complex word whose ancestors are the named containers
// enclosing it. It returns nil if the position is not inside a property name
// or value.
func (c *Context) SelectedProperty() *jlink.Word {
	if !c.found {
		return nil
	}
	return c.scope.Word(c.name)
}

// Name returns the name of the selected property, or "".
func (c *Context) Name() string { return c.name }

// Scope returns the containers enclosing the selected property.
func (c *Context) Scope() jlink.Scope { return c.scope }

// IsValue reports whether the resolved token is a property value rather than
// a property name.
func (c *Context) IsValue() bool { return c.found && c.isValue }

// Line reports the 0-based line of the resolved position.
func (c *Context) Line() int { return c.line }

// Span reports the byte offsets of the resolved token on its line.  Both are
// zero if no token was found at the position.
func (c *Context) Span() (start, end int) { return c.tok.start, c.tok.end }

// Selected returns the text of the resolved token, with quotes removed from
// a string.
func (c *Context) Selected() string { return c.tok.value() }

// SelectedValue returns the normalized value of the resolved token, in the
// same form docscan reports values. It reports false if the token is not a
// property value, or is null.
func (c *Context) SelectedValue() (string, bool) {
	if !c.IsValue() {
		return "", false
	}
	if c.tok.kind == jlink.String {
		return c.tok.value(), true
	}
	return docscan.Normalize(c.tok.kind, []byte(c.tok.text))
}

// MatchesWith reports whether the selected property is an occurrence of w.
// If valueOnly is true, the resolved token must also be a property value.
func (c *Context) MatchesWith(w *jlink.Word, valueOnly bool) bool {
	if !c.found || (valueOnly && !c.isValue) {
		return false
	}
	return w.Matches(c.name, c.scope)
}
