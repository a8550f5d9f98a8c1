// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jlink

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// RootName is the segment that denotes the document root in a dotted path.
const RootName = "$"

// Root is the sentinel at the top of every complex word chain. It has no
// parent, and it matches only when every named container enclosing a value
// has been accounted for.
var Root = &Word{name: RootName}

// A Word is one segment of a dotted property path. A chain of words linked by
// their parents spells out a path such as a.b.c, ending at Root.
//
// A Word is immutable once constructed, and a chain may be shared by any
// number of readers.
type Word struct {
	name   string
	parent *Word
}

// NewWord returns a word with the given name and parent.  A nil parent makes
// a simple word, which matches a property of that name at any depth.
func NewWord(name string, parent *Word) *Word {
	return &Word{name: name, parent: parent}
}

// ParseWord parses a dotted path into a word chain.  A path with a single
// segment yields a simple word. A path with more than one segment yields a
// complex word whose outermost segment is a direct child of Root. A leading
// "$" segment is accepted and denotes Root explicitly, so "$.id" matches only
// a top-level property named id.
func ParseWord(path string) (*Word, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}
	segs := strings.Split(path, ".")
	if slices.Contains(segs, "") {
		return nil, fmt.Errorf("path %q has an empty segment", path)
	}
	if segs[0] == RootName {
		segs = segs[1:]
		if len(segs) == 0 {
			return nil, fmt.Errorf("path %q names no property", path)
		}
	} else if len(segs) == 1 {
		return NewWord(segs[0], nil), nil
	}
	w := Root
	for _, seg := range segs {
		w = NewWord(seg, w)
	}
	return w, nil
}

// MustParseWord is as ParseWord, but panics if path is invalid.
func MustParseWord(path string) *Word {
	w, err := ParseWord(path)
	if err != nil {
		panic(err)
	}
	return w
}

// Name returns the name of the final segment of w.
func (w *Word) Name() string { return w.name }

// Parent returns the enclosing segment of w, or nil for a simple word or Root.
func (w *Word) Parent() *Word { return w.parent }

// IsComplex reports whether w has ancestors that must be verified.
func (w *Word) IsComplex() bool { return w.parent != nil }

// Path returns the segments of w, outermost first, omitting Root.
func (w *Word) Path() []string {
	var out []string
	for p := w; p != nil && p != Root; p = p.parent {
		out = append(out, p.name)
	}
	slices.Reverse(out)
	return out
}

// String renders w in dotted form.
func (w *Word) String() string {
	if w == Root {
		return RootName
	}
	return strings.Join(w.Path(), ".")
}

// Equal reports whether w and v denote the same path. Equality compares the
// whole chain, not only the final segment.
func (w *Word) Equal(v *Word) bool {
	for w != nil && v != nil {
		if w == v {
			return true
		} else if (w == Root) != (v == Root) || w.name != v.name {
			return false
		}
		w, v = w.parent, v.parent
	}
	return w == v
}

// A Frame is one container on a Scope.  Named is false for containers that
// have no property name, such as the document itself or array elements.
type Frame struct {
	Name  string
	Named bool
}

// Named returns a frame for a container held by the named property.
func Named(name string) Frame { return Frame{Name: name, Named: true} }

// Anonymous is the frame for a container without a property name.
var Anonymous Frame

// A Scope records the containers enclosing a location in a document,
// outermost first.
type Scope []Frame

// Names returns the names of the named frames of s, outermost first.
func (s Scope) Names() []string {
	var out []string
	for _, f := range s {
		if f.Named {
			out = append(out, f.Name)
		}
	}
	return out
}

// Word returns the word chain for a property called name inside s.  The
// result is a complex word whose ancestors are the named frames of s.
func (s Scope) Word(name string) *Word {
	w := Root
	for _, f := range s {
		if f.Named {
			w = NewWord(f.Name, w)
		}
	}
	return NewWord(name, w)
}

// Matches reports whether a property called name, enclosed by scope, is an
// occurrence of w.
//
// A simple word matches on name alone. For a complex word the names are
// compared from the inside out: each ancestor of w must equal the next named
// frame of scope, skipping anonymous frames, and the chain must reach Root
// exactly when the named frames run out.
func (w *Word) Matches(name string, scope Scope) bool {
	if w.name != name {
		return false
	}
	if !w.IsComplex() {
		return true
	}
	p := w.parent
	for i := len(scope) - 1; i >= 0; i-- {
		f := scope[i]
		if !f.Named {
			continue
		}
		if p == Root || p.name != f.Name {
			return false
		}
		p = p.parent
	}
	return p == Root
}
