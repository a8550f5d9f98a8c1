// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package mapping defines the settings that link properties of one set of
// JSON files to definitions in another, and loads them from a file.
package mapping

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/creachadair/jlink"
	"github.com/tidwall/match"
)

// An Endpoint names a property in a set of files.
//
// File is a wildcard pattern in which "*" matches any run of characters and
// "?" matches one character. A pattern without a path separator is matched
// against the base name of a file; any other pattern is matched against the
// whole path, after a relative pattern is joined to the default directory of
// the settings. An empty File matches every file.
type Endpoint struct {
	File string `yaml:"file" toml:"file"`
	Path string `yaml:"path" toml:"path"`

	word *jlink.Word
	dir  string
}

// NewEndpoint constructs an endpoint for the given file pattern and dotted
// property path. Relative patterns are resolved against dir.
func NewEndpoint(file, path, dir string) (Endpoint, error) {
	e := Endpoint{File: file, Path: path}
	if err := e.compile(dir); err != nil {
		return Endpoint{}, err
	}
	return e, nil
}

func (e *Endpoint) compile(dir string) error {
	w, err := jlink.ParseWord(e.Path)
	if err != nil {
		return fmt.Errorf("path: %w", err)
	}
	e.word = w
	e.dir = dir
	return nil
}

// Word returns the property path of e.
func (e Endpoint) Word() *jlink.Word { return e.word }

func (e Endpoint) String() string { return e.File + "#" + e.Path }

// pattern returns the file pattern of e with a relative path resolved
// against the default directory.
func (e Endpoint) pattern() string {
	p := filepath.FromSlash(e.File)
	if e.dir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(e.dir, p)
	}
	return p
}

// MatchesPath reports whether the file at path is one of the files of e.
func (e Endpoint) MatchesPath(path string) bool {
	if e.File == "" {
		return true
	}
	if !strings.ContainsAny(e.File, `/\`) {
		return match.Match(filepath.Base(path), e.File)
	}
	return match.Match(filepath.ToSlash(filepath.Clean(path)), filepath.ToSlash(e.pattern()))
}

// Files returns the paths of the files of e. A pattern without wildcards
// names a single file, which is returned whether or not it exists.
func (e Endpoint) Files() ([]string, error) {
	if e.File == "" {
		return nil, nil
	}
	p := e.pattern()
	if !strings.ContainsAny(p, "*?[") {
		return []string{p}, nil
	}
	paths, err := filepath.Glob(p)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", e.File, err)
	}
	return paths, nil
}

// An Item links a source property to its definition. A value of the source
// property refers to the destination property with an equal value.
type Item struct {
	Src Endpoint `yaml:"src" toml:"src"`
	Dst Endpoint `yaml:"dst" toml:"dst"`
}

func (it Item) String() string { return it.Src.String() + " -> " + it.Dst.String() }

func (it *Item) compile(dir string) error {
	if it.Src.Path == "" {
		return fmt.Errorf("src: missing path")
	}
	if it.Dst.Path == "" {
		return fmt.Errorf("dst: missing path")
	}
	if it.Dst.File == "" {
		return fmt.Errorf("dst: missing file")
	}
	if err := it.Src.compile(dir); err != nil {
		return fmt.Errorf("src: %w", err)
	}
	if err := it.Dst.compile(dir); err != nil {
		return fmt.Errorf("dst: %w", err)
	}
	return nil
}
