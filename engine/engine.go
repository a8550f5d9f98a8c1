// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package engine finds the definitions of linked property values.
//
// An Engine holds one settings snapshot. It selects the mapping items that
// apply to the active file, scans destination files for definitions, and
// optionally remembers what it found, adjusting its memory as the active file
// is edited.
package engine

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creachadair/jlink"
	"github.com/creachadair/jlink/docscan"
	"github.com/creachadair/jlink/history"
	"github.com/creachadair/jlink/mapping"
	"github.com/creachadair/jlink/resolve"
	"github.com/creachadair/mds/mapset"
	"github.com/go-logr/logr"
)

// An Engine looks up definitions for one settings snapshot.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	log      logr.Logger
	settings *mapping.Settings
	dst      []*jlink.Word      // destination words, without duplicates
	names    mapset.Set[string] // quoted names of dst

	path  string
	items []mapping.Item

	cache map[string]*entry
}

// An entry is the remembered scan of one destination file.
type entry struct {
	matches []docscan.Match
}

// New constructs an engine for the given settings. Log may be the zero
// logr.Logger.
func New(settings *mapping.Settings, log logr.Logger) *Engine {
	e := &Engine{
		log:      log,
		settings: settings,
		names:    mapset.New[string](),
		cache:    make(map[string]*entry),
	}
	for _, it := range settings.Mapping {
		w := it.Dst.Word()
		e.dst = appendWord(e.dst, w)
		e.names.Add(`"` + w.Name() + `"`)
	}
	return e
}

// appendWord appends w to ws unless ws already holds an equal word.  Words
// are compared by chain, since "id" and "$.id" render alike.
func appendWord(ws []*jlink.Word, w *jlink.Word) []*jlink.Word {
	if slices.ContainsFunc(ws, w.Equal) {
		return ws
	}
	return append(ws, w)
}

// Settings returns the settings snapshot of e.
func (e *Engine) Settings() *mapping.Settings { return e.settings }

// SwitchContext makes path the active file, and selects the mapping items
// whose source files include it.
func (e *Engine) SwitchContext(path string) {
	e.path = path
	e.items = e.settings.ItemsFor(path)
	e.log.V(1).Info("switch context", "path", path, "items", len(e.items))
}

// CurrentPath returns the active file.
func (e *Engine) CurrentPath() string { return e.path }

// ExpectedWords returns the source words of the items that apply to the
// active file, without duplicates.
func (e *Engine) ExpectedWords() []*jlink.Word {
	var out []*jlink.Word
	for _, it := range e.items {
		out = appendWord(out, it.Src.Word())
	}
	return out
}

// FindDefinition returns the location of the definition of the value
// selected in ctx. The selected token must be a property value matching the
// source of an item that applies to the active file. The destination files of
// each such item are searched in order, and the first line whose value for
// the destination word equals the selected value is reported.
//
// Files that cannot be read are skipped. If no definition is found, the
// first such error is returned.
func (e *Engine) FindDefinition(ctx *resolve.Context) (history.JumpLocation, bool, error) {
	value, ok := ctx.SelectedValue()
	if !ok {
		return history.JumpLocation{}, false, nil
	}
	var firstErr error
	for _, it := range e.items {
		if !ctx.MatchesWith(it.Src.Word(), true) {
			continue
		}
		files, err := it.Dst.Files()
		if err != nil {
			e.log.Error(err, "expand destination", "item", it.String())
			firstErr = cmp.Or(firstErr, err)
			continue
		}
		for _, file := range files {
			ms, err := e.scan(file)
			if err != nil {
				e.log.Error(err, "scan destination", "file", file)
				firstErr = cmp.Or(firstErr, err)
				continue
			}
			for _, m := range ms {
				if m.Value == value && m.Word.Equal(it.Dst.Word()) {
					loc := history.JumpLocation{FilePath: file, Line: m.Line}
					e.log.V(1).Info("definition found", "value", value, "location", loc.String())
					return loc, true, nil
				}
			}
		}
	}
	return history.JumpLocation{}, false, firstErr
}

// scan returns the matches of every destination word in the file at path,
// from the cache if possible.
func (e *Engine) scan(path string) ([]docscan.Match, error) {
	key := filepath.Clean(path)
	if ent, ok := e.cache[key]; ok {
		return ent.matches, nil
	}
	var ent entry
	mode, err := docscan.ScanFile(path, e.dst, func(m docscan.Match) {
		ent.matches = append(ent.matches, m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", path, err)
	}
	e.log.V(1).Info("scanned", "file", path, "mode", mode.String(), "matches", len(ent.matches))
	if e.settings.Cache {
		e.cache[key] = &ent
	}
	return ent.matches, nil
}

// Cached reports whether scan results for path are remembered.
func (e *Engine) Cached(path string) bool {
	_, ok := e.cache[filepath.Clean(path)]
	return ok
}

// FireSaveFile reports that the file at path was saved, and forgets any
// scan results for it.
func (e *Engine) FireSaveFile(path string) {
	e.invalidate(path, "saved")
}

// FireInsertText reports that text was inserted on the given line of the
// file at path, adding linesAdded lines. Remembered definitions after that
// line are moved down. If text contains the quoted name of a destination
// word, the scan results for the file are forgotten instead.
func (e *Engine) FireInsertText(path string, line, linesAdded int, text string) {
	ent, ok := e.cache[filepath.Clean(path)]
	if !ok {
		return
	}
	for name := range e.names {
		if strings.Contains(text, name) {
			e.invalidate(path, "definition inserted")
			return
		}
	}
	if linesAdded == 0 {
		return
	}
	for i := range ent.matches {
		if ent.matches[i].Line > line {
			ent.matches[i].Line += linesAdded
		}
	}
}

// FireDeleteText reports that text was deleted starting on the given line
// of the file at path, removing linesRemoved lines. Remembered definitions
// on the removed lines are dropped, and those after them are moved up.
func (e *Engine) FireDeleteText(path string, line, linesRemoved int) {
	ent, ok := e.cache[filepath.Clean(path)]
	if !ok || linesRemoved <= 0 {
		return
	}
	last := line + linesRemoved
	ent.matches = slices.DeleteFunc(ent.matches, func(m docscan.Match) bool {
		return m.Line > line && m.Line <= last
	})
	for i := range ent.matches {
		if ent.matches[i].Line > last {
			ent.matches[i].Line -= linesRemoved
		}
	}
}

func (e *Engine) invalidate(path, why string) {
	key := filepath.Clean(path)
	if _, ok := e.cache[key]; ok {
		delete(e.cache, key)
		e.log.V(1).Info("cache invalidated", "file", path, "reason", why)
	}
}
