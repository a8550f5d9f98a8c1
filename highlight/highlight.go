// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package highlight underlines linked property names in the visible part of
// a document.
//
// Only the lines in view are examined, so the cost of an update depends on
// the height of the view rather than the size of the document. Updates are
// deferred: events mark the highlighter dirty, and the owner applies pending
// updates by calling Tick periodically.
package highlight

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/creachadair/jlink"
	"github.com/creachadair/jlink/editor"
	"github.com/creachadair/jlink/mapping"
	"github.com/creachadair/jlink/resolve"
	"github.com/go-logr/logr"
)

// IndicatorID is the editor indicator used for underlines.
const IndicatorID = 32

// Gateway is the part of an editor a Highlighter uses.
type Gateway interface {
	editor.Text
	editor.View
	editor.Indicators
	CurrentPath() string
}

// A Highlighter maintains underlines for one settings snapshot.
//
// MarkUpdated and MarkViewChanged may be called from any goroutine. The
// other methods must be called from the goroutine that owns the editor.
type Highlighter struct {
	g        Gateway
	settings *mapping.Settings
	log      logr.Logger

	dirty  atomic.Bool // some trigger has fired since the last Tick
	edited atomic.Bool // the text has changed since the last Tick

	disabled bool
	valid    bool // the fields below describe the last update
	path     string
	start    int // first document line in view
	end      int // position of the end of the last line in view
	words    []*jlink.Word
}

// New constructs a highlighter over g. If highlighting is disabled in
// settings, the highlighter hides its indicator and does nothing else.
func New(g Gateway, settings *mapping.Settings, log logr.Logger) *Highlighter {
	h := &Highlighter{g: g, settings: settings, log: log}
	if !settings.Highlighting {
		h.disabled = true
		g.SetIndicatorStyle(IndicatorID, editor.StyleHidden)
		log.Info("highlighting is disabled by settings")
		return h
	}
	g.SetIndicatorStyle(IndicatorID, editor.StyleUnderline)
	h.dirty.Store(true)
	return h
}

// MarkUpdated reports that the text of the active document has changed.
func (h *Highlighter) MarkUpdated() {
	h.edited.Store(true)
	h.dirty.Store(true)
}

// MarkViewChanged reports that the active document or the view may have
// changed.
func (h *Highlighter) MarkViewChanged() { h.dirty.Store(true) }

// Tick applies pending updates, and reports whether the underlines were
// redrawn. They are redrawn if the active document or the lines in view
// have changed, or the text was edited, since the last redraw.
func (h *Highlighter) Tick() bool {
	if h.disabled || !h.dirty.Swap(false) {
		return false
	}
	edited := h.edited.Swap(false)
	if !h.update() && !edited {
		return false
	}
	h.redraw()
	return true
}

// Close removes the underlines and hides the indicator. The highlighter
// does nothing after it is closed.
func (h *Highlighter) Close() {
	if h.disabled {
		return
	}
	h.disabled = true
	h.g.ClearIndicator(IndicatorID, 0, h.g.TextLength())
	h.g.SetIndicatorStyle(IndicatorID, editor.StyleHidden)
}

// update records the current document and view, and reports whether either
// differs from the last update.
func (h *Highlighter) update() bool {
	g := h.g
	path := g.CurrentPath()
	first := g.FirstVisibleLine()
	start := g.DocLineFromVisible(first)
	end := g.LineEndPosition(g.DocLineFromVisible(first + g.LinesOnScreen()))

	changed := !h.valid || path != h.path
	if changed {
		h.words = h.settings.SourceWords(path)
		h.log.V(1).Info("highlight context", "path", path, "words", len(h.words))
	}
	changed = changed || start != h.start || end != h.end
	h.valid, h.path, h.start, h.end = true, path, start, end
	return changed
}

// redraw clears all underlines in the document, then underlines matching
// property names in the lines in view.
func (h *Highlighter) redraw() {
	g := h.g
	g.ClearIndicator(IndicatorID, 0, g.TextLength())
	if len(h.words) == 0 {
		return
	}

	r := resolve.NewResolver(g)
	total := g.LineCount()
	line := h.start - 1
	for n := g.LinesOnScreen(); n > 0; n-- {
		line++
		if line >= total {
			break
		}
		if !g.LineVisible(line) {
			// Skip to the next line shown after a fold.
			line = g.DocLineFromVisible(g.VisibleFromDocLine(line))
		}
		for _, w := range QuotedWords(g.LineText(line)) {
			if h.wanted(r, line, w) {
				g.ApplyIndicator(IndicatorID, g.LineToPosition(line)+w.Start, w.End-w.Start)
			}
		}
	}
}

// wanted reports whether the quoted word is the name of a property that
// matches one of the expected words. Values are never underlined.
func (h *Highlighter) wanted(r *resolve.Resolver, line int, w Word) bool {
	ctx := r.At(line, w.Start)
	if ctx.SelectedProperty() == nil || ctx.IsValue() || ctx.Name() != w.Text {
		return false
	}
	for _, src := range h.words {
		if ctx.MatchesWith(src, false) {
			return true
		}
	}
	return false
}

// A Word is a run of word characters enclosed in quotes on a line.
type Word struct {
	Text       string
	Start, End int // byte offsets of the text, excluding quotes
}

// QuotedWords returns the quoted strings in line that consist entirely of
// word characters (see editor.IsWordRune). A backslash escapes the character
// that follows it, and a quoted string containing any other character is
// ignored.
func QuotedWords(line string) []Word {
	var out []Word
	var esc bool
	open, start := false, 0
	for i := 0; i < len(line); {
		ch, n := utf8.DecodeRuneInString(line[i:])
		switch {
		case ch == '"' && !esc:
			if open && start >= 0 && i > start {
				out = append(out, Word{Text: line[start:i], Start: start, End: i})
				open = false
			} else if open {
				open = false
			} else {
				open, start = true, i+1
			}
		case open && start >= 0 && !editor.IsWordRune(ch):
			start = -1 // not a word; wait for the closing quote
		}
		esc = !esc && ch == '\\'
		i += n
	}
	return out
}
