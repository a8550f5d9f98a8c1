// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultLinesOnScreen is the height of the view of a new Buffer.
const DefaultLinesOnScreen = 40

// A Range is a half-open span of positions [Start, End).
type Range struct {
	Start, End int
}

// A Buffer is an in-memory editor holding one active document. It
// implements Gateway. Carriage returns are removed from line terminators
// when text is loaded.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	path   string
	text   string
	starts []int // position of the first byte of each line

	caret  int
	first  int // first display line in view
	screen int
	hidden map[int]bool

	styles map[int]Style
	marks  map[int][]Range // sorted, disjoint, non-empty

	focused bool
	beeps   int
}

// NewBuffer returns a buffer whose active document has the given path and
// contents.
func NewBuffer(path string, data []byte) *Buffer {
	b := &Buffer{screen: DefaultLinesOnScreen}
	b.load(path, data)
	return b
}

// OpenBuffer returns a buffer whose active document is read from path.
func OpenBuffer(path string) (*Buffer, error) {
	b := &Buffer{screen: DefaultLinesOnScreen}
	if err := b.OpenFile(path); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Buffer) load(path string, data []byte) {
	b.path = path
	b.setText(strings.ReplaceAll(string(data), "\r\n", "\n"))
	b.caret = 0
	b.first = 0
	b.hidden = nil
	b.marks = nil
}

func (b *Buffer) setText(s string) {
	b.text = s
	b.starts = append(b.starts[:0], 0)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			b.starts = append(b.starts, i+1)
		}
	}
}

// Text returns the contents of the active document.
func (b *Buffer) Text() string { return b.text }

// LineCount implements part of Text.
func (b *Buffer) LineCount() int { return len(b.starts) }

// LineText implements part of Text. It returns "" for a line out of range.
func (b *Buffer) LineText(line int) string {
	if line < 0 || line >= len(b.starts) {
		return ""
	}
	return b.text[b.starts[line]:b.LineEndPosition(line)]
}

// TextLength implements part of Text.
func (b *Buffer) TextLength() int { return len(b.text) }

// LineToPosition implements part of Text. Lines out of range are clamped.
func (b *Buffer) LineToPosition(line int) int {
	return b.starts[b.clampLine(line)]
}

// PositionToLine implements part of Text. Positions out of range are
// clamped.
func (b *Buffer) PositionToLine(pos int) int {
	return sort.SearchInts(b.starts, b.clampPos(pos)+1) - 1
}

// LineEndPosition implements part of Text.
func (b *Buffer) LineEndPosition(line int) int {
	line = b.clampLine(line)
	if line+1 < len(b.starts) {
		return b.starts[line+1] - 1
	}
	return len(b.text)
}

func (b *Buffer) clampLine(line int) int { return max(0, min(line, len(b.starts)-1)) }
func (b *Buffer) clampPos(pos int) int   { return max(0, min(pos, len(b.text))) }

// Insert inserts s at pos, and reports the line of pos and the number of
// lines added.
func (b *Buffer) Insert(pos int, s string) (line, linesAdded int) {
	pos = b.clampPos(pos)
	line = b.PositionToLine(pos)
	b.setText(b.text[:pos] + s + b.text[pos:])
	if b.caret >= pos {
		b.caret += len(s)
	}
	return line, strings.Count(s, "\n")
}

// Delete removes n bytes starting at pos, and reports the line of pos and
// the number of lines removed.
func (b *Buffer) Delete(pos, n int) (line, linesRemoved int) {
	pos = b.clampPos(pos)
	end := b.clampPos(pos + n)
	line = b.PositionToLine(pos)
	linesRemoved = strings.Count(b.text[pos:end], "\n")
	b.setText(b.text[:pos] + b.text[end:])
	if b.caret >= end {
		b.caret -= end - pos
	} else if b.caret > pos {
		b.caret = pos
	}
	return line, linesRemoved
}

// FirstVisibleLine implements part of View.
func (b *Buffer) FirstVisibleLine() int { return b.first }

// LinesOnScreen implements part of View.
func (b *Buffer) LinesOnScreen() int { return b.screen }

// SetView sets the first display line and the height of the view.
func (b *Buffer) SetView(first, lines int) {
	b.first = max(0, first)
	b.screen = max(1, lines)
}

// Fold hides the lines after header through last, inclusive.
func (b *Buffer) Fold(header, last int) {
	if b.hidden == nil {
		b.hidden = make(map[int]bool)
	}
	for i := header + 1; i <= last && i < len(b.starts); i++ {
		b.hidden[i] = true
	}
}

// Unfold shows all lines.
func (b *Buffer) Unfold() { b.hidden = nil }

// LineVisible implements part of View.
func (b *Buffer) LineVisible(line int) bool { return !b.hidden[line] }

// DocLineFromVisible implements part of View. Display lines past the end of
// the document map to the last line.
func (b *Buffer) DocLineFromVisible(v int) int {
	for line := range b.starts {
		if b.hidden[line] {
			continue
		}
		if v <= 0 {
			return line
		}
		v--
	}
	return len(b.starts) - 1
}

// VisibleFromDocLine implements part of View.
func (b *Buffer) VisibleFromDocLine(line int) int {
	v := 0
	for i := 0; i < line && i < len(b.starts); i++ {
		if !b.hidden[i] {
			v++
		}
	}
	return v
}

// CurrentPath implements part of Cursor.
func (b *Buffer) CurrentPath() string { return b.path }

// CurrentPos implements part of Cursor.
func (b *Buffer) CurrentPos() int { return b.caret }

// CurrentLine implements part of Cursor.
func (b *Buffer) CurrentLine() int { return b.PositionToLine(b.caret) }

// SetCurrentPos moves the caret to pos without scrolling.
func (b *Buffer) SetCurrentPos(pos int) { b.caret = b.clampPos(pos) }

// CurrentWord implements part of Cursor.
func (b *Buffer) CurrentWord() string {
	lo, hi := b.caret, b.caret
	for lo > 0 {
		r, n := utf8.DecodeLastRuneInString(b.text[:lo])
		if !IsWordRune(r) {
			break
		}
		lo -= n
	}
	for hi < len(b.text) {
		r, n := utf8.DecodeRuneInString(b.text[hi:])
		if !IsWordRune(r) {
			break
		}
		hi += n
	}
	return b.text[lo:hi]
}

// SetIndicatorStyle implements part of Indicators.
func (b *Buffer) SetIndicatorStyle(id int, style Style) {
	if b.styles == nil {
		b.styles = make(map[int]Style)
	}
	b.styles[id] = style
}

// IndicatorStyle reports the style of indicator id.
func (b *Buffer) IndicatorStyle(id int) Style { return b.styles[id] }

// ApplyIndicator implements part of Indicators.
func (b *Buffer) ApplyIndicator(id, start, length int) {
	start, end := b.clampPos(start), b.clampPos(start+length)
	if start >= end {
		return
	}
	if b.marks == nil {
		b.marks = make(map[int][]Range)
	}
	var out []Range
	for _, r := range b.marks[id] {
		if r.End < start || r.Start > end {
			out = append(out, r)
			continue
		}
		start, end = min(start, r.Start), max(end, r.End)
	}
	out = append(out, Range{start, end})
	slices.SortFunc(out, func(a, b Range) int { return a.Start - b.Start })
	b.marks[id] = out
}

// ClearIndicator implements part of Indicators.
func (b *Buffer) ClearIndicator(id, start, length int) {
	end := start + length
	var out []Range
	for _, r := range b.marks[id] {
		if r.End <= start || r.Start >= end {
			out = append(out, r)
			continue
		}
		if r.Start < start {
			out = append(out, Range{r.Start, start})
		}
		if r.End > end {
			out = append(out, Range{end, r.End})
		}
	}
	if b.marks != nil {
		b.marks[id] = out
	}
}

// Indicated returns the ranges covered by indicator id, in order.
func (b *Buffer) Indicated(id int) []Range { return slices.Clone(b.marks[id]) }

// OpenFile implements part of Navigation. It replaces the active document
// with the contents of path, and resets the caret, view, folds, and
// indicator ranges. Opening the active document again does nothing.
func (b *Buffer) OpenFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	if abs == b.path {
		return nil
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	b.load(abs, data)
	return nil
}

// JumpToLine implements part of Navigation. If the line is not in view,
// the view scrolls so that it is the first line shown.
func (b *Buffer) JumpToLine(line int) {
	line = b.clampLine(line)
	b.caret = b.starts[line]
	if b.hidden[line] {
		b.Unfold()
	}
	if v := b.VisibleFromDocLine(line); v < b.first || v >= b.first+b.screen {
		b.first = v
	}
}

// GrabFocus implements part of Navigation.
func (b *Buffer) GrabFocus() { b.focused = true }

// Focused reports whether GrabFocus has been called.
func (b *Buffer) Focused() bool { return b.focused }

// Beep implements part of Navigation. The buffer counts beeps instead of
// making a sound.
func (b *Buffer) Beep() { b.beeps++ }

// Beeps reports the number of calls to Beep.
func (b *Buffer) Beeps() int { return b.beeps }

var _ Gateway = (*Buffer)(nil)
