// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package editor defines the capabilities the link engine needs from a host
// text editor, and provides Buffer, a headless implementation of them.
//
// Positions are byte offsets from the start of the document, in which every
// line terminator counts as a single byte. Lines are numbered from 0.
package editor

import (
	"unicode"

	"github.com/creachadair/jlink/history"
)

// Text is read access to the active document.
type Text interface {
	// LineCount reports the number of lines in the document.
	LineCount() int

	// LineText returns the text of line, without its terminator.
	LineText(line int) string

	// TextLength reports the length of the document in bytes.
	TextLength() int

	// LineToPosition returns the position of the first byte of line.
	LineToPosition(line int) int

	// PositionToLine returns the line containing pos.
	PositionToLine(pos int) int

	// LineEndPosition returns the position just past the last byte of line,
	// not counting its terminator.
	LineEndPosition(line int) int
}

// View is access to the part of the active document shown on screen.
// Display lines differ from document lines when some lines are folded.
type View interface {
	// FirstVisibleLine reports the display line at the top of the view.
	FirstVisibleLine() int

	// LinesOnScreen reports the number of display lines the view can show.
	LinesOnScreen() int

	// DocLineFromVisible returns the document line shown on display line v.
	DocLineFromVisible(v int) int

	// VisibleFromDocLine returns the display line of a document line. For a
	// hidden line, this is the display line of the next line shown.
	VisibleFromDocLine(line int) int

	// LineVisible reports whether line is shown, that is, not folded.
	LineVisible(line int) bool
}

// Cursor is access to the location of the caret.
type Cursor interface {
	// CurrentPath returns the full path of the active document.
	CurrentPath() string

	// CurrentPos returns the position of the caret.
	CurrentPos() int

	// CurrentLine returns the line of the caret.
	CurrentLine() int

	// CurrentWord returns the word under the caret, or "".
	CurrentWord() string
}

// Style is the visual style of an indicator.
type Style int

// Constants defining the valid Style values.
const (
	StyleHidden Style = iota
	StyleUnderline
)

func (s Style) String() string {
	if s == StyleUnderline {
		return "underline"
	}
	return "hidden"
}

// Indicators is control over indicator ranges, which decorate text without
// changing it.
type Indicators interface {
	// SetIndicatorStyle sets the style of indicator id.
	SetIndicatorStyle(id int, style Style)

	// ApplyIndicator adds indicator id to length bytes starting at start.
	ApplyIndicator(id, start, length int)

	// ClearIndicator removes indicator id from length bytes starting at start.
	ClearIndicator(id, start, length int)
}

// Navigation is control over which document is active and where its caret
// is.
type Navigation interface {
	// OpenFile makes the file at path the active document.
	OpenFile(path string) error

	// JumpToLine moves the caret to the start of line and scrolls it into
	// view.
	JumpToLine(line int)

	// GrabFocus gives keyboard focus to the editor.
	GrabFocus()

	// Beep plays an audible cue.
	Beep()
}

// Gateway is the full set of editor capabilities used by a session.
type Gateway interface {
	Text
	View
	Cursor
	Indicators
	Navigation
}

// CurrentLocation returns the location of the caret in g.
func CurrentLocation(g Cursor) history.JumpLocation {
	return history.JumpLocation{FilePath: g.CurrentPath(), Line: g.CurrentLine()}
}

// IsWordRune reports whether r may be part of a word: a letter, a digit, or
// an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
