// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package session

import "fmt"

// An Event is a notification from the host editor.
type Event interface{ event() }

// BufferActivated reports that a different document became active, or the
// active document was reloaded.
type BufferActivated struct{}

// FileBeforeLoad reports that a file is about to be loaded. Modifications
// are not tracked until the load finishes.
type FileBeforeLoad struct{}

// FileOpened reports that a file finished loading.
type FileOpened struct{}

// FileLoadFailed reports that a file could not be loaded.
type FileLoadFailed struct{}

// SavePointReached reports that the active document was saved.
type SavePointReached struct{}

// ModKind is the kind of a modification.
type ModKind int

// Constants defining the valid ModKind values.
const (
	Insert ModKind = iota
	Delete
)

func (k ModKind) String() string {
	if k == Delete {
		return "delete"
	}
	return "insert"
}

// Modified reports that text was inserted into or deleted from the active
// document.
type Modified struct {
	Kind  ModKind
	Line  int    // the line where the change began
	Lines int    // the number of lines added or removed
	Text  string // the inserted text, for Insert
}

// UpdateUI reports that the view may have changed, for example by
// scrolling.
type UpdateUI struct{}

// Button identifies a mouse button.
type Button int

// Constants defining the valid Button values.
const (
	LeftButton Button = iota
	RightButton
	MiddleButton
)

// MouseUp reports the release of a mouse button. Ctrl reports whether the
// control key was held.
type MouseUp struct {
	Button Button
	Ctrl   bool
}

// KeyDown reports a key press.
type KeyDown struct{ Code int }

// placeCaret is posted when a deferred caret placement is due.
type placeCaret struct {
	seq  uint64
	line int
}

// call runs a function on the owning goroutine.
type call struct {
	f    func()
	done chan struct{}
}

func (BufferActivated) event()  {}
func (FileBeforeLoad) event()   {}
func (FileOpened) event()       {}
func (FileLoadFailed) event()   {}
func (SavePointReached) event() {}
func (Modified) event()         {}
func (UpdateUI) event()         {}
func (MouseUp) event()          {}
func (KeyDown) event()          {}
func (placeCaret) event()       {}
func (call) event()             {}

func (m Modified) String() string {
	return fmt.Sprintf("%v at line %d (%d lines)", m.Kind, m.Line+1, m.Lines)
}
