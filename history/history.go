// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package history implements a navigation history of jump locations, with
// backward and forward replay.
//
// The history behaves like an undo stack with a cursor. Jumps recorded while
// the cursor is at the end extend the history; a jump recorded after moving
// backward discards the forward branch that was abandoned.
package history

import (
	"fmt"
	"slices"
)

// A JumpLocation identifies a navigation target.
type JumpLocation struct {
	FilePath string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"` // 0-based
}

func (j JumpLocation) String() string { return fmt.Sprintf("%s:%d", j.FilePath, j.Line+1) }

// An Action is the kind of movement that led to a new location.
type Action int

// Constants defining the valid Action values.
const (
	GoForward    Action = iota // replay of a later entry
	GoBackward                 // replay of an earlier entry
	MouseClick                 // an explicit jump
	KeyboardDown               // cursor movement that is not a jump
)

var actionStr = [...]string{
	GoForward:    "GoForward",
	GoBackward:   "GoBackward",
	MouseClick:   "MouseClick",
	KeyboardDown: "KeyboardDown",
}

func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionStr) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionStr[a]
}

// A Navigator records jump locations and replays them. Its state is the list
// of recorded locations, a position in that list, and the most recent
// location, which is not yet part of the list.
//
// A Navigator is not safe for concurrent use.
type Navigator struct {
	jump    func(JumpLocation)
	history []JumpLocation
	pos     int
	prev    JumpLocation
	enabled bool
}

// New constructs an empty Navigator that calls jump to move to a location
// during Backward and Forward. The navigator records nothing until Enable is
// called.
func New(jump func(JumpLocation)) *Navigator { return &Navigator{jump: jump} }

// Enable sets the current location of n. Updates before the first call to
// Enable are ignored.
func (n *Navigator) Enable(current JumpLocation) {
	n.prev = current
	n.enabled = true
}

// Enabled reports whether Enable has been called.
func (n *Navigator) Enabled() bool { return n.enabled }

// Update records a move to loc by the given action. A move to the line of
// the current location is not a navigation, and has no effect.
func (n *Navigator) Update(loc JumpLocation, action Action) {
	if !n.enabled || loc.Line == n.prev.Line {
		return
	}
	size := len(n.history)
	switch action {
	case GoForward:
		if n.pos == size {
			return
		}
		n.pos++
		n.prev = loc

	case GoBackward:
		if n.pos == 0 {
			return
		}
		if n.pos == size {
			// Commit the current location so it can be reached going forward.
			n.history = append(n.history, n.prev)
		}
		n.pos--
		n.prev = loc

	case MouseClick:
		if n.pos == size {
			n.history = append(n.history, n.prev)
			n.pos++
			n.prev = loc
			return
		}
		n.pos++
		n.prev = loc
		if n.pos < size {
			n.history = n.history[:n.pos]
		}

	case KeyboardDown:
		n.prev = loc
	}
}

// Backward moves to the location before the current position, if there is
// one, and reports whether it did.
func (n *Navigator) Backward() bool {
	if n.pos <= 0 || n.pos > len(n.history) {
		return false
	}
	loc := n.history[n.pos-1]
	n.jump(loc)
	n.Update(loc, GoBackward)
	return true
}

// Forward moves to the location after the current position, if there is
// one, and reports whether it did.
func (n *Navigator) Forward() bool {
	if n.pos+1 >= len(n.history) {
		return false
	}
	loc := n.history[n.pos+1]
	n.jump(loc)
	n.Update(loc, GoForward)
	return true
}

// History returns a copy of the recorded locations.
func (n *Navigator) History() []JumpLocation { return slices.Clone(n.history) }

// Position reports the current position in the history.
func (n *Navigator) Position() int { return n.pos }

// Current returns the most recent location.
func (n *Navigator) Current() JumpLocation { return n.prev }
