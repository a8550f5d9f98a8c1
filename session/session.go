// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package session connects the link engine to a host editor.
//
// A Session owns every interaction with the editor. Its Run method is the
// single loop that handles events and applies pending highlight updates;
// other goroutines communicate with it by posting events.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creachadair/jlink/editor"
	"github.com/creachadair/jlink/engine"
	"github.com/creachadair/jlink/highlight"
	"github.com/creachadair/jlink/history"
	"github.com/creachadair/jlink/mapping"
	"github.com/creachadair/jlink/resolve"
	"github.com/go-logr/logr"
)

// ErrClosed is reported by Post and Call after the session is closed.
var ErrClosed = errors.New("session closed")

// A Session handles editor events for one settings snapshot at a time.
type Session struct {
	g   editor.Gateway
	log logr.Logger

	settings *mapping.Settings
	engine   *engine.Engine
	hl       *highlight.Highlighter
	nav      *history.Navigator

	loading bool
	pending *time.Timer // deferred caret placement
	seq     uint64      // identifies the latest placement

	events chan Event
	quit   chan struct{}
	closed bool
}

// New constructs a session over g with the given settings. The current
// location of g is the starting point of the navigation history.
func New(g editor.Gateway, settings *mapping.Settings, log logr.Logger) *Session {
	s := &Session{
		g:      g,
		log:    log,
		events: make(chan Event, 16),
		quit:   make(chan struct{}),
	}
	s.nav = history.New(func(loc history.JumpLocation) { s.JumpTo(loc) })
	s.install(settings)
	s.nav.Enable(editor.CurrentLocation(g))
	return s
}

func (s *Session) install(settings *mapping.Settings) {
	s.settings = settings
	s.engine = engine.New(settings, s.log.WithName("engine"))
	s.engine.SwitchContext(s.g.CurrentPath())
	s.hl = highlight.New(s.g, settings, s.log.WithName("highlight"))
}

// Reload replaces the settings of s. The navigation history is kept.
func (s *Session) Reload(settings *mapping.Settings) {
	s.hl.Close()
	s.install(settings)
	s.log.Info("settings reloaded", "mappingDefaultFilePath", settings.MappingDefaultFilePath,
		"items", len(settings.Mapping))
}

// Settings returns the current settings snapshot.
func (s *Session) Settings() *mapping.Settings { return s.settings }

// Navigator returns the navigation history of s.
func (s *Session) Navigator() *history.Navigator { return s.nav }

// Engine returns the definition engine of s.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Highlighter returns the highlighter of s.
func (s *Session) Highlighter() *highlight.Highlighter { return s.hl }

// Post delivers ev to the loop run by Run. It blocks until the event is
// accepted, ctx ends, or the session is closed.
func (s *Session) Post(ctx context.Context, ev Event) error {
	select {
	case <-s.quit:
		return ErrClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return ErrClosed
	}
}

// Call runs f on the goroutine running the loop, and waits for it to
// finish.
func (s *Session) Call(ctx context.Context, f func()) error {
	c := call{f: f, done: make(chan struct{})}
	if err := s.Post(ctx, c); err != nil {
		return err
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return ErrClosed
	}
}

// Run handles posted events and applies pending highlight updates at the
// refresh interval of the settings, until ctx ends or the session is closed.
func (s *Session) Run(ctx context.Context) error {
	interval := s.settings.RefreshInterval
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.quit:
			return ErrClosed
		case ev := <-s.events:
			s.Handle(ev)
		case <-tick.C:
			s.hl.Tick()
		}
		if d := s.settings.RefreshInterval; d != interval {
			interval = d
			tick.Reset(d)
		}
	}
}

// Close stops the loop, cancels any pending caret placement, and removes
// highlights. It must not be called while Run is handling an event.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.quit)
	if s.pending != nil {
		s.pending.Stop()
	}
	s.hl.Close()
}

// Handle reacts to a single event. It must be called on the goroutine that
// owns the editor. A failure while handling an event is logged and does not
// affect later events.
func (s *Session) Handle(ev Event) {
	defer func() {
		if x := recover(); x != nil {
			s.log.Error(fmt.Errorf("panic: %v", x), "handle event", "event", fmt.Sprintf("%T", ev))
		}
	}()

	switch e := ev.(type) {
	case BufferActivated:
		s.engine.SwitchContext(s.g.CurrentPath())
		s.hl.MarkViewChanged()
		s.log.Info("buffer activated", "path", s.g.CurrentPath())

	case FileBeforeLoad:
		s.loading = true

	case FileOpened, FileLoadFailed:
		s.loading = false

	case SavePointReached:
		s.engine.FireSaveFile(s.g.CurrentPath())
		s.log.V(1).Info("save point reached", "path", s.g.CurrentPath())

	case Modified:
		s.modified(e)

	case UpdateUI:
		s.hl.MarkViewChanged()

	case MouseUp:
		s.mouseUp(e)

	case KeyDown:
		s.nav.Update(editor.CurrentLocation(s.g), history.KeyboardDown)

	case placeCaret:
		if e.seq == s.seq {
			s.pending = nil
			s.g.JumpToLine(e.line)
		}

	case call:
		defer close(e.done)
		e.f()

	default:
		s.log.V(1).Info("ignored event", "event", fmt.Sprintf("%T", ev))
	}
}

func (s *Session) modified(m Modified) {
	s.hl.MarkUpdated()
	if s.loading || !s.settings.Cache {
		return
	}
	path := s.g.CurrentPath()
	switch m.Kind {
	case Insert:
		s.engine.FireInsertText(path, m.Line, m.Lines, m.Text)
	case Delete:
		s.engine.FireDeleteText(path, m.Line, m.Lines)
	}
	s.log.V(1).Info("modified", "path", path, "change", m.String())
}

func (s *Session) mouseUp(m MouseUp) {
	switch m.Button {
	case LeftButton:
		if m.Ctrl && s.GoToDefinition() {
			return
		}
	case RightButton:
	default:
		return
	}
	s.nav.Update(editor.CurrentLocation(s.g), history.MouseClick)
}

// GoToDefinition jumps to the definition of the value under the caret, and
// reports whether it did. If there is no definition, the editor takes focus
// and, if enabled, beeps.
func (s *Session) GoToDefinition() bool {
	if s.g.CurrentWord() != "" {
		loc, ok, err := s.engine.FindDefinition(s.contextAtCaret())
		if err != nil {
			s.log.Error(err, "find definition")
		}
		if ok {
			s.JumpTo(loc)
			s.nav.Update(loc, history.MouseClick)
			return true
		}
	}
	s.g.GrabFocus()
	if s.settings.Sound {
		s.g.Beep()
	}
	return false
}

// contextAtCaret resolves the token under the caret. A caret just past the
// end of a token selects that token.
func (s *Session) contextAtCaret() *resolve.Context {
	line := s.g.CurrentLine()
	col := s.g.CurrentPos() - s.g.LineToPosition(line)
	r := resolve.NewResolver(s.g)
	ctx := r.At(line, col)
	if ctx.SelectedProperty() == nil && col > 0 {
		ctx = r.At(line, col-1)
	}
	return ctx
}

// JumpTo opens the file of loc and moves the caret to its line after the
// jump delay of the settings. A later jump supersedes a placement that has
// not yet happened.
func (s *Session) JumpTo(loc history.JumpLocation) error {
	s.log.Info("opening file", "path", loc.FilePath)
	prev := s.g.CurrentPath()
	if err := s.g.OpenFile(loc.FilePath); err != nil {
		s.log.Error(err, "open file", "path", loc.FilePath)
		return err
	}
	if s.g.CurrentPath() != prev {
		s.engine.SwitchContext(s.g.CurrentPath())
		s.hl.MarkViewChanged()
	}

	s.seq++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	delay := s.settings.JumpToLineDelay
	if delay <= 0 {
		s.g.JumpToLine(loc.Line)
		return nil
	}
	ev := placeCaret{seq: s.seq, line: loc.Line}
	s.pending = time.AfterFunc(delay, func() {
		s.Post(context.Background(), ev)
	})
	return nil
}

// NavigateBackward jumps to the previous location in the history, if any.
func (s *Session) NavigateBackward() bool { return s.nav.Backward() }

// NavigateForward jumps to the next location in the history, if any.
func (s *Session) NavigateForward() bool { return s.nav.Forward() }
