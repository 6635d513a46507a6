// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package session implements the format cycle for a single editable input.
//
// A Session accepts successive versions of an input text, and formats the most
// recent one after a short quiet period, so that a burst of edits produces one
// result rather than many. Results are delivered to a callback:
//
//	s := session.New(func(r session.Result) {
//	   if r.Err != nil {
//	      showError(r.Err)
//	   } else {
//	      show(r.Text)
//	   }
//	})
//	defer s.Close()
//	s.Update(text) // formatted after the delay, unless superseded
//
// The session remembers the last valid value it formatted, so a change of
// mode can re-render it without parsing the input again.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/value"
)

// DefaultDelay is the default quiet period before an update is formatted.
const DefaultDelay = 300 * time.Millisecond

// ErrClosed is reported by operations on a closed session.
var ErrClosed = errors.New("session is closed")

// Result is the outcome of one format cycle.
type Result struct {
	Seq   uint64      // the sequence number of the update formatted
	Mode  format.Mode // the mode used to render Text
	Value value.Value // the parsed value, nil if empty or invalid
	Text  string      // the rendering of Value, "" if empty or invalid
	Err   error       // a *format.ParseError if the input was invalid
}

// Empty reports whether r represents an empty input.
func (r Result) Empty() bool { return r.Value == nil && r.Err == nil }

// An Option configures a Session.
type Option func(*Session)

// WithDelay sets the quiet period before an update is formatted. A delay of
// zero or less formats each update as soon as possible.
func WithDelay(d time.Duration) Option { return func(s *Session) { s.delay = d } }

// WithMode sets the initial rendering mode (default format.Beautify).
func WithMode(m format.Mode) Option { return func(s *Session) { s.mode = m } }

// WithLogger sets the logger used for debug tracing (default slog.Default()).
func WithLogger(lg *slog.Logger) Option { return func(s *Session) { s.log = lg } }

// A Session serializes format cycles for one input. Its methods are safe for
// concurrent use. Results are delivered one at a time, in the order they
// are produced.
//
// The delivery callback must not call Flush or SetMode on its own session;
// it may call Update.
type Session struct {
	deliver func(Result)
	delay   time.Duration
	log     *slog.Logger

	run sync.Mutex // held while a cycle is formatting and delivering

	mu      sync.Mutex
	mode    format.Mode
	seq     uint64 // sequence number of the latest update
	pending string
	dirty   bool        // pending has not been formatted
	timer   *time.Timer // timer for the latest update, or nil
	last    value.Value // the last valid value formatted
	closed  bool
}

// New constructs a new Session that delivers results to deliver, which must
// be non-nil.
func New(deliver func(Result), opts ...Option) *Session {
	if deliver == nil {
		panic("session: nil delivery function")
	}
	s := &Session{
		deliver: deliver,
		delay:   DefaultDelay,
		log:     slog.Default(),
		mode:    format.Beautify,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update records text as the current input, and schedules it to be formatted
// after the quiet period. An update supersedes any earlier update that has not
// yet been formatted. Update returns the sequence number of the update, or
// reports ErrClosed.
func (s *Session) Update(text string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.timer != nil && s.timer.Stop() && s.dirty {
		s.log.Debug("superseded pending update", "seq", s.seq)
	}
	s.seq++
	s.pending = text
	s.dirty = true

	seq := s.seq
	s.timer = time.AfterFunc(max(s.delay, 0), func() { s.cycle(seq) })
	return seq, nil
}

// Flush formats the current input immediately, without waiting for the quiet
// period, and delivers the result. It reports false if there was no pending
// update to format.
func (s *Session) Flush() (Result, bool) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	seq := s.seq
	s.mu.Unlock()
	return s.cycle(seq)
}

// SetMode changes the rendering mode. If the session has a valid value, it is
// rendered in the new mode and the result is delivered; SetMode returns that
// result and true. Otherwise it returns false, and the new mode applies to the
// next update.
func (s *Session) SetMode(m format.Mode) (Result, bool) {
	s.run.Lock()
	defer s.run.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Result{}, false
	}
	s.mode = m
	last, seq := s.last, s.seq
	s.mu.Unlock()

	if last == nil {
		return Result{}, false
	}
	res := Result{Seq: seq, Mode: m, Value: last, Text: format.Render(last, m)}
	s.log.Debug("re-rendered last value", "mode", m)
	s.deliver(res)
	return res, true
}

// Mode reports the current rendering mode.
func (s *Session) Mode() format.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Last returns the last valid value formatted, or nil if the most recent
// input formatted was empty or invalid.
func (s *Session) Last() value.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close cancels any pending update. After Close, Update reports ErrClosed
// and no further results are delivered.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.closed = true
	s.dirty = false
	return nil
}

// cycle formats the pending input, if it is still the update with the given
// sequence number, and delivers the result.
func (s *Session) cycle(seq uint64) (Result, bool) {
	s.run.Lock()
	defer s.run.Unlock()

	s.mu.Lock()
	if s.closed || seq != s.seq || !s.dirty {
		s.mu.Unlock()
		return Result{}, false
	}
	text, mode := s.pending, s.mode
	s.dirty = false
	s.mu.Unlock()

	res := Result{Seq: seq, Mode: mode}
	fr, err := format.Format(text, mode)
	if err != nil {
		res.Err = err
	} else {
		res.Value, res.Text = fr.Value, fr.Text
	}

	s.mu.Lock()
	if s.closed || seq != s.seq {
		// A newer update arrived while this one was formatting.
		s.mu.Unlock()
		s.log.Debug("discarded stale result", "seq", seq)
		return Result{}, false
	}
	s.last = res.Value
	s.mu.Unlock()

	s.log.Debug("formatted update", "seq", seq, "mode", mode, "valid", err == nil, "bytes", len(res.Text))
	s.deliver(res)
	return res, true
}
