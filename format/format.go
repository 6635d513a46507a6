// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package format validates JSON text and renders it in beautified or minified
// form.
//
// Format is the entry point:
//
//	res, err := format.Format(input, format.Beautify)
//	if err != nil {
//	   // err has concrete type *format.ParseError
//	} else if res.Empty() {
//	   // no content: input was empty or all whitespace
//	} else {
//	   fmt.Println(res.Text)
//	}
//
// Empty input is not an error. It is reported by a Result whose Empty method
// returns true, so callers can clear their output without showing an error.
package format

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/creachadair/jsonfix"
	"github.com/creachadair/jsonfix/value"
)

// Mode selects how a value is rendered.
type Mode int

const (
	Beautify Mode = iota // indented, one member or element per line
	Minify               // no insignificant whitespace
)

func (m Mode) String() string {
	switch m {
	case Beautify:
		return "beautify"
	case Minify:
		return "minify"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode with the given name, "beautify" or "minify".
// Names are not case sensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beautify":
		return Beautify, nil
	case "minify":
		return Minify, nil
	default:
		return 0, fmt.Errorf("unknown format mode %q", s)
	}
}

// Result is the outcome of a successful call to Format.
type Result struct {
	Value value.Value // the parsed value; nil if the input was empty
	Text  string      // the rendered value; "" if the input was empty
	Mode  Mode        // the mode used to render Text
}

// Empty reports whether r represents empty input, with no content.
func (r Result) Empty() bool { return r.Value == nil }

// Format parses text as a strict JSON document and renders the resulting
// value in the given mode. Leading and trailing whitespace is ignored.
//
// If text is empty or all whitespace, Format returns an empty Result and a
// nil error. If text is not valid JSON, Format returns a *ParseError.
func Format(text string, mode Mode) (Result, error) {
	v, err := parse(text)
	if err != nil {
		return Result{}, err
	} else if v == nil {
		return Result{Mode: mode}, nil
	}
	return Result{Value: v, Text: Render(v, mode), Mode: mode}, nil
}

// Check reports whether text is a single valid JSON document. It returns nil
// if so, ErrNoContent if text is empty or all whitespace, or a *ParseError.
// Unlike Format, Check does not render the value.
func Check(text string) error {
	v, err := parse(text)
	if err != nil {
		return err
	} else if v == nil {
		return ErrNoContent
	}
	return nil
}

// parse parses text, ignoring surrounding whitespace. It returns nil, nil if
// text has no content.
func parse(text string) (value.Value, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	v, err := value.Parse(trimmed)
	if err != nil {
		lead := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
		return nil, newParseError(text, lead, err)
	}
	return v, nil
}

// ErrNoContent is reported by Check for empty input.
var ErrNoContent = errors.New("no content")

// Render renders v in the given mode.
func Render(v value.Value, mode Mode) string {
	var sb strings.Builder
	Write(&sb, v, mode) // a strings.Builder never reports an error
	return sb.String()
}

// Write renders v in the given mode to w.
func Write(w io.Writer, v value.Value, mode Mode) error {
	f := newFormatter(w, mode)
	f.formatValue(v, "")
	return f.err
}

// A ParseError reports a failure to parse text as strict JSON.
type ParseError struct {
	Message string    // a human-readable description of the problem
	Pos     *Position // the location of the problem, or nil if unknown

	err error
}

// Position is the location of a parse error in the original input text.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // byte offset in line, 0-based
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	if e.Pos == nil {
		return e.Message
	}
	return fmt.Sprintf("at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap supports error wrapping. The underlying error is usually a
// *jsonfix.SyntaxError.
func (e *ParseError) Unwrap() error { return e.err }

// newParseError converts err, reported while parsing text starting at byte
// offset lead, into a *ParseError located in text.
func newParseError(text string, lead int, err error) *ParseError {
	var serr *jsonfix.SyntaxError
	if !errors.As(err, &serr) {
		return &ParseError{Message: err.Error(), err: err}
	}
	return &ParseError{
		Message: serr.Message,
		Pos:     position(text, lead+serr.Offset),
		err:     err,
	}
}

// position computes the line and column of the given byte offset in text.
func position(text string, offset int) *Position {
	offset = min(offset, len(text))
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := offset - (strings.LastIndexByte(prefix, '\n') + 1)
	return &Position{Offset: offset, Line: line, Column: col}
}
