// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package highlight applies terminal colors to JSON text.
//
// Highlighting is lexical: each token of the input is colored according to its
// kind, and the text between tokens is copied unchanged. Removing the color
// escapes from the output always yields the input.
package highlight

import (
	"errors"
	"io"
	"strings"

	"github.com/creachadair/jsonfix"
	"github.com/fatih/color"
)

// A Palette assigns colors to the kinds of JSON token. A nil color leaves
// tokens of that kind unadorned, so the zero Palette produces plain text.
type Palette struct {
	Key    *color.Color // object member names
	String *color.Color // string values
	Number *color.Color
	Bool   *color.Color // true and false
	Null   *color.Color
	Punct  *color.Color // braces, brackets, commas, and colons
}

// DefaultPalette returns a palette suitable for dark and light terminals.
// Whether the colors are emitted is governed by the color package, which
// disables them when the output is not a terminal.
func DefaultPalette() Palette {
	return Palette{
		Key:    color.New(color.FgBlue, color.Bold),
		String: color.New(color.FgGreen),
		Number: color.New(color.FgCyan),
		Bool:   color.New(color.FgYellow),
		Null:   color.New(color.FgMagenta, color.Bold),
		Punct:  color.New(color.Bold),
	}
}

// Enable forces the colors of p on, regardless of the output device.
// It returns p to permit chaining.
func (p Palette) Enable() Palette {
	for _, c := range p.colors() {
		if c != nil {
			c.EnableColor()
		}
	}
	return p
}

// Disable forces the colors of p off. It returns p to permit chaining.
func (p Palette) Disable() Palette {
	for _, c := range p.colors() {
		if c != nil {
			c.DisableColor()
		}
	}
	return p
}

func (p Palette) colors() []*color.Color {
	return []*color.Color{p.Key, p.String, p.Number, p.Bool, p.Null, p.Punct}
}

func (p Palette) colorOf(tok jsonfix.Token, isKey bool) *color.Color {
	switch tok {
	case jsonfix.String:
		if isKey {
			return p.Key
		}
		return p.String
	case jsonfix.Integer, jsonfix.Number:
		return p.Number
	case jsonfix.True, jsonfix.False:
		return p.Bool
	case jsonfix.Null:
		return p.Null
	default:
		return p.Punct
	}
}

type token struct {
	tok  jsonfix.Token
	span jsonfix.Span
}

// Highlight returns text with the colors of p applied. The text need not be a
// valid JSON document, but it must consist of valid JSON tokens; otherwise
// Highlight reports the lexical error.
func (p Palette) Highlight(text string) (string, error) {
	var sb strings.Builder
	if err := p.Write(&sb, text); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes text to w with the colors of p applied.
func (p Palette) Write(w io.Writer, text string) error {
	toks, err := scan(text)
	if err != nil {
		return err
	}
	var last int
	for i, t := range toks {
		// A string is a key if the next token is a colon.
		isKey := t.tok == jsonfix.String && i+1 < len(toks) && toks[i+1].tok == jsonfix.Colon

		lit := text[t.span.Pos:t.span.End]
		if c := p.colorOf(t.tok, isKey); c != nil {
			lit = c.Sprint(lit)
		}
		if _, err := io.WriteString(w, text[last:t.span.Pos]+lit); err != nil {
			return err
		}
		last = t.span.End
	}
	_, err = io.WriteString(w, text[last:])
	return err
}

// Highlight is shorthand for DefaultPalette().Highlight(text).
func Highlight(text string) (string, error) { return DefaultPalette().Highlight(text) }

func scan(text string) ([]token, error) {
	var toks []token
	s := jsonfix.NewScanner(text)
	for {
		err := s.Next()
		if errors.Is(err, io.EOF) {
			return toks, nil
		} else if err != nil {
			return nil, err
		}
		toks = append(toks, token{tok: s.Token(), span: s.Span()})
	}
}
