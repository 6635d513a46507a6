// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package highlight_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/creachadair/jsonfix"
	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/highlight"
	"github.com/creachadair/jsonfix/samples"
	"github.com/fatih/color"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func strip(s string) string { return ansi.ReplaceAllString(s, "") }

func TestStripsToInput(t *testing.T) {
	p := highlight.DefaultPalette().Enable()
	for i, doc := range samples.All() {
		pretty, err := format.Format(doc, format.Beautify)
		if err != nil {
			t.Fatalf("Format sample %d: %v", i, err)
		}
		got, err := p.Highlight(pretty.Text)
		if err != nil {
			t.Fatalf("Highlight sample %d: %v", i, err)
		}
		if got == pretty.Text {
			t.Errorf("Highlight sample %d: no colors were applied", i)
		}
		if s := strip(got); s != pretty.Text {
			t.Errorf("Highlight sample %d: stripped output differs:\n%s", i, s)
		}
	}
}

func TestKinds(t *testing.T) {
	// Give each kind a distinct, forced color, and check which literals
	// receive which color.
	mk := func(a color.Attribute) *color.Color { c := color.New(a); c.EnableColor(); return c }
	p := highlight.Palette{
		Key:    mk(color.FgBlue),
		String: mk(color.FgGreen),
		Number: mk(color.FgCyan),
		Bool:   mk(color.FgYellow),
		Null:   mk(color.FgMagenta),
	}
	const input = `{"k": ["v", 1.5, true, null, {"n": false}]}`
	got, err := p.Highlight(input)
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if strip(got) != input {
		t.Errorf("Stripped output: got %#q, want %#q", strip(got), input)
	}
	for _, tc := range []struct {
		c   *color.Color
		lit string
	}{
		{p.Key, `"k"`}, {p.Key, `"n"`},
		{p.String, `"v"`},
		{p.Number, `1.5`},
		{p.Bool, `true`}, {p.Bool, `false`},
		{p.Null, `null`},
	} {
		if want := tc.c.Sprint(tc.lit); !strings.Contains(got, want) {
			t.Errorf("Output does not contain %q:\n%q", want, got)
		}
	}
	// Punctuation has no color in this palette, so it is copied plainly.
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "]}") {
		t.Errorf("Punctuation was decorated: %q", got)
	}
}

func TestPlain(t *testing.T) {
	const input = "{\n  \"a\": [1, 2]\n}"
	var zero highlight.Palette
	got, err := zero.Highlight(input)
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if got != input {
		t.Errorf("Zero palette: got %q, want %q", got, input)
	}

	off, err := highlight.DefaultPalette().Disable().Highlight(input)
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if off != input {
		t.Errorf("Disabled palette: got %q, want %q", off, input)
	}
}

func TestLexError(t *testing.T) {
	_, err := highlight.Highlight(`{"a": 'b'}`)
	var lerr *jsonfix.LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("Highlight: got %v, want *jsonfix.LexError", err)
	}
	if lerr.Offset != 6 {
		t.Errorf("Offset: got %d, want 6", lerr.Offset)
	}

	// Grammar errors are not lexical, so they are highlighted.
	if _, err := highlight.Highlight(`[1,,]`); err != nil {
		t.Errorf("Highlight: unexpected error: %v", err)
	}
}
