// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package share_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/samples"
	"github.com/creachadair/jsonfix/share"
	"github.com/creachadair/jsonfix/value"
)

const base = "https://example.com/fmt"

func TestEncode(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`{"a": 1}`, base + `?json=%7B%22a%22%3A1%7D`},
		{" [ true , null ] \n", base + `?json=%5Btrue%2Cnull%5D`},
		{`"it's (ok)!*~"`, base + `?json=%22it's%20(ok)!*~%22`},
		{`"a+b=c&d/e?f#g"`, base + `?json=%22a%2Bb%3Dc%26d%2Fe%3Ff%23g%22`},
		{`"café"`, base + `?json=%22caf%C3%A9%22`},
	}
	for _, tc := range tests {
		got, err := share.Encode(tc.input, base)
		if err != nil {
			t.Errorf("Encode(%#q): unexpected error: %v", tc.input, err)
		} else if got != tc.want {
			t.Errorf("Encode(%#q):\ngot  %s\nwant %s", tc.input, got, tc.want)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := share.Encode("  ", base); !errors.Is(err, share.ErrNoContent) {
		t.Errorf("Encode(empty): got %v, want %v", err, share.ErrNoContent)
	}

	_, err := share.Encode(`{"a":1,}`, base)
	if !errors.Is(err, share.ErrInvalid) {
		t.Errorf("Encode(invalid): got %v, want %v", err, share.ErrInvalid)
	}
	var perr *format.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Encode(invalid): error %v does not wrap a *format.ParseError", err)
	}

	big := `"` + strings.Repeat("x", share.DefaultMaxLength) + `"`
	if _, err := share.Encode(big, base); !errors.Is(err, share.ErrTooLarge) {
		t.Errorf("Encode(big): got %v, want %v", err, share.ErrTooLarge)
	}
	if _, err := (share.Encoder{BaseURL: base, MaxLength: -1}).Encode(big); err != nil {
		t.Errorf("Encode(big) without limit: unexpected error: %v", err)
	}
	if _, err := (share.Encoder{BaseURL: base, MaxLength: 10}).Encode(`[1]`); !errors.Is(err, share.ErrTooLarge) {
		t.Errorf("Encode with small limit: got %v, want %v", err, share.ErrTooLarge)
	}
}

func TestLimitBoundary(t *testing.T) {
	// A link of exactly the limit is accepted; one byte more is not.
	prefix := base + "?json=" + "%22"
	n := share.DefaultMaxLength - len(prefix) - len("%22")
	exact := `"` + strings.Repeat("x", n) + `"`
	if link, err := share.Encode(exact, base); err != nil {
		t.Errorf("Encode(%d bytes): unexpected error: %v", len(exact), err)
	} else if len(link) != share.DefaultMaxLength {
		t.Errorf("Encode: link length %d, want %d", len(link), share.DefaultMaxLength)
	}
	over := `"` + strings.Repeat("x", n+1) + `"`
	if _, err := share.Encode(over, base); !errors.Is(err, share.ErrTooLarge) {
		t.Errorf("Encode(%d bytes): got %v, want %v", len(over), err, share.ErrTooLarge)
	}
}

func TestRoundTrip(t *testing.T) {
	for i, doc := range samples.All() {
		link, err := share.Encoder{BaseURL: base, MaxLength: -1}.Encode(doc)
		if err != nil {
			t.Fatalf("Encode sample %d: %v", i, err)
		}
		got, err := share.Decode(link)
		if err != nil {
			t.Fatalf("Decode sample %d: %v", i, err)
		}
		want, err := format.Format(doc, format.Minify)
		if err != nil {
			t.Fatalf("Format sample %d: %v", i, err)
		}
		if got != want.Text {
			t.Errorf("Sample %d: decoded %#q, want %#q", i, got, want.Text)
		}
		v, err := value.Parse(got)
		if err != nil {
			t.Fatalf("Parse decoded sample %d: %v", i, err)
		}
		if !value.Equal(v, want.Value) {
			t.Errorf("Sample %d: decoded value differs from the original", i)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		link string
		want string
		err  error
	}{
		{base + "?json=%5B1%2C2%5D", "[1,2]", nil},
		{"?json=%7B%7D", "{}", nil},
		{base + "?x=1&json=%22a%20b%22", `"a b"`, nil},
		{base, "", share.ErrNoParam},
		{base + "?other=1", "", share.ErrNoParam},
		{base + "?json=", "", share.ErrNoContent},
	}
	for _, tc := range tests {
		got, err := share.Decode(tc.link)
		if !errors.Is(err, tc.err) {
			t.Errorf("Decode(%q): got error %v, want %v", tc.link, err, tc.err)
		}
		if got != tc.want {
			t.Errorf("Decode(%q): got %#q, want %#q", tc.link, got, tc.want)
		}
	}

	if _, err := share.Decode(base + "?json=%zz"); err == nil {
		t.Error("Decode(bad escape): got nil, want error")
	}
}

func TestEscapeComponent(t *testing.T) {
	// The escaped form must unescape with the standard query decoder.
	const input = "a b+c/d?e&f=g#h;i:j@k$l,m'n(o)p*q!r~s-t_u.vé\U0001F600"
	got := share.EscapeComponent(input)
	if strings.ContainsAny(got, " +/?&=#;:@$,") {
		t.Errorf("EscapeComponent: %q contains reserved characters", got)
	}
	dec, err := url.QueryUnescape(got)
	if err != nil {
		t.Fatalf("QueryUnescape: %v", err)
	}
	if dec != input {
		t.Errorf("EscapeComponent round trip: got %q, want %q", dec, input)
	}
}
