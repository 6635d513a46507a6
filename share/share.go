// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package share encodes JSON documents into shareable links and decodes them.
//
// A link carries the minified document in the "json" query parameter of a
// base URL, escaped the way JavaScript's encodeURIComponent escapes it:
//
//	https://example.com/fmt?json=%7B%22a%22%3A1%7D
//
// Links longer than a practical limit (DefaultMaxLength characters by default)
// are rejected, since browsers and servers commonly truncate long URLs.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/creachadair/jsonfix/format"
)

// Param is the name of the query parameter that carries the document.
const Param = "json"

// DefaultMaxLength is the default limit on the length of an encoded link.
const DefaultMaxLength = 2000

var (
	// ErrNoContent is reported for an empty document.
	ErrNoContent = errors.New("no JSON to share")

	// ErrInvalid is reported for a document that is not valid JSON. The
	// error also wraps the *format.ParseError describing the problem.
	ErrInvalid = errors.New("invalid JSON, fix errors before sharing")

	// ErrTooLarge is reported when the encoded link exceeds the length limit.
	ErrTooLarge = errors.New("JSON too large to share via URL")

	// ErrNoParam is reported by Decode for a link without a document.
	ErrNoParam = errors.New("link has no json parameter")
)

// An Encoder constructs share links. The zero value is ready for use, and
// produces relative links ("?json=...") with the default length limit.
type Encoder struct {
	// BaseURL is the prefix of each link, to which the query is appended.
	BaseURL string

	// MaxLength is the maximum length of a link in bytes. If zero,
	// DefaultMaxLength is used. If negative, there is no limit.
	MaxLength int
}

func (e Encoder) maxLength() int {
	if e.MaxLength == 0 {
		return DefaultMaxLength
	}
	return e.MaxLength
}

// Encode validates text as JSON and returns a link carrying its minified form.
func (e Encoder) Encode(text string) (string, error) {
	res, err := format.Format(text, format.Minify)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	} else if res.Empty() {
		return "", ErrNoContent
	}
	link := e.BaseURL + "?" + Param + "=" + EscapeComponent(res.Text)
	if limit := e.maxLength(); limit > 0 && len(link) > limit {
		return "", fmt.Errorf("%w (%d > %d characters)", ErrTooLarge, len(link), limit)
	}
	return link, nil
}

// Encode is shorthand for an Encoder with the given base URL and the default
// length limit.
func Encode(text, baseURL string) (string, error) {
	return Encoder{BaseURL: baseURL}.Encode(text)
}

// Decode extracts and unescapes the document carried by link. The result is
// not validated. Decode reports ErrNoParam if link has no json parameter, and
// ErrNoContent if the parameter is empty.
func Decode(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("invalid link: %w", err)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", fmt.Errorf("invalid link query: %w", err)
	}
	if !q.Has(Param) {
		return "", ErrNoParam
	}
	text := q.Get(Param)
	if strings.TrimSpace(text) == "" {
		return "", ErrNoContent
	}
	return text, nil
}

// EscapeComponent escapes s as JavaScript's encodeURIComponent does: each
// byte of the UTF-8 encoding is percent-encoded, except for ASCII letters,
// digits, and the marks - _ . ! ~ * ' ( ).
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hex[c>>4])
			sb.WriteByte(hex[c&15])
		}
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
