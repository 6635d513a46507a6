// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonfix

import (
	"errors"

	"github.com/creachadair/jsonfix/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string, with enclosing double quotation marks.
func Quote(src string) string {
	return string(escape.AppendQuoted(make([]byte, 0, len(src)+2), mem.S(src)))
}

// Unquote decodes a JSON string, such as the text of a String token. The
// enclosing quotation marks are removed, and escape sequences are replaced
// by the characters they denote.
//
// Unknown escapes and unpaired surrogates are replaced by U+FFFD. Unquote
// reports an error for an incomplete escape sequence, or if src is not
// enclosed in double quotation marks.
func Unquote(src string) (string, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return "", errors.New("missing quotations")
	}
	body := mem.S(src[1 : len(src)-1])
	dec, err := escape.AppendUnquoted(make([]byte, 0, body.Len()), body)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
