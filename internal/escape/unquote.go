// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Single-character escapes and their decodings, in corresponding order.
const (
	escLetters = `"\/bfnrt`
	escValues  = "\"\\/\b\f\n\r\t"
)

// AppendUnquoted appends the decoding of the body of a JSON string to dst and
// returns the extended slice. The body excludes the enclosing quotation marks.
//
// A \u escape of a UTF-16 surrogate pair followed directly by its partner
// decodes as a single rune. An unpaired surrogate or an unknown escape decodes
// as U+FFFD. AppendUnquoted reports an error for an incomplete escape.
func AppendUnquoted(dst []byte, src mem.RO) ([]byte, error) {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		if src = src.SliceFrom(i + 1); src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		if c == 'u' {
			r, n, err := decodeUnicode(src.SliceFrom(1))
			if err != nil {
				return nil, err
			}
			dst = utf8.AppendRune(dst, r)
			src = src.SliceFrom(1 + n)
		} else if k := strings.IndexByte(escLetters, c); k >= 0 {
			dst = append(dst, escValues[k])
			src = src.SliceFrom(1)
		} else {
			_, n := mem.DecodeRune(src)
			dst = utf8.AppendRune(dst, utf8.RuneError)
			src = src.SliceFrom(max(n, 1))
		}
	}
}

// decodeUnicode decodes the hex digits of a \u escape at the front of src,
// together with a second escape completing a surrogate pair, if present. It
// returns the rune and the number of bytes of src consumed.
func decodeUnicode(src mem.RO) (rune, int, error) {
	hi, err := hex4(src)
	if err != nil {
		return 0, 0, err
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 4, nil
	}
	if src.Len() >= 10 && src.At(4) == '\\' && src.At(5) == 'u' {
		if lo, err := hex4(src.SliceFrom(6)); err == nil {
			if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
				return r, 10, nil
			}
		}
	}
	return utf8.RuneError, 4, nil
}

// hex4 decodes the four hexadecimal digits at the front of src.
func hex4(src mem.RO) (rune, error) {
	if src.Len() < 4 {
		return 0, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := range 4 {
		d := strings.IndexByte(hexDigit, lower(src.At(i)))
		if d < 0 {
			return 0, fmt.Errorf("invalid hex digit %q", src.At(i))
		}
		v = v<<4 | rune(d)
	}
	return v, nil
}

// lower maps ASCII capital letters to lower case.
func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
