// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEsc maps bytes that have a two-character escape to the escape letter.
var shortEsc = [...]byte{
	'\b': 'b', '\t': 't', '\n': 'n', '\f': 'f', '\r': 'r',
	'"': '"', '\\': '\\',
}

const hexDigit = "0123456789abcdef"

// AppendQuoted appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks, and returns the extended slice.
//
// Control characters, quotation marks, and backslashes are escaped, as are
// the separators U+2028 and U+2029. Other text is copied as-is, except that
// invalid UTF-8 is replaced by U+FFFD.
func AppendQuoted(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		n := plainPrefix(src)
		dst = mem.Append(dst, src.SliceTo(n))
		if src = src.SliceFrom(n); src.Len() == 0 {
			break
		}

		if b := src.At(0); b < utf8.RuneSelf {
			if int(b) < len(shortEsc) && shortEsc[b] != 0 {
				dst = append(dst, '\\', shortEsc[b])
			} else {
				dst = appendHex4(dst, rune(b))
			}
			src = src.SliceFrom(1)
			continue
		}
		r, size := mem.DecodeRune(src)
		if r == utf8.RuneError {
			dst = utf8.AppendRune(dst, r)
		} else {
			dst = appendHex4(dst, r)
		}
		src = src.SliceFrom(size)
	}
	return append(dst, '"')
}

// plainPrefix returns the length of the longest prefix of src that can be
// copied without escaping.
func plainPrefix(src mem.RO) int {
	for i := 0; i < src.Len(); {
		if b := src.At(i); b < utf8.RuneSelf {
			if b < ' ' || b == '"' || b == '\\' {
				return i
			}
			i++
			continue
		}
		r, size := mem.DecodeRune(src.SliceFrom(i))
		if r == '\u2028' || r == '\u2029' || (r == utf8.RuneError && size == 1) {
			return i
		}
		i += size
	}
	return src.Len()
}

func appendHex4(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigit[r>>12&15], hexDigit[r>>8&15], hexDigit[r>>4&15], hexDigit[r&15])
}
