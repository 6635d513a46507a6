// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package repair

import (
	"regexp"
	"strings"
)

var (
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
	unquotedKey   = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)(\s*:)`)
)

// RemoveTrailingCommas deletes each comma that is followed by "}" or "]",
// with only whitespace between. String literals are not modified.
func RemoveTrailingCommas(text string) string {
	return mapCode(text, func(code string) string {
		return trailingComma.ReplaceAllString(code, "$1")
	})
}

// QuoteKeys wraps double quotes around each bare identifier that is followed
// by ":" and preceded by "{" or ",", allowing whitespace on either side.
// Identifiers consist of letters, digits, "_", and "$", and do not begin with
// a digit. String literals are not modified.
func QuoteKeys(text string) string {
	return mapCode(text, func(code string) string {
		return unquotedKey.ReplaceAllString(code, `${1}"${2}"${3}`)
	})
}

// ConvertSingleQuotes replaces the quotation marks of each single-quoted span
// with double quotes. The contents of the span, including any escapes, are
// copied verbatim: double quotes inside the span are not escaped, so the
// result is not necessarily valid. Double-quoted string literals are not
// modified.
func ConvertSingleQuotes(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		switch text[i] {
		case '"':
			end, _ := literalEnd(text, i)
			sb.WriteString(text[i:end])
			i = end
		case '\'':
			end, ok := literalEnd(text, i)
			if !ok {
				// An unterminated span. No later span can close either, since
				// it would have to end at a quote we have already passed.
				sb.WriteString(text[i:])
				return sb.String()
			}
			sb.WriteByte('"')
			sb.WriteString(text[i+1 : end-1])
			sb.WriteByte('"')
			i = end
		default:
			sb.WriteByte(text[i])
			i++
		}
	}
	return sb.String()
}

// InsertMissingCommas inserts a comma between a closing token and an opening
// token that are separated only by whitespace. The closing tokens are "}",
// "]", and the final quote of a string; the opening tokens are "{", "[", and
// the initial quote of a string. The comma is placed immediately after the
// closing token.
func InsertMissingCommas(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	closed := false // the last token was a closing token
	for i := 0; i < len(text); {
		if closed {
			j := i
			for j < len(text) && isSpace(text[j]) {
				j++
			}
			if j < len(text) && isOpener(text[j]) {
				sb.WriteByte(',')
			}
			sb.WriteString(text[i:j])
			closed = false
			if i = j; i == len(text) {
				break
			}
		}

		switch c := text[i]; c {
		case '"':
			end, ok := literalEnd(text, i)
			sb.WriteString(text[i:end])
			i = end
			closed = ok
		case '}', ']':
			sb.WriteByte(c)
			i++
			closed = true
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// BalanceBrackets makes the numbers of opening and closing braces, and then
// of opening and closing brackets, equal. The counts include every occurrence
// in the text, inside string literals or not.
//
// If there are more openers than closers, the missing closers are appended.
// If there are more closers than openers, the excess is removed from the end
// of the text, ignoring trailing whitespace, as long as the text ends with
// the relevant closer.
func BalanceBrackets(text string) string {
	text = balance(text, "{", "}")
	return balance(text, "[", "]")
}

func balance(text, open, close string) string {
	n := strings.Count(text, open) - strings.Count(text, close)
	if n > 0 {
		return text + strings.Repeat(close, n)
	}
	for ; n < 0; n++ {
		trim := strings.TrimRight(text, spaceChars)
		if !strings.HasSuffix(trim, close) {
			break
		}
		text = trim[:len(trim)-len(close)]
	}
	return text
}

// mapCode applies f to each maximal span of text outside double-quoted string
// literals, and returns the concatenation of the results with the literals
// unchanged. An unterminated literal extends to the end of the text.
func mapCode(text string, f func(string) string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for text != "" {
		i := strings.IndexByte(text, '"')
		if i < 0 {
			sb.WriteString(f(text))
			break
		}
		sb.WriteString(f(text[:i]))
		end, _ := literalEnd(text, i)
		sb.WriteString(text[i:end])
		text = text[end:]
	}
	return sb.String()
}

// literalEnd returns the offset just past the end of the quoted literal
// beginning at text[start], whose quote character is text[start]. A backslash
// escapes the following byte. If the literal is not terminated, literalEnd
// returns len(text), false.
func literalEnd(text string, start int) (int, bool) {
	quote := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	return len(text), false
}

// spaceChars are the characters matched by \s in the patterns above.
const spaceChars = " \t\n\f\r"

func isSpace(c byte) bool  { return strings.IndexByte(spaceChars, c) >= 0 }
func isOpener(c byte) bool { return c == '"' || c == '[' || c == '{' }
