// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonfix

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/creachadair/jsonfix/internal/escape"
	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	if int(t) < len(tokenStr) {
		return tokenStr[t]
	}
	return tokenStr[Invalid]
}

// IsValue reports whether t is the token of a scalar value.
func (t Token) IsValue() bool { return t >= Integer && t <= Null }

// punct maps each punctuation byte to its token. Other bytes map to Invalid.
var punct = [256]Token{
	'{': LBrace, '}': RBrace,
	'[': LSquare, ']': RSquare,
	',': Comma, ':': Colon,
}

// constants maps the leading byte of each constant to its token and text.
var constants = [256]struct {
	tok  Token
	text string
}{
	't': {True, "true"},
	'f': {False, "false"},
	'n': {Null, "null"},
}

// A Scanner reads lexical tokens from a source text held in memory.  Each
// call to Next advances the scanner to the next token, or reports an error.
//
// The scanner accepts only the strict grammar of RFC 8259: there are no
// comments, unquoted names, single-quoted strings, or non-decimal numbers.
type Scanner struct {
	src   mem.RO
	tok   Token
	err   error
	span  Span      // of the current token
	lines lineIndex // line starts seen so far
}

// NewScanner constructs a new lexical scanner for text.
func NewScanner(text string) *Scanner { return &Scanner{src: mem.S(text)} }

// NewBytesScanner constructs a new lexical scanner for data. The caller must
// not modify data while the scanner is in use.
func NewBytesScanner(data []byte) *Scanner { return &Scanner{src: mem.B(data)} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.tok, s.err = Invalid, nil
	i := s.skipSpace(s.span.End)
	s.span = Span{Pos: i, End: i}
	if i == s.src.Len() {
		return s.setErr(io.EOF)
	}

	c := s.src.At(i)
	if t := punct[c]; t != Invalid {
		return s.emit(t, i+1)
	}
	switch {
	case c == '"':
		return s.scanString(i)
	case c == '-' || isDigit(c):
		return s.scanNumber(i)
	case constants[c].tok != Invalid:
		return s.scanConstant(i)
	}
	r, _ := mem.DecodeRune(s.src.SliceFrom(i))
	return s.failAt(i, "unexpected %q", r)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.
func (s *Scanner) Text() string { return s.slice(s.span.Pos, s.span.End).StringCopy() }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return s.span }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location { return s.lines.location(s.span) }

// LineCol returns the line and column of an offset in the input that the
// scanner has already consumed.
func (s *Scanner) LineCol(offset int) LineCol { return s.lines.lineCol(offset) }

// Unescape returns the decoded contents of the current String token.  It
// reports an error if the current token is not a string.
func (s *Scanner) Unescape() (string, error) {
	if s.tok != String {
		return "", fmt.Errorf("token is %v, not a string", s.tok)
	}
	body := s.slice(s.span.Pos+1, s.span.End-1)
	dec, err := escape.AppendUnquoted(make([]byte, 0, body.Len()), body)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

func (s *Scanner) slice(pos, end int) mem.RO { return s.src.SliceFrom(pos).SliceTo(end - pos) }

// skipSpace returns the offset of the first non-whitespace byte at or after
// i, recording the start of each line it passes.
func (s *Scanner) skipSpace(i int) int {
	for ; i < s.src.Len(); i++ {
		switch s.src.At(i) {
		case '\n':
			s.lines.add(i + 1)
		case ' ', '\t', '\r':
		default:
			return i
		}
	}
	return i
}

// emit makes the input up to end the current token, of type t.
func (s *Scanner) emit(t Token, end int) error {
	s.tok = t
	s.span.End = end
	return nil
}

// scanString scans a string whose opening quote is at offset i.
func (s *Scanner) scanString(i int) error {
	n := s.src.Len()
	for j := i + 1; j < n; {
		switch c := s.src.At(j); {
		case c == '"':
			return s.emit(String, j+1)

		case c == '\\':
			if j+1 == n {
				return s.failAt(n, "unterminated string")
			}
			switch e := s.src.At(j + 1); {
			case e == 'u':
				if k := s.hexDigits(j+2, 4); k < 4 {
					if j+2+k == n {
						return s.failAt(n, "unterminated string")
					}
					return s.failAt(j+2+k, "invalid Unicode escape: not a hex digit %q", s.src.At(j+2+k))
				}
				j += 6
			case isSimpleEscape(e):
				j += 2
			default:
				r, _ := mem.DecodeRune(s.src.SliceFrom(j + 1))
				return s.failAt(j+1, "invalid %q after escape", r)
			}

		case c < ' ':
			return s.failAt(j, "unescaped control %q in string", rune(c))

		case c < utf8.RuneSelf:
			j++

		default:
			r, size := mem.DecodeRune(s.src.SliceFrom(j))
			if r == utf8.RuneError && size == 1 {
				return s.failAt(j, "invalid UTF-8 in string")
			}
			j += size
		}
	}
	return s.failAt(n, "unterminated string")
}

// scanNumber scans a number whose first byte is at offset i.
func (s *Scanner) scanNumber(i int) error {
	j := i
	if s.src.At(j) == '-' {
		j++
	}
	k := s.digits(j)
	if k == j {
		return s.failAt(j, "expected digit, got %s", s.describe(j))
	} else if s.src.At(j) == '0' && k-j > 1 {
		// 0 and 0.5 are OK, but 01 and -00.5 are not.
		return s.failAt(j, "extra leading zeroes")
	}
	tok := Integer

	if j = k; j < s.src.Len() && s.src.At(j) == '.' {
		if k = s.digits(j + 1); k == j+1 {
			return s.failAt(j+1, "no digits after decimal point")
		}
		j, tok = k, Number
	}
	if j < s.src.Len() && (s.src.At(j) == 'e' || s.src.At(j) == 'E') {
		j++
		if j < s.src.Len() && (s.src.At(j) == '+' || s.src.At(j) == '-') {
			j++
		}
		if k = s.digits(j); k == j {
			return s.failAt(j, "missing exponent digits")
		}
		j, tok = k, Number
	}
	return s.emit(tok, j)
}

// scanConstant scans a constant whose first byte is at offset i.
func (s *Scanner) scanConstant(i int) error {
	j := i + 1
	for j < s.src.Len() && isLower(s.src.At(j)) {
		j++
	}
	want := constants[s.src.At(i)]
	if got := s.slice(i, j); !got.Equal(mem.S(want.text)) {
		return s.failAt(j, "unknown constant %q", got.StringCopy())
	}
	return s.emit(want.tok, j)
}

// digits returns the offset of the first non-digit at or after i.
func (s *Scanner) digits(i int) int {
	for i < s.src.Len() && isDigit(s.src.At(i)) {
		i++
	}
	return i
}

// hexDigits returns the number of hexadecimal digits, up to limit, starting
// at offset i.
func (s *Scanner) hexDigits(i, limit int) int {
	var n int
	for n < limit && i+n < s.src.Len() && isHexDigit(s.src.At(i+n)) {
		n++
	}
	return n
}

// describe returns a description of the input at offset i, for messages.
func (s *Scanner) describe(i int) string {
	if i >= s.src.Len() {
		return "end of input"
	}
	r, _ := mem.DecodeRune(s.src.SliceFrom(i))
	return fmt.Sprintf("%q", r)
}

// A LexError is a lexical error reported by the scanner.
type LexError struct {
	Offset int // byte offset of the offending input, or its length at the end
	Err    error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Err.Error(), e.Offset)
}

// Unwrap supports error wrapping.
func (e *LexError) Unwrap() error { return e.Err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// failAt reports a lexical error at the given offset. The current token
// spans from its start to the error.
func (s *Scanner) failAt(offset int, msg string, args ...any) error {
	s.span.End = offset
	return s.setErr(&LexError{Offset: offset, Err: fmt.Errorf(msg, args...)})
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isSimpleEscape(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	}
	return false
}
