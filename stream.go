// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonfix

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// An Anchor is the token at which a parser event occurred. A *Scanner is an
// Anchor for its current token.
type Anchor interface {
	Token() Token       // the token type
	Text() string       // the raw (undecoded) text of the token
	Span() Span         // the byte offsets of the token
	Location() Location // the span with its line and column positions
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller unchanged.
//
// The Anchor argument to a Handler method describes the current token only
// for the duration of the call. A handler that needs the token text or its
// location later must save them before returning.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The key is still
	// quoted; see Unquote.
	BeginMember(loc Anchor) error

	// End the current object member. The token at loc is the Comma or RBrace
	// that followed the member value.
	EndMember(loc Anchor) error

	// Report a scalar value at loc. String values are still quoted.
	Value(loc Anchor) error

	// EndOfInput reports that the input is exhausted.
	EndOfInput(loc Anchor)
}

// Stream is a parser that reports the structure of its input as a sequence
// of calls to a Handler.
type Stream struct {
	s *Scanner
}

// NewStream constructs a new Stream that parses text.
func NewStream(text string) *Stream { return &Stream{s: NewScanner(text)} }

// NewStreamWithScanner constructs a new Stream that consumes tokens from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// Parse parses values from the input and delivers events to h, until an error
// occurs or the input is exhausted. A syntax error has type [*SyntaxError].
func (st *Stream) Parse(h Handler) error {
	for {
		if err := st.ParseOne(h); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ParseOne parses a single value from the front of the remaining input and
// delivers events to h. If no further value is available, ParseOne reports
// end of input to h and returns io.EOF. A syntax error has type
// [*SyntaxError].
func (st *Stream) ParseOne(h Handler) error {
	if err := st.next(); err == io.EOF {
		h.EndOfInput(st.s)
		return err
	} else if err != nil {
		return err
	}
	return st.element(h)
}

// ParseSingle parses a document consisting of exactly one value, and delivers
// events to h. Unlike ParseOne, it reports a [*SyntaxError] if the input is
// empty, or if anything other than whitespace follows the value.
func (st *Stream) ParseSingle(h Handler) error {
	if err := st.next(); err == io.EOF {
		return st.errorf(err, "unexpected end of input")
	} else if err != nil {
		return err
	}
	if err := st.element(h); err != nil {
		return err
	}
	if err := st.next(); err == io.EOF {
		h.EndOfInput(st.s)
		return nil
	} else if err != nil {
		return err
	}
	return st.errorf(ErrExtraInput, "unexpected %v after value", st.s.Token())
}

// ErrExtraInput is wrapped by the SyntaxError reported by ParseSingle when
// there is more input after the value.
var ErrExtraInput = errors.New("extra input after value")

// element parses a value starting at the current token.
func (st *Stream) element(h Handler) error {
	switch tok := st.s.Token(); tok {
	case LBrace:
		if err := h.BeginObject(st.s); err != nil {
			return err
		} else if err := st.members(h); err != nil {
			return err
		}
		return h.EndObject(st.s)

	case LSquare:
		if err := h.BeginArray(st.s); err != nil {
			return err
		} else if err := st.elements(h); err != nil {
			return err
		}
		return h.EndArray(st.s)

	case Integer, Number, String, True, False, Null:
		return h.Value(st.s)

	default:
		return st.errorf(nil, "unexpected %v", tok)
	}
}

// members parses the members of an object and its closing brace.
// The current token is the opening brace.
func (st *Stream) members(h Handler) error {
	tok, err := st.expect(RBrace, String)
	if err != nil || tok == RBrace {
		return err
	}
	for {
		if err := h.BeginMember(st.s); err != nil {
			return err
		}
		if _, err := st.expect(Colon); err != nil {
			return err
		}
		if _, err := st.expect(); err != nil {
			return err
		}
		if err := st.element(h); err != nil {
			return err
		}

		tok, err := st.expect(RBrace, Comma)
		if err != nil {
			return err
		} else if err := h.EndMember(st.s); err != nil {
			return err
		} else if tok == RBrace {
			return nil
		}
		if _, err := st.expect(String); err != nil {
			return err
		}
	}
}

// elements parses the values of an array and its closing bracket.
// The current token is the opening bracket.
func (st *Stream) elements(h Handler) error {
	tok, err := st.expect()
	if err != nil || tok == RSquare {
		return err
	}
	for {
		if err := st.element(h); err != nil {
			return err
		}
		tok, err := st.expect(RSquare, Comma)
		if err != nil || tok == RSquare {
			return err
		}
		if _, err := st.expect(); err != nil {
			return err
		}
	}
}

// next advances to the next token. It returns io.EOF at the end of the input,
// and reports a lexical error as a *SyntaxError.
func (st *Stream) next() error {
	err := st.s.Next()
	if err == nil || err == io.EOF {
		return err
	}
	var lerr *LexError
	if errors.As(err, &lerr) {
		return &SyntaxError{
			Offset:   lerr.Offset,
			Location: st.s.LineCol(lerr.Offset),
			Message:  lerr.Err.Error(),
			err:      err,
		}
	}
	return st.errorf(err, "%v", err)
}

// expect advances to the next token, which must be one of tokens. If tokens
// is empty, any token is accepted. It reports a *SyntaxError otherwise, or
// at the end of the input.
func (st *Stream) expect(tokens ...Token) (Token, error) {
	if err := st.next(); err == io.EOF {
		return Invalid, st.errorf(err, "%s", expectation(tokens, "end of input"))
	} else if err != nil {
		return Invalid, err
	}
	tok := st.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		return Invalid, st.errorf(nil, "%s", expectation(tokens, tok))
	}
	return tok, nil
}

// errorf returns a *SyntaxError located at the start of the current token,
// wrapping err if it is not nil.
func (st *Stream) errorf(err error, msg string, args ...any) *SyntaxError {
	loc := st.s.Location()
	return &SyntaxError{
		Offset:   loc.Pos,
		Location: loc.First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

// expectation describes the tokens wanted by a parser, and what it found.
func expectation(tokens []Token, got any) string {
	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.String()
	}
	want := "value"
	switch n := len(names); {
	case n == 1:
		want = names[0]
	case n > 1:
		want = strings.Join(names[:n-1], ", ") + " or " + names[n-1]
	}
	return fmt.Sprintf("expected %s, got %v", want, got)
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Offset   int     // byte offset of the error in the input
	Location LineCol // line and column of the error
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }
