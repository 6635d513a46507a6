// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines the tree of values produced by parsing a JSON
// document, and a parser that constructs such trees from JSON source.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jsonfix"
)

// A Value is an arbitrary JSON value.  The concrete type is one of *Object,
// *Array, *String, *Number, *Bool, or *Null.
type Value interface {
	// Span reports the location of the value in its source text.
	Span() jsonfix.Span

	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

func newSpan(pos, end int) jsonfix.Span { return jsonfix.Span{Pos: pos, End: end} }

// An Object is a collection of key-value members.  Keys are unique within an
// object, and members are in order of the first occurrence of their key.
type Object struct {
	pos, end int
	Members  []*Member
}

// Span satisfies the Value interface.
func (o *Object) Span() jsonfix.Span { return newSpan(o.pos, o.end) }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return compact(o) }

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	pos, end int

	Key   string // the decoded key
	Value Value
}

// Span reports the location of the member, from the start of its key to the
// end of its value.
func (m *Member) Span() jsonfix.Span { return newSpan(m.pos, m.end) }

// JSON returns the compact encoding of m as "key":value.
func (m *Member) JSON() string {
	var sb strings.Builder
	sb.WriteString(jsonfix.Quote(m.Key))
	sb.WriteByte(':')
	writeCompact(&sb, m.Value)
	return sb.String()
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Array is a sequence of values.
type Array struct {
	pos, end int

	Values []Value
}

// Span satisfies the Value interface.
func (a *Array) Span() jsonfix.Span { return newSpan(a.pos, a.end) }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string { return compact(a) }

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

type datum struct {
	pos, end int
	text     string
}

// Span satisfies the Value interface.
func (d datum) Span() jsonfix.Span { return newSpan(d.pos, d.end) }

// Text returns the source text of the value.
func (d datum) Text() string { return d.text }

// A String is a string value.
type String struct {
	datum
	value string
}

// Value returns the decoded contents of the string.
func (s *String) Value() string { return s.value }

// JSON returns the string in canonical quoted form.
func (s *String) JSON() string { return jsonfix.Quote(s.value) }

// A Number is a numeric value.  The source text of the number is retained and
// rendered verbatim; comparisons use its IEEE-754 double precision value.
type Number struct {
	datum
	integer bool
}

// IsInteger reports whether the number was written without a fraction or an
// exponent.
func (n *Number) IsInteger() bool { return n.integer }

// Float64 returns the value of n as a float64. Magnitudes too large to
// represent are reported as infinities.
func (n *Number) Float64() float64 {
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil && v == 0 {
		panic(err) // the scanner admits only valid numbers
	}
	return v
}

// JSON returns the number in its source form.
func (n *Number) JSON() string { return n.text }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

// Value reports the truth value of b.
func (b *Bool) Value() bool { return b.value }

// JSON satisfies the Value interface.
func (b *Bool) JSON() string { return strconv.FormatBool(b.value) }

// Null represents the null constant.
type Null struct{ datum }

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

func compact(v Value) string {
	var sb strings.Builder
	writeCompact(&sb, v)
	return sb.String()
}

// writeCompact appends the compact encoding of v to sb. Containers are
// written in place, so the cost is linear in the size of the output.
func writeCompact(sb *strings.Builder, v Value) {
	switch t := v.(type) {
	case *Object:
		sb.WriteByte('{')
		for i, m := range t.Members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(jsonfix.Quote(m.Key))
			sb.WriteByte(':')
			writeCompact(sb, m.Value)
		}
		sb.WriteByte('}')
	case *Array:
		sb.WriteByte('[')
		for i, elt := range t.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCompact(sb, elt)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(v.JSON())
	}
}
