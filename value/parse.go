// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"

	"github.com/creachadair/jsonfix"
)

// Parse parses text as a single strict JSON document and returns its value.
// In case of a syntax error, the error has concrete type *jsonfix.SyntaxError.
//
// When an object contains duplicate keys, the last value wins, and the member
// keeps the position of the first occurrence of its key.
func Parse(text string) (Value, error) {
	h := new(parseHandler)
	if err := jsonfix.NewStream(text).ParseSingle(h); err != nil {
		return nil, err
	}
	if len(h.stk) != 1 {
		return nil, fmt.Errorf("incomplete value (%d pending)", len(h.stk))
	}
	return h.stk[0], nil
}

// A parseHandler implements the jsonfix.Handler interface to construct trees
// of values.
type parseHandler struct {
	stk  []Value
	keys []map[string]int // member indices for each open object
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

// reduce pops a completed value off the stack and adds it to its parent, if
// it has one. A value with no parent is the root, and remains.
func (h *parseHandler) reduce() {
	if len(h.stk) > 1 {
		h.addValue(h.pop())
	}
}

func (h *parseHandler) addValue(v Value) {
	if len(h.stk) == 0 {
		h.push(v) // root
		return
	}
	switch prev := h.top().(type) {
	case *memberStub:
		prev.Value = v
	case *Array:
		prev.Values = append(prev.Values, v)
	default:
		panic(fmt.Sprintf("unexpected %T atop the stack", prev))
	}
}

func (h *parseHandler) BeginObject(loc jsonfix.Anchor) error {
	h.push(&Object{pos: loc.Span().Pos})
	h.keys = append(h.keys, make(map[string]int))
	return nil
}

func (h *parseHandler) EndObject(loc jsonfix.Anchor) error {
	h.top().(*Object).end = loc.Span().End
	h.keys = h.keys[:len(h.keys)-1]
	h.reduce()
	return nil
}

func (h *parseHandler) BeginArray(loc jsonfix.Anchor) error {
	h.push(&Array{pos: loc.Span().Pos})
	return nil
}

func (h *parseHandler) EndArray(loc jsonfix.Anchor) error {
	h.top().(*Array).end = loc.Span().End
	h.reduce()
	return nil
}

func (h *parseHandler) BeginMember(loc jsonfix.Anchor) error {
	key, err := jsonfix.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	h.push(&memberStub{Member{pos: loc.Span().Pos, Key: key}})
	return nil
}

func (h *parseHandler) EndMember(loc jsonfix.Anchor) error {
	stub := h.pop().(*memberStub)
	m := &stub.Member
	m.end = m.Value.Span().End

	obj := h.top().(*Object)
	seen := h.keys[len(h.keys)-1]
	if i, ok := seen[m.Key]; ok {
		old := obj.Members[i]
		old.Value = m.Value
		old.end = m.end
	} else {
		seen[m.Key] = len(obj.Members)
		obj.Members = append(obj.Members, m)
	}
	return nil
}

func (h *parseHandler) Value(loc jsonfix.Anchor) error {
	span := loc.Span()
	d := datum{pos: span.Pos, end: span.End, text: loc.Text()}
	switch tok := loc.Token(); tok {
	case jsonfix.String:
		dec, err := jsonfix.Unquote(d.text)
		if err != nil {
			return fmt.Errorf("invalid string: %w", err)
		}
		h.addValue(&String{datum: d, value: dec})
	case jsonfix.Integer, jsonfix.Number:
		h.addValue(&Number{datum: d, integer: tok == jsonfix.Integer})
	case jsonfix.True, jsonfix.False:
		h.addValue(&Bool{datum: d, value: tok == jsonfix.True})
	case jsonfix.Null:
		h.addValue(&Null{datum: d})
	default:
		return fmt.Errorf("unknown value %v", tok)
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc jsonfix.Anchor) {}

// memberStub is a stack placeholder for an object member whose value has not
// yet been completed. This type does not appear in a completed tree.
type memberStub struct{ Member }

func (*memberStub) JSON() string { panic("incomplete member") }
