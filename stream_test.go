// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonfix_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jsonfix"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value integer <0>
Value integer <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`"" "a b c" "a\tb" "a\u0020b"`, `
Value string <"">
Value string <"a b c">
Value string <"a\tb">
Value string <"a\u0020b">
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"a":15}`, `
BeginObject
BeginMember <"a">
Value integer <15>
EndMember "}"
EndObject
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray
Value true <true>
EndArray
EndMember "}"
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},
	}

	for _, test := range tests {
		st := jsonfix.NewStream(test.input)
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Various kinds of unbalanced object bits.
		{`{`, `BeginObject`,
			`at 1:1: expected "}" or string, got end of input`},
		{`}`, ``, `at 1:0: unexpected "}"`},
		{`{false:1}`, `BeginObject`,
			`at 1:1: expected "}" or string, got false`},
		{`{"true":}`, `
BeginObject
BeginMember <"true">`,
			`at 1:8: unexpected "}"`},
		{`{"true":1,`, `
BeginObject
BeginMember <"true">
Value integer <1>
EndMember ","`,
			`at 1:10: expected string, got end of input`},
		{`{"a" 1}`, `
BeginObject
BeginMember <"a">`,
			`at 1:5: expected ":", got integer`},

		// Unbalanced array bits.
		{`[`, `BeginArray`,
			`at 1:1: expected value, got end of input`},
		{`]`, ``, `at 1:0: unexpected "]"`},
		{`[15,`, `
BeginArray
Value integer <15>`,
			`at 1:4: expected value, got end of input`},
		{`[15,]`, `
BeginArray
Value integer <15>`,
			`at 1:4: unexpected "]"`},
		{`[1 2]`, `
BeginArray
Value integer <1>`,
			`at 1:3: expected "]" or ",", got integer`},

		// Invalid values.
		{`1 2.0 forthright`, `
Value integer <1>
Value number <2.0>`,
			`at 1:16: unknown constant "forthright"`},
		{`"what did you`, ``,
			`at 1:13: unterminated string`},
		{`['single']`, `BeginArray`,
			`at 1:1: unexpected '\''`},
	}

	for _, test := range tests {
		st := jsonfix.NewStream(test.input)
		th := new(testHandler)
		err := st.Parse(th)
		if err == nil {
			t.Error("Parse did not report an error")
			continue
		}
		var serr *jsonfix.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input: %#q: error is %T, want *SyntaxError", test.input, err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseSingle(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		{` [true] `, "BeginArray\nValue true <true>\nEndArray\n.", ""},
		{``, ``, `at 1:0: unexpected end of input`},
		{"\n  ", ``, `at 2:2: unexpected end of input`},
		{`1 2`, `Value integer <1>`, `at 1:2: unexpected integer after value`},
		{`{} x`, "BeginObject\nEndObject", `at 1:3: unexpected 'x'`},
	}
	for _, test := range tests {
		th := new(testHandler)
		err := jsonfix.NewStream(test.input).ParseSingle(th)
		if test.estr == "" {
			if err != nil {
				t.Errorf("Input %#q: unexpected error: %v", test.input, err)
			}
		} else if err == nil {
			t.Errorf("Input %#q: got nil, want error %q", test.input, test.estr)
		} else if got := err.Error(); got != test.estr {
			t.Errorf("Input %#q: got error %q, want %q", test.input, got, test.estr)
		}
		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}

	err := jsonfix.NewStream(`"a" "b"`).ParseSingle(new(testHandler))
	if !errors.Is(err, jsonfix.ErrExtraInput) {
		t.Errorf("ParseSingle: got %v, want %v", err, jsonfix.ErrExtraInput)
	}
}

func TestHandlerError(t *testing.T) {
	bad := errors.New("no arrays today")
	th := &testHandler{failArray: bad}
	err := jsonfix.NewStream(`{"a": [1]}`).Parse(th)
	if err != bad {
		t.Errorf("Parse: got %v, want %v", err, bad)
	}
	if diff := diffStrings("BeginObject\nBeginMember <\"a\">", th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject
BeginMember <"love">
Value true <true>
EndMember "}"
EndObject
---
BeginArray
EndArray
---
Value string <"ok">
---
.`
	th := new(testHandler)

	st := jsonfix.NewStream(input)
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf       bytes.Buffer
	failArray error
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(loc jsonfix.Anchor) error { t.pr("BeginObject"); return nil }
func (t *testHandler) EndObject(loc jsonfix.Anchor) error   { t.pr("EndObject"); return nil }
func (t *testHandler) BeginArray(loc jsonfix.Anchor) error {
	if t.failArray != nil {
		return t.failArray
	}
	t.pr("BeginArray")
	return nil
}
func (t *testHandler) EndArray(loc jsonfix.Anchor) error { t.pr("EndArray"); return nil }
func (t *testHandler) EndOfInput(loc jsonfix.Anchor)     { t.pr(".") }

func (t *testHandler) BeginMember(loc jsonfix.Anchor) error {
	t.pr("BeginMember <%s>", loc.Text())
	return nil
}

func (t *testHandler) EndMember(loc jsonfix.Anchor) error {
	t.pr("EndMember %s", loc.Token())
	return nil
}

func (t *testHandler) Value(loc jsonfix.Anchor) error {
	t.pr(`Value %s <%s>`, loc.Token(), loc.Text())
	return nil
}
