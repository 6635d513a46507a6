// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package format

import (
	"fmt"
	"io"

	"github.com/creachadair/jsonfix"
	"github.com/creachadair/jsonfix/value"
)

// A formatter streams a rendering of a value to w.  The first write error
// encountered is retained, and later writes are skipped.
//
// In compact mode no whitespace is written between tokens. Otherwise each
// member or element is written on its own line, indented two spaces per
// level of nesting.
type formatter struct {
	w       io.Writer
	compact bool
	err     error
}

func newFormatter(w io.Writer, mode Mode) *formatter {
	return &formatter{w: w, compact: mode == Minify}
}

func (f *formatter) write(ss ...string) {
	for _, s := range ss {
		if f.err != nil {
			return
		}
		_, f.err = io.WriteString(f.w, s)
	}
}

// nest returns the indentation for the level below indent.
func (f *formatter) nest(indent string) string {
	if f.compact {
		return ""
	}
	return indent + "  "
}

// open writes the opening delimiter of a non-empty container.
func (f *formatter) open(delim string) {
	if f.compact {
		f.write(delim)
	} else {
		f.write(delim, "\n")
	}
}

// sep writes the separator between members or elements, followed by the
// indentation of the next one.
func (f *formatter) sep(first bool, indent string) {
	switch {
	case f.compact:
		if !first {
			f.write(",")
		}
	case first:
		f.write(indent)
	default:
		f.write(",\n", indent)
	}
}

// close writes the closing delimiter of a non-empty container whose opening
// line is indented by indent.
func (f *formatter) close(delim, indent string) {
	if f.compact {
		f.write(delim)
	} else {
		f.write("\n", indent, delim)
	}
}

// formatValue writes a representation of v, with nested lines indented by
// indent. The first line is not indented; the caller has already placed it.
func (f *formatter) formatValue(v value.Value, indent string) {
	switch t := v.(type) {
	case *value.Object:
		f.formatObject(t, indent)
	case *value.Array:
		f.formatArray(t, indent)
	case *value.String, *value.Number, *value.Bool, *value.Null:
		f.write(t.JSON())
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (f *formatter) formatArray(a *value.Array, indent string) {
	if len(a.Values) == 0 {
		f.write("[]")
		return
	}
	f.open("[")
	adent := f.nest(indent)
	for i, v := range a.Values {
		f.sep(i == 0, adent)
		f.formatValue(v, adent)
	}
	f.close("]", indent)
}

func (f *formatter) formatObject(o *value.Object, indent string) {
	if len(o.Members) == 0 {
		f.write("{}")
		return
	}
	f.open("{")
	mdent := f.nest(indent)
	colon := ": "
	if f.compact {
		colon = ":"
	}
	for i, m := range o.Members {
		f.sep(i == 0, mdent)
		f.write(jsonfix.Quote(m.Key), colon)
		f.formatValue(m.Value, mdent)
	}
	f.close("}", indent)
}
