// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonfix

import (
	"fmt"
	"slices"
)

// A Span is the half-open range [Pos, End) of byte offsets in a source text.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// Contains reports whether offset lies within s.
func (s Span) Contains(offset int) bool { return s.Pos <= offset && offset < s.End }

// A LineCol is the line and column of an offset in source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location is a span of source text together with the line and column of
// each of its ends.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First == loc.Last {
		return loc.First.String()
	}
	return loc.First.String() + "-" + loc.Last.String()
}

// A lineIndex records the offsets at which lines begin, after the first.
// Offsets are added in increasing order as the text is consumed.
type lineIndex []int

// add records that a line begins at offset, if not already recorded.
func (x *lineIndex) add(offset int) {
	if n := len(*x); n == 0 || (*x)[n-1] < offset {
		*x = append(*x, offset)
	}
}

// lineCol returns the line and column of offset.
func (x lineIndex) lineCol(offset int) LineCol {
	// The number of line starts at or before offset.
	i, _ := slices.BinarySearch(x, offset+1)
	start := 0
	if i > 0 {
		start = x[i-1]
	}
	return LineCol{Line: i + 1, Column: offset - start}
}

func (x lineIndex) location(span Span) Location {
	return Location{Span: span, First: x.lineCol(span.Pos), Last: x.lineCol(span.End)}
}
