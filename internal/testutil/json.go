// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"github.com/creachadair/jsonfix/value"
	"github.com/google/go-cmp/cmp"
)

// SameJSON is a cmp.Option that compares two strings that both hold valid
// JSON documents by value, using value.Equal. Other strings are compared
// as text.
var SameJSON = cmp.FilterValues(func(a, b string) bool {
	return parses(a) && parses(b)
}, cmp.Comparer(func(a, b string) bool {
	va, _ := value.Parse(a)
	vb, _ := value.Parse(b)
	return value.Equal(va, vb)
}))

func parses(s string) bool {
	_, err := value.Parse(s)
	return err == nil
}
