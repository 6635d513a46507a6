// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package testutil_test

import (
	"testing"

	"github.com/creachadair/jsonfix/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestSameJSON(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`{"a":1,"b":[true]}`, `{ "b" : [ true ], "a" : 1.0 }`, true},
		{`[1,2]`, `[2,1]`, false},
		{`"x"`, `"x"`, true},
		{`not json`, `not json`, true},
		{`not json`, `"not json"`, false},
	}
	for _, tc := range tests {
		if got := cmp.Equal(tc.a, tc.b, testutil.SameJSON); got != tc.want {
			t.Errorf("Equal(%#q, %#q): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}

	type pair struct{ Name, Doc string }
	a := pair{"x", `{"k": null}`}
	b := pair{"x", `{"k":null}`}
	if diff := cmp.Diff(a, b, testutil.SameJSON); diff != "" {
		t.Errorf("Nested (-a, +b):\n%s", diff)
	}
}
