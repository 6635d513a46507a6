// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Path follows a sequence of steps from v and returns the value it reaches.
// A string step selects an object member by key, and an int step selects an
// array element by index. Negative indices count back from the end, so -1 is
// the last element. An int step applied to an object selects the member
// whose key is its decimal form.
//
// If a step cannot be taken, Path returns v itself and a *PathError.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for i, step := range path {
		next, err := follow(cur, step)
		if err != nil {
			return v, &PathError{Path: path[:i+1], Err: err}
		}
		cur = next
	}
	return cur, nil
}

func follow(v Value, step any) (Value, error) {
	switch s := step.(type) {
	case string:
		obj, ok := v.(*Object)
		if !ok {
			return nil, fmt.Errorf("%s has no key %q", kindOf(v), s)
		}
		if m := obj.Find(s); m != nil {
			return m.Value, nil
		}
		return nil, fmt.Errorf("key %q not found", s)

	case int:
		if obj, ok := v.(*Object); ok {
			// An object member may have a numeric key, such as "0".
			return follow(obj, strconv.Itoa(s))
		}
		arr, ok := v.(*Array)
		if !ok {
			return nil, fmt.Errorf("%s has no index %d", kindOf(v), s)
		}
		i := s
		if i < 0 {
			i += len(arr.Values)
		}
		if i < 0 || i >= len(arr.Values) {
			return nil, fmt.Errorf("index %d out of range for array of length %d", s, len(arr.Values))
		}
		return arr.Values[i], nil

	default:
		return nil, fmt.Errorf("invalid path step %v of type %T", step, step)
	}
}

// kindOf names the JSON type of v, for messages.
func kindOf(v Value) string {
	switch v.(type) {
	case *Object:
		return "object"
	case *Array:
		return "array"
	case *String:
		return "string"
	case *Number:
		return "number"
	case *Bool:
		return "boolean"
	case *Null:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

// A PathError reports a path that could not be followed.
type PathError struct {
	Path []any // the steps up to and including the one that failed
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path at %s: %v", JoinPath(e.Path...), e.Err)
}

// Unwrap supports error wrapping.
func (e *PathError) Unwrap() error { return e.Err }

// SplitPath splits a dotted path such as "data.users.0.name" into steps for
// Path. A segment that is the canonical decimal form of an integer, such as
// "3" or "-1" but not "+3" or "03", becomes an int step. Any other segment is
// an object key. The empty string has no steps.
func SplitPath(s string) []any {
	if s == "" {
		return nil
	}
	segs := strings.Split(s, ".")
	steps := make([]any, len(segs))
	for i, seg := range segs {
		if n, err := strconv.Atoi(seg); err == nil && strconv.Itoa(n) == seg {
			steps[i] = n
		} else {
			steps[i] = seg
		}
	}
	return steps
}

// JoinPath is the inverse of SplitPath, for steps that are strings or ints.
func JoinPath(steps ...any) string {
	segs := make([]string, len(steps))
	for i, step := range steps {
		segs[i] = fmt.Sprint(step)
	}
	return strings.Join(segs, ".")
}
