// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

// Equal reports whether a and b are structurally equal.  Arrays are equal if
// they have equal elements in the same order. Objects are equal if they have
// the same set of keys with equal values, in any order. Numbers are compared
// by their double-precision values, so 1, 1.0, and 1e0 are all equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		if !ok || len(x.Members) != len(y.Members) {
			return false
		}
		for _, m := range x.Members {
			n := y.Find(m.Key)
			if n == nil || !Equal(m.Value, n.Value) {
				return false
			}
		}
		return true
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Values) != len(y.Values) {
			return false
		}
		for i, v := range x.Values {
			if !Equal(v, y.Values[i]) {
				return false
			}
		}
		return true
	case *String:
		y, ok := b.(*String)
		return ok && x.value == y.value
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Float64() == y.Float64()
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.value == y.value
	case *Null:
		_, ok := b.(*Null)
		return ok
	default:
		return false
	}
}

// ToAny converts v into plain Go values of the types used by encoding/json:
// map[string]any, []any, string, float64, bool, and nil.
func ToAny(v Value) any {
	switch t := v.(type) {
	case *Object:
		out := make(map[string]any, len(t.Members))
		for _, m := range t.Members {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	case *Array:
		out := make([]any, len(t.Values))
		for i, elt := range t.Values {
			out[i] = ToAny(elt)
		}
		return out
	case *String:
		return t.value
	case *Number:
		return t.Float64()
	case *Bool:
		return t.value
	default:
		return nil
	}
}
