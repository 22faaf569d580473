// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import "strings"

// The structural transforms build a new Value for every call.  The result
// shares nothing mutable with the receiver; other holders of the same
// containers are undisturbed.

// Map applies fn to each element of a container (the elements of an array,
// or the member values of an object) and returns an array of the results.
// Results that are undefined are skipped.
func (v Value) Map(fn func(Value) Value) Value {
	src := v.elements()
	out := make([]Value, 0, len(src))
	for _, e := range src {
		if w := fn(e); w.Defined() {
			out = append(out, w)
		}
	}
	return ownArray(out)
}

// MapMembers applies fn to each member of an object and returns an object
// of the results, sorted by the new keys.  Members whose result value is
// undefined are skipped.
func (v Value) MapMembers(fn func(Member) Member) Value {
	src := v.members()
	out := make([]Member, 0, len(src))
	for _, m := range src {
		if w := fn(m); w.Value.Defined() {
			out = append(out, w)
		}
	}
	return ownObject(out)
}

// MapToMembers applies fn to each element of a container and returns an
// object of the resulting members, sorted by key.  Members whose value is
// undefined are skipped.
func (v Value) MapToMembers(fn func(Value) Member) Value {
	src := v.elements()
	out := make([]Member, 0, len(src))
	for _, e := range src {
		if w := fn(e); w.Value.Defined() {
			out = append(out, w)
		}
	}
	return ownObject(out)
}

// MapValues applies fn to each member of an object and returns an array of
// the results in key order, skipping undefined results.
func (v Value) MapValues(fn func(Member) Value) Value {
	src := v.members()
	out := make([]Value, 0, len(src))
	for _, m := range src {
		if w := fn(m); w.Defined() {
			out = append(out, w)
		}
	}
	return ownArray(out)
}

// Filter returns an array of the container elements for which fn is true.
func (v Value) Filter(fn func(Value) bool) Value {
	src := v.elements()
	out := make([]Value, 0, len(src))
	for _, e := range src {
		if fn(e) {
			out = append(out, e)
		}
	}
	return ownArray(out)
}

// FilterMembers returns an object of the members for which fn is true.
func (v Value) FilterMembers(fn func(Member) bool) Value {
	src := v.members()
	out := make([]Member, 0, len(src))
	for _, m := range src {
		if fn(m) {
			out = append(out, m)
		}
	}
	return ownObject(out)
}

// Splice removes the elements of v in positions [from, to), inserts the
// given items at that position, and returns the resulting array along with
// the removed slice.  Positions are clamped to the array bounds; a
// non-array receiver is treated as empty.
func (v Value) Splice(from, to int, items ...Value) (out, removed Value) {
	src := v.values()
	from, to = clampRange(from, to, len(src))

	res := make([]Value, 0, len(src)-(to-from)+len(items))
	res = append(res, src[:from]...)
	res = append(res, items...)
	res = append(res, src[to:]...)
	return ownArray(res), FromValues(src[from:to])
}

// Insert returns a copy of the array v with items inserted at position at.
func (v Value) Insert(at int, items ...Value) Value {
	out, _ := v.Splice(at, at, items...)
	return out
}

// Erase returns a copy of the array v without the elements in positions
// [from, to).
func (v Value) Erase(from, to int) Value {
	out, _ := v.Splice(from, to)
	return out
}

// Append returns a copy of the array v with items appended.
func (v Value) Append(items ...Value) Value {
	return v.Insert(len(v.values()), items...)
}

// Concat returns the concatenation of the arrays v and other.
func (v Value) Concat(other Value) Value {
	return v.Append(other.values()...)
}

// Slice returns the elements of v in positions [from, to) as an array.
// Positions are clamped to the array bounds.
func (v Value) Slice(from, to int) Value {
	src := v.values()
	from, to = clampRange(from, to, len(src))
	return FromValues(src[from:to])
}

// MergeKeys merges the object changes into the object v and returns the
// result.  Both sides should be objects.  On a key collision the value
// from changes wins; a key whose value in changes is undefined is deleted.
// Keys present on only one side are kept.
func (v Value) MergeKeys(changes Value) Value {
	a, b := v.members(), changes.members()
	out := make([]Member, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := strings.Compare(a[i].Key, b[j].Key); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			if b[j].Value.Defined() {
				out = append(out, b[j])
			}
			j++
		default:
			if b[j].Value.Defined() {
				out = append(out, b[j])
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	for ; j < len(b); j++ {
		if b[j].Value.Defined() {
			out = append(out, b[j])
		}
	}
	return ownObject(out)
}

// SetKeys merges the given members into the object v, with the same
// replace-and-delete rules as MergeKeys.
func (v Value) SetKeys(members ...Member) Value {
	return v.MergeKeys(FromMembers(members))
}

// clampRange confines from and to within [0, n] with from <= to.
func clampRange(from, to, n int) (int, int) {
	from = max(0, min(from, n))
	to = max(from, min(to, n))
	return from, to
}
