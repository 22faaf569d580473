// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

// Field returns the value stored under key in an object.  If v is not an
// object, or no member has that key, the result is undefined.  Lookup is a
// binary search over the key-sorted body.
func (v Value) Field(key string) Value {
	switch v.tag {
	case StorageObject:
		if i, ok := searchMembers(v.obj.elems, key); ok {
			return v.obj.elems[i].Value
		}
	case StorageCustom:
		if c, ok := v.cv.(Indexer); ok {
			return c.Field(key)
		}
	}
	return Value{}
}

// Index returns the i-th element of an array, or the value part of the
// i-th member of an object.  If v is not a container or i is out of range,
// the result is undefined.
func (v Value) Index(i int) Value {
	switch v.tag {
	case StorageArray:
		if i >= 0 && i < v.arr.len() {
			return v.arr.at(i)
		}
	case StorageObject:
		if i >= 0 && i < v.obj.len() {
			return v.obj.at(i).Value
		}
	case StorageCustom:
		if c, ok := v.cv.(Indexer); ok {
			return c.Index(i)
		}
	}
	return Value{}
}

// Members returns a read-only view of the key-sorted member sequence of an
// object.  For any other value the view is empty.
func (v Value) Members() Members {
	if v.tag == StorageObject {
		return Members{ms: v.obj.elems}
	}
	return Members{}
}

// Members is a read-only view of the sorted member sequence of an object.
type Members struct {
	ms []Member
}

// Len reports the number of members in the view.
func (m Members) Len() int { return len(m.ms) }

// At returns the i-th member in key order.  It panics if i is out of range.
func (m Members) At(i int) Member { return m.ms[i] }

// Find returns the leftmost member with the given key, if any.
func (m Members) Find(key string) (Member, bool) {
	if i, ok := searchMembers(m.ms, key); ok {
		return m.ms[i], true
	}
	return Member{}, false
}

// Path traverses v by the given sequence of keys.  A string key selects an
// object member, an int selects a container element by position.  If any
// step does not match, the result is undefined.
func Path(v Value, keys ...any) Value {
	for _, key := range keys {
		switch t := key.(type) {
		case string:
			v = v.Field(t)
		case int:
			v = v.Index(t)
		default:
			return Value{}
		}
	}
	return v
}
