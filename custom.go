// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

// A CustomValue is a user-defined opaque entity that masquerades as a
// Value.  Implementations should be immutable.  Each custom value reports
// a compatible logical type, a human-oriented string projection, and a
// plain JSON projection used by the serializers.
//
// A CustomValue may additionally implement the optional Texter, Indexer,
// and Equaler interfaces to take part in text access, container access,
// and structural equality.  Absent those, the defaults apply: empty text,
// zero length, undefined lookups, and identity equality.
type CustomValue interface {
	// String returns a human-oriented representation of the value.
	String() string

	// Type returns the logical type the value acts as.  The most useful
	// choices are TypeString, TypeArray, and TypeObject.
	Type() Type

	// ToJSON returns a plain JSON projection of the value.  It is called
	// at most once per serialization pass; the result is memoized by
	// identity and reused for repeated occurrences.
	ToJSON() Value
}

// Texter is an optional interface for custom values with string content,
// consulted by Value.Text.
type Texter interface {
	Text() string
}

// Indexer is an optional interface for custom values that act as
// containers, consulted by Value.Len, Value.Index, and Value.Field.
// Index and Field must return undefined for misses.
type Indexer interface {
	Len() int
	Index(i int) Value
	Field(key string) Value
}

// Equaler is an optional interface for custom values with structural
// equality.  Without it, custom values compare by identity.
type Equaler interface {
	Equal(other CustomValue) bool
}

// NewCustom returns a Value wrapping the given custom value.  It panics if
// cv is nil.
func NewCustom(cv CustomValue) Value {
	if cv == nil {
		panic("jval: nil custom value")
	}
	return Value{tag: StorageCustom, cv: cv}
}

// Custom returns the custom value held by v, or nil if v does not hold one.
func (v Value) Custom() CustomValue { return v.cv }
