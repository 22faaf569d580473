// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// A Type is the logical type of a Value.
type Type int

// Constants defining the logical types of a Value.
const (
	TypeUndefined Type = iota // no value present
	TypeNull                  // the null constant
	TypeBool                  // true or false
	TypeNumber                // a number, possibly stored as text
	TypeString                // a string
	TypeArray                 // an ordered sequence of values
	TypeObject                // a key-sorted sequence of members
)

var typeStr = [...]string{
	TypeUndefined: "undefined",
	TypeNull:      "null",
	TypeBool:      "boolean",
	TypeNumber:    "number",
	TypeString:    "string",
	TypeArray:     "array",
	TypeObject:    "object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeStr) {
		return "invalid"
	}
	return typeStr[t]
}

// Storage identifies the physical representation of a Value.  Multiple
// storage variants may share one logical type; most users only care about
// Type, but tests and low-level consumers can observe the representation.
type Storage byte

// Constants defining the storage variants of a Value.
const (
	StorageUndefined   Storage = iota // zero value, no payload
	StorageNull                       // no payload
	StorageFalse                      // no payload
	StorageTrue                       // no payload
	StorageInt                        // signed 64-bit integer
	StorageUint                       // unsigned 64-bit integer
	StorageFloat                      // IEEE-754 double bits
	StorageString                     // text payload
	StorageNumber                     // text payload flagged as a number
	StorageEmptyArray                 // array with no body allocated
	StorageEmptyObject                // object with no body allocated
	StorageArray                      // shared array body
	StorageObject                     // shared object body, sorted by key
	StorageCustom                     // user-defined value
)

var storageStr = [...]string{
	StorageUndefined:   "undefined",
	StorageNull:        "null",
	StorageFalse:       "false",
	StorageTrue:        "true",
	StorageInt:         "int",
	StorageUint:        "uint",
	StorageFloat:       "float",
	StorageString:      "string",
	StorageNumber:      "number",
	StorageEmptyArray:  "empty-array",
	StorageEmptyObject: "empty-object",
	StorageArray:       "array",
	StorageObject:      "object",
	StorageCustom:      "custom",
}

func (s Storage) String() string {
	if int(s) >= len(storageStr) {
		return "invalid"
	}
	return storageStr[s]
}

// Canonical textual projections of the constant values.
const (
	trueText      = "true"
	falseText     = "false"
	nullText      = "null"
	undefinedText = "(undefined)"
	infinityText  = "∞"
	negInfinity   = "-∞"
)

// A Value is an immutable handle to a JSON-representable datum.  The zero
// Value is undefined.  Values are cheap to copy; container bodies are
// shared between copies and never mutated, so any number of goroutines may
// read, copy, and discard the same Value concurrently.
type Value struct {
	tag Storage
	num uint64 // integer payload or float bits
	str string // string or number text
	arr *container[Value]
	obj *container[Member]
	cv  CustomValue
}

// A Member is a single key-value pair belonging to an object.
type Member struct {
	Key   string
	Value Value
}

// Undefined returns the undefined value.  It is the same as the zero Value.
func Undefined() Value { return Value{} }

// Null returns the null value.
func Null() Value { return Value{tag: StorageNull} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	if v {
		return Value{tag: StorageTrue}
	}
	return Value{tag: StorageFalse}
}

// Int returns a number value holding a signed integer.
func Int(v int64) Value { return Value{tag: StorageInt, num: uint64(v)} }

// Uint returns a number value holding an unsigned integer.
func Uint(v uint64) Value { return Value{tag: StorageUint, num: v} }

// Float returns a number value holding a double.
func Float(v float64) Value { return Value{tag: StorageFloat, num: math.Float64bits(v)} }

// String returns a string value.  The Go string header already shares the
// underlying bytes, so no copy is made regardless of length.
func String(s string) Value { return Value{tag: StorageString, str: s} }

// Number returns a number value whose textual form is authoritative: the
// serializers emit text verbatim and numeric accessors parse it on demand.
// The text is not validated here; serializing a Value constructed from
// invalid number text produces invalid output.
func Number(text string) Value { return Value{tag: StorageNumber, str: text} }

// Empty returns the canonical empty instance of the given logical type:
// the empty string, the number zero, false, null, undefined, or an empty
// container.
func Empty(t Type) Value {
	switch t {
	case TypeNull:
		return Null()
	case TypeBool:
		return Bool(false)
	case TypeNumber:
		return Int(0)
	case TypeString:
		return String("")
	case TypeArray:
		return Value{tag: StorageEmptyArray}
	case TypeObject:
		return Value{tag: StorageEmptyObject}
	default:
		return Value{}
	}
}

// Array returns an array value with the given elements in order.
func Array(items ...Value) Value { return FromValues(items) }

// FromValues returns an array value with a copy of items as its elements.
func FromValues(items []Value) Value { return ownArray(slices.Clone(items)) }

// Object returns an object value with the given members sorted by key.
// Duplicate keys are kept in the body; lookup finds the leftmost.
func Object(members ...Member) Value { return FromMembers(members) }

// FromMembers returns an object value with a copy of members, sorted by key.
func FromMembers(members []Member) Value { return ownObject(slices.Clone(members)) }

// Of builds a container from items in the manner of a literal: if every
// item is a two-element array whose first element is a string, the items
// become the members of an object; otherwise the result is an array.
func Of(items ...Value) Value {
	object := len(items) > 0
	for _, v := range items {
		if v.Type() != TypeArray || v.Len() != 2 || v.Index(0).Type() != TypeString {
			object = false
			break
		}
	}
	if !object {
		return FromValues(items)
	}
	ms := make([]Member, len(items))
	for i, v := range items {
		ms[i] = Member{Key: v.Index(0).Text(), Value: v.Index(1)}
	}
	return ownObject(ms)
}

// ownArray wraps items as an array body without copying.  The caller must
// not retain items.
func ownArray(items []Value) Value {
	if len(items) == 0 {
		return Value{tag: StorageEmptyArray}
	}
	return Value{tag: StorageArray, arr: newContainer(items)}
}

// ownObject sorts members by key and wraps them as an object body without
// copying.  The caller must not retain members.
func ownObject(members []Member) Value {
	if len(members) == 0 {
		return Value{tag: StorageEmptyObject}
	}
	slices.SortStableFunc(members, func(a, b Member) int {
		return strings.Compare(a.Key, b.Key)
	})
	return Value{tag: StorageObject, obj: newContainer(members)}
}

// Type reports the logical type of v.
func (v Value) Type() Type {
	switch v.tag {
	case StorageNull:
		return TypeNull
	case StorageFalse, StorageTrue:
		return TypeBool
	case StorageInt, StorageUint, StorageFloat, StorageNumber:
		return TypeNumber
	case StorageString:
		return TypeString
	case StorageEmptyArray, StorageArray:
		return TypeArray
	case StorageEmptyObject, StorageObject:
		return TypeObject
	case StorageCustom:
		return v.cv.Type()
	default:
		return TypeUndefined
	}
}

// Storage reports the physical storage variant of v.
func (v Value) Storage() Storage { return v.tag }

// Defined reports whether v holds a value, that is, whether it is not
// undefined.
func (v Value) Defined() bool { return v.tag != StorageUndefined }

// HasValue reports whether v is neither undefined nor null.
func (v Value) HasValue() bool { return v.tag != StorageUndefined && v.tag != StorageNull }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	t := v.Type()
	return t == TypeArray || t == TypeObject
}

// Len reports the number of elements of an array, members of an object, or
// items of a container-like custom value.  It is zero for all other values.
func (v Value) Len() int {
	switch v.tag {
	case StorageArray:
		return v.arr.len()
	case StorageObject:
		return v.obj.len()
	case StorageCustom:
		if c, ok := v.cv.(Indexer); ok {
			return c.Len()
		}
	}
	return 0
}

// IsEmpty reports whether v is an empty container.  It is true for every
// non-container value.
func (v Value) IsEmpty() bool { return v.Len() == 0 }

// String renders a human-oriented projection of v: scalars render their
// textual form, containers render as generic placeholders.  It is not the
// JSON encoding; use Stringify for that.
func (v Value) String() string {
	switch v.tag {
	case StorageUndefined:
		return undefinedText
	case StorageNull:
		return nullText
	case StorageFalse:
		return falseText
	case StorageTrue:
		return trueText
	case StorageInt:
		return strconv.FormatInt(int64(v.num), 10)
	case StorageUint:
		return strconv.FormatUint(v.num, 10)
	case StorageFloat:
		return string(appendFloat(nil, math.Float64frombits(v.num)))
	case StorageString, StorageNumber:
		return v.str
	case StorageEmptyArray, StorageArray:
		return "[array]"
	case StorageEmptyObject, StorageObject:
		return "{object}"
	case StorageCustom:
		return v.cv.String()
	default:
		return "invalid"
	}
}

// Text returns the text content of a string or number value.  Booleans,
// null, and undefined return their canonical words; a custom value may
// provide text via the Texter interface.  All other values return "".
func (v Value) Text() string {
	switch v.tag {
	case StorageString, StorageNumber:
		return v.str
	case StorageTrue:
		return trueText
	case StorageFalse:
		return falseText
	case StorageNull:
		return nullText
	case StorageUndefined:
		return undefinedText
	case StorageCustom:
		if t, ok := v.cv.(Texter); ok {
			return t.Text()
		}
	}
	return ""
}

// elements returns a read-only view of the element sequence of v: the
// elements of an array, or the member values of an object.  The result
// aliases the shared body and must not be modified.
func (v Value) elements() []Value {
	switch v.tag {
	case StorageArray:
		return v.arr.elems
	case StorageObject:
		vals := make([]Value, len(v.obj.elems))
		for i, m := range v.obj.elems {
			vals[i] = m.Value
		}
		return vals
	}
	return nil
}

// values returns the array body of v, or nil if v is not an array.
// The result aliases the shared body and must not be modified.
func (v Value) values() []Value {
	if v.tag == StorageArray {
		return v.arr.elems
	}
	return nil
}

// members returns the sorted member sequence of v, or nil if v is not an
// object.  The result aliases the shared body and must not be modified.
func (v Value) members() []Member {
	if v.tag == StorageObject {
		return v.obj.elems
	}
	return nil
}
