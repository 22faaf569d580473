// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import "math"

// Equal reports whether v and o hold equal payloads.  Undefined compares
// unequal to everything, including undefined.  String and number text
// compare as bytes regardless of the numeric flag; integer storages
// compare numerically across signedness; integers and doubles never
// compare equal to each other.  Arrays compare element-wise and objects as
// ordered (key, value) sequences.  Custom values compare by identity
// unless they implement Equaler.
func (v Value) Equal(o Value) bool {
	ka, kb := v.eqKind(), o.eqKind()
	if ka == eqUndefined || kb == eqUndefined || ka != kb {
		return false
	}
	switch ka {
	case eqNull:
		return true
	case eqBool:
		return v.tag == o.tag
	case eqText:
		return v.str == o.str
	case eqInt:
		return intEqual(v, o)
	case eqFloat:
		return math.Float64frombits(v.num) == math.Float64frombits(o.num)
	case eqArray:
		a, b := v.values(), o.values()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case eqObject:
		a, b := v.members(), o.members()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Key != b[i].Key || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true
	case eqCustom:
		if e, ok := v.cv.(Equaler); ok {
			return e.Equal(o.cv)
		}
		return v.cv == o.cv
	}
	return false
}

// eqKind groups storage variants into comparison alternatives.
type eqKind byte

const (
	eqUndefined eqKind = iota
	eqNull
	eqBool
	eqInt
	eqFloat
	eqText
	eqArray
	eqObject
	eqCustom
)

func (v Value) eqKind() eqKind {
	switch v.tag {
	case StorageNull:
		return eqNull
	case StorageFalse, StorageTrue:
		return eqBool
	case StorageInt, StorageUint:
		return eqInt
	case StorageFloat:
		return eqFloat
	case StorageString, StorageNumber:
		return eqText
	case StorageEmptyArray, StorageArray:
		return eqArray
	case StorageEmptyObject, StorageObject:
		return eqObject
	case StorageCustom:
		return eqCustom
	default:
		return eqUndefined
	}
}

// intEqual compares two integer-storage values numerically.
func intEqual(a, b Value) bool {
	an, bn := a.num, b.num
	if a.tag == StorageInt && int64(an) < 0 {
		return b.tag == StorageInt && an == bn
	}
	if b.tag == StorageInt && int64(bn) < 0 {
		return false
	}
	return an == bn
}
