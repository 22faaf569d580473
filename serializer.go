// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"math"
	"strconv"

	"github.com/creachadair/jval/internal/escape"

	"go4.org/mem"
)

// A Serializer renders a Value as textual JSON in chunks.  Each call to
// Read produces the next chunk of output; an empty chunk means the value
// has been fully rendered.  A Serializer must be driven by at most one
// goroutine at a time.
//
// Undefined values inside arrays and objects are omitted along with their
// separators; a top-level undefined renders as null.  Object members emit
// in sorted key order.
type Serializer struct {
	stack []serialFrame
	out   []byte
	memo  map[CustomValue]Value
}

// NewSerializer constructs a Serializer rendering v.
func NewSerializer(v Value) *Serializer {
	return &Serializer{stack: []serialFrame{&valueFrame{v: v}}}
}

// Read returns the next chunk of output, or an empty chunk when rendering
// is complete.  The chunk aliases the Serializer's internal buffer and is
// only valid until the next call of Read.
func (s *Serializer) Read() []byte {
	s.out = s.out[:0]
	s.next()
	return s.out
}

type serialFrame interface {
	emit(s *Serializer)
}

func (s *Serializer) next() {
	if len(s.stack) == 0 {
		return
	}
	s.stack[len(s.stack)-1].emit(s)
}

func (s *Serializer) pop() { s.stack = s.stack[:len(s.stack)-1] }

// valueFrame renders a single pending value.
type valueFrame struct {
	v Value
}

func (f *valueFrame) emit(s *Serializer) {
	s.pop()
	s.renderValue(f.v)
}

// arrayCursor walks the remaining elements of an array.
type arrayCursor struct {
	items []Value
	pos   int
}

func (f *arrayCursor) emit(s *Serializer) {
	for f.pos < len(f.items) {
		v := f.items[f.pos]
		f.pos++
		if !v.Defined() {
			continue
		}
		s.out = append(s.out, ',')
		s.renderValue(v)
		return
	}
	s.out = append(s.out, ']')
	s.pop()
	s.next()
}

// objectCursor walks the remaining members of an object.
type objectCursor struct {
	members []Member
	pos     int
}

func (f *objectCursor) emit(s *Serializer) {
	for f.pos < len(f.members) {
		m := f.members[f.pos]
		f.pos++
		if !m.Value.Defined() {
			continue
		}
		s.out = append(s.out, ',')
		s.renderKey(m.Key)
		s.out = append(s.out, ':')
		s.renderValue(m.Value)
		return
	}
	s.out = append(s.out, '}')
	s.pop()
	s.next()
}

func (s *Serializer) renderKey(key string) {
	s.out = append(s.out, '"')
	s.out = escape.Quote(s.out, mem.S(key))
	s.out = append(s.out, '"')
}

func (s *Serializer) renderValue(v Value) {
	switch v.tag {
	case StorageUndefined:
		// Containers skip undefined entries before rendering, so this is
		// only reachable at the top level.
		s.out = append(s.out, nullText...)
	case StorageNull:
		s.out = append(s.out, nullText...)
	case StorageFalse:
		s.out = append(s.out, falseText...)
	case StorageTrue:
		s.out = append(s.out, trueText...)
	case StorageInt:
		s.out = strconv.AppendInt(s.out, int64(v.num), 10)
	case StorageUint:
		s.out = strconv.AppendUint(s.out, v.num, 10)
	case StorageFloat:
		s.renderFloat(math.Float64frombits(v.num))
	case StorageNumber:
		s.out = append(s.out, v.str...)
	case StorageString:
		s.renderKey(v.str)
	case StorageEmptyArray:
		s.out = append(s.out, '[', ']')
	case StorageEmptyObject:
		s.out = append(s.out, '{', '}')
	case StorageArray:
		s.out = append(s.out, '[')
		items := v.arr.elems
		for i, e := range items {
			if e.Defined() {
				s.stack = append(s.stack, &arrayCursor{items: items, pos: i + 1})
				s.renderValue(e)
				return
			}
		}
		s.out = append(s.out, ']')
	case StorageObject:
		s.out = append(s.out, '{')
		members := v.obj.elems
		for i, m := range members {
			if m.Value.Defined() {
				s.renderKey(m.Key)
				s.out = append(s.out, ':')
				s.stack = append(s.stack, &objectCursor{members: members, pos: i + 1})
				s.renderValue(m.Value)
				return
			}
		}
		s.out = append(s.out, '}')
	case StorageCustom:
		s.renderValue(s.project(v.cv))
	}
}

// project returns the JSON projection of a custom value, memoized by
// identity for the lifetime of the Serializer.
func (s *Serializer) project(cv CustomValue) Value {
	if j, ok := s.memo[cv]; ok {
		return j
	}
	if s.memo == nil {
		s.memo = make(map[CustomValue]Value)
	}
	j := cv.ToJSON()
	s.memo[cv] = j
	return j
}

// renderFloat prints a double.  NaN renders as null and the infinities as
// the quoted literals "∞" and "-∞".  Finite values print with at most 12
// fractional digits, switching to e-notation when the decimal exponent
// falls outside [-2, 8]; magnitudes below the smallest normal double
// print as 0.
func (s *Serializer) renderFloat(v float64) {
	switch {
	case math.IsNaN(v):
		s.out = append(s.out, nullText...)
		return
	case math.IsInf(v, 1):
		s.out = append(s.out, '"')
		s.out = append(s.out, infinityText...)
		s.out = append(s.out, '"')
		return
	case math.IsInf(v, -1):
		s.out = append(s.out, '"')
		s.out = append(s.out, negInfinity...)
		s.out = append(s.out, '"')
		return
	}
	s.out = appendFloat(s.out, v)
}

// minNormal is the smallest positive normal double, 2^-1022.
const minNormal = 2.2250738585072014e-308

func appendFloat(out []byte, v float64) []byte {
	if v < 0 {
		out = append(out, '-')
		v = -v
	}
	if v < minNormal {
		return append(out, '0')
	}

	exp := int(math.Floor(math.Log10(v)))
	// Log10 can land a hair off for exact powers of ten.
	if math.Pow(10, float64(exp+1)) <= v {
		exp++
	} else if math.Pow(10, float64(exp)) > v {
		exp--
	}
	hasExp := exp < -2 || exp > 8
	if hasExp {
		v /= math.Pow(10, float64(exp))
		if v >= 10 {
			v /= 10
			exp++
		} else if v < 1 {
			v *= 10
			exp--
		}
	}

	ip := math.Floor(v)
	frac := v - ip

	// At most 12 fractional digits, rounded at the last place so that a
	// value sitting just below its decimal form does not smear into a run
	// of nines.  A remainder below 1e-6 prints no fraction at all.
	var fracDigits []byte
	if frac >= 1e-6 {
		d := int64(math.Round(frac * 1e12))
		if d >= 1e12 {
			ip++
		} else if d > 0 {
			var db [12]byte
			for i := 11; i >= 0; i-- {
				db[i] = byte('0' + d%10)
				d /= 10
			}
			n := 12
			for n > 0 && db[n-1] == '0' {
				n--
			}
			fracDigits = db[:n]
		}
	}
	out = strconv.AppendInt(out, int64(ip), 10)
	if len(fracDigits) != 0 {
		out = append(out, '.')
		out = append(out, fracDigits...)
	}
	if hasExp {
		out = append(out, 'e')
		if exp < 0 {
			out = append(out, '-')
			exp = -exp
		} else {
			out = append(out, '+')
		}
		out = strconv.AppendInt(out, int64(exp), 10)
	}
	return out
}

// Stringify renders v as a complete textual JSON string.
func Stringify(v Value) string {
	s := NewSerializer(v)
	var buf []byte
	for {
		chunk := s.Read()
		if len(chunk) == 0 {
			return string(buf)
		}
		buf = append(buf, chunk...)
	}
}
