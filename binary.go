// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"encoding/binary"
	"math"
)

// The binary format is a TLV encoding.  Every value begins with a single
// header byte holding a 5-bit major tag and a 3-bit argument:
//
//	00000 AAA  simple       A: 0=null, 1=true, 2=false, 3=double, 7=undefined
//	0001S AAA  integer      S=0 positive, S=1 negative; A+1 magnitude bytes (BE)
//	00100 AAA  string       A+1 length-prefix bytes (BE), then the UTF-8 bytes
//	00101 AAA  number text  same as string, flagged numeric
//	00110 AAA  array        A+1 count-prefix bytes (BE), then that many values
//	00111 AAA  object       same, then that many (string key, value) pairs
//
// A double header is followed by the 8 bytes of the IEEE-754 value in
// little-endian order, regardless of host.  Unlike the textual format,
// undefined values are encoded (header 0x07), never elided.
const (
	binMajorMask = 0xF8
	binSizeMask  = 0x07

	binSimple = 0x00
	binPosInt = 0x10
	binNegInt = 0x18
	binString = 0x20
	binNumber = 0x28
	binArray  = 0x30
	binObject = 0x38

	// Arguments of the simple major.
	binNull      = 0x00
	binTrue      = 0x01
	binFalse     = 0x02
	binDouble    = 0x03
	binUndefined = 0x07
)

// A BinaryParser is an incremental parser for the binary format, with the
// same driving protocol as Parser.
type BinaryParser struct {
	machine
}

// NewBinaryParser constructs a parser for the binary format.  The preproc
// hook has the same contract as in NewParser.
func NewBinaryParser(preproc func(Value) Value) *BinaryParser {
	p := &BinaryParser{machine{preproc: preproc}}
	p.push(&binDetectFrame{})
	return p
}

// binDetectFrame reads one header byte and dispatches on the major tag.
type binDetectFrame struct{}

func (binDetectFrame) step(m *machine) bool {
	if m.pos >= len(m.buf) {
		return true
	}
	h := m.buf[m.pos]
	m.pos++
	arg := int(h & binSizeMask)
	switch h & binMajorMask {
	case binSimple:
		switch h {
		case binNull:
			m.emit(Null())
		case binTrue:
			m.emit(Bool(true))
		case binFalse:
			m.emit(Bool(false))
		case binUndefined:
			m.emit(Value{})
		case binDouble:
			m.push(&binDoubleFrame{})
			return true
		default:
			return m.fail()
		}
		return false
	case binPosInt:
		m.push(&binIntFrame{need: arg + 1})
	case binNegInt:
		m.push(&binIntFrame{need: arg + 1, neg: true})
	case binString:
		m.push(&binStringFrame{sizeNeed: arg + 1})
	case binNumber:
		m.push(&binStringFrame{sizeNeed: arg + 1, isNumber: true})
	case binArray:
		m.push(&binArrayFrame{sizeNeed: arg + 1})
	case binObject:
		m.push(&binObjectFrame{sizeNeed: arg + 1, readingKey: true})
	default:
		return m.fail()
	}
	return true
}

func (binDetectFrame) accept(m *machine, v Value) bool {
	m.emit(v)
	return false
}

// binDoubleFrame collects the 8 bytes of a double.
type binDoubleFrame struct {
	data [8]byte
	n    int
}

func (f *binDoubleFrame) step(m *machine) bool {
	for f.n < 8 {
		if m.pos >= len(m.buf) {
			return true
		}
		f.data[f.n] = m.buf[m.pos]
		f.n++
		m.pos++
	}
	m.result = Float(math.Float64frombits(binary.LittleEndian.Uint64(f.data[:])))
	return false
}

func (f *binDoubleFrame) accept(m *machine, v Value) bool { return false }

// binIntFrame collects a big-endian integer magnitude.
type binIntFrame struct {
	neg  bool
	need int
	mag  uint64
}

func (f *binIntFrame) step(m *machine) bool {
	for f.need > 0 {
		if m.pos >= len(m.buf) {
			return true
		}
		f.mag = f.mag<<8 | uint64(m.buf[m.pos])
		f.need--
		m.pos++
	}
	switch {
	case f.neg:
		m.result = Int(-int64(f.mag))
	case f.mag > math.MaxInt64:
		m.result = Uint(f.mag)
	default:
		m.result = Int(int64(f.mag))
	}
	return false
}

func (f *binIntFrame) accept(m *machine, v Value) bool { return false }

// binStringFrame collects a length prefix, then that many payload bytes.
type binStringFrame struct {
	sizeNeed int
	size     uint64
	isNumber bool
	data     []byte
}

func (f *binStringFrame) step(m *machine) bool {
	for f.sizeNeed > 0 {
		if m.pos >= len(m.buf) {
			return true
		}
		f.size = f.size<<8 | uint64(m.buf[m.pos])
		f.sizeNeed--
		m.pos++
	}
	for uint64(len(f.data)) < f.size {
		if m.pos >= len(m.buf) {
			return true
		}
		take := min(len(m.buf)-m.pos, int(f.size-uint64(len(f.data))))
		f.data = append(f.data, m.buf[m.pos:m.pos+take]...)
		m.pos += take
	}
	if f.isNumber {
		m.result = Number(string(f.data))
	} else {
		m.result = String(string(f.data))
	}
	return false
}

func (f *binStringFrame) accept(m *machine, v Value) bool { return false }

// binArrayFrame collects a count prefix, then that many nested values.
type binArrayFrame struct {
	sizeNeed int
	count    uint64
	items    []Value
}

func (f *binArrayFrame) step(m *machine) bool {
	for f.sizeNeed > 0 {
		if m.pos >= len(m.buf) {
			return true
		}
		f.count = f.count<<8 | uint64(m.buf[m.pos])
		f.sizeNeed--
		m.pos++
	}
	if uint64(len(f.items)) == f.count {
		m.result = ownArray(f.items)
		f.items = nil
		return false
	}
	m.push(&binDetectFrame{})
	return true
}

func (f *binArrayFrame) accept(m *machine, v Value) bool {
	f.items = append(f.items, v)
	if uint64(len(f.items)) == f.count {
		m.result = ownArray(f.items)
		f.items = nil
		return false
	}
	return true
}

// binObjectFrame collects a count prefix, then that many key-value pairs.
type binObjectFrame struct {
	sizeNeed   int
	count      uint64
	readingKey bool
	key        string
	members    []Member
}

func (f *binObjectFrame) step(m *machine) bool {
	for f.sizeNeed > 0 {
		if m.pos >= len(m.buf) {
			return true
		}
		f.count = f.count<<8 | uint64(m.buf[m.pos])
		f.sizeNeed--
		m.pos++
	}
	if uint64(len(f.members)) == f.count && f.readingKey {
		m.result = ownObject(f.members)
		f.members = nil
		return false
	}
	m.push(&binDetectFrame{})
	return true
}

func (f *binObjectFrame) accept(m *machine, v Value) bool {
	if f.readingKey {
		if v.Type() != TypeString {
			return m.fail()
		}
		f.key = v.Text()
		f.readingKey = false
	} else {
		f.members = append(f.members, Member{Key: f.key, Value: v})
		f.readingKey = true
		if uint64(len(f.members)) == f.count {
			m.result = ownObject(f.members)
			f.members = nil
			return false
		}
	}
	return true
}

// A BinarySerializer renders a Value in the binary format in chunks, with
// the same driving protocol as Serializer.  Undefined values are encoded,
// not elided, so the full value space round-trips.
type BinarySerializer struct {
	stack []binSerialFrame
	out   []byte
	memo  map[CustomValue]Value
}

// NewBinarySerializer constructs a BinarySerializer rendering v.
func NewBinarySerializer(v Value) *BinarySerializer {
	return &BinarySerializer{stack: []binSerialFrame{&binValueFrame{v: v}}}
}

// Read returns the next chunk of output, or an empty chunk when rendering
// is complete.  The chunk aliases the internal buffer and is only valid
// until the next call of Read.
func (s *BinarySerializer) Read() []byte {
	s.out = s.out[:0]
	s.next()
	return s.out
}

type binSerialFrame interface {
	emit(s *BinarySerializer)
}

func (s *BinarySerializer) next() {
	if len(s.stack) == 0 {
		return
	}
	s.stack[len(s.stack)-1].emit(s)
}

func (s *BinarySerializer) pop() { s.stack = s.stack[:len(s.stack)-1] }

type binValueFrame struct {
	v Value
}

func (f *binValueFrame) emit(s *BinarySerializer) {
	s.pop()
	s.renderValue(f.v)
}

type binArrayCursor struct {
	items []Value
	pos   int
}

func (f *binArrayCursor) emit(s *BinarySerializer) {
	if f.pos >= len(f.items) {
		s.pop()
		s.next()
		return
	}
	v := f.items[f.pos]
	f.pos++
	s.renderValue(v)
}

type binObjectCursor struct {
	members []Member
	pos     int
}

func (f *binObjectCursor) emit(s *BinarySerializer) {
	if f.pos >= len(f.members) {
		s.pop()
		s.next()
		return
	}
	m := f.members[f.pos]
	f.pos++
	s.renderText(binString, m.Key)
	s.renderValue(m.Value)
}

func (s *BinarySerializer) renderValue(v Value) {
	switch v.tag {
	case StorageUndefined:
		s.out = append(s.out, binUndefined)
	case StorageNull:
		s.out = append(s.out, binNull)
	case StorageFalse:
		s.out = append(s.out, binFalse)
	case StorageTrue:
		s.out = append(s.out, binTrue)
	case StorageInt:
		if n := int64(v.num); n < 0 {
			s.renderInt(binNegInt, negMagnitude(n))
		} else {
			s.renderInt(binPosInt, uint64(n))
		}
	case StorageUint:
		s.renderInt(binPosInt, v.num)
	case StorageFloat:
		s.out = append(s.out, binDouble)
		s.out = binary.LittleEndian.AppendUint64(s.out, v.num)
	case StorageString:
		s.renderText(binString, v.str)
	case StorageNumber:
		s.renderText(binNumber, v.str)
	case StorageEmptyArray:
		s.out = append(s.out, binArray, 0)
	case StorageEmptyObject:
		s.out = append(s.out, binObject, 0)
	case StorageArray:
		items := v.arr.elems
		s.renderHeader(binArray, uint64(len(items)))
		s.stack = append(s.stack, &binArrayCursor{items: items, pos: 1})
		s.renderValue(items[0])
	case StorageObject:
		members := v.obj.elems
		s.renderHeader(binObject, uint64(len(members)))
		s.stack = append(s.stack, &binObjectCursor{members: members, pos: 1})
		s.renderText(binString, members[0].Key)
		s.renderValue(members[0].Value)
	case StorageCustom:
		s.renderValue(s.project(v.cv))
	}
}

func (s *BinarySerializer) project(cv CustomValue) Value {
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

// renderHeader emits a header byte with the minimal big-endian encoding of
// n as its argument payload.
func (s *BinarySerializer) renderHeader(major byte, n uint64) {
	nb := byteLen(n)
	s.out = append(s.out, major|byte(nb-1))
	for i := nb - 1; i >= 0; i-- {
		s.out = append(s.out, byte(n>>(8*i)))
	}
}

func (s *BinarySerializer) renderInt(major byte, mag uint64) {
	s.renderHeader(major, mag)
}

func (s *BinarySerializer) renderText(major byte, text string) {
	s.renderHeader(major, uint64(len(text)))
	s.out = append(s.out, text...)
}

// byteLen reports the number of bytes needed for the big-endian encoding
// of n, at least 1.
func byteLen(n uint64) int {
	nb := 1
	for n > 0xFF {
		n >>= 8
		nb++
	}
	return nb
}

// negMagnitude returns the magnitude of a negative int64 without
// overflowing at the minimum value.
func negMagnitude(n int64) uint64 { return uint64(-(n + 1)) + 1 }

// Binarize renders v as a complete binary encoding.
func Binarize(v Value) []byte {
	s := NewBinarySerializer(v)
	var buf []byte
	for {
		chunk := s.Read()
		if len(chunk) == 0 {
			return buf
		}
		buf = append(buf, chunk...)
	}
}

// Unbinarize parses a single value from the binary encoding of data.
// Input beyond the first complete value is ignored.  On malformed or
// truncated input the error is a *ParseError carrying the offset of the
// first unprocessed byte.
func Unbinarize(data []byte) (Value, error) {
	p := NewBinaryParser(nil)
	if p.Write(data) {
		return Value{}, &ParseError{Offset: len(data)}
	}
	if p.err {
		return Value{}, &ParseError{Offset: len(data) - len(p.Unprocessed())}
	}
	return p.Result(), nil
}
