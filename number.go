// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"math"
	"strconv"

	"go4.org/mem"
)

// Bool reports whether v is the boolean true.
func (v Value) Bool() bool { return v.tag == StorageTrue }

// Int returns the value of v as a signed integer.  Doubles truncate toward
// zero; string and number text is parsed as a leading decimal integer in
// the manner of strtol, so "4" and "4.25" both read as 4.  Values with no
// numeric reading return 0.
func (v Value) Int() int64 {
	switch v.tag {
	case StorageInt, StorageUint:
		return int64(v.num)
	case StorageFloat:
		return int64(math.Float64frombits(v.num))
	case StorageString, StorageNumber:
		return parseIntPrefix(v.str)
	}
	return 0
}

// Uint returns the value of v as an unsigned integer, with the same text
// handling as Int.
func (v Value) Uint() uint64 {
	switch v.tag {
	case StorageInt, StorageUint:
		return v.num
	case StorageFloat:
		return uint64(math.Float64frombits(v.num))
	case StorageString, StorageNumber:
		return uint64(parseIntPrefix(v.str))
	}
	return 0
}

// Float returns the value of v as a double.  Number text parses on demand;
// the literals "∞" and "-∞" read as the infinities, and any other string
// that does not parse fully as a number reads as NaN.  Booleans, null,
// undefined, and containers read as 0.
func (v Value) Float() float64 {
	switch v.tag {
	case StorageInt:
		return float64(int64(v.num))
	case StorageUint:
		return float64(v.num)
	case StorageFloat:
		return math.Float64frombits(v.num)
	case StorageString, StorageNumber:
		return parseFloatText(v.str)
	}
	return 0
}

// BoolOr returns the boolean value of v, or defval if v is not a boolean.
func (v Value) BoolOr(defval bool) bool {
	if v.Type() == TypeBool {
		return v.Bool()
	}
	return defval
}

// IntOr returns the integer value of v, or defval if v is not a number.
func (v Value) IntOr(defval int64) int64 {
	if v.Type() == TypeNumber {
		return v.Int()
	}
	return defval
}

// UintOr returns the unsigned value of v, or defval if v is not a number.
func (v Value) UintOr(defval uint64) uint64 {
	if v.Type() == TypeNumber {
		return v.Uint()
	}
	return defval
}

// FloatOr returns the double value of v, or defval if v is not a number.
func (v Value) FloatOr(defval float64) float64 {
	if v.Type() == TypeNumber {
		return v.Float()
	}
	return defval
}

// TextOr returns the text content of v, or defval if v is not a string.
func (v Value) TextOr(defval string) string {
	if v.Type() == TypeString {
		return v.Text()
	}
	return defval
}

// parseIntPrefix parses the longest leading run of s that forms an
// optionally signed decimal integer.  Out-of-range values saturate at the
// int64 bounds; a missing integer prefix yields 0.
func parseIntPrefix(s string) int64 {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if digits == 0 {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Saturated: ParseInt reports the clamped bound alongside ErrRange.
		return v
	}
	return v
}

// parseFloatText converts stored number text to a double.
func parseFloatText(s string) float64 {
	switch s {
	case "":
		return math.NaN()
	case infinityText:
		return math.Inf(1)
	case negInfinity:
		return math.Inf(-1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// isValidNumber reports whether text is an acceptable JSON number: an
// optionally signed integer, decimal, or scientific form with no redundant
// leading zeroes, or the literal "∞" with optional sign.  A leading "+" is
// a documented deviation from the JSON grammar.
func isValidNumber(text mem.RO) bool {
	i, n := 0, text.Len()
	if n == 0 {
		return false
	}
	if b := text.At(0); b == '+' || b == '-' {
		i++
		if i == n {
			return false
		}
	}
	if text.SliceFrom(i).Equal(mem.S(infinityText)) {
		return true
	}

	// Integer part: a single 0, or a nonzero digit run.
	if text.At(i) == '0' {
		i++
	} else if isDigit(text.At(i)) {
		for i < n && isDigit(text.At(i)) {
			i++
		}
	} else {
		return false
	}

	// Fraction: a point followed by at least one digit.
	if i < n && text.At(i) == '.' {
		i++
		if i == n || !isDigit(text.At(i)) {
			return false
		}
		for i < n && isDigit(text.At(i)) {
			i++
		}
	}

	// Exponent: e or E, an optional sign, at least one digit.
	if i < n && (text.At(i) == 'e' || text.At(i) == 'E') {
		i++
		if i < n && (text.At(i) == '+' || text.At(i) == '-') {
			i++
		}
		if i == n || !isDigit(text.At(i)) {
			return false
		}
		for i < n && isDigit(text.At(i)) {
			i++
		}
	}
	return i == n
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
