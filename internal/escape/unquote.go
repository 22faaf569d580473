// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import "go4.org/mem"

// Unquote decodes a byte slice containing the JSON encoding of a string.
// The input must have the enclosing double quotation marks already
// removed.
//
// Escape sequences are replaced with their unescaped equivalents.  The
// \uXXXX form combines UTF-16 surrogate pairs into a single code point and
// emits UTF-8.  Escapes outside the JSON repertoire, incomplete trailing
// escapes, and unpaired high surrogates are consumed without producing
// output.
func Unquote(src mem.RO) []byte {
	if mem.IndexByte(src, '\\') < 0 {
		return mem.Append(make([]byte, 0, src.Len()), src)
	}
	out := make([]byte, 0, src.Len())
	n := src.Len()
	for i := 0; i < n; i++ {
		c := src.At(i)
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= n {
			break
		}
		switch c = src.At(i); c {
		case '"', '\\', '/':
			out = append(out, c)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			cp, next := hex4(src, i+1)
			if cp >= 0xD800 && cp <= 0xDBFF {
				// High surrogate: a \uXXXX low surrogate must follow.
				lo, after := -1, next
				if next+1 < n && src.At(next) == '\\' && src.At(next+1) == 'u' {
					lo, after = hex4(src, next+2)
				}
				if lo >= 0xDC00 && lo <= 0xDFFF {
					cp = 0x10000 + ((cp - 0xD800) << 10) + (lo - 0xDC00)
					next = after
				} else {
					i = next - 1
					continue
				}
			}
			out = appendRune(out, cp)
			i = next - 1
		default:
			// Unknown escape: consumed, no output.
		}
	}
	return out
}

// hex4 reads up to four hex digits of src starting at i, treating any
// non-hex byte as zero, and returns the accumulated value and the position
// after the digits.
func hex4(src mem.RO, i int) (cp, next int) {
	for k := 0; k < 4 && i < src.Len(); k++ {
		cp = cp<<4 | hexVal(src.At(i))
		i++
	}
	return cp, i
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 0
}

// appendRune appends the UTF-8 encoding of the code point cp.
func appendRune(out []byte, cp int) []byte {
	switch {
	case cp <= 0x7F:
		return append(out, byte(cp))
	case cp <= 0x7FF:
		return append(out, byte(0xC0|cp>>6), byte(0x80|cp&0x3F))
	case cp <= 0xFFFF:
		return append(out, byte(0xE0|cp>>12), byte(0x80|cp>>6&0x3F), byte(0x80|cp&0x3F))
	case cp <= 0x10FFFF:
		return append(out, byte(0xF0|cp>>18), byte(0x80|cp>>12&0x3F), byte(0x80|cp>>6&0x3F), byte(0x80|cp&0x3F))
	}
	return out
}
