// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789ABCDEF")

// Quote appends the JSON string encoding of src to dst and returns the
// extended buffer.  Quotation marks, backslashes, and the named control
// characters get two-character escapes; any other byte below 0x20 gets a
// \u00XX escape.  All remaining bytes pass through unchanged, so UTF-8
// content is never re-escaped.  The enclosing quotation marks are not
// added here.
func Quote(dst []byte, src mem.RO) []byte {
	for i := 0; i < src.Len(); i++ {
		c := src.At(i)
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c < ' ':
			if b := controlEsc[c]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[c>>4], hexDigit[c&15])
			}
		default:
			dst = append(dst, c)
		}
	}
	return dst
}
