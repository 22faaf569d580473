// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jval/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{`a"b`, `a\"b`},
		{`a\b`, `a\\b`},
		{"\b\f\n\r\t", `\b\f\n\r\t`},
		{"nul\x00mid", `nul\u0000mid`},
		{"\x01\x1f", `\u0001\u001F`},
		{"čeština 😀", "čeština 😀"}, // multibyte passes through
	}
	for _, tc := range tests {
		if got := string(escape.Quote(nil, mem.S(tc.input))); got != tc.want {
			t.Errorf("Quote(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}

	// Quote appends to the buffer it is given.
	buf := []byte("pre:")
	if got := string(escape.Quote(buf, mem.S("x"))); got != "pre:x" {
		t.Errorf("Quote append: got %q, want %q", got, "pre:x")
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{`a\"b`, `a"b`},
		{`a\\b`, `a\b`},
		{`a\/b`, "a/b"},
		{`\b\f\n\r\t`, "\b\f\n\r\t"},
		{`\u0041`, "A"},
		{`\u00e9`, "é"},
		{`\u0020`, " "},
		{`\ud83d\ude00`, "😀"}, // surrogate pair combines
		{`x\ud83d\ude04y`, "x😄y"},
		{`\q`, ""},               // unknown escape is dropped
		{`a\qb`, "ab"},           // and parsing continues
		{`tail\`, "tail"},        // incomplete escape at the end is dropped
		{`\ud83dx`, "x"},        // unpaired high surrogate is dropped
		{`mixed \u0041\n plain`, "mixed A\n plain"},
	}
	for _, tc := range tests {
		if got := string(escape.Unquote(mem.S(tc.input))); got != tc.want {
			t.Errorf("Unquote(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestQuoteUnquote(t *testing.T) {
	inputs := []string{
		"",
		"round trip",
		"with \"quotes\" and \\slashes\\",
		"controls \b\f\n\r\t\x00\x1f",
		"unicode čeština €¥£ 😀",
	}
	for _, s := range inputs {
		enc := escape.Quote(nil, mem.S(s))
		if got := string(escape.Unquote(mem.B(enc))); got != s {
			t.Errorf("round trip of %q: encoded %q, decoded %q", s, enc, got)
		}
	}
}
