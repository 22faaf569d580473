// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import (
	"errors"
	"fmt"

	"github.com/creachadair/jval/internal/escape"
	"github.com/tailscale/hujson"

	"go4.org/mem"
)

// ErrSyntax is reported by the Err method of a parser whose input did not
// match the grammar of its format.
var ErrSyntax = errors.New("syntax error")

// A ParseError is the error reported by the one-shot parsing façades.  The
// offset is the position of the first unprocessed input byte.
type ParseError struct {
	Offset int
}

// Error satisfies the error interface.
func (e *ParseError) Error() string { return fmt.Sprintf("parse error at offset %d", e.Offset) }

// A machine is the pushdown core shared by the text and binary parsers: a
// frame stack driven by caller-supplied input chunks.  The top frame
// consumes input until its production completes, leaving the finished
// value in result for the frame below to collect.
type machine struct {
	preproc func(Value) Value
	stack   []frame
	buf     []byte // current input chunk
	pos     int    // cursor within buf
	result  Value
	err     bool
}

// A frame holds the partial state of one grammar production.
//
// step consumes input from the machine and reports whether the frame needs
// more; false means the production finished (result installed) or failed
// (the error flag set).  accept collects the finished value of a child
// production and reports whether this frame continues; false propagates
// completion downward.
type frame interface {
	step(m *machine) bool
	accept(m *machine, v Value) bool
}

// Write feeds a chunk of input to the machine and reports whether more
// input is required.  When it returns false, the caller can inspect the
// error flag and result, and any tail of the chunk beyond the last
// consumed byte remains available as unprocessed data.
func (m *machine) Write(chunk []byte) bool {
	m.buf, m.pos = chunk, 0
	for m.pos < len(m.buf) {
		if !m.cycle() {
			return false
		}
	}
	return len(m.stack) > 0
}

func (m *machine) cycle() bool {
	if len(m.stack) == 0 {
		return false
	}
	more := m.stack[len(m.stack)-1].step(m)
	for !more {
		if m.err {
			return false
		}
		m.stack = m.stack[:len(m.stack)-1]
		if len(m.stack) == 0 {
			return false
		}
		more = m.stack[len(m.stack)-1].accept(m, m.result)
	}
	return true
}

func (m *machine) push(f frame) { m.stack = append(m.stack, f) }

func (m *machine) fail() bool {
	m.err = true
	return false
}

// Err reports whether the machine has stopped on malformed input.
func (m *machine) Err() error {
	if m.err {
		return ErrSyntax
	}
	return nil
}

// Result returns the parsed value.  While parsing is incomplete the result
// is unspecified; after an error it is undefined.
func (m *machine) Result() Value {
	if m.err {
		return Value{}
	}
	return m.result
}

// Unprocessed returns the tail of the most recent chunk beyond the last
// consumed byte.  It aliases the chunk passed to Write.
func (m *machine) Unprocessed() []byte { return m.buf[m.pos:] }

// emit installs a finished value, applying the preprocessor hook.
func (m *machine) emit(v Value) {
	if m.preproc != nil {
		v = m.preproc(v)
	}
	m.result = v
}

// A Parser is an incremental parser for the textual JSON format.  Feed it
// input with Write until it reports that no more is required, then collect
// the result.  A Parser handles a single value; create a new one for the
// next.  A Parser must be driven by at most one goroutine at a time.
type Parser struct {
	machine
}

// NewParser constructs a parser for the textual JSON format.  If preproc
// is non-nil it is applied to every finished value, in depth-first
// left-to-right source order, before the value is installed in its parent;
// its return value is installed instead.
func NewParser(preproc func(Value) Value) *Parser {
	p := &Parser{machine{preproc: preproc}}
	p.push(&detectFrame{})
	return p
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// numberByte reports whether c may appear in the body of a number run.
// The bytes of "∞" are included so the unquoted infinity literal parses
// through the number state.
func numberByte(c byte) bool {
	return isDigit(c) || c == '+' || c == '-' || c == 'e' || c == 'E' || c == '.' ||
		c == 0xE2 || c == 0x88 || c == 0x9E
}

// detectFrame skips whitespace and dispatches on the first content byte.
type detectFrame struct{}

func (detectFrame) step(m *machine) bool {
	for m.pos < len(m.buf) {
		c := m.buf[m.pos]
		if isSpace(c) {
			m.pos++
			continue
		}
		switch {
		case c == '[':
			m.pos++
			m.push(&arrayFrame{})
		case c == '{':
			m.pos++
			m.push(&objectFrame{readingKey: true})
		case c == '"':
			m.pos++
			m.push(&stringFrame{})
		case c == 't':
			m.push(&checkFrame{want: "true", result: Bool(true)})
		case c == 'f':
			m.push(&checkFrame{want: "false", result: Bool(false)})
		case c == 'n':
			m.push(&checkFrame{want: "null", result: Null()})
		case numberByte(c):
			m.push(&numberFrame{})
		default:
			return m.fail()
		}
		return true
	}
	return true
}

func (detectFrame) accept(m *machine, v Value) bool {
	m.emit(v)
	return false
}

// stringFrame accumulates the raw bytes of a quoted string, then decodes
// the escapes in one pass when the closing quote arrives.
type stringFrame struct {
	esc  bool
	data []byte
}

func (f *stringFrame) step(m *machine) bool {
	for m.pos < len(m.buf) {
		c := m.buf[m.pos]
		if !f.esc {
			if c == '"' {
				m.pos++
				m.result = String(string(escape.Unquote(mem.B(f.data))))
				return false
			}
			f.esc = c == '\\'
		} else {
			f.esc = false
		}
		f.data = append(f.data, c)
		m.pos++
	}
	return true
}

func (f *stringFrame) accept(m *machine, v Value) bool { return false }

// numberFrame accumulates a number run.  It finishes on the first byte
// outside the run without consuming it; the parent frame re-examines that
// byte.
type numberFrame struct {
	data []byte
}

func (f *numberFrame) step(m *machine) bool {
	for m.pos < len(m.buf) {
		c := m.buf[m.pos]
		if numberByte(c) {
			f.data = append(f.data, c)
			m.pos++
			continue
		}
		if !isValidNumber(mem.B(f.data)) {
			return m.fail()
		}
		m.result = Number(string(f.data))
		return false
	}
	return true
}

func (f *numberFrame) accept(m *machine, v Value) bool { return false }

// checkFrame matches an expected literal byte for byte.
type checkFrame struct {
	want   string
	result Value
	n      int
}

func (f *checkFrame) step(m *machine) bool {
	for m.pos < len(m.buf) {
		if f.want[f.n] != m.buf[m.pos] {
			return m.fail()
		}
		f.n++
		m.pos++
		if f.n == len(f.want) {
			m.result = f.result
			return false
		}
	}
	return true
}

func (f *checkFrame) accept(m *machine, v Value) bool { return false }

// arrayFrame collects comma-separated elements up to the closing bracket.
type arrayFrame struct {
	items []Value
}

func (f *arrayFrame) step(m *machine) bool {
	for m.pos < len(m.buf) {
		c := m.buf[m.pos]
		if isSpace(c) {
			m.pos++
			continue
		}
		switch c {
		case ',':
			if len(f.items) > 0 {
				m.pos++
				m.push(&detectFrame{})
				return true
			}
		case ']':
			m.pos++
			m.result = ownArray(f.items)
			f.items = nil
			return false
		default:
			if len(f.items) == 0 {
				m.push(&detectFrame{})
				return true
			}
		}
		return m.fail()
	}
	return true
}

func (f *arrayFrame) accept(m *machine, v Value) bool {
	f.items = append(f.items, v)
	return true
}

// objectFrame collects key-value members, tracking whether the next
// production is a key or a value.
type objectFrame struct {
	readingKey bool
	key        string
	members    []Member
}

func (f *objectFrame) step(m *machine) bool {
	for m.pos < len(m.buf) {
		c := m.buf[m.pos]
		if isSpace(c) {
			m.pos++
			continue
		}
		switch c {
		case ',':
			if f.readingKey && len(f.members) > 0 {
				m.pos++
				m.push(&detectFrame{})
				return true
			}
		case ':':
			if !f.readingKey {
				m.pos++
				m.push(&detectFrame{})
				return true
			}
		case '}':
			if f.readingKey {
				m.pos++
				m.result = ownObject(f.members)
				f.members = nil
				return false
			}
		default:
			if f.readingKey && len(f.members) == 0 {
				m.push(&detectFrame{})
				return true
			}
		}
		return m.fail()
	}
	return true
}

func (f *objectFrame) accept(m *machine, v Value) bool {
	if f.readingKey {
		if v.Type() != TypeString {
			return m.fail()
		}
		f.key = v.Text()
		f.readingKey = false
	} else {
		f.members = append(f.members, Member{Key: f.key, Value: v})
		f.readingKey = true
	}
	return true
}

// Parse parses a single JSON value from text.  Input beyond the first
// complete value is ignored.  On malformed input the error is a
// *ParseError carrying the offset of the first unprocessed byte.
func Parse(text string) (Value, error) {
	p := NewParser(nil)
	if p.Write([]byte(text)) {
		// The machine still wants input.  A bare top-level number has no
		// terminating byte, so offer one before giving up.
		if p.Write([]byte("\n")) || p.err {
			return Value{}, &ParseError{Offset: len(text)}
		}
		return p.Result(), nil
	}
	if p.err {
		return Value{}, &ParseError{Offset: len(text) - len(p.Unprocessed())}
	}
	return p.Result(), nil
}

// ParseHuJSON parses a value from "human JSON" text, a superset of JSON
// allowing comments and trailing commas.  The input is standardized to
// plain JSON before parsing; the offset in a resulting ParseError refers
// to the standardized form.
func ParseHuJSON(text string) (Value, error) {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return Value{}, err
	}
	return Parse(string(std))
}
