// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval_test

import (
	"testing"

	"github.com/creachadair/jval"
	"github.com/creachadair/mds/mtest"
)

// stamp is a custom value with string content and a counted projection.
type stamp struct {
	name    string
	njsonfn int // number of ToJSON calls
}

func (s *stamp) String() string     { return "stamp:" + s.name }
func (s *stamp) Type() jval.Type    { return jval.TypeString }
func (s *stamp) Text() string       { return s.name }
func (s *stamp) ToJSON() jval.Value { s.njsonfn++; return jval.String(s.name) }

// pair is a custom value acting as a two-element container.
type pair struct {
	a, b jval.Value
}

func (pair) String() string     { return "(pair)" }
func (pair) Type() jval.Type    { return jval.TypeArray }
func (p pair) Len() int         { return 2 }
func (p pair) ToJSON() jval.Value {
	return jval.Array(p.a, p.b)
}

func (p pair) Index(i int) jval.Value {
	switch i {
	case 0:
		return p.a
	case 1:
		return p.b
	}
	return jval.Undefined()
}

func (p pair) Field(key string) jval.Value {
	switch key {
	case "first":
		return p.a
	case "second":
		return p.b
	}
	return jval.Undefined()
}

func (p pair) Equal(other jval.CustomValue) bool {
	o, ok := other.(pair)
	return ok && p.a.Equal(o.a) && p.b.Equal(o.b)
}

func TestCustomValue(t *testing.T) {
	s := &stamp{name: "bob"}
	v := jval.NewCustom(s)

	if got := v.Type(); got != jval.TypeString {
		t.Errorf("Type: got %v, want string", got)
	}
	if got := v.Storage(); got != jval.StorageCustom {
		t.Errorf("Storage: got %v, want custom", got)
	}
	if got := v.Text(); got != "bob" {
		t.Errorf("Text: got %q, want bob", got)
	}
	if got := v.String(); got != "stamp:bob" {
		t.Errorf("String: got %q, want stamp:bob", got)
	}
	if got := v.Custom(); got != jval.CustomValue(s) {
		t.Error("Custom did not return the original value")
	}

	// The same custom value is projected once per serialization pass.
	arr := jval.Array(v, v, v)
	if got, want := jval.Stringify(arr), `["bob","bob","bob"]`; got != want {
		t.Errorf("Stringify: got %s, want %s", got, want)
	}
	if s.njsonfn != 1 {
		t.Errorf("ToJSON called %d times during one pass, want 1", s.njsonfn)
	}

	// Custom values without Equaler compare by identity.
	if !v.Equal(jval.NewCustom(s)) {
		t.Error("same custom value should be equal")
	}
	if v.Equal(jval.NewCustom(&stamp{name: "bob"})) {
		t.Error("distinct custom values should not be equal")
	}
}

func TestCustomContainer(t *testing.T) {
	p := pair{a: jval.Int(1), b: jval.String("two")}
	v := jval.NewCustom(p)

	if got := v.Type(); got != jval.TypeArray {
		t.Errorf("Type: got %v, want array", got)
	}
	if got := v.Len(); got != 2 {
		t.Errorf("Len: got %d, want 2", got)
	}
	if got := v.Index(0).Int(); got != 1 {
		t.Errorf("Index(0): got %d, want 1", got)
	}
	if got := v.Field("second").Text(); got != "two" {
		t.Errorf(`Field("second"): got %q, want two`, got)
	}
	if v.Index(5).Defined() || v.Field("third").Defined() {
		t.Error("out-of-range access should be undefined")
	}
	if got, want := jval.Stringify(v), `[1,"two"]`; got != want {
		t.Errorf("Stringify: got %s, want %s", got, want)
	}

	// Binary encoding uses the same projection.
	dec, err := jval.Unbinarize(jval.Binarize(v))
	if err != nil {
		t.Fatalf("Unbinarize failed: %v", err)
	}
	if got, want := jval.Stringify(dec), `[1,"two"]`; got != want {
		t.Errorf("binary projection: got %s, want %s", got, want)
	}

	// Equaler opts into structural comparison.
	if !v.Equal(jval.NewCustom(pair{a: jval.Int(1), b: jval.String("two")})) {
		t.Error("structurally equal pairs should compare equal")
	}
	if v.Equal(jval.NewCustom(pair{a: jval.Int(2), b: jval.String("two")})) {
		t.Error("different pairs should not compare equal")
	}
}

func TestNilCustom(t *testing.T) {
	mtest.MustPanic(t, func() { jval.NewCustom(nil) })
}
