// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval_test

import (
	"testing"

	"github.com/creachadair/jval"
)

func mem(key string, v jval.Value) jval.Member { return jval.Member{Key: key, Value: v} }

func TestObjectAccess(t *testing.T) {
	obj := jval.Object(
		mem("one", jval.Int(1)),
		mem("two", jval.Int(2)),
		mem("three", jval.Int(3)),
		mem("subobject", jval.Object(
			mem("one", jval.Int(1)),
			mem("two", jval.Int(2)),
			mem("three", jval.Int(3)),
		)),
		mem("subarray", jval.Array(jval.Int(1), jval.Int(2), jval.Null(), jval.String("text"))),
	)

	if got := obj.Field("one").Int(); got != 1 {
		t.Errorf(`obj["one"]: got %d, want 1`, got)
	}
	if got := obj.Field("two").Int(); got != 2 {
		t.Errorf(`obj["two"]: got %d, want 2`, got)
	}
	if got := obj.Field("three").Int(); got != 3 {
		t.Errorf(`obj["three"]: got %d, want 3`, got)
	}
	sub := obj.Field("subobject")
	for want, key := range map[int64]string{1: "one", 2: "two", 3: "three"} {
		if got := sub.Field(key).Int(); got != want {
			t.Errorf("subobject[%q]: got %d, want %d", key, got, want)
		}
	}

	arr := obj.Field("subarray")
	if got := arr.Index(0).Int(); got != 1 {
		t.Errorf("subarray[0]: got %d, want 1", got)
	}
	if got := arr.Index(1).Int(); got != 2 {
		t.Errorf("subarray[1]: got %d, want 2", got)
	}
	// Null and non-numeric strings read as zero.
	if got := arr.Index(2).Int(); got != 0 {
		t.Errorf("subarray[2]: got %d, want 0", got)
	}
	if got := arr.Index(3).Int(); got != 0 {
		t.Errorf("subarray[3]: got %d, want 0", got)
	}
	for i := 0; i < 4; i++ {
		if !arr.Index(i).Defined() {
			t.Errorf("subarray[%d] is undefined", i)
		}
	}
	if arr.Index(4).Defined() {
		t.Error("subarray[4] should be undefined")
	}
	if arr.Index(-1).Defined() {
		t.Error("subarray[-1] should be undefined")
	}
	if !arr.Index(0).HasValue() || arr.Index(2).HasValue() {
		t.Error("HasValue: want true for 1, false for null")
	}

	// Misses and non-containers yield undefined.
	if obj.Field("nonesuch").Defined() {
		t.Error("missing key should be undefined")
	}
	if jval.Int(5).Field("x").Defined() || jval.Int(5).Index(0).Defined() {
		t.Error("access on a number should be undefined")
	}

	// Mapping an object visits the member values in key order.
	vals := obj.Map(func(v jval.Value) jval.Value { return v })
	if got := vals.Index(0).Int(); got != 1 { // "one"
		t.Errorf("vals[0]: got %d, want 1", got)
	}
	if got := vals.Index(4).Int(); got != 2 { // "two"
		t.Errorf("vals[4]: got %d, want 2", got)
	}
	if got := vals.Index(3).Int(); got != 3 { // "three"
		t.Errorf("vals[3]: got %d, want 3", got)
	}
	if got := vals.Index(2).Field("one").Int(); got != 1 { // "subobject"
		t.Errorf(`vals[2]["one"]: got %d, want 1`, got)
	}
	if got := vals.Index(1).Index(0).Int(); got != 1 { // "subarray"
		t.Errorf("vals[1][0]: got %d, want 1", got)
	}
}

func TestSortedKeys(t *testing.T) {
	obj := jval.Object(
		mem("b", jval.Int(1)),
		mem("a", jval.Int(2)),
		mem("c", jval.Int(3)),
	)
	ms := obj.Members()
	want := []string{"a", "b", "c"}
	if ms.Len() != len(want) {
		t.Fatalf("Members: got %d, want %d", ms.Len(), len(want))
	}
	for i, key := range want {
		if got := ms.At(i).Key; got != key {
			t.Errorf("keys[%d]: got %q, want %q", i, got, key)
		}
	}
	if m, ok := ms.Find("b"); !ok || m.Value.Int() != 1 {
		t.Errorf(`Find("b"): got %v, %v`, m, ok)
	}
	if _, ok := ms.Find("z"); ok {
		t.Error(`Find("z") unexpectedly succeeded`)
	}

	// The member sequence of any object is strictly increasing by key.
	for i := 1; i < ms.Len(); i++ {
		if ms.At(i-1).Key >= ms.At(i).Key {
			t.Errorf("keys out of order: %q then %q", ms.At(i-1).Key, ms.At(i).Key)
		}
	}
}

func TestPath(t *testing.T) {
	v := jval.Object(
		mem("list", jval.Array(
			jval.Object(mem("x", jval.Int(1))),
			jval.Object(mem("x", jval.Int(2))),
		)),
		mem("y", jval.Object(mem("hello", jval.String("there")))),
	)
	if got := jval.Path(v, "list", 1, "x").Int(); got != 2 {
		t.Errorf("Path list/1/x: got %d, want 2", got)
	}
	if got := jval.Path(v, "y", "hello").Text(); got != "there" {
		t.Errorf("Path y/hello: got %q, want %q", got, "there")
	}
	if jval.Path(v, "nonesuch", 0).Defined() {
		t.Error("Path through a missing key should be undefined")
	}
	if jval.Path(v, "list", 9).Defined() {
		t.Error("Path out of range should be undefined")
	}
	if jval.Path(v, 3.5).Defined() {
		t.Error("Path with an unsupported key type should be undefined")
	}
}
