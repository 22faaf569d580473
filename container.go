// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jval

import "sort"

// A container is the shared backing store of an array, object, or other
// variable-length body: a single allocation holding the element sequence.
// A container is immutable once it is published inside a Value; any number
// of Values may hold the same container, and structural operations always
// build a fresh one rather than touching a shared body.
type container[T any] struct {
	elems []T
}

// newContainer wraps elems in a container.  The container takes ownership
// of the slice; the caller must not retain or modify it.
func newContainer[T any](elems []T) *container[T] { return &container[T]{elems: elems} }

func (c *container[T]) len() int { return len(c.elems) }

func (c *container[T]) at(i int) T { return c.elems[i] }

// searchMembers locates key in a key-sorted member sequence.  It returns
// the position of the leftmost member with that key and whether any member
// matched.
func searchMembers(ms []Member, key string) (int, bool) {
	i := sort.Search(len(ms), func(i int) bool { return ms[i].Key >= key })
	return i, i < len(ms) && ms[i].Key == key
}
