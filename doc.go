// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jval implements an immutable JSON value model with incremental
// parsers and serializers for two encodings: standard JSON text, and a
// compact binary tag-length-value form.
//
// # Values
//
// The Value type is an immutable handle to a JSON-representable datum.
// The zero Value is "undefined", a sentinel distinct from null meaning "no
// value here": it compares unequal to everything including itself, it
// signals deletion in merge operations, and the text serializer omits it
// inside containers.  Construct values with the typed constructors:
//
//	jval.String("hello")
//	jval.Int(42)
//	jval.Number("123.321000000000001") // exact text, emitted verbatim
//	jval.Array(jval.Int(1), jval.Int(2))
//	jval.Object(jval.Member{Key: "a", Value: jval.Bool(true)})
//
// Objects keep their members sorted by key, so key lookup is a binary
// search and serialization order is canonical.  Container bodies are
// shared between copies and never mutated; the structural transforms
// (Map, Filter, Splice, MergeKeys, and friends) build new values and
// leave every other holder of the same body undisturbed.  Any number of
// goroutines may read, copy, and discard the same Value concurrently.
//
// A number may carry its exact decimal representation as text.  The text
// is authoritative: serializers emit it verbatim, and the numeric
// accessors parse it on demand.
//
// # Parsing
//
// The Parser and BinaryParser types are incremental parsers driven by
// caller-supplied input chunks, suitable for embedding in an event loop.
// Write reports whether more input is required:
//
//	p := jval.NewParser(nil)
//	for p.Write(nextChunk()) {
//	}
//	if p.Err() != nil {
//	   log.Fatalf("Parse failed: %v", p.Err())
//	}
//	v := p.Result()
//
// Splitting the input at any byte boundary does not change the result.
// The tail of the final chunk beyond the last consumed byte is available
// from Unprocessed, so a caller multiplexing values on one stream can
// resume after the value, and a caller handling an error can locate it.
//
// The one-shot façades Parse, ParseHuJSON, and Unbinarize wrap the
// incremental parsers and report a *ParseError with a byte offset on
// malformed input.  ParseHuJSON returns the error of the hujson
// standardizer, not a *ParseError, for input that is not valid human JSON.
//
// # Serializing
//
// The Serializer and BinarySerializer types render a Value in bounded
// chunks: each call of Read returns the next chunk, and an empty chunk
// means rendering is complete.  Stringify and Binarize accumulate the
// chunks into a complete encoding.
//
// The text encoding is standard JSON with documented deviations: the
// infinities render as the quoted literals "∞" and "-∞" and are accepted
// unquoted in number position, NaN renders as null, a leading "+" is
// accepted in numbers, and undefined entries are dropped.  The binary
// encoding has no such exceptions and round-trips the entire value space;
// its layout is documented in binary.go.
//
// # Custom values
//
// A user-defined entity can masquerade as a Value by implementing the
// CustomValue interface, reporting its own logical type and a JSON
// projection used by the serializers.  The optional Texter, Indexer, and
// Equaler interfaces opt into string access, container access, and
// structural equality.
package jval
