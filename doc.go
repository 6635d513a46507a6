// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonfix implements a strict JSON scanner and stream parser, the
// lexical foundation for validating, formatting, and repairing JSON text.
//
// The subpackages build on it:
//
//	value      the parsed JSON value tree
//	format     validation with beautified or minified rendering
//	repair     best-effort heuristic repair of malformed JSON text
//	share      encoding documents into shareable links and back
//	highlight  ANSI syntax highlighting of rendered JSON
//	samples    built-in sample documents
//	session    a debounced format cycle for one input buffer
//
// # Scanning
//
// A Scanner splits a source text held in memory into tokens. Each call to
// Next advances to the next token, and returns io.EOF once the text is used
// up:
//
//	s := jsonfix.NewScanner(text)
//	for s.Next() == nil {
//	   fmt.Println(s.Token(), s.Location(), s.Text())
//	}
//	if err := s.Err(); err != io.EOF {
//	   // err is a *jsonfix.LexError
//	}
//
// The scanner admits only the grammar of RFC 8259. Comments, trailing
// commas, unquoted keys, and single-quoted strings are all errors; package
// repair rewrites text that uses them.
//
// Locations are byte offsets into the text. Lines are numbered from 1, and
// columns are byte offsets from the start of the line, counted from 0.
//
// # Parsing
//
// A Stream parses the tokens of a Scanner, and reports the structure it finds
// to the methods of a Handler:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Begin and End events are always correctly paired: the stream reports a
// *jsonfix.SyntaxError rather than an unbalanced event. An error returned by
// a handler method stops parsing and is returned to the caller as-is.
//
// Parse consumes every value in the text, ParseOne consumes one value at a
// time, and ParseSingle requires the text to be exactly one value:
//
//	if err := jsonfix.NewStream(text).ParseSingle(h); err != nil {
//	   log.Fatalf("Invalid: %v", err) // e.g., at 3:14: unexpected "}"
//	}
package jsonfix
