// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jlink resolves cross-references between JSON documents.
//
// A reference is a property whose value names a property in another
// document. References and their targets are described by dotted paths,
// represented as chains of Word values:
//
//	w := jlink.MustParseWord("ref.id") // id, inside ref, at the top level
//	s := jlink.MustParseWord("id")     // a property named id at any depth
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jlink.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v at line %d", s.Token(), s.Line())
//	}
//
// Next returns io.EOF when the input has been fully consumed. A lexical error
// in the input is reported as a *SyntaxError; any other error comes from the
// underlying reader.
//
// # Matching
//
// As a scanner walks a document, the containers enclosing the current token
// form a Scope. A Word matches a property when its name and ancestors agree
// with that scope:
//
//	scope := jlink.Scope{jlink.Anonymous, jlink.Named("ref")}
//	w.Matches("id", scope) // true
//
// The docscan package uses this to find values by path, and the resolve
// package performs the inverse, recovering the scope at a buffer position.
package jlink
