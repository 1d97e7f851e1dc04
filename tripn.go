// Package tripn provides RDF interchange in the Turtle family of
// syntaxes: Turtle, TriG, N-Triples, and N-Quads. It streams a document
// into a sequence of Events (Base, Prefix, Statement, End) pushed to a
// Sink, the sole coupling between a Reader, the indexed model in
// package model, a Writer, and the composable transformers in package
// rdfio.
package tripn

import "io"

// ParseAll reads every statement in r (in the given syntax) into a
// freshly allocated slice, a convenience wrapper around Reader for
// callers who don't need streaming or a Sink pipeline.
func ParseAll(r io.Reader, syntax Syntax, opts ...ReaderOption) ([]*Statement, *Environment, Status) {
	var collected []*Statement
	sink := SinkFunc(func(e *Event) Status {
		if e.Kind == EventStatement {
			collected = append(collected, e.Statement)
		}
		return Success
	})

	allOpts := append([]ReaderOption{WithSyntax(syntax)}, opts...)
	reader := NewReader(r, sink, allOpts...)
	st := reader.ReadDocument()
	return collected, reader.Environment(), st
}

// SerializeAll writes statements to w in the given syntax using a bare
// Writer (no abbreviation analysis beyond what the event stream implies
// — see package model's WriteRange for full "pretty" output driven from
// an indexed store).
func SerializeAll(w io.Writer, statements []*Statement, syntax Syntax, opts ...WriterOption) Status {
	allOpts := append([]WriterOption{WithWriterSyntax(syntax)}, opts...)
	writer := NewWriter(w, allOpts...)
	for _, st := range statements {
		if status := WriteStatement(writer, st, 0); status.IsFatal() {
			return status
		}
	}
	return writer.Close()
}
