package tripn

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPlainTriple(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	st := &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI("http://ex/p"), Object: NewIRI("http://ex/o")}
	require.Equal(t, Success, WriteStatement(w, st, 0))
	require.Equal(t, Success, w.Close())

	assert.Equal(t, "<http://ex/s> <http://ex/p> <http://ex/o> .\n", buf.String())
}

func TestWriterAbbreviatesRDFTypeAsA(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	st := &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI(rdfType), Object: NewIRI("http://ex/Thing")}
	require.Equal(t, Success, WriteStatement(w, st, 0))
	require.Equal(t, Success, w.Close())

	assert.Contains(t, buf.String(), " a <http://ex/Thing>")
}

func TestWriterCombinesSameSubjectPredicateIntoObjectList(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	s, p := NewIRI("http://ex/s"), NewIRI("http://ex/p")
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: p, Object: NewIRI("http://ex/o1")}, 0))
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: p, Object: NewIRI("http://ex/o2")}, 0))
	require.Equal(t, Success, w.Close())

	out := buf.String()
	assert.Contains(t, out, "<http://ex/o1>,")
	assert.Contains(t, out, "<http://ex/o2>")
}

func TestWriterCombinesSameSubjectIntoPredicateList(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	s := NewIRI("http://ex/s")
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: NewIRI("http://ex/p1"), Object: NewIRI("http://ex/o1")}, 0))
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: NewIRI("http://ex/p2"), Object: NewIRI("http://ex/o2")}, 0))
	require.Equal(t, Success, w.Close())

	out := buf.String()
	assert.Contains(t, out, ";")
	assert.Contains(t, out, "<http://ex/p2>")
}

func TestWriterOpensAndClosesAnonymousObjectBlock(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	b := NewBlank("x1")
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI("http://ex/p"), Object: b}, FlagAnonO))
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: b, Predicate: NewIRI("http://ex/q"), Object: NewIRI("http://ex/r")}, 0))
	require.Equal(t, Success, WriteEnd(w, b))
	require.Equal(t, Success, w.Close())

	out := buf.String()
	assert.Contains(t, out, "[")
	assert.Contains(t, out, "]")
	assert.NotContains(t, out, "_:x1")
}

func TestWriterEmptyAnonymousObjectRendersAsBrackets(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	st := &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI("http://ex/p"), Object: NewBlank("x1")}
	require.Equal(t, Success, WriteStatement(w, st, FlagAnonO|FlagEmptyO))
	require.Equal(t, Success, w.Close())

	assert.Contains(t, buf.String(), "[]")
}

func TestWriterListObjectRendersAsParensAndOnlyPrintsObjects(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	head := NewBlank("l1")
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI("http://ex/p"), Object: head}, FlagListO))
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: head, Predicate: NewIRI(rdfFirst), Object: NewIRI("http://ex/a")}, 0))
	require.Equal(t, Success, WriteEnd(w, head))
	require.Equal(t, Success, w.Close())

	out := buf.String()
	assert.Contains(t, out, "(")
	assert.Contains(t, out, ")")
	assert.Contains(t, out, "<http://ex/a>")
	assert.NotContains(t, out, "first")
}

func TestWriterEmptyListRendersAsParensPair(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle))

	st := &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI("http://ex/p"), Object: NewBlank("l1")}
	require.Equal(t, Success, WriteStatement(w, st, FlagListO|FlagEmptyO))
	require.Equal(t, Success, w.Close())

	assert.Contains(t, buf.String(), "()")
}

func TestWriterNTriplesIsAlwaysVerbose(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxNTriples))

	st := &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI(rdfType), Object: NewIRI("http://ex/Thing")}
	require.Equal(t, Success, WriteStatement(w, st, 0))
	require.Equal(t, Success, w.Close())

	assert.Equal(t, "<http://ex/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://ex/Thing> .\n", buf.String())
}

func TestWriterNQuadsIncludesGraph(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxNQuads))

	st := &Statement{Subject: NewIRI("http://ex/s"), Predicate: NewIRI("http://ex/p"), Object: NewIRI("http://ex/o"), Graph: NewIRI("http://ex/g")}
	require.Equal(t, Success, WriteStatement(w, st, 0))
	require.Equal(t, Success, w.Close())

	assert.Equal(t, "<http://ex/s> <http://ex/p> <http://ex/o> <http://ex/g> .\n", buf.String())
}

func TestWriterTerseFlagCollapsesListSeparatorsToSingleLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxTurtle), WithWriterFlags(FlagTerse))

	s, p1, p2 := NewIRI("http://ex/s"), NewIRI("http://ex/p1"), NewIRI("http://ex/p2")
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: p1, Object: NewIRI("http://ex/o1")}, 0))
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: p1, Object: NewIRI("http://ex/o2")}, 0))
	require.Equal(t, Success, WriteStatement(w, &Statement{Subject: s, Predicate: p2, Object: NewIRI("http://ex/o3")}, 0))
	require.Equal(t, Success, w.Close())

	out := buf.String()
	assert.NotContains(t, out, "\n\t")
	assert.Contains(t, out, "<http://ex/o1>, <http://ex/o2>")
	assert.Contains(t, out, " ; <http://ex/p2>")
}

func TestWriterRejectsUnrepresentableNodeInTerseSyntax(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxNTriples))

	st := &Statement{Subject: NewVariable("x"), Predicate: NewIRI("http://ex/p"), Object: NewIRI("http://ex/o")}
	assert.Equal(t, BadArg, WriteStatement(w, st, 0))
}

func TestWriterLaxFlagToleratesUnrepresentableNodeInTerseSyntax(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriterSyntax(SyntaxNTriples), WithWriterFlags(FlagWriterLax))

	st := &Statement{Subject: NewVariable("x"), Predicate: NewIRI("http://ex/p"), Object: NewIRI("http://ex/o")}
	require.Equal(t, Success, WriteStatement(w, st, 0))
	require.Equal(t, Success, w.Close())

	assert.Contains(t, buf.String(), "?x")
}
