package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tripn "github.com/quies-net/tripn"
)

func blank(store *tripn.NodeStore, label string) *tripn.Node {
	return store.Intern(tripn.NewBlank(label))
}

func TestWriteRangeEmitsPlainTriple(t *testing.T) {
	store, m := buildModel(t, 0)
	m.Add(&tripn.Statement{Subject: iri(store, "http://ex/s"), Predicate: iri(store, "http://ex/p"), Object: iri(store, "http://ex/o")})

	var buf bytes.Buffer
	w := tripn.NewWriter(&buf, tripn.WithWriterSyntax(tripn.SyntaxTurtle))
	require.Equal(t, tripn.Success, WriteRange(m.Find(nil, nil, nil, nil), w))
	require.Equal(t, tripn.Success, w.Close())

	assert.Contains(t, buf.String(), "<http://ex/s>")
	assert.Contains(t, buf.String(), "<http://ex/o>")
}

func TestWriteRangeInlinesSingleUseAnonymousObject(t *testing.T) {
	store, m := buildModel(t, 0)
	b := blank(store, "b1")
	m.Add(&tripn.Statement{Subject: iri(store, "http://ex/s"), Predicate: iri(store, "http://ex/p"), Object: b})
	m.Add(&tripn.Statement{Subject: b, Predicate: iri(store, "http://ex/q"), Object: iri(store, "http://ex/r")})

	var buf bytes.Buffer
	w := tripn.NewWriter(&buf, tripn.WithWriterSyntax(tripn.SyntaxTurtle))
	require.Equal(t, tripn.Success, WriteRange(m.Find(nil, nil, nil, nil), w))
	require.Equal(t, tripn.Success, w.Close())

	out := buf.String()
	assert.Contains(t, out, "[")
	assert.Contains(t, out, "]")
	assert.Contains(t, out, "<http://ex/q>")
	assert.NotContains(t, out, "_:b1")
}

func TestWriteRangeCollapsesRDFCollectionToParens(t *testing.T) {
	store, m := buildModel(t, 0)
	head := blank(store, "l1")
	tail := blank(store, "l2")
	nilNode := iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")

	m.Add(&tripn.Statement{Subject: iri(store, "http://ex/s"), Predicate: iri(store, "http://ex/p"), Object: head})
	m.Add(&tripn.Statement{Subject: head, Predicate: iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"), Object: iri(store, "http://ex/a")})
	m.Add(&tripn.Statement{Subject: head, Predicate: iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"), Object: tail})
	m.Add(&tripn.Statement{Subject: tail, Predicate: iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"), Object: iri(store, "http://ex/b")})
	m.Add(&tripn.Statement{Subject: tail, Predicate: iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"), Object: nilNode})

	var buf bytes.Buffer
	w := tripn.NewWriter(&buf, tripn.WithWriterSyntax(tripn.SyntaxTurtle))
	require.Equal(t, tripn.Success, WriteRange(m.Find(nil, nil, nil, nil), w))
	require.Equal(t, tripn.Success, w.Close())

	out := buf.String()
	assert.True(t, strings.Contains(out, "("))
	assert.Contains(t, out, "<http://ex/a>")
	assert.Contains(t, out, "<http://ex/b>")
	assert.NotContains(t, out, "first")
	assert.NotContains(t, out, "rest")
}

func TestWriteRangeDoesNotCollapseListCellReusedAsAnotherObject(t *testing.T) {
	store, m := buildModel(t, 0)
	head := blank(store, "l1")
	nilNode := iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")

	m.Add(&tripn.Statement{Subject: iri(store, "http://ex/s"), Predicate: iri(store, "http://ex/p"), Object: head})
	m.Add(&tripn.Statement{Subject: iri(store, "http://ex/other"), Predicate: iri(store, "http://ex/also"), Object: head})
	m.Add(&tripn.Statement{Subject: head, Predicate: iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"), Object: iri(store, "http://ex/a")})
	m.Add(&tripn.Statement{Subject: head, Predicate: iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"), Object: nilNode})

	var buf bytes.Buffer
	w := tripn.NewWriter(&buf, tripn.WithWriterSyntax(tripn.SyntaxTurtle))
	require.Equal(t, tripn.Success, WriteRange(m.Find(nil, nil, nil, nil), w))
	require.Equal(t, tripn.Success, w.Close())

	out := buf.String()
	assert.Contains(t, out, "_:l1")
	assert.Contains(t, out, "<http://ex/other>")
	assert.Contains(t, out, "<http://ex/also>")
}

func TestWriteRangeNilObjectRendersAsFullIRI(t *testing.T) {
	store, m := buildModel(t, 0)
	nilNode := iri(store, "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
	m.Add(&tripn.Statement{Subject: iri(store, "http://ex/s"), Predicate: iri(store, "http://ex/p"), Object: nilNode})

	var buf bytes.Buffer
	w := tripn.NewWriter(&buf, tripn.WithWriterSyntax(tripn.SyntaxTurtle))
	require.Equal(t, tripn.Success, WriteRange(m.Find(nil, nil, nil, nil), w))
	require.Equal(t, tripn.Success, w.Close())

	assert.Contains(t, buf.String(), "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil")
}
