package tripn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// want is the minimal description of an expected parsed statement used
// by the table below: an IRI subject/predicate, and an object described
// either as an IRI ("<...>" handled by stmt) or literal value plus
// optional datatype/language.
type want struct {
	s, p, o  string
	datatype string
	lang     string
}

func (w want) statement(store *NodeStore) *Statement {
	obj := objNode(store, w.o, w.datatype, w.lang)
	return &Statement{
		Subject:   store.Intern(NewIRI(w.s)),
		Predicate: store.Intern(NewIRI(w.p)),
		Object:    obj,
	}
}

func objNode(store *NodeStore, value, datatype, lang string) *Node {
	switch {
	case lang != "":
		return store.Intern(NewLangLiteral(value, lang))
	case datatype == "":
		return store.Intern(NewIRI(value))
	default:
		return store.Intern(NewTypedLiteral(value, datatype))
	}
}

var turtleCases = []struct {
	name   string
	turtle string
	want   []want
}{
	{"empty", "", nil},
	{"whitespace only", "\n\r\n \t\n", nil},
	{"comment only", "# header\n# EOF at comment end", nil},

	{
		"bare triple across lines",
		`<http://example.com/subject1> # N-Triples notation
<http://example.com/predicate1>         # stretched over multiple lines
# with leading and trailing space:

 <http://example.com/object1>
	. `,
		[]want{{"http://example.com/subject1", "http://example.com/predicate1", "http://example.com/object1", "", ""}},
	},

	{
		"SPARQL-style BASE without dot",
		`@base <http://example.com/> . # directive with dot terminator
<subject1> <predicate1> <object1> .
BASE <http://example.net/>              # SPARQL variant without dot
<subject2> <predicate2> <object2> .`,
		[]want{
			{"http://example.com/subject1", "http://example.com/predicate1", "http://example.com/object1", "", ""},
			{"http://example.net/subject2", "http://example.net/predicate2", "http://example.net/object2", "", ""},
		},
	},

	{
		"case-insensitive directive keywords",
		`bASe <http://example.com/> @prefix p: <path/> . p:subject1 p:predicate1 p:object1 .`,
		[]want{{"http://example.com/path/subject1", "http://example.com/path/predicate1", "http://example.com/path/object1", "", ""}},
	},

	{
		"empty prefix and rdf:type abbreviation",
		`@prefix : <http://example.com/> .   # empty prefix
          :subject1 :predicate1 :object1 .
          :subject2 a :object2 .              # rdf:type predicate`,
		[]want{
			{"http://example.com/subject1", "http://example.com/predicate1", "http://example.com/object1", "", ""},
			{"http://example.com/subject2", rdfType, "http://example.com/object2", "", ""},
		},
	},

	{
		"predicate list",
		`<http://example.org/#spiderman> <http://www.perceive.net/schemas/relationship/enemyOf> <http://example.org/#green-goblin> ;
                                             <http://xmlns.com/foaf/0.1/name> "Spiderman" .`,
		[]want{
			{"http://example.org/#spiderman", "http://www.perceive.net/schemas/relationship/enemyOf", "http://example.org/#green-goblin", "", ""},
			{"http://example.org/#spiderman", "http://xmlns.com/foaf/0.1/name", "Spiderman", "http://www.w3.org/2001/XMLSchema#string", ""},
		},
	},

	{
		"object list with plain string and localized variant",
		`<http://example.org/#spiderman> <http://xmlns.com/foaf/0.1/name> "Spiderman", "Человек-паук"@ru .`,
		[]want{
			{"http://example.org/#spiderman", "http://xmlns.com/foaf/0.1/name", "Spiderman", "http://www.w3.org/2001/XMLSchema#string", ""},
			{"http://example.org/#spiderman", "http://xmlns.com/foaf/0.1/name", "Человек-паук", "", "ru"},
		},
	},

	{
		"W3C Turtle Recommendation example 1",
		`@base <http://example.org/> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix rel: <http://www.perceive.net/schemas/relationship/> .

<#green-goblin>
    rel:enemyOf <#spiderman> ;
    a foaf:Person ;    # in the context of the Marvel universe
    foaf:name "Green Goblin" .

<#spiderman>
    rel:enemyOf <#green-goblin> ;
    a foaf:Person ;
    foaf:name "Spiderman", "Человек-паук"@ru .`,
		[]want{
			{"http://example.org/#green-goblin", "http://www.perceive.net/schemas/relationship/enemyOf", "http://example.org/#spiderman", "", ""},
			{"http://example.org/#green-goblin", rdfType, "http://xmlns.com/foaf/0.1/Person", "", ""},
			{"http://example.org/#green-goblin", "http://xmlns.com/foaf/0.1/name", "Green Goblin", "http://www.w3.org/2001/XMLSchema#string", ""},
			{"http://example.org/#spiderman", "http://www.perceive.net/schemas/relationship/enemyOf", "http://example.org/#green-goblin", "", ""},
			{"http://example.org/#spiderman", rdfType, "http://xmlns.com/foaf/0.1/Person", "", ""},
			{"http://example.org/#spiderman", "http://xmlns.com/foaf/0.1/name", "Spiderman", "http://www.w3.org/2001/XMLSchema#string", ""},
			{"http://example.org/#spiderman", "http://xmlns.com/foaf/0.1/name", "Человек-паук", "", "ru"},
		},
	},

	{
		"numeric literals, W3C example 12",
		`@prefix : <http://example.org/elements/> .
 <http://en.wikipedia.org/wiki/Helium>
    :atomicNumber 2 ;               # xsd:integer
    :atomicMass 4.002602 ;          # xsd:decimal
    :specificGravity 1.663E-4 .     # xsd:double
`,
		[]want{
			{"http://en.wikipedia.org/wiki/Helium", "http://example.org/elements/atomicNumber", "2", "http://www.w3.org/2001/XMLSchema#integer", ""},
			{"http://en.wikipedia.org/wiki/Helium", "http://example.org/elements/atomicMass", "4.002602", "http://www.w3.org/2001/XMLSchema#decimal", ""},
			{"http://en.wikipedia.org/wiki/Helium", "http://example.org/elements/specificGravity", "1.663E-04", "http://www.w3.org/2001/XMLSchema#double", ""},
		},
	},
}

func TestReaderTurtleCases(t *testing.T) {
	for _, tc := range turtleCases {
		t.Run(tc.name, func(t *testing.T) {
			stmts, _, status := ParseAll(strings.NewReader(tc.turtle), SyntaxTurtle)
			require.False(t, status.IsFatal(), "parse status: %s", status)
			require.Len(t, stmts, len(tc.want))

			store := NewNodeStore()
			for i, w := range tc.want {
				assert.Truef(t, stmts[i].Equals(w.statement(store)),
					"statement %d: got %+v, want %+v", i, stmts[i], w)
			}
		})
	}
}

func TestReaderBlankNodesAreConsistentWithinDocument(t *testing.T) {
	const doc = `@prefix foaf: <http://xmlns.com/foaf/0.1/> .

_:alice foaf:knows _:bob .
_:bob foaf:knows _:alice .`

	stmts, _, status := ParseAll(strings.NewReader(doc), SyntaxTurtle)
	require.False(t, status.IsFatal())
	require.Len(t, stmts, 2)

	alice, bob := stmts[0].Subject, stmts[0].Object
	assert.True(t, alice.IsBlank())
	assert.True(t, bob.IsBlank())
	assert.True(t, stmts[1].Subject.Equals(bob))
	assert.True(t, stmts[1].Object.Equals(alice))
	assert.False(t, alice.Equals(bob))
}

func TestReaderQuotedStringVariants(t *testing.T) {
	const doc = `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix show: <http://example.org/vocab/show/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

show:218 rdfs:label "That Seventies Show"^^xsd:string .
show:218 rdfs:label "That Seventies Show"^^<http://www.w3.org/2001/XMLSchema#string> .
show:218 rdfs:label "That Seventies Show" .
show:218 show:localName "That Seventies Show"@en .
show:218 show:localName 'Cette Série des Années Soixante-dix'@fr .
show:218 show:localName "Cette Série des Années Septante"@fr-be .
show:218 show:blurb '''This is a multi-line
literal with many quotes ("""")
and up to two sequential apostrophes ('').''' .
`
	stmts, _, status := ParseAll(strings.NewReader(doc), SyntaxTurtle)
	require.False(t, status.IsFatal(), "parse status: %s", status)
	require.Len(t, stmts, 7)

	for _, i := range []int{0, 1, 2} {
		assert.Equal(t, "That Seventies Show", stmts[i].Object.Value)
		assert.Equal(t, "http://www.w3.org/2001/XMLSchema#string", stmts[i].Object.DatatypeIRI())
	}
	assert.Equal(t, "en", stmts[3].Object.Language())
	assert.Equal(t, "fr", stmts[4].Object.Language())
	assert.Equal(t, "fr-be", stmts[5].Object.Language())
	assert.Contains(t, stmts[6].Object.Value, "multi-line")
	assert.Contains(t, stmts[6].Object.Value, `("""")`)
}

func TestReaderTriGNamedGraphs(t *testing.T) {
	const doc = `@prefix : <http://example.org/> .
GRAPH :g1 {
    :s1 :p1 :o1 .
}
:s2 :p2 :o2 .`

	stmts, _, status := ParseAll(strings.NewReader(doc), SyntaxTriG)
	require.False(t, status.IsFatal(), "parse status: %s", status)
	require.Len(t, stmts, 2)

	require.NotNil(t, stmts[0].Graph)
	assert.Equal(t, "http://example.org/g1", stmts[0].Graph.Value)
	assert.Nil(t, stmts[1].Graph)
}

func TestReaderCollectionsDesugarToRDFList(t *testing.T) {
	const doc = `@prefix : <http://example.org/> .
:s :p ( :a :b :c ) .`

	stmts, _, status := ParseAll(strings.NewReader(doc), SyntaxTurtle)
	require.False(t, status.IsFatal(), "parse status: %s", status)

	// one rdf:first + one rdf:rest per list cell, plus the original
	// :s :p _:head triple.
	require.Len(t, stmts, 7)

	var head *Statement
	var firsts, rests int
	for _, st := range stmts {
		switch st.Predicate.Value {
		case "http://example.org/p":
			head = st
		case rdfFirst:
			firsts++
		case rdfRest:
			rests++
		}
	}
	require.NotNil(t, head)
	assert.True(t, head.Object.IsBlank())
	assert.Equal(t, 3, firsts)
	assert.Equal(t, 3, rests)
}

func TestReaderAnonymousBlankNodeProperty(t *testing.T) {
	const doc = `@prefix : <http://example.org/> .
:s :p [ :q :r ] .`

	stmts, _, status := ParseAll(strings.NewReader(doc), SyntaxTurtle)
	require.False(t, status.IsFatal(), "parse status: %s", status)
	require.Len(t, stmts, 2)

	// the nested "[ :q :r ]" property list is emitted before the
	// enclosing ":s :p [...]" statement, since the anonymous node's
	// body is read and pushed to the sink while still parsing the object
	// position of the outer statement.
	assert.True(t, stmts[0].Subject.IsBlank())
	assert.Equal(t, "http://example.org/q", stmts[0].Predicate.Value)
	assert.True(t, stmts[1].Object.Equals(stmts[0].Subject))
	assert.Equal(t, "http://example.org/p", stmts[1].Predicate.Value)
}

func TestReaderLaxModeRecoversFromBadStatement(t *testing.T) {
	const doc = `@prefix : <http://example.org/> .
:s1 :p1 :o1 .
this is not valid turtle .
:s2 :p2 :o2 .`

	stmts, _, status := ParseAll(strings.NewReader(doc), SyntaxTurtle, WithReaderFlags(FlagLax))
	assert.False(t, status.IsFatal())
	var subjects []string
	for _, st := range stmts {
		subjects = append(subjects, st.Subject.Value)
	}
	assert.Contains(t, subjects, "http://example.org/s1")
	assert.Contains(t, subjects, "http://example.org/s2")
}
