package tripn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/quies-net/tripn/internal/textutil"
	"github.com/quies-net/tripn/internal/uriref"
	"github.com/quies-net/tripn/internal/xsd"
)

// errInvalidUTF8 signals that a byte read from the document breaks the
// running UTF-8 validation state; ioStatus turns it into BadText.
var errInvalidUTF8 = errors.New("tripn: invalid UTF-8 byte sequence")

// SyntaxError signals malformed input at a specific Caret (spec §4.6,
// §7: "every emitted diagnostic carries the current line and column").
type SyntaxError struct {
	Caret  Caret
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("tripn: syntax violation at %s: %s", e.Caret.String(), e.Reason)
}

const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
const rdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
const rdfRest = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
const rdfNil = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"

// maxReaderDepth bounds the explicit recursion used for nested
// anonymous nodes and collections, so a pathological document produces
// BadStack instead of overflowing the host stack (spec §9).
const maxReaderDepth = 4096

// ByteReader is the minimal byte-source interface Reader needs. A
// *bufio.Reader satisfies it directly, and so does rdfio.ByteSource
// without rdfio needing to import this package back (rdfio already
// imports tripn, so the dependency can only run one way).
type ByteReader interface {
	ReadByte() (byte, error)
	Peek(n int) ([]byte, error)
}

// Reader streams Turtle, TriG, N-Triples, or N-Quads bytes into a
// sequence of Events pushed to a Sink (spec §4.6). It is single-
// threaded and re-entrant between top-level forms: ReadChunk consumes
// exactly one directive or one subject/predicate-object group and may
// be called again to continue.
type Reader struct {
	br     ByteReader
	sink   Sink
	store  *NodeStore
	env    *Environment
	syntax Syntax
	flags  ReaderFlags

	document    string
	blankPrefix string
	logger      Logger

	line int
	col  int

	validator *textutil.Validator
	runeBytes []byte
	runeWant  int

	depth int

	blankSerial  int
	seenExplicit map[string]bool
	docPrefix    string
	usesLowerB   bool

	// currentGraph is set while inside a TriG "GRAPH name { … }" block.
	currentGraph *Node

	// lastAnonWasEmpty records whether the anonymous node most recently
	// returned by readAnonymousNode had no property list, so its caller
	// can flag the enclosing statement's object FlagEmptyO.
	lastAnonWasEmpty bool
}

// NewReader constructs a Reader over r, pushing events to sink.
func NewReader(r io.Reader, sink Sink, opts ...ReaderOption) *Reader {
	rd := &Reader{
		br:           bufio.NewReaderSize(r, 4096),
		sink:         sink,
		store:        NewNodeStore(),
		env:          NewEnvironment(""),
		line:         1,
		validator:    textutil.NewValidator(),
		seenExplicit: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(rd)
	}
	if rd.docPrefix == "" {
		rd.docPrefix = "d"
	}
	if rd.blankPrefix != "" {
		rd.docPrefix = rd.blankPrefix
	}
	return rd
}

// Store returns the reader's node-interning store.
func (r *Reader) Store() *NodeStore { return r.store }

// Environment returns the reader's lexical environment (base + prefixes).
func (r *Reader) Environment() *Environment { return r.env }

// ReadDocument drives the reader to EOF, emitting events for every
// directive and statement encountered.
func (r *Reader) ReadDocument() Status {
	for {
		st := r.ReadChunk()
		switch {
		case st == Success || st == Failure:
			// Failure here is always a LAX-mode recovery having
			// resynchronised at the next statement boundary; keep going.
			continue
		case st == NoData:
			if !r.validator.ValidateEnd() {
				return BadText
			}
			return Success
		default:
			return st
		}
	}
}

// ReadChunk reads exactly one top-level form: a directive, a
// GRAPH block, or a subject plus its predicate-object list through the
// terminating ".". Returns NoData (not fatal) on clean EOF.
func (r *Reader) ReadChunk() Status {
	if err := r.skipInsignificant(); err != nil {
		return r.ioStatus(err)
	}
	b, err := r.peekByte()
	if err != nil {
		return r.ioStatus(err)
	}

	if b == '}' && r.currentGraph != nil {
		r.readByte()
		r.currentGraph = nil
		return Success
	}

	if st := r.tryDirectiveOrGraph(b); st != NoData {
		return st
	}

	return r.readTriplesForSubject()
}

// tryDirectiveOrGraph attempts to consume a directive or a TriG GRAPH
// block starting at the current position; it returns NoData if b
// starts neither, leaving the stream untouched.
func (r *Reader) tryDirectiveOrGraph(b byte) Status {
	switch {
	case b == '@':
		return r.readAtDirective()
	case isWordStart(b):
		word, err := r.peekWord()
		if err != nil {
			return r.ioStatus(err)
		}
		switch strings.ToUpper(word) {
		case "BASE":
			r.readWord()
			return r.readBaseValue(false)
		case "PREFIX":
			r.readWord()
			return r.readPrefixValue(false)
		case "GRAPH":
			r.readWord()
			return r.readGraphBlock()
		}
	}
	return NoData
}

func (r *Reader) readAtDirective() Status {
	r.readByte() // '@'
	word, err := r.peekWord()
	if err != nil {
		return r.ioStatus(err)
	}
	switch word {
	case "base":
		r.readWord()
		return r.readBaseValue(true)
	case "prefix":
		r.readWord()
		return r.readPrefixValue(true)
	}
	return r.fail(BadSyntax, `unknown directive; expected "@base" or "@prefix"`)
}

func (r *Reader) readBaseValue(terminated bool) Status {
	if err := r.skipInsignificant(); err != nil {
		return r.ioStatus(err)
	}
	iri, st := r.readIRIRef()
	if st != Success {
		return st
	}
	r.env.SetBase(iri)
	if st := r.sink.OnEvent(&Event{Kind: EventBase, BaseURI: NewIRI(r.env.Base())}); st.IsFatal() {
		return st
	}
	if terminated {
		if err := r.skipInsignificant(); err != nil {
			return r.ioStatus(err)
		}
		return r.expectByte('.')
	}
	return Success
}

func (r *Reader) readPrefixValue(terminated bool) Status {
	if err := r.skipInsignificant(); err != nil {
		return r.ioStatus(err)
	}
	label, err := r.readPrefixLabel()
	if err != nil {
		return r.fail(BadSyntax, err.Error())
	}
	if err := r.skipInsignificant(); err != nil {
		return r.ioStatus(err)
	}
	iri, st := r.readIRIRef()
	if st != Success {
		return st
	}
	r.env.SetPrefix(label, iri)
	if st := r.sink.OnEvent(&Event{Kind: EventPrefix, PrefixName: NewIRI(label), PrefixURI: NewIRI(iri)}); st.IsFatal() {
		return st
	}
	if terminated {
		if err := r.skipInsignificant(); err != nil {
			return r.ioStatus(err)
		}
		return r.expectByte('.')
	}
	return Success
}

// readPrefixLabel reads the "name:" before a namespace IRI.
func (r *Reader) readPrefixLabel() (string, error) {
	var b strings.Builder
	for {
		c, err := r.peekByte()
		if err != nil {
			return "", err
		}
		if c == ':' {
			r.readByte()
			return b.String(), nil
		}
		if isWS(c) {
			return "", errors.New(`prefix label without ":" suffix`)
		}
		r.readByte()
		b.WriteByte(c)
	}
}

func (r *Reader) readGraphBlock() Status {
	if err := r.skipInsignificant(); err != nil {
		return r.ioStatus(err)
	}
	name, st := r.readSubjectNode()
	if st != Success {
		return st
	}
	if err := r.skipInsignificant(); err != nil {
		return r.ioStatus(err)
	}
	if st := r.expectByte('{'); st != Success {
		return st
	}
	r.currentGraph = name
	return Success
}

// readTriplesForSubject parses one subject and its full
// predicate-object list through the terminating ".".
func (r *Reader) readTriplesForSubject() Status {
	subject, st := r.readSubjectNode()
	if st != Success {
		return st
	}

	for {
		if err := r.skipInsignificant(); err != nil {
			return r.ioStatus(err)
		}
		predicate, st := r.readPredicateNode()
		if st != Success {
			return st
		}

		for {
			if err := r.skipInsignificant(); err != nil {
				return r.ioStatus(err)
			}
			object, flags, st := r.readObjectNode()
			if st != Success {
				return st
			}
			graph := r.currentGraph
			if r.syntax == SyntaxNQuads {
				if err := r.skipInsignificant(); err != nil {
					return r.ioStatus(err)
				}
				if c, err := r.peekByte(); err == nil && (c == '<' || c == '_') {
					g, st := r.readSubjectNode()
					if st != Success {
						return st
					}
					graph = g
				}
			}
			stmt := &Statement{Subject: subject, Predicate: predicate, Object: object, Graph: graph,
				Caret: &Caret{Document: r.document, Line: r.line, Col: r.col}}
			if st := r.sink.OnEvent(&Event{Kind: EventStatement, Statement: stmt, Flags: flags}); st.IsFatal() {
				return st
			}

			if err := r.skipInsignificant(); err != nil {
				return r.ioStatus(err)
			}
			c, err := r.peekByte()
			if err != nil {
				return r.ioStatus(err)
			}
			switch c {
			case '.':
				r.readByte()
				return Success
			case ',':
				r.readByte()
				continue
			case ';':
				r.readByte()
				if err := r.skipInsignificant(); err != nil {
					return r.ioStatus(err)
				}
				if c2, err := r.peekByte(); err == nil && c2 == '.' {
					r.readByte()
					return Success // trailing ";." is legal
				}
				goto nextPredicate
			default:
				return r.fail(BadSyntax, "illegal triple continuation")
			}
		}
	nextPredicate:
	}
}

// readSubjectNode reads a subject (spec §4.6): IRI, blank label,
// labelled anonymous node, collection, or variable.
func (r *Reader) readSubjectNode() (*Node, Status) {
	return r.readNodeCommon(true)
}

func (r *Reader) readPredicateNode() (*Node, Status) {
	c, err := r.peekByte()
	if err != nil {
		return nil, r.ioStatus(err)
	}
	if c == 'a' {
		word, _ := r.peekWord()
		if word == "a" {
			r.readWord()
			return NewIRI(rdfType), Success
		}
	}
	if r.flags.Has(FlagVariables) && (c == '?' || c == '$') {
		return r.readVariable()
	}
	return r.readIRIOrCURIE()
}

func (r *Reader) readObjectNode() (*Node, StatementFlags, Status) {
	c, err := r.peekByte()
	if err != nil {
		return nil, 0, r.ioStatus(err)
	}
	switch {
	case c == '"' || c == '\'':
		n, st := r.readLiteral(c)
		return n, 0, st
	case c == '+' || c == '-' || c == '.' || isDigitByte(c):
		n, st := r.readNumericLiteral()
		return n, 0, st
	case c == '[':
		n, st := r.readNodeCommon(false)
		flags := StatementFlags(FlagAnonO)
		if st == Success && r.lastAnonWasEmpty {
			flags |= FlagEmptyO
		}
		return n, flags, st
	case c == '(':
		n, st := r.readNodeCommon(false)
		flags := StatementFlags(FlagListO)
		if st == Success && n.IsIRI() && n.Value == rdfNil {
			flags |= FlagEmptyO
		}
		return n, flags, st
	default:
		n, st := r.readNodeCommon(false)
		return n, 0, st
	}
}

// readNodeCommon reads the node forms shared between subject and
// object position: IRI, blank label, anonymous node, collection,
// variable, the boolean keywords "true"/"false", or CURIE.
func (r *Reader) readNodeCommon(subjectPosition bool) (*Node, Status) {
	c, err := r.peekByte()
	if err != nil {
		return nil, r.ioStatus(err)
	}
	switch c {
	case '<':
		iri, st := r.readIRIRef()
		if st != Success {
			return nil, st
		}
		return NewIRI(iri), Success
	case '_':
		return r.readBlankLabel()
	case '[':
		return r.readAnonymousNode(subjectPosition)
	case '(':
		return r.readCollection(subjectPosition)
	case '?', '$':
		if r.flags.Has(FlagVariables) {
			return r.readVariable()
		}
		return nil, r.fail(BadSyntax, "variables not enabled")
	case 't', 'f':
		word, _ := r.peekWord()
		switch word {
		case "true":
			r.readWord()
			return NewTypedLiteral("true", xsd.Boolean), Success
		case "false":
			r.readWord()
			return NewTypedLiteral("false", xsd.Boolean), Success
		}
	}
	return r.readIRIOrCURIE()
}

func (r *Reader) readVariable() (*Node, Status) {
	_, _ = r.readByte()
	var b strings.Builder
	for {
		c, err := r.peekByte()
		if err != nil || isTermByte(c) {
			break
		}
		r.readByte()
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return nil, r.fail(BadSyntax, "empty variable name")
	}
	return NewVariable(b.String()), Success
}

// readIRIOrCURIE reads a "prefix:local" CURIE (expanded against the
// environment unless FlagPrefixed). A token without ":" is a syntax
// error here, so the uppercase "A" is not read as rdf:type.
func (r *Reader) readIRIOrCURIE() (*Node, Status) {
	var prefixLabel string
	var b strings.Builder
	sawColon := false
	for {
		c, err := r.peekByte()
		if err != nil || isTermByte(c) {
			break
		}
		r.readByte()
		if c == ':' && !sawColon {
			prefixLabel = b.String()
			b.Reset()
			sawColon = true
			continue
		}
		b.WriteByte(c)
	}
	if !sawColon {
		return nil, r.fail(BadSyntax, "illegal token; expected IRI, CURIE, or keyword")
	}
	local := b.String()

	if r.flags.Has(FlagPrefixed) {
		return NewCURIE(prefixLabel, local), Success
	}

	ns, ok := r.env.GetPrefix(prefixLabel)
	if !ok {
		return nil, r.fail(BadCurie, "undefined prefix: "+prefixLabel)
	}
	return NewIRI(ns + local), Success
}

// readIRIRef reads "<...>", resolving it against the base unless
// FlagRelative, and decoding "\uXXXX"/"\UXXXXXXXX" escapes.
func (r *Reader) readIRIRef() (string, Status) {
	if st := r.expectByte('<'); st != Success {
		return "", st
	}
	var b strings.Builder
	for {
		c, err := r.readByte()
		if err != nil {
			return "", r.ioStatus(err)
		}
		switch c {
		case '>':
			return r.resolveIRI(b.String())
		case '<', '"', '{', '}', '|', '^', '`':
			return "", r.fail(BadURI, "illegal character in IRI reference")
		case '\\':
			n, err := r.readByte()
			if err != nil {
				return "", r.ioStatus(err)
			}
			switch n {
			case 'u':
				if err := r.readHexEscape(&b, 4); err != nil {
					return "", r.fail(BadURI, err.Error())
				}
			case 'U':
				if err := r.readHexEscape(&b, 8); err != nil {
					return "", r.fail(BadURI, err.Error())
				}
			default:
				return "", r.fail(BadURI, "illegal escape in IRI reference")
			}
		default:
			if c <= 0x20 {
				return "", r.fail(BadURI, "control character in IRI reference")
			}
			b.WriteByte(c)
		}
	}
}

func (r *Reader) resolveIRI(iri string) (string, Status) {
	if uriref.HasScheme(iri) || strings.HasPrefix(iri, "//") {
		return iri, Success
	}
	if r.flags.Has(FlagRelative) {
		return iri, Success
	}
	base := r.env.Base()
	if base == "" {
		return "", r.fail(BadURI, "relative IRI reference without base")
	}
	resolved := uriref.Resolve(uriref.Parse(iri), uriref.Parse(base))
	return resolved.String(), Success
}

// readBlankLabel reads "_:label", qualifying it with the document
// prefix unless FlagGenerated is set, and recording its use of "b…" so
// generated labels land in a disjoint namespace (spec §4.6).
func (r *Reader) readBlankLabel() (*Node, Status) {
	if st := r.expectByte('_'); st != Success {
		return nil, st
	}
	if st := r.expectByte(':'); st != Success {
		return nil, st
	}
	var b strings.Builder
	for {
		c, err := r.peekByte()
		if err != nil || isTermByte(c) {
			break
		}
		r.readByte()
		b.WriteByte(c)
	}
	label := b.String()
	if label == "" {
		return nil, r.fail(BadLabel, "empty blank node label")
	}

	if r.flags.Has(FlagGenerated) {
		return NewBlank(label), Success
	}

	if strings.HasPrefix(label, "b") {
		r.usesLowerB = true
	}
	r.seenExplicit[label] = true
	return NewBlank(r.qualifyBlank(label)), Success
}

// qualifyBlank applies the document prefix (unless FlagGlobal) to an
// explicit or generated label.
func (r *Reader) qualifyBlank(label string) string {
	if r.flags.Has(FlagGlobal) {
		return label
	}
	return r.docPrefix + label
}

// nextGeneratedBlank mints "{docprefix}b{serial}" (or a capital "B"
// variant if the input already uses lowercase "b…" labels, keeping the
// two namespaces disjoint per spec §4.6).
func (r *Reader) nextGeneratedBlank() *Node {
	r.blankSerial++
	letter := "b"
	if r.usesLowerB {
		letter = "B"
	}
	serial := itoa(r.blankSerial)
	if r.flags.Has(FlagOrdered) {
		for len(serial) < 9 {
			serial = "0" + serial
		}
	}
	label := letter + serial
	return NewBlank(r.qualifyBlank(label))
}

// readAnonymousNode reads "[ propertyList? ]" (spec §4.6). An empty
// body is a freshly minted blank with no emitted statements (the
// caller may flag EMPTY_ANON on whichever statement embeds it); a
// non-empty body drives the nested predicate-object list with the anon
// as subject, then emits an End event when "]" closes.
func (r *Reader) readAnonymousNode(subjectPosition bool) (*Node, Status) {
	r.readByte() // '['
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > maxReaderDepth {
		return nil, r.fail(BadStack, "anonymous node nesting too deep")
	}

	if err := r.skipInsignificant(); err != nil {
		return nil, r.ioStatus(err)
	}
	c, err := r.peekByte()
	if err != nil {
		return nil, r.ioStatus(err)
	}
	if c == ']' {
		r.readByte()
		r.lastAnonWasEmpty = true
		return r.nextGeneratedBlank(), Success
	}
	r.lastAnonWasEmpty = false

	anon := r.nextGeneratedBlank()
	if st := r.readPropertyListInto(anon); st != Success {
		return nil, st
	}
	if err := r.skipInsignificant(); err != nil {
		return nil, r.ioStatus(err)
	}
	if st := r.expectByte(']'); st != Success {
		return nil, st
	}
	if st := r.sink.OnEvent(&Event{Kind: EventEnd, EndNode: anon}); st.IsFatal() {
		return nil, st
	}
	return anon, Success
}

// readPropertyListInto drives "verb object-list (';' verb object-list)*"
// with subject fixed to node, emitting Statement events directly (used
// for "[ … ]" bodies).
func (r *Reader) readPropertyListInto(node *Node) Status {
	for {
		if err := r.skipInsignificant(); err != nil {
			return r.ioStatus(err)
		}
		predicate, st := r.readPredicateNode()
		if st != Success {
			return st
		}
		for {
			if err := r.skipInsignificant(); err != nil {
				return r.ioStatus(err)
			}
			object, flags, st := r.readObjectNode()
			if st != Success {
				return st
			}
			stmt := &Statement{Subject: node, Predicate: predicate, Object: object, Graph: r.currentGraph,
				Caret: &Caret{Document: r.document, Line: r.line, Col: r.col}}
			if st := r.sink.OnEvent(&Event{Kind: EventStatement, Statement: stmt, Flags: flags}); st.IsFatal() {
				return st
			}
			if err := r.skipInsignificant(); err != nil {
				return r.ioStatus(err)
			}
			c, err := r.peekByte()
			if err != nil {
				return r.ioStatus(err)
			}
			switch c {
			case ',':
				r.readByte()
				continue
			case ';':
				r.readByte()
				if err := r.skipInsignificant(); err != nil {
					return r.ioStatus(err)
				}
				if c2, err := r.peekByte(); err == nil && (c2 == ']' || c2 == '.') {
					return Success
				}
				goto nextPredicate
			default:
				return Success // "]" or "." handled by the caller
			}
		}
	nextPredicate:
	}
}

// readCollection reads "( obj* )", desugaring it into rdf:first/
// rdf:rest cons cells terminated by rdf:nil (spec §4.6).
func (r *Reader) readCollection(subjectPosition bool) (*Node, Status) {
	r.readByte() // '('
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > maxReaderDepth {
		return nil, r.fail(BadStack, "collection nesting too deep")
	}

	var items []*Node
	for {
		if err := r.skipInsignificant(); err != nil {
			return nil, r.ioStatus(err)
		}
		c, err := r.peekByte()
		if err != nil {
			return nil, r.ioStatus(err)
		}
		if c == ')' {
			r.readByte()
			break
		}
		obj, _, st := r.readObjectNode()
		if st != Success {
			return nil, st
		}
		items = append(items, obj)
	}

	if len(items) == 0 {
		return NewIRI(rdfNil), Success
	}

	nilNode := NewIRI(rdfNil)
	cells := make([]*Node, len(items))
	for i := range items {
		cells[i] = r.nextGeneratedBlank()
	}
	for i, item := range items {
		rest := nilNode
		if i+1 < len(cells) {
			rest = cells[i+1]
		}
		caret := &Caret{Document: r.document, Line: r.line, Col: r.col}
		if st := r.sink.OnEvent(&Event{Kind: EventStatement, Statement: &Statement{
			Subject: cells[i], Predicate: NewIRI(rdfFirst), Object: item, Graph: r.currentGraph, Caret: caret,
		}}); st.IsFatal() {
			return nil, st
		}
		if st := r.sink.OnEvent(&Event{Kind: EventStatement, Statement: &Statement{
			Subject: cells[i], Predicate: NewIRI(rdfRest), Object: rest, Graph: r.currentGraph, Caret: caret,
		}}); st.IsFatal() {
			return nil, st
		}
	}
	return cells[0], Success
}

// ---- low-level byte cursor ----

func (r *Reader) readByte() (byte, error) {
	c, err := r.br.ReadByte()
	if err != nil {
		return 0, err
	}
	if !r.validator.ValidateBytes([]byte{c}) {
		return 0, errInvalidUTF8
	}
	if c == '\n' {
		r.line++
		r.col = 0
		r.runeBytes = r.runeBytes[:0]
		return c, nil
	}
	if len(r.runeBytes) == 0 {
		r.runeWant = utf8SeqLen(c)
	}
	r.runeBytes = append(r.runeBytes, c)
	if len(r.runeBytes) >= r.runeWant {
		rn, _ := utf8.DecodeRune(r.runeBytes)
		r.col += textutil.ColumnWidth(rn)
		r.runeBytes = r.runeBytes[:0]
	}
	return c, nil
}

// utf8SeqLen returns the number of bytes the sequence starting with
// lead byte c is expected to occupy, so the column counter can wait
// for a full rune before charging its display width.
func utf8SeqLen(c byte) int {
	switch {
	case c&0x80 == 0x00:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func (r *Reader) peekByte() (byte, error) {
	b, err := r.br.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) expectByte(want byte) Status {
	c, err := r.readByte()
	if err != nil {
		return r.ioStatus(err)
	}
	if c != want {
		return r.fail(BadSyntax, fmt.Sprintf("expected %q, got %q", want, c))
	}
	return Success
}

// skipInsignificant consumes whitespace and "#" comments.
func (r *Reader) skipInsignificant() error {
	for {
		c, err := r.peekByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case isWS(c):
			r.readByte()
		case c == '#':
			for {
				c, err := r.readByte()
				if err != nil {
					return nil
				}
				if c == '\n' {
					break
				}
			}
		default:
			return nil
		}
	}
}

func isWS(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
func isWordStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }
func isTermByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '.', ',', ';', ')', ']', '}':
		return true
	}
	return false
}

// peekWord reads ahead a maximal run of letters without consuming it.
func (r *Reader) peekWord() (string, error) {
	var peeked []byte
	for n := 1; n <= 16; n++ {
		buf, err := r.br.Peek(n)
		if err != nil {
			peeked = buf
			break
		}
		peeked = buf
		c := buf[n-1]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			peeked = buf[:n-1]
			break
		}
	}
	return string(peeked), nil
}

func (r *Reader) readWord() string {
	word, _ := r.peekWord()
	for range word {
		r.readByte()
	}
	return word
}

func (r *Reader) readHexEscape(b *strings.Builder, n int) error {
	var u uint32
	for i := 0; i < n; i++ {
		c, err := r.readByte()
		if err != nil {
			return err
		}
		u <<= 4
		switch {
		case c >= '0' && c <= '9':
			u |= uint32(c - '0')
		case c >= 'A' && c <= 'F':
			u |= uint32(c-'A') + 10
		case c >= 'a' && c <= 'f':
			u |= uint32(c-'a') + 10
		default:
			return errors.New("illegal hex digit in Unicode escape")
		}
	}
	b.WriteRune(rune(u))
	return nil
}

// fail constructs a diagnostic at the current caret, logs it, and
// returns its Status; under FlagLax and a recoverable status band it
// instead resynchronises at the next statement boundary and returns
// Failure so the caller can continue.
func (r *Reader) fail(status Status, reason string) Status {
	caret := Caret{Document: r.document, Line: r.line, Col: r.col}
	logger := r.logger
	if logger == nil {
		logger = NewFallbackLogger(nil)
	}
	logger.Log(LevelWarning, Fields{"caret": caret, "status": status}, "%s", reason)
	if r.flags.Has(FlagLax) && isLaxRecoverable(status) {
		r.skipUntilStatementBoundary()
		return Failure
	}
	return status
}

func isLaxRecoverable(st Status) bool {
	switch st {
	case BadSyntax, BadLiteral, BadText, BadCurie, BadURI:
		return true
	}
	return false
}

// skipUntilStatementBoundary resynchronises after a recovered error by
// discarding bytes up to and including the next ".".
func (r *Reader) skipUntilStatementBoundary() {
	for {
		c, err := r.readByte()
		if err != nil || c == '.' {
			return
		}
	}
}

func (r *Reader) ioStatus(err error) Status {
	if errors.Is(err, io.EOF) {
		return NoData
	}
	if errors.Is(err, errInvalidUTF8) {
		return BadText
	}
	return BadRead
}
