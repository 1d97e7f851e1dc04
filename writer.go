package tripn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/quies-net/tripn/internal/uriref"
)

// writerField tracks which part of a statement a context is currently
// positioned at (spec §4.7).
type writerField uint8

const (
	fieldNone writerField = iota
	fieldSubject
	fieldPredicate
	fieldObject
)

// writerContext is one level of the writer's context stack: one per
// open subject/predicate/anon/list/graph level.
type writerContext struct {
	subject    *Node
	predicate  *Node
	field      writerField
	isAnon     bool
	isList     bool
	isGraph    bool
	wroteFirst bool
}

// ByteWriter is the minimal byte-sink interface Writer needs. An
// rdfio.ByteSink satisfies it directly; NewWriter's own default wraps a
// *bufio.Writer in bufWriter to do the same, without this package
// importing rdfio back (rdfio already imports tripn).
type ByteWriter interface {
	WriteString(s string) error
	Flush() error
}

// bufWriter adapts *bufio.Writer's (int, error) WriteString to the
// error-only ByteWriter signature rdfio.ByteSink already uses.
type bufWriter struct{ *bufio.Writer }

func (b bufWriter) WriteString(s string) error {
	_, err := b.Writer.WriteString(s)
	return err
}

// Writer is a stateful event sink that emits syntactically valid,
// abbreviated Turtle/TriG, or terse N-Triples/N-Quads, driven by an
// Event stream (spec §4.7). It implements Sink.
type Writer struct {
	bw     ByteWriter
	syntax Syntax
	flags  WriterFlags
	env    *Environment

	stack []writerContext

	wroteAny bool
	err      error
}

// NewWriter constructs a Writer over w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	wr := &Writer{
		bw:  bufWriter{bufio.NewWriter(w)},
		env: NewEnvironment(""),
	}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// OnEvent implements Sink.
func (w *Writer) OnEvent(e *Event) Status {
	if w.err != nil {
		return BadWrite
	}
	switch e.Kind {
	case EventBase:
		return w.onBase(e.BaseURI)
	case EventPrefix:
		return w.onPrefix(e.PrefixName, e.PrefixURI)
	case EventStatement:
		return w.onStatement(e.Statement, e.Flags)
	case EventEnd:
		return w.onEnd(e.EndNode)
	default:
		return BadEvent
	}
}

func (w *Writer) onBase(uri *Node) Status {
	if st := w.closeOpenStatement(); st != Success {
		return st
	}
	w.env.SetBase(uri.Value)
	switch w.syntax {
	case SyntaxNTriples, SyntaxNQuads:
		return Success
	default:
		if w.syntax == SyntaxTriG || w.syntax == SyntaxTurtle {
			w.writeString("@base <")
			w.writeString(uri.Value)
			w.writeString("> .\n")
		}
	}
	return w.status()
}

func (w *Writer) onPrefix(name, uri *Node) Status {
	if st := w.closeOpenStatement(); st != Success {
		return st
	}
	w.env.SetPrefix(name.Value, uri.Value)
	switch w.syntax {
	case SyntaxNTriples, SyntaxNQuads:
		return Success
	default:
		w.writeString("@prefix ")
		w.writeString(name.Value)
		w.writeString(": <")
		w.writeString(uri.Value)
		w.writeString("> .\n")
	}
	return w.status()
}

func (w *Writer) onStatement(s *Statement, flags StatementFlags) Status {
	if s == nil {
		return BadArg
	}
	if w.syntax == SyntaxNTriples || w.syntax == SyntaxNQuads {
		return w.writeTerseStatement(s)
	}
	return w.writePrettyStatement(s, flags)
}

func (w *Writer) writeTerseStatement(s *Statement) Status {
	if !w.flags.Has(FlagWriterLax) {
		for _, n := range []*Node{s.Subject, s.Predicate, s.Object, s.Graph} {
			if !representableTerse(n) {
				return BadArg
			}
		}
	}
	w.writeNodeVerbose(s.Subject)
	w.writeString(" ")
	w.writeNodeVerbose(s.Predicate)
	w.writeString(" ")
	w.writeNodeVerbose(s.Object)
	if w.syntax == SyntaxNQuads && s.Graph != nil {
		w.writeString(" ")
		w.writeNodeVerbose(s.Graph)
	}
	w.writeString(" .\n")
	return w.status()
}

// representableTerse reports whether n has a node kind that N-Triples/
// N-Quads can represent directly: IRI, blank node, or literal, but
// neither a Turtle-only variable nor an unexpanded CURIE (spec §4.7;
// FlagWriterLax bypasses this check for best-effort output instead).
func representableTerse(n *Node) bool {
	return n == nil || n.Kind == KindIRI || n.Kind == KindBlank || n.Kind == KindLiteral
}

// writePrettyStatement implements the Turtle/TriG abbreviation rules
// of spec §4.7: same-subject-and-predicate emits ", o"; same subject
// emits "; p o"; otherwise the previous statement is closed with "."
// and a new one starts.
func (w *Writer) writePrettyStatement(s *Statement, flags StatementFlags) Status {
	if st := w.maybeSwitchGraph(s.Graph); st != Success {
		return st
	}

	top := w.top()

	switch {
	case top != nil && top.isList:
		if top.wroteFirst {
			w.writeString(" ")
		}
		w.writeObjectNode(s.Object, flags)
		top.wroteFirst = true

	case top != nil && top.isAnon && top.field == fieldNone && top.subject.Equals(s.Subject):
		w.writeNodeAbbrev(s.Predicate)
		w.writeString(" ")
		w.writeObjectNode(s.Object, flags)
		top.predicate = s.Predicate
		top.field = fieldObject

	case top != nil && top.field != fieldNone && top.subject.Equals(s.Subject) && top.predicate.Equals(s.Predicate):
		w.writeString(w.objectListSep())
		w.writeObjectNode(s.Object, flags)

	case top != nil && top.field != fieldNone && top.subject.Equals(s.Subject):
		w.writeString(w.predicateListSep())
		w.writeNodeAbbrev(s.Predicate)
		w.writeString(" ")
		w.writeObjectNode(s.Object, flags)
		top.predicate = s.Predicate

	default:
		if st := w.closeOpenStatement(); st != Success {
			return st
		}
		w.writeNodeAbbrev(s.Subject)
		w.writeString(" ")
		w.writeNodeAbbrev(s.Predicate)
		w.writeString(" ")
		w.writeObjectNode(s.Object, flags)
		w.push(writerContext{subject: s.Subject, predicate: s.Predicate, field: fieldObject})
	}

	if flags&FlagListO != 0 && flags&FlagEmptyO == 0 {
		w.push(writerContext{subject: s.Object, field: fieldNone, isList: true})
	} else if flags&FlagAnonO != 0 && flags&FlagEmptyO == 0 {
		w.push(writerContext{subject: s.Object, field: fieldNone, isAnon: true})
	}
	return w.status()
}

// writeObjectNode writes the object position of a statement: an opening
// "(" or "[" when flags mark it as the start of a collection or nested
// anonymous block (the matching close arrives later via an End event),
// "()"/"[]" for one already known to be empty, or the node itself otherwise.
func (w *Writer) writeObjectNode(n *Node, flags StatementFlags) {
	switch {
	case flags&FlagListO != 0 && flags&FlagEmptyO != 0:
		w.writeString("()")
	case flags&FlagEmptyO != 0:
		w.writeString("[]")
	case flags&FlagListO != 0:
		w.writeString("(")
	case flags&FlagAnonO != 0:
		w.writeString("[")
	default:
		w.writeNodeAbbrev(n)
	}
}

// objectListSep returns the separator before the next member of an
// object list ("subj p o1, o2"): a newline-indented comma normally,
// or a plain comma-space under FlagTerse (spec §4.7).
func (w *Writer) objectListSep() string {
	if w.flags.Has(FlagTerse) {
		return ", "
	}
	return ",\n\t\t"
}

// predicateListSep returns the separator before the next predicate of
// a predicate list ("subj p1 o1 ; p2 o2"), terse or indented.
func (w *Writer) predicateListSep() string {
	if w.flags.Has(FlagTerse) {
		return " ; "
	}
	return " ;\n\t"
}

func (w *Writer) maybeSwitchGraph(graph *Node) Status {
	if w.syntax != SyntaxTriG {
		return Success
	}
	cur := w.currentGraphNode()
	if graphsEqual(cur, graph) {
		return Success
	}
	if st := w.closeOpenStatement(); st != Success {
		return st
	}
	for len(w.stack) > 0 && w.stack[len(w.stack)-1].isGraph {
		w.writeString("}\n")
		w.pop()
	}
	if graph != nil {
		w.writeNodeAbbrev(graph)
		w.writeString(" {\n\t")
		w.push(writerContext{subject: graph, isGraph: true})
	}
	return w.status()
}

func (w *Writer) currentGraphNode() *Node {
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i].isGraph {
			return w.stack[i].subject
		}
	}
	return nil
}

// onEnd pops contexts until the one whose subject is node, closing its
// bracket (spec §4.7).
func (w *Writer) onEnd(node *Node) Status {
	for len(w.stack) > 0 {
		top := w.top()
		match := top.subject.Equals(node)
		closer := "]"
		if top.isList {
			closer = ")"
		}
		w.pop()
		if top.isAnon || top.isList {
			w.writeString(closer)
		}
		if match {
			break
		}
	}
	return w.status()
}

// closeOpenStatement flushes any open (non-bracket, non-graph) context
// with a terminating ".".
func (w *Writer) closeOpenStatement() Status {
	for len(w.stack) > 0 && !w.top().isAnon && !w.top().isList && !w.top().isGraph {
		w.writeString(" .\n")
		w.pop()
	}
	return w.status()
}

// Close flushes and closes every remaining open context, then the byte
// sink, per spec §4.7 "on document end … flush, close all open
// contexts, final .".
func (w *Writer) Close() Status {
	for len(w.stack) > 0 {
		top := w.top()
		switch {
		case top.isGraph:
			w.writeString("}\n")
		case top.isAnon:
			w.writeString("]")
		case top.isList:
			w.writeString(")")
		default:
			w.writeString(" .\n")
		}
		w.pop()
	}
	if err := w.bw.Flush(); err != nil {
		w.err = err
	}
	return w.status()
}

func (w *Writer) top() *writerContext {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

func (w *Writer) push(c writerContext) { w.stack = append(w.stack, c) }
func (w *Writer) pop() {
	if len(w.stack) > 0 {
		w.stack = w.stack[:len(w.stack)-1]
	}
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if err := w.bw.WriteString(s); err != nil {
		w.err = err
	}
	if !w.flags.Has(FlagBulk) {
		_ = w.bw.Flush()
	}
}

func (w *Writer) status() Status {
	if w.err != nil {
		return BadWrite
	}
	return Success
}

// writeNodeAbbrev writes a node using Turtle/TriG abbreviation: a
// CURIE when the IRI is within a known prefix's namespace, a relative
// reference when within the base, else "<absolute>" (spec §4.7).
func (w *Writer) writeNodeAbbrev(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindIRI:
		w.writeIRIAbbrev(n.Value)
	case KindBlank:
		w.writeString("_:")
		w.writeString(n.Value)
	case KindVariable:
		w.writeString("?")
		w.writeString(n.Value)
	case KindCURIE:
		w.writeString(n.Value)
	case KindLiteral:
		w.writeLiteral(n)
	}
}

// writeNodeVerbose writes a node in unabbreviated N-Triples/N-Quads form.
func (w *Writer) writeNodeVerbose(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindIRI:
		w.writeString("<")
		w.writeString(n.Value)
		w.writeString(">")
	case KindBlank:
		w.writeString("_:")
		w.writeString(n.Value)
	case KindVariable:
		w.writeString("?")
		w.writeString(n.Value)
	case KindCURIE:
		w.writeString(n.Value)
	case KindLiteral:
		w.writeLiteral(n)
	}
}

func (w *Writer) writeIRIAbbrev(iri string) {
	if iri == rdfType {
		w.writeString("a")
		return
	}
	if name, suffix, ok := w.env.Qualify(iri); ok {
		w.writeString(name)
		w.writeString(":")
		w.writeString(suffix)
		return
	}
	if base := w.env.Base(); base != "" {
		v := uriref.Parse(iri)
		b := uriref.Parse(base)
		if uriref.IsWithin(v, b) {
			rel := uriref.Relativise(v, b)
			w.writeString("<")
			w.writeString(rel.String())
			w.writeString(">")
			return
		}
	}
	w.writeString("<")
	w.writeString(iri)
	w.writeString(">")
}

func (w *Writer) writeLiteral(n *Node) {
	quote := `"""`
	if n.Flags&FlagIsLong == 0 {
		quote = `"`
	}
	w.writeString(quote)
	w.writeString(w.escapeLiteral(n.Value, quote == `"""`))
	w.writeString(quote)

	switch {
	case n.Flags&FlagHasLanguage != 0:
		w.writeString("@")
		w.writeString(n.Language())
	case n.Flags&FlagHasDatatype != 0 && n.DatatypeIRI() != "" && n.DatatypeIRI() != "http://www.w3.org/2001/XMLSchema#string":
		w.writeString("^^")
		w.writeIRIAbbrev(n.DatatypeIRI())
	}
}

// escapeLiteral escapes a literal body for output; long (triple-quoted)
// literals only need to escape an embedded run of the closing quote
// and backslash, short ones also escape newlines and the double quote char.
func (w *Writer) escapeLiteral(s string, long bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			if long && i+1 < len(s) && s[i+1] != '"' {
				b.WriteRune(r)
			} else {
				b.WriteString(`\"`)
			}
		case '\n':
			if long {
				b.WriteRune(r)
			} else {
				b.WriteString(`\n`)
			}
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if w.flags.Has(FlagASCII) && r > 0x7f {
				if r > 0xffff {
					fmt.Fprintf(&b, `\U%08X`, r)
				} else {
					fmt.Fprintf(&b, `\u%04X`, r)
				}
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
