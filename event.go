package tripn

// StatementFlags is the bitset of pretty-printing hints carried on a
// Statement event (spec §6). Bit positions are a stable on-wire
// contract for downstream tools.
type StatementFlags uint16

const (
	FlagEmptyS StatementFlags = 1 << iota
	FlagEmptyO
	FlagEmptyG
	FlagAnonS
	FlagAnonO
	FlagListS
	FlagListO
	FlagTerseS
	FlagTerseO
)

// Statement is an ordered 3- or 4-tuple of node references (spec §3).
type Statement struct {
	Subject   *Node
	Predicate *Node
	Object    *Node
	Graph     *Node // nil for a triple outside any named graph

	Caret *Caret
}

// HasGraph reports whether s carries a fourth (graph) component.
func (s *Statement) HasGraph() bool {
	return s != nil && s.Graph != nil
}

// Equals reports whether s and o have equal subject, predicate, object
// and graph (two absent graphs are equal; a statement with a graph never
// equals one without), ignoring Caret, which is metadata only.
func (s *Statement) Equals(o *Statement) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Subject.Equals(o.Subject) &&
		s.Predicate.Equals(o.Predicate) &&
		s.Object.Equals(o.Object) &&
		graphsEqual(s.Graph, o.Graph)
}

// graphsEqual treats two absent graphs (both nil, meaning "the default
// graph") as equal, unlike Node.Equals which rejects nil on either side.
func graphsEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(b)
}

// EventKind tags the four event shapes (spec §4.5).
type EventKind uint8

const (
	EventBase EventKind = iota
	EventPrefix
	EventStatement
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventBase:
		return "base"
	case EventPrefix:
		return "prefix"
	case EventStatement:
		return "statement"
	case EventEnd:
		return "end"
	default:
		return "event(" + itoa(int(k)) + ")"
	}
}

// Event is a tagged union over the four event shapes (spec §4.5, §9).
// It is a struct rather than an interface so the reader, writer, and
// transformers can switch on Kind exhaustively without a type switch;
// fields unused by the current Kind are zero.
type Event struct {
	Kind EventKind

	// EventBase
	BaseURI *Node

	// EventPrefix
	PrefixName *Node
	PrefixURI  *Node

	// EventStatement
	Statement *Statement
	Flags     StatementFlags

	// EventEnd: the anonymous node whose bracket is closing.
	EndNode *Node
}

// Sink is the sole coupling between producer (reader, model range) and
// consumer (writer, model inserter); composability is by wrapping one
// Sink around another (spec §4.5, §9).
type Sink interface {
	OnEvent(e *Event) Status
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(e *Event) Status

// OnEvent implements Sink.
func (f SinkFunc) OnEvent(e *Event) Status { return f(e) }

// WriteBase is a convenience helper for emitting a Base event.
func WriteBase(sink Sink, uri *Node) Status {
	return sink.OnEvent(&Event{Kind: EventBase, BaseURI: uri})
}

// WritePrefix is a convenience helper for emitting a Prefix event.
func WritePrefix(sink Sink, name, uri *Node) Status {
	return sink.OnEvent(&Event{Kind: EventPrefix, PrefixName: name, PrefixURI: uri})
}

// WriteStatement is a convenience helper for emitting a Statement event.
func WriteStatement(sink Sink, st *Statement, flags StatementFlags) Status {
	return sink.OnEvent(&Event{Kind: EventStatement, Statement: st, Flags: flags})
}

// WriteEnd is a convenience helper for emitting an End event.
func WriteEnd(sink Sink, node *Node) Status {
	return sink.OnEvent(&Event{Kind: EventEnd, EndNode: node})
}
