package model

import (
	tripn "github.com/quies-net/tripn"
)

const (
	rdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	rdfRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	rdfNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
)

// WriteRange drains c, writing every matched statement to sink as a
// Statement/End event sequence. Blank nodes used as the object of
// exactly one statement are collapsed into an inline "[ ... ]" block
// at their point of use (FlagAnonO); an rdf:first/rdf:rest/rdf:nil
// chain rooted at such a node is collapsed into "( ... )" (FlagListO)
// instead, per spec §4.9.
func WriteRange(c *Cursor, sink tripn.Sink) tripn.Status {
	var all []*tripn.Statement
	for !c.Done() {
		all = append(all, c.Statement())
		if st := c.Next(); st == tripn.BadCursor {
			return tripn.BadCursor
		}
	}
	return writeStatements(all, sink)
}

// rangeWriter holds the classification tables computed once over the
// full statement set so emission can decide, node by node, whether a
// blank node is a top-level subject, an inlineable anonymous object, or
// a collection cell.
type rangeWriter struct {
	order     []*tripn.Node
	bySubject map[*tripn.Node][]*tripn.Statement
	objCount  map[*tripn.Node]int
	listFirst map[*tripn.Node]*tripn.Statement
	listRest  map[*tripn.Node]*tripn.Statement
	written   map[*tripn.Node]bool
	sink      tripn.Sink
}

func writeStatements(all []*tripn.Statement, sink tripn.Sink) tripn.Status {
	rw := &rangeWriter{
		bySubject: make(map[*tripn.Node][]*tripn.Statement),
		objCount:  make(map[*tripn.Node]int),
		listFirst: make(map[*tripn.Node]*tripn.Statement),
		listRest:  make(map[*tripn.Node]*tripn.Statement),
		written:   make(map[*tripn.Node]bool),
		sink:      sink,
	}
	for _, st := range all {
		if _, seen := rw.bySubject[st.Subject]; !seen {
			rw.order = append(rw.order, st.Subject)
		}
		rw.bySubject[st.Subject] = append(rw.bySubject[st.Subject], st)
		if st.Object != nil && st.Object.IsBlank() {
			rw.objCount[st.Object]++
		}
		if st.Subject.IsBlank() {
			switch st.Predicate.Value {
			case rdfFirst:
				rw.listFirst[st.Subject] = st
			case rdfRest:
				rw.listRest[st.Subject] = st
			}
		}
	}

	for _, subj := range rw.order {
		if rw.written[subj] || (rw.isListNode(subj) && rw.objCount[subj] > 0) || rw.isInlineAnon(subj) {
			continue
		}
		if status := rw.emitSubject(subj); status.IsFatal() {
			return status
		}
	}
	return tripn.Success
}

// isListNode reports whether n is a list head: a blank node with both
// rdf:first and rdf:rest, referenced as the object of at most one
// statement (spec §4.9). A shared/reused cell fails the object-count
// check and is left as an ordinary subject instead of being collapsed,
// so every reference to it still appears in the serialized range.
func (rw *rangeWriter) isListNode(n *tripn.Node) bool {
	_, hasFirst := rw.listFirst[n]
	_, hasRest := rw.listRest[n]
	return hasFirst && hasRest && rw.objCount[n] <= 1
}

// isInlineAnon reports whether n is a blank node referenced as an
// object exactly once and is not itself a list cell, making it eligible
// to render as a nested "[ ... ]" at its point of use rather than as a
// top-level subject.
func (rw *rangeWriter) isInlineAnon(n *tripn.Node) bool {
	return n != nil && n.IsBlank() && rw.objCount[n] == 1 && !rw.isListNode(n)
}

func (rw *rangeWriter) objectFlags(obj *tripn.Node) tripn.StatementFlags {
	switch {
	case obj != nil && rw.isListNode(obj):
		return tripn.FlagListO
	case rw.isInlineAnon(obj):
		if len(rw.bySubject[obj]) == 0 {
			return tripn.FlagAnonO | tripn.FlagEmptyO
		}
		return tripn.FlagAnonO
	default:
		return 0
	}
}

// emitSubject writes every statement with subject subj in turn, opening
// and closing a nested block for any object that objectFlags marks as
// inlineable.
func (rw *rangeWriter) emitSubject(subj *tripn.Node) tripn.Status {
	rw.written[subj] = true
	for _, st := range rw.bySubject[subj] {
		flags := rw.objectFlags(st.Object)
		if status := tripn.WriteStatement(rw.sink, st, flags); status.IsFatal() {
			return status
		}
		if status := rw.emitNested(st.Object, flags); status.IsFatal() {
			return status
		}
	}
	return tripn.Success
}

// emitNested writes the body of, and End event for, an inlined object
// opened by a Statement event carrying flags.
func (rw *rangeWriter) emitNested(obj *tripn.Node, flags tripn.StatementFlags) tripn.Status {
	switch {
	case flags&tripn.FlagEmptyO != 0:
		return tripn.Success
	case flags&tripn.FlagListO != 0:
		rw.written[obj] = true
		if status := rw.emitList(obj); status.IsFatal() {
			return status
		}
	case flags&tripn.FlagAnonO != 0:
		rw.written[obj] = true
		if status := rw.emitSubject(obj); status.IsFatal() {
			return status
		}
	default:
		return tripn.Success
	}
	return tripn.WriteEnd(rw.sink, obj)
}

// emitList walks the rdf:first/rdf:rest chain rooted at head, emitting
// each item as a Statement event whose Subject/Predicate are ignored by
// a Writer positioned inside a collection context (only Object matters
// there); an item that is itself anonymous or a nested list opens its
// own block the same way a top-level object would.
func (rw *rangeWriter) emitList(head *tripn.Node) tripn.Status {
	node := head
	for {
		first, ok := rw.listFirst[node]
		if !ok {
			return tripn.Success
		}
		rw.written[node] = true
		flags := rw.objectFlags(first.Object)
		if status := tripn.WriteStatement(rw.sink, first, flags); status.IsFatal() {
			return status
		}
		if status := rw.emitNested(first.Object, flags); status.IsFatal() {
			return status
		}

		rest, ok := rw.listRest[node]
		if !ok || rest.Object == nil {
			return tripn.Success
		}
		if rest.Object.IsIRI() && rest.Object.Value == rdfNil {
			return tripn.Success
		}
		node = rest.Object
	}
}
