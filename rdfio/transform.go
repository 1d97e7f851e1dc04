package rdfio

import (
	tripn "github.com/quies-net/tripn"
	"github.com/quies-net/tripn/internal/textutil"
	"github.com/quies-net/tripn/internal/xsd"
)

// Tee duplicates every event to two downstream sinks, returning the
// worse of the two resulting statuses so a fatal failure on either
// branch still aborts the pipeline (spec §4.5).
type Tee struct {
	A, B tripn.Sink
}

// NewTee constructs a Tee forwarding to a and b.
func NewTee(a, b tripn.Sink) *Tee { return &Tee{A: a, B: b} }

// OnEvent implements Sink.
func (t *Tee) OnEvent(e *tripn.Event) tripn.Status {
	sa := t.A.OnEvent(e)
	sb := t.B.OnEvent(e)
	return tripn.Worse(sa, sb)
}

// Filter forwards only Statement events for which Keep returns true;
// Base and Prefix events always pass through unchanged, but End is
// dropped since a filtered-out statement may have been the one that
// opened the block it would close (spec §4.5).
type Filter struct {
	Next tripn.Sink
	Keep func(s *tripn.Statement, flags tripn.StatementFlags) bool
}

// NewFilter constructs a Filter forwarding to next, keeping only
// statements for which keep returns true.
func NewFilter(next tripn.Sink, keep func(*tripn.Statement, tripn.StatementFlags) bool) *Filter {
	return &Filter{Next: next, Keep: keep}
}

// NewLanguageFilter constructs a Filter that keeps only statements whose
// object is a language-tagged literal matching lang, compared the way
// BCP 47 requires: case-insensitively, so a store holding "en" matches
// a caller asking for "EN" or "En".
func NewLanguageFilter(next tripn.Sink, lang string) *Filter {
	return &Filter{
		Next: next,
		Keep: func(s *tripn.Statement, _ tripn.StatementFlags) bool {
			if s == nil || s.Object == nil || !s.Object.IsLiteral() {
				return false
			}
			return textutil.EqualFold(s.Object.Language(), lang)
		},
	}
}

// OnEvent implements Sink. Filter is pass-through for every event kind
// except End, which is dropped since a filtered-out statement may have
// been the one that opened the block the End would close.
func (f *Filter) OnEvent(e *tripn.Event) tripn.Status {
	switch {
	case e.Kind == tripn.EventEnd:
		return tripn.Success
	case e.Kind == tripn.EventStatement && f.Keep != nil && !f.Keep(e.Statement, e.Flags):
		return tripn.Success
	default:
		return f.Next.OnEvent(e)
	}
}

// Canon rewrites every literal object whose datatype is one of
// internal/xsd's recognised datatypes to its canonical lexical form
// before forwarding (spec §4.5's "canon" transformer).
type Canon struct {
	Next  tripn.Sink
	store *tripn.NodeStore
	lax   bool
}

// NewCanon constructs a Canon transformer; store is used to intern the
// rewritten literal nodes so pointer identity is preserved for callers
// comparing against previously-interned nodes. If lax is true, a
// literal whose lexical form doesn't parse under its datatype passes
// through unchanged instead of aborting the pipeline.
func NewCanon(next tripn.Sink, store *tripn.NodeStore, lax bool) *Canon {
	return &Canon{Next: next, store: store, lax: lax}
}

// OnEvent implements Sink.
func (c *Canon) OnEvent(e *tripn.Event) tripn.Status {
	if e.Kind != tripn.EventStatement || e.Statement == nil {
		return c.Next.OnEvent(e)
	}
	canon := *e.Statement
	obj, err := c.canonicalize(e.Statement.Object)
	if err != nil {
		if c.lax {
			canon.Object = e.Statement.Object
			return c.Next.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: &canon, Flags: e.Flags})
		}
		return tripn.BadText
	}
	canon.Object = obj
	return c.Next.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: &canon, Flags: e.Flags})
}

func (c *Canon) canonicalize(n *tripn.Node) (*tripn.Node, error) {
	if n == nil || !n.IsLiteral() {
		return n, nil
	}
	fn, ok := xsd.Canonicalizer[n.DatatypeIRI()]
	if !ok {
		return n, nil
	}
	canonValue, err := fn(n.Value)
	if err != nil {
		return nil, err
	}
	if canonValue == n.Value {
		return n, nil
	}
	rewritten := tripn.NewTypedLiteral(canonValue, n.DatatypeIRI())
	if c.store != nil {
		rewritten = c.store.Intern(rewritten)
	}
	return rewritten, nil
}
