package model

import (
	tripn "github.com/quies-net/tripn"
)

// cursorMode records which of spec §4.8's four index-selection outcomes
// produced a Cursor, purely for diagnostics; it does not change iteration
// behaviour.
type cursorMode uint8

const (
	modeAll cursorMode = iota
	modeRange
	modeFilterRange
	modeFilterAll
)

// Cursor iterates the statements of a Model matching a (subject,
// predicate, object, graph) pattern with any of the four fields a
// wildcard (nil), per spec §4.8's index-selection algorithm and §4.9's
// cursor contract.
type Cursor struct {
	model   *Model
	ix      *index
	mode    cursorMode
	version uint64

	s, p, o, g *tripn.Node

	i, end int // [i, end) is the remaining candidate range within ix.stmts
	done   bool
}

// Find selects the best available index for the pattern (spec §4.8
// steps 1-6) and returns a Cursor positioned at the first match.
// A nil field is a wildcard; binding all four selects exact lookup.
func (m *Model) Find(s, p, o, g *tripn.Node) *Cursor {
	order, mode := m.chooseOrder(s, p, o, g)
	ix := m.indices[order]

	c := &Cursor{model: m, ix: ix, mode: mode, version: m.version, s: s, p: p, o: o, g: g}
	c.i, c.end = boundsFor(ix, order, s, p, o, g)
	c.advanceToMatch()
	return c
}

// chooseOrder implements spec §4.8 steps 1-6: prefer an ideal
// (wildcard-free-range) index among those present, then a filter-range
// index, else fall back to the default index scanned in full
// (FILTER_ALL). A graph-bound pattern prefers the G-prefixed
// counterpart of whichever triple ordering was chosen.
func (m *Model) chooseOrder(s, p, o, g *tripn.Node) (Order, cursorMode) {
	pat := patternSig(s, p, o)

	if order, ok := m.pickPresent(idealOrders[pat], g); ok {
		mode := modeRange
		if pat == 0 {
			mode = modeAll
		}
		return order, mode
	}
	if order, ok := m.pickPresent(filterRangeOrders[pat], g); ok {
		return order, modeFilterRange
	}
	return m.defaultOrder, modeFilterAll
}

// pickPresent returns the first candidate (after applying the graph
// preference) that the model actually has an index for.
func (m *Model) pickPresent(candidates []Order, g *tripn.Node) (Order, bool) {
	for _, cand := range candidates {
		pref := cand
		if g != nil {
			pref = graphOrderOf(cand)
		}
		if _, ok := m.indices[pref]; ok {
			return pref, true
		}
		if _, ok := m.indices[cand]; ok {
			return cand, true
		}
	}
	return 0, false
}

// boundsFor computes the contiguous [lo, hi) range within ix that can
// possibly contain matches, using as much of the pattern as the
// index's field sequence covers as a literal prefix (spec §4.8 step 4);
// fields beyond that prefix are left to per-item filtering in advanceToMatch.
func boundsFor(ix *index, order Order, s, p, o, g *tripn.Node) (int, int) {
	if ix == nil {
		return 0, 0
	}
	bound := map[field]*tripn.Node{fieldS: s, fieldP: p, fieldO: o, fieldG: g}

	lo, hi := &tripn.Statement{}, &tripn.Statement{}
	for _, f := range order.fieldSequence() {
		v := bound[f]
		if v == nil {
			break
		}
		setField(lo, f, v)
		setField(hi, f, nextNode(v))
	}
	start := ix.lowerBound(lo)
	end := ix.lowerBound(hi)
	if end < start {
		end = start
	}
	if hiIsUnbounded(lo, hi) {
		end = len(ix.stmts)
	}
	return start, end
}

func hiIsUnbounded(lo, hi *tripn.Statement) bool {
	return lo.Subject == nil && lo.Predicate == nil && lo.Object == nil && lo.Graph == nil
}

func setField(st *tripn.Statement, f field, v *tripn.Node) {
	switch f {
	case fieldS:
		st.Subject = v
	case fieldP:
		st.Predicate = v
	case fieldO:
		st.Object = v
	case fieldG:
		st.Graph = v
	}
}

// nextNode returns a synthetic node that compares strictly greater than
// every node equal to v under Compare, used to form an exclusive upper
// bound for a range scan on an exact-match prefix.
func nextNode(v *tripn.Node) *tripn.Node {
	return &tripn.Node{Kind: v.Kind, Value: v.Value + "\x00"}
}

// current returns the statement at the cursor's position, matching Get
// against nil if done.
func (c *Cursor) current() *tripn.Statement {
	if c.done || c.i >= len(c.ix.stmts) {
		return nil
	}
	return c.ix.stmts[c.i]
}

// Statement returns the statement at the cursor's current position, or
// nil if the cursor is exhausted.
func (c *Cursor) Statement() *tripn.Statement { return c.current() }

// Done reports whether the cursor has been exhausted.
func (c *Cursor) Done() bool { return c.done }

// Valid reports whether the cursor is still consistent with its
// model's version (spec §4.9 "a cursor outlives a mutation only if …").
func (c *Cursor) Valid() bool { return c.version == c.model.version }

// Next advances the cursor to its next match, or marks it done.
func (c *Cursor) Next() tripn.Status {
	if c.version != c.model.version {
		return tripn.BadCursor
	}
	if c.done {
		return tripn.Failure
	}
	c.i++
	c.advanceToMatch()
	if c.done {
		return tripn.Failure
	}
	return tripn.Success
}

// Close releases the cursor; it is a no-op but documents the
// resource-scoped usage pattern (spec §4.9's "Begin/End" bracket).
func (c *Cursor) Close() {}

func (c *Cursor) invalidateAfterErase() {
	// the statement at c.i has been removed from ix.stmts by Model.Erase
	// already, shifting every later element left by one; c.i now refers
	// to the next candidate in place, so the range's end must shift too.
	if c.end > 0 {
		c.end--
	}
	c.advanceToMatch()
}

func (c *Cursor) advanceToMatch() {
	for {
		if c.i >= c.end || c.i >= len(c.ix.stmts) {
			c.done = true
			return
		}
		st := c.ix.stmts[c.i]
		if matches(st, c.s, c.p, c.o, c.g) {
			return
		}
		c.i++
	}
}

func matches(st *tripn.Statement, s, p, o, g *tripn.Node) bool {
	return (s == nil || s.Equals(st.Subject)) &&
		(p == nil || p.Equals(st.Predicate)) &&
		(o == nil || o.Equals(st.Object)) &&
		(g == nil || (st.Graph != nil && g.Equals(st.Graph)))
}
