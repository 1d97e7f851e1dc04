package model

import (
	"sort"

	tripn "github.com/quies-net/tripn"
)

// index is a sorted slice of statement pointers ordered by Order's
// comparator, probed with sort.Search. A balanced tree type appears
// nowhere in this module's corpus of reference repositories, so a
// sorted slice with binary search stands in for the index trees spec
// §4.8/§9 call for: ordered iteration and lower-bound seek are O(log
// n); insert/erase are O(n) due to the shift, a trade-off noted in
// DESIGN.md.
type index struct {
	order Order
	stmts []*tripn.Statement
}

func newIndex(order Order) *index {
	return &index{order: order}
}

func (ix *index) lowerBound(probe *tripn.Statement) int {
	return sort.Search(len(ix.stmts), func(i int) bool {
		return compareBy(ix.order, ix.stmts[i], probe) >= 0
	})
}

func (ix *index) insert(s *tripn.Statement) {
	i := ix.lowerBound(s)
	ix.stmts = append(ix.stmts, nil)
	copy(ix.stmts[i+1:], ix.stmts[i:])
	ix.stmts[i] = s
}

func (ix *index) find(s *tripn.Statement) (int, bool) {
	i := ix.lowerBound(s)
	if i < len(ix.stmts) && ix.stmts[i].Equals(s) {
		return i, true
	}
	return i, false
}

func (ix *index) removeAt(i int) {
	copy(ix.stmts[i:], ix.stmts[i+1:])
	ix.stmts = ix.stmts[:len(ix.stmts)-1]
}

// ModelFlags configures a Model at construction.
type ModelFlags uint8

const (
	// FlagWithGraphs enables quad-equality (graph-aware duplicate
	// suppression) on the default index. Without it the model behaves
	// as a pure triple store and incoming Graph fields are ignored.
	FlagWithGraphs ModelFlags = 1 << iota
)

// Model is a set of statements together with 1 to 12 indices
// (spec §4.8). The default index owns the statements; other indices
// hold the same pointers under a different ordering.
type Model struct {
	store        *tripn.NodeStore
	defaultOrder Order
	flags        ModelFlags

	indices map[Order]*index
	version uint64
}

// New constructs an empty Model backed by store, with defaultOrder as
// its always-present default index.
func New(store *tripn.NodeStore, defaultOrder Order, flags ModelFlags) *Model {
	m := &Model{
		store:        store,
		defaultOrder: defaultOrder,
		flags:        flags,
		indices:      make(map[Order]*index),
	}
	m.indices[defaultOrder] = newIndex(defaultOrder)
	return m
}

// World returns the model's backing node store.
func (m *Model) World() *tripn.NodeStore { return m.store }

// DefaultOrder returns the model's default index ordering.
func (m *Model) DefaultOrder() Order { return m.defaultOrder }

// Flags returns the model's construction flags.
func (m *Model) Flags() ModelFlags { return m.flags }

// Version returns the monotonic counter bumped on every structural
// mutation; cursors capture this to detect invalidation.
func (m *Model) Version() uint64 { return m.version }

func (m *Model) defaultIndex() *index { return m.indices[m.defaultOrder] }

// AddIndex creates and populates a secondary index over order, copying
// the default index's statement references (spec §4.8).
func (m *Model) AddIndex(order Order) {
	if _, ok := m.indices[order]; ok {
		return
	}
	ix := newIndex(order)
	for _, s := range m.defaultIndex().stmts {
		ix.insert(s)
	}
	m.indices[order] = ix
}

// DropIndex removes a non-default secondary index.
func (m *Model) DropIndex(order Order) {
	if order == m.defaultOrder {
		return
	}
	delete(m.indices, order)
}

// Size returns the number of statements in the model.
func (m *Model) Size() int { return len(m.defaultIndex().stmts) }

// Empty reports whether the model holds no statements.
func (m *Model) Empty() bool { return m.Size() == 0 }

// Add interns s's four nodes is the caller's responsibility (nodes
// passed in are assumed already interned via World()); Add allocates
// the statement into every active index. If the default index already
// holds an equal statement, Add is a no-op (spec §4.8 "add_internal").
func (m *Model) Add(s *tripn.Statement) bool {
	if !m.flags.graphsEnabled() {
		s = &tripn.Statement{Subject: s.Subject, Predicate: s.Predicate, Object: s.Object, Caret: s.Caret}
	}
	if _, exists := m.defaultIndex().find(s); exists {
		return false
	}
	for _, ix := range m.indices {
		ix.insert(s)
	}
	m.version++
	return true
}

func (f ModelFlags) graphsEnabled() bool { return f&FlagWithGraphs != 0 }

// Insert is an alias for Add, matching the public-surface name in spec §4.8.
func (m *Model) Insert(s *tripn.Statement) bool { return m.Add(s) }

// Erase removes the statement at the cursor's current position from
// every index, and advances the cursor (spec §4.8). Returns BadCursor
// if the cursor was invalidated by an intervening mutation.
func (m *Model) Erase(c *Cursor) tripn.Status {
	if c.version != m.version {
		return tripn.BadCursor
	}
	if c.done {
		return tripn.Failure
	}
	target := c.current()
	for _, ix := range m.indices {
		if i, ok := ix.find(target); ok {
			ix.removeAt(i)
		}
	}
	m.version++
	c.version = m.version
	c.invalidateAfterErase()
	return tripn.Success
}

// EraseAll removes every statement the cursor would have iterated.
func (m *Model) EraseAll(c *Cursor) tripn.Status {
	for !c.done {
		if st := m.Erase(c); st != tripn.Success {
			return st
		}
	}
	return tripn.Success
}

// Clear removes every statement from the model.
func (m *Model) Clear() {
	for _, ix := range m.indices {
		ix.stmts = nil
	}
	m.version++
}

// Equals reports whether m and o have the same size and pairwise-equal
// default-index iteration order (spec §4.8).
func (m *Model) Equals(o *Model) bool {
	if m.Size() != o.Size() {
		return false
	}
	a, b := m.defaultIndex().stmts, o.defaultIndex().stmts
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of m sharing the same node store
// (nodes are interned and safe to share across models).
func (m *Model) Copy() *Model {
	c := New(m.store, m.defaultOrder, m.flags)
	for order := range m.indices {
		if order != m.defaultOrder {
			c.indices[order] = newIndex(order)
		}
	}
	for _, s := range m.defaultIndex().stmts {
		for _, ix := range c.indices {
			ix.insert(s)
		}
	}
	return c
}

// Get performs a one-wildcard lookup: exactly one of s, p, o, g is nil
// and the rest are bound; it returns the bound value that satisfies
// the pattern, or nil if none does.
func (m *Model) Get(s, p, o, g *tripn.Node) *tripn.Node {
	c := m.Find(s, p, o, g)
	defer c.Close()
	if c.done {
		return nil
	}
	st := c.current()
	switch {
	case s == nil:
		return st.Subject
	case p == nil:
		return st.Predicate
	case o == nil:
		return st.Object
	default:
		return st.Graph
	}
}

// Ask reports whether any statement matches the pattern.
func (m *Model) Ask(s, p, o, g *tripn.Node) bool {
	c := m.Find(s, p, o, g)
	defer c.Close()
	return !c.done
}

// Count returns the number of statements matching the pattern
// (spec §8 "Pattern/index equivalence").
func (m *Model) Count(s, p, o, g *tripn.Node) int {
	c := m.Find(s, p, o, g)
	defer c.Close()
	n := 0
	for !c.done {
		n++
		c.Next()
	}
	return n
}

// GetStatement returns the first statement matching the pattern, or nil.
func (m *Model) GetStatement(s, p, o, g *tripn.Node) *tripn.Statement {
	c := m.Find(s, p, o, g)
	defer c.Close()
	if c.done {
		return nil
	}
	return c.current()
}
