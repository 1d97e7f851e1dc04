// Package model implements the multi-indexed in-memory quad store and
// its cursor/range-write operations (spec §4.8, §4.9).
package model

import (
	tripn "github.com/quies-net/tripn"
)

// Order is one of the twelve statement-field permutations a model may
// index by (spec §6). Numeric values are a stable on-wire contract.
type Order uint8

const (
	SPO Order = iota
	SOP
	OPS
	OSP
	PSO
	POS
	GSPO
	GSOP
	GOPS
	GOSP
	GPSO
	GPOS
)

// field identifies which of the four statement slots a comparison key
// draws from.
type field uint8

const (
	fieldS field = iota
	fieldP
	fieldO
	fieldG
)

// fieldSequence returns the ordered list of fields order compares, in
// priority order. Triple orderings additionally compare the graph last
// so that statements differing only by graph still sort deterministically
// within a triple-ordered index, instead of colliding.
func (o Order) fieldSequence() []field {
	switch o {
	case SPO:
		return []field{fieldS, fieldP, fieldO, fieldG}
	case SOP:
		return []field{fieldS, fieldO, fieldP, fieldG}
	case OPS:
		return []field{fieldO, fieldP, fieldS, fieldG}
	case OSP:
		return []field{fieldO, fieldS, fieldP, fieldG}
	case PSO:
		return []field{fieldP, fieldS, fieldO, fieldG}
	case POS:
		return []field{fieldP, fieldO, fieldS, fieldG}
	case GSPO:
		return []field{fieldG, fieldS, fieldP, fieldO}
	case GSOP:
		return []field{fieldG, fieldS, fieldO, fieldP}
	case GOPS:
		return []field{fieldG, fieldO, fieldP, fieldS}
	case GOSP:
		return []field{fieldG, fieldO, fieldS, fieldP}
	case GPSO:
		return []field{fieldG, fieldP, fieldS, fieldO}
	case GPOS:
		return []field{fieldG, fieldP, fieldO, fieldS}
	default:
		return nil
	}
}

// isGraphOrder reports whether o is one of the six G-prefixed orderings.
func (o Order) isGraphOrder() bool { return o >= GSPO }

func fieldValue(s *tripn.Statement, f field) *tripn.Node {
	switch f {
	case fieldS:
		return s.Subject
	case fieldP:
		return s.Predicate
	case fieldO:
		return s.Object
	case fieldG:
		return s.Graph
	default:
		return nil
	}
}

// compareBy compares a and b by order's field sequence.
func compareBy(order Order, a, b *tripn.Statement) int {
	for _, f := range order.fieldSequence() {
		if c := tripn.Compare(fieldValue(a, f), fieldValue(b, f)); c != 0 {
			return c
		}
	}
	return 0
}

// sig is the 3-bit signature of which of (s, p, o) are bound (non-nil,
// non-wildcard) in a query pattern; graph is handled separately
// (spec §4.8 step 5).
type sig uint8

const (
	sigS sig = 1 << iota
	sigP
	sigO
)

func patternSig(s, p, o *tripn.Node) sig {
	var x sig
	if s != nil {
		x |= sigS
	}
	if p != nil {
		x |= sigP
	}
	if o != nil {
		x |= sigO
	}
	return x
}

// idealOrders lists, in preference order, the triple orderings that
// turn a pattern with the given signature into a contiguous range scan
// with no filtering (spec §4.8 step 2).
var idealOrders = map[sig][]Order{
	0:                 {SPO},
	sigS:              {SPO, SOP},
	sigP:              {PSO, POS},
	sigO:              {OPS, OSP},
	sigS | sigP:       {SPO},
	sigS | sigO:       {SOP},
	sigP | sigO:       {POS},
	sigS | sigP | sigO: {SPO},
}

// filterRangeOrders lists, in preference order, the triple orderings
// that turn a pattern into a prefix scan plus per-item filtering
// (spec §4.8 step 3) — the same orderings, since a one-field prefix
// match from any of them also narrows a two-field pattern.
var filterRangeOrders = map[sig][]Order{
	sigS | sigP:        {SPO, SOP},
	sigS | sigO:        {SOP, SPO},
	sigP | sigO:        {POS, PSO},
	sigS | sigP | sigO: {SPO, SOP, POS},
}

// graphOrderOf returns the G-prefixed counterpart of a triple ordering.
func graphOrderOf(o Order) Order {
	switch o {
	case SPO:
		return GSPO
	case SOP:
		return GSOP
	case OPS:
		return GOPS
	case OSP:
		return GOSP
	case PSO:
		return GPSO
	case POS:
		return GPOS
	default:
		return o
	}
}
