package tripn

import (
	"hash/fnv"
	"sort"
	"strconv"

	"github.com/quies-net/tripn/internal/xsd"
)

// NodeKind is the closed set of RDF node kinds (spec §3).
type NodeKind uint8

const (
	// KindIRI is an absolute or (reader-flag dependent) relative IRI.
	KindIRI NodeKind = iota
	// KindLiteral is a literal value, optionally typed or tagged.
	KindLiteral
	// KindBlank is a blank node, identified only within a document.
	KindBlank
	// KindCURIE is an unexpanded prefixed name, kept only when the
	// reader's PREFIXED flag is set.
	KindCURIE
	// KindVariable is a SPARQL-style "?x"/"$x" variable, accepted only
	// when the reader's VARIABLES flag is set.
	KindVariable
)

func (k NodeKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlank:
		return "blank"
	case KindCURIE:
		return "curie"
	case KindVariable:
		return "variable"
	default:
		return "kind(" + itoa(int(k)) + ")"
	}
}

// NodeFlags is a bitset of string-content hints carried on a Node (spec §3).
type NodeFlags uint8

const (
	// FlagHasNewline means the string body contains "\n", forcing a
	// long (triple-quoted) literal form on output.
	FlagHasNewline NodeFlags = 1 << iota
	// FlagHasQuote means the string body contains a quote character
	// that must be escaped (or avoided via the other quote style).
	FlagHasQuote
	// FlagIsLong means the node was read (or should be written) in
	// triple-quoted form.
	FlagIsLong
	// FlagHasDatatype means Meta holds a datatype IRI node.
	FlagHasDatatype
	// FlagHasLanguage means Meta holds a language-tag literal node.
	FlagHasLanguage
)

// Node is the atomic RDF value (spec §3). Nodes are value-typed for
// equality; a NodeStore may intern them so equality reduces to pointer
// identity for interned instances.
type Node struct {
	Kind  NodeKind
	Value string
	Flags NodeFlags

	// Meta is, for literals only, either a datatype IRI node or a
	// language-tag literal node, selected by FlagHasDatatype /
	// FlagHasLanguage. Never both are set. Borrowed from the node
	// store for the literal's lifetime when interned.
	Meta *Node

	refs int
}

// NewIRI constructs a free-standing IRI node.
func NewIRI(iri string) *Node {
	return &Node{Kind: KindIRI, Value: iri}
}

// NewBlank constructs a free-standing blank node with the given label
// (without the "_:" sigil).
func NewBlank(label string) *Node {
	return &Node{Kind: KindBlank, Value: label}
}

// NewVariable constructs a free-standing variable node (without the
// leading "?"/"$" sigil).
func NewVariable(name string) *Node {
	return &Node{Kind: KindVariable, Value: name}
}

// NewCURIE constructs a free-standing unexpanded prefixed-name node,
// stored as "prefix:local".
func NewCURIE(prefix, local string) *Node {
	return &Node{Kind: KindCURIE, Value: prefix + ":" + local}
}

// NewPlainLiteral constructs a literal with no datatype or language
// (the xsd:string default per RDF 1.1 Turtle §2.5.1 is attached by
// NewPlainLiteral's caller via NewTypedLiteral(s, xsd.String) if an
// explicit datatype node is wanted).
func NewPlainLiteral(s string) *Node {
	n := &Node{Kind: KindLiteral, Value: s}
	setContentFlags(n)
	return n
}

// NewTypedLiteral constructs a literal with an explicit datatype IRI.
func NewTypedLiteral(s, datatypeIRI string) *Node {
	n := &Node{Kind: KindLiteral, Value: s, Flags: FlagHasDatatype, Meta: NewIRI(datatypeIRI)}
	setContentFlags(n)
	return n
}

// NewLangLiteral constructs a language-tagged literal; its implicit
// datatype is rdf:langString per RDF 1.1 Turtle §7.2.
func NewLangLiteral(s, lang string) *Node {
	n := &Node{Kind: KindLiteral, Value: s, Flags: FlagHasLanguage, Meta: &Node{Kind: KindLiteral, Value: lang}}
	setContentFlags(n)
	return n
}

func setContentFlags(n *Node) {
	for i := 0; i < len(n.Value); i++ {
		switch n.Value[i] {
		case '\n':
			n.Flags |= FlagHasNewline | FlagIsLong
		case '"', '\'':
			n.Flags |= FlagHasQuote
		}
	}
}

// DatatypeIRI returns the node's datatype IRI, or "" if it has none or
// is tagged with a language instead.
func (n *Node) DatatypeIRI() string {
	if n == nil || n.Flags&FlagHasDatatype == 0 || n.Meta == nil {
		return ""
	}
	return n.Meta.Value
}

// Language returns the node's language tag, or "" if it has none.
func (n *Node) Language() string {
	if n == nil || n.Flags&FlagHasLanguage == 0 || n.Meta == nil {
		return ""
	}
	return n.Meta.Value
}

// IsLiteral, IsIRI, IsBlank, IsVariable, IsCURIE report n's kind.
func (n *Node) IsLiteral() bool  { return n != nil && n.Kind == KindLiteral }
func (n *Node) IsIRI() bool      { return n != nil && n.Kind == KindIRI }
func (n *Node) IsBlank() bool    { return n != nil && n.Kind == KindBlank }
func (n *Node) IsVariable() bool { return n != nil && n.Kind == KindVariable }
func (n *Node) IsCURIE() bool    { return n != nil && n.Kind == KindCURIE }

// Equals reports structural equality; two nil nodes are unequal (spec §4.2).
func (a *Node) Equals(b *Node) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	if a.Kind != b.Kind || a.Value != b.Value {
		return false
	}
	if (a.Meta == nil) != (b.Meta == nil) {
		return false
	}
	if a.Meta == nil {
		return true
	}
	return a.Flags&(FlagHasDatatype|FlagHasLanguage) == b.Flags&(FlagHasDatatype|FlagHasLanguage) &&
		a.Meta.Value == b.Meta.Value
}

// Compare imposes a total order: first by Kind, then lexicographically
// by Value, then by Meta (spec §4.2). Used as the comparator for model
// indices.
func Compare(a, b *Node) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	if c := compareStrings(a.Value, b.Value); c != 0 {
		return c
	}
	switch {
	case a.Meta == nil && b.Meta == nil:
		return 0
	case a.Meta == nil:
		return -1
	case b.Meta == nil:
		return 1
	default:
		return compareStrings(a.Meta.Value, b.Meta.Value)
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// hashKey returns a structural hash used by NodeStore's bucketed
// interning table.
func hashKey(n *Node) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(n.Kind)})
	h.Write([]byte(n.Value))
	if n.Meta != nil {
		h.Write([]byte{byte(n.Flags & (FlagHasDatatype | FlagHasLanguage))})
		h.Write([]byte(n.Meta.Value))
	}
	return h.Sum64()
}

// NodeStore interns nodes so equal nodes collapse to one allocation
// with O(1) (amortised) equality by pointer identity.
// Implemented as a bucketed map keyed by structural hash, with a
// linear probe inside each bucket to resolve collisions: Go's map type
// doesn't expose the control needed for single-slice open addressing,
// so a bucket-of-slice is the idiomatic Go rendition of an open-
// addressed hash set.
type NodeStore struct {
	buckets map[uint64][]*Node
	count   int
}

// NewNodeStore constructs an empty interning store.
func NewNodeStore() *NodeStore {
	return &NodeStore{buckets: make(map[uint64][]*Node)}
}

// Intern returns the canonical instance equal to n: if an equal node
// already exists, its reference count is bumped and it is returned;
// otherwise n itself is adopted into the store.
func (s *NodeStore) Intern(n *Node) *Node {
	if n == nil {
		return nil
	}
	key := hashKey(n)
	for _, existing := range s.buckets[key] {
		if existing.Equals(n) {
			existing.refs++
			return existing
		}
	}
	n.refs = 1
	s.buckets[key] = append(s.buckets[key], n)
	s.count++
	return n
}

// Get interns a node built from kind/value/meta without requiring the
// caller to allocate a temporary Node first.
func (s *NodeStore) Get(kind NodeKind, value string, meta *Node, flags NodeFlags) *Node {
	return s.Intern(&Node{Kind: kind, Value: value, Meta: meta, Flags: flags})
}

// Deref decrements n's reference count, removing it from the store
// once it reaches zero.
func (s *NodeStore) Deref(n *Node) {
	if n == nil || n.refs <= 0 {
		return
	}
	n.refs--
	if n.refs > 0 {
		return
	}
	key := hashKey(n)
	bucket := s.buckets[key]
	for i, existing := range bucket {
		if existing == n {
			bucket[i] = bucket[len(bucket)-1]
			s.buckets[key] = bucket[:len(bucket)-1]
			s.count--
			return
		}
	}
}

// Size returns the number of distinct live nodes.
func (s *NodeStore) Size() int {
	return s.count
}

// Integer interns the canonical xsd:integer form of i.
func (s *NodeStore) Integer(i int64) *Node {
	return s.Get(KindLiteral, xsd.FormatInteger(i), s.datatype(xsd.Integer), FlagHasDatatype)
}

// Decimal interns the canonical xsd:decimal form of a lexical value.
func (s *NodeStore) Decimal(lexical string) (*Node, error) {
	canon, err := xsd.CanonDecimal(lexical)
	if err != nil {
		return nil, err
	}
	return s.Get(KindLiteral, canon, s.datatype(xsd.Decimal), FlagHasDatatype), nil
}

// Boolean interns the canonical xsd:boolean form of v.
func (s *NodeStore) Boolean(v bool) *Node {
	return s.Get(KindLiteral, strconv.FormatBool(v), s.datatype(xsd.Boolean), FlagHasDatatype)
}

// HexBinary interns the canonical xsd:hexBinary form of data.
func (s *NodeStore) HexBinary(data []byte) *Node {
	return s.Get(KindLiteral, xsd.FormatHex(data), s.datatype(xsd.HexBin), FlagHasDatatype)
}

func (s *NodeStore) datatype(iri string) *Node {
	return s.Get(KindIRI, iri, nil, 0)
}

// SortNodes sorts a slice of nodes using Compare; a helper for
// deterministic iteration in tests and diagnostics.
func SortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return Compare(nodes[i], nodes[j]) < 0 })
}
