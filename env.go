package tripn

import (
	"strings"

	"github.com/quies-net/tripn/internal/uriref"
)

// SetBaseFromPath sets the base URI to a file: URI for an on-disk path
// (spec §3's base URI covers any absolute IRI, including file: ones
// produced when a document is loaded straight from the filesystem
// rather than fetched over the network).
func (e *Environment) SetBaseFromPath(path, hostname string) error {
	var b strings.Builder
	if err := uriref.WriteFileURI(path, hostname, &b); err != nil {
		return err
	}
	e.SetBase(b.String())
	return nil
}

// BasePath decodes the current base URI as a file: URI, returning the
// underlying OS path and hostname. ok is false if the base is unset or
// not a file: URI.
func (e *Environment) BasePath() (path, hostname string, ok bool) {
	if !strings.HasPrefix(e.baseURI, "file:") {
		return "", "", false
	}
	p, err := uriref.ParseFileURI(e.baseURI, &hostname)
	if err != nil {
		return "", "", false
	}
	return p, hostname, true
}

// prefixEntry is one row of the environment's insertion-ordered
// namespace table.
type prefixEntry struct {
	name string
	uri  string
}

// Environment is a base URI plus an ordered prefix-to-URI map (spec §3,
// §4.3). Prefixes are looked up by exact name match; the table is kept
// small (document-local), so O(n) lookup is the right trade-off per the
// design note in spec §4.3.
type Environment struct {
	baseURI  string
	prefixes []prefixEntry
}

// NewEnvironment constructs an Environment with the given base URI
// (which may be empty).
func NewEnvironment(base string) *Environment {
	e := &Environment{}
	if base != "" {
		e.SetBase(base)
	}
	return e
}

// SetBase normalises and stores uri as the base URI.
func (e *Environment) SetBase(uri string) {
	v := uriref.Parse(uri)
	e.baseURI = v.String()
}

// Base returns the current base URI, or "" if unset.
func (e *Environment) Base() string {
	return e.baseURI
}

// SetPrefix registers uri under name, replacing any existing URI for
// that name.
func (e *Environment) SetPrefix(name, uri string) {
	for i := range e.prefixes {
		if e.prefixes[i].name == name {
			e.prefixes[i].uri = uri
			return
		}
	}
	e.prefixes = append(e.prefixes, prefixEntry{name, uri})
}

// GetPrefix returns the URI registered under name and whether it exists.
func (e *Environment) GetPrefix(name string) (string, bool) {
	for _, p := range e.prefixes {
		if p.name == name {
			return p.uri, true
		}
	}
	return "", false
}

// Expand turns a CURIE's (prefix, suffix) into the corresponding
// (namespace URI, suffix), resolving the prefix against the
// environment. ok is false if the prefix is unregistered.
func (e *Environment) Expand(prefix, suffix string) (namespaceURI, rest string, ok bool) {
	uri, found := e.GetPrefix(prefix)
	if !found {
		return "", "", false
	}
	return uri, suffix, true
}

// Qualify finds the registered namespace that is the longest prefix of
// absoluteURI and returns (name, suffix); ok is false if no namespace
// matches. Entries are scanned in insertion order, so of two equally
// long matches the earlier registered one wins.
func (e *Environment) Qualify(absoluteURI string) (name, suffix string, ok bool) {
	bestLen := -1
	for _, p := range e.prefixes {
		if strings.HasPrefix(absoluteURI, p.uri) && len(p.uri) > bestLen {
			name, suffix, ok = p.name, absoluteURI[len(p.uri):], true
			bestLen = len(p.uri)
		}
	}
	return
}

// Foreach calls fn for every registered prefix in insertion order.
func (e *Environment) Foreach(fn func(name, uri string)) {
	for _, p := range e.prefixes {
		fn(p.name, p.uri)
	}
}

// Describe emits a Base event (if a base is set) followed by a Prefix
// event for every registered namespace, in insertion order.
func (e *Environment) Describe(sink Sink) Status {
	if e.baseURI != "" {
		if st := sink.OnEvent(&Event{Kind: EventBase, BaseURI: NewIRI(e.baseURI)}); st.IsFatal() {
			return st
		}
	}
	var worst Status
	e.Foreach(func(name, uri string) {
		st := sink.OnEvent(&Event{Kind: EventPrefix, PrefixName: NewIRI(name), PrefixURI: NewIRI(uri)})
		worst = Worse(worst, st)
	})
	return worst
}

// Copy returns an independent copy of e.
func (e *Environment) Copy() *Environment {
	c := &Environment{baseURI: e.baseURI}
	c.prefixes = append([]prefixEntry(nil), e.prefixes...)
	return c
}

// Equals reports whether e and o have the same base URI and the same
// prefix-to-URI mappings (order independent).
func (e *Environment) Equals(o *Environment) bool {
	if e.baseURI != o.baseURI || len(e.prefixes) != len(o.prefixes) {
		return false
	}
	for _, p := range e.prefixes {
		uri, ok := o.GetPrefix(p.name)
		if !ok || uri != p.uri {
			return false
		}
	}
	return true
}
