package rdfio

import (
	tripn "github.com/quies-net/tripn"
	"github.com/quies-net/tripn/internal/uriref"
	"github.com/quies-net/tripn/model"
)

// Inserter is a Sink that adds every Statement event to a model.Model,
// tracking the Environment implied by Base/Prefix events so CURIEs and
// relative IRIs can be resolved against it before insertion (spec
// §4.5's "inserter" transformer).
type Inserter struct {
	m      *model.Model
	env    *tripn.Environment
	strict bool
	count  int
}

// NewInserter constructs an Inserter writing into m. If strict is true,
// relative IRIs and unexpanded CURIEs are rejected with BadArg instead
// of being resolved against the running Environment — the pre-1.0
// behaviour (spec §9 Open Question). Only the strict argument selects it;
// tripn.FlagStrictAbsolute is not consulted.
func NewInserter(m *model.Model, strict bool) *Inserter {
	return &Inserter{m: m, env: tripn.NewEnvironment(""), strict: strict}
}

// Count returns the number of statements actually added (excluding
// duplicates the model's default index already held).
func (ins *Inserter) Count() int { return ins.count }

// OnEvent implements Sink.
func (ins *Inserter) OnEvent(e *tripn.Event) tripn.Status {
	switch e.Kind {
	case tripn.EventBase:
		ins.env.SetBase(e.BaseURI.Value)
		return tripn.Success
	case tripn.EventPrefix:
		ins.env.SetPrefix(e.PrefixName.Value, e.PrefixURI.Value)
		return tripn.Success
	case tripn.EventStatement:
		return ins.insert(e.Statement)
	case tripn.EventEnd:
		return tripn.Success
	default:
		return tripn.BadEvent
	}
}

func (ins *Inserter) insert(s *tripn.Statement) tripn.Status {
	world := ins.m.World()

	subj, st := ins.resolve(world, s.Subject)
	if st != tripn.Success {
		return st
	}
	pred, st := ins.resolve(world, s.Predicate)
	if st != tripn.Success {
		return st
	}
	obj, st := ins.resolve(world, s.Object)
	if st != tripn.Success {
		return st
	}
	var graph *tripn.Node
	if s.Graph != nil {
		graph, st = ins.resolve(world, s.Graph)
		if st != tripn.Success {
			return st
		}
	}

	added := ins.m.Add(&tripn.Statement{Subject: subj, Predicate: pred, Object: obj, Graph: graph, Caret: s.Caret})
	if added {
		ins.count++
	}
	return tripn.Success
}

// resolve interns n, first expanding a CURIE or resolving a relative
// IRI against the running Environment; in strict mode either case is
// rejected outright instead.
func (ins *Inserter) resolve(world *tripn.NodeStore, n *tripn.Node) (*tripn.Node, tripn.Status) {
	if n == nil {
		return nil, tripn.Success
	}
	switch {
	case n.IsCURIE():
		if ins.strict {
			return nil, tripn.BadArg
		}
		prefix, suffix, ok := splitCURIE(n.Value)
		if !ok {
			return nil, tripn.BadCurie
		}
		ns, rest, ok := ins.env.Expand(prefix, suffix)
		if !ok {
			return nil, tripn.BadCurie
		}
		return world.Intern(tripn.NewIRI(ns + rest)), tripn.Success

	case n.IsIRI() && !uriref.HasScheme(n.Value):
		if ins.strict {
			return nil, tripn.BadArg
		}
		base := uriref.Parse(ins.env.Base())
		resolved := uriref.Resolve(uriref.Parse(n.Value), base)
		return world.Intern(tripn.NewIRI(resolved.String())), tripn.Success

	default:
		return world.Intern(n), tripn.Success
	}
}

func splitCURIE(v string) (prefix, suffix string, ok bool) {
	for i := 0; i < len(v); i++ {
		if v[i] == ':' {
			return v[:i], v[i+1:], true
		}
	}
	return "", "", false
}
