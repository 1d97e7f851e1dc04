package rdfio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tripn "github.com/quies-net/tripn"
	"github.com/quies-net/tripn/model"
)

func newTestModel() (*tripn.NodeStore, *model.Model) {
	store := tripn.NewNodeStore()
	return store, model.New(store, model.SPO, 0)
}

func TestInserterAddsAbsoluteStatement(t *testing.T) {
	store, m := newTestModel()
	ins := NewInserter(m, false)

	st := &tripn.Statement{
		Subject:   tripn.NewIRI("http://ex/s"),
		Predicate: tripn.NewIRI("http://ex/p"),
		Object:    tripn.NewIRI("http://ex/o"),
	}
	status := ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})

	require.Equal(t, tripn.Success, status)
	assert.Equal(t, 1, ins.Count())
	assert.True(t, m.Ask(store.Intern(tripn.NewIRI("http://ex/s")), nil, nil, nil))
}

func TestInserterExpandsCURIEAgainstSeenPrefix(t *testing.T) {
	_, m := newTestModel()
	ins := NewInserter(m, false)

	require.Equal(t, tripn.Success, ins.OnEvent(&tripn.Event{
		Kind:       tripn.EventPrefix,
		PrefixName: tripn.NewIRI("ex"),
		PrefixURI:  tripn.NewIRI("http://example.org/"),
	}))

	st := &tripn.Statement{
		Subject:   tripn.NewCURIE("ex", "alice"),
		Predicate: tripn.NewCURIE("ex", "knows"),
		Object:    tripn.NewCURIE("ex", "bob"),
	}
	status := ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})
	require.Equal(t, tripn.Success, status)

	world := m.World()
	assert.True(t, m.Ask(world.Intern(tripn.NewIRI("http://example.org/alice")), nil, nil, nil))
}

func TestInserterResolvesRelativeIRIAgainstBase(t *testing.T) {
	_, m := newTestModel()
	ins := NewInserter(m, false)

	require.Equal(t, tripn.Success, ins.OnEvent(&tripn.Event{
		Kind:    tripn.EventBase,
		BaseURI: tripn.NewIRI("http://example.org/base/"),
	}))

	st := &tripn.Statement{
		Subject:   tripn.NewIRI("thing"),
		Predicate: tripn.NewIRI("http://ex/p"),
		Object:    tripn.NewIRI("http://ex/o"),
	}
	status := ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})
	require.Equal(t, tripn.Success, status)

	world := m.World()
	assert.True(t, m.Ask(world.Intern(tripn.NewIRI("http://example.org/base/thing")), nil, nil, nil))
}

func TestInserterStrictModeRejectsUnresolvedCURIE(t *testing.T) {
	_, m := newTestModel()
	ins := NewInserter(m, true)

	st := &tripn.Statement{
		Subject:   tripn.NewCURIE("ex", "alice"),
		Predicate: tripn.NewIRI("http://ex/p"),
		Object:    tripn.NewIRI("http://ex/o"),
	}
	status := ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})

	assert.Equal(t, tripn.BadArg, status)
	assert.Equal(t, 0, ins.Count())
}

func TestInserterStrictModeRejectsRelativeIRI(t *testing.T) {
	_, m := newTestModel()
	ins := NewInserter(m, true)

	st := &tripn.Statement{
		Subject:   tripn.NewIRI("thing"),
		Predicate: tripn.NewIRI("http://ex/p"),
		Object:    tripn.NewIRI("http://ex/o"),
	}
	status := ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})

	assert.Equal(t, tripn.BadArg, status)
}

func TestInserterDoesNotDoubleCountDuplicates(t *testing.T) {
	_, m := newTestModel()
	ins := NewInserter(m, false)

	st := &tripn.Statement{
		Subject:   tripn.NewIRI("http://ex/s"),
		Predicate: tripn.NewIRI("http://ex/p"),
		Object:    tripn.NewIRI("http://ex/o"),
	}
	ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})
	ins.OnEvent(&tripn.Event{Kind: tripn.EventStatement, Statement: st})

	assert.Equal(t, 1, ins.Count())
	assert.Equal(t, 1, m.Size())
}
