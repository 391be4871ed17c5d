package srl

import (
	"strings"
	"testing"

	"github.com/OFFIS-RIT/annograph/pkg/common"
	"github.com/OFFIS-RIT/annograph/pkg/graph"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	g *graph.Graph
	v *PredicateArgumentView
}

func newFixture(t *testing.T, tokens ...string) *fixture {
	t.Helper()
	g, err := graph.New(graph.NewGraphParams{ID: "test", Tokens: tokens})
	require.NoError(t, err)
	v, err := NewPredicateArgumentView(NewViewParams{Name: SRLVerb, Graph: g})
	require.NoError(t, err)
	return &fixture{g: g, v: v}
}

// node allocates an unregistered constituent.
func (f *fixture) node(t *testing.T, start, end int, attrs map[string]string) graph.NodeID {
	t.Helper()
	id, err := f.g.NewConstituent(graph.ConstituentParams{
		Span:       common.Span{Start: start, End: end},
		Attributes: attrs,
	})
	require.NoError(t, err)
	return id
}

// registered allocates and registers a constituent.
func (f *fixture) registered(t *testing.T, start, end int) graph.NodeID {
	t.Helper()
	id := f.node(t, start, end, nil)
	require.NoError(t, f.g.AddConstituent(id))
	return id
}

func (f *fixture) relate(t *testing.T, name string, from, to graph.NodeID) graph.EdgeID {
	t.Helper()
	id, err := f.g.AddRelation(name, from, to, 1)
	require.NoError(t, err)
	return id
}

func TestNewPredicateArgumentView(t *testing.T) {
	g, err := graph.New(graph.NewGraphParams{Tokens: []string{"x"}})
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		v, err := NewPredicateArgumentView(NewViewParams{Name: SRLNom, Graph: g})
		require.NoError(t, err)
		assert.Equal(t, SRLNom, v.Name())
		assert.Equal(t, "SRL_NOM-annotator", v.Generator())
		assert.Equal(t, 1.0, v.Score())
		assert.Same(t, g, v.Graph())
	})

	t.Run("explicit generator and score", func(t *testing.T) {
		v, err := NewPredicateArgumentView(NewViewParams{Name: SRLVerb, Generator: "tagger", Score: 0.5, Graph: g})
		require.NoError(t, err)
		assert.Equal(t, "tagger", v.Generator())
		assert.Equal(t, 0.5, v.Score())
	})

	t.Run("invalid params", func(t *testing.T) {
		_, err := NewPredicateArgumentView(NewViewParams{Graph: g})
		assert.Error(t, err)
		_, err = NewPredicateArgumentView(NewViewParams{Name: SRLVerb})
		assert.Error(t, err)
		_, err = NewPredicateArgumentView(NewViewParams{Name: SRLVerb, Graph: g, Score: -1})
		assert.Error(t, err)
	})
}

func TestAddPredicateArguments_EatApple(t *testing.T) {
	f := newFixture(t, "eat", "apple")
	p := f.node(t, 0, 1, nil)
	a := f.node(t, 1, 2, nil)

	require.NoError(t, f.v.AddPredicateArguments(p, []graph.NodeID{a}, []string{"A0"}, []float64{0.9}))

	assert.Equal(t, []graph.NodeID{p}, f.v.Predicates())
	args, err := f.v.Arguments(p)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, "A0", args[0].Name)
	assert.Equal(t, p, args[0].Source)
	assert.Equal(t, a, args[0].Target)
	assert.InDelta(t, 0.9, args[0].Score, 1e-9)

	assert.Equal(t, "eat:\n    A0: apple\n", f.v.String())
	require.NoError(t, f.g.CheckConsistency())
}

func TestAddPredicateArguments_Arguments(t *testing.T) {
	f := newFixture(t, "John", "gave", "Mary", "a", "book")
	p := f.node(t, 1, 2, nil)
	args := []graph.NodeID{f.node(t, 0, 1, nil), f.node(t, 2, 3, nil), f.node(t, 3, 5, nil)}
	labels := []string{"A0", "A2", "A1"}
	scores := []float64{0.9, 0.7, 0.8}

	require.NoError(t, f.v.AddPredicateArguments(p, args, labels, scores))

	got, err := f.v.Arguments(p)
	require.NoError(t, err)
	want := []graph.Relation{
		{ID: 0, Name: "A0", Source: p, Target: args[0], Score: 0.9},
		{ID: 1, Name: "A2", Source: p, Target: args[1], Score: 0.7},
		{ID: 2, Name: "A1", Source: p, Target: args[2], Score: 0.8},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Arguments() mismatch (-want +got):\n%s", diff)
	}

	for _, id := range append(args, p) {
		assert.True(t, f.g.Contains(id))
	}
}

func TestAddPredicateArguments_RejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name      string
		relations []string
		scores    []float64
		extraArg  graph.NodeID
		wantErr   error
	}{
		{
			name:      "fewer relations",
			relations: []string{"A0"},
			scores:    []float64{1, 1},
			extraArg:  -1,
			wantErr:   ErrArityMismatch,
		},
		{
			name:      "fewer scores",
			relations: []string{"A0", "A1"},
			scores:    []float64{1},
			extraArg:  -1,
			wantErr:   ErrArityMismatch,
		},
		{
			name:      "unknown argument",
			relations: []string{"A0", "A1", "A2"},
			scores:    []float64{1, 1, 1},
			extraArg:  99,
			wantErr:   graph.ErrConstituentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "John", "ate", "apples")
			existing := f.registered(t, 0, 1)
			p := f.node(t, 1, 2, nil)
			args := []graph.NodeID{existing, f.node(t, 2, 3, nil)}
			if tt.extraArg >= 0 {
				args = append(args, tt.extraArg)
			}

			constituents, relations, version := f.g.Constituents(), f.g.Relations(), f.g.Version()

			err := f.v.AddPredicateArguments(p, args, tt.relations, tt.scores)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, constituents, f.g.Constituents())
			assert.Equal(t, relations, f.g.Relations())
			assert.Equal(t, version, f.g.Version())
			assert.Equal(t, graph.Unregistered, f.g.State(p))
			assert.False(t, f.v.PredicatesComputed())
		})
	}
}

func TestAddPredicateArguments_DuplicateRegistration(t *testing.T) {
	f := newFixture(t, "John", "ate", "apples", "today")
	p := f.node(t, 1, 2, nil)
	a0 := f.node(t, 0, 1, nil)
	a1 := f.node(t, 2, 3, nil)
	tmp := f.node(t, 3, 4, nil)

	require.NoError(t, f.v.AddPredicateArguments(p, []graph.NodeID{a0}, []string{"A0"}, []float64{1}))
	require.NoError(t, f.v.AddPredicateArguments(p, []graph.NodeID{a1, tmp}, []string{"A1", "AM-TMP"}, []float64{1, 1}))

	assert.Equal(t, []graph.NodeID{p}, f.v.Predicates())
	args, err := f.v.Arguments(p)
	require.NoError(t, err)
	assert.Len(t, args, 3)
}

func TestAddPredicateArguments_NoArguments(t *testing.T) {
	f := newFixture(t, "rains")
	p := f.node(t, 0, 1, nil)

	require.NoError(t, f.v.AddPredicateArguments(p, nil, nil, nil))

	args, err := f.v.Arguments(p)
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t, "rains:\n", f.v.String())
}

func TestArguments_NotFound(t *testing.T) {
	f := newFixture(t, "John", "ate", "apples")
	p := f.node(t, 1, 2, nil)
	a := f.node(t, 2, 3, nil)
	other := f.registered(t, 0, 1)
	require.NoError(t, f.v.AddPredicateArguments(p, []graph.NodeID{a}, []string{"A1"}, []float64{1}))

	for _, id := range []graph.NodeID{a, other, graph.NodeID(42)} {
		args, err := f.v.Arguments(id)
		assert.ErrorIs(t, err, ErrPredicateNotFound)
		assert.Nil(t, args)
	}
}

func TestPredicates_Discovery(t *testing.T) {
	f := newFixture(t, "John", "ate", "apples", "and", "slept")
	ate := f.registered(t, 1, 2)
	john := f.registered(t, 0, 1)
	apples := f.registered(t, 2, 3)
	slept := f.registered(t, 4, 5)
	f.relate(t, "A0", ate, john)
	f.relate(t, "A1", ate, apples)

	assert.False(t, f.v.PredicatesComputed())

	first := f.v.Predicates()
	assert.Equal(t, []graph.NodeID{ate, slept}, first)
	assert.True(t, f.v.PredicatesComputed())
	assert.Equal(t, first, f.v.Predicates())

	t.Run("structural change recomputes", func(t *testing.T) {
		f.relate(t, "A0", slept, john)
		assert.False(t, f.v.PredicatesComputed())
		assert.Equal(t, []graph.NodeID{ate, slept}, f.v.Predicates())

		f.relate(t, "C-A1", apples, slept)
		assert.Equal(t, []graph.NodeID{ate}, f.v.Predicates())
	})

	t.Run("explicit invalidation", func(t *testing.T) {
		f.v.Predicates()
		require.True(t, f.v.PredicatesComputed())
		f.v.InvalidatePredicates()
		assert.False(t, f.v.PredicatesComputed())
	})
}

func TestPredicates_EmptyGraph(t *testing.T) {
	f := newFixture(t, "nothing")

	assert.False(t, f.v.PredicatesComputed())
	assert.Empty(t, f.v.Predicates())
	assert.True(t, f.v.PredicatesComputed(), "an empty result is still a computed result")
}

func TestPredicates_RegistrationOverridesDiscovery(t *testing.T) {
	f := newFixture(t, "John", "ate", "apples")
	isolated := f.registered(t, 0, 1)
	require.Equal(t, []graph.NodeID{isolated}, f.v.Predicates())

	p := f.node(t, 1, 2, nil)
	a := f.node(t, 2, 3, nil)
	require.NoError(t, f.v.AddPredicateArguments(p, []graph.NodeID{a}, []string{"A1"}, []float64{1}))

	assert.Equal(t, []graph.NodeID{p}, f.v.Predicates())

	f.v.InvalidatePredicates()
	assert.Equal(t, []graph.NodeID{p}, f.v.Predicates(), "registered predicates survive invalidation")
}

func TestPredicates_CustomPolicy(t *testing.T) {
	g, err := graph.New(graph.NewGraphParams{Tokens: []string{"John", "ate"}})
	require.NoError(t, err)
	v, err := NewPredicateArgumentView(NewViewParams{
		Name:   SRLVerb,
		Graph:  g,
		Policy: HasAttribute(common.LemmaAttribute),
	})
	require.NoError(t, err)

	john, err := g.NewConstituent(graph.ConstituentParams{Span: common.Span{Start: 0, End: 1}})
	require.NoError(t, err)
	ate, err := g.NewConstituent(graph.ConstituentParams{
		Span:       common.Span{Start: 1, End: 2},
		Attributes: map[string]string{common.LemmaAttribute: "eat"},
	})
	require.NoError(t, err)
	require.NoError(t, g.AddConstituent(john))
	require.NoError(t, g.AddConstituent(ate))

	assert.Equal(t, []graph.NodeID{ate}, v.Predicates())

	t.Run("attribute change recomputes", func(t *testing.T) {
		require.True(t, v.PredicatesComputed())
		require.NoError(t, g.SetAttribute(john, common.LemmaAttribute, "john"))

		assert.False(t, v.PredicatesComputed())
		assert.Equal(t, []graph.NodeID{john, ate}, v.Predicates())
		assert.True(t, v.PredicatesComputed())
	})
}

func TestPredicateLemmaAndSense(t *testing.T) {
	f := newFixture(t, "She", "Eats", "rice", "Ran")
	plain := f.registered(t, 1, 2)
	annotated := f.node(t, 3, 4, map[string]string{
		common.LemmaAttribute: "run",
		common.SenseAttribute: "02",
	})

	assert.Equal(t, "eats", f.v.PredicateLemma(plain))
	assert.Equal(t, "", f.v.PredicateSense(plain))
	assert.Equal(t, "run", f.v.PredicateLemma(annotated))
	assert.Equal(t, "02", f.v.PredicateSense(annotated))
}

func TestString_Canonical(t *testing.T) {
	f := newFixture(t, "Mary", "said", "John", "ate", "the", "apple")
	ate := f.node(t, 3, 4, map[string]string{common.LemmaAttribute: "eat", common.SenseAttribute: "01"})
	said := f.node(t, 1, 2, map[string]string{common.LemmaAttribute: "say", common.SenseAttribute: "01"})
	john := f.node(t, 2, 3, nil)
	apple := f.node(t, 4, 6, map[string]string{"pos": "NN", "head": "apple"})
	mary := f.node(t, 0, 1, nil)
	clause := f.node(t, 2, 6, nil)

	require.NoError(t, f.v.AddPredicateArguments(ate,
		[]graph.NodeID{apple, john}, []string{"A1", "A0"}, []float64{0.8, 0.9}))
	require.NoError(t, f.v.AddPredicateArguments(said,
		[]graph.NodeID{clause, mary}, []string{"A1", "A0"}, []float64{0.7, 0.9}))

	want := "say:01\n" +
		"    A0: Mary\n" +
		"    A1: John ate the apple\n" +
		"eat:01\n" +
		"    A0: John\n" +
		"    A1: the apple[head=apple pos=NN ]\n"

	assert.Equal(t, want, f.v.String())
	assert.Equal(t, f.v.String(), f.v.String())

	var sb strings.Builder
	n, err := f.v.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, want, sb.String())
}

func TestString_StableForEqualKeys(t *testing.T) {
	f := newFixture(t, "a", "b", "c", "d")
	p := f.node(t, 0, 1, nil)
	q := f.node(t, 0, 2, nil)
	x := f.node(t, 2, 3, nil)
	y := f.node(t, 3, 4, nil)

	require.NoError(t, f.v.AddPredicateArguments(p, []graph.NodeID{y, x}, []string{"A0", "A0"}, []float64{1, 1}))
	require.NoError(t, f.v.AddPredicateArguments(q, nil, nil, nil))

	assert.Equal(t, "a:\n    A0: d\n    A0: c\na b:\n", f.v.String())
}
