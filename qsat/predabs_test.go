//go:build cgo
// +build cgo

package qsat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nbjorner-qe/qsat/z3"
)

// predsSnapshot renders pa.preds as strings per level, the comparable shape
// TestPushPopPreservesPredsContent diffs across a push/pop cycle.
func predsSnapshot(pa *PredAbs) [][]string {
	out := make([][]string, len(pa.preds))
	for i, level := range pa.preds {
		for _, p := range level {
			out[i] = append(out[i], p.String())
		}
	}
	return out
}

func newTestContext(t *testing.T) *z3.Context {
	t.Helper()
	cfg := z3.NewConfig()
	t.Cleanup(cfg.Close)
	ctx := z3.NewContext(cfg)
	t.Cleanup(ctx.Close)
	return ctx
}

// AbstractAtoms followed by MkAbstract must produce a formula whose atoms
// are exactly the proxies pred2lit maps back to the original atoms: the
// abstraction is a bijection between maximal theory atoms and fresh
// booleans (§8 property 1).
func TestAbstractAtomsIsBijective(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	x := ctx.Const("x", ctx.IntSort())
	y := ctx.Const("y", ctx.IntSort())
	fml := z3.And(z3.Gt(x, ctx.IntVal(0)), z3.Lt(y, ctx.IntVal(10)))

	var defs []z3.AST
	pa.AbstractAtoms(fml, &defs)
	require.Len(t, defs, 2, "one defining equivalence per minted proxy")
	require.Equal(t, 2, pa.NumPredicates())

	abstracted := pa.MkAbstract(fml)
	require.NotEqual(t, fml, abstracted, "abstraction must replace theory atoms")

	concrete := pa.Pred2Lit([]z3.AST{abstracted})
	require.Equal(t, fml.String(), concrete[0].String(), "mk_concrete . mk_abstract round trips to the original formula")
}

// A repeated call to AbstractAtoms over the same atom must reuse its proxy
// rather than minting a second one (first-proxy-wins / structural sharing,
// §8 property 2).
func TestAbstractAtomsReusesExistingProxy(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	x := ctx.Const("x", ctx.IntSort())
	atom := z3.Gt(x, ctx.IntVal(0))

	var defs []z3.AST
	pa.AbstractAtoms(atom, &defs)
	require.Equal(t, 1, pa.NumPredicates())

	var defs2 []z3.AST
	pa.AbstractAtoms(atom, &defs2)
	require.Empty(t, defs2, "no new proxy should be minted for an already-seen atom")
	require.Equal(t, 1, pa.NumPredicates())
}

// ComputeLevel must be monotone: an expression's level covers every one of
// its subexpressions' levels (§8 property 3).
func TestComputeLevelIsMonotone(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	x := ctx.Const("x", ctx.IntSort())
	pa.SetExprLevel(x, LevelAt(1, Universal))
	y := ctx.Const("y", ctx.IntSort())
	pa.SetExprLevel(y, LevelAt(2, Existential))

	sum := z3.Add(x, y)
	atom := z3.Gt(sum, ctx.IntVal(0))

	lvl := pa.ComputeLevel(atom)
	require.True(t, lvl.Covers(pa.ComputeLevel(x)))
	require.True(t, lvl.Covers(pa.ComputeLevel(y)))
	require.Equal(t, uint32(1), lvl.FA)
	require.Equal(t, uint32(2), lvl.EX)
}

// Push/Pop must be balanced: popping every scope that was pushed restores
// the assumption stack to its pre-push length (§8 property 5).
func TestPushPopBalanced(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	x := pa.FreshBool("x")
	pa.asms = append(pa.asms, x)
	before := len(pa.asms)

	pa.Push()
	pa.asms = append(pa.asms, pa.FreshBool("y"))
	pa.Push()
	pa.asms = append(pa.asms, pa.FreshBool("z"))
	require.Equal(t, 2, pa.ScopeDepth())

	pa.Pop(2)
	require.Equal(t, 0, pa.ScopeDepth())
	require.Equal(t, before, len(pa.asms))
}

// A balanced push/pop sequence must leave preds unchanged in length and
// content (§8 property 5's second half: learned lemma structure is
// append-only, only the chosen assumptions revert).
func TestPushPopPreservesPredsContent(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	p := pa.FreshBool("p")
	pa.insert(p, LevelAt(0, Existential))
	q := pa.FreshBool("q")
	pa.insert(q, LevelAt(1, Universal))
	before := predsSnapshot(pa)

	pa.Push()
	pa.asms = append(pa.asms, pa.FreshBool("scoped"))
	pa.Push()
	pa.Pop(2)

	if diff := cmp.Diff(before, predsSnapshot(pa)); diff != "" {
		t.Fatalf("preds changed across a balanced push/pop cycle:\n%s", diff)
	}
}

// GetAssumptions must only ever return literals that evaluate consistently
// with the supplied model (§8 property 4): each returned literal p (or its
// negation) must equal model.Eval(p) when p is a top-scope predicate.
func TestGetAssumptionsConsistentWithModel(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	p := pa.FreshBool("p")
	pa.insert(p, LevelAt(0, Existential))
	pa.Push()

	s := ctx.NewSolver()
	defer s.Close()
	s.Assert(p)
	res, err := s.Check()
	require.NoError(t, err)
	require.Equal(t, z3.Sat, res)
	m := s.Model()
	require.NotNil(t, m)
	defer m.Close()

	asms := pa.GetAssumptions(m)
	require.Len(t, asms, 1)
	val, ok := m.Eval(p, true).BoolValue()
	require.True(t, ok)
	require.True(t, val)
	require.Equal(t, p.String(), asms[0].String())
}

func TestMkAssumptionLiteralReusesNegation(t *testing.T) {
	ctx := newTestContext(t)
	pa := NewPredAbs(ctx, nil)

	x := ctx.Const("x", ctx.IntSort())
	atom := z3.Gt(x, ctx.IntVal(0))

	var defs []z3.AST
	lit := pa.MkAssumptionLiteral(atom, nil, LevelAt(0, Existential), &defs)
	require.NotEmpty(t, defs)

	var defs2 []z3.AST
	litNeg := pa.MkAssumptionLiteral(atom.Not(), nil, LevelAt(0, Existential), &defs2)
	require.Empty(t, defs2, "negation of an already-registered assumption must not mint a second literal")

	inner, isNot := litNeg.IsNot()
	require.True(t, isNot)
	require.Equal(t, lit.String(), inner.String())
}
