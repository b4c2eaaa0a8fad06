//go:build cgo
// +build cgo

package mbp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nbjorner-qe/qsat/z3"
)

func newTestContext(t *testing.T) *z3.Context {
	t.Helper()
	cfg := z3.NewConfig()
	t.Cleanup(cfg.Close)
	ctx := z3.NewContext(cfg)
	t.Cleanup(ctx.Close)
	return ctx
}

// modelOf asserts constraints on a fresh solver and returns its model,
// registering cleanup with t.
func modelOf(t *testing.T, ctx *z3.Context, asserts ...z3.AST) *z3.Model {
	t.Helper()
	s := ctx.NewSolver()
	t.Cleanup(s.Close)
	for _, a := range asserts {
		s.Assert(a)
	}
	res, err := s.Check()
	require.NoError(t, err)
	require.Equal(t, z3.Sat, res)
	m := s.Model()
	require.NotNil(t, m)
	t.Cleanup(m.Close)
	return m
}

// Arith must substitute the model witness for x and simplify the ground
// arithmetic away entirely, fully eliminating x from every returned atom.
func TestArithProjectEliminatesWitness(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.Const("x", ctx.IntSort())
	atom := z3.Gt(x, ctx.IntVal(0))
	m := modelOf(t, ctx, atom)

	core, ok := Arith{}.Project(context.Background(), true, []z3.AST{x}, m, []z3.AST{atom})
	require.True(t, ok)
	for _, c := range core {
		require.False(t, mentionsAny(c, []z3.AST{x}), "projected atom %s must not mention x", c)
	}
}

// An atom that becomes trivially true after substitution must be dropped
// from the projected core rather than kept as a redundant "true" literal.
func TestArithProjectDropsTrivialAtoms(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.Const("x", ctx.IntSort())
	atom := z3.Eq(x, x)
	m := modelOf(t, ctx, z3.Gt(x, ctx.IntVal(0)))

	core, ok := Arith{}.Project(context.Background(), true, []z3.AST{x}, m, []z3.AST{atom})
	require.True(t, ok)
	require.Empty(t, core)
}

// Dispatcher must route a mixed set of Int and BV variables to their
// respective registered plug-ins and eliminate both.
func TestDispatcherRoutesBySortKind(t *testing.T) {
	ctx := newTestContext(t)
	x := ctx.Const("x", ctx.IntSort())
	bv := ctx.Const("b", ctx.BitVecSort(8))
	atoms := []z3.AST{
		z3.Gt(x, ctx.IntVal(0)),
		z3.Eq(bv, ctx.BitVecVal("3", 8)),
	}
	m := modelOf(t, ctx, atoms...)

	d := NewDispatcher()
	core, ok := d.Project(context.Background(), true, []z3.AST{x, bv}, m, atoms)
	require.True(t, ok)
	for _, c := range core {
		require.False(t, mentionsAny(c, []z3.AST{x, bv}))
	}
}

// A variable whose sort has no registered plug-in must be reported as an
// incomplete projection rather than silently dropped or left unprojected.
func TestDispatcherIncompleteWithoutPlugin(t *testing.T) {
	ctx := newTestContext(t)
	d := &Dispatcher{}
	x := ctx.Const("x", ctx.IntSort())
	m := modelOf(t, ctx, z3.Gt(x, ctx.IntVal(0)))

	_, ok := d.Project(context.Background(), true, []z3.AST{x}, m, []z3.AST{z3.Gt(x, ctx.IntVal(0))})
	require.False(t, ok)
}

// Dispatcher must route a datatype-sorted variable to Datatype and
// eliminate it by model substitution, exercising the constructor/recognizer
// declarations z3.Context.MkConstructor/MkDatatype produce.
func TestDispatcherRoutesDatatype(t *testing.T) {
	ctx := newTestContext(t)
	nilCtor := ctx.MkConstructor("nil", "is_nil", nil)
	consCtor := ctx.MkConstructor("cons", "is_cons", []z3.ADTField{
		{Name: "head", Sort: ctx.IntSort()},
	})
	listSort, decls := ctx.MkDatatype("IntList", []*z3.Constructor{nilCtor, consCtor})
	require.Len(t, decls, 2)

	l := ctx.Const("l", listSort)
	isNil := ctx.App(decls[0].Recognizer, l)
	m := modelOf(t, ctx, isNil)

	d := NewDispatcher()
	core, ok := d.Project(context.Background(), true, []z3.AST{l}, m, []z3.AST{isNil})
	require.True(t, ok)
	for _, c := range core {
		require.False(t, mentionsAny(c, []z3.AST{l}), "projected atom %s must not mention l", c)
	}
}

func TestDispatcherEmptyVarsIsComplete(t *testing.T) {
	ctx := newTestContext(t)
	d := NewDispatcher()
	core := []z3.AST{ctx.BoolVal(true)}
	got, ok := d.Project(context.Background(), true, nil, nil, core)
	require.True(t, ok)
	require.Equal(t, core, got)
}
