package qsat

import (
	"context"

	"go.uber.org/zap"

	"github.com/nbjorner-qe/qsat/z3"
)

// ElimRec implements §4.G: it walks fml's expression DAG, recursing into
// each quantifier node's body, eliminating that quantifier in place with a
// single-alternation Engine rather than prenex-hoisting the whole formula
// first. This is the `qe_rec` tactic's core routine (forceElim=false):
// residual free projection variables are allowed to survive a single
// projection step, which ElimRec's caller-visible result simply preserves.
func ElimRec(pctx context.Context, ctx *z3.Context, projector Projector, log *zap.Logger, fml z3.AST) (z3.AST, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if q, ok := fml.AsQuantifier(); ok {
		body, vars := ctx.ExtractVars(q)
		elimBody, err := ElimRec(pctx, ctx, projector, log, body)
		if err != nil {
			return z3.AST{}, err
		}
		if q.IsForall() {
			elimBody = elimBody.Not()
		}
		res, err := elimOneAlternation(pctx, ctx, projector, log, vars, elimBody)
		if err != nil {
			return z3.AST{}, err
		}
		if q.IsForall() {
			res = res.Not()
		}
		return res, nil
	}
	if !fml.IsApp() {
		return fml, nil
	}
	children := fml.Children()
	if len(children) == 0 {
		return fml, nil
	}
	newChildren := make([]z3.AST, len(children))
	changed := false
	for i, c := range children {
		nc, err := ElimRec(pctx, ctx, projector, log, c)
		if err != nil {
			return z3.AST{}, err
		}
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
	}
	if !changed {
		return fml, nil
	}
	return ctx.App(fml.Decl(), newChildren...), nil
}

// elimOneAlternation runs a fresh search session with exactly two blocks,
// [freeVarsOfBody\vars, vars], to residualize the single existential
// quantification of vars over body — the two-block scheme §4.G calls for.
func elimOneAlternation(pctx context.Context, ctx *z3.Context, projector Projector, log *zap.Logger, vars []z3.AST, body z3.AST) (z3.AST, error) {
	pa := NewPredAbs(ctx, log)
	free := pa.GetFreeVars(body)
	block0 := diffVars(free, vars)
	for _, v := range block0 {
		pa.SetExprLevel(v, LevelAt(0, Existential))
	}
	for _, v := range vars {
		pa.SetExprLevel(v, LevelAt(1, Universal))
	}

	e := NewEngine(ctx, pa, true, false, projector, log)
	e.vars = [][]z3.AST{block0, vars}
	// Mirror Eliminate's invariant that the asserted matrix is always the
	// negation of the formula being eliminated: body is the ∃vars.body
	// target, so kEx/kFa see ¬body (§4.D: elimination mode negates first).
	if err := e.assertMatrix(body.Not()); err != nil {
		return z3.AST{}, err
	}
	if _, err := e.run(pctx); err != nil {
		return z3.AST{}, err
	}
	// As in Eliminate, the only successful termination here is StatusUnsat:
	// the residual is the accumulated conjunction of projected lemmas.
	return e.closeAnswer(), nil
}

// diffVars returns the elements of all that do not occur in remove, by
// pointer identity (the AST layer's notion of equality for hash-consed
// nodes).
func diffVars(all, remove []z3.AST) []z3.AST {
	skip := make(map[z3.AST]bool, len(remove))
	for _, v := range remove {
		skip[v] = true
	}
	var out []z3.AST
	for _, v := range all {
		if !skip[v] {
			out = append(out, v)
		}
	}
	return out
}
