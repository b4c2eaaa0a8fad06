package qsat

import "github.com/nbjorner-qe/qsat/z3"

// Hoist produces the alternation prefix of fml (required to already be in
// negation normal form at the top if the caller wants an elimination-mode
// negation applied — see Engine.Eliminate, which negates via negatePrenex
// before calling Hoist in qelim mode per spec.md §4.D): vars[0] holds fml's free
// variables plus, in decision mode, any quantifier-free leading existential
// block; vars[k] for k>=1 holds the bound variables of alternation block k.
// Even indices are existential, odd universal. The returned matrix is the
// quantifier-free body. initializeLevels seeds elevel for every variable in
// every block before returning.
func Hoist(pa *PredAbs, fml z3.AST, qelim bool) (z3.AST, [][]z3.AST) {
	ctx := pa.ctx
	vars := [][]z3.AST{pa.GetFreeVars(fml)}

	isForall := false
	if qelim {
		isForall = true
		body, blockVars := pullQuantifierBlock(ctx, fml, isForall)
		fml = body
		vars = append(vars, blockVars)
	} else {
		body, blockVars := pullQuantifierBlock(ctx, fml, isForall)
		fml = body
		vars[0] = append(vars[0], blockVars...)
	}

	for {
		isForall = !isForall
		body, blockVars := pullQuantifierBlock(ctx, fml, isForall)
		fml = body
		vars = append(vars, blockVars)
		if len(blockVars) == 0 {
			break
		}
	}

	initializeLevels(pa, vars)
	return fml, vars
}

// pullQuantifierBlock repeatedly strips leading quantifiers of the
// requested kind (isForall), skolemizing each into fresh constants via
// ctx.ExtractVars and merging their bound variables into a single block.
// It stops as soon as the formula's head is not a quantifier of that kind
// (including when it is not a quantifier at all), returning an empty
// variable slice in that case — the signal Hoist uses to know the
// alternation prefix has ended.
func pullQuantifierBlock(ctx *z3.Context, fml z3.AST, isForall bool) (z3.AST, []z3.AST) {
	var vars []z3.AST
	for {
		q, ok := fml.AsQuantifier()
		if !ok || q.IsForall() != isForall {
			break
		}
		body, blockVars := ctx.ExtractVars(q)
		fml = body
		vars = append(vars, blockVars...)
	}
	return fml, vars
}

// negatePrenex pushes a negation fully through fml's leading quantifier
// prefix, flipping each quantifier's kind and recursing into its body, so
// that the quantifier-free matrix at the bottom is the only part actually
// negated. This differs from ctx.PushNot (which pushes through a single
// connective or quantifier) in that it recurses through the *entire*
// prefix: Hoist's pullQuantifierBlock only recognizes a literal quantifier
// node at the head of each remaining block, so a single-level push would
// leave inner quantifiers hidden behind a "not" node Hoist cannot see past.
func negatePrenex(ctx *z3.Context, fml z3.AST) z3.AST {
	q, ok := fml.AsQuantifier()
	if !ok {
		return fml.Not()
	}
	body, vars := ctx.ExtractVars(q)
	negBody := negatePrenex(ctx, body)
	if q.IsForall() {
		return ctx.ExistsConst(vars, negBody)
	}
	return ctx.ForallConst(vars, negBody)
}

// initializeLevels assigns every block-k variable the Level an expression
// depending only on that block should carry (spec.md §4.D's hoister
// responsibility, "per-level variable groups").
func initializeLevels(pa *PredAbs, vars [][]z3.AST) {
	for i, block := range vars {
		lvl := LevelAt(uint32(i), ParityOf(i))
		for _, v := range block {
			pa.SetExprLevel(v, lvl)
		}
	}
}
