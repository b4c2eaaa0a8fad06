package qsat

import (
	"go.uber.org/zap"

	"github.com/nbjorner-qe/qsat/z3"
)

// PredAbs is the bidirectional atom<->proxy map of spec.md §3/§4.B: it
// mints fresh boolean proxies for theory atoms so the two kernels of the
// search loop can reason over a uniform propositional skeleton, and keeps
// enough bookkeeping (levels, per-level predicate lists, an assumption
// stack) to reconstruct the original theory formula whenever needed.
type PredAbs struct {
	ctx *z3.Context
	log *zap.Logger

	pred2lit map[z3.AST]z3.AST
	lit2pred map[z3.AST]z3.AST
	asm2pred map[z3.AST]z3.AST
	pred2asm map[z3.AST]z3.AST

	elevel map[z3.AST]Level
	flevel map[z3.FuncDecl]Level

	preds [][]z3.AST

	asms    []z3.AST
	asmsLim []int

	fmc *ModelFilter
}

// NewPredAbs creates an empty PredAbs bound to ctx. log defaults to a no-op
// logger when nil, matching the rest of this module's injected-logger
// convention (see qsat.Engine).
func NewPredAbs(ctx *z3.Context, log *zap.Logger) *PredAbs {
	if log == nil {
		log = zap.NewNop()
	}
	pa := &PredAbs{ctx: ctx, log: log, fmc: NewModelFilter()}
	pa.Reset()
	return pa
}

// FMC returns the filter-model-converter sink that has recorded every
// invented boolean symbol across this PredAbs's lifetime.
func (pa *PredAbs) FMC() *ModelFilter { return pa.fmc }

// Reset drops every map and the assumption stack, releasing the session's
// grip on the formula DAG. The fmc sink is NOT reset: it is a per-solve-
// session record of invented symbols, and the original keeps it alive
// across the internal reset() calls that happen between rounds of
// elim_rec (§4.G).
func (pa *PredAbs) Reset() {
	pa.pred2lit = make(map[z3.AST]z3.AST)
	pa.lit2pred = make(map[z3.AST]z3.AST)
	pa.asm2pred = make(map[z3.AST]z3.AST)
	pa.pred2asm = make(map[z3.AST]z3.AST)
	pa.elevel = make(map[z3.AST]Level)
	pa.flevel = make(map[z3.FuncDecl]Level)
	pa.preds = nil
	pa.asms = nil
	pa.asmsLim = nil
}

// NumPredicates reports the size of pred2lit, the §6 "num_predicates"
// statistic.
func (pa *PredAbs) NumPredicates() int { return len(pa.pred2lit) }

// FreshBool mints a fresh boolean constant and records it with the fmc sink
// so it can later be stripped from a user-visible model.
func (pa *PredAbs) FreshBool(name string) z3.AST {
	r := pa.ctx.MkFreshConst(name, pa.ctx.BoolSort())
	pa.fmc.Insert(r.Decl())
	return r
}

// AddPred records p as the proxy for lit (the "definition" direction) and
// calls AddLit to keep the inverse map consistent.
func (pa *PredAbs) AddPred(p, lit z3.AST) {
	pa.pred2lit[p] = lit
	pa.AddLit(p, lit)
}

// AddLit records p as the proxy to use for lit the first time lit is seen;
// later insertions for the same lit are no-ops, matching the original's
// "first proxy wins" semantics.
func (pa *PredAbs) AddLit(p, lit z3.AST) {
	if _, ok := pa.lit2pred[lit]; !ok {
		pa.lit2pred[lit] = p
	}
}

// AddAsm records the auxiliary bijection between an assumption literal p
// and the formula assum it stands for.
func (pa *PredAbs) AddAsm(p, assum z3.AST) {
	invariant(!hasAST(pa.asm2pred, assum), "add_asm: assumption already registered")
	pa.asm2pred[assum] = p
	pa.pred2asm[p] = assum
}

func hasAST(m map[z3.AST]z3.AST, a z3.AST) bool {
	_, ok := m[a]
	return ok
}

// SetExprLevel records the level of a leaf expression (typically a
// skolemized bound variable) directly, bypassing ComputeLevel.
func (pa *PredAbs) SetExprLevel(v z3.AST, lvl Level) {
	pa.elevel[v] = lvl
}

// SetDeclLevel seeds flevel for a function symbol, the bottom of the
// bottom-up ComputeLevel walk.
func (pa *PredAbs) SetDeclLevel(f z3.FuncDecl, lvl Level) {
	pa.flevel[f] = lvl
}

// Push snapshots the current assumption-stack size.
func (pa *PredAbs) Push() {
	pa.asmsLim = append(pa.asmsLim, len(pa.asms))
}

// Pop truncates asms back to the snapshot taken numScopes pushes ago.
// preds is append-only and is NOT touched: learned lemma structure
// persists across a pop, only the chosen assumptions revert (§3 invariant).
func (pa *PredAbs) Pop(numScopes int) {
	invariant(numScopes <= len(pa.asmsLim), "pop: more scopes than pushed")
	l := len(pa.asmsLim) - numScopes
	pa.asms = pa.asms[:pa.asmsLim[l]]
	pa.asmsLim = pa.asmsLim[:l]
}

// ScopeDepth reports the number of outstanding pushes, used by
// GetAssumptions to find the "current" predicate level.
func (pa *PredAbs) ScopeDepth() int { return len(pa.asmsLim) }

// AddPermanentAssumption appends p to asms outside of any scope, so it
// survives every future Pop. Used by the projection driver when a learned
// lemma backjumps all the way to level 0 in elimination mode: its truth is
// permanent from then on (§4.F step 6).
func (pa *PredAbs) AddPermanentAssumption(p z3.AST) {
	pa.asms = append(pa.asms, p)
}

// insert appends a into preds[max_index(lvl)], growing preds as needed.
func (pa *PredAbs) insert(a z3.AST, lvl Level) {
	l := int(lvl.Max())
	for len(pa.preds) <= l {
		pa.preds = append(pa.preds, nil)
	}
	pa.preds[l] = append(pa.preds[l], a)
}

// isPredicate reports whether a's head symbol is already valid at a level
// strictly below l, meaning a itself need not be flipped when playing
// against level l (it is already a "predicate", not a fresh atom).
func (pa *PredAbs) isPredicate(a z3.AST, l uint32) bool {
	if !a.IsApp() {
		return false
	}
	lvl, ok := pa.flevel[a.Decl()]
	return ok && lvl.Max() < l
}

// ComputeLevel performs the iterative post-order walk of §4.B: merging
// child levels (from elevel, memoized as subexpressions are visited) with
// the head symbol's flevel entry. The explicit worklist (rather than
// recursion) matches §9's "recursive DAG traversal... must not be
// structural" design note.
func (pa *PredAbs) ComputeLevel(e z3.AST) Level {
	if lvl, ok := pa.elevel[e]; ok {
		return lvl
	}
	todo := []z3.AST{e}
	for len(todo) > 0 {
		a := todo[len(todo)-1]
		if _, ok := pa.elevel[a]; ok {
			todo = todo[:len(todo)-1]
			continue
		}
		lvl0 := Unset
		if a.IsApp() {
			if l, ok := pa.flevel[a.Decl()]; ok {
				lvl0 = Merge(lvl0, l)
			}
		}
		hasNew := false
		for _, arg := range a.Children() {
			if l, ok := pa.elevel[arg]; ok {
				lvl0 = Merge(lvl0, l)
			} else {
				todo = append(todo, arg)
				hasNew = true
			}
		}
		if !hasNew {
			pa.elevel[a] = lvl0
			todo = todo[:len(todo)-1]
		}
	}
	return pa.elevel[e]
}

// AbstractAtoms walks fml (required to be quantifier-free) bottom-up,
// minting a fresh proxy for every maximal non-boolean subformula that is
// not already mapped, and recursing through boolean connectives without
// introducing proxies for them. It returns the merged level of every atom
// visited and appends a defining equivalence "p <-> a" to *defs for each
// newly minted proxy.
func (pa *PredAbs) AbstractAtoms(fml z3.AST, defs *[]z3.AST) Level {
	level := Unset
	mark := make(map[z3.AST]bool)
	todo := []z3.AST{fml}
	for len(todo) > 0 {
		a := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if mark[a] {
			continue
		}
		mark[a] = true

		if p, ok := pa.lit2pred[a]; ok {
			level = Merge(level, pa.elevel[p])
			continue
		}

		if a.IsUninterpConst() && a.IsBool() {
			l := pa.ComputeLevel(a)
			level = Merge(level, l)
			if _, ok := pa.pred2lit[a]; !ok {
				pa.AddPred(a, a)
				pa.insert(a, l)
			}
			continue
		}

		invariant(a.IsApp(), "abstract_atoms: non-app node in a quantifier-free matrix")

		for _, c := range a.Children() {
			if !mark[c] {
				todo = append(todo, c)
			}
		}

		isBoolop := a.Decl().IsBasicConnective() &&
			(!a.IsEq() || a.Child(0).IsBool()) &&
			(!a.IsDistinct() || a.Child(0).IsBool())

		if !isBoolop && a.IsBool() {
			r := pa.FreshBool("p")
			l := pa.ComputeLevel(a)
			pa.AddPred(r, a)
			pa.elevel[r] = l
			*defs = append(*defs, z3.Eq(r, a))
			if !pa.isPredicate(a, l.Max()) {
				pa.insert(r, l)
			}
			level = Merge(level, l)
			pa.log.Debug("abstract_atoms: minted proxy",
				zap.Stringer("level", l), zap.String("atom", a.String()))
		}
	}
	return level
}

// MkAbstract structurally rewrites fml, replacing every subexpression that
// is a key of lit2pred by its proxy. It is a pure, cache-based rewrite: an
// unchanged subtree is returned by identity rather than rebuilt.
func (pa *PredAbs) MkAbstract(fml z3.AST) z3.AST {
	cache := make(map[z3.AST]z3.AST)
	todo := []z3.AST{fml}
	for len(todo) > 0 {
		a := todo[len(todo)-1]
		if _, ok := cache[a]; ok {
			todo = todo[:len(todo)-1]
			continue
		}
		if p, ok := pa.lit2pred[a]; ok {
			cache[a] = p
			todo = todo[:len(todo)-1]
			continue
		}
		children := a.Children()
		args := make([]z3.AST, 0, len(children))
		diff := false
		allReady := true
		for _, c := range children {
			if f1, ok := cache[c]; ok {
				args = append(args, f1)
				if f1 != c {
					diff = true
				}
			} else {
				todo = append(todo, c)
				allReady = false
			}
		}
		if allReady {
			r := a
			if diff {
				r = pa.ctx.App(a.Decl(), args...)
			}
			cache[a] = r
			todo = todo[:len(todo)-1]
		}
	}
	return cache[fml]
}

// MkConcrete is the inverse rewrite under an arbitrary proxy->atom map m,
// used for both pred2lit (core concretization) and pred2asm (assumption
// concretization).
func (pa *PredAbs) MkConcrete(fmls []z3.AST, m map[z3.AST]z3.AST) []z3.AST {
	cache := make(map[z3.AST]z3.AST)
	todo := append([]z3.AST(nil), fmls...)
	for len(todo) > 0 {
		a := todo[len(todo)-1]
		if _, ok := cache[a]; ok {
			todo = todo[:len(todo)-1]
			continue
		}
		if p, ok := m[a]; ok {
			cache[a] = p
			todo = todo[:len(todo)-1]
			continue
		}
		children := a.Children()
		args := make([]z3.AST, 0, len(children))
		diff := false
		allReady := true
		for _, c := range children {
			if f1, ok := cache[c]; ok {
				args = append(args, f1)
				if f1 != c {
					diff = true
				}
			} else {
				todo = append(todo, c)
				allReady = false
			}
		}
		if allReady {
			r := a
			if diff {
				r = pa.ctx.App(a.Decl(), args...)
			}
			cache[a] = r
			todo = todo[:len(todo)-1]
		}
	}
	out := make([]z3.AST, len(fmls))
	for i, f := range fmls {
		out[i] = cache[f]
	}
	return out
}

// Pred2Lit concretizes a slice of proxies/formulas via pred2lit.
func (pa *PredAbs) Pred2Lit(fmls []z3.AST) []z3.AST {
	return pa.MkConcrete(fmls, pa.pred2lit)
}

// Pred2Asm concretizes a single formula via pred2asm and conjoins the
// result, mirroring the original's expr_ref-returning overload.
func (pa *PredAbs) Pred2Asm(fml z3.AST) z3.AST {
	out := pa.MkConcrete([]z3.AST{fml}, pa.pred2asm)
	return mkAnd(pa.ctx, out)
}

// MkAssumptionLiteral wraps an arbitrary formula a as a single proxy at
// level lvl suitable for use as a kernel assumption literal, reusing an
// existing mapping whenever a (or its negation) is already a known proxy
// or assumption, and otherwise minting a fresh one and registering its
// defining equivalence into *defs.
func (pa *PredAbs) MkAssumptionLiteral(a z3.AST, model *z3.Model, lvl Level, defs *[]z3.AST) z3.AST {
	a = pa.Pred2Asm(a)

	if b, ok := pa.asm2pred[a]; ok {
		return b
	}
	if inner, isNot := a.IsNot(); isNot {
		if b, ok := pa.asm2pred[inner]; ok {
			return b.Not()
		}
	}
	if _, ok := pa.pred2asm[a]; ok {
		return a
	}
	if inner, isNot := a.IsNot(); isNot {
		if _, ok := pa.pred2asm[inner]; ok {
			return a
		}
	}

	p := pa.FreshBool("def")
	var q z3.AST
	asmBody := a
	if inner, isNot := a.IsNot(); isNot {
		asmBody = inner
		if model != nil {
			model.RegisterDecl(p.Decl(), pa.ctx.BoolVal(false))
		}
		q = p.Not()
	} else {
		if model != nil {
			model.RegisterDecl(p.Decl(), pa.ctx.BoolVal(true))
		}
		q = p
	}
	pa.elevel[p] = lvl
	pa.insert(p, lvl)

	pa.AbstractAtoms(asmBody, defs)
	abstracted := pa.MkAbstract(asmBody)
	*defs = append(*defs, z3.Eq(p, abstracted))
	pa.AddAsm(p, asmBody)
	pa.log.Debug("mk_assumption_literal: minted definition literal", zap.Stringer("level", lvl))
	return q
}

// GetAssumptions builds the assumption vector for the next kernel call,
// implementing the cross-level inclusion predicate of §4.B/§9 exactly:
// the top scope's predicates are materialized at the adversary's model,
// and so are any higher-level atoms whose OTHER parity component is fixed
// below (or unset relative to) the current scope depth.
func (pa *PredAbs) GetAssumptions(model *z3.Model) []z3.AST {
	level := pa.ScopeDepth()
	if level > len(pa.preds) {
		level = len(pa.preds)
	}
	if level == 0 {
		// No scoped predicates to materialize, but any permanent assumptions
		// recorded by a level-0 backjump (recordPermanentLemma) still need
		// to be asserted on every subsequent round.
		return append([]z3.AST(nil), pa.asms...)
	}
	if model == nil {
		return append([]z3.AST(nil), pa.asms...)
	}

	for _, p := range pa.preds[level-1] {
		pa.asms = append(pa.asms, polarize(p, model))
	}
	out := append([]z3.AST(nil), pa.asms...)

	for i := level + 1; i < len(pa.preds); i += 2 {
		for _, p := range pa.preds[i] {
			lvl := pa.elevel[p]
			use := (lvl.FA == uint32(i) && (lvl.EX == unsetLevel || lvl.EX < uint32(level))) ||
				(lvl.EX == uint32(i) && (lvl.FA == unsetLevel || lvl.FA < uint32(level)))
			if use {
				out = append(out, polarize(p, model))
			}
		}
	}
	return out
}

// polarize returns p or ¬p according to its boolean value in model.
func polarize(p z3.AST, model *z3.Model) z3.AST {
	val := model.Eval(p, true)
	if b, ok := val.BoolValue(); ok && !b {
		return p.Not()
	}
	return p
}

// GetFreeVars collects the uninterpreted constants occurring free in fml
// (i.e. outside any bound-variable de Bruijn scope), recursing through
// quantifier bodies but skipping bound-variable nodes themselves.
func (pa *PredAbs) GetFreeVars(fml z3.AST) []z3.AST {
	var vars []z3.AST
	mark := make(map[z3.AST]bool)
	todo := []z3.AST{fml}
	for len(todo) > 0 {
		e := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if mark[e] || e.IsVar() {
			continue
		}
		mark[e] = true
		if q, ok := e.AsQuantifier(); ok {
			todo = append(todo, q.Body())
			continue
		}
		if !e.IsApp() {
			continue
		}
		if e.IsUninterpConst() {
			vars = append(vars, e)
		}
		for _, c := range e.Children() {
			todo = append(todo, c)
		}
	}
	return vars
}

// mkAnd conjoins fmls, returning the single element for len==1 and the
// boolean true constant for an empty slice (no ctx to derive "true" from
// in that case callers must pass a non-empty slice or a ctx explicitly).
func mkAnd(ctx *z3.Context, fmls []z3.AST) z3.AST {
	switch len(fmls) {
	case 0:
		return ctx.BoolVal(true)
	case 1:
		return fmls[0]
	default:
		return z3.And(fmls...)
	}
}
