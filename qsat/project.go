package qsat

import (
	"go.uber.org/zap"

	"github.com/nbjorner-qe/qsat/z3"
)

// project implements §4.F's project(k) for an UNSAT at the current level
// k >= 2: it fetches the opponent's unsat core, asks the MBP plug-in to
// project away the deeper blocks' variables, negates the result into a
// lemma, and backjumps by the amount the lemma's own level dictates.
func (e *Engine) project() error {
	k := e.level
	parity := ParityOf(k)
	core := e.pa.Pred2Lit(e.kp.of(parity).UnsatCore())

	avars := flattenBlocks(e.vars[k-1:])
	return e.learnLemma(k, core, avars)
}

// projectQE is the k=1 specialization (§4.F): it always records the
// lemma permanently into the elimination answer and pops all the way to
// level 0, regardless of the lemma's own level.
func (e *Engine) projectQE() error {
	const k = 1
	parity := ParityOf(k)
	core := e.pa.Pred2Lit(e.kp.of(parity).UnsatCore())

	avars := flattenBlocks(e.vars[k:])
	model := e.model

	newCore, ok := e.projector.Project(e.pctx, e.forceElim, avars, model, core)
	if e.forceElim && !ok {
		return ErrMBPIncomplete
	}

	lemma := e.ctx.PushNot(mkAnd(e.ctx, newCore))
	var defs []z3.AST
	lvl := e.pa.AbstractAtoms(lemma, &defs)

	e.pop(1)
	e.recordPermanentLemma(lemma, lvl, model, defs)
	return nil
}

// learnLemma is the shared tail of project(): run MBP over core, negate,
// compute the resulting lemma's level, pick the backjump amount per the
// three-way rule of §4.F step 5, pop, and either record the lemma
// permanently (landing at level 0 in elimination mode) or assert it into
// the kernel that plays next.
func (e *Engine) learnLemma(k int, core, avars []z3.AST) error {
	model := e.model

	newCore, ok := e.projector.Project(e.pctx, e.forceElim, avars, model, core)
	if e.forceElim && !ok {
		return ErrMBPIncomplete
	}

	lemma := e.ctx.PushNot(mkAnd(e.ctx, newCore))
	var defs []z3.AST
	lvl := e.pa.AbstractAtoms(lemma, &defs)

	n := backjumpAmount(k, lvl, e.qelim, e.forceElim)
	e.pop(n)

	if e.level == 0 && e.qelim {
		e.recordPermanentLemma(lemma, lvl, model, defs)
		return nil
	}

	for _, d := range defs {
		e.kp.assertBoth(d)
	}
	abstracted := e.pa.MkAbstract(lemma)
	e.kp.of(ParityOf(e.level)).Assert(abstracted)
	e.log.Info("backjump",
		zap.Int("from", k), zap.Int("to", e.level), zap.Stringer("lemma_level", lvl))
	return nil
}

// backjumpAmount implements §4.F step 5's three-way rule.
func backjumpAmount(k int, lvl Level, qelim, forceElim bool) int {
	if lvl.IsUnset() {
		return 2 * (k / 2)
	}
	if qelim && !forceElim {
		return 2
	}
	return k - int(lvl.Max())
}

// recordPermanentLemma wraps lemma as an assumption literal that survives
// every future Pop (§4.F step 6: "register the lemma as an assumption...
// recorded in answer").
func (e *Engine) recordPermanentLemma(lemma z3.AST, lvl Level, model *z3.Model, defs []z3.AST) {
	p := e.pa.MkAssumptionLiteral(lemma, model, lvl, &defs)
	e.pa.AddPermanentAssumption(p)
	e.answer = append(e.answer, lemma)
	for _, d := range defs {
		e.kp.assertBoth(d)
	}
}

// flattenBlocks concatenates every variable block into a single slice, the
// avars ← ⋃ vars[i] accumulation of §4.F step 2.
func flattenBlocks(blocks [][]z3.AST) []z3.AST {
	var out []z3.AST
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}
