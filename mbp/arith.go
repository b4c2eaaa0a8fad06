package mbp

import (
	"context"

	"github.com/nbjorner-qe/qsat/z3"
)

// Arith projects Int/Real variables out of a conjunction by substituting
// each variable's witness value from the model, a simplified stand-in for
// the Loos–Weispfenning substitution-pair method: rather than picking a
// test point from the atoms bounding each variable, it uses the one test
// point the search loop already has on hand — the opponent's refuted
// model — which is exactly what §4.F calls "a model-specific witness that
// suffices to refute the current opponent's model".
type Arith struct{}

// Project implements Projector.
func (Arith) Project(_ context.Context, _ bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool) {
	return substituteWitness(ctxOf(vars), model, vars, core)
}
