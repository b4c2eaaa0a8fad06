package mbp

import (
	"context"

	"github.com/nbjorner-qe/qsat/z3"
)

// UninterpretedFunctions projects variables of an uninterpreted sort by
// substituting their model witness, leaving any function application over
// them as a ground term for the kernel's own congruence closure to
// resolve. This matches §1's statement that the core "does not support
// non-ground theory combinations beyond what the underlying kernel + MBP
// combo handles": no congruence reasoning is duplicated here, only the
// variable elimination MBP is contracted to do.
type UninterpretedFunctions struct{}

// Project implements Projector.
func (UninterpretedFunctions) Project(_ context.Context, _ bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool) {
	return substituteWitness(ctxOf(vars), model, vars, core)
}
