package mbp

import (
	"context"

	"github.com/nbjorner-qe/qsat/z3"
)

// Array projects array- and index-sorted variables by substituting their
// model witness and letting the kernel's own array theory re-simplify any
// select/store term that became ground. This is a deliberately shallow
// projector: §1 does not guarantee minimality of the quantifier-free
// answer, and a full array MBP (à la the McMillan/array-property-fragment
// rules) is out of scope for this core's calling contract.
type Array struct{}

// Project implements Projector.
func (Array) Project(_ context.Context, _ bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool) {
	return substituteWitness(ctxOf(vars), model, vars, core)
}
