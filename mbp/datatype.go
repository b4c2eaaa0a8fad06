package mbp

import (
	"context"

	"github.com/nbjorner-qe/qsat/z3"
)

// Datatype projects variables of an algebraic-datatype sort (declared via
// z3.Context.MkDatatype / z3.Constructor) the same way UninterpretedFunctions
// and Array do: substitute the model witness and leave any
// constructor/accessor/recognizer application over it as a ground term for
// the kernel's own datatype theory to resolve. No constructor-aware
// case-split MBP is attempted here, matching §1's scoping of this package to
// model-specific witnesses rather than a full virtual-QE procedure.
type Datatype struct{}

// Project implements Projector.
func (Datatype) Project(_ context.Context, _ bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool) {
	return substituteWitness(ctxOf(vars), model, vars, core)
}
