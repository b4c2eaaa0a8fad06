package mbp

import (
	"context"

	"github.com/nbjorner-qe/qsat/z3"
)

// BitVector projects fixed-width bit-vector variables using the same
// witness-substitution strategy as Arith. Z3's own simplifier normalizes
// two's-complement wraparound on ground bit-vector numerals (e.g. folding
// a substituted "-x" into its unsigned width-wrapped form), so this
// projector does not need to duplicate that arithmetic; it exists as a
// distinct type purely so Dispatcher can route BV variables to a plug-in
// whose name documents the theory it handles, matching §9's "dynamic
// dispatch over theories" design note.
type BitVector struct{}

// Project implements Projector.
func (BitVector) Project(_ context.Context, _ bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool) {
	return substituteWitness(ctxOf(vars), model, vars, core)
}
