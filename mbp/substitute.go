package mbp

import "github.com/nbjorner-qe/qsat/z3"

// substituteWitness implements the model-based substitution strategy all
// five projectors in this package share (spec.md §4.F's note that MBP
// "gives a model-specific witness", not a full virtual-QE procedure): for
// every atom in core, plug in the model's evaluation of each variable in
// vars, simplify, and drop an atom that collapsed to the literal "true".
// It reports false if any projected atom still mentions one of vars,
// which Dispatcher.Project folds into the incomplete-elimination flag the
// core escalates to ErrMBPIncomplete under force_elim.
func substituteWitness(ctx *z3.Context, model *z3.Model, vars []z3.AST, core []z3.AST) ([]z3.AST, bool) {
	if model == nil || len(vars) == 0 {
		return core, true
	}
	from := make([]z3.AST, len(vars))
	to := make([]z3.AST, len(vars))
	for i, v := range vars {
		from[i] = v
		to[i] = model.Eval(v, true)
	}

	out := make([]z3.AST, 0, len(core))
	complete := true
	for _, atom := range core {
		projected := ctx.Simplify(ctx.Substitute(atom, from, to))
		if b, ok := projected.BoolValue(); ok && b {
			continue
		}
		out = append(out, projected)
		if mentionsAny(projected, vars) {
			complete = false
		}
	}
	return out, complete
}

// mentionsAny reports whether any of vars occurs (by pointer identity, the
// AST layer's equality for hash-consed nodes) anywhere in e.
func mentionsAny(e z3.AST, vars []z3.AST) bool {
	set := make(map[z3.AST]bool, len(vars))
	for _, v := range vars {
		set[v] = true
	}
	found := false
	e.Walk(func(a z3.AST) bool {
		if found {
			return false
		}
		if set[a] {
			found = true
			return false
		}
		return true
	})
	return found
}

// ctxOf returns the owning context of the first variable, which every
// Projector in this package needs to call Substitute/Simplify but the
// upstream §6 contract does not pass explicitly (it threads a context.
// Context for cancellation, not a z3.Context).
func ctxOf(vars []z3.AST) *z3.Context {
	if len(vars) == 0 {
		return nil
	}
	return vars[0].Context()
}
