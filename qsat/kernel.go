package qsat

import "github.com/nbjorner-qe/qsat/z3"

// kernelPair wraps the two incremental SMT instances the search loop plays
// against each other: kEx receives the formula positively (the existential
// player), kFa receives its negation (the universal player). Both see the
// same proxy definitions asserted to them, matching spec.md §4.C.
type kernelPair struct {
	ex *z3.Solver
	fa *z3.Solver
}

func newKernelPair(ctx *z3.Context) *kernelPair {
	kp := &kernelPair{
		ex: ctx.NewSolver(),
		fa: ctx.NewSolver(),
	}
	// Zero relevancy: proxies must retain values even when deactivated by
	// the boolean skeleton, and models must be available on every SAT
	// check (§4.C).
	_ = kp.ex.SetOption("smt.relevancy", 0)
	_ = kp.fa.SetOption("smt.relevancy", 0)
	return kp
}

// of returns the kernel that plays at quantifier-block parity p: the
// existential player's kernel for Existential, the universal player's for
// Universal.
func (kp *kernelPair) of(p Parity) *z3.Solver {
	if p == Existential {
		return kp.ex
	}
	return kp.fa
}

// assertBoth asserts e to both kernels, the ordering requirement of §5:
// "emit defs to both kernels, then assert the abstracted lemma to the
// kernel that will play next."
func (kp *kernelPair) assertBoth(e z3.AST) {
	kp.ex.Assert(e)
	kp.fa.Assert(e)
}

// cancel forwards cancellation to both kernels (§5).
func (kp *kernelPair) cancel() {
	kp.ex.Cancel()
	kp.fa.Cancel()
}

// kernelStats is the merged statistics surface §6 Downstream names: "both
// kernels' stats merged".
type kernelStats map[string]float64

func (kp *kernelPair) stats() kernelStats {
	out := make(kernelStats)
	for k, v := range kp.ex.Stats() {
		out[k] = v
	}
	for k, v := range kp.fa.Stats() {
		out[k] += v
	}
	return out
}
