package qsat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbjorner-qe/qsat/z3"
)

// Status is the three-valued outcome of a decision-mode search, matching
// §4.E's "Final disposition".
type Status int

const (
	StatusUnknown Status = iota
	StatusSat
	StatusUnsat
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Projector is the core's view of an MBP plug-in (§6 Upstream, "MBP
// plug-in"): given a model and a set of variables, return a
// quantifier-free formula implied by core that no longer mentions vars
// (when forceElim) or mentions them only in a restricted residual form.
// The mbp package supplies concrete implementations; this package only
// depends on the contract, matching §1's "deliberately out of scope"
// boundary.
type Projector interface {
	Project(ctx context.Context, forceElim bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool)
}

// Engine drives the alternating-level search loop of §4.E. One Engine is
// created per solve session (decision-mode Decide, elimination-mode
// Eliminate, or a single-alternation call from ElimRec).
type Engine struct {
	ctx *z3.Context
	pa  *PredAbs
	kp  *kernelPair

	vars  [][]z3.AST
	level int
	model *z3.Model

	qelim     bool
	forceElim bool
	projector Projector

	answer []z3.AST

	id  uuid.UUID
	log *zap.Logger

	numRounds int

	pctx context.Context
}

// NewEngine wires a fresh search session around pa and ctx. qelim selects
// elimination mode; forceElim selects whether MBP must fully eliminate its
// target variables (qsat/qe2) or may leave a residual (qe_rec).
func NewEngine(ctx *z3.Context, pa *PredAbs, qelim, forceElim bool, projector Projector, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Engine{
		ctx:       ctx,
		pa:        pa,
		kp:        newKernelPair(ctx),
		qelim:     qelim,
		forceElim: forceElim,
		projector: projector,
		id:        id,
		log:       log.With(zap.String("session", id.String())),
	}
}

// Stats reports the §6 Downstream statistics surface.
func (e *Engine) Stats() Stats {
	return Stats{
		NumRounds:     e.numRounds,
		NumPredicates: e.pa.NumPredicates(),
		Kernel:        e.kp.stats(),
	}
}

// Model returns the last winning model, filtered of every invented proxy
// symbol via the fmc sink (§6's "filter_model_converter").
func (e *Engine) Model() UserModel {
	return e.pa.FMC().Apply(e.model)
}

// Decide runs the search loop in decision mode (qelim=false) over fml,
// a closed formula possibly carrying leading quantifiers. It implements
// §4.E's non-elimination final disposition.
func (e *Engine) Decide(pctx context.Context, fml z3.AST) (Status, error) {
	matrix, vars := Hoist(e.pa, fml, false)
	e.vars = vars
	if err := e.assertMatrix(matrix); err != nil {
		return StatusUnknown, err
	}
	return e.run(pctx)
}

// Eliminate runs the search loop in elimination mode: the input formula is
// negated first (§4.D) so the outer alternation block is existential with
// respect to the elimination target, then hoisted and solved. The returned
// formula is the accumulated conjunction of projected lemmas, existentially
// closed over whichever projection variables still occur in it (§4.E).
func (e *Engine) Eliminate(pctx context.Context, fml z3.AST) (z3.AST, error) {
	e.qelim = true
	neg := negatePrenex(e.ctx, fml)
	matrix, vars := Hoist(e.pa, neg, true)
	e.vars = vars
	if err := e.assertMatrix(matrix); err != nil {
		return z3.AST{}, err
	}
	if _, err := e.run(pctx); err != nil {
		return z3.AST{}, err
	}
	// run only terminates in qelim mode via StatusUnsat at level 0: the
	// negated formula is unsatisfiable, so the accumulated conjunction of
	// projected lemmas is the eliminated answer (an empty one is "true").
	return e.closeAnswer(), nil
}

// assertMatrix abstracts the quantifier-free matrix, emits its proxy
// definitions to both kernels, then asserts the matrix positively to the
// existential player's kernel and negatively to the universal player's
// (§4.C: "K_ex receives the formula positively... K_fa receives its
// negation").
func (e *Engine) assertMatrix(matrix z3.AST) error {
	var defs []z3.AST
	e.pa.AbstractAtoms(matrix, &defs)
	abstracted := e.pa.MkAbstract(matrix)
	for _, d := range defs {
		e.kp.assertBoth(d)
	}
	e.kp.ex.Assert(abstracted)
	e.kp.fa.Assert(abstracted.Not())
	return nil
}

// run is the state machine of §4.E, driven until a terminal disposition.
func (e *Engine) run(pctx context.Context) (Status, error) {
	e.pctx = pctx
	for {
		if err := pctx.Err(); err != nil {
			e.kp.cancel()
			return StatusUnknown, ErrCanceled
		}
		e.numRounds++
		parity := ParityOf(e.level)
		asms := e.pa.GetAssumptions(e.model)
		solver := e.kp.of(parity)
		res, cerr := solver.CheckAssumptions(asms)
		e.log.Debug("round",
			zap.Int("level", e.level), zap.Stringer("parity", parity),
			zap.Int("round", e.numRounds), zap.Stringer("result", checkResultStatus(res)))

		switch res {
		case z3.Sat:
			e.model = solver.Model()
			e.push()
		case z3.Unsat:
			if e.level == 0 {
				return StatusUnsat, nil
			}
			if e.level == 1 && !e.qelim {
				return StatusSat, nil
			}
			if e.model == nil {
				e.pop(1)
				continue
			}
			var err error
			if e.qelim && e.level == 1 {
				err = e.projectQE()
			} else {
				err = e.project()
			}
			if err != nil {
				return StatusUnknown, err
			}
		default:
			e.kp.cancel()
			return StatusUnknown, fmt.Errorf("%w: %s", ErrKernelUnknown, cerr)
		}
	}
}

func checkResultStatus(r z3.CheckResult) Status {
	switch r {
	case z3.Sat:
		return StatusSat
	case z3.Unsat:
		return StatusUnsat
	default:
		return StatusUnknown
	}
}

// push advances the level and opens a new PredAbs assumption scope.
func (e *Engine) push() {
	e.level++
	e.pa.Push()
}

// pop retreats n levels, discards the saved model (it belonged to the
// scope being unwound), and truncates the PredAbs assumption stack by the
// same n scopes.
func (e *Engine) pop(n int) {
	e.level -= n
	e.model = nil
	e.pa.Pop(n)
}

// closeAnswer conjoins the accumulated elimination answer and closes it
// existentially over whichever non-free-block variables still occur in the
// result, per §4.E's elimination disposition.
func (e *Engine) closeAnswer() z3.AST {
	if len(e.answer) == 0 {
		return e.ctx.BoolVal(true)
	}
	body := mkAnd(e.ctx, e.answer)
	var residual []z3.AST
	occurring := occursIn(body)
	for _, block := range e.vars[1:] {
		for _, v := range block {
			if occurring[v] {
				residual = append(residual, v)
			}
		}
	}
	if len(residual) == 0 {
		return body
	}
	return e.ctx.ExistsConst(residual, body)
}

// occursIn collects the set of uninterpreted constants occurring anywhere
// in fml, used to decide which projection variables are still residual in
// the final elimination answer.
func occursIn(fml z3.AST) map[z3.AST]bool {
	out := make(map[z3.AST]bool)
	mark := make(map[z3.AST]bool)
	todo := []z3.AST{fml}
	for len(todo) > 0 {
		a := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if mark[a] {
			continue
		}
		mark[a] = true
		if a.IsUninterpConst() {
			out[a] = true
			continue
		}
		for _, c := range a.Children() {
			todo = append(todo, c)
		}
	}
	return out
}
