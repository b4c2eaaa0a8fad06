package qsat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nbjorner-qe/qsat/z3"
)

// Goal is the minimal stand-in for the tactic glue's goal object (§1/§6:
// out of scope as a subsystem, but the calling convention is part of what
// this core exposes downstream). Formula must be closed (no free de Bruijn
// indices) and carries its own *z3.Context via AST.Context().
type Goal struct {
	Formula z3.AST

	// WantProof and WantUnsatCore mirror §7's "proof/core requested"
	// error kind: this core declines both rather than faking them.
	WantProof     bool
	WantUnsatCore bool
}

// Result is the tactic's downstream output: the resulting goal formula,
// a model converter that strips invented proxy symbols, and statistics.
type Result struct {
	// Formula is BoolVal(true)/BoolVal(false) for a decision-mode tactic
	// (qsat) signaling the outer quantifier is valid/invalid, or the
	// quantifier-free eliminated formula for qelim-mode tactics (qe2,
	// qe_rec).
	Formula z3.AST

	// Model is the witness for a decision-mode Sat result, already
	// filtered of every fresh proxy via the fmc sink (§6: "filter_model_
	// converter ∘ model2model_converter(model)"). Its zero value reports
	// ok=false from Eval for any input.
	Model UserModel

	Stats Stats
}

// Params is the small typed parameter bag §6's "tactic glue (parameter
// parsing)" is explicitly out of scope for as a subsystem, but a tactic
// constructor still needs *some* way to plug in a timeout, a logger, and
// an MBP projector — hence functional options, mirroring z3.Config's own
// preference for a typed struct over stringly-typed params.
type Params struct {
	Timeout   time.Duration
	Logger    *zap.Logger
	Projector Projector
}

// Option configures a Params via a functional-options constructor.
type Option func(*Params)

// WithTimeout bounds the tactic's total wall-clock budget; zero means no
// timeout beyond the caller's own context.
func WithTimeout(d time.Duration) Option {
	return func(p *Params) { p.Timeout = d }
}

// WithLogger injects a *zap.Logger for per-round diagnostics (§5's "TRACE"
// analogue). Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Params) { p.Logger = log }
}

// WithProjector supplies the MBP plug-in dispatcher. Required: Apply fails
// immediately without one, since §1 deliberately keeps MBP implementation
// out of the core.
func WithProjector(projector Projector) Option {
	return func(p *Params) { p.Projector = projector }
}

// Tactic is one of the three downstream entry points §6 names: qsat
// (qelim=false, forceElim=true), qe2 (true,true), qe_rec (true,false).
type Tactic struct {
	qelim     bool
	forceElim bool
	recursive bool
	params    Params
}

// NewQSATTactic builds the decision-mode tactic: decides satisfiability of
// a closed, arbitrarily alternating quantified formula.
func NewQSATTactic(opts ...Option) *Tactic {
	return newTactic(false, true, false, opts)
}

// NewQE2Tactic builds the prenex quantifier-elimination tactic.
func NewQE2Tactic(opts ...Option) *Tactic {
	return newTactic(true, true, false, opts)
}

// NewQERecTactic builds the recursive (non-prenex) elimination tactic
// of §4.G, which processes nested quantifiers in place rather than
// hoisting the whole formula first.
func NewQERecTactic(opts ...Option) *Tactic {
	return newTactic(true, false, true, opts)
}

func newTactic(qelim, forceElim, recursive bool, opts []Option) *Tactic {
	p := Params{Logger: zap.NewNop()}
	for _, o := range opts {
		o(&p)
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return &Tactic{qelim: qelim, forceElim: forceElim, recursive: recursive, params: p}
}

// Apply runs the tactic against goal, implementing §7's error taxonomy at
// the boundary: proof/core requests fail immediately, cancellation and
// kernel-unknown surface as their sentinel errors, and an invariant
// violation (a panicking assertion deep in PredAbs) is recovered here and
// converted back into a plain error rather than aborting the process.
func (t *Tactic) Apply(pctx context.Context, goal *Goal) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InvariantError); ok {
				res, err = nil, ie
				return
			}
			panic(r)
		}
	}()

	if goal.WantProof {
		return nil, ErrProofsUnsupported
	}
	if goal.WantUnsatCore {
		return nil, ErrCoreUnsupported
	}
	if t.params.Projector == nil {
		return nil, fmt.Errorf("qsat: %s tactic requires a Projector (see WithProjector)", t.name())
	}

	if pctx == nil {
		pctx = context.Background()
	}
	if t.params.Timeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(pctx, t.params.Timeout)
		defer cancel()
	}

	ctx := goal.Formula.Context()

	if t.recursive {
		formula, err := ElimRec(pctx, ctx, t.params.Projector, t.params.Logger, goal.Formula)
		if err != nil {
			return nil, err
		}
		// qe_rec dispatches a fresh single-alternation Engine per nested
		// quantifier rather than one session for the whole formula, so
		// there is no single round/predicate count to report here.
		return &Result{Formula: formula}, nil
	}

	pa := NewPredAbs(ctx, t.params.Logger)
	engine := NewEngine(ctx, pa, t.qelim, t.forceElim, t.params.Projector, t.params.Logger)

	if !t.qelim {
		status, err := engine.Decide(pctx, goal.Formula)
		if err != nil {
			return nil, err
		}
		result := &Result{Stats: engine.Stats()}
		switch status {
		case StatusSat:
			result.Formula = ctx.BoolVal(true)
			result.Model = engine.Model()
		case StatusUnsat:
			result.Formula = ctx.BoolVal(false)
		default:
			return nil, ErrKernelUnknown
		}
		return result, nil
	}

	formula, err := engine.Eliminate(pctx, goal.Formula)
	if err != nil {
		return nil, err
	}
	return &Result{Formula: formula, Stats: engine.Stats()}, nil
}

func (t *Tactic) name() string {
	switch {
	case !t.qelim:
		return "qsat"
	case t.recursive:
		return "qe_rec"
	default:
		return "qe2"
	}
}
