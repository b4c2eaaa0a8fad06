// Package mbp supplies the model-based-projection plug-ins spec.md keeps
// deliberately out of the qsat core's scope (§1: "per-theory MBP
// plug-ins... core specifies only the calling contract"). Dispatcher
// implements the "dynamic dispatch over theories" design note of §9 as a
// small registry keyed by z3.SortKind, picking the right Projector for the
// sort of the variables a projection step is asked to eliminate.
package mbp

import (
	"context"

	"github.com/nbjorner-qe/qsat/z3"
)

// Projector is the §6 Upstream "MBP plug-in" contract:
// mbp(force, vars, model, core) mutating core in place. This Go rendering
// returns the new slice plus whether every variable in vars was
// eliminated, letting the caller (qsat.Engine.project) decide whether a
// partial result under force=true is fatal.
type Projector interface {
	Project(ctx context.Context, forceElim bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool)
}

// Dispatcher groups vars by sort kind and routes each group to the
// Projector registered for that kind, threading core through each call so
// later groups see the previous groups' projected result.
type Dispatcher struct {
	byKind map[z3.SortKind]Projector
}

// NewDispatcher builds a Dispatcher pre-registered with this package's
// five projectors, covering the sorts §8's end-to-end scenarios exercise:
// linear arithmetic (Int/Real), bit-vectors, arrays, uninterpreted sorts
// (for UF atoms), and algebraic datatypes.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byKind: map[z3.SortKind]Projector{
		z3.SortKindInt:           Arith{},
		z3.SortKindReal:          Arith{},
		z3.SortKindBV:            BitVector{},
		z3.SortKindArray:         Array{},
		z3.SortKindUninterpreted: UninterpretedFunctions{},
		z3.SortKindDatatype:      Datatype{},
	}}
}

// Register installs (or overrides) the Projector used for kind.
func (d *Dispatcher) Register(kind z3.SortKind, p Projector) {
	if d.byKind == nil {
		d.byKind = make(map[z3.SortKind]Projector)
	}
	d.byKind[kind] = p
}

// Project implements the Projector interface over the registry: variables
// are grouped by sort kind (in first-occurrence order, for determinism)
// and each group is projected by its registered plug-in in turn. A group
// with no registered plug-in is left untouched in the returned core and
// marks the overall result incomplete.
func (d *Dispatcher) Project(ctx context.Context, forceElim bool, vars []z3.AST, model *z3.Model, core []z3.AST) ([]z3.AST, bool) {
	if len(vars) == 0 {
		return core, true
	}
	var order []z3.SortKind
	groups := make(map[z3.SortKind][]z3.AST)
	for _, v := range vars {
		k := v.Sort().Kind()
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], v)
	}

	ok := true
	for _, k := range order {
		p, found := d.byKind[k]
		if !found {
			ok = false
			continue
		}
		var groupOK bool
		core, groupOK = p.Project(ctx, forceElim, groups[k], model, core)
		ok = ok && groupOK
	}
	return core, ok
}
