//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"
import (
	"errors"
	"unsafe"
)

// CheckAssumptions runs the solver under the given assumption literals,
// mirroring Z3_solver_check_assumptions. This is the incremental
// assert/check contract the search loop drives every round: assumptions
// change from round to round while the asserted formula stays fixed.
func (s *Solver) CheckAssumptions(assumptions []AST) (CheckResult, error) {
	if len(assumptions) == 0 {
		return s.Check()
	}
	cargs := make([]C.Z3_ast, len(assumptions))
	for i, a := range assumptions {
		cargs[i] = a.a
	}
	r := C.Z3_solver_check_assumptions(s.ctx.c, s.s, C.uint(len(cargs)), (*C.Z3_ast)(unsafe.Pointer(&cargs[0])))
	switch r {
	case C.Z3_L_TRUE:
		return Sat, nil
	case C.Z3_L_FALSE:
		return Unsat, nil
	default:
		rstr := C.Z3_solver_get_reason_unknown(s.ctx.c, s.s)
		if rstr != nil {
			return Unknown, errors.New(C.GoString(rstr))
		}
		return Unknown, errors.New("unknown")
	}
}

// UnsatCore returns the subset of the last check's assumptions that Z3
// certifies to be jointly unsatisfiable, via Z3_solver_get_unsat_core.
func (s *Solver) UnsatCore() []AST {
	vec := C.Z3_solver_get_unsat_core(s.ctx.c, s.s)
	if vec == nil {
		return nil
	}
	C.Z3_ast_vector_inc_ref(s.ctx.c, vec)
	defer C.Z3_ast_vector_dec_ref(s.ctx.c, vec)
	n := int(C.Z3_ast_vector_size(s.ctx.c, vec))
	out := make([]AST, 0, n)
	for i := 0; i < n; i++ {
		a := C.Z3_ast_vector_get(s.ctx.c, vec, C.uint(i))
		if a == nil {
			continue
		}
		C.Z3_inc_ref(s.ctx.c, a)
		out = append(out, AST{s.ctx, a})
	}
	return out
}

// Cancel requests that any in-flight Check/CheckAssumptions call on this
// solver be interrupted as soon as Z3 next polls for cancellation.
func (s *Solver) Cancel() {
	if s == nil || s.ctx == nil || s.ctx.c == nil {
		return
	}
	C.Z3_interrupt(s.ctx.c)
}

// Stats is a snapshot of the solver's internal statistics, keyed the way
// Z3 names them (e.g. "decisions", "conflicts").
type Stats map[string]float64

// Stats returns a snapshot of the solver's statistics counters.
func (s *Solver) Stats() Stats {
	if s == nil || s.s == nil {
		return nil
	}
	st := C.Z3_solver_get_statistics(s.ctx.c, s.s)
	if st == nil {
		return nil
	}
	C.Z3_stats_inc_ref(s.ctx.c, st)
	defer C.Z3_stats_dec_ref(s.ctx.c, st)
	n := int(C.Z3_stats_size(s.ctx.c, st))
	out := make(Stats, n)
	for i := 0; i < n; i++ {
		key := C.GoString(C.Z3_stats_get_key(s.ctx.c, st, C.uint(i)))
		if bool(C.Z3_stats_is_uint(s.ctx.c, st, C.uint(i))) {
			out[key] = float64(C.Z3_stats_get_uint_value(s.ctx.c, st, C.uint(i)))
		} else if bool(C.Z3_stats_is_double(s.ctx.c, st, C.uint(i))) {
			out[key] = float64(C.Z3_stats_get_double_value(s.ctx.c, st, C.uint(i)))
		}
	}
	return out
}
