//go:build cgo
// +build cgo

package z3

/*
#include "z3.h"
*/
import "C"

// RegisterDecl installs a constant interpretation for decl in the model,
// via Z3_add_const_interp. Predicate abstraction uses this to give a
// freshly minted assumption-literal proxy a default valuation the moment
// it is created, so that a subsequent GetAssumptions call over the same
// model is stable (spec.md §4.B, mk_assumption_literal).
func (m *Model) RegisterDecl(decl FuncDecl, value AST) {
	if m == nil || m.m == nil || decl.d == nil {
		return
	}
	C.Z3_add_const_interp(m.ctx.c, m.m, decl.d, value.a)
}
