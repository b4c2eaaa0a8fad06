//go:build cgo
// +build cgo

package z3

/*
#include "z3.h"
*/
import "C"

// Simplify runs Z3's built-in simplifier over e, folding ground arithmetic
// and boolean structure (e.g. "1+2=3" to "true"). MBP projectors use this
// after substituting a model witness for an eliminated variable, so an
// atom that became trivially true or false collapses to a literal instead
// of surviving as dead ground structure in the projected core.
func (ctx *Context) Simplify(e AST) AST {
	a := C.Z3_simplify(ctx.c, e.a)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}
