//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"
import "unsafe"

// Context returns the owning context of the AST, letting downstream
// packages (MBP plug-ins, in particular) build further expressions without
// threading a *Context alongside every AST they handle.
func (a AST) Context() *Context { return a.ctx }

// Substitute replaces every occurrence of from[i] in e by to[i],
// simultaneously, via Z3_substitute. Unlike Z3_substitute_vars (used by
// ExtractVars for de Bruijn indices), this operates on free constants,
// which is what a model-based projector needs to plug in a witness value
// for an eliminated variable.
func (ctx *Context) Substitute(e AST, from, to []AST) AST {
	if len(from) == 0 || len(from) != len(to) {
		return e
	}
	cfrom := make([]C.Z3_ast, len(from))
	cto := make([]C.Z3_ast, len(to))
	for i := range from {
		cfrom[i] = from[i].a
		cto[i] = to[i].a
	}
	out := C.Z3_substitute(ctx.c, e.a, C.uint(len(from)),
		(*C.Z3_ast)(unsafe.Pointer(&cfrom[0])), (*C.Z3_ast)(unsafe.Pointer(&cto[0])))
	C.Z3_inc_ref(ctx.c, out)
	return AST{ctx, out}
}

// BitVecVal creates a bit-vector numeral of the given width from a decimal
// string value, mirroring IntVal/RealVal for the bit-vector sort.
func (ctx *Context) BitVecVal(value string, width int) AST {
	cstr := C.CString(value)
	defer C.free(unsafe.Pointer(cstr))
	a := C.Z3_mk_numeral(ctx.c, cstr, ctx.BitVecSort(width).s)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}
