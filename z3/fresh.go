//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"
import "unsafe"

// MkFreshConst creates a constant with a name derived from prefix that is
// guaranteed not to collide with any existing symbol in the context. It is
// used to mint the boolean proxies and assumption literals of predicate
// abstraction.
func (ctx *Context) MkFreshConst(prefix string, s Sort) AST {
	cstr := C.CString(prefix)
	defer C.free(unsafe.Pointer(cstr))
	a := C.Z3_mk_fresh_const(ctx.c, cstr, s.s)
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// DeclareFunc declares an uninterpreted function symbol with the given
// domain and range sorts, recording it so FuncDeclByName can rediscover it.
func (ctx *Context) DeclareFunc(name string, domain []Sort, rng Sort) FuncDecl {
	sym := ctx.StringSymbol(name)
	var domPtr *C.Z3_sort
	if len(domain) > 0 {
		dom := make([]C.Z3_sort, len(domain))
		for i, d := range domain {
			dom[i] = d.s
		}
		domPtr = (*C.Z3_sort)(unsafe.Pointer(&dom[0]))
	}
	d := C.Z3_mk_func_decl(ctx.c, sym, C.uint(len(domain)), domPtr, rng.s)
	decl := FuncDecl{ctx, d}
	if ctx.funcDecls == nil {
		ctx.funcDecls = make(map[string]FuncDecl)
	}
	ctx.funcDecls[name] = decl
	return decl
}

// UninterpConst declares (or reuses) a 0-ary uninterpreted constant of the
// given name and sort. It is a thin convenience over Const that makes the
// uninterpreted-function intent explicit at call sites.
func (ctx *Context) UninterpConst(name string, s Sort) AST {
	return ctx.Const(name, s)
}
