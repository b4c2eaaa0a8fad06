//go:build cgo
// +build cgo

package z3

/*
#include <stdlib.h>
#include "z3.h"
*/
import "C"
import "unsafe"

// Quantifier is a view over a forall/exists AST node exposing its bound
// variables and body without handing out raw de Bruijn indices.
type Quantifier struct {
	ctx *Context
	q   C.Z3_ast
}

// AsQuantifier returns a Quantifier view of the AST if it is one.
func (a AST) AsQuantifier() (Quantifier, bool) {
	if !a.IsQuantifier() {
		return Quantifier{}, false
	}
	return Quantifier{a.ctx, a.a}, true
}

// IsForall reports whether the quantifier is universal (false means
// existential).
func (q Quantifier) IsForall() bool {
	return bool(C.Z3_is_quantifier_forall(q.ctx.c, q.q))
}

// NumBound returns the number of variables bound by the quantifier.
func (q Quantifier) NumBound() int {
	return int(C.Z3_get_quantifier_num_bound(q.ctx.c, q.q))
}

// BoundName returns the declared name of the bound variable at declaration
// position i, matching the order the quantifier was built with (Z3 stores
// the de Bruijn index of this variable as NumBound()-1-i internally).
func (q Quantifier) BoundName(i int) string {
	sym := C.Z3_get_quantifier_bound_name(q.ctx.c, q.q, C.uint(i))
	return symbolToString(q.ctx, sym)
}

// BoundSort returns the sort of the bound variable at declaration position i.
func (q Quantifier) BoundSort(i int) Sort {
	s := C.Z3_get_quantifier_bound_sort(q.ctx.c, q.q, C.uint(i))
	return Sort{q.ctx, s}
}

// Body returns the quantifier's body, expressed in terms of de Bruijn
// bound-variable nodes. Use Context.ExtractVars to obtain a version of the
// body expressed over fresh constants instead.
func (q Quantifier) Body() AST {
	b := C.Z3_get_quantifier_body(q.ctx.c, q.q)
	C.Z3_inc_ref(q.ctx.c, b)
	return AST{q.ctx, b}
}

// ExtractVars skolemizes the bound variables of a single quantifier into
// fresh constants, returning the body rewritten over those constants
// together with the constants themselves (outermost binder first). This
// mirrors the upstream extract_vars contract: callers that subsequently
// negate/project the body and want to re-quantify it should use
// ForallConst/ExistsConst with the same variable slice.
func (ctx *Context) ExtractVars(q Quantifier) (AST, []AST) {
	n := q.NumBound()
	if n == 0 {
		return q.Body(), nil
	}
	vars := make([]AST, n)
	// Z3_substitute_vars expects the replacement array indexed by de
	// Bruijn index, where index 0 refers to the innermost (last
	// declared) bound variable.
	repl := make([]C.Z3_ast, n)
	for i := 0; i < n; i++ {
		name := q.BoundName(i)
		sort := q.BoundSort(i)
		v := ctx.MkFreshConst(name, sort)
		vars[i] = v
		repl[n-1-i] = v.a
	}
	body := q.Body()
	out := C.Z3_substitute_vars(ctx.c, body.a, C.uint(n), (*C.Z3_ast)(unsafe.Pointer(&repl[0])))
	C.Z3_inc_ref(ctx.c, out)
	return AST{ctx, out}, vars
}

// ForallConst builds a universal quantifier over vars, abstracting
// occurrences of those constants in body into bound variables.
func (ctx *Context) ForallConst(vars []AST, body AST) AST {
	return ctx.mkQuantifierConst(true, vars, body)
}

// ExistsConst builds an existential quantifier over vars, abstracting
// occurrences of those constants in body into bound variables.
func (ctx *Context) ExistsConst(vars []AST, body AST) AST {
	return ctx.mkQuantifierConst(false, vars, body)
}

func (ctx *Context) mkQuantifierConst(isForall bool, vars []AST, body AST) AST {
	if len(vars) == 0 {
		return body
	}
	bound := make([]C.Z3_app, len(vars))
	for i, v := range vars {
		bound[i] = C.Z3_to_app(ctx.c, v.a)
	}
	var a C.Z3_ast
	boundPtr := (*C.Z3_app)(unsafe.Pointer(&bound[0]))
	if isForall {
		a = C.Z3_mk_forall_const(ctx.c, 0, C.uint(len(bound)), boundPtr, 0, nil, body.a)
	} else {
		a = C.Z3_mk_exists_const(ctx.c, 0, C.uint(len(bound)), boundPtr, 0, nil, body.a)
	}
	C.Z3_inc_ref(ctx.c, a)
	return AST{ctx, a}
}

// PushNot returns the negation of f, pushed one level through f's own top
// connective (and/or/quantifier) so that the result never stacks two nots
// at the top. It mirrors the upstream push_not helper, which is applied to
// freshly built conjunctions (e.g. a negated unsat core) rather than
// recursively normalized formulas.
func (ctx *Context) PushNot(f AST) AST {
	if inner, ok := f.IsNot(); ok {
		return inner
	}
	if q, ok := f.AsQuantifier(); ok {
		body, vars := ctx.ExtractVars(q)
		negBody := body.Not()
		if q.IsForall() {
			return ctx.ExistsConst(vars, negBody)
		}
		return ctx.ForallConst(vars, negBody)
	}
	if f.IsApp() {
		switch f.Decl().Kind() {
		case DeclOpAnd:
			args := f.Children()
			neg := make([]AST, len(args))
			for i, a := range args {
				neg[i] = a.Not()
			}
			return Or(neg...)
		case DeclOpOr:
			args := f.Children()
			neg := make([]AST, len(args))
			for i, a := range args {
				neg[i] = a.Not()
			}
			return And(neg...)
		}
	}
	return f.Not()
}
