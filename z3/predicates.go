//go:build cgo
// +build cgo

package z3

/*
#include "z3.h"
*/
import "C"

// IsBool reports whether the AST's sort is Bool.
func (a AST) IsBool() bool {
	return a.Sort().Kind() == SortKindBool
}

// IsNot reports whether the AST is a top-level negation, returning its
// single argument.
func (a AST) IsNot() (AST, bool) {
	if !a.IsApp() || a.Decl().Kind() != DeclOpNot {
		return AST{}, false
	}
	return a.Child(0), true
}

// IsEq reports whether the AST is a top-level equality.
func (a AST) IsEq() bool {
	return a.IsApp() && a.Decl().Kind() == DeclOpEq
}

// IsDistinct reports whether the AST is a top-level distinct application.
func (a AST) IsDistinct() bool {
	return a.IsApp() && a.Decl().Kind() == DeclOpDistinct
}

// IsUninterpConst reports whether the AST is a 0-ary uninterpreted
// application, i.e. a constant symbol rather than a compound term.
func (a AST) IsUninterpConst() bool {
	return a.IsApp() && a.NumChildren() == 0 && a.Decl().Kind() == DeclOpUninterpreted
}

// IsQuantifier reports whether the AST is a forall/exists node.
func (a AST) IsQuantifier() bool {
	return a.Kind() == ASTKindQuantifier
}

// IsVar reports whether the AST is a bound (de Bruijn) variable node.
func (a AST) IsVar() bool {
	return a.Kind() == ASTKindVar
}

// IsBasicConnective reports whether the declaration is one of the core
// boolean connectives (and/or/not/implies/xor/ite/eq/distinct/true/false),
// standing in for "family_id() == basic_family_id" in the original C++.
func (d FuncDecl) IsBasicConnective() bool {
	switch d.Kind() {
	case DeclOpAnd, DeclOpOr, DeclOpNot, DeclOpImplies, DeclOpXor, DeclOpIte,
		DeclOpEq, DeclOpDistinct, DeclOpTrue, DeclOpFalse:
		return true
	default:
		return false
	}
}
