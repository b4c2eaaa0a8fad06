//go:build !cgo
// +build !cgo

package z3

func (a AST) IsBool() bool                 { return false }
func (a AST) IsNot() (AST, bool)           { return AST{}, false }
func (a AST) IsEq() bool                   { return false }
func (a AST) IsDistinct() bool             { return false }
func (a AST) IsUninterpConst() bool        { return false }
func (a AST) IsQuantifier() bool           { return false }
func (a AST) IsVar() bool                  { return false }
func (d FuncDecl) IsBasicConnective() bool { return false }
