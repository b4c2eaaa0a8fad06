//go:build !cgo
// +build !cgo

package z3

// Quantifier is a placeholder when cgo is disabled.
type Quantifier struct{}

func (a AST) AsQuantifier() (Quantifier, bool) { return Quantifier{}, false }
func (q Quantifier) IsForall() bool            { return false }
func (q Quantifier) NumBound() int             { return 0 }
func (q Quantifier) BoundName(i int) string    { return "" }
func (q Quantifier) BoundSort(i int) Sort      { return Sort{} }
func (q Quantifier) Body() AST                 { return AST{} }

func (ctx *Context) ExtractVars(q Quantifier) (AST, []AST) { return AST{}, nil }
func (ctx *Context) ForallConst(vars []AST, body AST) AST  { return AST{} }
func (ctx *Context) ExistsConst(vars []AST, body AST) AST  { return AST{} }
func (ctx *Context) PushNot(f AST) AST                     { return AST{} }
