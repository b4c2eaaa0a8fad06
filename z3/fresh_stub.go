//go:build !cgo
// +build !cgo

package z3

func (ctx *Context) MkFreshConst(prefix string, s Sort) AST {
	return AST{}
}

func (ctx *Context) DeclareFunc(name string, domain []Sort, rng Sort) FuncDecl {
	return FuncDecl{}
}

func (ctx *Context) UninterpConst(name string, s Sort) AST {
	return AST{}
}
