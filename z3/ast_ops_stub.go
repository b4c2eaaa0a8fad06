//go:build !cgo
// +build !cgo

package z3

func (t AST) Not() AST { return AST{} }

func And(args ...AST) AST { return AST{} }
func Or(args ...AST) AST  { return AST{} }
func Eq(x, y AST) AST     { return AST{} }
func Add(args ...AST) AST { return AST{} }
func Sub(args ...AST) AST { return AST{} }
func Mul(args ...AST) AST { return AST{} }
func Le(x, y AST) AST     { return AST{} }
func Lt(x, y AST) AST     { return AST{} }
func Ge(x, y AST) AST     { return AST{} }
func Gt(x, y AST) AST     { return AST{} }

func Select(array AST, index AST) AST { return AST{} }
func Implies(x, y AST) AST            { return AST{} }
func Ite(c, t, e AST) AST             { return AST{} }
func Distinct(args ...AST) AST        { return AST{} }
func Concat(args ...AST) AST          { return AST{} }
func Length(s AST) AST                { return AST{} }
func Contains(s, t AST) AST           { return AST{} }

func (ctx *Context) App(f FuncDecl, args ...AST) AST { return AST{} }
