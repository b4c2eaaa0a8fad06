//go:build !cgo
// +build !cgo

package z3

func (m *Model) RegisterDecl(decl FuncDecl, value AST) {}
