//go:build !cgo
// +build !cgo

// Package z3 provides a minimal Go binding to Z3's C API.
// This stub allows the package to build without cgo available.
// Install Z3 and enable cgo to use the real binding.
package z3

// Placeholder types for documentation-only builds (no functionality).

type Context struct{}

type Config struct{}

type Sort struct{}

type AST struct{}

type Solver struct{}

type Model struct{}

type FuncDecl struct{}

type CheckResult int

const (
	Unknown CheckResult = iota
	Sat
	Unsat
)

// NewConfig returns a placeholder config when cgo is disabled.
func NewConfig() *Config { return &Config{} }

func (cfg *Config) SetParam(key, value string) {}

func (cfg *Config) Close() {}

// NewContext returns a placeholder context when cgo is disabled.
func NewContext(cfg *Config) *Context { return &Context{} }

func (ctx *Context) Close() {}

func (ctx *Context) BoolSort() Sort                     { return Sort{} }
func (ctx *Context) IntSort() Sort                      { return Sort{} }
func (ctx *Context) RealSort() Sort                     { return Sort{} }
func (ctx *Context) StringSort() Sort                   { return Sort{} }
func (ctx *Context) NamedSort(name string) (Sort, bool) { return Sort{}, false }
func (ctx *Context) ConstDecl(name string) (AST, bool)  { return AST{}, false }
func (ctx *Context) Const(name string, s Sort) AST      { return AST{} }
func (ctx *Context) FuncDeclByName(name string) (FuncDecl, bool) {
	return FuncDecl{}, false
}
func (ctx *Context) IntVal(v int64) AST     { return AST{} }
func (ctx *Context) RealVal(num string) AST { return AST{} }
func (ctx *Context) StringVal(s string) AST { return AST{} }
func (ctx *Context) BoolVal(b bool) AST     { return AST{} }

func (a AST) String() string        { return "<nil>" }
func (a AST) NumeralString() string { return "" }
func (s Sort) String() string       { return "" }
func (s Sort) Name() string         { return "" }
