//go:build !cgo
// +build !cgo

package z3

// SortKind is a placeholder when cgo is disabled.
type SortKind int

const (
	SortKindUninterpreted SortKind = iota
	SortKindBool
	SortKindInt
	SortKindReal
	SortKindBV
	SortKindArray
	SortKindDatatype
	SortKindUnknown
)

func (s Sort) Kind() SortKind                  { return SortKindUnknown }
func (s Sort) BVSize() int                     { return 0 }
func (a AST) Sort() Sort                       { return Sort{} }
func (ctx *Context) BitVecSort(int) Sort       { return Sort{} }
func (ctx *Context) ArraySort(Sort, Sort) Sort { return Sort{} }
