//go:build !cgo
// +build !cgo

package z3

// Constructor is a placeholder when cgo is disabled.
type Constructor struct{}

// ADTField describes a constructor field with a concrete sort.
type ADTField struct {
	Name string
	Sort Sort
}

// ADTConstructorDecl collects the callable declarations extracted from a
// constructor.
type ADTConstructorDecl struct {
	Constructor FuncDecl
	Recognizer  FuncDecl
	Accessors   []FuncDecl
}

func (ctx *Context) MkConstructor(name, recognizer string, fields []ADTField) *Constructor {
	return &Constructor{}
}

func (ctx *Context) MkDatatype(name string, ctors []*Constructor) (Sort, []ADTConstructorDecl) {
	return Sort{}, nil
}
