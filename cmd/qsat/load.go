//go:build cgo
// +build cgo

package main

import (
	"fmt"
	"os"

	"github.com/nbjorner-qe/qsat/z3"
)

// loadFormula reads an SMT-LIB2 script from path and conjoins its top-level
// assertions into the single closed formula the qsat tactics expect. The
// returned Context outlives the formula and must eventually be closed by
// the caller.
func loadFormula(path string) (*z3.Context, z3.AST, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, z3.AST{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := z3.NewConfig()
	defer cfg.Close()
	ctx := z3.NewContext(cfg)

	asts, err := ctx.ParseSMTLIB2String(string(data))
	if err != nil {
		ctx.Close()
		return nil, z3.AST{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(asts) == 0 {
		ctx.Close()
		return nil, z3.AST{}, fmt.Errorf("%s: no assertions found", path)
	}
	formula := asts[0]
	if len(asts) > 1 {
		formula = z3.And(asts...)
	}
	return ctx, formula, nil
}
