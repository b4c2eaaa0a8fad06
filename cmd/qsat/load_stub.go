//go:build !cgo
// +build !cgo

package main

import (
	"errors"

	"github.com/nbjorner-qe/qsat/z3"
)

func loadFormula(path string) (*z3.Context, z3.AST, error) {
	return nil, z3.AST{}, errors.New("qsat: built without cgo; install Z3 and rebuild with CGO_ENABLED=1")
}
