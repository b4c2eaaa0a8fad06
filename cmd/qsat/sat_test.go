//go:build cgo
// +build cgo

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nbjorner-qe/qsat/qsat"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "goal.smt2")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunSatReportsUnsat(t *testing.T) {
	logger = zap.NewNop()
	path := writeScript(t, `
(declare-const x Int)
(declare-const y Int)
(assert (exists ((x Int)) (forall ((y Int)) (<= x y))))
`)
	if err := runSat(&cobra.Command{}, []string{path}); err != nil {
		t.Fatalf("runSat: %v", err)
	}
}

func TestRunQEReportsTrue(t *testing.T) {
	logger = zap.NewNop()
	path := writeScript(t, `
(declare-const x Int)
(declare-const y Int)
(assert (forall ((x Int)) (exists ((y Int)) (= y (+ x 1)))))
`)
	run := runQE(qsat.NewQE2Tactic)
	if err := run(&cobra.Command{}, []string{path}); err != nil {
		t.Fatalf("runQE: %v", err)
	}
}

func TestLoadFormulaRejectsMissingFile(t *testing.T) {
	if _, _, err := loadFormula(filepath.Join(t.TempDir(), "missing.smt2")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
