//go:build !cgo
// +build !cgo

package z3

// NewSolver returns a placeholder solver when cgo is disabled.
func (ctx *Context) NewSolver() *Solver { return &Solver{} }

func (s *Solver) Close() {}

// SetGlobalParam is a no-op when cgo is disabled.
func SetGlobalParam(key, value string) {}

func (s *Solver) Assert(a AST) {}

func (s *Solver) SetOption(name string, value interface{}) error { return errNoCgo }

func (s *Solver) Push() {}

func (s *Solver) Pop(n uint) {}

func (s *Solver) Check() (CheckResult, error) { return Unknown, errNoCgo }

func (s *Solver) ReasonUnknown() string { return "" }

func (s *Solver) Model() *Model { return nil }

func (s *Solver) AssertSMTLIB2String(input string) error { return errNoCgo }

func (s *Solver) AssertSMTLIB2File(path string) error { return errNoCgo }

func (s *Solver) SolveSMTLIB2String(input string) (CheckResult, error) { return Unknown, errNoCgo }

func (s *Solver) SolveSMTLIB2File(path string) (CheckResult, error) { return Unknown, errNoCgo }
