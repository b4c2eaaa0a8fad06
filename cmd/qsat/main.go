// Command qsat is a small SMT-LIB2 front end for the qsat tactics: it reads
// a closed, quantified formula, runs one of the three tactic constructors
// over it, and prints the decision/elimination result to stdout.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	cfg.Encoding = "console"
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
