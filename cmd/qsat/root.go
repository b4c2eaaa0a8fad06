package main

import (
	"time"

	"github.com/spf13/cobra"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "qsat",
	Short: "Quantifier satisfiability and quantifier-elimination engine",
	Long: `qsat decides satisfiability of closed, arbitrarily alternating
quantified first-order formulas over linear arithmetic, bit-vectors,
arrays, and uninterpreted functions, and can eliminate their quantifiers.

Input is a single SMT-LIB2 file whose assertions are conjoined into one
closed formula before the chosen tactic runs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = initLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level round tracing")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "wall-clock budget for the tactic (0 = no timeout)")
	rootCmd.AddCommand(satCmd, qeCmd, qeRecCmd)
}
