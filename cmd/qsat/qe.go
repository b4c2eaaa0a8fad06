package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbjorner-qe/qsat/mbp"
	"github.com/nbjorner-qe/qsat/qsat"
)

var qeCmd = &cobra.Command{
	Use:   "qe FILE",
	Short: "Eliminate quantifiers via prenex hoisting (the qe2 tactic)",
	Args:  cobra.ExactArgs(1),
	RunE:  runQE(qsat.NewQE2Tactic),
}

var qeRecCmd = &cobra.Command{
	Use:   "qe-rec FILE",
	Short: "Eliminate quantifiers in place without prenex hoisting (the qe_rec tactic)",
	Args:  cobra.ExactArgs(1),
	RunE:  runQE(qsat.NewQERecTactic),
}

func runQE(newTactic func(...qsat.Option) *qsat.Tactic) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, formula, err := loadFormula(args[0])
		if err != nil {
			return err
		}
		defer ctx.Close()

		tactic := newTactic(
			qsat.WithLogger(logger),
			qsat.WithTimeout(timeout),
			qsat.WithProjector(mbp.NewDispatcher()),
		)
		res, err := tactic.Apply(context.Background(), &qsat.Goal{Formula: formula})
		if err != nil {
			return err
		}

		fmt.Println(res.Formula.String())
		fmt.Printf("rounds=%d predicates=%d\n", res.Stats.NumRounds, res.Stats.NumPredicates)
		return nil
	}
}
