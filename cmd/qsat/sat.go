package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nbjorner-qe/qsat/mbp"
	"github.com/nbjorner-qe/qsat/qsat"
)

var satCmd = &cobra.Command{
	Use:   "sat FILE",
	Short: "Decide satisfiability of a closed quantified formula (the qsat tactic)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSat,
}

func runSat(cmd *cobra.Command, args []string) error {
	ctx, formula, err := loadFormula(args[0])
	if err != nil {
		return err
	}
	defer ctx.Close()

	tactic := qsat.NewQSATTactic(
		qsat.WithLogger(logger),
		qsat.WithTimeout(timeout),
		qsat.WithProjector(mbp.NewDispatcher()),
	)
	res, err := tactic.Apply(context.Background(), &qsat.Goal{Formula: formula})
	if err != nil {
		return err
	}

	if b, ok := res.Formula.BoolValue(); ok && b {
		fmt.Println("sat")
		if m := res.Model.Raw(); m != nil {
			fmt.Println(m.String())
		}
	} else {
		fmt.Println("unsat")
	}
	fmt.Printf("rounds=%d predicates=%d\n", res.Stats.NumRounds, res.Stats.NumPredicates)
	return nil
}
