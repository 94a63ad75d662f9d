// Copyright 2026 Symgraph Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Command symgraph builds a sample expression-graph function and inspects
// it: tape listing, evaluation, and first derivatives.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/symgraph/symgraph/expr"
	"github.com/symgraph/symgraph/function"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "symgraph",
		Short:         "Symbolic expression graphs with tape-based evaluation and AD",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	cobra.CheckErr(viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose")))

	root.AddCommand(newVersionCmd(), newTraceCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("symgraph %s\n", version)
		},
	}
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Build the demo function, print its tape and evaluate it",
		Long: `Builds y1 = a*b + sin(a), y2 = a*b over scalar inputs a and b
(the product is a shared subexpression), prints the linearized tape,
then evaluates the primal, one forward direction seeded on a, and one
adjoint direction seeded on y1.`,
		RunE: runTrace,
	}
	cmd.Flags().Float64("a", 3, "value of input a")
	cmd.Flags().Float64("b", 4, "value of input b")
	cobra.CheckErr(viper.BindPFlag("a", cmd.Flags().Lookup("a")))
	cobra.CheckErr(viper.BindPFlag("b", cmd.Flags().Lookup("b")))
	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	a := expr.SymScalar("a")
	b := expr.SymScalar("b")
	ab := expr.Mul(a, b)
	y1 := expr.Add(ab, expr.Sin(a))
	y2 := ab

	f, err := function.New([]*expr.Node{a, b}, []*expr.Node{y1, y2})
	if err != nil {
		return err
	}
	if viper.GetBool("verbose") {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		f.SetLogger(log)
	}
	f.SetNumDirections(1, 1)
	f.Init()

	fmt.Println("tape:")
	f.Print(cmd.OutOrStdout())

	f.Input(0).Fill(viper.GetFloat64("a"))
	f.Input(1).Fill(viper.GetFloat64("b"))
	f.FwdSeed(0, 0).Fill(1) // d/da
	f.FwdSeed(1, 0).Fill(0)
	f.AdjSeed(0, 0).Fill(1) // seed y1
	f.AdjSeed(1, 0).Fill(0)
	f.Evaluate(1, 1)

	fmt.Printf("\ny1 = %s, y2 = %s\n", f.Output(0), f.Output(1))
	fmt.Printf("dy1/da = %s, dy2/da = %s (forward)\n", f.FwdSens(0, 0), f.FwdSens(1, 0))
	fmt.Printf("dy1/da = %s, dy1/db = %s (adjoint)\n", f.AdjSens(0, 0), f.AdjSens(1, 0))
	return nil
}
