package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaswanth-142004/EZ-Search/internal/dsa"
	"github.com/yaswanth-142004/EZ-Search/internal/observability"
)

var dsaCmd = &cobra.Command{
	Use:   "dsa <company>",
	Short: "Look up the DSA questions recorded for a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runDSA,
}

var (
	dsaPath  string
	dsaTable bool
)

func init() {
	rootCmd.AddCommand(dsaCmd)

	dsaCmd.Flags().StringVar(&dsaPath, "dsa-path", "", "Path to the DSA question table (defaults to DSA_PATH or dsa.json)")
	dsaCmd.Flags().BoolVar(&dsaTable, "table", false, "Print a readable table instead of JSON")
}

func runDSA(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dsa-path") {
		cfg.DSAPath = dsaPath
	}

	table, err := dsa.Load(cfg.DSAPath)
	if err != nil {
		return err
	}

	result, err := table.Lookup(args[0])
	if err != nil {
		return err
	}

	if dsaTable {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		for company, questions := range result {
			printer.PrintDSAQuestions(company, questions)
		}
		return nil
	}
	if err := observability.WriteJSON(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
