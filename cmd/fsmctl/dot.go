package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dot <table.yaml>",
		Short: "Export the transition table as a Graphviz DOT graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(args[0], cmd.OutOrStdout())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), table.ToDOT())

			return nil
		},
	}
}
