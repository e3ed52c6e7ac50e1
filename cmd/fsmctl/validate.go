package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <table.yaml>",
		Short: "Check a transition table and list its states, events and guards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			table, err := loadTable(args[0], out)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "initial: %s\n", table.Initial())
			fmt.Fprintf(out, "states: %s\n", joinNames(table.States()))
			fmt.Fprintf(out, "events: %s\n", joinNames(table.Events()))
			fmt.Fprintf(out, "guards: %s\n", joinNames(table.Guards()))
			fmt.Fprintf(out, "transitions: %d\n", len(table.Transitions()))

			return nil
		},
	}
}
