package main

import (
	"fmt"
	"io"
	"os"

	"github.com/enetx/g"
	"github.com/spf13/cobra"

	fsm "github.com/enetx/tablefsm"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fsmctl",
		Short:        "Inspect and drive transition tables",
		Long:         `fsmctl loads a YAML transition table, validates it, renders it as a Graphviz graph or replays a sequence of events against a fresh machine.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newValidateCmd(), newDotCmd(), newRunCmd())

	return cmd
}

// loadTable reads and builds the table at path. Every action named in the
// document is bound to a tracing action printing its name and arguments to out.
func loadTable(path string, out io.Writer) (*fsm.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}

	table, err := fsm.ParseTable(data, fsm.ActionResolverFunc(func(name string) (fsm.Action, bool) {
		return traceAction(out, name), true
	}))
	if err != nil {
		return nil, fmt.Errorf("invalid table %s: %w", path, err)
	}

	return table, nil
}

func traceAction(out io.Writer, name string) fsm.Action {
	return func(args ...any) {
		if len(args) == 0 {
			fmt.Fprintf(out, "action %s\n", name)
			return
		}

		fmt.Fprintf(out, "action %s %v\n", name, args)
	}
}

func joinNames[T ~string](items g.Slice[T]) g.String {
	names := g.NewSlice[g.String]()
	for _, item := range items {
		names.Push(g.String(item))
	}

	return names.Join(", ")
}
