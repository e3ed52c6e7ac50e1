package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	fsm "github.com/enetx/tablefsm"
	"github.com/enetx/tablefsm/fsmzap"
)

const (
	guardStepPrefix = "guard="
	stateActionStep = "@state"
)

func newRunCmd() *cobra.Command {
	var logMode string

	cmd := &cobra.Command{
		Use:   "run <table.yaml> [steps...]",
		Short: "Replay steps against a new machine",
		Long: `Replay steps against a new machine and print its final state and guard.

A step "guard=<name>" selects a guard, "@state" runs the current state's action
and any other step raises the event of that name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			table, err := loadTable(args[0], out)
			if err != nil {
				return err
			}

			logger, sync, err := newLogger(logMode, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sync()

			m := fsm.NewMachine(table, fsm.WithLogger(logger))

			if err := replay(m, args[1:]); err != nil {
				return err
			}

			fmt.Fprintf(out, "state: %s\n", m.Current())
			fmt.Fprintf(out, "guard: %s\n", m.Guard())

			return nil
		},
	}

	cmd.Flags().StringVar(&logMode, "log", "none", "machine log output: none, text or zap")

	return cmd
}

func replay(m *fsm.Machine, steps []string) error {
	for _, step := range steps {
		switch {
		case strings.HasPrefix(step, guardStepPrefix):
			if err := m.SelectGuard(fsm.Guard(strings.TrimPrefix(step, guardStepPrefix))); err != nil {
				return err
			}
		case step == stateActionStep:
			m.RunStateAction()
		default:
			m.RaiseEvent(fsm.Event(step))
		}
	}

	return nil
}

func newLogger(mode string, errOut io.Writer) (fsm.Logger, func(), error) {
	switch mode {
	case "", "none":
		return fsm.NoopLogger{}, func() {}, nil
	case "text":
		return fsm.NewWriterLogger(errOut), func() {}, nil
	case "zap":
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(errOut),
			zapcore.DebugLevel,
		)
		logger := zap.New(core, zap.Development())

		return fsmzap.New(logger), func() { _ = logger.Sync() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log mode %q", mode)
	}
}
