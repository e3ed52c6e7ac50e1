// Package fsm provides a table-driven finite state machine with guard
// selectors. Transitions are declared once in an immutable, validated Table;
// a Machine holds the current state and the current guard and dispatches
// events against the table. It is built with types and utilities from the
// github.com/enetx/g library.
//
// A Machine is not safe for concurrent use. Calls to RaiseEvent, SelectGuard and
// RunStateAction on one machine must be serialized by the caller, or the
// machine wrapped in a SyncMachine. Tables are read-only and may be shared freely.
package fsm

import "github.com/enetx/g"

// Machine is the state machine. It owns the current state and the current
// guard; both change only through RaiseEvent and SelectGuard.
type Machine struct {
	table   *Table
	current State
	guard   Guard
	logger  Logger
}

// NewMachine creates a machine on table, starting in table.Initial() with NoneGuard selected.
func NewMachine(table *Table, opts ...Option) *Machine {
	m := &Machine{
		table:   table,
		current: table.Initial(),
		guard:   NoneGuard,
		logger:  NoopLogger{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Table returns the machine's transition table.
func (m *Machine) Table() *Table { return m.table }

// Current returns the machine's current state.
func (m *Machine) Current() State { return m.current }

// Guard returns the currently selected guard.
func (m *Machine) Guard() Guard { return m.guard }

// RaiseEvent dispatches event.
//
// The first transition, in declaration order, leaving the current state on
// event whose guard matches the current guard is taken: the machine moves to
// its target and then runs its action, if any, with args. When no transition
// matches, nothing happens.
func (m *Machine) RaiseEvent(event Event, args ...any) {
	m.logger.WriteSubject(MsgNewEvent, g.String(event))

	t, ok := m.table.lookup(m.current, event, m.guard)
	if !ok {
		return
	}

	m.logger.WriteSubject(MsgChangeState, g.String(t.Target))
	m.current = t.Target

	m.invoke(t.Action, args)
}

// CanRaise reports whether RaiseEvent(event) would take a transition now.
func (m *Machine) CanRaise(event Event) bool {
	_, ok := m.table.lookup(m.current, event, m.guard)
	return ok
}

// SelectGuard makes guard the current guard. It returns *ErrUnknownGuard and
// leaves the machine unchanged if guard is not in the table's guard universe.
func (m *Machine) SelectGuard(guard Guard) error {
	if !m.table.HasGuard(guard) {
		return &ErrUnknownGuard{Guard: guard}
	}

	m.logger.WriteSubject(MsgNewGuard, g.String(guard))
	m.guard = guard

	return nil
}

// RunStateAction runs the behaviour attached to the current state, if any,
// with args. The attempt is logged either way.
func (m *Machine) RunStateAction(args ...any) {
	m.logger.WriteSubject(MsgAttemptStateCall, g.String(m.current))

	if action, ok := m.table.StateAction(m.current); ok {
		m.invoke(action, args)
	}
}

// invoke hands args to a non-nil action. MsgCallAction marks that hand-off:
// an action bound with Invoke may still decline arguments that do not fit it.
func (m *Machine) invoke(action Action, args []any) {
	if action == nil {
		return
	}

	m.logger.Write(MsgCallAction)
	action(args...)
}
