package fsm

import "github.com/enetx/g"

// NoneGuard is the guard every machine starts with and the guard of any
// transition declared without one. It is part of every table's guard universe.
const NoneGuard Guard = "none"

type (
	// State represents a finite state in the FSM.
	State g.String
	// Event represents an event that triggers a transition.
	Event g.String
	// Guard is an atomic guard value. A machine holds exactly one current guard.
	Guard g.String

	// Action is executed when a transition fires or when a state's behaviour is run.
	// It receives the argument list given to RaiseEvent or RunStateAction.
	// A nil Action means "no action".
	Action func(args ...any)

	// Transition is one row of a transition table.
	Transition struct {
		Source State
		Event  Event
		Target State
		Action Action
		Guard  GuardExpr
	}

	// TransitionOption configures a transition declared through TableBuilder.Transition.
	TransitionOption func(*Transition)

	// Option configures a Machine.
	Option func(*Machine)
)

// Tr builds a Transition record. It mirrors the column order of a transition table:
// source, event, target, action, guard.
func Tr(source State, event Event, target State, action Action, guard GuardExpr) Transition {
	return Transition{Source: source, Event: event, Target: target, Action: action, Guard: guard}
}

// WithAction sets the action invoked when the transition fires.
func WithAction(action Action) TransitionOption {
	return func(t *Transition) { t.Action = action }
}

// WithGuard sets the guard expression of the transition.
func WithGuard(guard GuardExpr) TransitionOption {
	return func(t *Transition) { t.Guard = guard }
}

// WithLogger sets the logger hook notified by the machine.
// A nil logger leaves the no-op default in place.
func WithLogger(logger Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}
