package fsm

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned when a transition table is built without transitions.
// A machine needs at least one transition to know its initial state.
var ErrEmptyTable = errors.New("fsm: transition table has no transitions")

// ErrDuplicateTransition is returned by BuildTable when two transitions share the
// same source state, event and structurally identical guard expression.
// Guards that only overlap (for example any_of(a, b) and any_of(b, c)) are not
// duplicates; such rows are resolved by declaration order at dispatch time.
type ErrDuplicateTransition struct {
	Source State
	Event  Event
	Guard  GuardExpr
}

func (e *ErrDuplicateTransition) Error() string {
	return fmt.Sprintf("fsm: duplicate transition from state %q on event %q with guard %s",
		e.Source, e.Event, e.Guard)
}

// ErrUnknownGuard is returned when selecting or restoring a guard that is not part
// of the table's guard universe. The machine is left unchanged.
type ErrUnknownGuard struct {
	Guard Guard
}

func (e *ErrUnknownGuard) Error() string {
	return fmt.Sprintf("fsm: unknown guard %q", e.Guard)
}

// ErrUnknownState is returned when a state action or a restored snapshot names
// a state that no transition of the table mentions. This prevents a machine
// from starting in an invalid, undeclared state.
type ErrUnknownState struct {
	State State
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("fsm: unknown state %q", e.State)
}

// ErrUnknownAction is returned when a table document names an action that the
// ActionResolver does not know.
type ErrUnknownAction struct {
	Name string
}

func (e *ErrUnknownAction) Error() string {
	return fmt.Sprintf("fsm: unknown action %q", e.Name)
}
