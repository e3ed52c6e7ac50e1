package fsm

import "github.com/enetx/g"

// StateMachine is implemented by Machine and SyncMachine.
type StateMachine interface {
	RaiseEvent(Event, ...any)
	SelectGuard(Guard) error
	RunStateAction(...any)
	CanRaise(Event) bool
	Current() State
	Guard() Guard
	Table() *Table
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
}

// Interface compliance checks.
var (
	_ StateMachine = (*Machine)(nil)
	_ StateMachine = (*SyncMachine)(nil)
)
