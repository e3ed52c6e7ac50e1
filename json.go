package fsm

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a serializable representation of a machine's state.
type Snapshot struct {
	Current State `json:"current"`
	Guard   Guard `json:"guard"`
}

// Snapshot returns the machine's current state and guard.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Current: m.current, Guard: m.guard}
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}

// Restore creates a new machine on table from JSON produced by MarshalJSON.
// It returns *ErrUnknownState or *ErrUnknownGuard if the snapshot names a state
// or guard the table does not declare. An empty guard means NoneGuard.
func Restore(table *Table, data []byte, opts ...Option) (*Machine, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fsm snapshot: %w", err)
	}

	if snap.Guard == "" {
		snap.Guard = NoneGuard
	}

	if !table.HasState(snap.Current) {
		return nil, &ErrUnknownState{State: snap.Current}
	}

	if !table.HasGuard(snap.Guard) {
		return nil, &ErrUnknownGuard{Guard: snap.Guard}
	}

	m := NewMachine(table, opts...)
	m.current = snap.Current
	m.guard = snap.Guard

	return m, nil
}
