package fsm

import (
	"sync"

	"github.com/enetx/g"
)

// SyncMachine is a thread-safe wrapper around a Machine.
// It serializes every operation with a sync.RWMutex so one machine can be
// driven from several goroutines. The wrapped Machine itself never locks.
type SyncMachine struct {
	m  *Machine
	mu sync.RWMutex
}

// NewSyncMachine creates a Machine on table and wraps it.
func NewSyncMachine(table *Table, opts ...Option) *SyncMachine {
	return &SyncMachine{m: NewMachine(table, opts...)}
}

// Synchronized wraps an existing machine. The caller must stop using m directly.
func Synchronized(m *Machine) *SyncMachine {
	return &SyncMachine{m: m}
}

// RaiseEvent is the thread-safe version of Machine.RaiseEvent.
// The action of the fired transition runs while the lock is held.
func (sm *SyncMachine) RaiseEvent(event Event, args ...any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.RaiseEvent(event, args...)
}

// SelectGuard is the thread-safe version of Machine.SelectGuard.
func (sm *SyncMachine) SelectGuard(guard Guard) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.SelectGuard(guard)
}

// RunStateAction is the thread-safe version of Machine.RunStateAction.
func (sm *SyncMachine) RunStateAction(args ...any) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.RunStateAction(args...)
}

// CanRaise is the thread-safe version of Machine.CanRaise.
func (sm *SyncMachine) CanRaise(event Event) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.CanRaise(event)
}

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// Guard is the thread-safe version of Machine.Guard.
func (sm *SyncMachine) Guard() Guard {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Guard()
}

// Table returns the transition table. Tables are immutable, so no lock is taken.
func (sm *SyncMachine) Table() *Table { return sm.m.Table() }

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's state to JSON.
func (sm *SyncMachine) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.MarshalJSON()
}
