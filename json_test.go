package fsm_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/enetx/tablefsm"
)

func snapshotTable() *Table {
	return NewTable().
		Transition("a", "next", "b", WithGuard(AnyOf("x", "y"))).
		Transition("b", "next", "c").
		MustBuild()
}

func TestMachine_Serialization(t *testing.T) {
	table := snapshotTable()

	m := NewMachine(table)
	assertNoError(t, m.SelectGuard("x"))
	m.RaiseEvent("next")

	data, err := json.Marshal(m)
	assertNoError(t, err)
	assertEqual(t, string(data), `{"current":"b","guard":"x"}`)

	restored, err := Restore(table, data)
	assertNoError(t, err)
	assertEqual(t, restored.Current(), State("b"))
	assertEqual(t, restored.Guard(), Guard("x"))

	// The original machine is unaffected by the restored copy.
	assertNoError(t, restored.SelectGuard(NoneGuard))
	restored.RaiseEvent("next")
	assertEqual(t, restored.Current(), State("c"))
	assertEqual(t, m.Current(), State("b"))
}

func TestRestore_DefaultsGuard(t *testing.T) {
	m, err := Restore(snapshotTable(), []byte(`{"current": "b"}`))
	assertNoError(t, err)
	assertEqual(t, m.Guard(), NoneGuard)
}

func TestRestore_UnknownState(t *testing.T) {
	_, err := Restore(snapshotTable(), []byte(`{"current": "unknown_state"}`))
	assertError(t, err)
	assertTrue(t, strings.Contains(err.Error(), "unknown state"))

	var unknown *ErrUnknownState
	assertTrue(t, errors.As(err, &unknown))
}

func TestRestore_UnknownGuard(t *testing.T) {
	_, err := Restore(snapshotTable(), []byte(`{"current": "a", "guard": "z"}`))

	var unknown *ErrUnknownGuard
	assertTrue(t, errors.As(err, &unknown))
	assertEqual(t, unknown.Guard, Guard("z"))
}

func TestRestore_InvalidJSON(t *testing.T) {
	_, err := Restore(snapshotTable(), []byte(`{`))
	assertError(t, err)
	assertTrue(t, strings.Contains(err.Error(), "failed to unmarshal"))
}
