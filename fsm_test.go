package fsm_test

import (
	"errors"
	"testing"

	. "github.com/enetx/tablefsm"
)

func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func assertTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Fatalf("expected true, got false")
	}
}

func assertFalse(t *testing.T, cond bool) {
	t.Helper()
	if cond {
		t.Fatalf("expected false, got true")
	}
}

// recorder collects the names of invoked actions in call order.
type recorder struct {
	calls []string
}

func (r *recorder) action(name string) Action {
	return func(...any) { r.calls = append(r.calls, name) }
}

func TestMachine_BasicTransition(t *testing.T) {
	table, err := BuildTable(
		Tr("A", "ev1", "B", nil, GuardExpr{}),
		Tr("A", "ev2", "C", nil, GuardExpr{}),
	)
	assertNoError(t, err)

	m := NewMachine(table)
	assertEqual(t, m.Current(), State("A"))
	assertEqual(t, m.Guard(), NoneGuard)

	m.RaiseEvent("ev1")
	assertEqual(t, m.Current(), State("B"))
}

func TestMachine_GuardMismatchIsNoop(t *testing.T) {
	flag := ""
	table := NewTable().
		Transition("A", "ev", "B", WithAction(func(...any) { flag = "B" }), WithGuard(When("guardA"))).
		Transition("B", "ev", "A", WithAction(func(...any) { flag = "A" }), WithGuard(When("guardB"))).
		MustBuild()

	m := NewMachine(table)

	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("A"))
	assertEqual(t, flag, "")

	assertNoError(t, m.SelectGuard("guardA"))
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("B"))
	assertEqual(t, flag, "B")

	// guardA is still selected, so the way back is closed.
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("B"))

	assertNoError(t, m.SelectGuard("guardB"))
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("A"))
	assertEqual(t, flag, "A")
}

func TestMachine_AnyOfChain(t *testing.T) {
	table := NewTable().
		Transition("A", "ev", "B", WithGuard(AnyOf("guardB", "guardD"))).
		Transition("B", "ev", "C", WithGuard(AnyOf("guardA", "guardC"))).
		MustBuild()

	m := NewMachine(table)

	assertNoError(t, m.SelectGuard("guardA"))
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("A"))

	assertNoError(t, m.SelectGuard("guardB"))
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("B"))

	assertNoError(t, m.SelectGuard("guardC"))
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("C"))
}

func TestMachine_NoneOfMatchesNoneGuard(t *testing.T) {
	table := NewTable().
		Transition("A", "ev", "B", WithGuard(NoneOf("guardC", "guardD"))).
		MustBuild()

	m := NewMachine(table)
	m.RaiseEvent("ev")
	assertEqual(t, m.Current(), State("B"))
}

func TestMachine_NoneOfBranches(t *testing.T) {
	table := NewTable().
		Transition("A", "ev", "B", WithGuard(NoneOf(NoneGuard, "guardA", "guardB"))).
		Transition("A", "ev", "C", WithGuard(NoneOf("guardC", "guardD"))).
		MustBuild()

	cases := []struct {
		guard Guard
		want  State
	}{
		{NoneGuard, "C"},
		{"guardA", "C"},
		{"guardB", "C"},
		{"guardC", "B"},
		{"guardD", "B"},
	}

	for _, tc := range cases {
		t.Run(string(tc.guard), func(t *testing.T) {
			m := NewMachine(table)
			assertNoError(t, m.SelectGuard(tc.guard))
			m.RaiseEvent("ev")
			assertEqual(t, m.Current(), tc.want)
		})
	}
}

func TestMachine_OverlappingGuardsFirstDeclaredWins(t *testing.T) {
	rec := &recorder{}
	table := NewTable().
		Transition("A", "ev", "B", WithAction(rec.action("first")), WithGuard(AnyOf("a", "b"))).
		Transition("A", "ev", "C", WithAction(rec.action("second")), WithGuard(AnyOf("b", "c"))).
		MustBuild()

	m := NewMachine(table)
	assertNoError(t, m.SelectGuard("b"))
	m.RaiseEvent("ev")

	assertEqual(t, m.Current(), State("B"))
	assertEqual(t, len(rec.calls), 1)
	assertEqual(t, rec.calls[0], "first")

	m2 := NewMachine(table)
	assertNoError(t, m2.SelectGuard("c"))
	m2.RaiseEvent("ev")
	assertEqual(t, m2.Current(), State("C"))
}

func TestMachine_UnmatchedEventLeavesMachineUntouched(t *testing.T) {
	rec := &recorder{}
	table := NewTable().
		Transition("A", "go", "B", WithAction(rec.action("go"))).
		MustBuild()

	m := NewMachine(table)
	assertNoError(t, m.SelectGuard(NoneGuard))

	m.RaiseEvent("unknown")
	m.RaiseEvent("go", 1, 2)
	m.RaiseEvent("go")

	assertEqual(t, m.Current(), State("B"))
	assertEqual(t, m.Guard(), NoneGuard)
	assertEqual(t, len(rec.calls), 1)
}

func TestMachine_ActionReceivesArguments(t *testing.T) {
	var got []any
	table := NewTable().
		Transition("A", "go", "B", WithAction(func(args ...any) { got = args })).
		MustBuild()

	m := NewMachine(table)
	m.RaiseEvent("go", "x", 42)

	assertEqual(t, len(got), 2)
	assertEqual(t, got[0].(string), "x")
	assertEqual(t, got[1].(int), 42)
}

func TestMachine_ActionSeesTargetState(t *testing.T) {
	var m *Machine
	var during State

	table := NewTable().
		Transition("A", "go", "B", WithAction(func(...any) { during = m.Current() })).
		MustBuild()

	m = NewMachine(table)
	m.RaiseEvent("go")

	assertEqual(t, during, State("B"))
}

func TestMachine_IncompatibleActionIsSkipped(t *testing.T) {
	calls := 0
	table := NewTable().
		Transition("A", "go", "B", WithAction(Invoke(func(n int) { calls += n }))).
		Transition("B", "go", "C", WithAction(Invoke(func(n int) { calls += n }))).
		MustBuild()

	m := NewMachine(table)

	m.RaiseEvent("go", "not an int")
	assertEqual(t, m.Current(), State("B"))
	assertEqual(t, calls, 0)

	m.RaiseEvent("go", 5)
	assertEqual(t, m.Current(), State("C"))
	assertEqual(t, calls, 5)
}

func TestMachine_SelectGuardUnknown(t *testing.T) {
	table := NewTable().
		Transition("A", "go", "B", WithGuard(AnyOf("a", "b"))).
		MustBuild()

	m := NewMachine(table)
	assertNoError(t, m.SelectGuard("a"))

	err := m.SelectGuard("z")
	assertError(t, err)

	var unknown *ErrUnknownGuard
	assertTrue(t, errors.As(err, &unknown))
	assertEqual(t, unknown.Guard, Guard("z"))
	assertEqual(t, m.Guard(), Guard("a"))
}

func TestMachine_RunStateAction(t *testing.T) {
	var seen []State
	var last []any

	table := NewTable().
		Transition("A", "go", "B").
		Transition("B", "go", "C").
		StateAction("A", func(args ...any) { seen = append(seen, "A"); last = args }).
		StateAction("B", func(args ...any) { seen = append(seen, "B"); last = args }).
		MustBuild()

	m := NewMachine(table)

	m.RunStateAction("ctx")
	m.RunStateAction("ctx")
	m.RaiseEvent("go")
	m.RunStateAction()
	m.RaiseEvent("go")
	m.RunStateAction("ignored")

	assertEqual(t, len(seen), 3)
	assertEqual(t, seen[0], State("A"))
	assertEqual(t, seen[1], State("A"))
	assertEqual(t, seen[2], State("B"))
	assertEqual(t, len(last), 0)
	assertEqual(t, m.Current(), State("C"))
}

func TestMachine_CanRaise(t *testing.T) {
	table := NewTable().
		Transition("A", "go", "B", WithGuard(When("ready"))).
		MustBuild()

	m := NewMachine(table)
	assertFalse(t, m.CanRaise("go"))
	assertFalse(t, m.CanRaise("other"))

	assertNoError(t, m.SelectGuard("ready"))
	assertTrue(t, m.CanRaise("go"))
	assertEqual(t, m.Current(), State("A"))
}

func TestMachine_Determinism(t *testing.T) {
	type step struct {
		guard Guard
		event Event
	}

	steps := []step{
		{"", "start"},
		{"user", "start"},
		{"", "pause"},
		{"", "stop"},
		{"banned", "resume"},
		{NoneGuard, "resume"},
		{"admin", "pause"},
		{"", "start"},
		{"", "stop"},
	}

	drive := func() (*Machine, []string, []string) {
		rec := &recorder{}
		table := NewTable().
			Transition("idle", "start", "running", WithGuard(AnyOf("user", "admin")), WithAction(rec.action("start"))).
			Transition("running", "pause", "paused", WithAction(rec.action("pause"))).
			Transition("running", "pause", "idle", WithGuard(When("admin")), WithAction(rec.action("pause-admin"))).
			Transition("paused", "resume", "running", WithGuard(NoneOf("banned")), WithAction(rec.action("resume"))).
			Transition("running", "stop", "idle", WithGuard(NoneOf("user")), WithAction(rec.action("stop"))).
			MustBuild()

		m := NewMachine(table, WithLogger(NoopLogger{}))

		var trace []string

		for _, s := range steps {
			if s.guard != "" {
				assertNoError(t, m.SelectGuard(s.guard))
			}

			before := m.Current()
			m.RaiseEvent(s.event)
			trace = append(trace, string(before)+"->"+string(m.Current()))
		}

		return m, trace, rec.calls
	}

	m1, trace1, calls1 := drive()
	m2, trace2, calls2 := drive()

	assertEqual(t, m1.Current(), m2.Current())
	assertEqual(t, m1.Guard(), m2.Guard())
	assertEqual(t, len(trace1), len(trace2))

	for i := range trace1 {
		assertEqual(t, trace1[i], trace2[i])
	}

	want := []string{"start", "pause-admin", "start", "stop"}

	assertEqual(t, len(calls1), len(want))
	assertEqual(t, len(calls2), len(want))

	for i := range want {
		assertEqual(t, calls1[i], want[i])
		assertEqual(t, calls2[i], want[i])
	}

	assertEqual(t, m1.Current(), State("idle"))
	assertEqual(t, m1.Guard(), Guard("admin"))
}

func TestMachine_SharedTable(t *testing.T) {
	table := NewTable().
		Transition("a", "next", "b").
		MustBuild()

	m1 := NewMachine(table)
	m2 := NewMachine(table)

	m1.RaiseEvent("next")

	assertEqual(t, m1.Current(), State("b"))
	assertEqual(t, m2.Current(), State("a"))
	assertTrue(t, m1.Table() == m2.Table())
}
