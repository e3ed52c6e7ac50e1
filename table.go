package fsm

import "github.com/enetx/g"

// Table is a validated, immutable transition table.
// A Table can be shared read-only by any number of machines.
type Table struct {
	transitions g.Slice[Transition]
	bySource    g.Map[State, g.Slice[Transition]]
	stateAction g.Map[State, Action]

	states g.Slice[State]
	events g.Slice[Event]
	guards g.Slice[Guard]

	stateSet g.Set[State]
	eventSet g.Set[Event]
	guardSet g.Set[Guard]
}

// TableBuilder collects transitions and state actions before building a Table.
type TableBuilder struct {
	transitions g.Slice[Transition]
	stateAction g.Map[State, Action]
}

// route groups transitions by source and event for duplicate detection.
type route struct {
	source State
	event  Event
}

// NewTable starts a new transition table definition.
func NewTable() *TableBuilder {
	return &TableBuilder{
		transitions: g.NewSlice[Transition](),
		stateAction: g.NewMap[State, Action](),
	}
}

// Transition adds a transition from -> event -> to. Without options the
// transition has no action and is guarded by NoneGuard.
func (b *TableBuilder) Transition(from State, event Event, to State, opts ...TransitionOption) *TableBuilder {
	t := Transition{Source: from, Event: event, Target: to}
	for _, opt := range opts {
		opt(&t)
	}

	b.transitions.Push(t)

	return b
}

// Add appends already constructed transitions, keeping their order.
func (b *TableBuilder) Add(transitions ...Transition) *TableBuilder {
	b.transitions.Push(transitions...)
	return b
}

// StateAction attaches a behaviour to a state, run by Machine.RunStateAction
// while the machine is in that state. A later call for the same state replaces
// the earlier one.
func (b *TableBuilder) StateAction(state State, action Action) *TableBuilder {
	b.stateAction[state] = action
	return b
}

// Build validates the definition and returns the immutable table.
// A state action attached to a state that no transition mentions is rejected
// with *ErrUnknownState.
func (b *TableBuilder) Build() (*Table, error) {
	t, err := BuildTable(b.transitions...)
	if err != nil {
		return nil, err
	}

	for state, action := range b.stateAction {
		if !t.HasState(state) {
			return nil, &ErrUnknownState{State: state}
		}

		if action != nil {
			t.stateAction[state] = action
		}
	}

	return t, nil
}

// MustBuild is like Build but panics if the definition is invalid.
// It is meant for tables declared as package-level variables.
func (b *TableBuilder) MustBuild() *Table {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}

	return t
}

// BuildTable validates transitions and returns the immutable table.
//
// Transitions are kept in declaration order, which decides dispatch when the
// guards of several rows match the same guard value. The initial state of
// every machine built on the table is the source of the first transition.
//
// It returns ErrEmptyTable if there are no transitions and
// *ErrDuplicateTransition if two rows share source, event and a
// structurally identical guard.
func BuildTable(transitions ...Transition) (*Table, error) {
	if len(transitions) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		transitions: g.NewSlice[Transition](),
		bySource:    g.NewMap[State, g.Slice[Transition]](),
		stateAction: g.NewMap[State, Action](),
		states:      g.NewSlice[State](),
		events:      g.NewSlice[Event](),
		guards:      g.NewSlice[Guard](),
		stateSet:    g.NewSet[State](),
		eventSet:    g.NewSet[Event](),
		guardSet:    g.NewSet[Guard](),
	}

	seen := g.NewMap[route, g.Slice[GuardExpr]]()

	for _, tr := range transitions {
		key := route{source: tr.Source, event: tr.Event}

		for _, guard := range seen[key] {
			if guard.Equal(tr.Guard) {
				return nil, &ErrDuplicateTransition{Source: tr.Source, Event: tr.Event, Guard: tr.Guard}
			}
		}

		seen.Entry(key).
			AndModify(func(s *g.Slice[GuardExpr]) { s.Push(tr.Guard) }).
			OrInsert(g.SliceOf(tr.Guard))

		t.transitions.Push(tr)
		t.bySource.Entry(tr.Source).
			AndModify(func(s *g.Slice[Transition]) { s.Push(tr) }).
			OrInsert(g.SliceOf(tr))

		t.addState(tr.Source)
		t.addState(tr.Target)

		if !t.eventSet.Contains(tr.Event) {
			t.eventSet.Insert(tr.Event)
			t.events.Push(tr.Event)
		}

		for _, gd := range tr.Guard.members() {
			t.addGuard(gd)
		}
	}

	t.addGuard(NoneGuard)

	return t, nil
}

func (t *Table) addState(s State) {
	if !t.stateSet.Contains(s) {
		t.stateSet.Insert(s)
		t.states.Push(s)
	}
}

func (t *Table) addGuard(gd Guard) {
	if !t.guardSet.Contains(gd) {
		t.guardSet.Insert(gd)
		t.guards.Push(gd)
	}
}

// Initial returns the source state of the first declared transition.
func (t *Table) Initial() State { return t.transitions[0].Source }

// Transitions returns a copy of the transitions in declaration order.
func (t *Table) Transitions() g.Slice[Transition] { return t.transitions.Clone() }

// States returns every source and target state, in first-seen order.
func (t *Table) States() g.Slice[State] { return t.states.Clone() }

// Events returns every event, in first-seen order.
func (t *Table) Events() g.Slice[Event] { return t.events.Clone() }

// Guards returns the atomic guard universe: every guard used directly or inside
// a combinator, plus NoneGuard.
func (t *Table) Guards() g.Slice[Guard] { return t.guards.Clone() }

// HasState reports whether s is a source or target of some transition.
func (t *Table) HasState(s State) bool { return t.stateSet.Contains(s) }

// HasEvent reports whether e triggers some transition.
func (t *Table) HasEvent(e Event) bool { return t.eventSet.Contains(e) }

// HasGuard reports whether gd belongs to the guard universe.
func (t *Table) HasGuard(gd Guard) bool { return t.guardSet.Contains(gd) }

// StateAction returns the behaviour attached to state, if any.
func (t *Table) StateAction(state State) (Action, bool) {
	action, ok := t.stateAction[state]
	return action, ok
}

// candidates returns the transitions leaving state, in declaration order.
func (t *Table) candidates(state State) g.Slice[Transition] {
	return t.bySource[state]
}

// lookup returns the first transition from state on event whose guard matches current.
func (t *Table) lookup(state State, event Event, current Guard) (Transition, bool) {
	for _, tr := range t.candidates(state) {
		if tr.Event == event && tr.Guard.Match(current) {
			return tr, true
		}
	}

	return Transition{}, false
}
