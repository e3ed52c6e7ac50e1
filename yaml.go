package fsm

import (
	"fmt"

	"github.com/enetx/g"
	"gopkg.in/yaml.v3"
)

// ActionResolver maps action names used in a table document to actions.
type ActionResolver interface {
	ResolveAction(name string) (Action, bool)
}

// Actions is an ActionResolver backed by a map.
type Actions map[string]Action

// ResolveAction implements ActionResolver.
func (a Actions) ResolveAction(name string) (Action, bool) {
	action, ok := a[name]
	return action, ok
}

// ActionResolverFunc adapts a function to an ActionResolver.
type ActionResolverFunc func(name string) (Action, bool)

// ResolveAction implements ActionResolver.
func (f ActionResolverFunc) ResolveAction(name string) (Action, bool) { return f(name) }

// tableDoc is the YAML form of a transition table.
type tableDoc struct {
	Transitions []transitionDoc     `yaml:"transitions"`
	States      map[string]stateDoc `yaml:"states"`
}

type transitionDoc struct {
	From   string   `yaml:"from"`
	Event  string   `yaml:"event"`
	To     string   `yaml:"to"`
	Action string   `yaml:"action"`
	Guard  guardDoc `yaml:"guard"`
}

// UnmarshalYAML rejects rows that leave out from, event or to.
func (d *transitionDoc) UnmarshalYAML(value *yaml.Node) error {
	type plain transitionDoc

	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}

	missing := g.NewSlice[g.String]()

	if d.From == "" {
		missing.Push("from")
	}

	if d.Event == "" {
		missing.Push("event")
	}

	if d.To == "" {
		missing.Push("to")
	}

	if !missing.Empty() {
		return fmt.Errorf("line %d: transition is missing %s", value.Line, missing.Join(", "))
	}

	return nil
}

type stateDoc struct {
	Action string `yaml:"action"`
}

// guardDoc accepts either a scalar guard name or a mapping with exactly one of
// any_of / none_of.
type guardDoc struct {
	expr GuardExpr
}

func (d *guardDoc) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}

		if name != "" {
			d.expr = When(Guard(name))
		}

		return nil
	}

	var combinator struct {
		AnyOf  []string `yaml:"any_of"`
		NoneOf []string `yaml:"none_of"`
	}

	if err := value.Decode(&combinator); err != nil {
		return err
	}

	switch {
	case len(combinator.AnyOf) > 0 && len(combinator.NoneOf) > 0:
		return fmt.Errorf("line %d: guard must use either any_of or none_of, not both", value.Line)
	case len(combinator.AnyOf) > 0:
		guards := toGuards(combinator.AnyOf)
		d.expr = AnyOf(guards[0], guards[1:]...)
	case len(combinator.NoneOf) > 0:
		guards := toGuards(combinator.NoneOf)
		d.expr = NoneOf(guards[0], guards[1:]...)
	default:
		return fmt.Errorf("line %d: guard combinator needs a non-empty any_of or none_of list", value.Line)
	}

	return nil
}

func toGuards(names []string) g.Slice[Guard] {
	guards := g.NewSlice[Guard]()
	for _, name := range names {
		guards.Push(Guard(name))
	}

	return guards
}

// ParseTable builds a table from a YAML document:
//
//	transitions:
//	  - {from: idle, event: start, to: running, action: boot}
//	  - {from: running, event: stop, to: idle, guard: {any_of: [user, admin]}}
//	states:
//	  running: {action: tick}
//
// Action names are looked up in actions; a nil resolver only accepts
// documents without actions. The transitions are validated by BuildTable.
func ParseTable(data []byte, actions ActionResolver) (*Table, error) {
	var doc tableDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse transition table: %w", err)
	}

	resolve := func(name string) (Action, error) {
		if name == "" {
			return nil, nil
		}

		if actions != nil {
			if action, ok := actions.ResolveAction(name); ok {
				return action, nil
			}
		}

		return nil, &ErrUnknownAction{Name: name}
	}

	b := NewTable()

	for _, td := range doc.Transitions {
		action, err := resolve(td.Action)
		if err != nil {
			return nil, err
		}

		b.Transition(State(td.From), Event(td.Event), State(td.To), WithAction(action), WithGuard(td.Guard.expr))
	}

	for name, sd := range doc.States {
		action, err := resolve(sd.Action)
		if err != nil {
			return nil, err
		}

		b.StateAction(State(name), action)
	}

	return b.Build()
}
