package fsm

import "github.com/enetx/g"

// ToDOT generates a DOT language representation of the machine's table with the
// current state highlighted.
func (m *Machine) ToDOT() g.String { return m.table.dot(m.current) }

// ToDOT generates a DOT language representation of the table for visualization.
func (t *Table) ToDOT() g.String { return t.dot("") }

func (t *Table) dot(current State) g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", t.Initial()))

	grouped := g.NewMap[g.Pair[State, State], g.Slice[g.String]]()
	order := g.NewSlice[g.Pair[State, State]]()
	guarded := g.NewSet[g.Pair[State, State]]()

	for _, tr := range t.transitions {
		key := g.Pair[State, State]{Key: tr.Source, Value: tr.Target}

		label := g.String(tr.Event)
		if !tr.Guard.IsNone() {
			label += g.Format(" [{}]", tr.Guard.String())
			guarded.Insert(key)
		}

		if !grouped.Contains(key) {
			order.Push(key)
		}

		grouped.Entry(key).
			AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
			OrInsert(g.SliceOf(label))
	}

	for _, state := range t.states {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state))

		switch {
		case state == current:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case t.bySource[state].Empty():
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		if _, ok := t.stateAction[state]; ok {
			attrs.Push("tooltip=\"StateAction\"")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, pair := range order {
		var edge g.Slice[g.String]
		edge.Push(g.Format("label=\" {} \"", grouped[pair].Join("\\n")))

		if guarded.Contains(pair) {
			edge.Push("style=dashed", "color=red", "arrowhead=odiamond")
		}

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", pair.Key, pair.Value, edge.Join(", ")))
	}

	b.WriteString("}\n")

	return b.String()
}
