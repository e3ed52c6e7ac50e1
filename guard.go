package fsm

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// GuardKind tells how a GuardExpr is matched against the current guard.
type GuardKind uint8

const (
	// GuardAtomic matches exactly one guard value.
	GuardAtomic GuardKind = iota
	// GuardAnyOf matches any guard in its set.
	GuardAnyOf
	// GuardNoneOf matches every guard that is not in its set.
	GuardNoneOf
)

func (k GuardKind) String() string {
	switch k {
	case GuardAnyOf:
		return "any_of"
	case GuardNoneOf:
		return "none_of"
	default:
		return "atomic"
	}
}

// GuardExpr is the guard slot of a transition: an atomic guard or an
// any_of / none_of combinator over a non-empty set of atomic guards.
// The zero value is equivalent to When(NoneGuard).
type GuardExpr struct {
	kind   GuardKind
	guards g.Slice[Guard]
}

// When returns an atomic guard expression matching only guard.
func When(guard Guard) GuardExpr {
	return GuardExpr{kind: GuardAtomic, guards: g.SliceOf(guard)}
}

// AnyOf returns a guard expression matching any of the given guards.
// Duplicates are tolerated.
func AnyOf(guard Guard, guards ...Guard) GuardExpr {
	return GuardExpr{kind: GuardAnyOf, guards: append(g.SliceOf(guard), guards...)}
}

// NoneOf returns a guard expression matching every guard except the given ones,
// NoneGuard included unless it is listed.
func NoneOf(guard Guard, guards ...Guard) GuardExpr {
	return GuardExpr{kind: GuardNoneOf, guards: append(g.SliceOf(guard), guards...)}
}

// Kind returns the combinator kind of the expression.
func (e GuardExpr) Kind() GuardKind { return e.kind }

// Guards returns a copy of the atomic guards referenced by the expression,
// in declaration order.
func (e GuardExpr) Guards() g.Slice[Guard] { return e.members().Clone() }

// IsNone reports whether the expression is the default atomic NoneGuard.
func (e GuardExpr) IsNone() bool {
	return e.kind == GuardAtomic && e.members()[0] == NoneGuard
}

// Match reports whether current satisfies the expression.
func (e GuardExpr) Match(current Guard) bool {
	switch e.kind {
	case GuardAnyOf:
		return e.guards.Contains(current)
	case GuardNoneOf:
		return !e.guards.Contains(current)
	default:
		return e.members()[0] == current
	}
}

// Equal reports whether two expressions are structurally identical: the same
// kind over the same set of guards. Expressions that merely overlap are not equal.
func (e GuardExpr) Equal(other GuardExpr) bool {
	return e.kind == other.kind && e.set().Eq(other.set())
}

func (e GuardExpr) String() string {
	if e.kind == GuardAtomic {
		return string(e.members()[0])
	}

	names := g.NewSlice[g.String]()
	for _, gd := range e.guards {
		names.Push(g.String(gd))
	}

	return string(g.Format("{}({})", e.kind.String(), names.Join(", ")))
}

func (e GuardExpr) members() g.Slice[Guard] {
	if e.guards.Empty() {
		return g.SliceOf(NoneGuard)
	}

	return e.guards
}

// set returns the sorted, de-duplicated members of the expression.
func (e GuardExpr) set() g.Slice[Guard] {
	seen := g.NewSet[Guard]()
	set := g.NewSlice[Guard]()

	for _, gd := range e.members() {
		if !seen.Contains(gd) {
			seen.Insert(gd)
			set.Push(gd)
		}
	}

	set.SortBy(cmp.Cmp)

	return set
}
