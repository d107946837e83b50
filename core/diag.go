package core

import (
	"fmt"
	"strings"
)

// DiagGroup marks a set of variables as zipped: during alignment the
// members share one combined axis of size n addressing corresponding
// individuals, instead of contributing a cross product of axes.
type DiagGroup struct {
	label   string
	members []string
	n       int
}

// Label returns the synthesized label of the group's shared axis.
func (g *DiagGroup) Label() string { return g.label }

// Members returns a copy of the member variable labels.
func (g *DiagGroup) Members() []string { return append([]string(nil), g.members...) }

// Count returns the shared individual count n.
func (g *DiagGroup) Count() int { return g.n }

// DiagSet is the registry of active diagonal groups for one formula
// evaluation. It is owned by a single evaluator and is never package
// state, so independent evaluations cannot interfere. The acquire and
// release discipline mirrors scoped resource management: every Add must
// be paired with a Remove on all exit paths of the evaluation that
// opened it.
type DiagSet struct {
	groups []*DiagGroup
}

// NewDiagSet returns an empty registry.
func NewDiagSet() *DiagSet { return &DiagSet{} }

// Add opens a diagonal group over the given variables. All members must
// have equal individual counts, and no member may already belong to an
// active group.
func (ds *DiagSet) Add(vars ...*Variable) (*DiagGroup, error) {
	if len(vars) < 2 {
		return nil, fmt.Errorf("%w: diagonal group needs at least 2 variables, got %d", ErrInvalidParameter, len(vars))
	}
	n := vars[0].Count()
	members := make([]string, len(vars))
	for i, v := range vars {
		if v.Count() != n {
			return nil, fmt.Errorf("%w: diagonal group over %q (%d individuals) and %q (%d individuals)",
				ErrShapeMismatch, vars[0].Label(), n, v.Label(), v.Count())
		}
		if ds.Lookup(v.Label()) != nil {
			return nil, fmt.Errorf("%w: variable %q already belongs to an active diagonal group", ErrInvalidParameter, v.Label())
		}
		for j := 0; j < i; j++ {
			if members[j] == v.Label() {
				return nil, fmt.Errorf("%w: variable %q listed twice in diagonal group", ErrInvalidParameter, v.Label())
			}
		}
		members[i] = v.Label()
	}
	g := &DiagGroup{
		label:   "diag(" + strings.Join(members, ",") + ")",
		members: members,
		n:       n,
	}
	ds.groups = append(ds.groups, g)
	return g, nil
}

// Remove closes a group, reverting its members to cross-product
// alignment. Removing a group that is not active is a no-op.
func (ds *DiagSet) Remove(g *DiagGroup) {
	for i, have := range ds.groups {
		if have == g {
			ds.groups = append(ds.groups[:i], ds.groups[i+1:]...)
			return
		}
	}
}

// Active returns a copy of the currently open groups.
func (ds *DiagSet) Active() []*DiagGroup {
	if ds == nil {
		return nil
	}
	return append([]*DiagGroup(nil), ds.groups...)
}

// Lookup maps a member label (or a group's own axis label) to its
// active group. A nil receiver behaves as an empty registry.
func (ds *DiagSet) Lookup(label string) *DiagGroup {
	if ds == nil {
		return nil
	}
	for _, g := range ds.groups {
		if g.label == label {
			return g
		}
		for _, m := range g.members {
			if m == label {
				return g
			}
		}
	}
	return nil
}
