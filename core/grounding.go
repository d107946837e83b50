// Package core provides the fundamental primitives of the tensorlogic
// engine: strided tensors, variables, groundings (tensors paired with
// ordered variable labels), the diagonal-group registry, and the
// broadcaster that aligns groundings onto a shared shape.
//
// Key components:
//   - Tensor: strided float32 views with zero-copy expand/permute/diagonal
//   - Variable: a named batch of individuals with a fixed count
//   - Grounding: a tensor plus the labels naming its leading axes
//   - DiagSet: per-evaluation registry of zipped variable groups
//   - Align: the variable-aware broadcaster
//
// The design keeps label bookkeeping explicit: a bare tensor is never
// passed where variable structure matters, and diagonal behavior is
// session state owned by one evaluation, never a property of the
// Variable itself.
package core

import (
	"fmt"
)

// Kind classifies how a grounding came to be.
type Kind uint8

const (
	// KindConstant groundings carry no variable labels; every axis is a
	// feature dimension.
	KindConstant Kind = iota
	// KindVariable groundings are the leaf grounding of a single
	// variable: one labeled leading axis over its individuals.
	KindVariable
	// KindDerived groundings are combinator outputs, independently
	// owned and never aliasing their inputs.
	KindDerived
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindDerived:
		return "derived"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Variable is a named batch of individuals. The first axis of values
// indexes the individuals; trailing axes are feature dimensions. A
// Variable is immutable after construction.
type Variable struct {
	label  string
	values *Tensor
}

// NewVariable builds a variable from its label and domain values.
func NewVariable(label string, values *Tensor) (*Variable, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: empty variable label", ErrInvalidParameter)
	}
	if values == nil || values.Rank() < 1 {
		return nil, fmt.Errorf("%w: variable %q needs at least one axis of individuals", ErrInvalidParameter, label)
	}
	if values.Dim(0) < 1 {
		return nil, fmt.Errorf("%w: variable %q has no individuals", ErrInvalidParameter, label)
	}
	return &Variable{label: label, values: values}, nil
}

// Label returns the variable's identifier.
func (v *Variable) Label() string { return v.label }

// Count returns the number of individuals.
func (v *Variable) Count() int { return v.values.Dim(0) }

// Values returns the underlying domain tensor.
func (v *Variable) Values() *Tensor { return v.values }

// Grounding returns the leaf grounding of the variable: its values with
// the single label naming the leading axis.
func (v *Variable) Grounding() *Grounding {
	return &Grounding{t: v.values, labels: []string{v.label}, kind: KindVariable}
}

// Grounding pairs a tensor with the ordered variable labels naming its
// leading axes; trailing axes are feature dimensions opaque to the
// engine. Groundings produced by combinators are freshly allocated and
// do not alias their inputs.
type Grounding struct {
	t      *Tensor
	labels []string
	kind   Kind
}

// NewGrounding wraps a tensor with its leading-axis labels. Zero labels
// yield a constant; otherwise the grounding is derived.
func NewGrounding(t *Tensor, labels ...string) (*Grounding, error) {
	kind := KindDerived
	if len(labels) == 0 {
		kind = KindConstant
	}
	g := &Grounding{t: t, labels: append([]string(nil), labels...), kind: kind}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Constant wraps a tensor with an empty label list: all axes are
// feature dimensions and broadcasting treats it as variable-free.
func Constant(t *Tensor) *Grounding {
	return &Grounding{t: t, kind: KindConstant}
}

// Tensor returns the underlying tensor view.
func (g *Grounding) Tensor() *Tensor { return g.t }

// Labels returns a copy of the ordered variable labels.
func (g *Grounding) Labels() []string { return append([]string(nil), g.labels...) }

// Kind reports how the grounding was constructed.
func (g *Grounding) Kind() Kind { return g.kind }

// Shape returns the full tensor shape, labeled axes first.
func (g *Grounding) Shape() []int { return g.t.Shape() }

// HasLabel reports whether the grounding depends on the given variable.
func (g *Grounding) HasLabel(label string) bool {
	for _, lb := range g.labels {
		if lb == label {
			return true
		}
	}
	return false
}

// Validate checks the label/tensor pairing invariants.
func (g *Grounding) Validate() error {
	if g == nil || g.t == nil {
		return fmt.Errorf("%w: nil grounding", ErrInvalidParameter)
	}
	if len(g.labels) > g.t.Rank() {
		return fmt.Errorf("%w: %d labels on rank-%d tensor", ErrShapeMismatch, len(g.labels), g.t.Rank())
	}
	seen := make(map[string]bool, len(g.labels))
	for _, lb := range g.labels {
		if lb == "" {
			return fmt.Errorf("%w: empty label", ErrInvalidParameter)
		}
		if seen[lb] {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidParameter, lb)
		}
		seen[lb] = true
	}
	return nil
}
