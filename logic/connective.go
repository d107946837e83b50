package logic

import (
	"github.com/sbl8/tensorlogic/core"
	"github.com/sbl8/tensorlogic/kernels"
)

// Not applies the family's negation pointwise.
func (e *Evaluator) Not(a *core.Grounding) (*core.Grounding, error) {
	return e.combine1(e.ops.Not, a)
}

// And combines two groundings with the family's t-norm after
// broadcasting them onto the union of their variables.
func (e *Evaluator) And(a, b *core.Grounding) (*core.Grounding, error) {
	return e.combine2(e.ops.And, a, b)
}

// Or combines two groundings with the family's s-norm.
func (e *Evaluator) Or(a, b *core.Grounding) (*core.Grounding, error) {
	return e.combine2(e.ops.Or, a, b)
}

// Implies combines two groundings with the family's implication.
func (e *Evaluator) Implies(a, b *core.Grounding) (*core.Grounding, error) {
	return e.combine2(e.ops.Implies, a, b)
}

// CombineUnary applies an arbitrary pointwise truth function to one
// grounding. The function is assumed total; truth-value range is not
// validated.
func (e *Evaluator) CombineUnary(op kernels.Unary, a *core.Grounding) (*core.Grounding, error) {
	return e.combine1(op, a)
}

// CombineBinary applies an arbitrary pointwise truth function to two
// groundings after broadcasting.
func (e *Evaluator) CombineBinary(op kernels.Binary, a, b *core.Grounding) (*core.Grounding, error) {
	return e.combine2(op, a, b)
}

func (e *Evaluator) combine1(op kernels.Unary, a *core.Grounding) (*core.Grounding, error) {
	labels, _, views, err := core.Align(e.diags, a)
	if err != nil {
		return nil, err
	}
	vals := views[0].Floats()
	for i, v := range vals {
		vals[i] = op(v)
	}
	t, err := core.FromSlice(vals, views[0].Shape()...)
	if err != nil {
		return nil, err
	}
	return core.NewGrounding(t, labels...)
}

func (e *Evaluator) combine2(op kernels.Binary, a, b *core.Grounding) (*core.Grounding, error) {
	labels, _, views, err := core.Align(e.diags, a, b)
	if err != nil {
		return nil, err
	}
	// Leading label axes are shared after Align; trailing feature dims
	// broadcast left-aligned.
	ta, tb, err := core.BroadcastPair(views[0], views[1])
	if err != nil {
		return nil, err
	}
	fa, fb := ta.Floats(), tb.Floats()
	for i := range fa {
		fa[i] = op(fa[i], fb[i])
	}
	t, err := core.FromSlice(fa, ta.Shape()...)
	if err != nil {
		return nil, err
	}
	return core.NewGrounding(t, labels...)
}
