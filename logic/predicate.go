package logic

import (
	"fmt"
	"math"

	"github.com/sbl8/tensorlogic/core"
)

// Provider is the capability interface for predicates and functions: a
// callable from a list of tensors to a tensor. Implementations may be
// closed-form functions or model-backed; the engine invokes both as
// pure functions per call and depends only on this interface.
//
// Call receives the arguments already aligned by the broadcaster: each
// tensor has one leading axis per variable in the combined label order,
// followed by that argument's own feature dimensions. The returned
// tensor's leading axes must match the combined shape; trailing axes
// are the provider's output features (none for a truth predicate).
type Provider interface {
	Call(args []*core.Tensor) (*core.Tensor, error)
}

// Func adapts a plain function to the Provider interface, the
// closed-form variant.
type Func func(args []*core.Tensor) (*core.Tensor, error)

// Call implements Provider.
func (f Func) Call(args []*core.Tensor) (*core.Tensor, error) { return f(args) }

// Dense is a model-backed truth predicate: sigmoid(x·W + b) over the
// last (feature) axis of a single argument. Weights are fixed at
// construction; training them is outside the engine.
type Dense struct {
	w   *core.Tensor // (in, out)
	b   *core.Tensor // (out)
	in  int
	out int
}

// NewDense builds a dense predicate from a weight matrix of shape
// (in, out) and a bias of shape (out).
func NewDense(w, b *core.Tensor) (*Dense, error) {
	if w == nil || w.Rank() != 2 {
		return nil, fmt.Errorf("%w: dense weights must have shape (in, out)", core.ErrShapeMismatch)
	}
	if b == nil || b.Rank() != 1 || b.Dim(0) != w.Dim(1) {
		return nil, fmt.Errorf("%w: dense bias must have shape (%d)", core.ErrShapeMismatch, w.Dim(1))
	}
	return &Dense{w: w, b: b, in: w.Dim(0), out: w.Dim(1)}, nil
}

// Call implements Provider. A single output unit is squeezed so the
// result is a plain truth tensor over the argument's variable axes.
func (d *Dense) Call(args []*core.Tensor) (*core.Tensor, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: dense predicate takes 1 argument, got %d", core.ErrInvalidParameter, len(args))
	}
	x := args[0]
	if x.Rank() < 1 || x.Dim(x.Rank()-1) != d.in {
		return nil, fmt.Errorf("%w: dense predicate expects %d input features", core.ErrShapeMismatch, d.in)
	}
	fx := x.Floats()
	fw := d.w.Floats()
	fb := d.b.Floats()
	rows := len(fx) / d.in
	out := make([]float32, rows*d.out)
	for r := 0; r < rows; r++ {
		for o := 0; o < d.out; o++ {
			acc := float64(fb[o])
			for i := 0; i < d.in; i++ {
				acc += float64(fx[r*d.in+i]) * float64(fw[i*d.out+o])
			}
			out[r*d.out+o] = float32(1 / (1 + math.Exp(-acc)))
		}
	}
	shape := x.Shape()[:x.Rank()-1]
	if d.out > 1 {
		shape = append(shape, d.out)
	}
	return core.FromSlice(out, shape...)
}

// Apply grounds a predicate or function application: the arguments are
// broadcast onto the union of their variables (honoring active
// diagonal groups), the provider is invoked on the aligned tensors, and
// its output is wrapped back into a grounding carrying the combined
// label order. The output's leading axes are validated against the
// combined shape.
func (e *Evaluator) Apply(p Provider, args ...*core.Grounding) (*core.Grounding, error) {
	labels, sizes, views, err := core.Align(e.diags, args...)
	if err != nil {
		return nil, err
	}
	out, err := p.Call(views)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: provider returned no tensor", core.ErrInvalidParameter)
	}
	if out.Rank() < len(labels) {
		return nil, fmt.Errorf("%w: provider output rank %d, need at least %d variable axes",
			core.ErrShapeMismatch, out.Rank(), len(labels))
	}
	for i, size := range sizes {
		if out.Dim(i) != size {
			return nil, fmt.Errorf("%w: provider output axis %d (%q) is %d, want %d",
				core.ErrShapeMismatch, i, labels[i], out.Dim(i), size)
		}
	}
	return core.NewGrounding(out.Clone(), labels...)
}
