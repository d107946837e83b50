// Package logic implements the formula combinators of the tensorlogic
// engine: connectives, quantifiers, and predicate application, all
// built on the core broadcaster.
//
// Formulas are assembled as nested Go calls against an Evaluator, which
// is the per-evaluation context: it carries the connective family, the
// default aggregator exponent, and the registry of active diagonal
// groups. An Evaluator is not safe for concurrent use; independent
// formula evaluations each get their own, which makes concurrent
// evaluation safe without locking.
package logic

import (
	"github.com/sbl8/tensorlogic/core"
	"github.com/sbl8/tensorlogic/kernels"
)

// DefaultP is the aggregator exponent used when neither the evaluator
// nor the quantifier call overrides it.
const DefaultP = 2.0

// Evaluator is the per-evaluation context for grounding formulas.
type Evaluator struct {
	ops      kernels.OpSet
	defaultP float64
	diags    *core.DiagSet
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOperators selects the connective family (default product).
func WithOperators(ops kernels.OpSet) Option {
	return func(e *Evaluator) { e.ops = ops }
}

// WithDefaultP sets the default aggregator exponent for quantifiers.
func WithDefaultP(p float64) Option {
	return func(e *Evaluator) { e.defaultP = p }
}

// New returns an evaluator with the product connective family and the
// default exponent. Evaluators are cheap; create one per evaluation.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		ops:      kernels.Product,
		defaultP: DefaultP,
		diags:    core.NewDiagSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Operators returns the evaluator's connective family.
func (e *Evaluator) Operators() kernels.OpSet { return e.ops }

// Diagonals exposes the active diagonal registry, mainly for
// inspection in tests.
func (e *Evaluator) Diagonals() *core.DiagSet { return e.diags }

// Diag opens a diagonal group zipping the given variables for
// subsequent combinator calls on this evaluator. The caller must close
// it with Undiag before the variables are used in unrelated formulas;
// prefer WithDiag, which cannot leak.
func (e *Evaluator) Diag(vars ...*core.Variable) (*core.DiagGroup, error) {
	return e.diags.Add(vars...)
}

// Undiag closes a diagonal group, reverting its members to
// cross-product alignment.
func (e *Evaluator) Undiag(g *core.DiagGroup) {
	e.diags.Remove(g)
}

// WithDiag runs fn with the given variables zipped, then reverts them
// on every exit path, error or not.
func (e *Evaluator) WithDiag(fn func() error, vars ...*core.Variable) error {
	g, err := e.diags.Add(vars...)
	if err != nil {
		return err
	}
	defer e.diags.Remove(g)
	return fn()
}
