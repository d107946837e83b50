package core

import "errors"

// Sentinel errors for the engine's usage-error taxonomy. They are
// wrapped with context at the failure site; callers match them with
// errors.Is. None of these are transient: they indicate a programming
// error in how formulas were assembled, never a condition to retry.
var (
	// ErrShapeMismatch reports incompatible axis sizes: a diagonal
	// group over variables of unequal count, conflicting sizes for one
	// variable across groundings, or a guard referencing a variable
	// absent from the quantified body.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUndefinedVariable reports quantification over a label that is
	// not bound in the evaluated body.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrInvalidParameter reports an out-of-domain argument, such as an
	// aggregator exponent p < 1.
	ErrInvalidParameter = errors.New("invalid parameter")
)
