// Package tensorlogic implements a runtime combinator engine that
// grounds first-order fuzzy-logic formulas into numeric computations
// over batched tensors.
//
// Terms are "groundings": tensors whose leading axes are named by the
// variables indexing them. The engine aligns groundings onto the union
// of their variables so logical connectives can combine them pointwise,
// supports a diagonal alignment mode that zips matched variables
// instead of crossing them, and reduces chosen variable axes with
// parameterized soft min/max aggregators to ground quantifiers,
// optionally restricted by a boolean guard mask.
//
// # Architecture Overview
//
//   - core: strided tensors, variables, groundings, the diagonal-group
//     registry, and the variable-aware broadcaster
//   - kernels: pure numeric fuzzy connective families and the
//     pMean/pMeanError generalized-mean aggregators
//   - logic: the per-evaluation Evaluator with connective, quantifier,
//     and predicate-application combinators
//   - cmd/tlg: demonstration CLI
//
// # Basic Usage
//
//	ev := logic.New()
//	x, _ := core.NewVariable("x", points)          // (10, 2)
//	y, _ := core.NewVariable("y", others)          // (5, 2)
//	eqXY, _ := ev.Apply(eq, x.Grounding(), y.Grounding()) // (10, 5)
//	all, _ := ev.Forall([]*core.Variable{x}, eqXY) // (5,)
//
// Formulas are built as nested calls; the engine does no parsing. An
// Evaluator is a per-evaluation context: it owns the diagonal-group
// registry, so concurrent evaluations on separate evaluators are safe
// without locking. Predicates and functions are external providers
// (closed-form functions or model-backed callables); training,
// persistence, and dataset handling live outside this module.
package tensorlogic
