package logic

import (
	"fmt"

	"github.com/sbl8/tensorlogic/core"
	"github.com/sbl8/tensorlogic/kernels"
)

// Aggregator reduces a population of truth values to one value. The
// population size varies per free index under guarded quantification,
// including down to zero; aggregators define their own empty-set value.
type Aggregator func(vals []float32) float32

// PMeanAgg returns the existential pMean aggregator for exponent p.
func PMeanAgg(p float64) (Aggregator, error) {
	if err := checkExponent(p); err != nil {
		return nil, err
	}
	return func(vals []float32) float32 { return kernels.PMean(vals, p) }, nil
}

// PMeanErrorAgg returns the universal pMeanError aggregator for
// exponent p.
func PMeanErrorAgg(p float64) (Aggregator, error) {
	if err := checkExponent(p); err != nil {
		return nil, err
	}
	return func(vals []float32) float32 { return kernels.PMeanError(vals, p) }, nil
}

func checkExponent(p float64) error {
	if p < 1 {
		return fmt.Errorf("%w: aggregator exponent p=%v, need p >= 1", core.ErrInvalidParameter, p)
	}
	return nil
}

type quantKind uint8

const (
	forallKind quantKind = iota
	existsKind
)

type quantConfig struct {
	p        float64
	agg      Aggregator
	mask     *core.Grounding
	diagonal bool
}

// QuantOpt configures one quantifier call.
type QuantOpt func(*quantConfig)

// WithP overrides the aggregator exponent for this call. p < 1 is
// rejected with ErrInvalidParameter.
func WithP(p float64) QuantOpt {
	return func(c *quantConfig) { c.p = p }
}

// WithAggregator replaces the default pMean/pMeanError aggregator.
func WithAggregator(agg Aggregator) QuantOpt {
	return func(c *quantConfig) { c.agg = agg }
}

// Guarded restricts the aggregation to elements where the mask
// grounding is true (see kernels.IsTrue). The mask's variables must all
// appear in the body or among the quantified variables.
func Guarded(mask *core.Grounding) QuantOpt {
	return func(c *quantConfig) { c.mask = mask }
}

// OnDiagonal zips the quantified variables into one diagonal group for
// the duration of this call. The group is opened on the evaluator's
// registry and closed again on every exit path, so it never leaks into
// unrelated formulas.
func OnDiagonal() QuantOpt {
	return func(c *quantConfig) { c.diagonal = true }
}

// Forall grounds universal quantification of body over vars using the
// pMeanError aggregator (soft minimum). Remaining free variables keep
// their combined order in the result.
func (e *Evaluator) Forall(vars []*core.Variable, body *core.Grounding, opts ...QuantOpt) (*core.Grounding, error) {
	return e.quantify(forallKind, vars, body, opts)
}

// Exists grounds existential quantification of body over vars using
// the pMean aggregator (soft maximum).
func (e *Evaluator) Exists(vars []*core.Variable, body *core.Grounding, opts ...QuantOpt) (*core.Grounding, error) {
	return e.quantify(existsKind, vars, body, opts)
}

func (e *Evaluator) quantify(kind quantKind, vars []*core.Variable, body *core.Grounding, opts []QuantOpt) (*core.Grounding, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: no variables to quantify", core.ErrInvalidParameter)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: nil body", core.ErrInvalidParameter)
	}
	cfg := quantConfig{p: e.defaultP}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkExponent(cfg.p); err != nil {
		return nil, err
	}
	if cfg.agg == nil {
		p := cfg.p
		if kind == forallKind {
			cfg.agg = func(vals []float32) float32 { return kernels.PMeanError(vals, p) }
		} else {
			cfg.agg = func(vals []float32) float32 { return kernels.PMean(vals, p) }
		}
	}

	if cfg.diagonal {
		grp, err := e.diags.Add(vars...)
		if err != nil {
			return nil, err
		}
		// Closed on every exit path; the diagonal session must not
		// outlive this call.
		defer e.diags.Remove(grp)
	}

	inputs := []*core.Grounding{body}
	if cfg.mask != nil {
		if err := checkGuardLabels(cfg.mask, body, vars); err != nil {
			return nil, err
		}
		inputs = append(inputs, cfg.mask)
	}

	labels, sizes, views, err := core.Align(e.diags, inputs...)
	if err != nil {
		return nil, err
	}

	// Map the quantified variables to slots of the combined shape: one
	// slot per plain variable, one shared slot per diagonal group.
	slotOf := make(map[string]int, len(labels))
	for i, lb := range labels {
		slotOf[lb] = i
	}
	bodyHas := make(map[string]bool)
	for _, lb := range body.Labels() {
		if grp := e.diags.Lookup(lb); grp != nil {
			lb = grp.Label()
		}
		bodyHas[lb] = true
	}
	quantified := make([]bool, len(labels))
	for _, v := range vars {
		lb := v.Label()
		if grp := e.diags.Lookup(lb); grp != nil {
			lb = grp.Label()
		}
		if !bodyHas[lb] {
			return nil, fmt.Errorf("%w: %q is not bound in the quantified body", core.ErrUndefinedVariable, v.Label())
		}
		quantified[slotOf[lb]] = true
	}

	bt := views[0]
	bshape := bt.Shape()
	bvals := bt.Floats()
	var mvals []float32
	if cfg.mask != nil {
		mt := views[1]
		if mt.Rank() != len(labels) {
			return nil, fmt.Errorf("%w: guard must be a truth tensor over variables only, got shape %v",
				core.ErrShapeMismatch, mt.Shape())
		}
		// Guard and body share the leading label axes; replicate the
		// guard across the body's feature dims, if any.
		for d := len(labels); d < len(bshape); d++ {
			mt = mt.InsertAxis(mt.Rank())
		}
		mt, err = mt.Expand(bshape)
		if err != nil {
			return nil, err
		}
		mvals = mt.Floats()
	}

	nslots := len(labels)
	freeLabels := make([]string, 0, nslots)
	outShape := make([]int, 0, len(bshape))
	quantVolume := 1
	for i, lb := range labels {
		if quantified[i] {
			quantVolume *= sizes[i]
		} else {
			freeLabels = append(freeLabels, lb)
			outShape = append(outShape, sizes[i])
		}
	}
	outShape = append(outShape, bshape[nslots:]...)
	outSize := 1
	for _, d := range outShape {
		outSize *= d
	}

	// Row-major strides of the output, mapped back onto the body's
	// axes; quantified axes contribute nothing to the free index.
	outStrides := make([]int, len(bshape))
	stride := 1
	for d := len(bshape) - 1; d >= 0; d-- {
		if d < nslots && quantified[d] {
			continue
		}
		outStrides[d] = stride
		stride *= bshape[d]
	}

	// Bucket the population per free index. Guarded quantification
	// yields a variable-size population, so the reduction cannot be a
	// fixed-axis fold.
	buckets := make([][]float32, outSize)
	if cfg.mask == nil {
		for i := range buckets {
			buckets[i] = make([]float32, 0, quantVolume)
		}
	}
	idx := make([]int, len(bshape))
	freeIdx := 0
	for i, v := range bvals {
		if mvals == nil || kernels.IsTrue(mvals[i]) {
			buckets[freeIdx] = append(buckets[freeIdx], v)
		}
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			freeIdx += outStrides[d]
			if idx[d] < bshape[d] {
				break
			}
			idx[d] = 0
			freeIdx -= outStrides[d] * bshape[d]
		}
	}

	out := make([]float32, outSize)
	for i, population := range buckets {
		out[i] = cfg.agg(population)
	}
	rt, err := core.FromSlice(out, outShape...)
	if err != nil {
		return nil, err
	}
	return core.NewGrounding(rt, freeLabels...)
}

// checkGuardLabels enforces that every guard variable appears in the
// body or among the quantified variables.
func checkGuardLabels(mask, body *core.Grounding, vars []*core.Variable) error {
	allowed := make(map[string]bool)
	for _, lb := range body.Labels() {
		allowed[lb] = true
	}
	for _, v := range vars {
		allowed[v.Label()] = true
	}
	for _, lb := range mask.Labels() {
		if !allowed[lb] {
			return fmt.Errorf("%w: guard variable %q not present in quantified body", core.ErrShapeMismatch, lb)
		}
	}
	return nil
}
