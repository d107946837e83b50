package kernels

import "math"

// PMean is the generalized power mean (mean(u_i^p))^(1/p), the smooth
// maximum grounding existential quantifiers: p=1 is the arithmetic
// mean, p->inf approaches max. Inputs are assumed to lie in [0,1];
// enforcing that is the caller's responsibility.
//
// An empty population yields 0: an existential quantifier over an
// empty set is vacuously false.
func PMean(vals []float32, p float64) float32 {
	if len(vals) == 0 {
		return 0
	}
	var acc float64
	for _, v := range vals {
		acc += math.Pow(float64(v), p)
	}
	return float32(math.Pow(acc/float64(len(vals)), 1/p))
}

// PMeanError is the generalized mean of errors 1-(mean((1-u_i)^p))^(1/p),
// the smooth minimum grounding universal quantifiers: p=1 is the
// arithmetic mean, p->inf approaches min.
//
// An empty population yields 1: a universal quantifier over an empty
// set is vacuously true.
func PMeanError(vals []float32, p float64) float32 {
	if len(vals) == 0 {
		return 1
	}
	var acc float64
	for _, v := range vals {
		acc += math.Pow(1-float64(v), p)
	}
	return float32(1 - math.Pow(acc/float64(len(vals)), 1/p))
}

// Mean is the arithmetic mean, the shared p=1 limit of PMean and
// PMeanError. An empty population yields 0.
func Mean(vals []float32) float32 {
	if len(vals) == 0 {
		return 0
	}
	var acc float64
	for _, v := range vals {
		acc += float64(v)
	}
	return float32(acc / float64(len(vals)))
}
