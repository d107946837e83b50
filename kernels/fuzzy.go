// Package kernels provides the pure numeric functions of the
// tensorlogic engine: pointwise fuzzy connective truth functions and
// generalized-mean aggregators.
//
// All functions are allocation-free and total on [0,1] inputs. The
// engine does not validate truth-value range; out-of-range inputs pass
// through and any NaN/Inf they produce propagates per standard
// floating-point semantics.
//
// Connectives come in complete families (product, Łukasiewicz, Gödel)
// bundled as OpSet values, and are also registered by name in catalogs
// for callers that wire formulas from configuration.
package kernels

// Unary is a pointwise truth function of one argument.
type Unary func(a float32) float32

// Binary is a pointwise truth function of two arguments.
type Binary func(a, b float32) float32

// NotStd is the standard strong negation 1-a, shared by all families.
func NotStd(a float32) float32 { return 1 - a }

// Product family (probabilistic semantics).

// AndProd is the product t-norm a*b.
func AndProd(a, b float32) float32 { return a * b }

// OrProbSum is the probabilistic sum a+b-a*b.
func OrProbSum(a, b float32) float32 { return a + b - a*b }

// ImpliesReichenbach is the Reichenbach implication 1-a+a*b.
func ImpliesReichenbach(a, b float32) float32 { return 1 - a + a*b }

// ImpliesKleeneDienes is the Kleene-Dienes implication max(1-a, b).
func ImpliesKleeneDienes(a, b float32) float32 { return max(1-a, b) }

// Łukasiewicz family.

// AndLuk is the Łukasiewicz t-norm max(0, a+b-1).
func AndLuk(a, b float32) float32 { return max(0, a+b-1) }

// OrLuk is the bounded sum min(1, a+b).
func OrLuk(a, b float32) float32 { return min(1, a+b) }

// ImpliesLuk is the Łukasiewicz implication min(1, 1-a+b).
func ImpliesLuk(a, b float32) float32 { return min(1, 1-a+b) }

// Gödel (minimum) family.

// AndMin is the minimum t-norm.
func AndMin(a, b float32) float32 { return min(a, b) }

// OrMax is the maximum s-norm.
func OrMax(a, b float32) float32 { return max(a, b) }

// ImpliesGoedel is the Gödel implication: 1 when a <= b, else b.
func ImpliesGoedel(a, b float32) float32 {
	if a <= b {
		return 1
	}
	return b
}

// OpSet bundles one complete connective family.
type OpSet struct {
	Name    string
	Not     Unary
	And     Binary
	Or      Binary
	Implies Binary
}

// Predefined families.
var (
	Product     = OpSet{Name: "product", Not: NotStd, And: AndProd, Or: OrProbSum, Implies: ImpliesReichenbach}
	Lukasiewicz = OpSet{Name: "lukasiewicz", Not: NotStd, And: AndLuk, Or: OrLuk, Implies: ImpliesLuk}
	Goedel      = OpSet{Name: "goedel", Not: NotStd, And: AndMin, Or: OrMax, Implies: ImpliesGoedel}
)

// Catalogs map operator names to implementations for runtime dispatch.
var (
	UnaryCatalog = map[string]Unary{
		"not_std": NotStd,
	}
	BinaryCatalog = map[string]Binary{
		"and_prod":            AndProd,
		"or_prob_sum":         OrProbSum,
		"implies_reichenbach": ImpliesReichenbach,
		"implies_kd":          ImpliesKleeneDienes,
		"and_luk":             AndLuk,
		"or_luk":              OrLuk,
		"implies_luk":         ImpliesLuk,
		"and_min":             AndMin,
		"or_max":              OrMax,
		"implies_goedel":      ImpliesGoedel,
	}
	Families = map[string]OpSet{
		Product.Name:     Product,
		Lukasiewicz.Name: Lukasiewicz,
		Goedel.Name:      Goedel,
	}
)

// IsTrue reports whether a truth value counts as true under the
// engine's mask convention. Boolean groundings use 0/1; fuzzy guards
// threshold at one half.
func IsTrue(v float32) bool { return v > 0.5 }
