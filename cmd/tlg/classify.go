package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sbl8/tensorlogic/core"
	"github.com/sbl8/tensorlogic/logic"
)

// discProvider grounds a soft disc membership predicate: truth rises
// towards 1 inside the disc and falls towards 0 outside, with the
// transition sharpness set by steepness.
func discProvider(cx, cy, radius, steepness float64) logic.Provider {
	return logic.Func(func(args []*core.Tensor) (*core.Tensor, error) {
		x := args[0]
		vals := x.Floats()
		d := x.Dim(x.Rank() - 1)
		if d != 2 {
			return nil, fmt.Errorf("%w: disc predicate wants 2-D points, got %d features",
				core.ErrShapeMismatch, d)
		}
		out := make([]float32, len(vals)/2)
		for i := range out {
			dx := float64(vals[2*i]) - cx
			dy := float64(vals[2*i+1]) - cy
			dist := math.Sqrt(dx*dx + dy*dy)
			out[i] = float32(1 / (1 + math.Exp(steepness*(dist-radius))))
		}
		return core.FromSlice(out, x.Shape()[:x.Rank()-1]...)
	})
}

// samplePoints draws n uniform points from the unit square, keeping
// only those the keep predicate accepts.
func samplePoints(rng *rand.Rand, n int, keep func(x, y float64) bool) []float32 {
	flat := make([]float32, 0, 2*n)
	for len(flat) < 2*n {
		x, y := rng.Float64(), rng.Float64()
		if keep(x, y) {
			flat = append(flat, float32(x), float32(y))
		}
	}
	return flat
}

func newClassifyCmd(a *app) *cobra.Command {
	var nPoints int
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Ground a binary classification axiom set and report satisfaction",
		Long: "classify grounds four axioms over two point classes in the unit square,\n" +
			"class A inside a disc and class B outside it, using closed-form disc\n" +
			"predicates, and prints the satisfaction degree of each axiom.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd, a, nPoints)
		},
	}
	cmd.Flags().IntVar(&nPoints, "points", 50, "points sampled per class")
	return cmd
}

func runClassify(cmd *cobra.Command, a *app, nPoints int) error {
	if nPoints < 1 {
		return fmt.Errorf("%w: need at least one point per class", core.ErrInvalidParameter)
	}
	ev, err := a.evaluator()
	if err != nil {
		return err
	}

	const (
		cx, cy = 0.5, 0.5
		radius = 0.3
	)
	inDisc := func(x, y float64) bool {
		return math.Hypot(x-cx, y-cy) < radius
	}

	rng := rand.New(rand.NewSource(42))
	aPts := samplePoints(rng, nPoints, inDisc)
	bPts := samplePoints(rng, nPoints, func(x, y float64) bool { return !inDisc(x, y) })
	allPts := append(append([]float32{}, aPts...), bPts...)

	mk := func(label string, flat []float32) (*core.Variable, error) {
		t, err := core.FromSlice(flat, len(flat)/2, 2)
		if err != nil {
			return nil, err
		}
		return core.NewVariable(label, t)
	}
	xa, err := mk("xa", aPts)
	if err != nil {
		return err
	}
	xb, err := mk("xb", bPts)
	if err != nil {
		return err
	}
	x, err := mk("x", allPts)
	if err != nil {
		return err
	}
	a.log.Debug("sampled", "class_a", xa.Count(), "class_b", xb.Count())

	// A is the soft disc, B its complement: sharper than the axioms
	// need, so satisfaction stays high without any training.
	predA := discProvider(cx, cy, radius, 24)
	predB := discProvider(cx, cy, radius, -24)

	satisfy := func(v *core.Variable, build func(*core.Grounding) (*core.Grounding, error)) (float32, error) {
		pv, err := ev.Apply(predA, v.Grounding())
		if err != nil {
			return 0, err
		}
		body, err := build(pv)
		if err != nil {
			return 0, err
		}
		r, err := ev.Forall([]*core.Variable{v}, body)
		if err != nil {
			return 0, err
		}
		return r.Tensor().At(), nil
	}

	identity := func(g *core.Grounding) (*core.Grounding, error) { return g, nil }

	// forall xa: A(xa)
	satA, err := satisfy(xa, identity)
	if err != nil {
		return err
	}

	// forall xb: B(xb)
	bOfXb, err := ev.Apply(predB, xb.Grounding())
	if err != nil {
		return err
	}
	allB, err := ev.Forall([]*core.Variable{xb}, bOfXb)
	if err != nil {
		return err
	}
	satB := allB.Tensor().At()

	// forall x: A(x) -> not B(x)
	satExcl, err := satisfy(x, func(ax *core.Grounding) (*core.Grounding, error) {
		bx, err := ev.Apply(predB, x.Grounding())
		if err != nil {
			return nil, err
		}
		notB, err := ev.Not(bx)
		if err != nil {
			return nil, err
		}
		return ev.Implies(ax, notB)
	})
	if err != nil {
		return err
	}

	// forall x: not B(x) -> A(x)
	satCover, err := satisfy(x, func(ax *core.Grounding) (*core.Grounding, error) {
		bx, err := ev.Apply(predB, x.Grounding())
		if err != nil {
			return nil, err
		}
		notB, err := ev.Not(bx)
		if err != nil {
			return nil, err
		}
		return ev.Implies(notB, ax)
	})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Axiom", "Satisfaction"})
	t.AppendRow(table.Row{"forall xa: A(xa)", fmt.Sprintf("%.4f", satA)})
	t.AppendRow(table.Row{"forall xb: B(xb)", fmt.Sprintf("%.4f", satB)})
	t.AppendRow(table.Row{"forall x: A(x) -> !B(x)", fmt.Sprintf("%.4f", satExcl)})
	t.AppendRow(table.Row{"forall x: !B(x) -> A(x)", fmt.Sprintf("%.4f", satCover)})
	t.Render()
	return nil
}
