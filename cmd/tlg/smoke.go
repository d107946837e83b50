package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/sbl8/tensorlogic/core"
	"github.com/sbl8/tensorlogic/logic"
)

// eqSim is the closed-form similarity predicate exp(-||a-b||) over the
// last (feature) axis of two aligned arguments.
var eqSim = logic.Func(func(args []*core.Tensor) (*core.Tensor, error) {
	a, b, err := core.BroadcastPair(args[0], args[1])
	if err != nil {
		return nil, err
	}
	fa, fb := a.Floats(), b.Floats()
	d := a.Dim(a.Rank() - 1)
	out := make([]float32, len(fa)/d)
	for i := range out {
		var s float64
		for j := 0; j < d; j++ {
			dv := float64(fa[i*d+j] - fb[i*d+j])
			s += dv * dv
		}
		out[i] = float32(math.Exp(-math.Sqrt(s)))
	}
	return core.FromSlice(out, a.Shape()[:a.Rank()-1]...)
})

// gridPoints lays n 2-D points on a deterministic diagonal sweep.
func gridPoints(label string, n int) (*core.Variable, error) {
	flat := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		flat[2*i] = float32(i) / float32(n)
		flat[2*i+1] = float32(i) * float32(i) / float32(n*n)
	}
	t, err := core.FromSlice(flat, n, 2)
	if err != nil {
		return nil, err
	}
	return core.NewVariable(label, t)
}

func newSmokeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Walk the broadcasting and diagonal machinery on a small scenario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSmoke(cmd, a)
		},
	}
}

func runSmoke(cmd *cobra.Command, a *app) error {
	ev, err := a.evaluator()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	x, err := gridPoints("x", 10)
	if err != nil {
		return err
	}
	y, err := gridPoints("y", 5)
	if err != nil {
		return err
	}
	c1, err := core.FromSlice([]float32{0.1, 0.1}, 2)
	if err != nil {
		return err
	}
	c2, err := core.FromSlice([]float32{0.8, 0.8}, 2)
	if err != nil {
		return err
	}

	eqXC1, err := ev.Apply(eqSim, x.Grounding(), core.Constant(c1))
	if err != nil {
		return err
	}
	eqXC2, err := ev.Apply(eqSim, x.Grounding(), core.Constant(c2))
	if err != nil {
		return err
	}
	eqXY, err := ev.Apply(eqSim, x.Grounding(), y.Grounding())
	if err != nil {
		return err
	}

	and, err := ev.And(eqXC1, eqXC2)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "And(Eq(x,c1), Eq(x,c2))   labels=%v shape=%v\n", and.Labels(), and.Shape())

	or, err := ev.Or(eqXC1, eqXY)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Or(Eq(x,c1), Eq(x,y))     labels=%v shape=%v\n", or.Labels(), or.Shape())

	all, err := ev.Forall([]*core.Variable{x}, eqXY)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Forall x Eq(x,y)          labels=%v shape=%v value(y0)=%.4f\n",
		all.Labels(), all.Shape(), all.Tensor().At(0))

	// Diagonal session: 100 paired individuals collapse the pairwise
	// matrix to its diagonal, then revert.
	p, err := gridPoints("p", 100)
	if err != nil {
		return err
	}
	q, err := gridPoints("q", 100)
	if err != nil {
		return err
	}

	full, err := ev.Apply(eqSim, p.Grounding(), q.Grounding())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Eq(p,q)                   shape=%v\n", full.Shape())

	err = ev.WithDiag(func() error {
		zipped, err := ev.Apply(eqSim, p.Grounding(), q.Grounding())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Eq(p,q) under diag(p,q)   labels=%v shape=%v\n", zipped.Labels(), zipped.Shape())
		return nil
	}, p, q)
	if err != nil {
		return err
	}

	after, err := ev.Apply(eqSim, p.Grounding(), q.Grounding())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Eq(p,q) after revert      shape=%v\n", after.Shape())
	a.log.Debug("smoke complete", "active_groups", len(ev.Diagonals().Active()))
	return nil
}
