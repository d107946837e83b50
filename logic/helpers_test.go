package logic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbl8/tensorlogic/core"
)

// eqProvider is the closed-form similarity predicate exp(-||a-b||)
// over the last (feature) axis of two aligned arguments.
var eqProvider = Func(func(args []*core.Tensor) (*core.Tensor, error) {
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

// truthOf squeezes a single 1-wide feature axis into a truth tensor,
// grounding "the value is the truth".
var truthOf = Func(func(args []*core.Tensor) (*core.Tensor, error) {
	x := args[0]
	vals := x.Floats()
	return core.FromSlice(vals, x.Shape()[:x.Rank()-1]...)
})

// vecVar builds a variable whose individuals are scalars (one feature).
func vecVar(t *testing.T, label string, vals ...float32) *core.Variable {
	t.Helper()
	ts, err := core.FromSlice(vals, len(vals), 1)
	require.NoError(t, err)
	v, err := core.NewVariable(label, ts)
	require.NoError(t, err)
	return v
}

// pointsVar builds a variable of 2-D points laid out row-major.
func pointsVar(t *testing.T, label string, flat []float32) *core.Variable {
	t.Helper()
	ts, err := core.FromSlice(flat, len(flat)/2, 2)
	require.NoError(t, err)
	v, err := core.NewVariable(label, ts)
	require.NoError(t, err)
	return v
}

// truths wraps a truth vector as a grounding over one variable.
func truths(t *testing.T, label string, vals ...float32) *core.Grounding {
	t.Helper()
	ts, err := core.FromSlice(vals, len(vals))
	require.NoError(t, err)
	g, err := core.NewGrounding(ts, label)
	require.NoError(t, err)
	return g
}

// truthMatrix wraps a truth matrix as a grounding over two variables.
func truthMatrix(t *testing.T, la, lb string, rows, cols int, vals ...float32) *core.Grounding {
	t.Helper()
	ts, err := core.FromSlice(vals, rows, cols)
	require.NoError(t, err)
	g, err := core.NewGrounding(ts, la, lb)
	require.NoError(t, err)
	return g
}
