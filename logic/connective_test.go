package logic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbl8/tensorlogic/core"
	"github.com/sbl8/tensorlogic/kernels"
)

func TestNotPreservesLabels(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.2, 0.5, 1)

	r, err := ev.Not(a)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, r.Labels())
	require.Equal(t, core.KindDerived, r.Kind())
	want, _ := core.FromSlice([]float32{0.8, 0.5, 0}, 3)
	require.True(t, r.Tensor().AllClose(want, 1e-6))
}

func TestAndCrossProduct(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.2, 0.5)
	b := truths(t, "y", 0.1, 0.3, 0.7)

	r, err := ev.And(a, b)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, r.Labels())
	require.Equal(t, []int{2, 3}, r.Shape())
	want, _ := core.FromSlice([]float32{0.02, 0.06, 0.14, 0.05, 0.15, 0.35}, 2, 3)
	require.True(t, r.Tensor().AllClose(want, 1e-6))
}

func TestAndDoesNotAliasInputs(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.2, 0.5)
	b := truths(t, "y", 0.1, 0.3)

	r, err := ev.And(a, b)
	require.NoError(t, err)
	r.Tensor().Set(9, 0, 0)
	require.Equal(t, float32(0.2), a.Tensor().At(0))
	require.Equal(t, float32(0.1), b.Tensor().At(0))
}

func TestOrMergesOverlappingLabels(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.1, 0.2)
	bxy := truthMatrix(t, "x", "y", 2, 3,
		0.5, 0.6, 0.7,
		0.1, 0.2, 0.3)

	r, err := ev.Or(a, bxy)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, r.Labels())
	require.Equal(t, []int{2, 3}, r.Shape())
	// Probabilistic sum at (1, 2): 0.2 + 0.3 - 0.06.
	require.InDelta(t, 0.44, float64(r.Tensor().At(1, 2)), 1e-6)
}

func TestImpliesFamilies(t *testing.T) {
	t.Parallel()
	a := truths(t, "x", 0.9)
	b := truths(t, "x", 0.4)

	tests := []struct {
		name string
		ops  kernels.OpSet
		want float64
	}{
		{"product", kernels.Product, 1 - 0.9 + 0.9*0.4},
		{"lukasiewicz", kernels.Lukasiewicz, 0.5},
		{"goedel", kernels.Goedel, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := New(WithOperators(tt.ops))
			r, err := ev.Implies(a, b)
			require.NoError(t, err)
			require.InDelta(t, tt.want, float64(r.Tensor().At(0)), 1e-6)
		})
	}
}

func TestCombineBinaryCustomOp(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.3, 0.9)
	b := truths(t, "x", 0.5, 0.5)

	xor := func(p, q float32) float32 { return p + q - 2*p*q }
	r, err := ev.CombineBinary(xor, a, b)
	require.NoError(t, err)
	require.InDelta(t, 0.5, float64(r.Tensor().At(0)), 1e-6)
	require.InDelta(t, 0.5, float64(r.Tensor().At(1)), 1e-6)
}

func TestConnectiveWithConstant(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.2, 0.6)
	c := core.Constant(core.Scalar(0.5))

	r, err := ev.And(a, c)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, r.Labels())
	want, _ := core.FromSlice([]float32{0.1, 0.3}, 2)
	require.True(t, r.Tensor().AllClose(want, 1e-6))
}

func TestConnectiveUnderDiagSession(t *testing.T) {
	t.Parallel()
	ev := New()
	x := vecVar(t, "x", 1, 2, 3)
	l := vecVar(t, "l", 1, 2, 3)
	gx := truths(t, "x", 0.1, 0.2, 0.3)
	gl := truths(t, "l", 0.4, 0.5, 0.6)

	grp, err := ev.Diag(x, l)
	require.NoError(t, err)
	r, err := ev.And(gx, gl)
	require.NoError(t, err)
	require.Equal(t, []string{"diag(x,l)"}, r.Labels())
	require.Equal(t, []int{3}, r.Shape())

	ev.Undiag(grp)
	r, err = ev.And(gx, gl)
	require.NoError(t, err)
	require.Equal(t, []int{3, 3}, r.Shape())
}

func TestConnectiveShapeConflict(t *testing.T) {
	t.Parallel()
	ev := New()
	a := truths(t, "x", 0.2, 0.6)
	b := truths(t, "x", 0.2, 0.6, 0.7)

	_, err := ev.And(a, b)
	require.ErrorIs(t, err, core.ErrShapeMismatch)
}
