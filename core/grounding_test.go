package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVariable(t *testing.T) {
	t.Parallel()
	vals, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		label   string
		values  *Tensor
		wantErr bool
	}{
		{"valid", "x", vals, false},
		{"empty label", "", vals, true},
		{"nil values", "x", nil, true},
		{"scalar values", "x", Scalar(1), true},
		{"zero individuals", "x", New(0, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVariable(tt.label, tt.values)
			if tt.wantErr {
				require.True(t, errors.Is(err, ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.label, v.Label())
			require.Equal(t, 3, v.Count())
		})
	}
}

func TestVariableGrounding(t *testing.T) {
	t.Parallel()
	vals, err := FromSlice([]float32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	v, err := NewVariable("x", vals)
	require.NoError(t, err)

	g := v.Grounding()
	require.Equal(t, []string{"x"}, g.Labels())
	require.Equal(t, KindVariable, g.Kind())
	require.Equal(t, []int{2, 2}, g.Shape())
	require.True(t, g.HasLabel("x"))
	require.False(t, g.HasLabel("y"))
}

func TestConstantGrounding(t *testing.T) {
	t.Parallel()
	g := Constant(Scalar(0.7))
	require.Empty(t, g.Labels())
	require.Equal(t, KindConstant, g.Kind())
	require.NoError(t, g.Validate())
}

func TestNewGroundingValidation(t *testing.T) {
	t.Parallel()
	ts, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	g, err := NewGrounding(ts, "x", "y")
	require.NoError(t, err)
	require.Equal(t, KindDerived, g.Kind())

	g, err = NewGrounding(ts)
	require.NoError(t, err)
	require.Equal(t, KindConstant, g.Kind())

	_, err = NewGrounding(ts, "x", "y", "z")
	require.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = NewGrounding(ts, "x", "x")
	require.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = NewGrounding(ts, "x", "")
	require.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestKindString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "constant", KindConstant.String())
	require.Equal(t, "variable", KindVariable.String())
	require.Equal(t, "derived", KindDerived.String())
}
