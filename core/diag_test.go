package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustVar(t *testing.T, label string, n int) *Variable {
	t.Helper()
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i)
	}
	vals, err := FromSlice(data, n, 1)
	require.NoError(t, err)
	v, err := NewVariable(label, vals)
	require.NoError(t, err)
	return v
}

func TestDiagSetAdd(t *testing.T) {
	t.Parallel()
	x := mustVar(t, "x", 4)
	y := mustVar(t, "y", 4)
	_ = mustVar(t, "z", 5)

	ds := NewDiagSet()

	g, err := ds.Add(x, y)
	require.NoError(t, err)
	require.Equal(t, "diag(x,y)", g.Label())
	require.Equal(t, []string{"x", "y"}, g.Members())
	require.Equal(t, 4, g.Count())

	require.Same(t, g, ds.Lookup("x"))
	require.Same(t, g, ds.Lookup("y"))
	require.Same(t, g, ds.Lookup("diag(x,y)"))
	require.Nil(t, ds.Lookup("z"))
}

func TestDiagSetAddErrors(t *testing.T) {
	t.Parallel()
	x := mustVar(t, "x", 4)
	y := mustVar(t, "y", 4)
	z := mustVar(t, "z", 5)

	ds := NewDiagSet()

	_, err := ds.Add(x)
	require.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = ds.Add(x, z)
	require.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = ds.Add(x, x)
	require.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = ds.Add(x, y)
	require.NoError(t, err)

	// x is already a member of an active group.
	w := mustVar(t, "w", 4)
	_, err = ds.Add(x, w)
	require.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestDiagSetRemove(t *testing.T) {
	t.Parallel()
	x := mustVar(t, "x", 3)
	y := mustVar(t, "y", 3)

	ds := NewDiagSet()
	g, err := ds.Add(x, y)
	require.NoError(t, err)
	require.Len(t, ds.Active(), 1)

	ds.Remove(g)
	require.Empty(t, ds.Active())
	require.Nil(t, ds.Lookup("x"))

	// Removing again is a no-op.
	ds.Remove(g)
	require.Empty(t, ds.Active())

	// Members can be regrouped after removal.
	_, err = ds.Add(x, y)
	require.NoError(t, err)
}

func TestDiagSetNilLookup(t *testing.T) {
	t.Parallel()
	var ds *DiagSet
	require.Nil(t, ds.Lookup("x"))
	require.Nil(t, ds.Active())
}
