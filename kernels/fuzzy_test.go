package kernels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotStd(t *testing.T) {
	t.Parallel()
	require.Equal(t, float32(1), NotStd(0))
	require.Equal(t, float32(0), NotStd(1))
	require.InDelta(t, 0.7, NotStd(0.3), 1e-6)
}

func TestBinaryBoundaries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		op   Binary
		a, b float32
		want float32
	}{
		{"and_prod identity", AndProd, 1, 0.4, 0.4},
		{"and_prod annihilator", AndProd, 0, 0.9, 0},
		{"or_prob_sum identity", OrProbSum, 0, 0.4, 0.4},
		{"or_prob_sum annihilator", OrProbSum, 1, 0.4, 1},
		{"implies_reichenbach false antecedent", ImpliesReichenbach, 0, 0.2, 1},
		{"implies_reichenbach true to true", ImpliesReichenbach, 1, 1, 1},
		{"implies_reichenbach true to false", ImpliesReichenbach, 1, 0, 0},
		{"implies_kd", ImpliesKleeneDienes, 0.8, 0.5, 0.5},
		{"and_luk saturates", AndLuk, 0.4, 0.5, 0},
		{"and_luk interior", AndLuk, 0.9, 0.8, 0.7},
		{"or_luk caps", OrLuk, 0.7, 0.8, 1},
		{"or_luk interior", OrLuk, 0.2, 0.3, 0.5},
		{"implies_luk", ImpliesLuk, 0.9, 0.4, 0.5},
		{"and_min", AndMin, 0.3, 0.8, 0.3},
		{"or_max", OrMax, 0.3, 0.8, 0.8},
		{"implies_goedel holds", ImpliesGoedel, 0.3, 0.8, 1},
		{"implies_goedel fails", ImpliesGoedel, 0.8, 0.3, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, tt.op(tt.a, tt.b), 1e-6)
		})
	}
}

func TestCommutativity(t *testing.T) {
	t.Parallel()
	pairs := [][2]float32{{0.1, 0.9}, {0.5, 0.5}, {0, 1}, {0.33, 0.77}}
	for _, op := range []Binary{AndProd, OrProbSum, AndLuk, OrLuk, AndMin, OrMax} {
		for _, pr := range pairs {
			require.InDelta(t, op(pr[0], pr[1]), op(pr[1], pr[0]), 1e-6)
		}
	}
}

func TestFamiliesComplete(t *testing.T) {
	t.Parallel()
	for name, ops := range Families {
		require.Equal(t, name, ops.Name)
		require.NotNil(t, ops.Not, name)
		require.NotNil(t, ops.And, name)
		require.NotNil(t, ops.Or, name)
		require.NotNil(t, ops.Implies, name)
	}
	require.Len(t, Families, 3)
}

func TestCatalogLookup(t *testing.T) {
	t.Parallel()
	require.NotNil(t, UnaryCatalog["not_std"])
	require.NotNil(t, BinaryCatalog["and_prod"])
	require.NotNil(t, BinaryCatalog["implies_goedel"])
	require.Nil(t, BinaryCatalog["nand"])
}

func TestIsTrue(t *testing.T) {
	t.Parallel()
	require.True(t, IsTrue(1))
	require.True(t, IsTrue(0.75))
	require.False(t, IsTrue(0.5))
	require.False(t, IsTrue(0))
}
