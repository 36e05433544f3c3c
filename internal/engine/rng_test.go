package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNGIsDeterministicForASeed(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestRNGProducesValuesInUnitInterval(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	require.NotEqual(t, a.Float64(), b.Float64())
}

func TestRNGSeedResetsStream(t *testing.T) {
	r := NewRNG(9)
	first := r.Float64()
	r.Seed(9)
	require.Equal(t, first, r.Float64())
}
