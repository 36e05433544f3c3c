package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridMetricStrideIsOddAndCoprimeFriendly(t *testing.T) {
	step := gridMetricStride(0.1)
	require.Equal(t, 11, step) // floor(1/0.1)=10, even, bumped to 11
	require.NotZero(t, step%2)
}

func TestShannonEntropyBoundsAndZero(t *testing.T) {
	var uniform [256]int
	for i := range uniform {
		uniform[i] = 1
	}
	h := shannonEntropy(uniform, 256)
	require.InDelta(t, 8.0, h, 1e-9) // maximal entropy: log2(256)=8

	var single [256]int
	single[0] = 100
	require.Equal(t, 0.0, shannonEntropy(single, 100))

	require.Equal(t, 0.0, shannonEntropy([256]int{}, 0))
}

func TestGridMetricsZeroDensity(t *testing.T) {
	data := make([]byte, 1100) // all zero
	entropy, zeroDensity := gridMetrics(data, 0.1)
	require.Equal(t, 0.0, entropy)
	require.Equal(t, 1.0, zeroDensity)
}

func TestGenomeEntropyPureFunction(t *testing.T) {
	g := []byte{1, 1, 1, 1}
	require.Equal(t, 0.0, genomeEntropy(g))

	mixed := []byte{1, 2, 3, 4}
	h := genomeEntropy(mixed)
	require.InDelta(t, 2.0, h, 1e-9) // 4 distinct values, uniform => log2(4)=2
}

func TestHistoryShouldPushPolicy(t *testing.T) {
	prev := StatsSnapshot{Entropy: 3.0, ZeroDensity: 0.2}

	smallDelta := StatsSnapshot{Entropy: 3.05, ZeroDensity: 0.21}
	require.False(t, historyShouldPush(false, prev, smallDelta))

	bigEntropyDelta := StatsSnapshot{Entropy: 3.2, ZeroDensity: 0.2}
	require.True(t, historyShouldPush(false, prev, bigEntropyDelta))

	bigZeroDelta := StatsSnapshot{Entropy: 3.0, ZeroDensity: 0.3}
	require.True(t, historyShouldPush(false, prev, bigZeroDelta))

	require.True(t, historyShouldPush(true, prev, smallDelta))
}
