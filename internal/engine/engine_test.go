package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	c := DefaultConfig()
	c.GridWidth = 16
	c.GridHeight = 16
	c.TapeSize = 8
	c.InstructionCap = 512
	c.Seed = 42
	c.MutationRate = 0
	c.Topology = TopologySpatial
	return c
}

// S4 — deterministic replay: two independently constructed engines with
// identical (config, seed) produce bit-identical grids after the same
// number of steps.
func TestDeterministicReplay(t *testing.T) {
	cfg := smallConfig()

	e1, err := NewEngine(cfg)
	require.NoError(t, err)
	e2, err := NewEngine(cfg)
	require.NoError(t, err)

	e1.Step(5000)
	e2.Step(5000)

	require.Equal(t, e1.Grid(), e2.Grid())
	require.Equal(t, e1.Stats(), e2.Stats())
}

func TestGridBufferLengthInvariant(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	want := cfg.GridWidth * cfg.GridHeight * cfg.TapeSize
	require.Len(t, e.Grid(), want)

	e.Step(1000)
	require.Len(t, e.Grid(), want)

	e.Reset()
	require.Len(t, e.Grid(), want)
}

func TestByteRangeInvariant(t *testing.T) {
	cfg := smallConfig()
	cfg.MutationRate = 0.05
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	e.Step(3000)
	for _, b := range e.Grid() {
		require.GreaterOrEqual(t, int(b), 0)
		require.LessOrEqual(t, int(b), 255)
	}
}

func TestEpochMonotonicityAcrossSteps(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	last := e.Stats().Epoch
	cellsPerEpoch := uint32(cfg.GridWidth * cfg.GridHeight)
	for i := 0; i < 10; i++ {
		e.Step(cellsPerEpoch)
		cur := e.Stats().Epoch
		require.GreaterOrEqual(t, cur, last)
		last = cur
	}
}

func TestEpochResetsToZero(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	e.Step(uint32(cfg.GridWidth * cfg.GridHeight * 3))
	require.NotZero(t, e.Stats().Epoch)

	e.Reset()
	require.Zero(t, e.Stats().Epoch)
}

func TestEntropyBounds(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	e.Step(uint32(cfg.GridWidth * cfg.GridHeight * 5))
	s := e.Stats()
	require.GreaterOrEqual(t, s.Entropy, 0.0)
	require.LessOrEqual(t, s.Entropy, 8.0)
}

func TestDominanceBoundsAndRankOrdering(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	// Aborted spatial picks (dx=dy=0) do not count toward an epoch, so step
	// past 50 epochs' worth of picks to reach the epoch-50 census.
	e.Step(uint32(cfg.GridWidth * cfg.GridHeight * 53)) // force a census epoch
	census := e.Stats().Census
	require.NotNil(t, census)

	for i, sp := range census.TopSpecies {
		require.GreaterOrEqual(t, sp.Dominance, 0.0)
		require.LessOrEqual(t, sp.Dominance, 1.0)
		require.Equal(t, i+1, sp.Rank)
		if i > 0 {
			require.LessOrEqual(t, census.TopSpecies[i].Count, census.TopSpecies[i-1].Count)
		}
	}
}

func TestResetIsIdempotentForSameSeed(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	first := e.Grid()
	e.Reset()
	require.Equal(t, first, e.Grid())
}

func TestUpdateConfigSoftSwapPreservesGridAndHistory(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	e.Step(uint32(cfg.GridWidth * cfg.GridHeight * 2))
	before := e.Grid()
	beforeHistLen := len(e.History())

	next := cfg
	next.MutationRate = 0.01
	next.InstructionCap = 999
	require.NoError(t, e.UpdateConfig(next))

	require.Equal(t, before, e.Grid())
	require.Equal(t, beforeHistLen, len(e.History()))
	require.Equal(t, 0.01, e.Config().MutationRate)
}

func TestUpdateConfigHardResetOnSeedChange(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	e.Step(uint32(cfg.GridWidth * cfg.GridHeight * 2))

	next := cfg
	next.Seed = cfg.Seed + 1
	require.NoError(t, e.UpdateConfig(next))

	require.Equal(t, uint64(0), e.Stats().Epoch)
	require.Len(t, e.History(), 1)
}

func TestUpdateConfigIdenticalIsNoOp(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	e.Step(uint32(cfg.GridWidth * cfg.GridHeight * 2))
	before := e.Grid()
	require.NoError(t, e.UpdateConfig(cfg))
	require.Equal(t, before, e.Grid())
}

func TestCellAtNormalizesToroidalCoordinates(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	inBounds := e.CellAt(0, 0)
	wrapped := e.CellAt(cfg.GridWidth, cfg.GridHeight)
	require.Equal(t, inBounds, wrapped)

	negWrapped := e.CellAt(-1, -1)
	expected := e.CellAt(cfg.GridWidth-1, cfg.GridHeight-1)
	require.Equal(t, expected, negWrapped)
}

func TestPaletteContract(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	pal := e.Palette()
	require.Len(t, pal, 1024)

	// terminator -> black, alpha always 255
	require.Equal(t, byte(0), pal[0])
	require.Equal(t, byte(0), pal[1])
	require.Equal(t, byte(0), pal[2])
	require.Equal(t, byte(255), pal[3])

	for i := 0; i < 256; i++ {
		require.Equal(t, byte(255), pal[i*4+3], "alpha must always be 255")
	}
}

func TestHistoryAlwaysHasBaseline(t *testing.T) {
	cfg := smallConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	hist := e.History()
	require.NotEmpty(t, hist)
	require.Equal(t, uint64(0), hist[0].Epoch)
}

func TestConstructionRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.TapeSize = 3 // not a power of two
	_, err := NewEngine(cfg)
	require.Error(t, err)
}

// S5-style mutation expectation: with mutation disabled, mutate never draws
// from the RNG at all; with it enabled at a known rate, the cumulative
// number of bytes it perturbs over many epochs should land close to
// W*H*T*mu*epochs, per §4.5.
func TestMutationExpectationWithinTolerance(t *testing.T) {
	base := smallConfig()
	base.GridWidth, base.GridHeight, base.TapeSize = 32, 32, 64
	base.MutationRate = 0

	control, err := NewEngine(base)
	require.NoError(t, err)

	mutated := base
	mutated.MutationRate = 0.01
	treatment, err := NewEngine(mutated)
	require.NoError(t, err)

	cellsPerEpoch := uint32(base.GridWidth * base.GridHeight)
	epochs := 50
	control.Step(cellsPerEpoch * uint32(epochs))
	treatment.Step(cellsPerEpoch * uint32(epochs))

	require.Zero(t, control.MutationCount())

	// Aborted spatial picks do not count toward an epoch, so compare against
	// the epochs that actually completed rather than the step budget.
	bytesPerTape := float64(base.GridWidth * base.GridHeight * base.TapeSize)
	expected := bytesPerTape * mutated.MutationRate * float64(treatment.Stats().Epoch)
	got := float64(treatment.MutationCount())

	// Each completed epoch perturbs floor(E) or floor(E)+1 bytes, with
	// E = W*H*T*mu = 655.36 here, so the count stays within one byte per
	// epoch of the expectation; +/-20% still fails for a mutation rate that
	// is off by a large factor.
	tolerance := 0.2 * expected
	require.InDelta(t, expected, got, tolerance)
}
