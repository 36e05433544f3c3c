// Package engine implements the core BFF computational-life simulation:
// a grid of fixed-length byte tapes, paired and executed through a
// Brainfuck-derivative virtual machine, with per-epoch statistics and
// periodic species census. See SPEC_FULL.md for the full contract.
package engine

import "image/color"

// Engine owns all simulation state: the grid, the reusable VM scratch
// buffers, the PRNG stream, and the accumulated statistics/history. No
// state is ever shared mutably with a caller; accessors return copies.
type Engine struct {
	cfg Config

	g   *grid
	vm  *vm
	rng *RNG

	scratch []byte // reusable 2T interaction buffer

	epoch   uint64
	accum   epochAccumulators
	stats   StatsSnapshot
	history []StatsSnapshot
	census  *CensusSnapshot

	totalMutations uint64 // cumulative bytes perturbed by mutate, across all epochs
}

// NewEngine validates cfg and constructs a freshly-reset Engine, or returns
// an error at construction time per §7 — never a partially built Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	e.allocate()
	e.Reset()
	return e, nil
}

func (e *Engine) allocate() {
	e.g = newGrid(e.cfg.GridWidth, e.cfg.GridHeight, e.cfg.TapeSize)
	e.vm = newVM(e.cfg.TapeSize, e.cfg.InstructionCap)
	e.scratch = make([]byte, 2*e.cfg.TapeSize)
}

// Config returns the engine's current configuration by value.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reset re-seeds the PRNG, repopulates the grid per the seeding mode,
// zeroes accumulators, and records the baseline snapshot at epoch 0
// (including an initial census, per the retrieved source's behavior).
func (e *Engine) Reset() {
	e.rng = NewRNG(e.cfg.Seed)
	e.epoch = 0
	e.accum.reset()
	e.seedGrid()

	entropy, zeroDensity := gridMetrics(e.g.data, 0.1)
	census := takeCensus(e.g, e.cfg.GridWidth*e.cfg.GridHeight)
	e.census = &census
	e.stats = StatsSnapshot{
		Epoch:           0,
		Entropy:         entropy,
		ZeroDensity:     zeroDensity,
		Census:          &census,
		LastCensusEpoch: 0,
	}
	e.history = []StatsSnapshot{e.stats.clone()}
}

func (e *Engine) seedGrid() {
	switch e.cfg.SeedingMode {
	case SeedingBalanced:
		e.seedBalanced()
	default:
		e.seedRandom()
	}
}

// seedRandom fills every byte of every tape uniformly at random.
func (e *Engine) seedRandom() {
	for i := range e.g.data {
		e.g.data[i] = e.rng.Byte()
	}
}

// seedBalanced fills each cell with a short random program drawn from the
// opcode alphabet followed by terminators, giving every cell a nonzero
// chance of executing a recognized instruction immediately instead of
// starting from uniform noise.
func (e *Engine) seedBalanced() {
	opcodes := []byte{
		opMoveReadLeft, opMoveReadRight, opMoveWriteLeft, opMoveWriteRight,
		opDec, opInc, opCopyOut, opCopyIn, opLoopOpen, opLoopClose,
	}
	t := e.cfg.TapeSize
	cells := e.cfg.GridWidth * e.cfg.GridHeight
	for c := 0; c < cells; c++ {
		off := c * t
		programLen := t / 4
		if programLen < 1 {
			programLen = 1
		}
		for i := 0; i < programLen; i++ {
			e.g.data[off+i] = opcodes[e.rng.Intn(len(opcodes))]
		}
		for i := programLen; i < t; i++ {
			e.g.data[off+i] = 0
		}
	}
}

// UpdateConfig applies next. If width, height, tape size, or seed changed,
// this performs a hard reset (reallocate + Reset); otherwise the remaining
// fields are swapped in place with no reset and no history clear (§4.9).
func (e *Engine) UpdateConfig(next Config) error {
	if err := next.validate(); err != nil {
		return err
	}
	if e.cfg.needsHardReset(next) {
		e.cfg = next
		e.allocate()
		e.Reset()
		return nil
	}
	e.cfg = next
	e.vm.limit = next.InstructionCap
	return nil
}

// CellAt returns a defensive copy of the tape at (x,y) after toroidal
// normalization.
func (e *Engine) CellAt(x, y int) []byte {
	return e.g.cellAt(x, y)
}

// Grid returns a defensive copy of the full W*H*T raw buffer, in row-major
// cell order, for the external rendering collaborator.
func (e *Engine) Grid() []byte {
	out := make([]byte, len(e.g.data))
	copy(out, e.g.data)
	return out
}

// Stats returns the current epoch's statistics by value.
func (e *Engine) Stats() StatsSnapshot {
	return e.stats.clone()
}

// History returns a copy of the compressed time-series of statistics
// snapshots.
func (e *Engine) History() []StatsSnapshot {
	out := make([]StatsSnapshot, len(e.history))
	for i, s := range e.history {
		out[i] = s.clone()
	}
	return out
}

// Palette returns the fixed 256-entry RGBA color table as a flat
// 1024-byte buffer, per the renderer contract (§6).
func (e *Engine) Palette() [1024]byte {
	return Palette()
}

// PaletteRGBA returns the same table as 256 color.RGBA entries.
func (e *Engine) PaletteRGBA() [256]color.RGBA {
	return PaletteRGBA()
}

// Step runs n interactions in PRNG sequence order, completing epochs and
// updating stats/history/census as their boundaries are crossed.
func (e *Engine) Step(n uint32) {
	for i := uint32(0); i < n; i++ {
		e.interact()
	}
}

// interact samples an ordered pair, runs one VM execution over their
// concatenated tapes, and writes the result back, per §4.4.
func (e *Engine) interact() {
	xa := e.rng.Intn(e.cfg.GridWidth)
	ya := e.rng.Intn(e.cfg.GridHeight)

	xb, yb, aborted := e.sampleSecond(xa, ya)
	if aborted {
		return
	}

	t := e.cfg.TapeSize
	offA, _ := e.g.cellRange(xa, ya)
	offB, _ := e.g.cellRange(xb, yb)
	copy(e.scratch[0:t], e.g.data[offA:offA+t])
	copy(e.scratch[t:2*t], e.g.data[offB:offB+t])

	res := e.vm.execute(e.scratch)

	e.accum.totalComplexity += float64(res.complexity)
	e.accum.totalCopies += float64(res.copies)
	e.accum.totalEffective += float64(res.neighborWrites)
	e.accum.interactions++

	cellsPerEpoch := e.cfg.GridWidth * e.cfg.GridHeight
	if e.accum.interactions >= cellsPerEpoch {
		e.completeEpoch()
	}

	copy(e.g.data[offA:offA+t], e.scratch[0:t])
	copy(e.g.data[offB:offB+t], e.scratch[t:2*t])
}

// sampleSecond draws the second tape's coordinates per the configured
// topology. For spatial topology, a dx=dy=0 draw aborts the interaction
// entirely: no counters change, no epoch tick occurs, and the grid is left
// untouched (§4.4, §8 property 6).
func (e *Engine) sampleSecond(xa, ya int) (xb, yb int, aborted bool) {
	switch e.cfg.Topology {
	case TopologyGlobal:
		for {
			xb = e.rng.Intn(e.cfg.GridWidth)
			yb = e.rng.Intn(e.cfg.GridHeight)
			if xb != xa || yb != ya {
				return xb, yb, false
			}
		}
	default: // spatial
		dx := e.rng.Intn(5) - 2
		dy := e.rng.Intn(5) - 2
		if dx == 0 && dy == 0 {
			return 0, 0, true
		}
		xb, yb = e.g.wrap(xa+dx, ya+dy)
		return xb, yb, false
	}
}

// completeEpoch runs the mutation pass, advances the epoch counter, folds
// the epoch's accumulators into stats, conditionally takes a census, and
// applies the history compression policy (§4.5). It is called strictly
// before the triggering interaction's write-back, and strictly after all
// of that epoch's interactions have been tallied.
func (e *Engine) completeEpoch() {
	e.mutate()
	e.epoch++

	cellsPerEpoch := float64(e.cfg.GridWidth * e.cfg.GridHeight)
	entropy, zeroDensity := gridMetrics(e.g.data, 0.1)

	next := StatsSnapshot{
		Epoch:                e.epoch,
		AvgComplexity:        e.accum.totalComplexity / cellsPerEpoch,
		ReplicationRate:      e.accum.totalCopies / cellsPerEpoch,
		EffectiveReplication: e.accum.totalEffective / cellsPerEpoch,
		Entropy:              entropy,
		ZeroDensity:          zeroDensity,
		Census:               e.census,
		LastCensusEpoch:      e.stats.LastCensusEpoch,
	}

	isCensusEpoch := e.epoch%50 == 0
	if isCensusEpoch {
		c := takeCensus(e.g, e.cfg.GridWidth*e.cfg.GridHeight)
		e.census = &c
		next.Census = &c
		next.LastCensusEpoch = e.epoch
	}

	prev := e.history[len(e.history)-1]
	if historyShouldPush(isCensusEpoch, prev, next) {
		e.history = append(e.history, next.clone())
	}

	e.stats = next
	e.accum.reset()
}

// mutate perturbs k = floor(E) + {0,1} grid bytes, where E is the expected
// byte count under the configured mutation rate, per §4.5. Mutation is the
// only statistics-adjacent pass allowed to draw from the RNG, because it is
// itself part of the physics, not an observation of it.
func (e *Engine) mutate() {
	if e.cfg.MutationRate <= 0 {
		return
	}
	expected := float64(len(e.g.data)) * e.cfg.MutationRate
	k := int(expected)
	frac := expected - float64(k)
	if e.rng.Float64() < frac {
		k++
	}
	for i := 0; i < k; i++ {
		idx := e.rng.Intn(len(e.g.data))
		e.g.data[idx] = e.rng.Byte()
	}
	e.totalMutations += uint64(k)
}

// MutationCount returns the cumulative number of bytes mutate has perturbed
// since the engine was constructed, for verifying the observed mutation
// rate tracks the configured one over many epochs.
func (e *Engine) MutationCount() uint64 {
	return e.totalMutations
}
