package engine

import (
	"fmt"
	"strconv"
)

// Topology selects how a second tape is paired against a sampled first
// tape during an interaction (§4.4).
type Topology string

const (
	TopologySpatial Topology = "spatial"
	TopologyGlobal  Topology = "global"
)

// SeedingMode selects how the grid is populated during reset.
type SeedingMode string

const (
	SeedingRandom   SeedingMode = "random"
	SeedingBalanced SeedingMode = "balanced"
)

// Config is the engine's configuration. Name is cosmetic, used only by the
// preset registry (presets.go); it plays no role in any invariant.
type Config struct {
	Name string

	GridWidth      int
	GridHeight     int
	TapeSize       int
	MutationRate   float64
	InstructionCap int
	Topology       Topology
	SeedingMode    SeedingMode
	Seed           uint32
}

// validate rejects configurations that violate construction invariants
// (§7): T must be a power of two, W*H*T must be nonzero, and the mutation
// rate must lie in [0,1]. It is a total function: it never panics.
func (c Config) validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 || c.TapeSize <= 0 {
		return fmt.Errorf("engine: grid_width, grid_height, and tape_size must be positive, got %dx%dx%d",
			c.GridWidth, c.GridHeight, c.TapeSize)
	}
	if !isPowerOfTwo(c.TapeSize) {
		return fmt.Errorf("engine: tape_size %d is not a power of two", c.TapeSize)
	}
	if c.GridWidth*c.GridHeight*c.TapeSize == 0 {
		return fmt.Errorf("engine: grid_width*grid_height*tape_size must be nonzero")
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("engine: mutation_rate %f out of range [0,1]", c.MutationRate)
	}
	if c.InstructionCap <= 0 {
		return fmt.Errorf("engine: instruction_limit must be positive, got %d", c.InstructionCap)
	}
	if c.Topology != TopologySpatial && c.Topology != TopologyGlobal {
		return fmt.Errorf("engine: unknown topology %q", c.Topology)
	}
	if c.SeedingMode != SeedingRandom && c.SeedingMode != SeedingBalanced {
		return fmt.Errorf("engine: unknown seeding_mode %q", c.SeedingMode)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// needsHardReset reports whether updating to next from c requires a full
// reallocation + reset (§4.9): a change to width, height, tape size, or
// seed. Every other field can be swapped in place.
func (c Config) needsHardReset(next Config) bool {
	return c.GridWidth != next.GridWidth ||
		c.GridHeight != next.GridHeight ||
		c.TapeSize != next.TapeSize ||
		c.Seed != next.Seed
}

// DefaultConfig returns the "classic" parameters from the Computational
// Life paper's default run.
func DefaultConfig() Config {
	return Config{
		Name:           "classic",
		GridWidth:      64,
		GridHeight:     64,
		TapeSize:       64,
		MutationRate:   0.003,
		InstructionCap: 256,
		Topology:       TopologySpatial,
		SeedingMode:    SeedingRandom,
		Seed:           1,
	}
}

// FromMap overlays string key/value pairs (flag-style) onto DefaultConfig,
// ignoring unparseable or absent keys.
func FromMap(kv map[string]string) Config {
	c := DefaultConfig()
	if kv == nil {
		return c
	}
	if v, ok := kv["name"]; ok {
		c.Name = v
	}
	if v, ok := kv["w"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.GridWidth = n
		}
	}
	if v, ok := kv["h"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.GridHeight = n
		}
	}
	if v, ok := kv["tape_size"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TapeSize = n
		}
	}
	if v, ok := kv["mutation_rate"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MutationRate = f
		}
	}
	if v, ok := kv["instruction_limit"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.InstructionCap = n
		}
	}
	if v, ok := kv["topology"]; ok {
		c.Topology = Topology(v)
	}
	if v, ok := kv["seeding_mode"]; ok {
		c.SeedingMode = SeedingMode(v)
	}
	if v, ok := kv["seed"]; ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Seed = uint32(n)
		}
	}
	return c
}
