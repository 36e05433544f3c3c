// Package app wires an *engine.Engine into a driver: the ebiten-backed GUI
// (app.go, behind the "ebiten" build tag) or a headless CLI loop (bffctl).
// config.go is shared, tag-free CLI plumbing used by both drivers.
package app

import (
	"flag"
	"fmt"

	"github.com/arabold/bff-computational-life/internal/engine"
)

// CLIConfig represents the command-line parameters common to both the GUI
// and headless drivers.
type CLIConfig struct {
	Preset string

	GridWidth      int
	GridHeight     int
	TapeSize       int
	MutationRate   float64
	InstructionCap int
	Topology       string
	SeedingMode    string
	Seed           uint

	Scale         int
	TPS           int
	StepsPerFrame uint

	explicit map[string]bool // flag names the user actually passed, set by Finalize
}

// NewCLIConfig returns a CLIConfig populated from the "classic" preset.
func NewCLIConfig() *CLIConfig {
	base := engine.DefaultConfig()
	return &CLIConfig{
		Preset:         "classic",
		GridWidth:      base.GridWidth,
		GridHeight:     base.GridHeight,
		TapeSize:       base.TapeSize,
		MutationRate:   base.MutationRate,
		InstructionCap: base.InstructionCap,
		Topology:       string(base.Topology),
		SeedingMode:    string(base.SeedingMode),
		Seed:           uint(base.Seed),
		Scale:          4,
		TPS:            60,
		StepsPerFrame:  256,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *CLIConfig) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Preset, "preset", c.Preset, "named configuration preset to start from")
	fs.IntVar(&c.GridWidth, "w", c.GridWidth, "grid width in cells")
	fs.IntVar(&c.GridHeight, "h", c.GridHeight, "grid height in cells")
	fs.IntVar(&c.TapeSize, "tape", c.TapeSize, "tape size in bytes, must be a power of two")
	fs.Float64Var(&c.MutationRate, "mutation", c.MutationRate, "per-byte mutation rate")
	fs.IntVar(&c.InstructionCap, "cap", c.InstructionCap, "VM instruction limit per interaction")
	fs.StringVar(&c.Topology, "topology", c.Topology, "interaction topology: spatial or global")
	fs.StringVar(&c.SeedingMode, "seeding", c.SeedingMode, "initial seeding mode: random or balanced")
	fs.UintVar(&c.Seed, "seed", c.Seed, "PRNG seed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (GUI driver only)")
	fs.UintVar(&c.StepsPerFrame, "steps", c.StepsPerFrame, "interactions advanced per frame (GUI driver only)")
}

// Finalize records which flags the user actually passed on the command line,
// by visiting fs after it has been parsed. Call it once, right after
// fs.Parse, and before EngineConfig: EngineConfig only overlays fields whose
// flag was explicitly set, so an unset field falls through to whatever the
// selected preset produced instead of silently reverting to NewCLIConfig's
// "classic" defaults.
func (c *CLIConfig) Finalize(fs *flag.FlagSet) {
	c.explicit = map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		c.explicit[f.Name] = true
	})
}

// EngineConfig resolves the preset (if any) and overlays onto it only the
// fields whose flag was explicitly set (per Finalize). The only error it
// reports is an unknown preset; it does not validate the resulting Config,
// which engine.NewEngine rejects if invalid.
func (c *CLIConfig) EngineConfig() (engine.Config, error) {
	var cfg engine.Config
	if c.Preset != "" {
		presets := engine.Presets()
		factory, ok := presets[c.Preset]
		if !ok {
			return engine.Config{}, fmt.Errorf("unknown preset %q", c.Preset)
		}
		cfg = factory()
	} else {
		cfg = engine.DefaultConfig()
	}

	if c.explicit["w"] {
		cfg.GridWidth = c.GridWidth
	}
	if c.explicit["h"] {
		cfg.GridHeight = c.GridHeight
	}
	if c.explicit["tape"] {
		cfg.TapeSize = c.TapeSize
	}
	if c.explicit["mutation"] {
		cfg.MutationRate = c.MutationRate
	}
	if c.explicit["cap"] {
		cfg.InstructionCap = c.InstructionCap
	}
	if c.explicit["topology"] {
		cfg.Topology = engine.Topology(c.Topology)
	}
	if c.explicit["seeding"] {
		cfg.SeedingMode = engine.SeedingMode(c.SeedingMode)
	}
	if c.explicit["seed"] {
		cfg.Seed = uint32(c.Seed)
	}

	return cfg, nil
}
