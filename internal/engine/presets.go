package engine

// Preset is a named Config constructor. The registry below generalizes the
// teacher repo's "named simulation constructor" registry from dispatching
// swappable CA rule implementations to dispatching named Config presets —
// this domain has exactly one execution rule (the BFF VM), so what varies
// between presets is configuration, not code.
type Preset func() Config

var presets = map[string]Preset{}

// RegisterPreset adds a named Config preset. A zero-value name or nil
// constructor is ignored.
func RegisterPreset(name string, p Preset) {
	if name == "" || p == nil {
		return
	}
	presets[name] = p
}

// Presets exposes the registry of available named presets.
func Presets() map[string]Preset {
	return presets
}

func init() {
	RegisterPreset("classic", DefaultConfig)
	RegisterPreset("global-soup", func() Config {
		c := DefaultConfig()
		c.Name = "global-soup"
		c.Topology = TopologyGlobal
		return c
	})
	RegisterPreset("high-mutation", func() Config {
		c := DefaultConfig()
		c.Name = "high-mutation"
		c.MutationRate = 0.02
		return c
	})
	RegisterPreset("large-tape", func() Config {
		c := DefaultConfig()
		c.Name = "large-tape"
		c.TapeSize = 128
		c.InstructionCap = 1024
		return c
	})
}
