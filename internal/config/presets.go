package config

import "sort"

type Preset func(*Config)

var Presets = map[string]Preset{
	"calm": func(c *Config) {
		c.Particles.DensityDivisor = 25000
		c.Particles.Attraction = 0.1
		c.Particles.MaxSpeed = 1
		c.Particles.SpawnProbability = 0.05
		c.Waves.Bands = 5
		c.Waves.TimeStep = 0.005
		c.Waves.Chaos = 4
	},
	"dense": func(c *Config) {
		c.Particles.DensityDivisor = 6000
		c.Particles.MaxParticles = 800
		c.Particles.EdgeDistance = 80
		c.Particles.ActiveEdgeDistance = 120
	},
	"minimal": func(c *Config) {
		c.Particles.MaxParticles = 120
		c.Particles.SpawnProbability = 0
		c.Waves.Bands = 3
		c.Scheduler.MaxFPS = 30
	},
	"storm": func(c *Config) {
		c.Particles.Attraction = 0.45
		c.Particles.MaxSpeed = 3.5
		c.Particles.Damping = 0.99
		c.Particles.SpawnProbability = 0.35
		c.Waves.TimeStep = 0.02
		c.Waves.Chaos = 18
		c.Waves.Drift = 0.08
	},
}

// GetPreset returns the default config with the named preset applied, or
// nil for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p(cfg)
	return cfg
}

// Apply overlays a preset on cfg. It reports false for an unknown name.
func Apply(cfg *Config, name string) bool {
	p, ok := Presets[name]
	if ok {
		p(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
