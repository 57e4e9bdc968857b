package particles

import (
	"fmt"
	"time"
)

// Params tunes the field. Distances are in surface units, rates are per
// nominal tick (dt = 1).
type Params struct {
	DensityDivisor float64 `yaml:"density_divisor"`
	MaxParticles   int     `yaml:"max_particles"`

	InfluenceRadius float64 `yaml:"influence_radius"`
	Attraction      float64 `yaml:"attraction"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Damping         float64 `yaml:"damping"`
	AnchorPull      float64 `yaml:"anchor_pull"`
	InitialSpeed    float64 `yaml:"initial_speed"`

	SpawnProbability float64       `yaml:"spawn_probability"`
	PointerIdle      time.Duration `yaml:"pointer_idle"`

	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
	RadiusGrowth float64 `yaml:"radius_growth"`
	GrowRate     float64 `yaml:"grow_rate"`
	DecayRate    float64 `yaml:"decay_rate"`

	BaseOpacity    float64 `yaml:"base_opacity"`
	OpacityFloor   float64 `yaml:"opacity_floor"`
	OpacityCeiling float64 `yaml:"opacity_ceiling"`
	SpawnOpacity   float64 `yaml:"spawn_opacity"`

	EdgeDistance       float64 `yaml:"edge_distance"`
	ActiveEdgeDistance float64 `yaml:"active_edge_distance"`
	ActiveEdgeBoost    float64 `yaml:"active_edge_boost"`
	EdgeWidth          float64 `yaml:"edge_width"`
}

func DefaultParams() Params {
	return Params{
		DensityDivisor:     15000,
		MaxParticles:       500,
		InfluenceRadius:    100,
		Attraction:         0.2,
		MaxSpeed:           2,
		Damping:            0.995,
		AnchorPull:         0.0005,
		InitialSpeed:       0.5,
		SpawnProbability:   0.15,
		PointerIdle:        100 * time.Millisecond,
		MinRadius:          1,
		MaxRadius:          6,
		RadiusGrowth:       1.8,
		GrowRate:           0.15,
		DecayRate:          0.05,
		BaseOpacity:        0.8,
		OpacityFloor:       0.7,
		OpacityCeiling:     1.0,
		SpawnOpacity:       1.0,
		EdgeDistance:       100,
		ActiveEdgeDistance: 150,
		ActiveEdgeBoost:    1.5,
		EdgeWidth:          0.5,
	}
}

// Validate reports the first parameter outside its usable range.
func (p Params) Validate() error {
	switch {
	case p.DensityDivisor <= 0:
		return fmt.Errorf("density_divisor must be positive, got %g", p.DensityDivisor)
	case p.MaxParticles < 0:
		return fmt.Errorf("max_particles must not be negative, got %d", p.MaxParticles)
	case p.InfluenceRadius <= 0:
		return fmt.Errorf("influence_radius must be positive, got %g", p.InfluenceRadius)
	case p.MaxSpeed <= 0:
		return fmt.Errorf("max_speed must be positive, got %g", p.MaxSpeed)
	case p.Damping <= 0 || p.Damping > 1:
		return fmt.Errorf("damping must be in (0,1], got %g", p.Damping)
	case p.SpawnProbability < 0 || p.SpawnProbability > 1:
		return fmt.Errorf("spawn_probability must be in [0,1], got %g", p.SpawnProbability)
	case p.MinRadius <= 0 || p.MaxRadius < p.MinRadius:
		return fmt.Errorf("radius range [%g,%g] is invalid", p.MinRadius, p.MaxRadius)
	case p.RadiusGrowth < 1:
		return fmt.Errorf("radius_growth must be >= 1, got %g", p.RadiusGrowth)
	case p.OpacityFloor < 0 || p.OpacityCeiling > 1 || p.OpacityFloor > p.OpacityCeiling:
		return fmt.Errorf("opacity range [%g,%g] is invalid", p.OpacityFloor, p.OpacityCeiling)
	case p.BaseOpacity < p.OpacityFloor || p.BaseOpacity > p.OpacityCeiling:
		return fmt.Errorf("base_opacity %g outside [%g,%g]", p.BaseOpacity, p.OpacityFloor, p.OpacityCeiling)
	case p.EdgeDistance <= 0 || p.ActiveEdgeDistance <= 0:
		return fmt.Errorf("edge distances must be positive")
	}
	return nil
}
