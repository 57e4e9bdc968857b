package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/particles"
	"github.com/san-kum/ambient/internal/waves"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxFPS   = 60.0
	DefaultWidth    = 1280
	DefaultHeight   = 720
	DefaultLogLevel = "info"
)

var ErrParameterBounds = errors.New("config: parameter out of valid bounds")

type Config struct {
	Theme     string           `yaml:"theme"`
	Seed      int64            `yaml:"seed"`
	LogLevel  string           `yaml:"log_level"`
	Width     int              `yaml:"width"`
	Height    int              `yaml:"height"`
	Scheduler SchedulerConfig  `yaml:"scheduler"`
	Particles particles.Params `yaml:"particles"`
	Waves     waves.Params     `yaml:"waves"`
}

type SchedulerConfig struct {
	MaxFPS float64 `yaml:"max_fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:     string(palette.Light),
		LogLevel:  DefaultLogLevel,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Scheduler: SchedulerConfig{MaxFPS: DefaultMaxFPS},
		Particles: particles.DefaultParams(),
		Waves:     waves.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Mode resolves the configured theme.
func (c *Config) Mode() (palette.Mode, error) { return palette.ParseMode(c.Theme) }

func (c *Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrParameterBounds, c.Width, c.Height)
	}
	if c.Scheduler.MaxFPS < 0 {
		return fmt.Errorf("%w: max_fps %g", ErrParameterBounds, c.Scheduler.MaxFPS)
	}
	if err := c.Particles.Validate(); err != nil {
		return fmt.Errorf("%w: particles: %v", ErrParameterBounds, err)
	}
	if err := c.Waves.Validate(); err != nil {
		return fmt.Errorf("%w: waves: %v", ErrParameterBounds, err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
