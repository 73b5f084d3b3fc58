package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	DefaultDt         = 0.01
	DefaultG          = 1.0
	DefaultSoftening  = 0.1
	DefaultSpeed      = 500.0
	DefaultTrailLimit = 2000
)

type Config struct {
	Dt         float64      `yaml:"dt"`
	G          float64      `yaml:"g"`
	Softening  float64      `yaml:"softening"`
	Speed      float64      `yaml:"speed"`
	TrailLimit int          `yaml:"trail_limit"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Mass  float64    `yaml:"mass"`
	Pos   [2]float64 `yaml:"pos"`
	Vel   [2]float64 `yaml:"vel"`
	Color string     `yaml:"color"`
}

// DefaultConfig is the classic setup: a heavy central body with a lighter
// body on either side, counter-rotating.
func DefaultConfig() *Config {
	return &Config{
		Dt:         DefaultDt,
		G:          DefaultG,
		Softening:  DefaultSoftening,
		Speed:      DefaultSpeed,
		TrailLimit: DefaultTrailLimit,
		Bodies: []BodyConfig{
			{Mass: 70, Pos: [2]float64{-100, 0}, Vel: [2]float64{0, 0.5}, Color: "red"},
			{Mass: 100, Pos: [2]float64{0, 0}, Vel: [2]float64{0, 0}, Color: "green"},
			{Mass: 30, Pos: [2]float64{100, 0}, Vel: [2]float64{0, -0.5}, Color: "blue"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %f", c.Speed)
	}
	if c.Softening < 0 {
		return fmt.Errorf("softening must be non-negative, got %f", c.Softening)
	}
	if c.TrailLimit < 0 {
		return fmt.Errorf("trail_limit must be non-negative, got %d", c.TrailLimit)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("at least one body required")
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d: mass must be positive, got %f", i, b.Mass)
		}
	}
	return nil
}

// EngineBodies converts the configured bodies into physics entities,
// dropping the rendering metadata.
func (c *Config) EngineBodies() []engine.Body {
	bodies := make([]engine.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = engine.Body{
			Position: vec.Vec2{X: b.Pos[0], Y: b.Pos[1]},
			Velocity: vec.Vec2{X: b.Vel[0], Y: b.Vel[1]},
			Mass:     b.Mass,
		}
	}
	return bodies
}

func (c *Config) Params() engine.Params {
	return engine.Params{
		Dt:         c.Dt,
		G:          c.G,
		Softening:  c.Softening,
		TrailLimit: c.TrailLimit,
	}
}

// Colors returns the per-body color tags, parallel to EngineBodies.
func (c *Config) Colors() []string {
	colors := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		colors[i] = b.Color
	}
	return colors
}
