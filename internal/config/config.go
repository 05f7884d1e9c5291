package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/golfsim/internal/batch"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

// Config is a session file: the conditions and ground for a round of
// shots, and the shots themselves.
type Config struct {
	Conditions     physics.Conditions `yaml:"conditions"`
	Surface        string             `yaml:"surface"`
	Integrator     string             `yaml:"integrator"`
	Dt             float64            `yaml:"dt"`
	SampleInterval float64            `yaml:"sampleInterval"`
	Shots          []ShotConfig       `yaml:"shots"`
}

// ShotConfig names a shot. Launch values may come from a club preset, with
// any value set here taking precedence.
type ShotConfig struct {
	Name                  string   `yaml:"name"`
	Preset                string   `yaml:"preset,omitempty"`
	BallSpeedMph          *float64 `yaml:"ballSpeedMph,omitempty"`
	VerticalLaunchAngle   *float64 `yaml:"verticalLaunchAngle,omitempty"`
	HorizontalLaunchAngle *float64 `yaml:"horizontalLaunchAngle,omitempty"`
	BackspinRpm           *float64 `yaml:"backspinRpm,omitempty"`
	SidespinRpm           *float64 `yaml:"sidespinRpm,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Conditions:     physics.DefaultConditions(),
		Surface:        physics.Fairway.Name,
		Integrator:     integrators.Default,
		Dt:             physics.DefaultTimeStep,
		SampleInterval: physics.DefaultSampleInterval,
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
		return nil, fmt.Errorf("%s: %w", path, err)
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
	if err := c.Conditions.Validate(); err != nil {
		return err
	}
	if _, err := physics.SurfaceByName(c.Surface); err != nil {
		return err
	}
	if _, err := integrators.Factory(c.Integrator); err != nil {
		return err
	}
	for i, s := range c.Shots {
		if _, err := s.Launch(); err != nil {
			return fmt.Errorf("shot %d (%s): %w", i, s.Name, err)
		}
	}
	return nil
}

// Simulator builds a simulator for the session.
func (c *Config) Simulator(logger *zap.Logger) (*trajectory.Simulator, error) {
	surface, err := physics.SurfaceByName(c.Surface)
	if err != nil {
		return nil, err
	}

	opts := []trajectory.Option{
		trajectory.WithSurface(surface),
		trajectory.WithIntegrator(c.Integrator),
		trajectory.WithLogger(logger),
	}
	if c.Dt > 0 {
		opts = append(opts, trajectory.WithTimeStep(c.Dt))
	}
	if c.SampleInterval > 0 {
		opts = append(opts, trajectory.WithSampleInterval(c.SampleInterval))
	}
	return trajectory.NewSimulator(c.Conditions, opts...)
}

// BatchShots resolves every configured shot.
func (c *Config) BatchShots() ([]batch.Shot, error) {
	shots := make([]batch.Shot, 0, len(c.Shots))
	for i, s := range c.Shots {
		launch, err := s.Launch()
		if err != nil {
			return nil, fmt.Errorf("shot %d (%s): %w", i, s.Name, err)
		}
		name := s.Name
		if name == "" {
			name = s.Preset
		}
		shots = append(shots, batch.Shot{Name: name, Launch: launch})
	}
	return shots, nil
}

// Launch resolves the preset and overrides into launch data.
func (s ShotConfig) Launch() (trajectory.LaunchData, error) {
	var l trajectory.LaunchData
	if s.Preset != "" {
		p := GetPreset(s.Preset)
		if p == nil {
			return l, fmt.Errorf("unknown preset %q", s.Preset)
		}
		l = *p
	}

	override(&l.BallSpeedMph, s.BallSpeedMph)
	override(&l.VerticalLaunchAngle, s.VerticalLaunchAngle)
	override(&l.HorizontalLaunchAngle, s.HorizontalLaunchAngle)
	override(&l.BackspinRpm, s.BackspinRpm)
	override(&l.SidespinRpm, s.SidespinRpm)

	if l.BallSpeedMph <= 0 {
		return l, fmt.Errorf("ball speed must be positive, got %g", l.BallSpeedMph)
	}
	return l, nil
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
