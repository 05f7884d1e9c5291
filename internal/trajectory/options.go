package trajectory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/physics"
)

type Option func(*Simulator) error

// WithSurface sets the ground the ball lands on. Default is physics.Fairway.
func WithSurface(surface physics.GroundSurface) Option {
	return func(s *Simulator) error {
		if err := surface.Validate(); err != nil {
			return err
		}
		s.surface = surface
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulator) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithIntegrator selects a registered integrator by name.
func WithIntegrator(name string) Option {
	return func(s *Simulator) error {
		fn, err := integrators.Factory(name)
		if err != nil {
			return err
		}
		if name == "" {
			name = integrators.Default
		}
		s.integratorName = name
		s.newIntegrator = fn
		return nil
	}
}

func WithTimeStep(dt float64) Option {
	return func(s *Simulator) error {
		if !(dt > 0) || dt > 0.05 {
			return fmt.Errorf("%w: time step %g", dynamo.ErrInvalidConfig, dt)
		}
		s.dt = dt
		return nil
	}
}

func WithSampleInterval(interval float64) Option {
	return func(s *Simulator) error {
		if !(interval > 0) {
			return fmt.Errorf("%w: sample interval %g", dynamo.ErrInvalidConfig, interval)
		}
		s.sampleInterval = interval
		return nil
	}
}
