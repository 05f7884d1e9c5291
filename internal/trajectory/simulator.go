package trajectory

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/physics"
)

// minLaunchSpeed is the ball speed (m/s) below which a shot is degenerate.
const minLaunchSpeed = 0.01

// Simulator flies shots under one set of conditions. It is immutable after
// construction and safe for concurrent use.
type Simulator struct {
	conditions     physics.Conditions
	density        float64
	densityFactor  float64
	wind           physics.Vec3
	surface        physics.GroundSurface
	logger         *zap.Logger
	integratorName string
	newIntegrator  func() dynamo.Integrator
	dt             float64
	sampleInterval float64

	// per-phase safety caps
	maxFlightTime float64
	maxBounces    int
	maxRollTime   float64
}

func NewSimulator(c physics.Conditions, opts ...Option) (*Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		surface:        physics.Fairway,
		logger:         zap.NewNop(),
		integratorName: integrators.Default,
		newIntegrator:  func() dynamo.Integrator { return integrators.NewRK4() },
		dt:             physics.DefaultTimeStep,
		sampleInterval: physics.DefaultSampleInterval,
		maxFlightTime:  physics.MaxFlightTime,
		maxBounces:     physics.MaxBounces,
		maxRollTime:    physics.MaxRollTime,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.sampleInterval < s.dt {
		return nil, fmt.Errorf("%w: sample interval %g shorter than time step %g", dynamo.ErrInvalidConfig, s.sampleInterval, s.dt)
	}

	s.setConditions(c)
	return s, nil
}

func (s *Simulator) setConditions(c physics.Conditions) {
	s.conditions = c
	s.density = physics.AirDensity(c)
	s.densityFactor = s.density / physics.StandardDensity
	s.wind = physics.WindVector(c)
}

// WithConditions returns a copy of s flying under c.
func (s *Simulator) WithConditions(c physics.Conditions) (*Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cp := *s
	cp.setConditions(c)
	return &cp, nil
}

func (s *Simulator) Conditions() physics.Conditions { return s.conditions }

func (s *Simulator) Surface() physics.GroundSurface { return s.surface }

func (s *Simulator) DensityFactor() float64 { return s.densityFactor }

func (s *Simulator) Wind() physics.Vec3 { return s.wind }

func (s *Simulator) Integrator() string { return s.integratorName }

// Simulate flies one shot from launch to rest.
func (s *Simulator) Simulate(launch LaunchData) *ShotResult {
	res := &ShotResult{
		Launch:     launch,
		Conditions: s.conditions,
		Surface:    s.surface.Name,
	}

	var v0 physics.Vec3
	if launch.finite() {
		v0 = physics.LaunchVelocity(launch.BallSpeedMph, launch.VerticalLaunchAngle, launch.HorizontalLaunchAngle)
	}
	if launch.BallSpeedMph <= 0 || v0.Len() < minLaunchSpeed {
		res.Trajectory = []TrajectoryPoint{{Phase: physics.PhaseStopped}}
		s.logger.Debug("degenerate launch", zap.Float64("ballSpeedMph", launch.BallSpeedMph))
		return res
	}

	sh := &shot{
		sim:        s,
		res:        res,
		integ:      s.newIntegrator(),
		flight:     physics.NewFlight(s.density, s.wind),
		nextSample: s.sampleInterval,
	}
	sh.run(v0, launch.BackspinRpm, launch.SidespinRpm)

	s.logger.Debug("shot simulated",
		zap.Float64("carry", res.CarryDistance),
		zap.Float64("roll", res.RollDistance),
		zap.Float64("offline", res.OfflineDistance),
		zap.Float64("apex", res.MaxHeight),
		zap.Int("bounces", res.BounceCount),
		zap.Int("points", len(res.Trajectory)),
	)
	return res
}

// shot is the mutable state of a single Simulate call.
type shot struct {
	sim        *Simulator
	res        *ShotResult
	integ      dynamo.Integrator
	flight     *physics.Flight
	t          float64
	steps      int
	nextSample float64
}

// run flies the shot. Any safety cap ends it on the spot: the ball is put on
// the ground where it is and recorded as Stopped.
func (sh *shot) run(v0 physics.Vec3, backspin, sidespin float64) {
	s := sh.sim
	res := sh.res

	res.Trajectory = append(res.Trajectory, TrajectoryPoint{Phase: physics.PhaseFlight})

	x := dynamo.State{0, 0, 0, v0.X, v0.Y, v0.Z, backspin, sidespin}
	contact, err := sh.airborne(x, physics.PhaseFlight, true)

	pos, vel := split(contact)
	res.FlightTime = sh.t
	res.CarryDistance = math.Max(0, pos.X*physics.MetersToYard)
	res.LandingSpeed = vel.Len() / physics.MphToMps
	res.LandingAngle = math.Atan2(-vel.Y, vel.HorizontalLen()) * 180 / math.Pi
	res.LandingSpin = contact[physics.IdxBackspin]

	if err != nil {
		sh.flag("flight: " + err.Error())
		sh.finish(sh.rest(pos))
		return
	}
	if pos.X < 0 {
		sh.flag("flight: landed behind the tee")
	}

	b := physics.Bounce(pos, vel, contact[physics.IdxBackspin], res.LandingAngle, s.surface)
	sh.impact(b)

	for b.Velocity.Y > physics.BounceStopVelocity {
		if res.BounceCount >= s.maxBounces {
			err := sh.warn(&dynamo.SimulationError{Step: sh.steps, Time: sh.t, Wrapped: dynamo.ErrIterationCap})
			sh.flag("bounce: " + err.Error())
			sh.finish(sh.rest(b.Position))
			return
		}
		hop := dynamo.State{b.Position.X, 0, b.Position.Z, b.Velocity.X, b.Velocity.Y, b.Velocity.Z, b.Spin, 0}
		contact, err = sh.airborne(hop, physics.PhaseBounce, false)
		pos, vel = split(contact)
		if err != nil {
			sh.flag("bounce: " + err.Error())
			sh.finish(sh.rest(pos))
			return
		}
		b = physics.Bounce(pos, vel, contact[physics.IdxBackspin], 0, s.surface)
		sh.impact(b)
	}

	sh.finish(sh.roll(b.Position, physics.Vec3{X: b.Velocity.X, Z: b.Velocity.Z}, b.Spin))
}

// finish derives the distances from the resting position.
func (sh *shot) finish(final physics.Vec3) {
	res := sh.res
	res.TotalTime = sh.t
	res.OfflineDistance = final.Z * physics.MetersToYard
	res.RollDistance = math.Max(0, final.X*physics.MetersToYard-res.CarryDistance)
	res.TotalDistance = res.CarryDistance + res.RollDistance
}

// airborne integrates until the ball returns to the ground and returns the
// interpolated contact state. When the time cap or an invalid state ends the
// flight early the ball is placed on the ground and the cause returned.
func (sh *shot) airborne(x dynamo.State, phase physics.Phase, track bool) (dynamo.State, error) {
	dt := sh.sim.dt
	start := sh.t

	for {
		next := sh.integ.Step(sh.flight, x, sh.t, dt)
		sh.steps++

		if !next.IsValid() {
			return grounded(x), sh.warn(&dynamo.SimulationError{Step: sh.steps, Time: sh.t, State: x, Wrapped: dynamo.ErrInvalidState})
		}

		if next[physics.IdxY] < 0 {
			f := x[physics.IdxY] / (x[physics.IdxY] - next[physics.IdxY])
			contact := x.Lerp(next, f)
			contact[physics.IdxY] = 0
			sh.t += f * dt
			return contact, nil
		}

		x = next
		sh.t += dt

		if track {
			if h := x[physics.IdxY] * physics.MetersToFeet; h > sh.res.MaxHeight {
				sh.res.MaxHeight = h
				sh.res.MaxHeightTime = sh.t
			}
		}
		sh.sample(physics.Vec3{X: x[physics.IdxX], Y: x[physics.IdxY], Z: x[physics.IdxZ]}, phase)

		if sh.t-start >= sh.sim.maxFlightTime {
			return grounded(x), sh.warn(&dynamo.SimulationError{Step: sh.steps, Time: sh.t, State: x, Wrapped: dynamo.ErrIterationCap})
		}
	}
}

func (sh *shot) impact(b physics.BounceResult) {
	sh.res.BounceCount++
	sh.record(b.Position, physics.PhaseBounce)
}

// roll steps the ball along the ground until it stops and returns the
// resting position.
func (sh *shot) roll(pos, vel physics.Vec3, spin float64) physics.Vec3 {
	st := physics.RollState{Position: pos, Velocity: vel, Spin: spin, Phase: physics.PhaseRolling}
	elapsed := 0.0

	for st.Phase != physics.PhaseStopped {
		if elapsed >= sh.sim.maxRollTime {
			err := sh.warn(&dynamo.SimulationError{Step: sh.steps, Time: sh.t, Wrapped: dynamo.ErrIterationCap})
			sh.flag("roll: " + err.Error())
			break
		}
		st = physics.RollStep(st.Position, st.Velocity, st.Spin, sh.sim.surface, physics.RollTimeStep)
		sh.steps++
		sh.t += physics.RollTimeStep
		elapsed += physics.RollTimeStep

		if st.Phase == physics.PhaseRolling {
			sh.sample(st.Position, physics.PhaseRolling)
		}
	}

	return sh.rest(st.Position)
}

// rest puts the ball on the ground at pos and records the final point.
func (sh *shot) rest(pos physics.Vec3) physics.Vec3 {
	r := physics.Vec3{X: pos.X, Z: pos.Z}
	sh.record(r, physics.PhaseStopped)
	return r
}

func (sh *shot) record(pos physics.Vec3, phase physics.Phase) {
	sh.res.Trajectory = append(sh.res.Trajectory, TrajectoryPoint{
		Time:     sh.t,
		Position: toDisplay(pos),
		Phase:    phase,
	})
}

// sample records a point when the sampling clock has come due.
func (sh *shot) sample(pos physics.Vec3, phase physics.Phase) {
	const eps = 1e-9
	if sh.t+eps < sh.nextSample {
		return
	}
	sh.record(pos, phase)
	interval := sh.sim.sampleInterval
	sh.nextSample = (math.Floor((sh.t+eps)/interval) + 1) * interval
}

func (sh *shot) flag(reason string) {
	if sh.res.Anomaly {
		sh.res.AnomalyReason += "; " + reason
	} else {
		sh.res.Anomaly = true
		sh.res.AnomalyReason = reason
	}
}

func (sh *shot) warn(err *dynamo.SimulationError) error {
	sh.sim.logger.Warn("simulation cut short",
		zap.Error(err),
		zap.Int("step", err.Step),
		zap.Float64("t", err.Time),
		zap.Stringer("launch", sh.res.Launch),
	)
	return err
}

func split(x dynamo.State) (pos, vel physics.Vec3) {
	pos = physics.Vec3{X: x[physics.IdxX], Y: x[physics.IdxY], Z: x[physics.IdxZ]}
	vel = physics.Vec3{X: x[physics.IdxVX], Y: x[physics.IdxVY], Z: x[physics.IdxVZ]}
	return pos, vel
}

func grounded(x dynamo.State) dynamo.State {
	g := x.Clone()
	g[physics.IdxY] = 0
	return g
}
