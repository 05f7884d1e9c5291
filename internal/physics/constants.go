package physics

import (
	"fmt"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// Unit conversions.
const (
	MphToMps     = 0.44704
	MetersToYard = 1.09361
	MetersToFeet = 3.28084
	FeetToMeters = 0.3048
	RpmToRadS    = 2 * 3.141592653589793 / 60
)

// Ball and environment.
const (
	Gravity    = 9.80665
	BallMass   = 0.04593  // kg
	BallRadius = 0.021335 // m

	// StandardDensity is air density at 70°F, sea level, 50% humidity.
	StandardDensity = 1.19394
)

// Aerodynamic calibration.
const (
	DragBase       = 0.24
	DragSpinSlope  = 0.20
	LiftSlope      = 3.0
	LiftMax        = 0.28
	SpinDecayTau   = 25.0 // s
	MinAirspeed    = 1e-9 // m/s
	MinCrossLength = 1e-12
)

// Restitution.
const (
	MinCOR = 0.05
	MaxCOR = 0.65

	PennerA        = 0.510
	PennerB        = 0.0375
	PennerC        = 0.000903
	PennerMaxSpeed = 20.0 // m/s
	PennerHighCOR  = 0.12
)

// Impact friction and spin.
const (
	ImpactFriction      = 0.12
	ImpactFrictionAngle = 0.45
	MaxImpactFriction   = 0.95

	SpinBrakeGain    = 7.0 // m/s at SpinReference rpm and vertical impact
	SpinReference    = 10000.0
	MaxSpinBackSpeed = 2.5 // m/s

	SpinAbsorptionBase          = 0.25
	SpinAbsorptionPerResistance = 1.2
	ReversalAbsorption          = 0.3
	MaxSpinAbsorption           = 0.95
)

// Rolling.
const (
	RollSpinGain          = 1.2
	MinSpinForBrake       = 300.0 // rpm
	RollSpeedFloor        = 0.5   // m/s
	RollSpinDecay         = 0.8   // 1/s
	RollSpinDecayLowSpeed = 1.5   // m/s^2 scale
	StopSpeed             = 0.05  // m/s
	StopSpin              = 50.0  // rpm
	ReversalSpinRetention = 0.35
	MaxRollSpinBack       = 2.0 // m/s
	RollTimeStep          = 0.005

	// ReferenceRollingResistance is the fairway's; the estimator scales its
	// impact brake by a surface's resistance relative to it.
	ReferenceRollingResistance = 0.16
)

// Simulation defaults and safety caps.
const (
	DefaultTimeStep       = 0.005
	DefaultSampleInterval = 0.05
	BounceStopVelocity    = 0.5 // m/s
	MaxFlightTime         = 30.0
	MaxBounces            = 12
	MaxRollTime           = 120.0
)

type limits struct {
	minCOR, maxCOR float64
	maxFriction    float64
	maxAbsorption  float64
	stopSpeed      float64
	stopSpin       float64
	timeStep       float64
	sampleInterval float64
}

var defaultLimits = limits{
	minCOR:         MinCOR,
	maxCOR:         MaxCOR,
	maxFriction:    MaxImpactFriction,
	maxAbsorption:  MaxSpinAbsorption,
	stopSpeed:      StopSpeed,
	stopSpin:       StopSpin,
	timeStep:       DefaultTimeStep,
	sampleInterval: DefaultSampleInterval,
}

func init() {
	if err := defaultLimits.validate(); err != nil {
		panic(err)
	}
}

func (l limits) validate() error {
	if l.minCOR < 0 || l.maxCOR > 1 || l.minCOR >= l.maxCOR {
		return fmt.Errorf("%w: COR bounds [%g, %g]", dynamo.ErrInvalidConfig, l.minCOR, l.maxCOR)
	}
	if l.maxFriction <= 0 || l.maxFriction > 1 {
		return fmt.Errorf("%w: impact friction cap %g", dynamo.ErrInvalidConfig, l.maxFriction)
	}
	if l.maxAbsorption <= 0 || l.maxAbsorption >= 1 {
		return fmt.Errorf("%w: spin absorption cap %g", dynamo.ErrInvalidConfig, l.maxAbsorption)
	}
	if l.stopSpeed <= 0 || l.stopSpin <= 0 {
		return fmt.Errorf("%w: stop thresholds must be positive", dynamo.ErrInvalidConfig)
	}
	if l.timeStep <= 0 || l.sampleInterval < l.timeStep {
		return fmt.Errorf("%w: sample interval %g shorter than time step %g", dynamo.ErrInvalidConfig, l.sampleInterval, l.timeStep)
	}
	return nil
}
