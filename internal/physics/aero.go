package physics

import (
	"math"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// Flight state layout.
const (
	IdxX = iota
	IdxY
	IdxZ
	IdxVX
	IdxVY
	IdxVZ
	IdxBackspin
	IdxSidespin
	FlightStateDim
)

const crossSection = math.Pi * BallRadius * BallRadius

// SpinRatio is ω r / v for a total spin in rpm and an airspeed in m/s.
func SpinRatio(spinRpm, airspeed float64) float64 {
	if airspeed < MinAirspeed {
		return 0
	}
	return math.Abs(spinRpm) * RpmToRadS * BallRadius / airspeed
}

func DragCoefficient(spinRatio float64) float64 {
	return DragBase + DragSpinSlope*math.Max(0, spinRatio)
}

// LiftCoefficient saturates at LiftMax for high spin ratios.
func LiftCoefficient(spinRatio float64) float64 {
	if spinRatio <= 0 {
		return 0
	}
	return LiftMax * math.Tanh(LiftSlope*spinRatio/LiftMax)
}

// Flight is the airborne ball: gravity, drag against the air-relative
// velocity and a Magnus force along ω × v. Backspin spins about +z, positive
// sidespin about -y so it curves the ball to the right.
type Flight struct {
	Density float64
	Wind    Vec3
}

func NewFlight(density float64, wind Vec3) *Flight {
	return &Flight{Density: density, Wind: wind}
}

func (f *Flight) StateDim() int {
	return FlightStateDim
}

func (f *Flight) Derive(x dynamo.State, t float64) dynamo.State {
	vel := Vec3{x[IdxVX], x[IdxVY], x[IdxVZ]}
	acc := f.Acceleration(vel, x[IdxBackspin], x[IdxSidespin])

	return dynamo.State{
		vel.X, vel.Y, vel.Z,
		acc.X, acc.Y, acc.Z,
		-x[IdxBackspin] / SpinDecayTau,
		-x[IdxSidespin] / SpinDecayTau,
	}
}

func (f *Flight) Acceleration(vel Vec3, backspin, sidespin float64) Vec3 {
	acc := Vec3{Y: -Gravity}

	rel := vel.Sub(f.Wind)
	v := rel.Len()
	if v < MinAirspeed {
		return acc
	}

	s := SpinRatio(math.Hypot(backspin, sidespin), v)
	k := 0.5 * f.Density * crossSection / BallMass * v * v

	acc = acc.Sub(rel.Scale(k * DragCoefficient(s) / v))

	axis := Vec3{Y: -sidespin, Z: backspin}
	magnus := axis.Cross(rel)
	if magnus.Len() > MinCrossLength {
		acc = acc.Add(magnus.Normalize().Scale(k * LiftCoefficient(s)))
	}
	return acc
}

// LaunchVelocity converts mph and launch angles in degrees to m/s.
func LaunchVelocity(speedMph, verticalDeg, horizontalDeg float64) Vec3 {
	v := speedMph * MphToMps
	a := verticalDeg * math.Pi / 180
	h := horizontalDeg * math.Pi / 180
	return Vec3{
		X: v * math.Cos(a) * math.Cos(h),
		Y: v * math.Sin(a),
		Z: v * math.Cos(a) * math.Sin(h),
	}
}
