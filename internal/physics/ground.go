package physics

import "math"

// BounceResult is the ball state just after a discrete impact.
type BounceResult struct {
	Position     Vec3
	Velocity     Vec3
	Spin         float64
	SpinReversed bool
}

// RollState is the ball state after one roll step.
type RollState struct {
	Position Vec3
	Velocity Vec3
	Spin     float64
	Phase    Phase
}

// CalculateVelocityDependentCOR uses the Penner turf model scaled by the
// surface and clamped to [MinCOR, MaxCOR].
func CalculateVelocityDependentCOR(impactSpeed float64, surface GroundSurface) float64 {
	v := math.Abs(impactSpeed)
	if math.IsNaN(v) {
		v = 0
	}

	e := PennerHighCOR
	if v < PennerMaxSpeed {
		e = PennerA - PennerB*v + PennerC*v*v
	}
	return clamp(e*surface.CORMultiplier, MinCOR, MaxCOR)
}

// Bounce resolves one impact. A landingAngle <= 0 is derived from the
// velocity vector; backspin above what the turf can absorb pulls the ball
// back along its line and sets SpinReversed.
func Bounce(position, velocity Vec3, backspin, landingAngle float64, surface GroundSurface) BounceResult {
	h := velocity.HorizontalLen()
	if !(landingAngle > 0) {
		landingAngle = 0
		if h > 0 || velocity.Y < 0 {
			landingAngle = math.Atan2(-velocity.Y, h) * 180 / math.Pi
		}
	}
	landingAngle = clamp(landingAngle, 0, 90)
	sinA := math.Sin(landingAngle * math.Pi / 180)

	spin := math.Max(0, finiteOr(backspin, 0))
	cor := CalculateVelocityDependentCOR(velocity.Y, surface)

	friction := math.Min(MaxImpactFriction, ImpactFriction+ImpactFrictionAngle*sinA)
	spinBrake := SpinBrakeGain * (spin / SpinReference) * sinA * surface.SpinBraking

	retained := h*(1-friction) - spinBrake
	reversed := false
	if retained < 0 {
		reversed = true
		retained = math.Max(retained, -MaxSpinBackSpeed)
	}

	var dir Vec3
	if h > 1e-9 {
		dir = Vec3{X: velocity.X / h, Z: velocity.Z / h}
	}

	absorption := surface.SpinAbsorption()
	if reversed {
		absorption = math.Min(MaxSpinAbsorption, absorption+ReversalAbsorption)
	}

	return BounceResult{
		Position: Vec3{X: position.X, Y: 0, Z: position.Z},
		Velocity: Vec3{
			X: dir.X * retained,
			Y: math.Abs(velocity.Y) * cor,
			Z: dir.Z * retained,
		},
		Spin:         spin * (1 - absorption),
		SpinReversed: reversed,
	}
}

// RollStep advances a rolling ball by dt. Rolling resistance always acts;
// above MinSpinForBrake the backspin adds a brake that grows as the ball
// slows, so a slow ball with lots of spin can start back toward the golfer.
func RollStep(position, velocity Vec3, spin float64, surface GroundSurface, dt float64) RollState {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = RollTimeStep
	}
	spin = math.Max(0, finiteOr(spin, 0))

	pos := Vec3{X: position.X + velocity.X*dt, Z: position.Z + velocity.Z*dt}

	speed := velocity.HorizontalLen()
	decel := surface.RollingResistance * Gravity
	reversed := false
	var vel Vec3

	if speed > 1e-9 {
		dir := Vec3{X: velocity.X / speed, Z: velocity.Z / speed}
		a := decel
		if spin > MinSpinForBrake {
			a += RollSpinGain * (spin / SpinReference) * surface.SpinBraking / math.Max(speed, RollSpeedFloor) * Gravity
		}

		next := speed - a*dt
		if next < 0 {
			overshoot := a*dt - speed - decel*dt
			if spin > MinSpinForBrake && overshoot > 0 {
				next = -math.Min(overshoot, MaxRollSpinBack)
				reversed = true
			} else {
				next = 0
			}
		}
		vel = dir.Scale(next)
	}

	newSpeed := vel.HorizontalLen()
	spin *= math.Exp(-dt * (RollSpinDecay + RollSpinDecayLowSpeed/(newSpeed+RollSpeedFloor)))
	if reversed {
		spin *= ReversalSpinRetention
	}

	if newSpeed < StopSpeed && spin < StopSpin {
		return RollState{Position: pos, Phase: PhaseStopped}
	}
	return RollState{Position: pos, Velocity: vel, Spin: spin, Phase: PhaseRolling}
}

// EstimateRollWithSpin is a closed-form roll distance in meters: one impact
// with the Bounce friction model, then constant deceleration from rolling
// resistance plus the post-impact spin brake. The impact brake is scaled by
// the surface's rolling resistance relative to fairway, so a fast green still
// out-rolls rough however hard it grabs spin.
func EstimateRollWithSpin(landingSpeed, landingAngle, backspin float64, surface GroundSurface) float64 {
	speed := math.Abs(finiteOr(landingSpeed, 0))
	angle := clamp(finiteOr(landingAngle, 0), 0, 90) * math.Pi / 180
	spin := math.Max(0, finiteOr(backspin, 0))
	sinA := math.Sin(angle)

	friction := math.Min(MaxImpactFriction, ImpactFriction+ImpactFrictionAngle*sinA)
	grip := surface.SpinBraking * surface.RollingResistance / ReferenceRollingResistance
	out := speed*math.Cos(angle)*(1-friction) - SpinBrakeGain*(spin/SpinReference)*sinA*grip
	if out <= 0 {
		return 0
	}

	spinOut := spin * (1 - surface.SpinAbsorption())
	decel := surface.RollingResistance * Gravity * (1 + RollSpinGain*spinOut/SpinReference*surface.SpinBraking)
	if decel <= 0 {
		return 0
	}
	return out * out / (2 * decel)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func finiteOr(v, fallback float64) float64 {
	if isFinite(v) {
		return v
	}
	return fallback
}
