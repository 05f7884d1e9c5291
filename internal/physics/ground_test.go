package physics

import (
	"math"
	"testing"
)

func TestCORBounds(t *testing.T) {
	for _, s := range []GroundSurface{Fairway, Green, Rough} {
		prev := math.Inf(1)
		for v := 0.0; v <= 60; v += 0.5 {
			e := CalculateVelocityDependentCOR(v, s)
			if e < MinCOR || e > MaxCOR {
				t.Fatalf("%s: COR(%g) = %f outside bounds", s.Name, v, e)
			}
			if e > prev+1e-12 {
				t.Fatalf("%s: COR rose from %f to %f at %g m/s", s.Name, prev, e, v)
			}
			prev = e
		}
	}
}

func TestCORSurfaceOrdering(t *testing.T) {
	for _, v := range []float64{0, 2, 5, 10, 15, 19.9, 25, 40} {
		f := CalculateVelocityDependentCOR(v, Fairway)
		g := CalculateVelocityDependentCOR(v, Green)
		r := CalculateVelocityDependentCOR(v, Rough)
		if f < g || g < r {
			t.Errorf("v=%g: fairway %f, green %f, rough %f not ordered", v, f, g, r)
		}
	}
}

func TestCORSpeedSign(t *testing.T) {
	if CalculateVelocityDependentCOR(-8, Fairway) != CalculateVelocityDependentCOR(8, Fairway) {
		t.Error("COR should depend on impact speed magnitude")
	}
	if e := CalculateVelocityDependentCOR(math.NaN(), Fairway); math.IsNaN(e) {
		t.Error("NaN speed produced NaN COR")
	}
}

func TestBounceBackspinBrakes(t *testing.T) {
	vel := Vec3{X: 20, Y: -15, Z: 0}

	low := Bounce(Vec3{}, vel, 2000, 0, Fairway)
	high := Bounce(Vec3{}, vel, 8000, 0, Fairway)

	if high.Velocity.X >= low.Velocity.X {
		t.Errorf("more backspin should leave less speed: %f vs %f", high.Velocity.X, low.Velocity.X)
	}
	if low.Velocity.Y <= 0 {
		t.Errorf("ball should rebound upward, vy = %f", low.Velocity.Y)
	}
}

func TestBounceSteepRetainsLess(t *testing.T) {
	shallow := Bounce(Vec3{}, Vec3{X: 20, Y: -5}, 0, 0, Fairway)
	steep := Bounce(Vec3{}, Vec3{X: 20, Y: -30}, 0, 0, Fairway)

	if steep.Velocity.X/20 >= shallow.Velocity.X/20 {
		t.Errorf("steep landing kept %f, shallow %f", steep.Velocity.X/20, shallow.Velocity.X/20)
	}
}

func TestBounceSpinBack(t *testing.T) {
	r := Bounce(Vec3{X: 120, Y: 0.01, Z: 1}, Vec3{X: 1, Y: -10, Z: 0}, 10000, 0, Green)

	if !r.SpinReversed {
		t.Error("expected spin reversal")
	}
	if r.Velocity.X > 0 || r.Velocity.X < -MaxSpinBackSpeed {
		t.Errorf("spin-back speed %f outside [-%f, 0]", r.Velocity.X, MaxSpinBackSpeed)
	}
	if r.Position != (Vec3{X: 120, Z: 1}) {
		t.Errorf("bounce should put the ball on the ground, got %+v", r.Position)
	}
}

func TestBounceSpinAbsorption(t *testing.T) {
	vel := Vec3{X: 25, Y: -12}
	fw := Bounce(Vec3{}, vel, 4000, 0, Fairway)
	rough := Bounce(Vec3{}, vel, 4000, 0, Rough)

	if rough.Spin >= fw.Spin {
		t.Errorf("rough should absorb more spin: rough %f, fairway %f", rough.Spin, fw.Spin)
	}
	for _, r := range []BounceResult{fw, rough} {
		if r.Spin < 0 || r.Spin >= 4000 {
			t.Errorf("post-bounce spin %f outside [0, 4000)", r.Spin)
		}
	}

	if r := Bounce(Vec3{}, vel, -500, 0, Fairway); r.Spin != 0 {
		t.Errorf("negative backspin should clamp to zero, got %f", r.Spin)
	}
}

func TestBounceExplicitAngle(t *testing.T) {
	vel := Vec3{X: 20, Y: -10}
	derived := Bounce(Vec3{}, vel, 3000, 0, Fairway)
	explicit := Bounce(Vec3{}, vel, 3000, math.Atan2(10, 20)*180/math.Pi, Fairway)

	if math.Abs(derived.Velocity.X-explicit.Velocity.X) > 1e-9 {
		t.Errorf("derived angle %f differs from explicit %f", derived.Velocity.X, explicit.Velocity.X)
	}

	straightDown := Bounce(Vec3{}, Vec3{Y: -10}, 3000, 0, Fairway)
	if !straightDown.Velocity.IsFinite() || straightDown.Velocity.X != 0 || straightDown.Velocity.Z != 0 {
		t.Errorf("vertical impact gave %+v", straightDown.Velocity)
	}
}

func TestRollStepTerminates(t *testing.T) {
	tests := []struct {
		name    string
		vel     Vec3
		spin    float64
		surface GroundSurface
	}{
		{"fairway fast", Vec3{X: 15}, 1500, Fairway},
		{"green high spin", Vec3{X: 3, Z: 1}, 9000, Green},
		{"rough slow", Vec3{X: 0.5}, 0, Rough},
		{"spin only", Vec3{}, 5000, Green},
		{"spin back", Vec3{X: -2}, 6000, Fairway},
		{"near threshold", Vec3{X: StopSpeed}, StopSpin, Green},
	}

	maxSteps := int(MaxRollTime / RollTimeStep)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := RollState{Velocity: tt.vel, Spin: tt.spin, Phase: PhaseRolling}
			steps := 0
			for st.Phase != PhaseStopped && steps < maxSteps {
				st = RollStep(st.Position, st.Velocity, st.Spin, tt.surface, RollTimeStep)
				steps++
			}

			if st.Phase != PhaseStopped {
				t.Fatalf("did not stop within %d steps", maxSteps)
			}
			if st.Velocity != (Vec3{}) || st.Spin != 0 {
				t.Errorf("stopped state not zeroed: %+v", st)
			}
			if !st.Position.IsFinite() {
				t.Errorf("non-finite position %+v", st.Position)
			}
		})
	}
}

func TestRollStepSpinBrake(t *testing.T) {
	vel := Vec3{X: 4}
	plain := RollStep(Vec3{}, vel, 0, Fairway, 0.01)
	braked := RollStep(Vec3{}, vel, 6000, Fairway, 0.01)

	if braked.Velocity.X >= plain.Velocity.X {
		t.Errorf("spin should brake the roll: %f vs %f", braked.Velocity.X, plain.Velocity.X)
	}

	belowThreshold := RollStep(Vec3{}, vel, MinSpinForBrake-1, Fairway, 0.01)
	if math.Abs(belowThreshold.Velocity.X-plain.Velocity.X) > 1e-12 {
		t.Error("spin under the brake threshold should not brake")
	}
}

func TestRollStepAdvancesPosition(t *testing.T) {
	st := RollStep(Vec3{X: 10, Y: 0.2}, Vec3{X: 2, Z: -1}, 0, Green, 0.1)
	if math.Abs(st.Position.X-10.2) > 1e-12 || math.Abs(st.Position.Z+0.1) > 1e-12 || st.Position.Y != 0 {
		t.Errorf("position = %+v", st.Position)
	}

	// Bad dt falls back to the default step.
	st = RollStep(Vec3{}, Vec3{X: 2}, 0, Green, math.NaN())
	if math.Abs(st.Position.X-2*RollTimeStep) > 1e-12 {
		t.Errorf("NaN dt should use default step, moved %f", st.Position.X)
	}
}

func TestRollStepLateSpinBack(t *testing.T) {
	st := RollStep(Vec3{}, Vec3{X: 0.2}, 9000, Green, 0.05)
	if st.Velocity.X >= 0 {
		t.Errorf("slow ball with heavy spin should reverse, vx = %f", st.Velocity.X)
	}
}

func TestEstimateRollWithSpin(t *testing.T) {
	fw := EstimateRollWithSpin(20, 40, 3000, Fairway)
	green := EstimateRollWithSpin(20, 40, 3000, Green)
	rough := EstimateRollWithSpin(20, 40, 3000, Rough)

	if !(green > rough) {
		t.Errorf("green %f should roll further than rough %f", green, rough)
	}
	if fw <= 0 || fw > 100 {
		t.Errorf("fairway estimate %f out of range", fw)
	}

	if d := EstimateRollWithSpin(5, 70, 12000, Fairway); d != 0 {
		t.Errorf("extreme spin and angle should clamp to zero, got %f", d)
	}
	if d := EstimateRollWithSpin(math.NaN(), 40, 3000, Fairway); d != 0 {
		t.Errorf("NaN speed should estimate zero, got %f", d)
	}
}

func TestEstimateRollSurfaceOrder(t *testing.T) {
	for speed := 10.0; speed <= 30; speed += 2.5 {
		for angle := 30.0; angle <= 55; angle += 5 {
			for spin := 3000.0; spin <= 10000; spin += 1000 {
				green := EstimateRollWithSpin(speed, angle, spin, Green)
				fw := EstimateRollWithSpin(speed, angle, spin, Fairway)
				rough := EstimateRollWithSpin(speed, angle, spin, Rough)
				if green < rough || green < fw {
					t.Errorf("v=%g a=%g spin=%g: green %f fairway %f rough %f", speed, angle, spin, green, fw, rough)
				}
				if rough > 0 && !(green > rough) {
					t.Errorf("v=%g a=%g spin=%g: green %f not above rough %f", speed, angle, spin, green, rough)
				}
			}
		}
	}

	// A steep, high-spin landing still rolls out on the green.
	if g := EstimateRollWithSpin(15, 50, 10000, Green); !(g > 0) {
		t.Errorf("green estimate %f at 15 m/s, 50°, 10000 rpm", g)
	}
}

func TestEstimateRollMonotonic(t *testing.T) {
	for _, s := range []GroundSurface{Fairway, Green, Rough} {
		prev := math.Inf(1)
		for spin := 0.0; spin <= 12000; spin += 500 {
			d := EstimateRollWithSpin(25, 35, spin, s)
			if d > prev+1e-9 || d < 0 {
				t.Fatalf("%s: roll %f at %g rpm after %f", s.Name, d, spin, prev)
			}
			prev = d
		}

		prev = math.Inf(1)
		for angle := 0.0; angle <= 90; angle += 5 {
			d := EstimateRollWithSpin(25, angle, 3000, s)
			if d > prev+1e-9 {
				t.Fatalf("%s: roll %f at %g° after %f", s.Name, d, angle, prev)
			}
			prev = d
		}
	}
}
