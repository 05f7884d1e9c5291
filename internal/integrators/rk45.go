package integrators

import (
	"math"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// DefaultTolerance is the relative local error RK45 accepts per sub-step.
const DefaultTolerance = 1e-6

// maxSubsteps bounds the sub-steps spent on one Step call.
const maxSubsteps = 1000

// RK45 is the embedded Dormand-Prince 5(4) pair. Step covers the requested
// dt with as many sub-steps as the error estimate asks for, so callers keep
// their fixed step while stiff stretches of a trajectory are refined.
type RK45 struct {
	Tol float64

	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		Tol:      DefaultTolerance,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	end := t + dt
	h := dt
	for i := 0; i < maxSubsteps && end-t > 1e-12*math.Abs(dt); i++ {
		h = math.Min(h, end-t)
		next, hNext, ok := r.StepAdaptive(sys, x, t, h, r.Tol)
		if ok || i == maxSubsteps-1 {
			x = next
			t += h
		}
		h = hNext
	}
	return x
}

// StepAdaptive takes one Dormand-Prince step of size dt. It returns the
// fifth-order state, the step size the error estimate suggests next and
// whether the step met tol. A non-finite estimate is accepted as is and left
// for the caller's state check.
func (r *RK45) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, bool) {
	n := len(x)
	stage := func(coef func(i int) float64) dynamo.State {
		s := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			s[i] = x[i] + dt*coef(i)
		}
		return s
	}

	k1 := sys.Derive(x, t)
	k2 := sys.Derive(stage(func(i int) float64 { return b21 * k1[i] }), t+a2*dt)
	k3 := sys.Derive(stage(func(i int) float64 { return b31*k1[i] + b32*k2[i] }), t+a3*dt)
	k4 := sys.Derive(stage(func(i int) float64 { return b41*k1[i] + b42*k2[i] + b43*k3[i] }), t+a4*dt)
	k5 := sys.Derive(stage(func(i int) float64 {
		return b51*k1[i] + b52*k2[i] + b53*k3[i] + b54*k4[i]
	}), t+a5*dt)
	k6 := sys.Derive(stage(func(i int) float64 {
		return b61*k1[i] + b62*k2[i] + b63*k3[i] + b64*k4[i] + b65*k5[i]
	}), t+dt)

	xNew := stage(func(i int) float64 {
		return c1*k1[i] + c3*k3[i] + c4*k4[i] + c5*k5[i] + c6*k6[i]
	})
	k7 := sys.Derive(xNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(x[i]) + math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	ratio := errMax / tol
	switch {
	case math.IsNaN(ratio) || math.IsInf(ratio, 0):
		return xNew, dt, true
	case ratio > 1:
		return xNew, dt * math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25)), false
	case ratio > 0:
		return xNew, dt * math.Min(r.maxScale, r.safety*math.Pow(ratio, -0.2)), true
	default:
		return xNew, dt * r.maxScale, true
	}
}
