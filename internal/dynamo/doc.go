// Package dynamo provides the numerical primitives the ball-flight engine is
// built on.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//
// # Example
//
//	sys := physics.NewFlight(density, wind)
//	integ := integrators.NewRK4()
//	x = integ.Step(sys, x, t, dt)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT thread-safe. Create one
// integrator per goroutine; [System] implementations in this module are
// read-only and may be shared.
package dynamo
