// Package physics models a golf ball from launch to rest.
//
// The airborne ball is a [dynamo.System]:
//
//   - [Flight]: gravity, spin-dependent drag and Magnus lift, decaying spin
//   - [Conditions]: temperature, elevation, humidity and wind, reduced to an
//     [AirDensity] and a [WindVector]
//
// Ground interaction is a set of pure functions over a position, velocity,
// spin and a [GroundSurface]:
//
//   - [CalculateVelocityDependentCOR]: Penner-style restitution
//   - [Bounce]: one discrete impact, including spin-back
//   - [RollStep]: one step of continuous rolling
//   - [EstimateRollWithSpin]: closed-form roll distance
//
// # Units
//
// Everything inside the package is SI (m, m/s, s) with spin in rpm and
// angles in degrees. x points downrange, y up and z to the right of the
// target line.
package physics
