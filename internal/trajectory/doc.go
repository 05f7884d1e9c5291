// Package trajectory flies a single golf shot from launch to rest.
//
// A [Simulator] holds the environment (air density, wind) and the ground
// surface. [Simulator.Simulate] integrates the airborne ball with a fixed
// step until it lands, resolves each impact with [physics.Bounce], then
// calls [physics.RollStep] until the ball stops:
//
//	sim, err := trajectory.NewSimulator(physics.DefaultConditions())
//	if err != nil {
//	    return err
//	}
//	res := sim.Simulate(trajectory.LaunchData{
//	    BallSpeedMph:        167,
//	    VerticalLaunchAngle: 10.9,
//	    BackspinRpm:         2686,
//	})
//
// Every phase writes sampled points into one [ShotResult.Trajectory].
package trajectory
