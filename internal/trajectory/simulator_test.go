package trajectory_test

import (
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

func shot(speed, angle, backspin, sidespin float64) trajectory.LaunchData {
	return trajectory.LaunchData{
		BallSpeedMph:        speed,
		VerticalLaunchAngle: angle,
		BackspinRpm:         backspin,
		SidespinRpm:         sidespin,
	}
}

func newSim(c physics.Conditions, opts ...trajectory.Option) *trajectory.Simulator {
	sim, err := trajectory.NewSimulator(c, opts...)
	Expect(err).NotTo(HaveOccurred())
	return sim
}

func carryWith(mutate func(c *physics.Conditions)) float64 {
	c := physics.DefaultConditions()
	mutate(&c)
	return newSim(c).Simulate(shot(150, 12, 2900, 0)).CarryDistance
}

var _ = Describe("Simulator", func() {
	var sim *trajectory.Simulator

	BeforeEach(func() {
		sim = newSim(physics.DefaultConditions())
	})

	DescribeTable("canonical carry distances",
		func(speed, angle, spin, want, tolerance float64) {
			res := sim.Simulate(shot(speed, angle, spin, 0))
			Expect(res.CarryDistance).To(BeNumerically("~", want, want*tolerance))
			Expect(res.Anomaly).To(BeFalse())
		},
		Entry("driver", 167.0, 10.9, 2686.0, 275.0, 0.05),
		Entry("driver, more spin", 160.0, 11.0, 3000.0, 259.0, 0.03),
		Entry("7-iron", 120.0, 16.3, 7097.0, 172.0, 0.05),
		Entry("wedge", 102.0, 24.2, 9304.0, 136.0, 0.05),
	)

	Describe("trajectory shape", func() {
		for _, surface := range []physics.GroundSurface{physics.Fairway, physics.Green, physics.Rough} {
			surface := surface
			It("holds on "+surface.Name, func() {
				res := newSim(physics.DefaultConditions(), trajectory.WithSurface(surface)).
					Simulate(shot(150, 12, 2900, 0))

				Expect(res.Trajectory).NotTo(BeEmpty())
				first := res.Trajectory[0]
				last := res.Trajectory[len(res.Trajectory)-1]

				Expect(first.Time).To(BeZero())
				Expect(first.Position).To(Equal(physics.Vec3{}))
				Expect(first.Phase).To(Equal(physics.PhaseFlight))
				Expect(last.Phase).To(Equal(physics.PhaseStopped))
				Expect(last.Position.Y).To(BeNumerically("~", 0, 1e-9))

				Expect(res.MaxHeight).To(BeNumerically(">", first.Position.Y))
				Expect(res.MaxHeight).To(BeNumerically(">", last.Position.Y))
				Expect(res.MaxHeightTime).To(BeNumerically(">", 0))
				Expect(res.MaxHeightTime).To(BeNumerically("<", res.FlightTime))

				Expect(res.FlightTime).To(BeNumerically(">", 0))
				Expect(res.TotalTime).To(BeNumerically(">", res.FlightTime))
				Expect(res.BounceCount).To(BeNumerically(">=", 1))
				Expect(res.RollDistance).To(BeNumerically(">=", 0))
				Expect(res.TotalDistance).To(Equal(res.CarryDistance + res.RollDistance))
				Expect(res.Surface).To(Equal(surface.Name))
			})
		}

		It("orders phases and times", func() {
			res := sim.Simulate(shot(167, 10.9, 2686, 0))

			prevPhase := physics.PhaseFlight
			prevTime := 0.0
			for _, p := range res.Trajectory {
				Expect(p.Phase).To(BeNumerically(">=", prevPhase))
				Expect(p.Time).To(BeNumerically(">=", prevTime))
				Expect(p.Position.IsFinite()).To(BeTrue())
				prevPhase, prevTime = p.Phase, p.Time
			}
		})

		It("samples flight at the configured cadence", func() {
			res := newSim(physics.DefaultConditions(), trajectory.WithSampleInterval(0.1)).
				Simulate(shot(150, 12, 2900, 0))

			var flight []trajectory.TrajectoryPoint
			for _, p := range res.Trajectory {
				if p.Phase == physics.PhaseFlight {
					flight = append(flight, p)
				}
			}
			Expect(len(flight)).To(BeNumerically(">", 10))
			for i := 1; i < len(flight); i++ {
				Expect(flight[i].Time - flight[i-1].Time).To(BeNumerically("~", 0.1, 0.006))
			}
		})

		It("records one bounce point per impact", func() {
			res := sim.Simulate(shot(167, 10.9, 2686, 0))

			impacts := 0
			for _, p := range res.Trajectory {
				if p.Phase == physics.PhaseBounce && p.Position.Y == 0 {
					impacts++
				}
			}
			Expect(impacts).To(BeNumerically(">=", res.BounceCount))
		})
	})

	Describe("environment", func() {
		It("carries further as elevation rises", func() {
			prev := 0.0
			for _, ft := range []float64{0, 1000, 2500, 5000, 8000} {
				carry := carryWith(func(c *physics.Conditions) { c.ElevationFt = ft })
				Expect(carry).To(BeNumerically(">", prev))
				prev = carry
			}
		})

		It("carries further as temperature rises", func() {
			prev := 0.0
			for _, f := range []float64{40, 55, 70, 85, 100} {
				carry := carryWith(func(c *physics.Conditions) { c.TemperatureF = f })
				Expect(carry).To(BeNumerically(">", prev))
				prev = carry
			}
		})

		It("loses carry into the wind and gains it downwind", func() {
			calm := carryWith(func(c *physics.Conditions) {})
			head := carryWith(func(c *physics.Conditions) { c.WindSpeedMph = 10 })
			tail := carryWith(func(c *physics.Conditions) {
				c.WindSpeedMph = 10
				c.WindDirectionDeg = 180
			})

			Expect(head).To(BeNumerically("<", calm))
			Expect(tail).To(BeNumerically(">", calm))
		})

		It("drifts with a crosswind", func() {
			c := physics.DefaultConditions()
			c.WindSpeedMph = 15
			c.WindDirectionDeg = 90
			res := newSim(c).Simulate(shot(150, 12, 2900, 0))
			Expect(res.OfflineDistance).To(BeNumerically("<", -1))
		})
	})

	Describe("sidespin", func() {
		It("curves right with positive sidespin", func() {
			Expect(sim.Simulate(shot(150, 12, 2900, 500)).OfflineDistance).To(BeNumerically(">", 1))
		})

		It("curves left with negative sidespin", func() {
			Expect(sim.Simulate(shot(150, 12, 2900, -500)).OfflineDistance).To(BeNumerically("<", -1))
		})

		It("flies straight without it", func() {
			Expect(sim.Simulate(shot(150, 12, 2900, 0)).OfflineDistance).To(BeNumerically("~", 0, 1))
		})

		It("starts right with a positive horizontal angle", func() {
			l := shot(150, 12, 2900, 0)
			l.HorizontalLaunchAngle = 3
			Expect(sim.Simulate(l).OfflineDistance).To(BeNumerically(">", 1))
		})
	})

	Describe("end to end", func() {
		It("flies a mid-range shot on the fairway", func() {
			res := sim.Simulate(shot(150, 12, 2900, 0))

			Expect(res.Trajectory[0].Position).To(Equal(physics.Vec3{}))
			Expect(res.CarryDistance).To(BeNumerically(">", 0))
			Expect(res.CarryDistance).To(BeNumerically("<", 400))
			Expect(res.OfflineDistance).To(BeNumerically("~", 0, 1))
			Expect(res.LandingAngle).To(BeNumerically(">", 0))
			Expect(res.LandingSpeed).To(BeNumerically(">", 0))
			Expect(res.LandingSpin).To(BeNumerically("<", 2900))
			Expect(res.Launch).To(Equal(shot(150, 12, 2900, 0)))
			Expect(res.Conditions).To(Equal(physics.DefaultConditions()))
		})

		It("is deterministic", func() {
			a := sim.Simulate(shot(120, 16.3, 7097, 200))
			b := sim.Simulate(shot(120, 16.3, 7097, 200))
			Expect(a).To(Equal(b))
		})

		It("never rolls backwards past the landing point in the result", func() {
			res := newSim(physics.DefaultConditions(), trajectory.WithSurface(physics.Green)).
				Simulate(shot(102, 24.2, 9304, 0))
			Expect(res.RollDistance).To(BeNumerically(">=", 0))
			Expect(res.TotalDistance).To(Equal(res.CarryDistance + res.RollDistance))
		})

		It("agrees across integrators", func() {
			rk4 := sim.Simulate(shot(160, 11, 3000, 0)).CarryDistance
			rk45 := newSim(physics.DefaultConditions(), trajectory.WithIntegrator("rk45")).
				Simulate(shot(160, 11, 3000, 0)).CarryDistance
			Expect(rk45).To(BeNumerically("~", rk4, rk4*0.005))
		})

		It("is safe to share between goroutines", func() {
			want := sim.Simulate(shot(150, 12, 2900, 0))

			var wg sync.WaitGroup
			results := make([]*trajectory.ShotResult, 8)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i] = sim.Simulate(shot(150, 12, 2900, 0))
				}(i)
			}
			wg.Wait()

			for _, r := range results {
				Expect(r).To(Equal(want))
			}
		})
	})

	Describe("degenerate launches", func() {
		DescribeTable("return a single stopped point",
			func(l trajectory.LaunchData) {
				res := sim.Simulate(l)
				Expect(res.Trajectory).To(HaveLen(1))
				Expect(res.Trajectory[0].Phase).To(Equal(physics.PhaseStopped))
				Expect(res.CarryDistance).To(BeZero())
				Expect(res.TotalDistance).To(BeZero())
				Expect(res.BounceCount).To(BeZero())
			},
			Entry("zero speed", shot(0, 12, 2900, 0)),
			Entry("negative speed", shot(-20, 12, 2900, 0)),
			Entry("NaN speed", shot(math.NaN(), 12, 2900, 0)),
			Entry("infinite spin", shot(150, 12, math.Inf(1), 0)),
		)

		It("handles a topped shot along the ground", func() {
			res := sim.Simulate(shot(40, 0, 0, 0))
			Expect(res.Trajectory).NotTo(BeEmpty())
			Expect(res.CarryDistance).To(BeNumerically(">=", 0))
			Expect(res.TotalDistance).To(BeNumerically(">", 0))
			Expect(res.Trajectory[len(res.Trajectory)-1].Phase).To(Equal(physics.PhaseStopped))
		})
	})

	Describe("safety caps", func() {
		expectForcedStop := func(res *trajectory.ShotResult, phase string) {
			last := res.Trajectory[len(res.Trajectory)-1]
			Expect(last.Phase).To(Equal(physics.PhaseStopped))
			Expect(last.Position.Y).To(BeZero())
			Expect(res.Anomaly).To(BeTrue())
			Expect(res.AnomalyReason).To(HavePrefix(phase + ": "))
			Expect(res.AnomalyReason).To(ContainSubstring(dynamo.ErrIterationCap.Error()))
			Expect(res.TotalTime).To(BeNumerically(">=", res.FlightTime))
			Expect(res.TotalDistance).To(Equal(res.CarryDistance + res.RollDistance))
		}

		It("stops a flight that runs past its time cap", func() {
			res := newSim(physics.DefaultConditions(),
				trajectory.WithCaps(1.0, physics.MaxBounces, physics.MaxRollTime)).
				Simulate(shot(167, 10.9, 2686, 0))

			expectForcedStop(res, "flight")
			Expect(res.FlightTime).To(BeNumerically("~", 1.0, 0.01))
			Expect(res.BounceCount).To(BeZero())
			for _, p := range res.Trajectory {
				Expect(p.Phase).NotTo(Equal(physics.PhaseRolling))
			}
		})

		It("stops bouncing at the impact cap", func() {
			res := newSim(physics.DefaultConditions(),
				trajectory.WithCaps(physics.MaxFlightTime, 1, physics.MaxRollTime)).
				Simulate(shot(167, 10.9, 2686, 0))

			expectForcedStop(res, "bounce")
			Expect(res.BounceCount).To(Equal(1))
			Expect(res.CarryDistance).To(BeNumerically(">", 250))
		})

		It("stops a roll that runs past its time cap", func() {
			full := sim.Simulate(shot(167, 10.9, 2686, 0))
			res := newSim(physics.DefaultConditions(),
				trajectory.WithCaps(physics.MaxFlightTime, physics.MaxBounces, 0.05)).
				Simulate(shot(167, 10.9, 2686, 0))

			expectForcedStop(res, "roll")
			Expect(res.CarryDistance).To(Equal(full.CarryDistance))
			Expect(res.RollDistance).To(BeNumerically("<", full.RollDistance))
		})

		It("flags a ball that lands behind the tee", func() {
			res := sim.Simulate(shot(150, 89.9, 2900, 0))
			Expect(res.Anomaly).To(BeTrue())
			Expect(res.AnomalyReason).To(ContainSubstring("behind the tee"))
			Expect(res.CarryDistance).To(BeZero())
			Expect(res.TotalDistance).To(Equal(res.CarryDistance + res.RollDistance))
			Expect(res.Trajectory[len(res.Trajectory)-1].Phase).To(Equal(physics.PhaseStopped))
		})
	})

	Describe("construction", func() {
		It("rejects invalid conditions", func() {
			c := physics.DefaultConditions()
			c.HumidityPct = 150
			_, err := trajectory.NewSimulator(c)
			Expect(errors.Is(err, physics.ErrInvalidConditions)).To(BeTrue())
		})

		It("rejects bad options", func() {
			_, err := trajectory.NewSimulator(physics.DefaultConditions(), trajectory.WithIntegrator("verlet"))
			Expect(errors.Is(err, dynamo.ErrUnknownIntegrator)).To(BeTrue())

			_, err = trajectory.NewSimulator(physics.DefaultConditions(), trajectory.WithTimeStep(-1))
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())

			_, err = trajectory.NewSimulator(physics.DefaultConditions(),
				trajectory.WithTimeStep(0.01), trajectory.WithSampleInterval(0.005))
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())

			_, err = trajectory.NewSimulator(physics.DefaultConditions(),
				trajectory.WithSurface(physics.GroundSurface{Name: "ice"}))
			Expect(errors.Is(err, physics.ErrInvalidSurface)).To(BeTrue())
		})

		It("derives a new simulator for new conditions", func() {
			denver := physics.DefaultConditions()
			denver.ElevationFt = 5280

			high, err := sim.WithConditions(denver)
			Expect(err).NotTo(HaveOccurred())
			Expect(high.Conditions()).To(Equal(denver))
			Expect(high.DensityFactor()).To(BeNumerically("<", 1))
			Expect(sim.Conditions()).To(Equal(physics.DefaultConditions()))
			Expect(sim.DensityFactor()).To(BeNumerically("~", 1, 1e-3))
		})
	})
})
