package trajectory

import (
	"fmt"
	"math"

	"github.com/san-kum/golfsim/internal/physics"
)

// LaunchData is what a launch monitor measures at impact.
type LaunchData struct {
	BallSpeedMph          float64 `json:"ballSpeedMph" yaml:"ballSpeedMph"`
	VerticalLaunchAngle   float64 `json:"verticalLaunchAngle" yaml:"verticalLaunchAngle"`
	HorizontalLaunchAngle float64 `json:"horizontalLaunchAngle" yaml:"horizontalLaunchAngle"`
	BackspinRpm           float64 `json:"backspinRpm" yaml:"backspinRpm"`
	SidespinRpm           float64 `json:"sidespinRpm" yaml:"sidespinRpm"`
}

func (l LaunchData) String() string {
	return fmt.Sprintf("%.1f mph, %.1f°/%.1f°, %.0f/%.0f rpm",
		l.BallSpeedMph, l.VerticalLaunchAngle, l.HorizontalLaunchAngle, l.BackspinRpm, l.SidespinRpm)
}

func (l LaunchData) finite() bool {
	for _, v := range []float64{l.BallSpeedMph, l.VerticalLaunchAngle, l.HorizontalLaunchAngle, l.BackspinRpm, l.SidespinRpm} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TrajectoryPoint positions are in yards downrange (X) and laterally (Z),
// with height (Y) in feet.
type TrajectoryPoint struct {
	Time     float64       `json:"time"`
	Position physics.Vec3  `json:"position"`
	Phase    physics.Phase `json:"phase"`
}

// ShotResult is the outcome of one Simulate call. Distances are yards,
// heights feet, times seconds.
//
// Carry and roll are never negative. A ball that first lands behind the tee
// reports zero carry and is flagged as an anomaly; one that spins back behind
// its first contact reports zero roll.
type ShotResult struct {
	CarryDistance   float64 `json:"carryDistance"`
	TotalDistance   float64 `json:"totalDistance"`
	RollDistance    float64 `json:"rollDistance"`
	OfflineDistance float64 `json:"offlineDistance"`
	MaxHeight       float64 `json:"maxHeight"`
	MaxHeightTime   float64 `json:"maxHeightTime"`
	FlightTime      float64 `json:"flightTime"`
	TotalTime       float64 `json:"totalTime"`
	BounceCount     int     `json:"bounceCount"`

	LandingSpeed float64 `json:"landingSpeed"` // mph
	LandingAngle float64 `json:"landingAngle"` // degrees below horizontal
	LandingSpin  float64 `json:"landingSpin"`  // rpm

	Trajectory []TrajectoryPoint  `json:"trajectory"`
	Launch     LaunchData         `json:"launch"`
	Conditions physics.Conditions `json:"conditions"`
	Surface    string             `json:"surface"`

	Anomaly       bool   `json:"anomaly,omitempty"`
	AnomalyReason string `json:"anomalyReason,omitempty"`
}

func toDisplay(p physics.Vec3) physics.Vec3 {
	return physics.Vec3{
		X: p.X * physics.MetersToYard,
		Y: p.Y * physics.MetersToFeet,
		Z: p.Z * physics.MetersToYard,
	}
}
