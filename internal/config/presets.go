package config

import (
	"sort"

	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

// Presets are typical launch monitor numbers for a tour player.
var Presets = map[string]trajectory.LaunchData{
	"driver":           {BallSpeedMph: 167, VerticalLaunchAngle: 10.9, BackspinRpm: 2686},
	"driver-high-spin": {BallSpeedMph: 160, VerticalLaunchAngle: 11.0, BackspinRpm: 3000},
	"7iron":            {BallSpeedMph: 120, VerticalLaunchAngle: 16.3, BackspinRpm: 7097},
	"wedge":            {BallSpeedMph: 102, VerticalLaunchAngle: 24.2, BackspinRpm: 9304},
	"test":             {BallSpeedMph: 150, VerticalLaunchAngle: 12, BackspinRpm: 2900},
	"draw":             {BallSpeedMph: 150, VerticalLaunchAngle: 12, HorizontalLaunchAngle: 2, BackspinRpm: 2700, SidespinRpm: -450},
	"fade":             {BallSpeedMph: 150, VerticalLaunchAngle: 12.5, HorizontalLaunchAngle: -2, BackspinRpm: 3100, SidespinRpm: 450},
}

var ConditionPresets = map[string]physics.Conditions{
	"standard": {TemperatureF: 70, ElevationFt: 0, HumidityPct: 50},
	"denver":   {TemperatureF: 70, ElevationFt: 5280, HumidityPct: 30},
	"hot":      {TemperatureF: 95, ElevationFt: 0, HumidityPct: 60},
	"cold":     {TemperatureF: 45, ElevationFt: 0, HumidityPct: 50},
	"headwind": {TemperatureF: 70, ElevationFt: 0, HumidityPct: 50, WindSpeedMph: 10, WindDirectionDeg: 0},
	"tailwind": {TemperatureF: 70, ElevationFt: 0, HumidityPct: 50, WindSpeedMph: 10, WindDirectionDeg: 180},
}

func GetPreset(name string) *trajectory.LaunchData {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	return sortedKeys(Presets)
}

func GetConditions(name string) *physics.Conditions {
	c, ok := ConditionPresets[name]
	if !ok {
		return nil
	}
	return &c
}

func ListConditions() []string {
	return sortedKeys(ConditionPresets)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
