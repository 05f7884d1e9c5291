package physics

import (
	"fmt"
	"math"
)

// Conditions is the environment a shot is played in. Wind direction is the
// bearing the wind blows FROM, measured from the target line: 0 is a
// headwind, 180 a tailwind, 90 comes from the right.
type Conditions struct {
	TemperatureF     float64 `json:"temperatureF" yaml:"temperatureF" mapstructure:"temperatureF"`
	ElevationFt      float64 `json:"elevationFt" yaml:"elevationFt" mapstructure:"elevationFt"`
	HumidityPct      float64 `json:"humidityPct" yaml:"humidityPct" mapstructure:"humidityPct"`
	WindSpeedMph     float64 `json:"windSpeedMph" yaml:"windSpeedMph" mapstructure:"windSpeedMph"`
	WindDirectionDeg float64 `json:"windDirectionDeg" yaml:"windDirectionDeg" mapstructure:"windDirectionDeg"`
}

const (
	DefaultTemperatureF = 70.0
	DefaultHumidityPct  = 50.0

	minElevationFt = -1500.0
	maxElevationFt = 30000.0
	absoluteZeroF  = -459.67
)

func DefaultConditions() Conditions {
	return Conditions{
		TemperatureF: DefaultTemperatureF,
		HumidityPct:  DefaultHumidityPct,
	}
}

func (c Conditions) Validate() error {
	for name, v := range map[string]float64{
		"temperature":    c.TemperatureF,
		"elevation":      c.ElevationFt,
		"humidity":       c.HumidityPct,
		"wind speed":     c.WindSpeedMph,
		"wind direction": c.WindDirectionDeg,
	} {
		if !isFinite(v) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConditions, name)
		}
	}
	if c.TemperatureF <= absoluteZeroF {
		return fmt.Errorf("%w: temperature %g°F", ErrInvalidConditions, c.TemperatureF)
	}
	if c.ElevationFt < minElevationFt || c.ElevationFt > maxElevationFt {
		return fmt.Errorf("%w: elevation %g ft outside [%g, %g]", ErrInvalidConditions, c.ElevationFt, minElevationFt, maxElevationFt)
	}
	if c.HumidityPct < 0 || c.HumidityPct > 100 {
		return fmt.Errorf("%w: humidity %g%%", ErrInvalidConditions, c.HumidityPct)
	}
	if c.WindSpeedMph < 0 {
		return fmt.Errorf("%w: negative wind speed %g", ErrInvalidConditions, c.WindSpeedMph)
	}
	return nil
}

// AirDensity returns kg/m^3 from station pressure at elevation and the
// partial pressures of dry air and water vapour.
func AirDensity(c Conditions) float64 {
	tC := (c.TemperatureF - 32) * 5 / 9
	tK := tC + 273.15
	h := c.ElevationFt * FeetToMeters

	base := math.Max(0, 1-2.25577e-5*h)
	pressure := 101325 * math.Pow(base, 5.25588)

	// Tetens saturation vapour pressure, Pa.
	es := 610.78 * math.Pow(10, 7.5*tC/(tC+237.3))
	rh := math.Min(100, math.Max(0, c.HumidityPct))
	pv := rh / 100 * es
	pd := math.Max(0, pressure-pv)

	return pd/(287.058*tK) + pv/(461.495*tK)
}

// DensityFactor is AirDensity relative to StandardDensity.
func DensityFactor(c Conditions) float64 {
	return AirDensity(c) / StandardDensity
}

// WindVector is the air velocity in m/s.
func WindVector(c Conditions) Vec3 {
	speed := c.WindSpeedMph * MphToMps
	if speed == 0 {
		return Vec3{}
	}
	d := c.WindDirectionDeg * math.Pi / 180
	return Vec3{X: -speed * math.Cos(d), Y: 0, Z: -speed * math.Sin(d)}
}
