// Package metrics accumulates statistics over a set of simulated shots.
package metrics

import "github.com/san-kum/golfsim/internal/trajectory"

type Metric interface {
	Name() string
	Observe(r *trajectory.ShotResult)
	Value() float64
	Reset()
}

// Field picks one number out of a result.
type Field func(r *trajectory.ShotResult) float64

func Carry(r *trajectory.ShotResult) float64   { return r.CarryDistance }
func Total(r *trajectory.ShotResult) float64   { return r.TotalDistance }
func Roll(r *trajectory.ShotResult) float64    { return r.RollDistance }
func Offline(r *trajectory.ShotResult) float64 { return r.OfflineDistance }
func Apex(r *trajectory.ShotResult) float64    { return r.MaxHeight }

// Standard is the metric set reported for a batch of shots.
func Standard() []Metric {
	return []Metric{
		NewMean("carry", Carry),
		NewMean("total", Total),
		NewMean("apex", Apex),
		NewMax("longest", Total),
		NewSpread("carry_spread", Carry),
		NewSpread("dispersion", Offline),
		NewStability(),
	}
}

// Collect runs every result through the metrics and returns their values by name.
func Collect(results []*trajectory.ShotResult, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, r := range results {
			if r != nil {
				m.Observe(r)
			}
		}
		out[m.Name()] = m.Value()
	}
	return out
}
