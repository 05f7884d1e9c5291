package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

var ErrNoCandidate = errors.New("optim: no grid point produced a result")

// Simulator flies one shot.
type Simulator interface {
	Simulate(trajectory.LaunchData) *trajectory.ShotResult
}

// Objective scores a shot; higher is better.
type Objective = metrics.Field

var (
	Carry Objective = metrics.Carry
	Total Objective = metrics.Total
)

func ObjectiveByName(name string) (Objective, error) {
	switch name {
	case "carry":
		return Carry, nil
	case "total":
		return Total, nil
	}
	return nil, fmt.Errorf("optim: unknown objective %q", name)
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Points is the number of grid points Search evaluates.
func (g *GridSearch) Points() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search flies the shot built for every grid point and returns the
// parameters with the highest objective. Points whose launch cannot be built
// and shots that hit a safety cap are skipped; when nothing is left the
// returned ErrNoCandidate says how many of each there were.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (trajectory.LaunchData, error),
	sim Simulator,
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	st := &searchState{build: build, sim: sim, objective: objective, best: math.Inf(-1)}
	if err := g.searchRecursive(ctx, 0, make(map[string]float64), st); err != nil {
		return nil, 0, err
	}
	if st.bestParams == nil {
		if st.buildErr != nil {
			return nil, 0, fmt.Errorf("%w: %d of %d points failed to build, %d hit a safety cap: %w",
				ErrNoCandidate, st.buildFailures, g.Points(), st.anomalies, st.buildErr)
		}
		return nil, 0, fmt.Errorf("%w: %d of %d points hit a safety cap", ErrNoCandidate, st.anomalies, g.Points())
	}

	return st.bestParams, st.best, nil
}

type searchState struct {
	build     func(map[string]float64) (trajectory.LaunchData, error)
	sim       Simulator
	objective Objective

	best       float64
	bestParams map[string]float64

	buildFailures int
	buildErr      error // last one
	anomalies     int
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, st *searchState) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		launch, err := st.build(current)
		if err != nil {
			st.buildFailures++
			st.buildErr = err
			return nil
		}

		result := st.sim.Simulate(launch)
		if result.Anomaly {
			st.anomalies++
			return nil
		}

		val := st.objective(result)
		if val > st.best {
			st.best = val
			st.bestParams = make(map[string]float64)
			for k, v := range current {
				st.bestParams[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, st); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns the values from lo to hi inclusive in increments of step.
func Linspace(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return []float64{lo}
	}
	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
