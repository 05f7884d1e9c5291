// Package batch runs many independent shots concurrently.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/golfsim/internal/trajectory"
)

// Simulator is anything that flies one shot.
type Simulator interface {
	Simulate(trajectory.LaunchData) *trajectory.ShotResult
}

type Shot struct {
	ID     string                `json:"id" yaml:"id"`
	Name   string                `json:"name" yaml:"name"`
	Launch trajectory.LaunchData `json:"launch" yaml:"launch"`
}

type Result struct {
	Shot   Shot                   `json:"shot"`
	Result *trajectory.ShotResult `json:"result"`
}

// Run simulates every shot on up to workers goroutines and returns results
// in input order. Shots without an ID get a random one. When ctx is
// cancelled the remaining shots are skipped and ctx.Err() is returned.
func Run(ctx context.Context, sim Simulator, shots []Shot, workers int) ([]Result, error) {
	if sim == nil {
		return nil, fmt.Errorf("batch: nil simulator")
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(shots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, s := range shots {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Shot: s, Result: sim.Simulate(s.Launch)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
