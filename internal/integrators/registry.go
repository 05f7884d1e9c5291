package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// Default is the integrator used when no name is configured.
const Default = "rk4"

var registry = map[string]func() dynamo.Integrator{
	"euler": func() dynamo.Integrator { return NewEuler() },
	"rk4":   func() dynamo.Integrator { return NewRK4() },
	"rk45":  func() dynamo.Integrator { return NewRK45() },
}

// Factory returns a constructor for the named integrator. Integrators carry
// scratch state, so callers build a fresh one per run.
func Factory(name string) (func() dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return fn, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
