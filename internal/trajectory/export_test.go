package trajectory

// WithCaps overrides the per-phase safety caps so tests can trip them.
func WithCaps(flightTime float64, bounces int, rollTime float64) Option {
	return func(s *Simulator) error {
		s.maxFlightTime = flightTime
		s.maxBounces = bounces
		s.maxRollTime = rollTime
		return nil
	}
}
