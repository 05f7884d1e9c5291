package metrics

import (
	"math"

	"github.com/san-kum/golfsim/internal/trajectory"
)

type Mean struct {
	name    string
	field   Field
	sum     float64
	samples int
}

func NewMean(name string, field Field) *Mean {
	return &Mean{name: name, field: field}
}

func (m *Mean) Name() string {
	return m.name
}

func (m *Mean) Observe(r *trajectory.ShotResult) {
	m.sum += m.field(r)
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

type Max struct {
	name  string
	field Field
	max   float64
	seen  bool
}

func NewMax(name string, field Field) *Max {
	return &Max{name: name, field: field}
}

func (m *Max) Name() string {
	return m.name
}

func (m *Max) Observe(r *trajectory.ShotResult) {
	v := m.field(r)
	if !m.seen || v > m.max {
		m.max = v
		m.seen = true
	}
}

func (m *Max) Value() float64 {
	return m.max
}

func (m *Max) Reset() {
	m.max = 0
	m.seen = false
}

// Spread is the population standard deviation, computed with Welford's update.
type Spread struct {
	name    string
	field   Field
	mean    float64
	m2      float64
	samples int
}

func NewSpread(name string, field Field) *Spread {
	return &Spread{name: name, field: field}
}

func (s *Spread) Name() string {
	return s.name
}

func (s *Spread) Observe(r *trajectory.ShotResult) {
	v := s.field(r)
	s.samples++
	d := v - s.mean
	s.mean += d / float64(s.samples)
	s.m2 += d * (v - s.mean)
}

func (s *Spread) Value() float64 {
	if s.samples < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.samples))
}

func (s *Spread) Reset() {
	s.mean = 0
	s.m2 = 0
	s.samples = 0
}
