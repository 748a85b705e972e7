package polynomial

import (
	"math"

	"github.com/pkg/errors"
)

// ErrTooManySegments is returned when appending to a full Motion.
var ErrTooManySegments = errors.Errorf("a motion may not hold more than %d segments", MaxSegments)

// Motion is the time-contiguous sequence of segments describing one DOF. Segment i is valid on
// [segments[i].T0, segments[i+1].T0); the last segment extends to infinity.
// The zero value is an empty motion; storage is fixed so no allocation happens per cycle.
type Motion struct {
	segments [MaxSegments]Polynomial
	count    int
}

// Reset removes all segments.
func (m *Motion) Reset() {
	m.count = 0
}

// Len returns the number of segments.
func (m *Motion) Len() int {
	return m.count
}

// Append adds a segment after the last one. Start times must be non-decreasing.
func (m *Motion) Append(p Polynomial) error {
	if m.count == MaxSegments {
		return ErrTooManySegments
	}
	if m.count > 0 && p.T0 < m.segments[m.count-1].T0 {
		return errors.Errorf("segment starting at %v precedes previous segment at %v", p.T0, m.segments[m.count-1].T0)
	}
	m.segments[m.count] = p
	m.count++
	return nil
}

// Segment returns the i-th segment.
func (m *Motion) Segment(i int) Polynomial {
	return m.segments[i]
}

// Replace overwrites the i-th segment.
func (m *Motion) Replace(i int, p Polynomial) {
	m.segments[i] = p
}

// Segments returns a view of the current segments. The slice aliases the motion's storage.
func (m *Motion) Segments() []Polynomial {
	return m.segments[:m.count]
}

// SegmentEnd returns the end time of the i-th segment, +Inf for the last one.
func (m *Motion) SegmentEnd(i int) float64 {
	if i+1 >= m.count {
		return math.Inf(1)
	}
	return m.segments[i+1].T0
}

// End returns the start time of the final segment, which is when the motion settles.
func (m *Motion) End() float64 {
	if m.count == 0 {
		return 0
	}
	return m.segments[m.count-1].T0
}

// Active returns the index of the first segment whose end time exceeds t.
func (m *Motion) Active(t float64) int {
	for i := 0; i < m.count-1; i++ {
		if m.segments[i+1].T0 > t {
			return i
		}
	}
	return m.count - 1
}

// At evaluates position, velocity and acceleration at t. An empty motion evaluates to zero.
func (m *Motion) At(t float64) (float64, float64, float64) {
	if m.count == 0 {
		return 0, 0, 0
	}
	p := m.segments[m.Active(t)]
	return p.Position(t), p.Velocity(t), p.Acceleration()
}

// Scale replaces the motion with a copy of src whose coefficients are multiplied by factor and
// whose positions are re-based so that src's origin maps onto origin.
func (m *Motion) Scale(src *Motion, factor, srcOrigin, origin float64) {
	m.count = src.count
	for i := 0; i < src.count; i++ {
		s := src.segments[i]
		m.segments[i] = Polynomial{
			A2: factor * s.A2,
			A1: factor * s.A1,
			A0: origin + factor*(s.A0-srcOrigin),
			T0: s.T0,
		}
	}
}

// AddQuadratic adds c(t) = c2*t^2 + c1*t to every segment but the final hold segment, t measured
// from zero. Used to remove small numerical drift from a scaled motion.
func (m *Motion) AddQuadratic(c2, c1 float64) {
	for i := 0; i < m.count-1; i++ {
		s := &m.segments[i]
		t0 := s.T0
		// c(t0+dt) = c2*dt^2 + (2*c2*t0 + c1)*dt + c2*t0^2 + c1*t0
		s.A2 += c2
		s.A1 += 2*c2*t0 + c1
		s.A0 += (c2*t0+c1)*t0
	}
}
