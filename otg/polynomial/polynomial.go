// Package polynomial contains the piecewise quadratic segments a trajectory is built from.
package polynomial

import "math"

// MaxSegments is the largest number of segments a single DOF's motion may consist of,
// including the final hold segment.
const MaxSegments = 8

// Polynomial is one segment of motion with constant acceleration, starting at T0:
//
//	position(t)     = A2*(t-T0)^2 + A1*(t-T0) + A0
//	velocity(t)     = 2*A2*(t-T0) + A1
//	acceleration(t) = 2*A2
type Polynomial struct {
	A2 float64
	A1 float64
	A0 float64
	T0 float64
}

// Position evaluates the segment's position at t.
func (p Polynomial) Position(t float64) float64 {
	dt := t - p.T0
	return (p.A2*dt+p.A1)*dt + p.A0
}

// Velocity evaluates the segment's velocity at t.
func (p Polynomial) Velocity(t float64) float64 {
	return 2*p.A2*(t-p.T0) + p.A1
}

// Acceleration returns the segment's (constant) acceleration.
func (p Polynomial) Acceleration() float64 {
	return 2 * p.A2
}

// VelocityRoot returns the time at which the velocity of this segment is zero. The boolean is
// false when the velocity is constant and therefore has no isolated root.
func (p Polynomial) VelocityRoot() (float64, bool) {
	if p.A2 == 0 {
		return 0, false
	}
	return p.T0 - p.A1/(2*p.A2), true
}

// Negate returns the segment mirrored about zero.
func (p Polynomial) Negate() Polynomial {
	return Polynomial{A2: -p.A2, A1: -p.A1, A0: -p.A0, T0: p.T0}
}

// IsFinite reports whether all coefficients are real numbers.
func (p Polynomial) IsFinite() bool {
	for _, v := range []float64{p.A2, p.A1, p.A0, p.T0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
