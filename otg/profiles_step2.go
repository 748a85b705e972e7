package otg

import (
	"math"

	"go.viam.com/otg/otg/polynomial"
)

// Step2Profile is the velocity profile shape that brings a DOF to its target exactly at the
// synchronization time.
type Step2Profile int

// The Step 2 profiles. Trap denotes a ramp that crosses zero velocity.
const (
	Step2Undefined Step2Profile = iota
	Step2PosLinHldNegLin
	Step2PosTrapNegLin
	Step2PosLinHldPosLin
	Step2NegLinHldNegLin
	Step2NegLinHldNegLinNegLin
	Step2NegLinHldPosLin
)

func (p Step2Profile) String() string {
	switch p {
	case Step2PosLinHldNegLin:
		return "PosLinHldNegLin"
	case Step2PosTrapNegLin:
		return "PosTrapNegLin"
	case Step2PosLinHldPosLin:
		return "PosLinHldPosLin"
	case Step2NegLinHldNegLin:
		return "NegLinHldNegLin"
	case Step2NegLinHldNegLinNegLin:
		return "NegLinHldNegLinNegLin"
	case Step2NegLinHldPosLin:
		return "NegLinHldPosLin"
	default:
		return "undefined"
	}
}

// segmentWriter appends segments to a motion while tracking the state at the end of the last
// one. It works in normalized coordinates and mirrors every segment when inverted is set.
type segmentWriter struct {
	m        *polynomial.Motion
	inverted bool
	amax     float64

	t, p, v float64
	err     error
}

func (w *segmentWriter) emit(acc, duration float64) {
	if duration <= 0 || w.err != nil {
		return
	}
	seg := polynomial.Polynomial{A2: 0.5 * acc, A1: w.v, A0: w.p, T0: w.t}
	if w.inverted {
		seg = seg.Negate()
	}
	w.err = w.m.Append(seg)
	w.p += (0.5*acc*duration + w.v) * duration
	w.t += duration
}

// rampTo changes the velocity to v at the acceleration bound. A ramp through zero velocity is
// split in two so that every velocity root lies on a segment boundary.
func (w *segmentWriter) rampTo(v float64) {
	if v == w.v {
		return
	}
	if (w.v > 0 && v < 0) || (w.v < 0 && v > 0) {
		w.rampTo(0)
	}
	acc := math.Copysign(w.amax, v-w.v)
	w.emit(acc, (v-w.v)/acc)
	w.v = v
}

func (w *segmentWriter) hold(duration float64) {
	w.emit(0, duration)
}

// finish appends the final segment, which starts at the target state no earlier than syncTime
// and continues at the target velocity.
func (w *segmentWriter) finish(syncTime, pT, vT float64) {
	if w.err != nil {
		return
	}
	seg := polynomial.Polynomial{A1: vT, A0: pT, T0: math.Max(w.t, syncTime)}
	if w.inverted {
		seg = seg.Negate()
	}
	if !seg.IsFinite() {
		w.err = errNonFiniteSegment
		return
	}
	w.err = w.m.Append(seg)
}

// The Step 2 profile primitives write the segments of one profile, starting at the writer's
// state and ending at the target velocity at w.t + remaining.

func profileStep2PosLinHldNegLin(w *segmentWriter, vh, vT, remaining float64) {
	rampUp := (vh - w.v) / w.amax
	rampDown := (vh - vT) / w.amax
	w.rampTo(vh)
	w.hold(math.Max(0, remaining-rampUp-rampDown))
	w.rampTo(vT)
}

// profileStep2LinHldLin covers both monotone profiles, whose hold velocity lies between the
// current and the target velocity.
func profileStep2LinHldLin(w *segmentWriter, vh, vT, holdTime float64) {
	w.rampTo(vh)
	w.hold(holdTime)
	w.rampTo(vT)
}

func profileStep2NegLinHldPosLin(w *segmentWriter, vh, vT, remaining float64) {
	rampDown := (w.v - vh) / w.amax
	rampUp := (vT - vh) / w.amax
	w.rampTo(vh)
	w.hold(math.Max(0, remaining-rampDown-rampUp))
	w.rampTo(vT)
}

// holdVelocityAbove solves for the hold velocity vh >= max(v0, vT) that covers dp in time T:
//
//	vh^2 - (v0 + vT + a*T)*vh + a*dp + (v0^2 + vT^2)/2 = 0
func holdVelocityAbove(v0, vT, dp, amax, remaining float64) float64 {
	b := v0 + vT + amax*remaining
	c := amax*dp + 0.5*(pow2(v0)+pow2(vT))
	return 0.5 * (b - sqrtGuarded(pow2(b)-4*c))
}

// holdVelocityBelow solves for the hold velocity vh <= min(v0, vT) that covers dp in time T:
//
//	vh^2 - (v0 + vT - a*T)*vh + (v0^2 + vT^2)/2 - a*dp = 0
func holdVelocityBelow(v0, vT, dp, amax, remaining float64) float64 {
	b := v0 + vT - amax*remaining
	c := 0.5*(pow2(v0)+pow2(vT)) - amax*dp
	return 0.5 * (b + sqrtGuarded(pow2(b)-4*c))
}
