package otg

import "math"

// Step1Profile is the velocity profile shape that achieves a DOF's minimum execution time. The
// first four are shapes of the normalized problem (current velocity non-negative); the
// Inverted variants are the same shapes for a mirrored problem.
type Step1Profile int

// The Step 1 profiles. Lin is a ramp at the acceleration bound, Hld a phase at constant velocity.
const (
	Step1Undefined Step1Profile = iota
	Step1PosLinHldNegLin
	Step1PosLinNegLin
	Step1NegLinHldPosLin
	Step1NegLinPosLin
	Step1PosLinHldNegLinInverted
	Step1PosLinNegLinInverted
	Step1NegLinHldPosLinInverted
	Step1NegLinPosLinInverted
)

const step1InvertedOffset = Step1PosLinHldNegLinInverted - Step1PosLinHldNegLin

// Shape returns the profile without its inversion.
func (p Step1Profile) Shape() Step1Profile {
	if p.Inverted() {
		return p - step1InvertedOffset
	}
	return p
}

// Inverted reports whether the profile belongs to a mirrored problem.
func (p Step1Profile) Inverted() bool {
	return p >= Step1PosLinHldNegLinInverted
}

func (p Step1Profile) withInversion(inverted bool) Step1Profile {
	if inverted && p != Step1Undefined {
		return p + step1InvertedOffset
	}
	return p
}

// Direction returns the shape as seen in world coordinates: an inverted positive-first shape
// moves negative first.
func (p Step1Profile) Direction() Step1Profile {
	if !p.Inverted() {
		return p
	}
	return p.Shape().mirror()
}

func (p Step1Profile) mirror() Step1Profile {
	switch p {
	case Step1PosLinHldNegLin:
		return Step1NegLinHldPosLin
	case Step1NegLinHldPosLin:
		return Step1PosLinHldNegLin
	case Step1PosLinNegLin:
		return Step1NegLinPosLin
	case Step1NegLinPosLin:
		return Step1PosLinNegLin
	default:
		return p
	}
}

func (p Step1Profile) String() string {
	name := "undefined"
	switch p.Shape() {
	case Step1PosLinHldNegLin:
		name = "PosLinHldNegLin"
	case Step1PosLinNegLin:
		name = "PosLinNegLin"
	case Step1NegLinHldPosLin:
		name = "NegLinHldPosLin"
	case Step1NegLinPosLin:
		name = "NegLinPosLin"
	}
	if p.Inverted() {
		return name + "Inverted"
	}
	return name
}

// The Step 1 profile primitives return the duration of the profile for a normalized DOF
// (0 <= v0 <= vmax). dp is the remaining position difference.

// profileStep1PosLinNegLinPeak is the peak velocity of the profile that ramps up and then down
// to the target velocity without holding.
func profileStep1PosLinNegLinPeak(n normalized, dp float64) float64 {
	return sqrtGuarded((2*n.amax*dp + pow2(n.v0) + pow2(n.vT)) / 2)
}

func profileStep1PosLinNegLin(n normalized, dp float64) float64 {
	vp := profileStep1PosLinNegLinPeak(n, dp)
	return (2*vp - n.v0 - n.vT) / n.amax
}

func profileStep1PosLinHldNegLin(n normalized, dp float64) float64 {
	rampUp := (n.vmax - n.v0) / n.amax
	rampDown := (n.vmax - n.vT) / n.amax
	rampDistance := (2*pow2(n.vmax) - pow2(n.v0) - pow2(n.vT)) / (2 * n.amax)
	return rampUp + rampDown + (dp-rampDistance)/n.vmax
}

// profileStep1NegLinPosLinValley is the lowest velocity of the profile that ramps down and then
// up to the target velocity. reversing selects the negative solution.
func profileStep1NegLinPosLinValley(n normalized, dp float64, reversing bool) float64 {
	v := sqrtGuarded((pow2(n.v0) + pow2(n.vT) - 2*n.amax*dp) / 2)
	if reversing {
		return -v
	}
	return v
}

func profileStep1NegLinPosLin(n normalized, dp float64, reversing bool) float64 {
	vn := profileStep1NegLinPosLinValley(n, dp, reversing)
	return (n.v0 + n.vT - 2*vn) / n.amax
}

func profileStep1NegLinHldPosLin(n normalized, dp float64) float64 {
	rampDown := (n.v0 + n.vmax) / n.amax
	rampUp := (n.vT + n.vmax) / n.amax
	rampDistance := (pow2(n.v0) + pow2(n.vT) - 2*pow2(n.vmax)) / (2 * n.amax)
	return rampDown + rampUp + (rampDistance-dp)/n.vmax
}

// noInoperativeInterval is returned by decision trees 1B and 1C when a DOF can reach its target
// at any time after its minimum execution time.
var noInoperativeInterval = math.Inf(1)
