package otg

import "math"

// dof holds the boundary conditions and bounds of a single DOF, as seen by the decision trees.
type dof struct {
	p0, v0 float64
	pT, vT float64
	vmax   float64
	amax   float64
}

func (d dof) negate() dof {
	return dof{p0: -d.p0, v0: -d.v0, pT: -d.pT, vT: -d.vT, vmax: d.vmax, amax: d.amax}
}

// The predicates below are the decisions shared by the Step 1 and Step 2 trees. Each tree
// evaluates them in a fixed order; profile shapes are only mutually exclusive in that order.

// Decision x-001.
func isCurrentVelocityNonNegative(d dof) bool {
	return d.v0 >= 0
}

// Decision x-002.
func isCurrentVelocityWithinBound(d dof) bool {
	return d.v0 <= d.vmax
}

// Decision x-003.
func isTargetVelocityNotBelowCurrent(v0, vT float64) bool {
	return vT >= v0
}

// directRampDistance is the signed distance covered when ramping from v0 straight to vT at the
// acceleration bound.
func directRampDistance(v0, vT, amax float64) float64 {
	if isTargetVelocityNotBelowCurrent(v0, vT) {
		return (pow2(vT) - pow2(v0)) / (2 * amax)
	}
	return (pow2(v0) - pow2(vT)) / (2 * amax)
}

// normalized is a DOF whose current velocity has been brought into [0, vmax]: mirrored if it
// was negative and decelerated to vmax if it exceeded the bound.
type normalized struct {
	dof
	inverted bool
	// elapsed is the time spent decelerating to vmax.
	elapsed float64
}

func normalize(d dof) normalized {
	n := normalized{dof: d}
	if !isCurrentVelocityNonNegative(n.dof) {
		n.dof = n.negate()
		n.inverted = true
	}
	if !isCurrentVelocityWithinBound(n.dof) {
		n.elapsed, n.p0, n.v0 = vToVMax(n.p0, n.v0, n.vmax, n.amax)
	}
	return n
}

// vToVMax decelerates from v0 > vmax down to vmax at the acceleration bound and returns the
// time it takes together with the resulting position and velocity.
func vToVMax(p0, v0, vmax, amax float64) (float64, float64, float64) {
	dt := (v0 - vmax) / amax
	return dt, p0 + 0.5*(v0+vmax)*dt, vmax
}

// holdAtZeroDistance is the distance covered when ramping from v0 down to zero and from zero
// to vT; the largest distance a trajectory can cover without reversing when both are positive.
func holdAtZeroDistance(v0, vT, amax float64) float64 {
	return (pow2(v0) + pow2(vT)) / (2 * amax)
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
