package otg

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/otg/otg/polynomial"
	"go.viam.com/otg/utils"
)

var errNonFiniteSegment = errors.New("trajectory segment is not finite")

// decisionTree2 writes into m the motion that brings d to its target state of motion at
// exactly syncTime, which must not be shorter than the DOF's minimum execution time and must
// lie outside its inoperative interval.
func decisionTree2(syncTime float64, d dof, m *polynomial.Motion) (Step2Profile, error) {
	m.Reset()
	w := segmentWriter{m: m, amax: d.amax}
	// 2-001
	if !isCurrentVelocityNonNegative(d) {
		d = d.negate()
		w.inverted = true
	}
	w.p, w.v = d.p0, d.v0
	// 2-002
	if !isCurrentVelocityWithinBound(d) {
		w.rampTo(d.vmax)
	}

	v0, vT := w.v, d.vT
	dp := d.pT - w.p
	remaining := math.Max(0, syncTime-w.t)
	vHi, vLo := math.Max(v0, vT), math.Min(v0, vT)
	// 2-003 is evaluated by directRampDistance.
	direct := directRampDistance(v0, vT, d.amax)
	holdTime := math.Max(0, remaining-math.Abs(vT-v0)/d.amax)

	var profile Step2Profile
	switch {
	case isHoldAboveBothVelocities(dp, direct, vHi, holdTime): // 2-004
		// 2-010
		vh := utils.Clamp(holdVelocityAbove(v0, vT, dp, d.amax, remaining), vHi, d.vmax)
		profileStep2PosLinHldNegLin(&w, vh, vT, remaining)
		if vT < 0 { // 2-005
			profile = Step2PosTrapNegLin
		} else {
			profile = Step2PosLinHldNegLin
		}
	case isHoldBetweenVelocities(dp, direct, vLo, holdTime): // 2-006
		vh := v0
		if holdTime > denominatorEpsilon {
			vh = (dp - direct) / holdTime
		}
		// 2-011
		vh = utils.Clamp(vh, vLo, vHi)
		profileStep2LinHldLin(&w, vh, vT, holdTime)
		switch {
		case vT > v0: // 2-007
			profile = Step2PosLinHldPosLin
		case vT < 0 && vh > 0: // 2-008
			profile = Step2NegLinHldNegLinNegLin
		default:
			profile = Step2NegLinHldNegLin
		}
	default: // 2-009
		// 2-012
		vh := utils.Clamp(holdVelocityBelow(v0, vT, dp, d.amax, remaining), -d.vmax, vLo)
		profileStep2NegLinHldPosLin(&w, vh, vT, remaining)
		profile = Step2NegLinHldPosLin
	}

	w.finish(syncTime, d.pT, d.vT)
	if w.err != nil {
		return Step2Undefined, errors.Wrapf(w.err, "profile %v", profile)
	}
	return profile, nil
}

// Decision 2-004: does covering dp in the remaining time require holding faster than both the
// current and the target velocity?
func isHoldAboveBothVelocities(dp, direct, vHi, holdTime float64) bool {
	return dp >= direct+vHi*holdTime
}

// Decision 2-006.
func isHoldBetweenVelocities(dp, direct, vLo, holdTime float64) bool {
	return dp >= direct+vLo*holdTime
}
