package otg

// decisionTree1A returns the minimum execution time of a single DOF and the profile that
// achieves it. The decisions are evaluated in this order:
//
//	1A-001  v0 >= 0, otherwise the DOF is mirrored
//	1A-002  v0 <= vmax, otherwise it first decelerates to vmax
//	1A-003  vT >= v0: the direct ramp to vT accelerates
//	1A-004  (003 holds) dp is reached while accelerating to vT
//	1A-006  (003 fails) vT >= 0: the direct ramp to vT stays non-negative
//	1A-007  (006 holds) dp is reached while decelerating to vT
//	1A-008  (006 fails) dp is reached while decelerating through standstill to vT
//	1A-005  (004, 007 or 008 holds) the peak of the positive-first profile is within vmax
//	1A-009  (004, 007 or 008 fails) the valley of the negative-first profile is within vmax
func decisionTree1A(d dof) (float64, Step1Profile) {
	// 1A-001, 1A-002
	n := normalize(d)
	dp := n.pT - n.p0

	var t float64
	var profile Step1Profile
	if isPositiveFirstReachable(n, dp) {
		if isPeakWithinBound(n, dp) { // 1A-005
			t, profile = profileStep1PosLinNegLin(n, dp), Step1PosLinNegLin
		} else {
			t, profile = profileStep1PosLinHldNegLin(n, dp), Step1PosLinHldNegLin
		}
	} else {
		if isValleyWithinBound(n, dp) { // 1A-009
			t, profile = profileStep1NegLinPosLin(n, dp, true), Step1NegLinPosLin
		} else {
			t, profile = profileStep1NegLinHldPosLin(n, dp), Step1NegLinHldPosLin
		}
	}
	return n.elapsed + t, profile.withInversion(n.inverted)
}

// isPositiveFirstReachable evaluates decisions 1A-003 to 1A-008: can the target be reached by
// ramping up (or straight) to the target velocity, i.e. without first ramping below it?
func isPositiveFirstReachable(n normalized, dp float64) bool {
	switch {
	case isTargetVelocityNotBelowCurrent(n.v0, n.vT): // 1A-003
		return isReachedAccelerating(n, dp) // 1A-004
	case isTargetVelocityNonNegative(n): // 1A-006
		return isReachedDecelerating(n, dp) // 1A-007
	default:
		return isReachedThroughStandstill(n, dp) // 1A-008
	}
}

// Decision 1A-004.
func isReachedAccelerating(n normalized, dp float64) bool {
	return dp >= (pow2(n.vT)-pow2(n.v0))/(2*n.amax)
}

// Decision 1A-006.
func isTargetVelocityNonNegative(n normalized) bool {
	return n.vT >= 0
}

// Decision 1A-007.
func isReachedDecelerating(n normalized, dp float64) bool {
	return dp >= (pow2(n.v0)-pow2(n.vT))/(2*n.amax)
}

// Decision 1A-008: stopping covers v0²/2a forwards and reaching vT from standstill
// vT²/2a backwards.
func isReachedThroughStandstill(n normalized, dp float64) bool {
	return dp >= (pow2(n.v0)-pow2(n.vT))/(2*n.amax)
}

// Decision 1A-005.
func isPeakWithinBound(n normalized, dp float64) bool {
	return (2*n.amax*dp+pow2(n.v0)+pow2(n.vT))/2 <= pow2(n.vmax)
}

// Decision 1A-009.
func isValleyWithinBound(n normalized, dp float64) bool {
	return (pow2(n.v0)+pow2(n.vT)-2*n.amax*dp)/2 <= pow2(n.vmax)
}
