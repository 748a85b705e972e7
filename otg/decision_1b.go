package otg

// decisionTree1B returns the beginning of the DOF's inoperative time interval: the longest
// execution time that is possible without reversing the direction of motion when the target
// can also be reached by reversing. It returns +Inf when there is no such interval.
func decisionTree1B(d dof) float64 {
	// 1B-001, 1B-002
	n := normalize(d)
	dp := n.pT - n.p0

	// 1B-003: both velocities strictly positive; otherwise the distance covered decreases
	// monotonically with time and every time after the minimum is feasible.
	if !(n.v0 > 0 && n.vT > 0) {
		return noInoperativeInterval
	}
	// 1B-004: the minimum time solution already reverses.
	if !isPositiveFirstReachable(n, dp) {
		return noInoperativeInterval
	}
	// 1B-005: the target is far enough that slowing down never overshoots it.
	if dp >= holdAtZeroDistance(n.v0, n.vT, n.amax) {
		return noInoperativeInterval
	}
	return n.elapsed + profileStep1NegLinPosLin(n, dp, false)
}
