package otg

// decisionTree1C returns the end of the DOF's inoperative time interval: the shortest execution
// time of a trajectory that overshoots the target and reverses back to it. It is only
// meaningful when decisionTree1B returned a finite value.
func decisionTree1C(d dof) float64 {
	// 1C-001, 1C-002
	n := normalize(d)
	dp := n.pT - n.p0

	// 1C-003
	if isValleyWithinBound(n, dp) {
		return n.elapsed + profileStep1NegLinPosLin(n, dp, true)
	}
	return n.elapsed + profileStep1NegLinHldPosLin(n, dp)
}
