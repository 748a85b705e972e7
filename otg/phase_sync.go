package otg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// isPhaseSynchronizationPossible reports whether the derived DOFs can move along a common
// straight line in state space: their position differences, current velocities and target
// velocities must be collinear, and scaling kappa's profile onto every other DOF must respect
// that DOF's bounds. On success s.reference holds the unit reference vector.
func (s *Position) isPhaseSynchronizationPossible(kappa int) bool {
	dp, v0, vT := s.vectors[0], s.vectors[1], s.vectors[2]
	for i, d := range s.problems {
		dp[i], v0[i], vT[i] = 0, 0, 0
		if s.derived[i] {
			dp[i], v0[i], vT[i] = d.pT-d.p0, d.v0, d.vT
		}
	}

	found := false
	for _, vec := range s.vectors {
		norm := floats.Norm(vec, 2)
		if norm <= PhaseSyncAbsEpsilon {
			continue
		}
		if !found {
			floats.ScaleTo(s.reference, 1/norm, vec)
			found = true
			continue
		}
		if !isCollinear(s.reference, vec, norm) {
			return false
		}
	}
	if !found {
		return false
	}

	rk := s.reference[kappa]
	if math.Abs(rk) <= PhaseSyncAbsEpsilon {
		return false
	}
	vScale := s.problems[kappa].vmax / math.Abs(rk)
	aScale := s.problems[kappa].amax / math.Abs(rk)
	for i, d := range s.problems {
		if !s.derived[i] {
			continue
		}
		s.phaseVMax[i] = math.Abs(s.reference[i]) * vScale
		s.phaseAMax[i] = math.Abs(s.reference[i]) * aScale
		if !withinBound(s.phaseVMax[i], d.vmax) || !withinBound(s.phaseAMax[i], d.amax) {
			return false
		}
	}

	direction := s.profiles[kappa].Direction()
	for i, d := range s.problems {
		if !s.derived[i] || i == kappa || math.Abs(s.reference[i]) <= PhaseSyncAbsEpsilon {
			continue
		}
		d.vmax, d.amax = s.phaseVMax[i], s.phaseAMax[i]
		t, profile := decisionTree1A(d)
		expected := direction
		if (s.reference[i] < 0) != (rk < 0) {
			expected = direction.mirror()
		}
		if profile.Direction() != expected || !phaseSyncEqual(t, s.minTimes[kappa]) {
			return false
		}
	}
	return true
}

// isCollinear reports whether vec, whose norm is given, equals the unit vector ref up to sign.
func isCollinear(ref, vec []float64, norm float64) bool {
	same, opposite := true, true
	for i, r := range ref {
		u := vec[i] / norm
		same = same && phaseSyncEqual(u, r)
		opposite = opposite && phaseSyncEqual(u, -r)
	}
	return same || opposite
}

func withinBound(adapted, bound float64) bool {
	return adapted < bound || phaseSyncEqual(adapted, bound)
}
