package otg

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"go.viam.com/otg/utils"
)

// loadProblems copies the selected DOFs' boundary conditions into the session's working set.
func (s *Position) loadProblems(in *PositionInput) {
	for i := range s.problems {
		s.problems[i] = compareInitialAndTargetStateOfMotion(dof{
			p0:   in.CurrentPosition[i],
			v0:   in.CurrentVelocity[i],
			pT:   in.TargetPosition[i],
			vT:   in.TargetVelocity[i],
			vmax: in.MaxVelocity[i],
			amax: in.MaxAcceleration[i],
		})
		s.derived[i] = in.Selection[i] && !(s.problems[i].p0 == s.problems[i].pT &&
			s.problems[i].v0 == 0 && s.problems[i].vT == 0)
	}
}

// compareInitialAndTargetStateOfMotion moves a DOF that is exactly at its target position and
// already moving at its non-zero target velocity slightly backwards along that velocity, so
// that it has a well defined (tiny) distance to cover.
func compareInitialAndTargetStateOfMotion(d dof) dof {
	if d.p0 == d.pT && d.v0 == d.vT && d.vT != 0 {
		d.p0 -= math.Copysign(PositionalEpsilon*(1+math.Abs(d.p0)), d.vT)
	}
	return d
}

// step1 determines the synchronization time and whether the trajectory is phase-synchronized.
func (s *Position) step1(in *PositionInput, flags PositionFlags) Result {
	for i := range s.problems {
		s.minTimes[i], s.profiles[i] = 0, Step1Undefined
		if in.Selection[i] {
			s.minTimes[i], s.profiles[i] = decisionTree1A(s.problems[i])
		}
	}

	kappa := utils.MaxIdx(s.minTimes, func(i int) bool { return in.Selection[i] })
	if kappa < 0 || !lo.Contains(s.derived, true) {
		// nothing to move
		s.traj.syncTime = 0
		s.traj.phaseSynced = true
		s.traj.greatestDOF = max(kappa, 0)
		return Working
	}
	s.traj.greatestDOF = kappa
	for i, t := range s.minTimes {
		// the distance to cover overflows
		if in.Selection[i] && !isFinite(t) {
			return ErrorExecutionTimeTooBig
		}
	}
	minSync := in.MinimumSynchronizationTime

	if flags.SynchronizationBehavior == NoSync {
		s.traj.syncTime = s.minTimes[kappa]
		copy(s.traj.execTimes, s.minTimes)
		return Working
	}

	if flags.SynchronizationBehavior == PhaseSyncIfPossible || flags.SynchronizationBehavior == OnlyPhaseSync {
		if s.isPhaseSynchronizationPossible(kappa) {
			syncTime := s.minTimes[kappa]
			if minSync > syncTime {
				s.inoperativeInterval(kappa)
				syncTime = minSync
				if s.beginInop[kappa] < syncTime && syncTime < s.endInop[kappa] {
					syncTime = s.endInop[kappa]
				}
			}
			s.setSyncTime(in, syncTime, true)
			return Working
		}
		if flags.SynchronizationBehavior == OnlyPhaseSync {
			return ErrorNoPhaseSyncPossible
		}
	}

	for i := range s.problems {
		s.beginInop[i], s.endInop[i] = noInoperativeInterval, noInoperativeInterval
		if s.derived[i] {
			s.inoperativeInterval(i)
		}
	}
	syncTime := s.escapeInoperativeIntervals(s.minTimes[kappa])
	if minSync > syncTime {
		syncTime = s.escapeInoperativeIntervals(minSync)
	}
	if !isFinite(syncTime) {
		return ErrorSynchronization
	}
	s.setSyncTime(in, syncTime, false)
	return Working
}

func (s *Position) setSyncTime(in *PositionInput, syncTime float64, phaseSynced bool) {
	s.traj.syncTime = syncTime
	s.traj.phaseSynced = phaseSynced
	for i := range s.traj.execTimes {
		s.traj.execTimes[i] = 0
		if in.Selection[i] {
			s.traj.execTimes[i] = syncTime
		}
	}
}

// inoperativeInterval runs decision trees 1B and 1C for DOF i and stores the interval of times
// at which it cannot reach its target, clamped to start no earlier than its minimum time.
func (s *Position) inoperativeInterval(i int) {
	begin, end := decisionTree1B(s.problems[i]), noInoperativeInterval
	if isFinite(begin) {
		end = decisionTree1C(s.problems[i])
	}
	begin = math.Max(begin, s.minTimes[i])
	if begin > end {
		begin = 0.5 * (begin + end)
		end = begin
		if begin < s.minTimes[i] {
			begin, end = noInoperativeInterval, noInoperativeInterval
		}
	}
	s.beginInop[i], s.endInop[i] = begin, end
}

// escapeInoperativeIntervals returns the smallest time >= candidate that lies strictly inside
// no DOF's inoperative interval. Each jump lands on an interval end, so at most 2K candidates
// are examined.
func (s *Position) escapeInoperativeIntervals(candidate float64) float64 {
	bounds := s.sortedBounds[:0]
	for i := range s.problems {
		if isFinite(s.beginInop[i]) {
			bounds = append(bounds, s.beginInop[i], s.endInop[i])
		}
	}
	sort.Float64s(bounds)
	for _, next := range bounds {
		if !s.insideInoperativeInterval(candidate) {
			break
		}
		if next > candidate {
			candidate = next
		}
	}
	if s.insideInoperativeInterval(candidate) {
		return math.Inf(1)
	}
	return candidate
}

func (s *Position) insideInoperativeInterval(t float64) bool {
	for i := range s.problems {
		if s.beginInop[i] < t && t < s.endInop[i] {
			return true
		}
	}
	return false
}
