package otg

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/otg/logging"
	"go.viam.com/otg/otg/polynomial"
	"go.viam.com/otg/utils"
)

// Velocity is a velocity based trajectory generator: it brings every selected DOF to its target
// velocity, regardless of position. The position based generator uses it as its fallback.
type Velocity struct {
	dofs      int
	cycleTime float64
	logger    logging.Logger
	workers   int

	minTimes  []float64
	vectors   [2][]float64
	reference []float64

	traj       trajectory
	current    state
	cache      velocityCache
	mode       trajectoryMode
	lastResult Result
	lastFlags  VelocityFlags
}

// NewVelocity returns a session for dofs DOFs, called every cycleTime seconds.
func NewVelocity(dofs int, cycleTime float64, opts ...Option) (*Velocity, error) {
	if dofs <= 0 {
		return nil, errors.Errorf("number of DOFs must be positive, got %d", dofs)
	}
	if !(cycleTime > 0) || !isFinite(cycleTime) {
		return nil, errors.Errorf("cycle time must be positive, got %v", cycleTime)
	}
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Velocity{
		dofs:      dofs,
		cycleTime: cycleTime,
		logger:    o.logger,
		workers:   o.workers,
		minTimes:  make([]float64, dofs),
		reference: make([]float64, dofs),
		traj:      newTrajectory(dofs),
		current:   newState(dofs),
		cache:     newVelocityCache(dofs),
	}
	for i := range s.vectors {
		s.vectors[i] = make([]float64, dofs)
	}
	return s, nil
}

// DOFs returns the number of DOFs the session was created for.
func (s *Velocity) DOFs() int {
	return s.dofs
}

// Update computes the trajectory from in's current state of motion to its target velocity and
// writes the state of motion one cycle ahead to out.
func (s *Velocity) Update(in *VelocityInput, out *VelocityOutput, flags VelocityFlags) Result {
	if in == nil || out == nil {
		return ErrorNullPointer
	}
	if !in.sizedFor(s.dofs) || !out.sizedFor(s.dofs) || len(out.PositionValuesAtTargetVelocity) != s.dofs {
		s.logger.Debugw("input or output sized for the wrong number of DOFs", "dofs", s.dofs)
		s.cache.invalidate()
		s.mode = modeNone
		return ErrorNumberOfDOFs
	}

	if s.reusable(in, flags) {
		s.traj.clock += s.cycleTime
		s.current.set(in.CurrentPosition, in.CurrentVelocity, in.CurrentAcceleration, in.Selection)
		result := s.sample(s.traj.clock+s.cycleTime, out, flags)
		out.ANewCalculationWasPerformed = false
		s.remember(in, out, flags, result)
		return result
	}

	s.current.set(in.CurrentPosition, in.CurrentVelocity, in.CurrentAcceleration, in.Selection)
	if err := in.Validate(); err != nil {
		s.logger.Debugw("invalid input", "error", err)
		return s.continueAtCurrentVelocity(ErrorInvalidInputValues, in, out, flags)
	}
	if result := s.compute(in, flags); result.IsError() {
		return s.continueAtCurrentVelocity(result, in, out, flags)
	}

	s.mode = modeComputed
	result := s.sample(s.cycleTime, out, flags)
	out.ANewCalculationWasPerformed = true
	s.remember(in, out, flags, result)
	return result
}

func (s *Velocity) reusable(in *VelocityInput, flags VelocityFlags) bool {
	if s.mode != modeComputed || flags != s.lastFlags || s.lastResult.IsError() {
		return false
	}
	if s.lastResult == FinalStateReached && flags.BehaviorAfterFinalState == RecomputeTrajectory {
		return false
	}
	return s.cache.matches(in)
}

func (s *Velocity) remember(in *VelocityInput, out *VelocityOutput, flags VelocityFlags, result Result) {
	s.lastResult, s.lastFlags = result, flags
	if result.IsError() {
		s.cache.invalidate()
		return
	}
	s.cache.store(in, &out.Output)
}

func (s *Velocity) continueAtCurrentVelocity(
	result Result, in *VelocityInput, out *VelocityOutput, flags VelocityFlags,
) Result {
	s.mode = modeCurrentVelocity
	continueAtCurrentVelocity(&s.current, s.cycleTime, &out.Output)
	copy(out.PositionValuesAtTargetVelocity, out.NewPosition)
	out.ANewCalculationWasPerformed = true
	s.logger.Debugw("using fallback strategy", "result", result, "fallback", s.mode)
	s.remember(in, out, flags, result)
	return result
}

func (s *Velocity) compute(in *VelocityInput, flags VelocityFlags) Result {
	s.traj.reset()
	for i := range s.minTimes {
		s.minTimes[i] = 0
		if in.Selection[i] {
			s.minTimes[i] = math.Abs(in.TargetVelocity[i]-in.CurrentVelocity[i]) / in.MaxAcceleration[i]
		}
	}
	kappa := utils.MaxIdx(s.minTimes, func(i int) bool { return in.Selection[i] })
	if kappa < 0 {
		s.traj.phaseSynced = true
		return Working
	}
	s.traj.greatestDOF = kappa

	phaseSynced := s.isPhaseSynchronizationPossible(in)
	syncTime := math.Max(s.minTimes[kappa], in.MinimumSynchronizationTime)
	switch flags.SynchronizationBehavior {
	case NoSync:
		phaseSynced = false
		syncTime = s.minTimes[kappa]
	case OnlyTimeSync:
		phaseSynced = false
	case OnlyPhaseSync:
		if !phaseSynced {
			return ErrorNoPhaseSyncPossible
		}
	case PhaseSyncIfPossible:
	}
	if syncTime > MaxExecutionTime {
		s.logger.Debugw("synchronization time too big", "sync_time", syncTime)
		return ErrorExecutionTimeTooBig
	}
	s.traj.syncTime = syncTime
	s.traj.phaseSynced = phaseSynced
	for i := range s.traj.execTimes {
		switch {
		case !in.Selection[i]:
			s.traj.execTimes[i] = 0
		case flags.SynchronizationBehavior == NoSync:
			s.traj.execTimes[i] = s.minTimes[i]
		default:
			s.traj.execTimes[i] = syncTime
		}
	}

	build := func(i int) {
		if in.Selection[i] {
			buildVelocityRamp(&s.traj.motions[i], in.CurrentPosition[i], in.CurrentVelocity[i],
				in.TargetVelocity[i], s.traj.execTimes[i])
		}
	}
	if s.workers > 1 {
		if err := utils.GroupWorkParallel(context.Background(), s.dofs, s.workers,
			func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
				return func(memberNum, workNum int) { build(workNum) }, nil
			}); err != nil {
			return ErrorExecutionTimeCalculation
		}
	} else {
		for i := range s.traj.motions {
			build(i)
		}
	}
	return Working
}

// buildVelocityRamp writes the motion that changes velocity from v0 to vT linearly within
// duration, then continues at vT.
func buildVelocityRamp(m *polynomial.Motion, p0, v0, vT, duration float64) {
	m.Reset()
	if duration > 0 {
		//nolint:errcheck
		m.Append(polynomial.Polynomial{A2: 0.5 * (vT - v0) / duration, A1: v0, A0: p0})
	}
	//nolint:errcheck
	m.Append(polynomial.Polynomial{A1: vT, A0: p0 + 0.5*(v0+vT)*duration, T0: duration})
}

// isPhaseSynchronizationPossible reports whether the current and target velocities of the
// selected DOFs are collinear.
func (s *Velocity) isPhaseSynchronizationPossible(in *VelocityInput) bool {
	v0, vT := s.vectors[0], s.vectors[1]
	for i := range v0 {
		v0[i], vT[i] = 0, 0
		if in.Selection[i] {
			v0[i], vT[i] = in.CurrentVelocity[i], in.TargetVelocity[i]
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
	return true
}

func (s *Velocity) sample(t float64, out *VelocityOutput, flags VelocityFlags) Result {
	result := s.traj.sample(t, &s.current, &out.Output, flags.EnableExtremaCalculation)
	for i := range out.PositionValuesAtTargetVelocity {
		out.PositionValuesAtTargetVelocity[i], _, _ = s.traj.at(i, s.traj.execTimes[i], &s.current)
	}
	return result
}

// AtTime evaluates the most recently computed trajectory t seconds after the current state of
// motion of the last Update, without changing the session.
func (s *Velocity) AtTime(t float64, out *VelocityOutput) Result {
	if out == nil {
		return ErrorNullPointer
	}
	if !out.sizedFor(s.dofs) || len(out.PositionValuesAtTargetVelocity) != s.dofs {
		return ErrorNumberOfDOFs
	}
	if math.IsNaN(t) || t < 0 || t > MaxExecutionTime {
		return ErrorUserTimeOutOfRange
	}
	switch s.mode {
	case modeComputed:
		result := s.sample(s.traj.clock+t, out, s.lastFlags)
		out.ANewCalculationWasPerformed = false
		return result
	case modeCurrentVelocity:
		continueAtCurrentVelocity(&s.current, t, &out.Output)
		copy(out.PositionValuesAtTargetVelocity, out.NewPosition)
		out.ANewCalculationWasPerformed = false
		return s.lastResult
	default:
		// nothing has been computed yet
		return ErrorExecutionTimeCalculation
	}
}
