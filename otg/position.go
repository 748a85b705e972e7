// Package otg generates acceleration limited trajectories online. Every control cycle, a
// Position or Velocity session computes the time optimal, synchronized trajectory from the
// current state of motion to the target and returns the state of motion for the next cycle.
package otg

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/otg/logging"
)

// Position is a position based trajectory generator for a fixed number of DOFs. It is not safe
// for concurrent use; every buffer is allocated by NewPosition.
type Position struct {
	dofs      int
	cycleTime float64
	logger    logging.Logger
	workers   int

	problems      []dof
	derived       []bool
	minTimes      []float64
	profiles      []Step1Profile
	beginInop     []float64
	endInop       []float64
	sortedBounds  []float64
	step2Profiles []Step2Profile
	step2Errs     []error

	vectors   [3][]float64
	reference []float64
	phaseVMax []float64
	phaseAMax []float64

	traj       trajectory
	current    state
	cache      positionCache
	mode       trajectoryMode
	lastResult Result
	lastFlags  PositionFlags

	velocity    *Velocity
	velocityIn  *VelocityInput
	velocityOut *VelocityOutput
}

// NewPosition returns a session for dofs DOFs, called every cycleTime seconds.
func NewPosition(dofs int, cycleTime float64, opts ...Option) (*Position, error) {
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
	velocity, err := NewVelocity(dofs, cycleTime, WithLogger(o.logger.Sublogger("fallback")))
	if err != nil {
		return nil, err
	}
	s := &Position{
		dofs:          dofs,
		cycleTime:     cycleTime,
		logger:        o.logger,
		workers:       o.workers,
		problems:      make([]dof, dofs),
		derived:       make([]bool, dofs),
		minTimes:      make([]float64, dofs),
		profiles:      make([]Step1Profile, dofs),
		beginInop:     make([]float64, dofs),
		endInop:       make([]float64, dofs),
		sortedBounds:  make([]float64, 0, 2*dofs),
		step2Profiles: make([]Step2Profile, dofs),
		step2Errs:     make([]error, dofs),
		reference:     make([]float64, dofs),
		phaseVMax:     make([]float64, dofs),
		phaseAMax:     make([]float64, dofs),
		traj:          newTrajectory(dofs),
		current:       newState(dofs),
		cache:         newPositionCache(dofs),
		velocity:      velocity,
		velocityIn:    NewVelocityInput(dofs),
		velocityOut:   NewVelocityOutput(dofs),
	}
	for i := range s.vectors {
		s.vectors[i] = make([]float64, dofs)
	}
	return s, nil
}

// DOFs returns the number of DOFs the session was created for.
func (s *Position) DOFs() int {
	return s.dofs
}

// CycleTime returns the control cycle time in seconds.
func (s *Position) CycleTime() float64 {
	return s.cycleTime
}

// Update computes the trajectory from in's current state of motion to its target state of
// motion and writes the state of motion one cycle ahead to out. If in matches the state the
// previous call produced, the previous trajectory is evaluated one cycle further instead of
// being recomputed. Error results still come with a valid output from the fallback strategy.
func (s *Position) Update(in *PositionInput, out *PositionOutput, flags PositionFlags) Result {
	if in == nil || out == nil {
		return ErrorNullPointer
	}
	if !in.sizedFor(s.dofs) || !out.sizedFor(s.dofs) {
		s.logger.Debugw("input or output sized for the wrong number of DOFs", "dofs", s.dofs)
		s.cache.invalidate()
		s.mode = modeNone
		continueCommonDOFs(in, out, s.cycleTime)
		return ErrorNumberOfDOFs
	}

	if s.reusable(in, flags) {
		s.traj.clock += s.cycleTime
		s.current.set(in.CurrentPosition, in.CurrentVelocity, in.CurrentAcceleration, in.Selection)
		result := s.traj.sample(s.traj.clock+s.cycleTime, &s.current, &out.Output, flags.EnableExtremaCalculation)
		out.ANewCalculationWasPerformed = false
		s.remember(in, out, flags, result)
		return result
	}

	s.current.set(in.CurrentPosition, in.CurrentVelocity, in.CurrentAcceleration, in.Selection)
	if err := in.Validate(); err != nil {
		s.logger.Debugw("invalid input", "error", err)
		return s.fallback(ErrorInvalidInputValues, in, out, flags)
	}
	if result := s.compute(in, flags); result.IsError() {
		return s.fallback(result, in, out, flags)
	}

	s.mode = modeComputed
	result := s.traj.sample(s.cycleTime, &s.current, &out.Output, flags.EnableExtremaCalculation)
	out.ANewCalculationWasPerformed = true
	s.remember(in, out, flags, result)
	return result
}

func (s *Position) remember(in *PositionInput, out *PositionOutput, flags PositionFlags, result Result) {
	s.lastResult, s.lastFlags = result, flags
	if result.IsError() {
		s.cache.invalidate()
		return
	}
	s.cache.store(in, &out.Output)
}

// compute runs Steps 1 and 2.
func (s *Position) compute(in *PositionInput, flags PositionFlags) Result {
	s.traj.reset()
	s.loadProblems(in)
	if result := s.step1(in, flags); result.IsError() {
		s.logger.Debugw("synchronization time calculation failed", "result", result)
		return result
	}
	if s.traj.syncTime > MaxExecutionTime {
		s.logger.Debugw("synchronization time too big", "sync_time", s.traj.syncTime)
		return ErrorExecutionTimeTooBig
	}
	if err := s.step2(in); err != nil {
		s.logger.Debugw("building the trajectory failed", "error", err)
		return ErrorExecutionTimeCalculation
	}
	for i := range s.traj.motions {
		for _, seg := range s.traj.motions[i].Segments() {
			if !seg.IsFinite() {
				s.logger.Debugw("trajectory is not finite", "dof", i)
				return ErrorExecutionTimeCalculation
			}
		}
	}
	return Working
}

// AtTime evaluates the most recently computed trajectory t seconds after the current state of
// motion of the last Update, without changing the session. After an error the fallback
// trajectory is evaluated and the error is returned again.
func (s *Position) AtTime(t float64, out *PositionOutput) Result {
	if out == nil {
		return ErrorNullPointer
	}
	if !out.sizedFor(s.dofs) {
		return ErrorNumberOfDOFs
	}
	if math.IsNaN(t) || t < 0 || t > MaxExecutionTime {
		return ErrorUserTimeOutOfRange
	}
	switch s.mode {
	case modeComputed:
		result := s.traj.sample(s.traj.clock+t, &s.current, &out.Output, s.lastFlags.EnableExtremaCalculation)
		out.ANewCalculationWasPerformed = false
		return result
	case modeVelocityFallback:
		s.velocity.AtTime(t, s.velocityOut)
		out.copyFrom(&s.velocityOut.Output)
		out.ANewCalculationWasPerformed = false
		return s.lastResult
	case modeCurrentVelocity:
		continueAtCurrentVelocity(&s.current, t, &out.Output)
		out.ANewCalculationWasPerformed = false
		return s.lastResult
	default:
		// nothing has been computed yet
		return ErrorExecutionTimeCalculation
	}
}

// Step1Profiles returns the minimum time profile chosen for every DOF by the last computation.
func (s *Position) Step1Profiles() []Step1Profile {
	return append([]Step1Profile(nil), s.profiles...)
}

// Step2Profiles returns the profile used to build every DOF's motion by the last computation.
func (s *Position) Step2Profiles() []Step2Profile {
	return append([]Step2Profile(nil), s.step2Profiles...)
}
