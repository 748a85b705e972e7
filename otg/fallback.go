package otg

// trajectoryMode tells what the session's output is currently computed from.
type trajectoryMode int

const (
	modeNone trajectoryMode = iota
	// modeComputed is the trajectory computed by the session itself.
	modeComputed
	// modeVelocityFallback steers to a target velocity with the velocity based algorithm.
	modeVelocityFallback
	// modeCurrentVelocity continues at the current velocity without acceleration.
	modeCurrentVelocity
)

func (m trajectoryMode) String() string {
	switch m {
	case modeComputed:
		return "computed"
	case modeVelocityFallback:
		return "velocity"
	case modeCurrentVelocity:
		return "current_velocity"
	default:
		return "none"
	}
}

// fallback produces a valid output when no position based trajectory could be computed and
// returns result unchanged. It first tries the velocity based algorithm, steering to the
// alternative target velocity (or the current velocity if requested or none is given), and
// otherwise continues at the current velocity.
func (s *Position) fallback(result Result, in *PositionInput, out *PositionOutput, flags PositionFlags) Result {
	vin := s.velocityIn
	copy(vin.CurrentPosition, in.CurrentPosition)
	copy(vin.CurrentVelocity, in.CurrentVelocity)
	copy(vin.CurrentAcceleration, in.CurrentAcceleration)
	copy(vin.MaxAcceleration, in.MaxAcceleration)
	copy(vin.Selection, in.Selection)
	vin.MinimumSynchronizationTime = 0
	if flags.KeepCurrentVelocityInCaseOfFallbackStrategy || len(in.AlternativeTargetVelocity) != s.dofs {
		copy(vin.TargetVelocity, in.CurrentVelocity)
	} else {
		copy(vin.TargetVelocity, in.AlternativeTargetVelocity)
	}

	vflags := VelocityFlags{Flags: flags.Flags}
	if vflags.SynchronizationBehavior == OnlyPhaseSync {
		vflags.SynchronizationBehavior = PhaseSyncIfPossible
	}

	if velocityResult := s.velocity.Update(vin, s.velocityOut, vflags); velocityResult.IsError() {
		s.mode = modeCurrentVelocity
		continueAtCurrentVelocity(&s.current, s.cycleTime, &out.Output)
		out.ANewCalculationWasPerformed = true
	} else {
		s.mode = modeVelocityFallback
		out.copyFrom(&s.velocityOut.Output)
	}
	s.logger.Debugw("using fallback strategy", "result", result, "fallback", s.mode)
	s.remember(in, out, flags, result)
	return result
}

// continueCommonDOFs continues the DOFs that both in and out have room for at their current
// velocity. It is the only output possible when their sizes disagree with the session.
func continueCommonDOFs(in *PositionInput, out *PositionOutput, dt float64) {
	n := min(len(in.CurrentPosition), len(in.CurrentVelocity),
		len(out.NewPosition), len(out.NewVelocity), len(out.NewAcceleration))
	for i := 0; i < n; i++ {
		p, v := in.CurrentPosition[i], in.CurrentVelocity[i]
		if !isFinite(p) || !isFinite(v) {
			p, v = 0, 0
		}
		out.NewPosition[i] = p + v*dt
		out.NewVelocity[i] = v
		out.NewAcceleration[i] = 0
	}
	out.ANewCalculationWasPerformed = false
	out.TrajectoryIsPhaseSynchronized = false
	out.SynchronizationTime = 0
}
