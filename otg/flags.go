package otg

// SyncBehavior selects how the DOFs are synchronized.
type SyncBehavior int

const (
	// PhaseSyncIfPossible phase-synchronizes when the input allows it and time-synchronizes otherwise.
	PhaseSyncIfPossible SyncBehavior = iota
	// OnlyTimeSync always time-synchronizes.
	OnlyTimeSync
	// OnlyPhaseSync requires phase synchronization; when it is not possible the fallback is used.
	OnlyPhaseSync
	// NoSync lets every DOF reach its target as fast as possible.
	NoSync
)

func (s SyncBehavior) String() string {
	switch s {
	case PhaseSyncIfPossible:
		return "phase_sync_if_possible"
	case OnlyTimeSync:
		return "only_time_sync"
	case OnlyPhaseSync:
		return "only_phase_sync"
	case NoSync:
		return "no_sync"
	default:
		return "unknown"
	}
}

// FinalBehavior selects what happens once the final state of motion has been reached.
type FinalBehavior int

const (
	// KeepTargetVelocity keeps evaluating the computed trajectory, which continues at target velocity.
	KeepTargetVelocity FinalBehavior = iota
	// RecomputeTrajectory computes a new trajectory from the current state every cycle.
	RecomputeTrajectory
)

func (b FinalBehavior) String() string {
	switch b {
	case KeepTargetVelocity:
		return "keep_target_velocity"
	case RecomputeTrajectory:
		return "recompute_trajectory"
	default:
		return "unknown"
	}
}

// Flags are the settings shared by the position and velocity based algorithms.
type Flags struct {
	SynchronizationBehavior  SyncBehavior
	EnableExtremaCalculation bool
	BehaviorAfterFinalState  FinalBehavior
}

// PositionFlags are the settings of the position based algorithm.
type PositionFlags struct {
	Flags
	// KeepCurrentVelocityInCaseOfFallbackStrategy makes the fallback hold the current velocity
	// instead of steering to the input's AlternativeTargetVelocity.
	KeepCurrentVelocityInCaseOfFallbackStrategy bool
}

// VelocityFlags are the settings of the velocity based algorithm.
type VelocityFlags struct {
	Flags
}
