package otg

import (
	"math"

	"go.viam.com/otg/utils"
)

const (
	// MaxExecutionTime bounds every synchronization and execution time, in seconds.
	MaxExecutionTime = 1e10

	// PhaseSyncAbsEpsilon is the absolute tolerance of phase synchronization comparisons.
	PhaseSyncAbsEpsilon = 1e-6
	// PhaseSyncRelEpsilon is the relative tolerance of phase synchronization comparisons.
	PhaseSyncRelEpsilon = 1e-4

	// PositionalEpsilon scales the offset applied to a current position that exactly equals its
	// target while moving at the (nonzero) target velocity.
	PositionalEpsilon = 1e-9

	// denominatorEpsilon guards divisions by hold durations that are numerically zero.
	denominatorEpsilon = 1e-12

	// cacheEpsilon is the tolerance used to detect an input that matches the previous cycle's output.
	cacheEpsilon = 1e-10
)

func pow2(x float64) float64 {
	return utils.Square(x)
}

// sqrtGuarded treats a negative radicand, which can only come from round-off on a reachable
// branch, as zero.
func sqrtGuarded(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Sqrt(x)
}

func phaseSyncEqual(a, b float64) bool {
	return utils.Float64RelAlmostEqual(a, b, PhaseSyncAbsEpsilon, PhaseSyncRelEpsilon)
}

func cacheEqual(a, b float64) bool {
	return utils.Float64RelAlmostEqual(a, b, cacheEpsilon, cacheEpsilon)
}
