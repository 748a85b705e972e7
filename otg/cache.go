package otg

import "slices"

// positionCache holds the input the next Update is expected to be called with if the caller
// feeds the output back unchanged. While inputs keep matching, the trajectory is reused.
type positionCache struct {
	valid    bool
	expected *PositionInput
}

func newPositionCache(dofs int) positionCache {
	return positionCache{expected: NewPositionInput(dofs)}
}

func (c *positionCache) invalidate() {
	c.valid = false
}

// store records in with its current state of motion replaced by the one in out.
func (c *positionCache) store(in *PositionInput, out *Output) {
	e := c.expected
	copy(e.CurrentPosition, out.NewPosition)
	copy(e.CurrentVelocity, out.NewVelocity)
	copy(e.CurrentAcceleration, out.NewAcceleration)
	copy(e.TargetPosition, in.TargetPosition)
	copy(e.TargetVelocity, in.TargetVelocity)
	copy(e.MaxVelocity, in.MaxVelocity)
	copy(e.MaxAcceleration, in.MaxAcceleration)
	copy(e.Selection, in.Selection)
	e.AlternativeTargetVelocity = append(e.AlternativeTargetVelocity[:0], in.AlternativeTargetVelocity...)
	e.MinimumSynchronizationTime = in.MinimumSynchronizationTime
	c.valid = true
}

func (c *positionCache) matches(in *PositionInput) bool {
	e := c.expected
	return c.valid &&
		vectorsMatch(in.CurrentPosition, e.CurrentPosition) &&
		vectorsMatch(in.CurrentVelocity, e.CurrentVelocity) &&
		vectorsMatch(in.CurrentAcceleration, e.CurrentAcceleration) &&
		vectorsMatch(in.TargetPosition, e.TargetPosition) &&
		vectorsMatch(in.TargetVelocity, e.TargetVelocity) &&
		vectorsMatch(in.MaxVelocity, e.MaxVelocity) &&
		vectorsMatch(in.MaxAcceleration, e.MaxAcceleration) &&
		vectorsMatch(in.AlternativeTargetVelocity, e.AlternativeTargetVelocity) &&
		slices.Equal(in.Selection, e.Selection) &&
		cacheEqual(in.MinimumSynchronizationTime, e.MinimumSynchronizationTime)
}

// reusable reports whether the trajectory computed by a previous call can serve in.
func (s *Position) reusable(in *PositionInput, flags PositionFlags) bool {
	if s.mode != modeComputed || flags != s.lastFlags || s.lastResult.IsError() {
		return false
	}
	if s.lastResult == FinalStateReached && flags.BehaviorAfterFinalState == RecomputeTrajectory {
		return false
	}
	return s.cache.matches(in)
}

// velocityCache is positionCache for the velocity based algorithm.
type velocityCache struct {
	valid    bool
	expected *VelocityInput
}

func newVelocityCache(dofs int) velocityCache {
	return velocityCache{expected: NewVelocityInput(dofs)}
}

func (c *velocityCache) invalidate() {
	c.valid = false
}

func (c *velocityCache) store(in *VelocityInput, out *Output) {
	e := c.expected
	copy(e.CurrentPosition, out.NewPosition)
	copy(e.CurrentVelocity, out.NewVelocity)
	copy(e.CurrentAcceleration, out.NewAcceleration)
	copy(e.TargetVelocity, in.TargetVelocity)
	copy(e.MaxAcceleration, in.MaxAcceleration)
	copy(e.Selection, in.Selection)
	e.MinimumSynchronizationTime = in.MinimumSynchronizationTime
	c.valid = true
}

func (c *velocityCache) matches(in *VelocityInput) bool {
	e := c.expected
	return c.valid &&
		vectorsMatch(in.CurrentPosition, e.CurrentPosition) &&
		vectorsMatch(in.CurrentVelocity, e.CurrentVelocity) &&
		vectorsMatch(in.CurrentAcceleration, e.CurrentAcceleration) &&
		vectorsMatch(in.TargetVelocity, e.TargetVelocity) &&
		vectorsMatch(in.MaxAcceleration, e.MaxAcceleration) &&
		slices.Equal(in.Selection, e.Selection) &&
		cacheEqual(in.MinimumSynchronizationTime, e.MinimumSynchronizationTime)
}

func vectorsMatch(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !cacheEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
