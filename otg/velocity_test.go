package otg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"

	"go.viam.com/otg/logging"
)

func newTestVelocity(t *testing.T, dofs int, cycleTime float64, opts ...Option) *Velocity {
	t.Helper()
	s, err := NewVelocity(dofs, cycleTime, append([]Option{WithLogger(logging.NewTestLogger(t))}, opts...)...)
	test.That(t, err, test.ShouldBeNil)
	return s
}

func velocityInput(current, target, maxAcceleration []float64) *VelocityInput {
	in := NewVelocityInput(len(current))
	copy(in.CurrentVelocity, current)
	copy(in.TargetVelocity, target)
	copy(in.MaxAcceleration, maxAcceleration)
	return in
}

func TestVelocityUpdate(t *testing.T) {
	// minimum times are 2 and 1
	in := velocityInput([]float64{0, 1}, []float64{2, -1}, []float64{1, 2})
	in.CurrentPosition[1] = 3

	for _, tc := range []struct {
		sync       SyncBehavior
		execTimes  []float64
		velocities []float64
		positions  []float64
	}{
		{PhaseSyncIfPossible, []float64{2, 2}, []float64{0.01, 0.99}, []float64{2, 3}},
		{NoSync, []float64{2, 1}, []float64{0.01, 0.98}, []float64{2, 3}},
	} {
		t.Run(tc.sync.String(), func(t *testing.T) {
			s := newTestVelocity(t, 2, 0.01)
			out := NewVelocityOutput(2)
			flags := VelocityFlags{Flags: Flags{SynchronizationBehavior: tc.sync}}
			test.That(t, s.Update(in, out, flags), test.ShouldEqual, Working)
			test.That(t, out.ANewCalculationWasPerformed, test.ShouldBeTrue)
			test.That(t, out.TrajectoryIsPhaseSynchronized, test.ShouldBeFalse)
			test.That(t, out.SynchronizationTime, test.ShouldAlmostEqual, 2)
			test.That(t, out.DOFWithTheGreatestExecutionTime, test.ShouldEqual, 0)
			for i := range tc.execTimes {
				test.That(t, out.ExecutionTimes[i], test.ShouldAlmostEqual, tc.execTimes[i])
				test.That(t, out.NewVelocity[i], test.ShouldAlmostEqual, tc.velocities[i])
				test.That(t, out.PositionValuesAtTargetVelocity[i], test.ShouldAlmostEqual, tc.positions[i])
			}

			test.That(t, s.AtTime(2, out), test.ShouldEqual, FinalStateReached)
			test.That(t, out.NewVelocity[0], test.ShouldAlmostEqual, 2)
			test.That(t, out.NewVelocity[1], test.ShouldAlmostEqual, -1)
			test.That(t, out.NewAcceleration[0], test.ShouldEqual, 0.)
		})
	}
}

func TestVelocityPhaseSynchronization(t *testing.T) {
	in := velocityInput([]float64{1, -2}, []float64{-0.5, 1}, []float64{1, 1})
	s := newTestVelocity(t, 2, 0.01)
	out := NewVelocityOutput(2)
	test.That(t, s.Update(in, out, VelocityFlags{}), test.ShouldEqual, Working)
	test.That(t, out.TrajectoryIsPhaseSynchronized, test.ShouldBeTrue)
	test.That(t, out.SynchronizationTime, test.ShouldAlmostEqual, 3)
	test.That(t, out.NewVelocity[1], test.ShouldAlmostEqual, -2*out.NewVelocity[0])

	test.That(t, s.Update(in, out, VelocityFlags{Flags: Flags{SynchronizationBehavior: OnlyTimeSync}}), test.ShouldEqual, Working)
	test.That(t, out.TrajectoryIsPhaseSynchronized, test.ShouldBeFalse)

	in.TargetVelocity[1] = 2
	flags := VelocityFlags{Flags: Flags{SynchronizationBehavior: OnlyPhaseSync}}
	test.That(t, s.Update(in, out, flags), test.ShouldEqual, ErrorNoPhaseSyncPossible)
	test.That(t, out.NewVelocity[0], test.ShouldEqual, 1.)
	test.That(t, out.NewAcceleration[0], test.ShouldEqual, 0.)
	test.That(t, out.NewPosition[1], test.ShouldAlmostEqual, -0.02)
}

func TestVelocityMinimumSynchronizationTime(t *testing.T) {
	in := velocityInput([]float64{0}, []float64{1}, []float64{1})
	in.MinimumSynchronizationTime = 4
	s := newTestVelocity(t, 1, 0.01)
	out := NewVelocityOutput(1)
	test.That(t, s.Update(in, out, VelocityFlags{}), test.ShouldEqual, Working)
	test.That(t, out.SynchronizationTime, test.ShouldAlmostEqual, 4)
	test.That(t, out.NewAcceleration[0], test.ShouldAlmostEqual, 0.25)
	test.That(t, out.PositionValuesAtTargetVelocity[0], test.ShouldAlmostEqual, 2)
}

func TestVelocityInvalidInput(t *testing.T) {
	in := velocityInput([]float64{1}, []float64{0}, []float64{0})
	s := newTestVelocity(t, 1, 0.01)
	out := NewVelocityOutput(1)
	test.That(t, s.Update(in, out, VelocityFlags{}), test.ShouldEqual, ErrorInvalidInputValues)
	test.That(t, out.NewPosition[0], test.ShouldAlmostEqual, 0.01)
	test.That(t, out.NewVelocity[0], test.ShouldEqual, 1.)
	test.That(t, s.AtTime(1, out), test.ShouldEqual, ErrorInvalidInputValues)
	test.That(t, out.NewPosition[0], test.ShouldAlmostEqual, 1)

	test.That(t, s.Update(nil, out, VelocityFlags{}), test.ShouldEqual, ErrorNullPointer)
	test.That(t, s.Update(in, NewVelocityOutput(2), VelocityFlags{}), test.ShouldEqual, ErrorNumberOfDOFs)
	test.That(t, s.AtTime(-1, out), test.ShouldEqual, ErrorUserTimeOutOfRange)
}

func TestVelocityCache(t *testing.T) {
	in := velocityInput([]float64{0, 0}, []float64{1, 2}, []float64{1, 1})
	s := newTestVelocity(t, 2, 0.01, WithWorkers(2))
	out := NewVelocityOutput(2)
	test.That(t, s.Update(in, out, VelocityFlags{}), test.ShouldEqual, Working)

	copy(in.CurrentPosition, out.NewPosition)
	copy(in.CurrentVelocity, out.NewVelocity)
	copy(in.CurrentAcceleration, out.NewAcceleration)
	test.That(t, s.Update(in, out, VelocityFlags{}), test.ShouldEqual, Working)
	test.That(t, out.ANewCalculationWasPerformed, test.ShouldBeFalse)
	test.That(t, out.NewVelocity[1], test.ShouldAlmostEqual, 0.02)

	preview := NewVelocityOutput(2)
	test.That(t, s.AtTime(0, preview), test.ShouldEqual, Working)
	test.That(t, preview.NewVelocity[1], test.ShouldAlmostEqual, 0.01)
	again := NewVelocityOutput(2)
	s.AtTime(0, again)
	test.That(t, cmp.Diff(preview, again), test.ShouldBeEmpty)
}
