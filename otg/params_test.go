package otg

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestPositionInputValidate(t *testing.T) {
	valid := func() *PositionInput {
		in := NewPositionInput(2)
		in.MaxVelocity[0], in.MaxVelocity[1] = 1, 2
		in.MaxAcceleration[0], in.MaxAcceleration[1] = 1, 2
		return in
	}
	test.That(t, valid().Validate(), test.ShouldBeNil)
	test.That(t, valid().CheckForValidity(), test.ShouldBeTrue)

	for _, c := range []struct {
		name   string
		modify func(in *PositionInput)
		msg    string
	}{
		{"non-positive velocity bound", func(in *PositionInput) { in.MaxVelocity[1] = 0 }, "dof 1: max velocity must be positive"},
		{"negative acceleration bound", func(in *PositionInput) { in.MaxAcceleration[0] = -1 }, "dof 0: max acceleration must be positive"},
		{"target velocity above bound", func(in *PositionInput) { in.TargetVelocity[0] = -1.5 }, "target velocity -1.5 exceeds"},
		{"not finite", func(in *PositionInput) { in.CurrentPosition[1] = math.NaN() }, "dof 1: values must be finite"},
		{"negative minimum synchronization time", func(in *PositionInput) { in.MinimumSynchronizationTime = -1 }, "minimum synchronization time"},
		{"short vector", func(in *PositionInput) { in.TargetPosition = in.TargetPosition[:1] }, "must all have 2 entries"},
	} {
		t.Run(c.name, func(t *testing.T) {
			in := valid()
			c.modify(in)
			err := in.Validate()
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, c.msg)
			test.That(t, in.CheckForValidity(), test.ShouldBeFalse)
		})
	}

	// unselected DOFs are not checked
	in := valid()
	in.Selection[1] = false
	in.MaxVelocity[1] = 0
	in.CurrentVelocity[1] = math.Inf(1)
	test.That(t, in.CheckForValidity(), test.ShouldBeTrue)
}

func TestVelocityInputValidate(t *testing.T) {
	in := NewVelocityInput(1)
	test.That(t, in.CheckForValidity(), test.ShouldBeFalse)
	in.MaxAcceleration[0] = 1
	test.That(t, in.CheckForValidity(), test.ShouldBeTrue)

	// no velocity bound applies to the target velocity
	in.TargetVelocity[0] = 100
	test.That(t, in.CheckForValidity(), test.ShouldBeTrue)

	in.MinimumSynchronizationTime = math.NaN()
	test.That(t, in.CheckForValidity(), test.ShouldBeFalse)
	in.MinimumSynchronizationTime = 0

	in.CurrentAcceleration[0] = math.Inf(-1)
	err := in.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "dof 0: values must be finite")
}
