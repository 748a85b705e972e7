package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/otg/logging"
	"go.viam.com/otg/otg"
)

const twoDOFScenario = `{
	"cycle_time": 0.01,
	"synchronization": "only_time_sync",
	"current_position": [0, 1],
	"current_velocity": [0.5, 0],
	"target_position": [2, -1],
	"max_velocity": [1, 1],
	"max_acceleration": [2, 2],
	"selection": [true, false],
	"minimum_synchronization_time": 4,
	"keep_current_velocity": true
}`

func TestScenarioFromReader(t *testing.T) {
	s, err := FromReader("", strings.NewReader(twoDOFScenario))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.DOFs, test.ShouldEqual, 2)
	test.That(t, s.CycleTime, test.ShouldEqual, 0.01)
	test.That(t, s.Workers, test.ShouldEqual, 1)

	in := s.PositionInput()
	test.That(t, in.CurrentPosition, test.ShouldResemble, []float64{0, 1})
	test.That(t, in.CurrentVelocity, test.ShouldResemble, []float64{0.5, 0})
	test.That(t, in.CurrentAcceleration, test.ShouldResemble, []float64{0, 0})
	test.That(t, in.TargetPosition, test.ShouldResemble, []float64{2, -1})
	test.That(t, in.TargetVelocity, test.ShouldResemble, []float64{0, 0})
	test.That(t, in.Selection, test.ShouldResemble, []bool{true, false})
	test.That(t, in.MinimumSynchronizationTime, test.ShouldEqual, 4.)
	test.That(t, in.Validate(), test.ShouldBeNil)

	flags, err := s.PositionFlags()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, flags.SynchronizationBehavior, test.ShouldEqual, otg.OnlyTimeSync)
	test.That(t, flags.KeepCurrentVelocityInCaseOfFallbackStrategy, test.ShouldBeTrue)
}

func TestScenarioInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		json string
		msg  string
	}{
		{"not json", `{"dofs": `, "failed to decode"},
		{"unknown key", `{"current_position": [0], "target_position": [1], "max_velocity": [1],
			"max_acceleration": [1], "max_speed": 3}`, "max_speed"},
		{"wrong length", `{"dofs": 2, "current_position": [0, 0], "target_position": [1],
			"max_velocity": [1, 1], "max_acceleration": [1, 1]}`, "target_position needs 2 values, got 1"},
		{"optional wrong length", `{"current_position": [0], "target_position": [1], "max_velocity": [1],
			"max_acceleration": [1], "target_velocity": [1, 2]}`, "target_velocity needs 1 values, got 2"},
		{"selection wrong length", `{"current_position": [0], "target_position": [1], "max_velocity": [1],
			"max_acceleration": [1], "selection": [true, true]}`, "selection needs 1 values"},
		{"empty", `{}`, "dofs must be positive"},
		{"cycle time not a number", `{"cycle_time": "fast", "current_position": [0], "target_position": [1],
			"max_velocity": [1], "max_acceleration": [1]}`, "wanted a float64 for (cycle_time)"},
		{"position not a number", `{"current_position": [0, "x"], "target_position": [1, 1],
			"max_velocity": [1, 1], "max_acceleration": [1, 1]}`, "values in (current_position) need to be numbers"},
		{"bad sync", `{"current_position": [0], "target_position": [1], "max_velocity": [1],
			"max_acceleration": [1], "synchronization": "always"}`, `"always"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromReader("bad.json", strings.NewReader(tc.json))
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
			test.That(t, err.Error(), test.ShouldContainSubstring, "bad.json")
		})
	}
}

func TestSampleScenario(t *testing.T) {
	s := SampleScenario()
	test.That(t, s.Validate(), test.ShouldBeNil)

	session, err := s.NewPosition(logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	flags, err := s.PositionFlags()
	test.That(t, err, test.ShouldBeNil)

	out := otg.NewPositionOutput(1)
	test.That(t, session.Update(s.PositionInput(), out, flags), test.ShouldEqual, otg.Working)
	test.That(t, out.SynchronizationTime, test.ShouldAlmostEqual, 6.5)
	test.That(t, out.TrajectoryIsPhaseSynchronized, test.ShouldBeTrue)
}

func TestScenarioFromPoints(t *testing.T) {
	s := ScenarioFromPoints(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: -1, Y: 2, Z: 5}, 2, 4)
	test.That(t, s.Validate(), test.ShouldBeNil)
	in := s.PositionInput()
	test.That(t, in.CurrentPosition, test.ShouldResemble, []float64{1, 2, 3})
	test.That(t, in.TargetPosition, test.ShouldResemble, []float64{-1, 2, 5})
	test.That(t, in.MaxVelocity, test.ShouldResemble, []float64{2, 2, 2})
	test.That(t, in.MaxAcceleration, test.ShouldResemble, []float64{4, 4, 4})

	// a straight line in space is phase synchronized
	session, err := s.NewPosition(logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	out := otg.NewPositionOutput(3)
	test.That(t, session.Update(in, out, otg.PositionFlags{}), test.ShouldEqual, otg.Working)
	test.That(t, out.TrajectoryIsPhaseSynchronized, test.ShouldBeTrue)
}

func TestReadWrite(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "sample.json")
	test.That(t, Write(path, SampleScenario()), test.ShouldBeNil)
	s, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s, test.ShouldResemble, SampleScenario())

	t.Setenv("OTG_TEST_TARGET", "-3.5")
	path = filepath.Join(dir, "env.json")
	//nolint:gosec
	err = os.WriteFile(path, []byte(`{
		"current_position": [0],
		"target_position": [${OTG_TEST_TARGET}],
		"max_velocity": [1],
		"max_acceleration": [1]
	}`), 0o644)
	test.That(t, err, test.ShouldBeNil)
	s, err = Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.TargetPosition, test.ShouldResemble, []float64{-3.5})

	_, err = Read(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}
