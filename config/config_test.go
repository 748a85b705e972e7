package config

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/otg/logging"
	"go.viam.com/otg/otg"
)

func TestConfigFromAttributes(t *testing.T) {
	cfg, err := ConfigFromAttributes(AttributeMap{"dofs": 3.0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Config{DOFs: 3, CycleTime: DefaultCycleTime, Workers: 1})

	cfg, err = ConfigFromAttributes(AttributeMap{
		"dofs":            2,
		"cycle_time":      0.01,
		"synchronization": "no_sync",
		"extrema":         true,
		"final_behavior":  "recompute_trajectory",
		"workers":         4.0,
		"debug":           true,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Config{
		DOFs:            2,
		CycleTime:       0.01,
		Synchronization: "no_sync",
		Extrema:         true,
		FinalBehavior:   "recompute_trajectory",
		Workers:         4,
		Debug:           true,
	})

	cfg, err = ConfigFromAttributes(AttributeMap{"current_position": []interface{}{0.0, 1.0}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.DOFs, test.ShouldEqual, 2)

	_, err = ConfigFromAttributes(AttributeMap{"extrema": "yes"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "wanted a bool for (extrema)")

	_, err = ConfigFromAttributes(AttributeMap{"current_position": "origin"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "wanted a []float64 for (current_position)")
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{DOFs: 1, CycleTime: 0.001}
	test.That(t, cfg.Validate(), test.ShouldBeNil)

	cfg = Config{DOFs: 0, CycleTime: -1, Workers: -2, Synchronization: "sometimes", FinalBehavior: "stop"}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	for _, msg := range []string{"dofs", "cycle_time", "workers", `"sometimes"`, `"stop"`} {
		test.That(t, err.Error(), test.ShouldContainSubstring, msg)
	}
}

func TestConfigFlags(t *testing.T) {
	cfg := Config{DOFs: 1, CycleTime: 0.001}
	flags, err := cfg.Flags()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, flags, test.ShouldResemble, otg.Flags{})

	cfg.Synchronization = "only_phase_sync"
	cfg.FinalBehavior = "recompute_trajectory"
	cfg.Extrema = true
	flags, err = cfg.Flags()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, flags, test.ShouldResemble, otg.Flags{
		SynchronizationBehavior:  otg.OnlyPhaseSync,
		EnableExtremaCalculation: true,
		BehaviorAfterFinalState:  otg.RecomputeTrajectory,
	})

	cfg.Synchronization = "bad"
	_, err = cfg.Flags()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestParseBehaviors(t *testing.T) {
	for _, b := range []otg.SyncBehavior{otg.PhaseSyncIfPossible, otg.OnlyTimeSync, otg.OnlyPhaseSync, otg.NoSync} {
		parsed, err := ParseSyncBehavior(b.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, b)
	}
	for _, b := range []otg.FinalBehavior{otg.KeepTargetVelocity, otg.RecomputeTrajectory} {
		parsed, err := ParseFinalBehavior(b.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, b)
	}
	_, err := ParseSyncBehavior("unknown")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ParseFinalBehavior("unknown")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConfigNewPosition(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg := Config{DOFs: 2, CycleTime: 0.01, Workers: 2}
	test.That(t, cfg.Options(logger), test.ShouldHaveLength, 2)

	s, err := cfg.NewPosition(logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.DOFs(), test.ShouldEqual, 2)
	test.That(t, s.CycleTime(), test.ShouldEqual, 0.01)

	cfg.DOFs = 0
	_, err = cfg.NewPosition(logger)
	test.That(t, err, test.ShouldNotBeNil)
}
