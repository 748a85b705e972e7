// Package config defines the session settings and scenario files of the trajectory generator.
package config

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/otg/logging"
	"go.viam.com/otg/otg"
)

// DefaultCycleTime is the cycle time used when none is configured, in seconds.
const DefaultCycleTime = 0.001

// Config describes a trajectory generator session.
type Config struct {
	DOFs            int     `json:"dofs"`
	CycleTime       float64 `json:"cycle_time"`
	Synchronization string  `json:"synchronization,omitempty"`
	Extrema         bool    `json:"extrema,omitempty"`
	FinalBehavior   string  `json:"final_behavior,omitempty"`
	Workers         int     `json:"workers,omitempty"`
	Debug           bool    `json:"debug,omitempty"`
}

// configKeys are the settings ConfigFromAttributes reads.
var configKeys = []string{"dofs", "cycle_time", "synchronization", "extrema", "final_behavior", "workers", "debug"}

// ConfigFromAttributes reads a Config from loosely typed settings, applying defaults. The number
// of DOFs defaults to the length of current_position.
func ConfigFromAttributes(am AttributeMap) (cfg Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("invalid config: %v", r)
		}
	}()
	cfg = Config{
		DOFs:            am.Int("dofs", len(am.Float64Slice("current_position"))),
		CycleTime:       am.Float64("cycle_time", DefaultCycleTime),
		Synchronization: am.String("synchronization"),
		Extrema:         am.Bool("extrema", false),
		FinalBehavior:   am.String("final_behavior"),
		Workers:         am.Int("workers", 1),
		Debug:           am.Bool("debug", false),
	}
	return cfg, nil
}

// Validate returns every problem with the config, combined.
func (c *Config) Validate() error {
	var err error
	if c.DOFs <= 0 {
		err = multierr.Append(err, errors.Errorf("dofs must be positive, got %d", c.DOFs))
	}
	if !(c.CycleTime > 0) {
		err = multierr.Append(err, errors.Errorf("cycle_time must be positive, got %v", c.CycleTime))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("workers may not be negative, got %d", c.Workers))
	}
	_, syncErr := ParseSyncBehavior(c.Synchronization)
	_, finalErr := ParseFinalBehavior(c.FinalBehavior)
	return multierr.Combine(err, syncErr, finalErr)
}

// Flags returns the algorithm flags the config selects.
func (c *Config) Flags() (otg.Flags, error) {
	sync, err := ParseSyncBehavior(c.Synchronization)
	if err != nil {
		return otg.Flags{}, err
	}
	final, err := ParseFinalBehavior(c.FinalBehavior)
	if err != nil {
		return otg.Flags{}, err
	}
	return otg.Flags{
		SynchronizationBehavior:  sync,
		EnableExtremaCalculation: c.Extrema,
		BehaviorAfterFinalState:  final,
	}, nil
}

// Options returns the session options the config selects.
func (c *Config) Options(logger logging.Logger) []otg.Option {
	opts := []otg.Option{otg.WithLogger(logger)}
	if c.Workers > 1 {
		opts = append(opts, otg.WithWorkers(c.Workers))
	}
	return opts
}

// NewPosition creates a position based session as configured.
func (c *Config) NewPosition(logger logging.Logger) (*otg.Position, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return otg.NewPosition(c.DOFs, c.CycleTime, c.Options(logger)...)
}

// ParseSyncBehavior parses the name of a synchronization behavior. The empty string selects
// the default, phase synchronization if possible.
func ParseSyncBehavior(name string) (otg.SyncBehavior, error) {
	if name == "" {
		return otg.PhaseSyncIfPossible, nil
	}
	for _, b := range []otg.SyncBehavior{otg.PhaseSyncIfPossible, otg.OnlyTimeSync, otg.OnlyPhaseSync, otg.NoSync} {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, errors.Errorf("unknown synchronization behavior %q", name)
}

// ParseFinalBehavior parses the name of a behavior after the final state of motion is reached.
// The empty string selects keeping the target velocity.
func ParseFinalBehavior(name string) (otg.FinalBehavior, error) {
	if name == "" {
		return otg.KeepTargetVelocity, nil
	}
	for _, b := range []otg.FinalBehavior{otg.KeepTargetVelocity, otg.RecomputeTrajectory} {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, errors.Errorf("unknown final behavior %q", name)
}
