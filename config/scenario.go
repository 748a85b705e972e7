package config

import (
	"slices"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/otg/otg"
)

// Scenario is a session config together with the input of a single motion.
type Scenario struct {
	Config

	CurrentPosition     []float64 `json:"current_position"`
	CurrentVelocity     []float64 `json:"current_velocity,omitempty"`
	CurrentAcceleration []float64 `json:"current_acceleration,omitempty"`
	TargetPosition      []float64 `json:"target_position"`
	TargetVelocity      []float64 `json:"target_velocity,omitempty"`
	MaxVelocity         []float64 `json:"max_velocity"`
	MaxAcceleration     []float64 `json:"max_acceleration"`
	MaxJerk             []float64 `json:"max_jerk,omitempty"`
	Selection           []bool    `json:"selection,omitempty"`

	AlternativeTargetVelocity  []float64 `json:"alternative_target_velocity,omitempty"`
	MinimumSynchronizationTime float64   `json:"minimum_synchronization_time,omitempty"`
	KeepCurrentVelocity        bool      `json:"keep_current_velocity,omitempty"`
}

// ScenarioFromAttributes decodes a scenario. The session settings are read by
// ConfigFromAttributes and the input vectors are decoded strictly: unknown keys are an error.
func ScenarioFromAttributes(am AttributeMap) (*Scenario, error) {
	cfg, err := ConfigFromAttributes(am)
	if err != nil {
		return nil, err
	}
	s := &Scenario{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           s,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating decoder for scenario")
	}
	if err := decoder.Decode(map[string]interface{}(lo.OmitByKeys(am, configKeys))); err != nil {
		return nil, errors.Wrap(err, "error decoding scenario")
	}
	s.Config = cfg
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the session config and that every given vector has one entry per DOF.
func (s *Scenario) Validate() error {
	err := s.Config.Validate()
	required := map[string][]float64{
		"current_position": s.CurrentPosition,
		"target_position":  s.TargetPosition,
		"max_velocity":     s.MaxVelocity,
		"max_acceleration": s.MaxAcceleration,
	}
	optional := map[string][]float64{
		"current_velocity":            s.CurrentVelocity,
		"current_acceleration":        s.CurrentAcceleration,
		"target_velocity":             s.TargetVelocity,
		"max_jerk":                    s.MaxJerk,
		"alternative_target_velocity": s.AlternativeTargetVelocity,
	}
	for _, name := range sortedKeys(required) {
		if len(required[name]) != s.DOFs {
			err = multierr.Append(err, errors.Errorf("%s needs %d values, got %d", name, s.DOFs, len(required[name])))
		}
	}
	for _, name := range sortedKeys(optional) {
		if n := len(optional[name]); n != 0 && n != s.DOFs {
			err = multierr.Append(err, errors.Errorf("%s needs %d values, got %d", name, s.DOFs, n))
		}
	}
	if n := len(s.Selection); n != 0 && n != s.DOFs {
		err = multierr.Append(err, errors.Errorf("selection needs %d values, got %d", s.DOFs, n))
	}
	return err
}

// PositionInput returns the input for a position based session. Vectors that are not set
// are zero, and every DOF is selected unless a selection is given.
func (s *Scenario) PositionInput() *otg.PositionInput {
	in := otg.NewPositionInput(s.DOFs)
	copy(in.CurrentPosition, s.CurrentPosition)
	copy(in.CurrentVelocity, s.CurrentVelocity)
	copy(in.CurrentAcceleration, s.CurrentAcceleration)
	copy(in.TargetPosition, s.TargetPosition)
	copy(in.TargetVelocity, s.TargetVelocity)
	copy(in.MaxVelocity, s.MaxVelocity)
	copy(in.MaxAcceleration, s.MaxAcceleration)
	copy(in.MaxJerk, s.MaxJerk)
	copy(in.AlternativeTargetVelocity, s.AlternativeTargetVelocity)
	if len(s.Selection) == s.DOFs {
		copy(in.Selection, s.Selection)
	}
	in.MinimumSynchronizationTime = s.MinimumSynchronizationTime
	return in
}

// PositionFlags returns the flags for a position based session.
func (s *Scenario) PositionFlags() (otg.PositionFlags, error) {
	flags, err := s.Flags()
	if err != nil {
		return otg.PositionFlags{}, err
	}
	return otg.PositionFlags{Flags: flags, KeepCurrentVelocityInCaseOfFallbackStrategy: s.KeepCurrentVelocity}, nil
}

// SampleScenario returns the single DOF reference motion: it starts moving away from a target
// behind it and must arrive no sooner than 6.5 seconds later.
func SampleScenario() *Scenario {
	return &Scenario{
		Config: Config{
			DOFs:      1,
			CycleTime: 0.01,
			Workers:   1,
		},
		CurrentPosition:            []float64{100},
		CurrentVelocity:            []float64{100},
		CurrentAcceleration:        []float64{-150},
		TargetPosition:             []float64{-600},
		TargetVelocity:             []float64{50},
		MaxVelocity:                []float64{300},
		MaxAcceleration:            []float64{300},
		MaxJerk:                    []float64{400},
		MinimumSynchronizationTime: 6.5,
	}
}

// ScenarioFromPoints returns a rest to rest motion of a point in space, one DOF per axis.
// Every axis shares the same limits.
func ScenarioFromPoints(from, to r3.Vector, maxVelocity, maxAcceleration float64) *Scenario {
	return &Scenario{
		Config: Config{
			DOFs:      3,
			CycleTime: DefaultCycleTime,
			Workers:   1,
		},
		CurrentPosition: []float64{from.X, from.Y, from.Z},
		TargetPosition:  []float64{to.X, to.Y, to.Z},
		MaxVelocity:     []float64{maxVelocity, maxVelocity, maxVelocity},
		MaxAcceleration: []float64{maxAcceleration, maxAcceleration, maxAcceleration},
	}
}

func sortedKeys(m map[string][]float64) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
