package otg

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/otg/utils"
)

// PositionInput is the input of the position based algorithm for one control cycle. Every slice
// holds one entry per DOF.
type PositionInput struct {
	CurrentPosition     []float64
	CurrentVelocity     []float64
	CurrentAcceleration []float64

	TargetPosition []float64
	TargetVelocity []float64

	MaxVelocity     []float64
	MaxAcceleration []float64
	// MaxJerk is accepted for compatibility with jerk limited generators and is ignored.
	MaxJerk []float64

	Selection []bool

	// AlternativeTargetVelocity is steered to by the fallback strategy.
	AlternativeTargetVelocity []float64

	// MinimumSynchronizationTime is a lower bound for the synchronization time, in seconds.
	MinimumSynchronizationTime float64
}

// NewPositionInput returns an input for dofs DOFs with every DOF selected.
func NewPositionInput(dofs int) *PositionInput {
	in := &PositionInput{
		CurrentPosition:           make([]float64, dofs),
		CurrentVelocity:           make([]float64, dofs),
		CurrentAcceleration:       make([]float64, dofs),
		TargetPosition:            make([]float64, dofs),
		TargetVelocity:            make([]float64, dofs),
		MaxVelocity:               make([]float64, dofs),
		MaxAcceleration:           make([]float64, dofs),
		MaxJerk:                   make([]float64, dofs),
		Selection:                 make([]bool, dofs),
		AlternativeTargetVelocity: make([]float64, dofs),
	}
	for i := range in.Selection {
		in.Selection[i] = true
	}
	return in
}

// DOFs returns the number of DOFs the input is sized for.
func (in *PositionInput) DOFs() int {
	return len(in.CurrentPosition)
}

func (in *PositionInput) sizedFor(dofs int) bool {
	for _, l := range []int{
		len(in.CurrentPosition), len(in.CurrentVelocity), len(in.CurrentAcceleration),
		len(in.TargetPosition), len(in.TargetVelocity), len(in.MaxVelocity), len(in.MaxAcceleration),
		len(in.Selection),
	} {
		if l != dofs {
			return false
		}
	}
	return true
}

// Validate returns every reason for which the input cannot be used by the position based
// algorithm, combined into a single error.
func (in *PositionInput) Validate() error {
	dofs := in.DOFs()
	if !in.sizedFor(dofs) {
		return errors.Errorf("input vectors must all have %d entries", dofs)
	}
	var err error
	for i := 0; i < dofs; i++ {
		if !in.Selection[i] {
			continue
		}
		if !utils.IsFinite(in.CurrentPosition[i], in.CurrentVelocity[i], in.CurrentAcceleration[i],
			in.TargetPosition[i], in.TargetVelocity[i], in.MaxVelocity[i], in.MaxAcceleration[i]) {
			err = multierr.Append(err, errors.Errorf("dof %d: values must be finite", i))
			continue
		}
		if in.MaxVelocity[i] <= 0 {
			err = multierr.Append(err, errors.Errorf("dof %d: max velocity must be positive, got %v", i, in.MaxVelocity[i]))
		}
		if in.MaxAcceleration[i] <= 0 {
			err = multierr.Append(err, errors.Errorf("dof %d: max acceleration must be positive, got %v", i, in.MaxAcceleration[i]))
		}
		if math.Abs(in.TargetVelocity[i]) > in.MaxVelocity[i] {
			err = multierr.Append(err, errors.Errorf("dof %d: target velocity %v exceeds max velocity %v",
				i, in.TargetVelocity[i], in.MaxVelocity[i]))
		}
	}
	err = multierr.Append(err, validateMinimumSynchronizationTime(in.MinimumSynchronizationTime))
	return err
}

// CheckForValidity reports whether the input can be used by the position based algorithm.
func (in *PositionInput) CheckForValidity() bool {
	return in.Validate() == nil
}

func validateMinimumSynchronizationTime(t float64) error {
	if math.IsNaN(t) || t < 0 || t > MaxExecutionTime {
		return errors.Errorf("minimum synchronization time must be within [0, %v], got %v", MaxExecutionTime, t)
	}
	return nil
}

// VelocityInput is the input of the velocity based algorithm for one control cycle.
type VelocityInput struct {
	CurrentPosition     []float64
	CurrentVelocity     []float64
	CurrentAcceleration []float64

	TargetVelocity []float64

	MaxAcceleration []float64
	// MaxJerk is accepted for compatibility with jerk limited generators and is ignored.
	MaxJerk []float64

	Selection []bool

	// MinimumSynchronizationTime is a lower bound for the synchronization time, in seconds.
	MinimumSynchronizationTime float64
}

// NewVelocityInput returns an input for dofs DOFs with every DOF selected.
func NewVelocityInput(dofs int) *VelocityInput {
	in := &VelocityInput{
		CurrentPosition:     make([]float64, dofs),
		CurrentVelocity:     make([]float64, dofs),
		CurrentAcceleration: make([]float64, dofs),
		TargetVelocity:      make([]float64, dofs),
		MaxAcceleration:     make([]float64, dofs),
		MaxJerk:             make([]float64, dofs),
		Selection:           make([]bool, dofs),
	}
	for i := range in.Selection {
		in.Selection[i] = true
	}
	return in
}

// DOFs returns the number of DOFs the input is sized for.
func (in *VelocityInput) DOFs() int {
	return len(in.CurrentVelocity)
}

func (in *VelocityInput) sizedFor(dofs int) bool {
	for _, l := range []int{
		len(in.CurrentPosition), len(in.CurrentVelocity), len(in.CurrentAcceleration),
		len(in.TargetVelocity), len(in.MaxAcceleration), len(in.Selection),
	} {
		if l != dofs {
			return false
		}
	}
	return true
}

// Validate returns every reason for which the input cannot be used by the velocity based
// algorithm, combined into a single error.
func (in *VelocityInput) Validate() error {
	dofs := in.DOFs()
	if !in.sizedFor(dofs) {
		return errors.Errorf("input vectors must all have %d entries", dofs)
	}
	var err error
	for i := 0; i < dofs; i++ {
		if !in.Selection[i] {
			continue
		}
		if !utils.IsFinite(in.CurrentPosition[i], in.CurrentVelocity[i], in.CurrentAcceleration[i],
			in.TargetVelocity[i], in.MaxAcceleration[i]) {
			err = multierr.Append(err, errors.Errorf("dof %d: values must be finite", i))
			continue
		}
		if in.MaxAcceleration[i] <= 0 {
			err = multierr.Append(err, errors.Errorf("dof %d: max acceleration must be positive, got %v", i, in.MaxAcceleration[i]))
		}
	}
	err = multierr.Append(err, validateMinimumSynchronizationTime(in.MinimumSynchronizationTime))
	return err
}

// CheckForValidity reports whether the input can be used by the velocity based algorithm.
func (in *VelocityInput) CheckForValidity() bool {
	return in.Validate() == nil
}

// ExtremumState is the complete state of motion of all DOFs at the time one DOF reaches a
// positional extremum.
type ExtremumState struct {
	// Time is measured from the current state of motion.
	Time         float64
	Position     []float64
	Velocity     []float64
	Acceleration []float64
}

func newExtremumState(dofs int) ExtremumState {
	return ExtremumState{
		Position:     make([]float64, dofs),
		Velocity:     make([]float64, dofs),
		Acceleration: make([]float64, dofs),
	}
}

func (e *ExtremumState) zero() {
	e.Time = 0
	for i := range e.Position {
		e.Position[i] = 0
		e.Velocity[i] = 0
		e.Acceleration[i] = 0
	}
}

// Output holds the state of motion for the next cycle and the properties of the trajectory it
// was sampled from. All times are measured from the current state of motion.
type Output struct {
	NewPosition     []float64
	NewVelocity     []float64
	NewAcceleration []float64

	ANewCalculationWasPerformed   bool
	TrajectoryIsPhaseSynchronized bool

	SynchronizationTime             float64
	ExecutionTimes                  []float64
	DOFWithTheGreatestExecutionTime int

	// Extrema are only filled in when extrema calculation is enabled and are zero otherwise.
	// MinPosition[i] is the smallest position DOF i reaches from now on and MinState[i] the
	// state of all DOFs at that time; likewise for the maxima.
	MinPosition []float64
	MaxPosition []float64
	MinState    []ExtremumState
	MaxState    []ExtremumState
}

func newOutput(dofs int) Output {
	out := Output{
		NewPosition:     make([]float64, dofs),
		NewVelocity:     make([]float64, dofs),
		NewAcceleration: make([]float64, dofs),
		ExecutionTimes:  make([]float64, dofs),
		MinPosition:     make([]float64, dofs),
		MaxPosition:     make([]float64, dofs),
		MinState:        make([]ExtremumState, dofs),
		MaxState:        make([]ExtremumState, dofs),
	}
	for i := 0; i < dofs; i++ {
		out.MinState[i] = newExtremumState(dofs)
		out.MaxState[i] = newExtremumState(dofs)
	}
	return out
}

// DOFs returns the number of DOFs the output is sized for.
func (out *Output) DOFs() int {
	return len(out.NewPosition)
}

func (out *Output) sizedFor(dofs int) bool {
	if len(out.NewPosition) != dofs || len(out.NewVelocity) != dofs || len(out.NewAcceleration) != dofs ||
		len(out.ExecutionTimes) != dofs || len(out.MinPosition) != dofs || len(out.MaxPosition) != dofs ||
		len(out.MinState) != dofs || len(out.MaxState) != dofs {
		return false
	}
	for i := 0; i < dofs; i++ {
		if len(out.MinState[i].Position) != dofs || len(out.MaxState[i].Position) != dofs {
			return false
		}
	}
	return true
}

func (out *Output) zeroExtrema() {
	for i := range out.MinPosition {
		out.MinPosition[i] = 0
		out.MaxPosition[i] = 0
		out.MinState[i].zero()
		out.MaxState[i].zero()
	}
}

// PositionOutput is the output of the position based algorithm.
type PositionOutput struct {
	Output
}

// NewPositionOutput returns an output for dofs DOFs.
func NewPositionOutput(dofs int) *PositionOutput {
	return &PositionOutput{Output: newOutput(dofs)}
}

// VelocityOutput is the output of the velocity based algorithm.
type VelocityOutput struct {
	Output
	// PositionValuesAtTargetVelocity[i] is where DOF i is when it reaches its target velocity.
	PositionValuesAtTargetVelocity []float64
}

// NewVelocityOutput returns an output for dofs DOFs.
func NewVelocityOutput(dofs int) *VelocityOutput {
	return &VelocityOutput{
		Output:                         newOutput(dofs),
		PositionValuesAtTargetVelocity: make([]float64, dofs),
	}
}
