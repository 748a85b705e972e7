package otg

import "github.com/pkg/errors"

// Result is the status returned by every trajectory computation. Negative values are errors; an
// error result still comes with a valid output computed by a fallback strategy.
type Result int

const (
	// Working means the final state of motion has not been reached yet.
	Working Result = 0
	// FinalStateReached means the output is the target state of motion.
	FinalStateReached Result = 1

	// ErrorInvalidInputValues is returned when bounds, target velocities or the minimum
	// synchronization time are out of range.
	ErrorInvalidInputValues Result = -100
	// ErrorExecutionTimeCalculation is returned when building a trajectory failed numerically.
	ErrorExecutionTimeCalculation Result = -101
	// ErrorSynchronization is returned when no synchronization time could be found.
	ErrorSynchronization Result = -102
	// ErrorNumberOfDOFs is returned when the input or output is sized for a different number of DOFs.
	ErrorNumberOfDOFs Result = -103
	// ErrorNoPhaseSyncPossible is returned when phase synchronization was required but is not possible.
	ErrorNoPhaseSyncPossible Result = -104
	// ErrorNullPointer is returned when an input or output argument is nil.
	ErrorNullPointer Result = -105
	// ErrorExecutionTimeTooBig is returned when the synchronization time exceeds MaxExecutionTime.
	ErrorExecutionTimeTooBig Result = -106
	// ErrorUserTimeOutOfRange is returned by AtTime for negative or too large times.
	ErrorUserTimeOutOfRange Result = -107
)

var resultErrors = map[Result]error{
	ErrorInvalidInputValues:       errors.New("invalid input values"),
	ErrorExecutionTimeCalculation: errors.New("execution time calculation failed"),
	ErrorSynchronization:          errors.New("synchronization failed"),
	ErrorNumberOfDOFs:             errors.New("number of degrees of freedom does not match"),
	ErrorNoPhaseSyncPossible:      errors.New("phase synchronization is not possible"),
	ErrorNullPointer:              errors.New("nil input or output"),
	ErrorExecutionTimeTooBig:      errors.New("execution time exceeds maximum"),
	ErrorUserTimeOutOfRange:       errors.New("requested time is out of range"),
}

// IsError reports whether the result is one of the error codes.
func (r Result) IsError() bool {
	return r < 0
}

// Err returns a sentinel error for error results and nil otherwise.
func (r Result) Err() error {
	if err, ok := resultErrors[r]; ok {
		return err
	}
	if r.IsError() {
		return errors.Errorf("unknown result %d", int(r))
	}
	return nil
}

func (r Result) String() string {
	switch r {
	case Working:
		return "working"
	case FinalStateReached:
		return "final state reached"
	default:
		if err, ok := resultErrors[r]; ok {
			return err.Error()
		}
		return "unknown result"
	}
}
