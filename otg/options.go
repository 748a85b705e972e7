package otg

import "go.viam.com/otg/logging"

type sessionOptions struct {
	logger  logging.Logger
	workers int
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		logger:  logging.Global(),
		workers: 1,
	}
}

// Option configures a Position or Velocity session.
type Option func(*sessionOptions)

// WithLogger sets the logger fallback activations and numerical failures are reported to.
func WithLogger(logger logging.Logger) Option {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers computes the per-DOF motions of a trajectory on up to n goroutines.
func WithWorkers(n int) Option {
	return func(o *sessionOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}
