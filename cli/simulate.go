package cli

import (
	"github.com/pkg/errors"

	"go.viam.com/otg/config"
	"go.viam.com/otg/logging"
	"go.viam.com/otg/otg"
)

// sample is the state of motion at one cycle of a simulation.
type sample struct {
	cycle        int
	time         float64
	result       otg.Result
	position     []float64
	velocity     []float64
	acceleration []float64
}

// simulation is a scenario fed back into a position based session until it reaches its target.
type simulation struct {
	samples []sample

	synchronizationTime float64
	phaseSynchronized   bool
	executionTimes      []float64
	greatestDOF         int
	step1Profiles       []otg.Step1Profile
	step2Profiles       []otg.Step2Profile
}

// simulate runs s for at most maxCycles cycles. The first sample is the initial state of motion.
func simulate(s *config.Scenario, logger logging.Logger, maxCycles int) (*simulation, error) {
	session, err := s.NewPosition(logger)
	if err != nil {
		return nil, err
	}
	flags, err := s.PositionFlags()
	if err != nil {
		return nil, err
	}
	in := s.PositionInput()
	out := otg.NewPositionOutput(s.DOFs)

	sim := &simulation{}
	sim.record(0, 0, otg.Working, in.CurrentPosition, in.CurrentVelocity, in.CurrentAcceleration)
	for cycle := 1; cycle <= maxCycles; cycle++ {
		result := session.Update(in, out, flags)
		if cycle == 1 {
			sim.synchronizationTime = out.SynchronizationTime
			sim.phaseSynchronized = out.TrajectoryIsPhaseSynchronized
			sim.executionTimes = append([]float64(nil), out.ExecutionTimes...)
			sim.greatestDOF = out.DOFWithTheGreatestExecutionTime
			sim.step1Profiles = session.Step1Profiles()
			sim.step2Profiles = session.Step2Profiles()
		}
		sim.record(cycle, float64(cycle)*s.CycleTime, result, out.NewPosition, out.NewVelocity, out.NewAcceleration)
		if result.IsError() {
			logger.Warnw("trajectory fell back", "cycle", cycle, "result", result.String())
			return sim, errors.Wrapf(result.Err(), "cycle %d", cycle)
		}
		if result == otg.FinalStateReached {
			return sim, nil
		}
		copy(in.CurrentPosition, out.NewPosition)
		copy(in.CurrentVelocity, out.NewVelocity)
		copy(in.CurrentAcceleration, out.NewAcceleration)
	}
	return sim, errors.Errorf("target not reached within %d cycles", maxCycles)
}

func (sim *simulation) record(cycle int, t float64, result otg.Result, p, v, a []float64) {
	sim.samples = append(sim.samples, sample{
		cycle:        cycle,
		time:         t,
		result:       result,
		position:     append([]float64(nil), p...),
		velocity:     append([]float64(nil), v...),
		acceleration: append([]float64(nil), a...),
	})
}

// last returns the final sample.
func (sim *simulation) last() sample {
	return sim.samples[len(sim.samples)-1]
}
