package otg

import (
	"math"

	"go.viam.com/otg/otg/polynomial"
)

// state is a copy of the current state of motion and selection of every DOF.
type state struct {
	pos, vel, acc []float64
	selected      []bool
}

func newState(dofs int) state {
	return state{
		pos:      make([]float64, dofs),
		vel:      make([]float64, dofs),
		acc:      make([]float64, dofs),
		selected: make([]bool, dofs),
	}
}

func (s *state) set(pos, vel, acc []float64, selected []bool) {
	copy(s.pos, pos)
	copy(s.vel, vel)
	copy(s.acc, acc)
	copy(s.selected, selected)
}

// trajectory is the result of Steps 1 and 2: one motion per DOF on a common time axis that
// starts at the state of motion the trajectory was computed from.
type trajectory struct {
	motions     []polynomial.Motion
	execTimes   []float64
	syncTime    float64
	phaseSynced bool
	greatestDOF int
	// clock is the time of the current state of motion on the trajectory's time axis.
	clock float64
}

func newTrajectory(dofs int) trajectory {
	return trajectory{
		motions:   make([]polynomial.Motion, dofs),
		execTimes: make([]float64, dofs),
	}
}

func (tr *trajectory) reset() {
	for i := range tr.motions {
		tr.motions[i].Reset()
		tr.execTimes[i] = 0
	}
	tr.syncTime = 0
	tr.phaseSynced = false
	tr.greatestDOF = 0
	tr.clock = 0
}

// at returns the state of DOF i at t. DOFs that are not selected keep their current state.
func (tr *trajectory) at(i int, t float64, cur *state) (float64, float64, float64) {
	if !cur.selected[i] {
		return cur.pos[i], cur.vel[i], cur.acc[i]
	}
	return tr.motions[i].At(t)
}

// sample evaluates the trajectory at t, on the trajectory's own time axis, and fills in out.
func (tr *trajectory) sample(t float64, cur *state, out *Output, extrema bool) Result {
	for i := range out.NewPosition {
		out.NewPosition[i], out.NewVelocity[i], out.NewAcceleration[i] = tr.at(i, t, cur)
		out.ExecutionTimes[i] = 0
		if cur.selected[i] {
			out.ExecutionTimes[i] = math.Max(0, tr.execTimes[i]-tr.clock)
		}
	}
	out.SynchronizationTime = math.Max(0, tr.syncTime-tr.clock)
	out.TrajectoryIsPhaseSynchronized = tr.phaseSynced
	out.DOFWithTheGreatestExecutionTime = tr.greatestDOF
	if extrema {
		tr.extrema(t, cur, out)
	} else {
		out.zeroExtrema()
	}
	if t < tr.syncTime {
		return Working
	}
	return FinalStateReached
}

// extrema finds, for every DOF, the smallest and largest position it reaches between t and the
// end of its motion, together with the state of all DOFs at those times.
func (tr *trajectory) extrema(t float64, cur *state, out *Output) {
	for i := range out.MinPosition {
		minT, maxT := t, t
		minP, _, _ := tr.at(i, t, cur)
		maxP := minP
		if cur.selected[i] {
			m := &tr.motions[i]
			end := tr.execTimes[i]
			consider := func(tau float64) {
				p, _, _ := m.At(tau)
				if p < minP {
					minP, minT = p, tau
				}
				if p > maxP {
					maxP, maxT = p, tau
				}
			}
			if end > t {
				for j, seg := range m.Segments() {
					root, ok := seg.VelocityRoot()
					// ramps through zero velocity are split, so roots often sit on a boundary
					if !ok || root < t || root > end || root < seg.T0 || root > m.SegmentEnd(j) {
						continue
					}
					consider(root)
				}
				consider(end)
			}
		}
		out.MinPosition[i], out.MaxPosition[i] = minP, maxP
		tr.stateAt(minT, cur, &out.MinState[i])
		tr.stateAt(maxT, cur, &out.MaxState[i])
	}
}

func (tr *trajectory) stateAt(t float64, cur *state, e *ExtremumState) {
	e.Time = t - tr.clock
	for k := range e.Position {
		e.Position[k], e.Velocity[k], e.Acceleration[k] = tr.at(k, t, cur)
	}
}

// continueAtCurrentVelocity fills out with every DOF moving on at its current velocity for
// dt, without acceleration. Values that are not finite are replaced by zero.
func continueAtCurrentVelocity(cur *state, dt float64, out *Output) {
	for i := range out.NewPosition {
		out.ExecutionTimes[i] = 0
		if !cur.selected[i] {
			out.NewPosition[i], out.NewVelocity[i], out.NewAcceleration[i] = cur.pos[i], cur.vel[i], cur.acc[i]
			continue
		}
		p, v := cur.pos[i], cur.vel[i]
		if !isFinite(v) {
			v = 0
		}
		if !isFinite(p) {
			p = 0
		}
		out.NewPosition[i] = p + v*dt
		out.NewVelocity[i] = v
		out.NewAcceleration[i] = 0
	}
	out.SynchronizationTime = 0
	out.TrajectoryIsPhaseSynchronized = false
	out.DOFWithTheGreatestExecutionTime = 0
	out.zeroExtrema()
}

func (out *Output) copyFrom(src *Output) {
	copy(out.NewPosition, src.NewPosition)
	copy(out.NewVelocity, src.NewVelocity)
	copy(out.NewAcceleration, src.NewAcceleration)
	out.ANewCalculationWasPerformed = src.ANewCalculationWasPerformed
	out.TrajectoryIsPhaseSynchronized = src.TrajectoryIsPhaseSynchronized
	out.SynchronizationTime = src.SynchronizationTime
	copy(out.ExecutionTimes, src.ExecutionTimes)
	out.DOFWithTheGreatestExecutionTime = src.DOFWithTheGreatestExecutionTime
	copy(out.MinPosition, src.MinPosition)
	copy(out.MaxPosition, src.MaxPosition)
	for i := range out.MinState {
		copyExtremumState(&out.MinState[i], &src.MinState[i])
		copyExtremumState(&out.MaxState[i], &src.MaxState[i])
	}
}

func copyExtremumState(dst, src *ExtremumState) {
	dst.Time = src.Time
	copy(dst.Position, src.Position)
	copy(dst.Velocity, src.Velocity)
	copy(dst.Acceleration, src.Acceleration)
}
