package otg

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/otg/otg/polynomial"
	"go.viam.com/otg/utils"
)

// step2 builds the motion of every selected DOF for the times chosen by step1.
func (s *Position) step2(in *PositionInput) error {
	if s.traj.phaseSynced && s.traj.syncTime > 0 {
		return s.step2PhaseSynchronized(in)
	}
	clear(s.step2Errs)
	if s.workers > 1 {
		err := utils.GroupWorkParallel(context.Background(), s.dofs, s.workers,
			func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
				return func(memberNum, workNum int) {
					s.step2Errs[workNum] = s.step2DOF(in, workNum)
				}, nil
			})
		if err != nil {
			return errors.Wrap(err, "building motions in parallel")
		}
	} else {
		for i := range s.problems {
			s.step2Errs[i] = s.step2DOF(in, i)
		}
	}
	return multierr.Combine(s.step2Errs...)
}

func (s *Position) step2DOF(in *PositionInput, i int) error {
	m := &s.traj.motions[i]
	s.step2Profiles[i] = Step2Undefined
	switch {
	case !in.Selection[i]:
		m.Reset()
		return nil
	case !s.derived[i]:
		return holdAt(m, s.problems[i].pT)
	}
	profile, err := decisionTree2(s.traj.execTimes[i], s.problems[i], m)
	if err != nil {
		return errors.Wrapf(err, "dof %d", i)
	}
	s.step2Profiles[i] = profile
	return nil
}

func holdAt(m *polynomial.Motion, p float64) error {
	m.Reset()
	return m.Append(polynomial.Polynomial{A0: p})
}

// step2PhaseSynchronized builds the motion of the DOF with the greatest execution time and
// scales it onto every other derived DOF along the reference vector.
func (s *Position) step2PhaseSynchronized(in *PositionInput) error {
	kappa := s.traj.greatestDOF
	ref := s.problems[kappa]
	reference := &s.traj.motions[kappa]
	profile, err := decisionTree2(s.traj.syncTime, ref, reference)
	if err != nil {
		return errors.Wrapf(err, "dof %d", kappa)
	}
	s.step2Profiles[kappa] = profile

	for i, d := range s.problems {
		m := &s.traj.motions[i]
		switch {
		case i == kappa:
			continue
		case !in.Selection[i]:
			m.Reset()
			continue
		case !s.derived[i]:
			if err := holdAt(m, d.pT); err != nil {
				return err
			}
			continue
		}
		s.step2Profiles[i] = profile
		m.Scale(reference, s.reference[i]/s.reference[kappa], ref.p0, d.p0)
		correctScaledMotion(m, d)
	}
	return nil
}

// correctScaledMotion removes the drift a scaled motion accumulates from the tolerance of the
// collinearity test. The correction c(t) = ev0*t + (ep - ev0*T)*t^2/T^2 restores the exact
// current velocity at t = 0 and the exact target position at T; the final segment is then
// replaced by the exact target state of motion.
func correctScaledMotion(m *polynomial.Motion, d dof) {
	n := m.Len()
	end := m.End()
	if n >= 2 && end > 0 {
		ev0 := d.v0 - m.Segment(0).Velocity(0)
		ep := d.pT - m.Segment(n-2).Position(end)
		m.AddQuadratic((ep-ev0*end)/(end*end), ev0)
	}
	m.Replace(n-1, polynomial.Polynomial{A1: d.vT, A0: d.pT, T0: end})
}
