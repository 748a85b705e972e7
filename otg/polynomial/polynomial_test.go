package polynomial

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestPolynomialEvaluation(t *testing.T) {
	p := Polynomial{A2: 1.5, A1: -2, A0: 4, T0: 2}
	test.That(t, p.Position(2), test.ShouldEqual, 4.)
	test.That(t, p.Velocity(2), test.ShouldEqual, -2.)
	test.That(t, p.Position(4), test.ShouldAlmostEqual, 1.5*4-2*2+4)
	test.That(t, p.Velocity(4), test.ShouldAlmostEqual, 2*1.5*2-2)
	test.That(t, p.Acceleration(), test.ShouldEqual, 3.)
}

func TestVelocityRoot(t *testing.T) {
	root, ok := Polynomial{A2: -1, A1: 4, A0: 0, T0: 1}.VelocityRoot()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, root, test.ShouldAlmostEqual, 3.)
	test.That(t, Polynomial{A2: -1, A1: 4, T0: 1}.Velocity(root), test.ShouldAlmostEqual, 0.)

	_, ok = Polynomial{A1: 4}.VelocityRoot()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestNegate(t *testing.T) {
	p := Polynomial{A2: 1, A1: -2, A0: 3, T0: 4}
	n := p.Negate()
	test.That(t, n, test.ShouldResemble, Polynomial{A2: -1, A1: 2, A0: -3, T0: 4})
	test.That(t, n.Position(5), test.ShouldAlmostEqual, -p.Position(5))
}

func TestIsFinite(t *testing.T) {
	test.That(t, Polynomial{A2: 1, A1: 2, A0: 3}.IsFinite(), test.ShouldBeTrue)
	test.That(t, Polynomial{A0: math.NaN()}.IsFinite(), test.ShouldBeFalse)
	test.That(t, Polynomial{T0: math.Inf(1)}.IsFinite(), test.ShouldBeFalse)
}
