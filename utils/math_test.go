package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestSquare(t *testing.T) {
	test.That(t, Square(3), test.ShouldEqual, 9.)
	test.That(t, Square(-1.5), test.ShouldEqual, 2.25)
}

func TestFloat64RelAlmostEqual(t *testing.T) {
	test.That(t, Float64RelAlmostEqual(1000, 1000.05, 1e-6, 1e-4), test.ShouldBeTrue)
	test.That(t, Float64RelAlmostEqual(1, 1.05, 1e-6, 1e-4), test.ShouldBeFalse)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, 0, 1), test.ShouldEqual, 1.)
	test.That(t, Clamp(-5, 0, 1), test.ShouldEqual, 0.)
	test.That(t, Clamp(.5, 0, 1), test.ShouldEqual, .5)
}

func TestIsFinite(t *testing.T) {
	test.That(t, IsFinite(1, 2, 3), test.ShouldBeTrue)
	test.That(t, IsFinite(1, math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
}

func TestMaxIdx(t *testing.T) {
	values := []float64{1, 5, 3, 5}
	test.That(t, MaxIdx(values, func(int) bool { return true }), test.ShouldEqual, 1)
	test.That(t, MaxIdx(values, func(i int) bool { return i != 1 }), test.ShouldEqual, 3)
	test.That(t, MaxIdx(values, func(int) bool { return false }), test.ShouldEqual, -1)
}
