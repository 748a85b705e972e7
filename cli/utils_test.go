package cli

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/otg/otg"
)

func TestParseVector(t *testing.T) {
	v, err := parseVector("1, -2.5,3e1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, r3.Vector{X: 1, Y: -2.5, Z: 30})

	for _, bad := range []string{"", "1,2", "1,2,3,4", "1,two,3"} {
		_, err := parseVector(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestFormat(t *testing.T) {
	test.That(t, formatVector([]float64{1, -0.5}), test.ShouldEqual, "1.0000, -0.5000")
	test.That(t, formatVector(nil), test.ShouldEqual, "")
	test.That(t, formatNames([]otg.Result{otg.Working, otg.FinalStateReached}), test.ShouldEqual,
		"working, final state reached")
}
