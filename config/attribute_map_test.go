package config

import (
	"testing"

	"go.viam.com/test"
)

var sampleAttributeMap = AttributeMap{
	"ok_boolean_false":  false,
	"ok_boolean_true":   true,
	"bad_boolean_false": 0,
	"bad_boolean_true":  "true",
	"float":             1.5,
	"int":               3,
	"bad_float":         "1.5",
	"name":              "only_time_sync",
	"bad_name":          2,
	"good_float_slice":  []interface{}{1, 2.5, 3},
	"typed_float_slice": []float64{4, 5},
	"bad_float_slice":   "this is not a float slice",
	"bad_float_slice_2": []interface{}{1, 2, "3"},
}

func TestAttributeMap(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		test.That(t, sampleAttributeMap.Bool("ok_boolean_true", false), test.ShouldBeTrue)
		test.That(t, sampleAttributeMap.Bool("ok_boolean_false", true), test.ShouldBeFalse)
		test.That(t, func() { sampleAttributeMap.Bool("bad_boolean_true", false) }, test.ShouldPanic)
		test.That(t, func() { sampleAttributeMap.Bool("bad_boolean_false", false) }, test.ShouldPanic)
		test.That(t, sampleAttributeMap.Bool("junk_key", false), test.ShouldBeFalse)
		test.That(t, sampleAttributeMap.Bool("junk_key", true), test.ShouldBeTrue)
	})

	t.Run("numbers", func(t *testing.T) {
		test.That(t, sampleAttributeMap.Float64("float", 0), test.ShouldEqual, 1.5)
		test.That(t, sampleAttributeMap.Float64("int", 0), test.ShouldEqual, 3.)
		test.That(t, sampleAttributeMap.Float64("junk_key", 7), test.ShouldEqual, 7.)
		test.That(t, func() { sampleAttributeMap.Float64("bad_float", 0) }, test.ShouldPanic)
		test.That(t, sampleAttributeMap.Int("int", 0), test.ShouldEqual, 3)
		test.That(t, sampleAttributeMap.Int("float", 0), test.ShouldEqual, 1)
		test.That(t, sampleAttributeMap.Int("junk_key", 9), test.ShouldEqual, 9)
		test.That(t, func() { sampleAttributeMap.Int("bad_float", 0) }, test.ShouldPanic)
	})

	t.Run("string", func(t *testing.T) {
		test.That(t, sampleAttributeMap.String("name"), test.ShouldEqual, "only_time_sync")
		test.That(t, sampleAttributeMap.String("junk_key"), test.ShouldEqual, "")
		test.That(t, func() { sampleAttributeMap.String("bad_name") }, test.ShouldPanic)
	})

	t.Run("float slice", func(t *testing.T) {
		test.That(t, sampleAttributeMap.Float64Slice("good_float_slice"), test.ShouldResemble, []float64{1, 2.5, 3})
		test.That(t, sampleAttributeMap.Float64Slice("typed_float_slice"), test.ShouldResemble, []float64{4, 5})
		test.That(t, sampleAttributeMap.Float64Slice("junk_key"), test.ShouldBeNil)
		test.That(t, func() { sampleAttributeMap.Float64Slice("bad_float_slice") }, test.ShouldPanic)
		test.That(t, func() { sampleAttributeMap.Float64Slice("bad_float_slice_2") }, test.ShouldPanic)
	})

}
