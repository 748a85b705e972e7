package config

import "fmt"

// AttributeMap is a loosely typed set of settings, as decoded from JSON.
type AttributeMap map[string]interface{}

// Float64 returns the number stored at name, or def if it is not set.
func (am AttributeMap) Float64(name string, def float64) float64 {
	x, has := am[name]
	if !has {
		return def
	}
	switch v := x.(type) {
	case float64:
		return v
	case int:
		// json defaults to float64 but maps built in code often hold ints
		return float64(v)
	}
	panic(fmt.Errorf("wanted a float64 for (%s) but got (%v) %T", name, x, x))
}

// Int returns the integer stored at name, or def if it is not set.
func (am AttributeMap) Int(name string, def int) int {
	x, has := am[name]
	if !has {
		return def
	}
	switch v := x.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	panic(fmt.Errorf("wanted an int for (%s) but got (%v) %T", name, x, x))
}

// Bool returns the boolean stored at name, or def if it is not set.
func (am AttributeMap) Bool(name string, def bool) bool {
	x, has := am[name]
	if !has {
		return def
	}
	if v, ok := x.(bool); ok {
		return v
	}
	panic(fmt.Errorf("wanted a bool for (%s) but got (%v) %T", name, x, x))
}

// String returns the string stored at name, or "" if it is not set.
func (am AttributeMap) String(name string) string {
	x := am[name]
	if x == nil {
		return ""
	}
	if s, ok := x.(string); ok {
		return s
	}
	panic(fmt.Errorf("wanted a string for (%s) but got (%v) %T", name, x, x))
}

// Float64Slice returns the numbers stored at name, or nil if it is not set.
func (am AttributeMap) Float64Slice(name string) []float64 {
	x := am[name]
	if x == nil {
		return nil
	}
	if v, ok := x.([]float64); ok {
		return v
	}
	raw, ok := x.([]interface{})
	if !ok {
		panic(fmt.Errorf("wanted a []float64 for (%s) but got (%v) %T", name, x, x))
	}
	values := make([]float64, 0, len(raw))
	for _, r := range raw {
		switch v := r.(type) {
		case float64:
			values = append(values, v)
		case int:
			values = append(values, float64(v))
		default:
			panic(fmt.Errorf("values in (%s) need to be numbers but got %T", name, r))
		}
	}
	return values
}
