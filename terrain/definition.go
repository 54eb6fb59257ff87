package terrain

import (
	"fmt"
	"math/rand"
)

// Range is a closed inclusive interval of parameter levels.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether the value falls inside the range.
func (r Range) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

// Width returns the number of levels covered by the range.
func (r Range) Width() int {
	return r.Max - r.Min + 1
}

// Overlaps reports whether two ranges share at least one level.
func (r Range) Overlaps(other Range) bool {
	return r.Min <= other.Max && other.Min <= r.Max
}

// Definition declares a terrain type as one inclusive range per parameter.
// A parameter tuple belongs to the terrain when every range contains the
// corresponding value.
type Definition struct {
	Name   string
	Ranges [ParamCount]Range
}

// Validate checks the ranges against the parameter domain.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("terrain: definition missing name")
	}
	for id, r := range d.Ranges {
		param := ParamID(id)
		if r.Min > r.Max {
			return fmt.Errorf("terrain: %q %s range inverted (min %d > max %d)", d.Name, param, r.Min, r.Max)
		}
		if r.Min < MinLevel || r.Max > MaxLevel {
			return fmt.Errorf("terrain: %q %s range [%d,%d] outside domain [%d,%d]", d.Name, param, r.Min, r.Max, MinLevel, MaxLevel)
		}
	}
	return nil
}

// InBounds reports whether the tuple falls inside every parameter range.
func (d *Definition) InBounds(values ValueSet) bool {
	for id, r := range d.Ranges {
		if !r.Contains(values[id]) {
			return false
		}
	}
	return true
}

// Volume returns the number of distinct tuples the definition covers. Only
// used descriptively, e.g. when reporting catalog statistics.
func (d *Definition) Volume() int {
	volume := 1
	for _, r := range d.Ranges {
		volume *= r.Width()
	}
	return volume
}

// Overlaps reports whether two definitions share at least one tuple.
func (d *Definition) Overlaps(other *Definition) bool {
	if other == nil {
		return false
	}
	for id, r := range d.Ranges {
		if !r.Overlaps(other.Ranges[id]) {
			return false
		}
	}
	return true
}

// RollValues draws a uniform tuple from inside the definition's ranges.
func (d *Definition) RollValues(rng *rand.Rand) ValueSet {
	var values ValueSet
	for id, r := range d.Ranges {
		values[id] = r.Min + rng.Intn(r.Width())
	}
	return values
}
