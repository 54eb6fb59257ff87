package terrain

import (
	"math/rand"
	"testing"
)

func rangeAll() Range {
	return Range{Min: MinLevel, Max: MaxLevel}
}

func defWith(name string, overrides map[ParamID]Range) Definition {
	def := Definition{Name: name}
	for id := range def.Ranges {
		def.Ranges[id] = rangeAll()
	}
	for id, r := range overrides {
		def.Ranges[id] = r
	}
	return def
}

func TestClassifyFirstMatchPriority(t *testing.T) {
	reg, err := NewRegistry(
		defWith("mountain", map[ParamID]Range{ParamAltitude: {Min: 5, Max: 6}}),
		defWith("hills", map[ParamID]Range{ParamAltitude: {Min: 4, Max: 5}}),
	)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	var tuple ValueSet
	tuple.Set(ParamAltitude, 5)

	def, ok := reg.Classify(tuple)
	if !ok {
		t.Fatalf("expected a classification for altitude 5")
	}
	if def.Name != "mountain" {
		t.Fatalf("expected registration-order priority to pick mountain, got %q", def.Name)
	}

	overlaps := reg.Overlaps()
	if len(overlaps) != 1 {
		t.Fatalf("expected one overlap pair, got %d", len(overlaps))
	}
	if overlaps[0].First != "mountain" || overlaps[0].Second != "hills" {
		t.Fatalf("unexpected overlap pair %+v", overlaps[0])
	}
}

func TestClassifyNoMatch(t *testing.T) {
	reg, err := NewRegistry(
		defWith("desert", map[ParamID]Range{ParamWater: {Min: 0, Max: 1}}),
	)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	var tuple ValueSet
	tuple.Set(ParamWater, 6)

	if def, ok := reg.Classify(tuple); ok {
		t.Fatalf("expected no match, got %q", def.Name)
	}
}

func TestClassifyIsPure(t *testing.T) {
	reg, err := NewRegistry(
		defWith("swamp", map[ParamID]Range{ParamWater: {Min: 3, Max: 4}, ParamVegetation: {Min: 3, Max: 6}}),
		defWith("clear", nil),
	)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	var tuple ValueSet
	tuple.Set(ParamWater, 3)
	tuple.Set(ParamVegetation, 5)

	first, ok := reg.Classify(tuple)
	if !ok {
		t.Fatalf("expected a classification")
	}
	for i := 0; i < 100; i++ {
		again, ok := reg.Classify(tuple)
		if !ok || again != first {
			t.Fatalf("classification changed on repeat call %d", i)
		}
	}
}

func TestRegistryRejectsInvertedRange(t *testing.T) {
	bad := defWith("broken", map[ParamID]Range{ParamSoil: {Min: 4, Max: 2}})
	if _, err := NewRegistry(bad); err == nil {
		t.Fatalf("expected inverted range to fail validation")
	}
}

func TestRegistryRejectsOutOfDomainRange(t *testing.T) {
	bad := defWith("broken", map[ParamID]Range{ParamTemperature: {Min: 0, Max: MaxLevel + 1}})
	if _, err := NewRegistry(bad); err == nil {
		t.Fatalf("expected out-of-domain range to fail validation")
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	if _, err := NewRegistry(defWith("clear", nil), defWith("clear", nil)); err == nil {
		t.Fatalf("expected duplicate names to fail validation")
	}
}

func TestVolume(t *testing.T) {
	def := defWith("niche", map[ParamID]Range{
		ParamAltitude:    {Min: 2, Max: 3},
		ParamTemperature: {Min: 1, Max: 1},
	})
	want := 2 * 1 * LevelCount * LevelCount * LevelCount * LevelCount
	if got := def.Volume(); got != want {
		t.Fatalf("expected volume %d, got %d", want, got)
	}
}

func TestRollValuesStaysInBounds(t *testing.T) {
	def := defWith("jungle", map[ParamID]Range{
		ParamWater:      {Min: 2, Max: 4},
		ParamVegetation: {Min: 4, Max: 6},
	})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		values := def.RollValues(rng)
		if !def.InBounds(values) {
			t.Fatalf("rolled tuple %v escaped definition ranges", values)
		}
	}
}

func TestParamNamesRoundTrip(t *testing.T) {
	for _, name := range ParamNames() {
		id, ok := ParamByName(name)
		if !ok {
			t.Fatalf("ParamByName failed for %q", name)
		}
		if id.String() != name {
			t.Fatalf("expected %q, got %q", name, id.String())
		}
	}
	if _, ok := ParamByName("magnetism"); ok {
		t.Fatalf("expected unknown parameter name to miss")
	}
}

func TestKeywordClampsLevel(t *testing.T) {
	if ParamTemperature.Keyword(-3) != ParamTemperature.Keyword(MinLevel) {
		t.Fatalf("expected low levels to clamp")
	}
	if ParamTemperature.Keyword(99) != ParamTemperature.Keyword(MaxLevel) {
		t.Fatalf("expected high levels to clamp")
	}
	if ParamTemperature.Keyword(0) == "" {
		t.Fatalf("expected a keyword for every level")
	}
}
