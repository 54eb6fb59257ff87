package terrain

// ParamID enumerates the climate parameters tracked for every cell.
type ParamID uint8

const (
	ParamAltitude ParamID = iota
	ParamTemperature
	ParamRoughness
	ParamVegetation
	ParamWater
	ParamSoil

	ParamCount
)

// Parameter values occupy seven discrete levels.
const (
	MinLevel = 0
	MaxLevel = 6

	LevelCount = MaxLevel - MinLevel + 1
)

var paramNames = [ParamCount]string{
	ParamAltitude:    "altitude",
	ParamTemperature: "temperature",
	ParamRoughness:   "roughness",
	ParamVegetation:  "vegetation",
	ParamWater:       "water",
	ParamSoil:        "soil",
}

// String returns the config-facing name of the parameter.
func (id ParamID) String() string {
	if id >= ParamCount {
		return "unknown"
	}
	return paramNames[id]
}

// ParamByName resolves a config-facing parameter name to its ID.
func ParamByName(name string) (ParamID, bool) {
	for id, candidate := range paramNames {
		if candidate == name {
			return ParamID(id), true
		}
	}
	return ParamCount, false
}

// ParamNames returns the parameter names in enumeration order.
func ParamNames() []string {
	names := make([]string, ParamCount)
	copy(names, paramNames[:])
	return names
}

// ClampLevel limits a value to the parameter domain.
func ClampLevel(value int) int {
	if value < MinLevel {
		return MinLevel
	}
	if value > MaxLevel {
		return MaxLevel
	}
	return value
}

// ValueSet stores one level per parameter.
type ValueSet [ParamCount]int

// Get returns the level for the given parameter.
func (v ValueSet) Get(id ParamID) int {
	if id >= ParamCount {
		return MinLevel
	}
	return v[id]
}

// Set assigns a clamped level for the given parameter.
func (v *ValueSet) Set(id ParamID, value int) {
	if id >= ParamCount {
		return
	}
	v[id] = ClampLevel(value)
}

var paramKeywords = [ParamCount][LevelCount]string{
	ParamAltitude:    {"abyssal", "low-lying", "flat", "rolling", "elevated", "highland", "towering"},
	ParamTemperature: {"frozen", "cold", "cool", "temperate", "warm", "hot", "scorching"},
	ParamRoughness:   {"smooth", "gentle", "uneven", "broken", "rugged", "jagged", "impassable"},
	ParamVegetation:  {"barren", "sparse", "scattered", "patchy", "green", "lush", "overgrown"},
	ParamWater:       {"parched", "dry", "moist", "damp", "wet", "soaked", "flooded"},
	ParamSoil:        {"sterile", "poor", "thin", "workable", "fertile", "rich", "black-earth"},
}

// Keyword returns the tooltip label for a parameter level.
func (id ParamID) Keyword(level int) string {
	if id >= ParamCount {
		return ""
	}
	return paramKeywords[id][ClampLevel(level)]
}
