package terrain

import "fmt"

// FeatureKind selects the placement rule evaluated for a feature type.
type FeatureKind string

const (
	// FeatureNorthPole places on the northern edge row near center longitude.
	FeatureNorthPole FeatureKind = "north_pole"
	// FeatureSouthPole places on the southern edge row near center longitude.
	FeatureSouthPole FeatureKind = "south_pole"
	// FeatureEquator places on the grid's middle latitude band.
	FeatureEquator FeatureKind = "equator"
	// FeatureTerrainChance places randomly on cells of listed terrains.
	FeatureTerrainChance FeatureKind = "terrain_chance"
)

// FeatureType declares a named terrain feature and its placement rule.
// Placement itself runs in the world package, which owns cell geometry.
type FeatureType struct {
	Name        string
	Kind        FeatureKind
	Span        int      // half-width of the pole window / equator band
	Terrains    []string // terrain_chance only
	Chance      float64  // terrain_chance only, probability per cell
	DisplayName string
	Image       string
}

// Validate checks the rule fields for the feature's kind.
func (f *FeatureType) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("terrain: feature type missing name")
	}
	switch f.Kind {
	case FeatureNorthPole, FeatureSouthPole, FeatureEquator:
		if f.Span < 0 {
			return fmt.Errorf("terrain: feature %q has negative span %d", f.Name, f.Span)
		}
	case FeatureTerrainChance:
		if len(f.Terrains) == 0 {
			return fmt.Errorf("terrain: feature %q lists no terrains", f.Name)
		}
		if f.Chance <= 0 || f.Chance > 1 {
			return fmt.Errorf("terrain: feature %q chance %v outside (0,1]", f.Name, f.Chance)
		}
	default:
		return fmt.Errorf("terrain: feature %q has unknown rule %q", f.Name, f.Kind)
	}
	return nil
}

// AppliesToTerrain reports whether a terrain_chance rule covers the terrain.
func (f *FeatureType) AppliesToTerrain(terrainName string) bool {
	for _, candidate := range f.Terrains {
		if candidate == terrainName {
			return true
		}
	}
	return false
}
