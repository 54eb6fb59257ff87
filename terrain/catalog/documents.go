package catalog

// Document structs model the JSON contract for the designer-authored files
// under config/terrain/. They are shared with the schema generator so we can
// produce machine-readable documents for validation and editor tooling.

// RangeDocument is one inclusive parameter interval.
type RangeDocument struct {
	Min int `json:"min" jsonschema:"title=Minimum level,minimum=0,maximum=6,description=Lowest parameter level included in the terrain"`
	Max int `json:"max" jsonschema:"title=Maximum level,minimum=0,maximum=6,description=Highest parameter level included in the terrain"`
}

// TerrainDocument declares one terrain type. Every parameter named in the
// parameter enumeration must appear in Parameters.
type TerrainDocument struct {
	Name       string                   `json:"name" jsonschema:"title=Terrain name,pattern=^[a-z_ ]+$,minLength=1,required"`
	Parameters map[string]RangeDocument `json:"parameters" jsonschema:"title=Parameter ranges,description=Inclusive [min\\,max] range per parameter name,required"`
}

// TerrainFile is the contents of config/terrain/terrain_definitions.json.
// Array order is classification priority: the first terrain whose ranges all
// contain a tuple wins.
type TerrainFile []TerrainDocument

// ResourceFile is the contents of config/terrain/resource_frequencies.json:
// terrain name -> resource name -> integer frequency weight.
type ResourceFile map[string]map[string]int

// FeatureDocument declares one terrain feature type and its placement rule.
type FeatureDocument struct {
	Name        string   `json:"name" jsonschema:"title=Feature name,minLength=1,required"`
	Rule        string   `json:"rule" jsonschema:"title=Placement rule,enum=north_pole,enum=south_pole,enum=equator,enum=terrain_chance,required"`
	Span        int      `json:"span,omitempty" jsonschema:"title=Band half-width,minimum=0,description=Half-width of the pole window or equator band in cells"`
	Terrains    []string `json:"terrains,omitempty" jsonschema:"title=Eligible terrains,description=Terrains a terrain_chance feature may appear on"`
	Chance      float64  `json:"chance,omitempty" jsonschema:"title=Placement chance,exclusiveMinimum=0,maximum=1"`
	DisplayName string   `json:"displayName,omitempty" jsonschema:"title=Display name override"`
	Image       string   `json:"image,omitempty" jsonschema:"title=Image override path"`
}

// FeatureFile is the contents of config/terrain/terrain_features.json.
type FeatureFile []FeatureDocument
