package terrain

import (
	"math/rand"
	"testing"
)

func TestBuildResourceTableCumulative(t *testing.T) {
	table := BuildResourceTable(map[string]map[string]int{
		"savannah": {"none": 140, "diamond": 2, "gold": 4},
	})

	entries := table["savannah"]
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Sorted fold order: diamond, gold, none.
	if entries[0].Name != "diamond" || entries[0].Cumulative != 2 {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Name != "gold" || entries[1].Cumulative != 6 {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
	if entries[2].Name != "none" || entries[2].Cumulative != 146 {
		t.Fatalf("unexpected third entry %+v", entries[2])
	}
	if table.TotalWeight("savannah") != 146 {
		t.Fatalf("expected total weight 146, got %d", table.TotalWeight("savannah"))
	}
}

func TestRollDistribution(t *testing.T) {
	table := BuildResourceTable(map[string]map[string]int{
		"jungle": {"rubber": 2, "none": 8},
	})

	rng := rand.New(rand.NewSource(7))
	const samples = 10000
	rubber := 0
	for i := 0; i < samples; i++ {
		if table.Roll("jungle", rng) == "rubber" {
			rubber++
		}
	}

	ratio := float64(rubber) / samples
	if ratio < 0.17 || ratio > 0.23 {
		t.Fatalf("expected rubber ratio near 0.2, got %v", ratio)
	}
}

func TestRollMissingTerrain(t *testing.T) {
	table := BuildResourceTable(nil)
	rng := rand.New(rand.NewSource(1))
	if got := table.Roll("void", rng); got != ResourceNone {
		t.Fatalf("expected %q for missing terrain, got %q", ResourceNone, got)
	}
}

func TestRollZeroWeightTerrain(t *testing.T) {
	table := BuildResourceTable(map[string]map[string]int{
		"wasteland": {"gold": 0},
	})
	rng := rand.New(rand.NewSource(1))
	if got := table.Roll("wasteland", rng); got != ResourceNone {
		t.Fatalf("expected %q for zero-weight terrain, got %q", ResourceNone, got)
	}
}

func TestResourceNamesIncludesSentinel(t *testing.T) {
	table := BuildResourceTable(map[string]map[string]int{
		"desert": {"gold": 1},
	})
	names := table.ResourceNames()
	if _, ok := names[ResourceNone]; !ok {
		t.Fatalf("expected sentinel resource in name set")
	}
	if _, ok := names["gold"]; !ok {
		t.Fatalf("expected gold in name set")
	}
}

func TestFeatureTypeValidate(t *testing.T) {
	valid := FeatureType{Name: "north pole", Kind: FeatureNorthPole, Span: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid feature, got %v", err)
	}

	cases := []FeatureType{
		{Name: "", Kind: FeatureEquator},
		{Name: "mystery", Kind: FeatureKind("volcano")},
		{Name: "oasis", Kind: FeatureTerrainChance, Chance: 0.5},
		{Name: "oasis", Kind: FeatureTerrainChance, Terrains: []string{"desert"}, Chance: 0},
		{Name: "oasis", Kind: FeatureTerrainChance, Terrains: []string{"desert"}, Chance: 1.5},
	}
	for i, feature := range cases {
		if err := feature.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, feature)
		}
	}
}
