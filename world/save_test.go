package world

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"second-earth/server/logging"
	"second-earth/server/logging/generation"
	"second-earth/server/terrain"
)

// savedWorld configures an oasis feature type so save records carrying
// feature attachments validate on load.
func savedWorld(t *testing.T, width, height int, seed string) *World {
	t.Helper()
	w, err := New(Config{Width: width, Height: height, Seed: seed}, Deps{
		Registry: testRegistry(t),
		Resources: terrain.BuildResourceTable(map[string]map[string]int{
			"lowland":  {"none": 8, "rubber": 2},
			"highland": {"none": 9, "gold": 1},
		}),
		Features: []terrain.FeatureType{
			{Name: "oasis", Kind: terrain.FeatureTerrainChance, Terrains: []string{"lowland"}, Chance: 0.1},
		},
	})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func TestSaveLoadRoundTrip(t *testing.T) {
	source := savedWorld(t, 9, 7, "round-trip")
	if err := source.Generate(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	source.Grid().FindCell(2, 3).SetExplored(true)
	source.Grid().FindCell(4, 4).AttachFeature(Feature{Type: "oasis", Name: "Oasis"})
	record := source.SaveRecord()

	restored := savedWorld(t, 1, 1, "round-trip")
	if err := restored.Load(context.Background(), record); err != nil {
		t.Fatalf("load: %v", err)
	}

	if restored.Grid().Width() != 9 || restored.Grid().Height() != 7 {
		t.Fatalf("loaded grid is %dx%d, want 9x7", restored.Grid().Width(), restored.Grid().Height())
	}
	if !reflect.DeepEqual(record, restored.SaveRecord()) {
		t.Fatalf("save record changed across a load round trip")
	}
	if !restored.Grid().FindCell(2, 3).Explored() {
		t.Fatalf("explored flag lost in round trip")
	}
	if !restored.Grid().FindCell(4, 4).HasFeature("oasis") {
		t.Fatalf("feature lost in round trip")
	}
}

func TestLoadRecomputesAdjacency(t *testing.T) {
	source := testWorld(t, 4, 3, "adjacency")
	if err := source.Generate(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	restored := testWorld(t, 1, 1, "adjacency")
	if err := restored.Load(context.Background(), source.SaveRecord()); err != nil {
		t.Fatalf("load: %v", err)
	}
	neighbors := restored.Grid().FindCell(0, 0).CardinalNeighbors()
	if len(neighbors) != 4 {
		t.Fatalf("loaded grid lost adjacency: %d neighbors", len(neighbors))
	}
	if !containsCell(neighbors, 3, 0) {
		t.Fatalf("loaded grid lost wrap adjacency")
	}
}

func singleCellRecord(rec CellRecord) GridRecord {
	rec.Coordinates = [2]int{0, 0}
	return GridRecord{GridType: GridTypeEarth, Width: 1, Height: 1, Cells: []CellRecord{rec}}
}

func TestLoadRecoversNearMissTerrain(t *testing.T) {
	var events []logging.Event
	w, err := New(Config{Width: 1, Height: 1, Seed: "recover"}, Deps{
		Registry: testRegistry(t),
		Publisher: logging.PublisherFunc(func(_ context.Context, event logging.Event) {
			events = append(events, event)
		}),
	})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	record := singleCellRecord(CellRecord{Terrain: "lowlnad"})
	if err := w.Load(context.Background(), record); err != nil {
		t.Fatalf("load with near-miss terrain: %v", err)
	}
	if got := w.Grid().FindCell(0, 0).Terrain(); got != "lowland" {
		t.Fatalf("terrain %q, want recovered %q", got, "lowland")
	}

	found := false
	for _, event := range events {
		if event.Type != generation.EventLoadRecovered {
			continue
		}
		payload, ok := event.Payload.(generation.LoadRecoveredPayload)
		if !ok {
			t.Fatalf("unexpected payload type %T", event.Payload)
		}
		if event.Subject.Kind != logging.EntityKindCell || event.Subject.ID == "" {
			t.Fatalf("recovered event has malformed subject %+v", event.Subject)
		}
		if payload.Field == "terrain" && payload.Name == "lowlnad" && payload.Suggestion == "lowland" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no load_recovered event for the corrected terrain")
	}
}

func TestLoadRejectsUnknownTerrain(t *testing.T) {
	w := testWorld(t, 1, 1, "reject")
	err := w.Load(context.Background(), singleCellRecord(CellRecord{Terrain: "zzzz"}))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Field != "terrain" || loadErr.Name != "zzzz" {
		t.Fatalf("unexpected LoadError %+v", loadErr)
	}
	if w.Grid().Width() != 1 || w.Grid().Height() != 1 {
		t.Fatalf("failed load must not replace the grid")
	}
}

func TestLoadNormalizesResourceAndParameters(t *testing.T) {
	w := testWorld(t, 1, 1, "normalize")
	record := singleCellRecord(CellRecord{
		Terrain:    "lowland",
		Resource:   "gld",
		Parameters: map[string]int{"altitude": 9},
	})
	if err := w.Load(context.Background(), record); err != nil {
		t.Fatalf("load: %v", err)
	}
	cell := w.Grid().FindCell(0, 0)
	if cell.Resource() != "gold" {
		t.Fatalf("resource %q, want recovered %q", cell.Resource(), "gold")
	}
	if got := cell.Parameter(terrain.ParamAltitude); got != terrain.MaxLevel {
		t.Fatalf("altitude %d, want clamped %d", got, terrain.MaxLevel)
	}
}

func TestLoadRejectsUnknownResource(t *testing.T) {
	w := testWorld(t, 1, 1, "reject-resource")
	record := singleCellRecord(CellRecord{Terrain: "lowland", Resource: "plutonium"})
	err := w.Load(context.Background(), record)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Field != "resource" || loadErr.Name != "plutonium" {
		t.Fatalf("unexpected LoadError %+v", loadErr)
	}
}

func TestLoadRejectsUnknownFeature(t *testing.T) {
	w := testWorld(t, 1, 1, "reject-feature")
	record := singleCellRecord(CellRecord{
		Terrain:  "lowland",
		Features: []Feature{{Type: "volcano", Name: "Volcano"}},
	})
	err := w.Load(context.Background(), record)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Field != "feature" || loadErr.Name != "volcano" {
		t.Fatalf("unexpected LoadError %+v", loadErr)
	}
	if w.Grid().FindCell(0, 0).HasFeature("volcano") {
		t.Fatalf("rejected feature must not attach")
	}
}

func TestLoadRecoversNearMissFeature(t *testing.T) {
	w := savedWorld(t, 1, 1, "recover-feature")
	record := singleCellRecord(CellRecord{
		Terrain:  "lowland",
		Features: []Feature{{Type: "oasiss", Name: "Oasis"}},
	})
	if err := w.Load(context.Background(), record); err != nil {
		t.Fatalf("load with near-miss feature: %v", err)
	}
	cell := w.Grid().FindCell(0, 0)
	if !cell.HasFeature("oasis") {
		t.Fatalf("near-miss feature not corrected to %q", "oasis")
	}
	if cell.HasFeature("oasiss") {
		t.Fatalf("misspelled feature type must not survive the load")
	}
}

func TestLoadRejectsMalformedRecords(t *testing.T) {
	w := testWorld(t, 1, 1, "malformed")

	short := GridRecord{GridType: GridTypeStrategic, Width: 2, Height: 2, Cells: []CellRecord{{}}}
	if err := w.Load(context.Background(), short); err == nil {
		t.Fatalf("expected error for short cell list")
	}

	dup := GridRecord{GridType: GridTypeStrategic, Width: 2, Height: 1, Cells: []CellRecord{
		{Coordinates: [2]int{0, 0}}, {Coordinates: [2]int{0, 0}},
	}}
	if err := w.Load(context.Background(), dup); err == nil {
		t.Fatalf("expected error for duplicate coordinates")
	}

	outside := GridRecord{GridType: GridTypeStrategic, Width: 2, Height: 1, Cells: []CellRecord{
		{Coordinates: [2]int{0, 0}}, {Coordinates: [2]int{5, 0}},
	}}
	if err := w.Load(context.Background(), outside); err == nil {
		t.Fatalf("expected error for out-of-range coordinates")
	}
}
