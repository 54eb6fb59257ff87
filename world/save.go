package world

import (
	"context"
	"fmt"

	"second-earth/server/logging"
	"second-earth/server/logging/generation"
	"second-earth/server/terrain"
	"second-earth/server/terrain/catalog"
)

// CellRecord is the serialized form of one cell. Adjacency is structural and
// is recomputed on load rather than stored.
type CellRecord struct {
	Coordinates [2]int         `json:"coordinates"`
	Terrain     string         `json:"terrain,omitempty"`
	Resource    string         `json:"resource,omitempty"`
	Parameters  map[string]int `json:"parameters,omitempty"`
	Features    []Feature      `json:"features,omitempty"`
	Explored    bool           `json:"explored,omitempty"`
}

// GridRecord is the serialized form of a whole grid.
type GridRecord struct {
	GridType string       `json:"gridType"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Cells    []CellRecord `json:"cells"`
}

// LoadError reports a save payload defect that could not be recovered.
type LoadError struct {
	X          int
	Y          int
	Field      string
	Name       string
	Suggestion string
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("world: load cell (%d,%d): unknown %s %q", e.X, e.Y, e.Field, e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// SaveRecord captures the current grid as a serializable record.
func (w *World) SaveRecord() GridRecord {
	grid := w.grid
	record := GridRecord{
		GridType: grid.Type(),
		Width:    grid.Width(),
		Height:   grid.Height(),
		Cells:    make([]CellRecord, 0, grid.Area()),
	}
	names := terrain.ParamNames()
	grid.EachCell(func(cell *Cell) {
		params := make(map[string]int, len(names))
		for _, name := range names {
			id, _ := terrain.ParamByName(name)
			params[name] = cell.Parameter(id)
		}
		record.Cells = append(record.Cells, CellRecord{
			Coordinates: [2]int{cell.X(), cell.Y()},
			Terrain:     cell.Terrain(),
			Resource:    cell.Resource(),
			Parameters:  params,
			Features:    cell.Features(),
			Explored:    cell.Explored(),
		})
	})
	return record
}

// Load rebuilds the world's grid from a save record. Near-miss names are
// corrected against the loaded catalogs and reported as recoverable events;
// anything without a close match fails with a LoadError.
func (w *World) Load(ctx context.Context, record GridRecord) error {
	if record.Width < 1 || record.Height < 1 {
		return fmt.Errorf("world: load: invalid dimensions %dx%d", record.Width, record.Height)
	}
	if len(record.Cells) != record.Width*record.Height {
		return fmt.Errorf("world: load: expected %d cells, got %d", record.Width*record.Height, len(record.Cells))
	}

	gridType := record.GridType
	if gridType == "" {
		gridType = GridTypeStrategic
	}
	grid := NewGrid(gridType, record.Width, record.Height)

	seen := make(map[[2]int]struct{}, len(record.Cells))
	for _, rec := range record.Cells {
		x, y := rec.Coordinates[0], rec.Coordinates[1]
		cell := grid.FindCell(x, y)
		if cell == nil {
			return fmt.Errorf("world: load: coordinates (%d,%d) outside %dx%d grid", x, y, record.Width, record.Height)
		}
		if _, dup := seen[rec.Coordinates]; dup {
			return fmt.Errorf("world: load: duplicate cell (%d,%d)", x, y)
		}
		seen[rec.Coordinates] = struct{}{}

		if err := w.restoreCell(ctx, cell, rec); err != nil {
			return err
		}
	}

	w.Restore(grid)
	return nil
}

func (w *World) restoreCell(ctx context.Context, cell *Cell, rec CellRecord) error {
	if rec.Terrain != TerrainUnset {
		name := rec.Terrain
		if _, ok := w.registry.Lookup(name); !ok {
			suggestion := catalog.NearestName(name, w.registry.Names())
			if suggestion == "" {
				return &LoadError{X: cell.X(), Y: cell.Y(), Field: "terrain", Name: name}
			}
			w.recovered(ctx, cell, "terrain", name, suggestion)
			name = suggestion
		}
		cell.SetTerrain(name)
	}

	resource := rec.Resource
	if resource != "" && resource != terrain.ResourceNone {
		if _, ok := w.resources.ResourceNames()[resource]; !ok {
			suggestion := catalog.NearestName(resource, resourceNameList(w.resources))
			if suggestion == "" {
				return &LoadError{X: cell.X(), Y: cell.Y(), Field: "resource", Name: resource}
			}
			w.recovered(ctx, cell, "resource", resource, suggestion)
			resource = suggestion
		}
	}
	cell.SetResource(resource)

	paramNames := terrain.ParamNames()
	for name, value := range rec.Parameters {
		id, ok := terrain.ParamByName(name)
		if !ok {
			suggestion := catalog.NearestName(name, paramNames)
			if suggestion == "" {
				return &LoadError{X: cell.X(), Y: cell.Y(), Field: "parameter", Name: name}
			}
			w.recovered(ctx, cell, "parameter", name, suggestion)
			id, _ = terrain.ParamByName(suggestion)
		}
		cell.SetParameter(id, terrain.ClampLevel(value))
	}

	featureNames := w.featureNames()
	for _, feature := range rec.Features {
		if feature.Type == "" {
			continue
		}
		if !containsName(featureNames, feature.Type) {
			suggestion := catalog.NearestName(feature.Type, featureNames)
			if suggestion == "" {
				return &LoadError{X: cell.X(), Y: cell.Y(), Field: "feature", Name: feature.Type}
			}
			w.recovered(ctx, cell, "feature", feature.Type, suggestion)
			feature.Type = suggestion
		}
		cell.AttachFeature(feature)
	}
	cell.SetExplored(rec.Explored)
	return nil
}

func (w *World) featureNames() []string {
	names := make([]string, 0, len(w.features))
	for i := range w.features {
		names = append(names, w.features[i].Name)
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

func (w *World) recovered(ctx context.Context, cell *Cell, field, name, suggestion string) {
	subject := logging.EntityRef{Kind: logging.EntityKindCell, ID: w.grid.Type()}
	generation.LoadRecovered(ctx, w.publisher, subject, generation.LoadRecoveredPayload{
		X:          cell.X(),
		Y:          cell.Y(),
		Field:      field,
		Name:       name,
		Suggestion: suggestion,
	})
}

func resourceNameList(table terrain.ResourceTable) []string {
	set := table.ResourceNames()
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return names
}
