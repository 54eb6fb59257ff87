package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"second-earth/server/terrain"
)

// File names expected under the config directory.
const (
	TerrainFileName  = "terrain_definitions.json"
	ResourceFileName = "resource_frequencies.json"
	FeatureFileName  = "terrain_features.json"
)

type source interface {
	Load() ([]byte, error)
	Path() string
}

type fileSource struct {
	path string
}

func (f fileSource) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f fileSource) Path() string {
	return f.path
}

// Catalogs bundles the resolved startup configuration for world generation.
type Catalogs struct {
	Registry  *terrain.Registry
	Resources terrain.ResourceTable
	Features  []terrain.FeatureType

	// Warnings carries non-fatal findings (overlapping terrain ranges,
	// frequency entries for unknown terrains). Callers log them at startup.
	Warnings []string
}

// DefaultDir returns the canonical config location relative to the module
// root.
func DefaultDir() string {
	return filepath.Join("config", "terrain")
}

// Load reads the three catalog documents from dir and resolves them.
// Malformed configuration is a fatal error: generation must not start from a
// catalog that would corrupt classification.
func Load(dir string) (*Catalogs, error) {
	return resolve(
		fileSource{path: filepath.Join(dir, TerrainFileName)},
		fileSource{path: filepath.Join(dir, ResourceFileName)},
		fileSource{path: filepath.Join(dir, FeatureFileName)},
	)
}

func resolve(terrainSrc, resourceSrc, featureSrc source) (*Catalogs, error) {
	registry, warnings, err := resolveTerrains(terrainSrc)
	if err != nil {
		return nil, err
	}

	resources, resourceWarnings, err := resolveResources(resourceSrc, registry)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, resourceWarnings...)

	features, err := resolveFeatures(featureSrc, registry)
	if err != nil {
		return nil, err
	}

	return &Catalogs{
		Registry:  registry,
		Resources: resources,
		Features:  features,
		Warnings:  warnings,
	}, nil
}

func resolveTerrains(src source) (*terrain.Registry, []string, error) {
	data, err := src.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: failed loading %s: %w", src.Path(), err)
	}
	var file TerrainFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("catalog: failed parsing %s: %w", src.Path(), err)
	}
	if len(file) == 0 {
		return nil, nil, fmt.Errorf("catalog: %s declares no terrains", src.Path())
	}

	defs := make([]terrain.Definition, 0, len(file))
	for _, doc := range file {
		name := strings.TrimSpace(doc.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("catalog: terrain missing name in %s", src.Path())
		}

		def := terrain.Definition{Name: name}
		seen := make(map[terrain.ParamID]struct{}, len(doc.Parameters))
		for paramName, r := range doc.Parameters {
			id, ok := terrain.ParamByName(paramName)
			if !ok {
				return nil, nil, fmt.Errorf("catalog: terrain %q references undeclared parameter %q%s",
					name, paramName, suggestionSuffix(paramName, terrain.ParamNames()))
			}
			def.Ranges[id] = terrain.Range{Min: r.Min, Max: r.Max}
			seen[id] = struct{}{}
		}
		if len(seen) != int(terrain.ParamCount) {
			for _, paramName := range terrain.ParamNames() {
				id, _ := terrain.ParamByName(paramName)
				if _, ok := seen[id]; !ok {
					return nil, nil, fmt.Errorf("catalog: terrain %q missing range for parameter %q", name, paramName)
				}
			}
		}
		defs = append(defs, def)
	}

	registry, err := terrain.NewRegistry(defs...)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: %s: %w", src.Path(), err)
	}

	var warnings []string
	for _, pair := range registry.Overlaps() {
		warnings = append(warnings, fmt.Sprintf("terrain ranges overlap: %q shadows %q for shared tuples", pair.First, pair.Second))
	}
	return registry, warnings, nil
}

func resolveResources(src source, registry *terrain.Registry) (terrain.ResourceTable, []string, error) {
	data, err := src.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("catalog: failed loading %s: %w", src.Path(), err)
	}
	var file ResourceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("catalog: failed parsing %s: %w", src.Path(), err)
	}

	var warnings []string
	terrainNames := make([]string, 0, len(file))
	for name := range file {
		terrainNames = append(terrainNames, name)
	}
	sort.Strings(terrainNames)
	for _, name := range terrainNames {
		if _, ok := registry.Lookup(name); !ok {
			warnings = append(warnings, fmt.Sprintf("resource frequencies name unknown terrain %q%s",
				name, suggestionSuffix(name, registry.Names())))
		}
		for resourceName, weight := range file[name] {
			if weight < 0 {
				return nil, nil, fmt.Errorf("catalog: %s: terrain %q resource %q has negative weight %d",
					src.Path(), name, resourceName, weight)
			}
		}
	}

	return terrain.BuildResourceTable(file), warnings, nil
}

func resolveFeatures(src source, registry *terrain.Registry) ([]terrain.FeatureType, error) {
	data, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("catalog: failed loading %s: %w", src.Path(), err)
	}
	var file FeatureFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: failed parsing %s: %w", src.Path(), err)
	}

	features := make([]terrain.FeatureType, 0, len(file))
	seen := make(map[string]struct{}, len(file))
	for _, doc := range file {
		feature := terrain.FeatureType{
			Name:        strings.TrimSpace(doc.Name),
			Kind:        terrain.FeatureKind(doc.Rule),
			Span:        doc.Span,
			Terrains:    append([]string(nil), doc.Terrains...),
			Chance:      doc.Chance,
			DisplayName: doc.DisplayName,
			Image:       doc.Image,
		}
		if err := feature.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", src.Path(), err)
		}
		if _, dup := seen[feature.Name]; dup {
			return nil, fmt.Errorf("catalog: %s: duplicate feature %q", src.Path(), feature.Name)
		}
		seen[feature.Name] = struct{}{}
		for _, terrainName := range feature.Terrains {
			if _, ok := registry.Lookup(terrainName); !ok {
				return nil, fmt.Errorf("catalog: %s: feature %q lists unknown terrain %q%s",
					src.Path(), feature.Name, terrainName, suggestionSuffix(terrainName, registry.Names()))
			}
		}
		features = append(features, feature)
	}
	return features, nil
}
