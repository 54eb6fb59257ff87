package terrain

import (
	"math/rand"
	"sort"
)

// ResourceNone is the sentinel for cells without a resource deposit.
const ResourceNone = "none"

// WeightedResource is one entry of a terrain's cumulative frequency list.
// Cumulative holds the running total of weights up to and including this
// entry, so a draw in [0, total) selects the first entry whose cumulative
// weight exceeds it.
type WeightedResource struct {
	Name       string
	Cumulative int
}

// ResourceTable maps terrain names to cumulative resource frequency lists.
type ResourceTable map[string][]WeightedResource

// BuildResourceTable converts raw terrain -> resource -> weight frequencies
// into cumulative lists. Resource names are folded in sorted order so the
// cumulative layout is stable across runs. Entries with non-positive weight
// are dropped.
func BuildResourceTable(frequencies map[string]map[string]int) ResourceTable {
	table := make(ResourceTable, len(frequencies))
	for terrainName, weights := range frequencies {
		names := make([]string, 0, len(weights))
		for name := range weights {
			names = append(names, name)
		}
		sort.Strings(names)

		entries := make([]WeightedResource, 0, len(names))
		total := 0
		for _, name := range names {
			weight := weights[name]
			if weight <= 0 {
				continue
			}
			total += weight
			entries = append(entries, WeightedResource{Name: name, Cumulative: total})
		}
		table[terrainName] = entries
	}
	return table
}

// TotalWeight returns the summed frequency weight for a terrain.
func (t ResourceTable) TotalWeight(terrainName string) int {
	entries := t[terrainName]
	if len(entries) == 0 {
		return 0
	}
	return entries[len(entries)-1].Cumulative
}

// Roll draws a resource for the terrain. Terrains absent from the table, or
// with zero total weight, yield ResourceNone.
func (t ResourceTable) Roll(terrainName string, rng *rand.Rand) string {
	entries := t[terrainName]
	total := t.TotalWeight(terrainName)
	if total <= 0 {
		return ResourceNone
	}
	draw := rng.Intn(total)
	for _, entry := range entries {
		if draw < entry.Cumulative {
			return entry.Name
		}
	}
	return ResourceNone
}

// ResourceNames returns the distinct resource names appearing anywhere in the
// table, ResourceNone included. Used to vet resource names on load.
func (t ResourceTable) ResourceNames() map[string]struct{} {
	names := map[string]struct{}{ResourceNone: {}}
	for _, entries := range t {
		for _, entry := range entries {
			names[entry.Name] = struct{}{}
		}
	}
	return names
}
