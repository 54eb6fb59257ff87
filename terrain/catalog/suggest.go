package catalog

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// NearestName returns the closest candidate within an edit-distance budget
// scaled to the candidate's length, or "" when nothing is close enough.
func NearestName(name string, candidates []string) string {
	best := ""
	bestDist := -1
	for _, candidate := range candidates {
		dist := levenshtein.ComputeDistance(name, candidate)
		if dist > distanceLimit(len(candidate)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best
}

func distanceLimit(length int) int {
	limit := length / 3
	if limit < 1 {
		limit = 1
	}
	return limit
}

func suggestionSuffix(name string, candidates []string) string {
	nearest := NearestName(name, candidates)
	if nearest == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", nearest)
}
