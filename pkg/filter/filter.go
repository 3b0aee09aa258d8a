// Package filter selects which entities reach a scaler
package filter

import (
	"sort"
	"strings"

	"github.com/cleavviz/cleavviz/pkg/core"
)

// Config holds entity selection configuration
type Config struct {
	Labels    []string // Keep only entities whose label contains one of these (nil = all)
	TopN      int      // Keep only the N entities with the highest positive peak (0 = no limit)
	DropEmpty bool     // Remove entities without any measured value
}

// Apply returns the selected entities in their original order. The input
// slice is not modified.
func (c *Config) Apply(entities []core.Entity) []core.Entity {
	selected := make([]core.Entity, 0, len(entities))
	for _, e := range entities {
		if len(c.Labels) > 0 && !matchesLabel(e.Label, c.Labels) {
			continue
		}
		if c.DropEmpty && !e.HasData() {
			continue
		}
		selected = append(selected, e)
	}

	if c.TopN > 0 {
		selected = topN(selected, c.TopN)
	}

	return selected
}

// matchesLabel checks if a label contains any of the search terms, ignoring case
func matchesLabel(label string, terms []string) bool {
	label = strings.ToLower(label)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(label, term) {
			return true
		}
	}
	return false
}

// topN keeps the n entities with the most intense positive value
func topN(entities []core.Entity, n int) []core.Entity {
	if len(entities) <= n {
		return entities
	}

	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return peak(entities[order[i]]) > peak(entities[order[j]])
	})

	// Restore input order for the kept entities
	keep := order[:n]
	sort.Ints(keep)

	result := make([]core.Entity, 0, n)
	for _, i := range keep {
		result = append(result, entities[i])
	}
	return result
}

func peak(e core.Entity) float64 {
	return core.MaxValue(e.Positive, 0)
}
