// Package abc classifies products into revenue classes A, B, and C by their
// share of potential revenue.
package abc

import (
	"sort"

	"github.com/Romz16/ProfitMAX/internal/catalog"
)

// Class is a revenue classification bucket.
type Class string

const (
	// ClassA covers products forming the first 80% of potential revenue.
	ClassA Class = "A"

	// ClassB covers products between 80% and 95% of potential revenue.
	ClassB Class = "B"

	// ClassC covers the remaining tail.
	ClassC Class = "C"
)

const (
	classACutoff = 0.80
	classBCutoff = 0.95
)

// Classify maps each product ID to its revenue class. Potential revenue is
// target sell price times the manual sales estimate. Products are ranked by
// revenue descending with product ID as a stable tiebreak, so the mapping is
// deterministic for identical catalogs.
func Classify(products []catalog.Product) map[string]Class {
	mapping := make(map[string]Class, len(products))
	if len(products) == 0 {
		return mapping
	}

	type ranked struct {
		id      string
		revenue float64
	}
	entries := make([]ranked, len(products))
	total := 0.0
	for i, p := range products {
		revenue := p.TargetSellPrice * float64(p.ManualSalesEstimate)
		entries[i] = ranked{id: p.ID, revenue: revenue}
		total += revenue
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].revenue != entries[b].revenue {
			return entries[a].revenue > entries[b].revenue
		}
		return entries[a].id < entries[b].id
	})

	accumulated := 0.0
	for _, entry := range entries {
		accumulated += entry.revenue
		share := 0.0
		if total > 0 {
			share = accumulated / total
		}
		switch {
		case share <= classACutoff:
			mapping[entry.id] = ClassA
		case share <= classBCutoff:
			mapping[entry.id] = ClassB
		default:
			mapping[entry.id] = ClassC
		}
	}
	return mapping
}
