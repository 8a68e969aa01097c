package catalog

import (
	"sort"
	"strings"

	"havenwood/internal/domain"
)

// SortKey selects the ordering of a catalog view.
type SortKey string

const (
	SortDefault   SortKey = "default"    // catalog order (id ascending)
	SortPriceLow  SortKey = "price-low"  // price ascending
	SortPriceHigh SortKey = "price-high" // price descending
	SortRating    SortKey = "rating"     // rating descending
)

// CategoryAll disables the category filter stage.
const CategoryAll = "all"

// QueryConfig describes one catalog view. Zero values disable the
// corresponding stage: empty search matches everything, an empty or "all"
// category disables the category filter, and PriceMax <= 0 disables the price
// ceiling.
type QueryConfig struct {
	Search   string
	Category string
	PriceMax float64
	Sort     SortKey
}

// Query produces a filtered, sorted view of products. It never mutates its
// input and never fails; an unknown sort key falls back to catalog order.
// Filter stages compose with AND semantics, in the order search, category,
// price ceiling, sort.
func Query(products []domain.Product, cfg QueryConfig) []domain.Product {
	result := make([]domain.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(cfg.Search))
	category := cfg.Category

	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if category != "" && category != CategoryAll && string(p.Category) != category {
			continue
		}
		if cfg.PriceMax > 0 && p.Price > cfg.PriceMax {
			continue
		}
		result = append(result, p)
	}

	// Stable sorts keep catalog order (id ascending) as the tiebreak, so the
	// same config always yields the same view.
	switch cfg.Sort {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	}

	return result
}

// matchesSearch reports whether the lowercased search term appears in the
// product's name, description or category.
func matchesSearch(p domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(string(p.Category)), search)
}
