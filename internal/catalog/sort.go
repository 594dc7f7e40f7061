package catalog

import (
	"sort"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
)

// SortKey selects the ordering applied to a filtered result set.
type SortKey string

const (
	SortRelevance SortKey = "relevancia"
	SortPriceAsc  SortKey = "preco-asc"
	SortPriceDesc SortKey = "preco-desc"
	SortRating    SortKey = "avaliacao"
	SortSold      SortKey = "vendidos"
	SortNewest    SortKey = "novidades"
)

// DefaultSortKey is relevance: the catalog feed order, untouched.
const DefaultSortKey = SortRelevance

// ParseSortKey maps a wire value to a sort key. Unknown values fall back
// to the default rather than erroring.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortRating, SortSold, SortNewest:
		return SortKey(s)
	default:
		return DefaultSortKey
	}
}

// Apply orders products by the sort key. The input order is the catalog
// feed order; sorting is stable, so elements the comparator considers
// equal keep that order. Relevance is a pass-through.
func Apply(products []model.Product, key SortKey) []model.Product {
	result := make([]model.Product, len(products))
	copy(result, products)

	less := comparator(key)
	if less == nil {
		return result
	}
	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

func comparator(key SortKey) func(a, b model.Product) bool {
	switch key {
	case SortPriceAsc:
		return func(a, b model.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		return func(a, b model.Product) bool { return a.Price > b.Price }
	case SortRating:
		return func(a, b model.Product) bool { return a.RatingOrZero() > b.RatingOrZero() }
	case SortSold:
		return func(a, b model.Product) bool { return a.SoldOrZero() > b.SoldOrZero() }
	case SortNewest:
		// Most recent first; products without a timestamp sort last.
		return func(a, b model.Product) bool {
			if a.CreatedAt == nil {
				return false
			}
			if b.CreatedAt == nil {
				return true
			}
			return a.CreatedAt.After(*b.CreatedAt)
		}
	default:
		return nil
	}
}
