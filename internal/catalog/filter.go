package catalog

import (
	"strings"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
)

// Filter is the set of active constraints narrowing the catalog. Every
// field is independently optional: the zero value (or nil pointer) means
// "no constraint on this dimension".
type Filter struct {
	Search    string
	Category  string
	Brand     string
	PriceMin  *float64
	PriceMax  *float64
	RatingMin *float64
}

// IsZero reports whether no dimension is constrained.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Brand == "" &&
		f.PriceMin == nil && f.PriceMax == nil && f.RatingMin == nil
}

// Predicate composes the active sub-predicates into one conjunction over
// products. Exact-match dimensions are checked before the substring
// search since they are cheaper to reject on.
func (f Filter) Predicate() func(model.Product) bool {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	return func(p model.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if f.Brand != "" && p.Brand != f.Brand {
			return false
		}
		if f.PriceMin != nil && p.Price < *f.PriceMin {
			return false
		}
		if f.PriceMax != nil && p.Price > *f.PriceMax {
			return false
		}
		if f.RatingMin != nil && p.RatingOrZero() < *f.RatingMin {
			return false
		}
		if search != "" && !matchesSearch(p, search) {
			return false
		}
		return true
	}
}

// Apply evaluates the predicate once per candidate, preserving feed order.
func (f Filter) Apply(products []model.Product) []model.Product {
	match := f.Predicate()
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if match(p) {
			result = append(result, p)
		}
	}
	return result
}

func matchesSearch(p model.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}
