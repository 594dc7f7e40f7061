package catalog

import (
	"sort"
	"sync"

	"github.com/dpaiva/lojinha-backend/internal/app/model"
)

// Feed is the read-only in-memory catalog snapshot the storefront serves
// from. Slice order is the catalog feed order every sort ties back to.
// The snapshot is swapped wholesale by the refresh job, so reads take a
// shared lock.
type Feed struct {
	mu       sync.RWMutex
	products []model.Product
	byID     map[uint]model.Product
}

func NewFeed(products []model.Product) *Feed {
	f := &Feed{}
	f.Reload(products)
	return f
}

// Reload replaces the snapshot.
func (f *Feed) Reload(products []model.Product) {
	snapshot := make([]model.Product, len(products))
	copy(snapshot, products)

	byID := make(map[uint]model.Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = snapshot
	f.byID = byID
}

// Products returns a copy of the snapshot in feed order.
func (f *Feed) Products() []model.Product {
	f.mu.RLock()
	defer f.mu.RUnlock()
	products := make([]model.Product, len(f.products))
	copy(products, f.products)
	return products
}

// Product looks up a catalog entity by id.
func (f *Feed) Product(id uint) (model.Product, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.byID[id]
	return p, ok
}

// Len reports the snapshot size.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.products)
}

// Brands returns the distinct brand names in the catalog, sorted.
func (f *Feed) Brands() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	seen := make(map[string]struct{})
	var brands []string
	for _, p := range f.products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

// PriceBounds returns the global minimum and maximum unit price. ok is
// false for an empty catalog.
func (f *Feed) PriceBounds() (min, max float64, ok bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.products) == 0 {
		return 0, 0, false
	}
	min, max = f.products[0].Price, f.products[0].Price
	for _, p := range f.products[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max, true
}
