package cart

import (
	"github.com/dpaiva/lojinha-backend/internal/app/model"
)

// ChangeHook observes committed cart states. Hooks carry every side
// effect around the reducer (persistence, logging); the reducer itself
// stays pure.
type ChangeHook func(items []model.CartItem)

// Store owns one cart's state and funnels every mutation through the
// reducer. It is an explicit value, not a singleton: construct as many
// independent stores as needed.
type Store struct {
	items []model.CartItem
	hooks []ChangeHook
}

func New() *Store {
	return &Store{items: []model.CartItem{}}
}

// Hydrate installs previously persisted items without firing change
// hooks, so startup hydration does not echo a write back to storage.
func (s *Store) Hydrate(items []model.CartItem) {
	s.items = Reduce(s.items, Load{Items: items})
}

// OnChange registers a hook invoked after every dispatched action.
func (s *Store) OnChange(hook ChangeHook) {
	s.hooks = append(s.hooks, hook)
}

// Dispatch runs one action through the reducer, commits the result and
// notifies hooks. Actions are applied strictly in call order.
func (s *Store) Dispatch(action Action) {
	s.items = Reduce(s.items, action)
	for _, hook := range s.hooks {
		hook(s.Items())
	}
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []model.CartItem {
	return cloneItems(s.items)
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Contains reports whether a line exists for the product id.
func (s *Store) Contains(productID uint) bool {
	_, ok := s.Item(productID)
	return ok
}

// Item looks up the line for a product id.
func (s *Store) Item(productID uint) (model.CartItem, bool) {
	for _, item := range s.items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return model.CartItem{}, false
}
