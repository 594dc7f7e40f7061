package cart

import (
	"github.com/dpaiva/lojinha-backend/internal/app/model"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Action is a request for a cart state transition. The set of actions is
// closed: Add, SetQuantity, Remove, Clear and Load.
type Action interface {
	isAction()
}

// Add appends a line for the product or increments an existing one.
// Incrementing past MaxQuantity saturates silently.
type Add struct {
	Product model.Product
}

// SetQuantity replaces a line's quantity, clamped to
// [MinQuantity, MaxQuantity]. A quantity of zero or less removes the line.
// Unknown product ids are ignored.
type SetQuantity struct {
	ProductID uint
	Quantity  int
}

// Remove deletes the line for the product id, if present.
type Remove struct {
	ProductID uint
}

// Clear empties the cart.
type Clear struct{}

// Load replaces the whole state. Used once, when hydrating persisted
// items at startup.
type Load struct {
	Items []model.CartItem
}

func (Add) isAction()         {}
func (SetQuantity) isAction() {}
func (Remove) isAction()      {}
func (Clear) isAction()       {}
func (Load) isAction()        {}

// Reduce is the pure transition function over cart state. It never
// mutates its input and holds two invariants on every output: at most one
// line per product id, and every quantity within [MinQuantity, MaxQuantity].
// Line order is insertion order.
func Reduce(state []model.CartItem, action Action) []model.CartItem {
	switch a := action.(type) {
	case Add:
		return reduceAdd(state, a.Product)
	case SetQuantity:
		if a.Quantity <= 0 {
			return reduceRemove(state, a.ProductID)
		}
		return reduceSetQuantity(state, a.ProductID, clampQuantity(a.Quantity))
	case Remove:
		return reduceRemove(state, a.ProductID)
	case Clear:
		return []model.CartItem{}
	case Load:
		return cloneItems(a.Items)
	default:
		return cloneItems(state)
	}
}

func reduceAdd(state []model.CartItem, product model.Product) []model.CartItem {
	next := cloneItems(state)
	for i := range next {
		if next[i].Product.ID == product.ID {
			next[i].Quantity = clampQuantity(next[i].Quantity + 1)
			return next
		}
	}
	return append(next, model.CartItem{Product: product, Quantity: 1})
}

func reduceSetQuantity(state []model.CartItem, productID uint, quantity int) []model.CartItem {
	next := cloneItems(state)
	for i := range next {
		if next[i].Product.ID == productID {
			next[i].Quantity = quantity
			break
		}
	}
	return next
}

func reduceRemove(state []model.CartItem, productID uint) []model.CartItem {
	next := make([]model.CartItem, 0, len(state))
	for _, item := range state {
		if item.Product.ID != productID {
			next = append(next, item)
		}
	}
	return next
}

func clampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

func cloneItems(items []model.CartItem) []model.CartItem {
	next := make([]model.CartItem, len(items))
	copy(next, items)
	return next
}
