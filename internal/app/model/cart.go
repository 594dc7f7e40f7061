package model

// CartItem is one line of a cart: a product snapshot paired with a
// quantity. The snapshot keeps the cart renderable and priceable even if
// the catalog changes underneath it. At most one line exists per product
// id; repeated adds increment the quantity instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
