// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"
)

// DefaultVariant fills the color/size slots of products without real variants.
const DefaultVariant = "default"

// ItemKey is the composite identity of a cart item. Two adds with the same key
// merge into a single line; the same product in two sizes is two distinct lines.
type ItemKey struct {
	ProductID uint   `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// NewItemKey builds an item key, defaulting empty variant slots.
func NewItemKey(productID uint, color, size string) ItemKey {
	if color == "" {
		color = DefaultVariant
	}
	if size == "" {
		size = DefaultVariant
	}
	return ItemKey{ProductID: productID, Color: color, Size: size}
}

// String returns a stable representation, usable as a map or log key.
func (k ItemKey) String() string {
	return fmt.Sprintf("%d:%s:%s", k.ProductID, k.Color, k.Size)
}

// CartItem is one selected product variant in the cart. UnitPrice is captured
// when the item is first added and is not re-derived from the catalog afterwards,
// so a mid-session price change never silently reprices the cart.
type CartItem struct {
	ProductID uint      `json:"product_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"` // price in cents at time of adding
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Key returns the composite identity of the item.
func (i CartItem) Key() ItemKey {
	return NewItemKey(i.ProductID, i.Color, i.Size)
}

// LineTotal is derived on demand, never stored.
func (i CartItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Cart is the ordered collection of items for one shopper. Items keep their
// insertion order; quantity updates never move a line.
type Cart struct {
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Totals summarizes a cart for display and checkout.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // sum of all quantities
	SubTotal      int64 `json:"sub_total"`      // sum of line totals, pre-tax/shipping
	TotalAmount   int64 `json:"total_amount"`
}
