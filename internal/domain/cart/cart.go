// internal/domain/cart/cart.go
package cart

import "time"

// New returns an empty cart.
func New() *Cart {
	now := time.Now().UTC()
	return &Cart{
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add inserts an item or, when a line with the same composite key already
// exists, increments that line's quantity. The merged line keeps the unit
// price, metadata and position of the original add. Items with a quantity
// below 1 are ignored.
func (c *Cart) Add(item CartItem) {
	if item.Quantity < 1 {
		return
	}
	item.Color = normalizeVariant(item.Color)
	item.Size = normalizeVariant(item.Size)

	if idx := c.indexOf(item.Key()); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		c.touch()
		return
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	c.Items = append(c.Items, item)
	c.touch()
}

// SetQuantity sets the quantity of the line with the given key. Quantities
// below 1 are a no-op rather than a removal: the storefront disables the
// decrement control at quantity 1 and routes deletions through Remove.
// An unknown key is a silent no-op, tolerating stale UI state.
// Reports whether the cart changed.
func (c *Cart) SetQuantity(key ItemKey, quantity int) bool {
	if quantity < 1 {
		return false
	}
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.Items[idx].Quantity = quantity
	c.touch()
	return true
}

// Remove deletes the line with the given key, keeping the order of the
// remaining lines. Removing an absent key is a no-op. Reports whether a
// line was removed.
func (c *Cart) Remove(key ItemKey) bool {
	idx := c.indexOf(key)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.touch()
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.touch()
}

// Get returns the line with the given key.
func (c *Cart) Get(key ItemKey) (CartItem, bool) {
	if idx := c.indexOf(key); idx >= 0 {
		return c.Items[idx], true
	}
	return CartItem{}, false
}

// Contains reports whether a line with the given composite key exists,
// driving "already in cart" UI state.
func (c *Cart) Contains(productID uint, color, size string) bool {
	return c.indexOf(NewItemKey(productID, color, size)) >= 0
}

// ItemCount is the sum of all quantities, shown on the cart icon badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the sum of all line totals.
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.LineTotal()
	}
	return subtotal
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Totals recomputes the cart summary from the current lines.
func (c *Cart) Totals() Totals {
	t := Totals{ItemCount: len(c.Items)}
	for _, item := range c.Items {
		t.TotalQuantity += item.Quantity
		t.SubTotal += item.LineTotal()
	}
	t.TotalAmount = t.SubTotal
	return t
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = make([]CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

func (c *Cart) indexOf(key ItemKey) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

func normalizeVariant(v string) string {
	if v == "" {
		return DefaultVariant
	}
	return v
}
