// Package cart holds a session's shopping cart: line items keyed by
// (productID, size, optionName) with merge-on-add semantics and a
// deterministic subtotal. Carts live in memory only and are never persisted.
package cart

import "sync"

// Line is one cart entry. Price is a snapshot taken when the line was added.
type Line struct {
	ProductID  string  `json:"productId"`
	Size       string  `json:"size"`
	OptionName string  `json:"optionName"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"imageUrl"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// key identifies a line. Two adds with the same key merge into one line.
func (l Line) key() [3]string {
	return [3]string{l.ProductID, l.Size, l.OptionName}
}

// Cart is one session's cart. The zero value is not usable; use New. Methods
// are safe for concurrent use so that parallel requests from the same session
// cannot corrupt the line list.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	open  bool
}

// New returns an empty, closed cart.
func New() *Cart {
	return &Cart{}
}

// AddItem appends the line, or increments the quantity of an existing line
// with the same (productID, size, optionName). A non-positive quantity on the
// incoming line defaults to 1.
func (c *Cart) AddItem(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].key() == line.key() {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(productID, size, optionName string) {
	key := [3]string{productID, size, optionName}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].key() == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the matching line's quantity, clamped to a minimum of 1.
// A line is only ever removed explicitly, never by driving its quantity down.
// No-op if the line is absent.
func (c *Cart) SetQuantity(productID, size, optionName string, qty int) {
	if qty < 1 {
		qty = 1
	}
	key := [3]string{productID, size, optionName}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].key() == key {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Subtotal recomputes price x quantity over all lines from current state.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, l := range c.lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Open marks the cart panel visible. Presentation state only; contents are
// unaffected.
func (c *Cart) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
}

// Close marks the cart panel hidden.
func (c *Cart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

// IsOpen reports whether the cart panel is visible.
func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}
