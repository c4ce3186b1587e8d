package preorder

// Cart holds the ordered sequence of lines for a draft. Insertion order is
// preserved; incrementing an existing line never reorders it.
type Cart struct {
	lines []CartLine
}

// SelectItem increments the quantity of an existing line for the item, or
// appends a fresh line with quantity 1.
func (c *Cart) SelectItem(item MenuItem) {
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
}

// ChangeQuantity sets the line quantity. Anything below 1 removes the line
// entirely rather than keeping a zero-quantity entry.
func (c *Cart) ChangeQuantity(itemID int64, quantity int) {
	if quantity < 1 {
		c.RemoveItem(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the matching line unconditionally.
func (c *Cart) RemoveItem(itemID int64) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total is the sum of unit price times quantity over the current lines, in
// cents. It is always recomputed, never cached.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.lines = nil
}
