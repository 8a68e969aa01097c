// Package cart owns the shopping cart state: pure transition functions over
// an ordered line collection, a write-through Store that persists every
// mutation, and the Redis-backed persistence behind it.
package cart

import "havenwood/internal/domain"

// Lines is the ordered cart state. Insertion order is display order.
type Lines []domain.CartLine

// The transition functions below are pure: they never mutate their input and
// return a fresh slice, so state changes can be tested without any storage.

// Add merges item into lines. If a line with the same product id already
// exists its quantity is incremented by item.Quantity, otherwise the item is
// appended. The returned bool reports whether an existing line was updated.
func Add(lines Lines, item domain.CartLine) (Lines, bool) {
	next := make(Lines, len(lines))
	copy(next, lines)

	for i, line := range next {
		if line.ProductID == item.ProductID {
			line.Quantity += item.Quantity
			next[i] = line
			return next, true
		}
	}

	return append(next, item), false
}

// Remove deletes the line with the given product id. Removing an absent id is
// a no-op, not an error; the bool reports whether a line was removed.
func Remove(lines Lines, productID int64) (Lines, bool) {
	next := make(Lines, 0, len(lines))
	removed := false

	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		next = append(next, line)
	}

	return next, removed
}

// SetQuantity sets the line's quantity to an absolute value. Quantity 0
// removes the line entirely; a missing line is a no-op. Callers must reject
// negative quantities before reaching this function.
func SetQuantity(lines Lines, productID int64, quantity int) (Lines, bool) {
	if quantity == 0 {
		return Remove(lines, productID)
	}

	next := make(Lines, len(lines))
	copy(next, lines)

	for i, line := range next {
		if line.ProductID == productID {
			line.Quantity = quantity
			next[i] = line
			return next, true
		}
	}

	return next, false
}

// Find returns the line with the given product id.
func (l Lines) Find(productID int64) (domain.CartLine, bool) {
	for _, line := range l {
		if line.ProductID == productID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// ItemCount is the sum of all line quantities.
func (l Lines) ItemCount() int {
	count := 0
	for _, line := range l {
		count += line.Quantity
	}
	return count
}

// Subtotal is the sum of price * quantity over all lines.
func (l Lines) Subtotal() float64 {
	total := 0.0
	for _, line := range l {
		total += line.LineTotal()
	}
	return total
}
