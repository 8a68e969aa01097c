package domain

// CartLine is one entry in a cart. Name, price and image are a snapshot of the
// product's display fields taken when the line was added; they are not
// re-synced if the catalog changes, so existing cart entries stay stable.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price * quantity for this line.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}
