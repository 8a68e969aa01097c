// Package pricing derives shipping, tax and grand total from a cart subtotal.
// Every view that shows order totals goes through Calculate so the policy
// values below are applied in exactly one place.
package pricing

// Pricing policy. These are fixed business values, not tunables.
const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	// The comparison is strictly greater-than: a subtotal of exactly 100
	// still pays the flat fee.
	FreeShippingThreshold = 100.0

	// FlatShippingFee applies to every order at or below the threshold.
	FlatShippingFee = 9.99

	// TaxRate is applied to the subtotal only, never to shipping.
	TaxRate = 0.08
)

// Quote is the full price breakdown for a cart.
type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
}

// Calculate derives the quote for a subtotal. It is a pure function of the
// subtotal alone.
func Calculate(subtotal float64) Quote {
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate

	return Quote{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal + shipping + tax,
	}
}
