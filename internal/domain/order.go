package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is a completed checkout, captured with the cart lines and the price
// quote that was shown to the customer at the time of placement.
type Order struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CartID     string     `json:"cart_id" db:"cart_id"`
	FirstName  string     `json:"first_name" db:"first_name"`
	LastName   string     `json:"last_name" db:"last_name"`
	Email      string     `json:"email" db:"email"`
	Phone      string     `json:"phone" db:"phone"`
	Address    string     `json:"address" db:"address"`
	City       string     `json:"city" db:"city"`
	ZipCode    string     `json:"zip_code" db:"zip_code"`
	Country    string     `json:"country" db:"country"`
	Lines      []CartLine `json:"lines"`
	Subtotal   float64    `json:"subtotal" db:"subtotal"`
	Shipping   float64    `json:"shipping" db:"shipping"`
	Tax        float64    `json:"tax" db:"tax"`
	GrandTotal float64    `json:"grand_total" db:"grand_total"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
