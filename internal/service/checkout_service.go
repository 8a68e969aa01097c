package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"havenwood/internal/cart"
	"havenwood/internal/domain"
	"havenwood/internal/notify"
	"havenwood/internal/pricing"
	"havenwood/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// CheckoutInfo is the validated shipping and contact data collected by the
// checkout form. Payment details are verified at the transport boundary and
// never reach this layer.
type CheckoutInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	ZipCode   string
	Country   string
}

// CheckoutService defines the interface for order placement
type CheckoutService interface {
	PlaceOrder(ctx context.Context, cartID string, info CheckoutInfo) (*domain.Order, error)
}

type checkoutService struct {
	carts    *cart.Store
	orders   repository.OrderRepository
	notifier notify.Notifier
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(carts *cart.Store, orders repository.OrderRepository, notifier notify.Notifier) CheckoutService {
	return &checkoutService{
		carts:    carts,
		orders:   orders,
		notifier: notifier,
	}
}

// PlaceOrder captures the current cart lines and price quote into an order
// record, then clears the cart. The cart is only cleared once the order has
// been durably written.
func (s *checkoutService) PlaceOrder(ctx context.Context, cartID string, info CheckoutInfo) (*domain.Order, error) {
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	quote := pricing.Calculate(lines.Subtotal())

	order := &domain.Order{
		ID:         uuid.New(),
		CartID:     cartID,
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		Email:      info.Email,
		Phone:      info.Phone,
		Address:    info.Address,
		City:       info.City,
		ZipCode:    info.ZipCode,
		Country:    info.Country,
		Lines:      lines,
		Subtotal:   quote.Subtotal,
		Shipping:   quote.Shipping,
		Tax:        quote.Tax,
		GrandTotal: quote.GrandTotal,
		CreatedAt:  time.Now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	s.notifier.Notify(notify.KindSuccess, "Order placed successfully!")

	return order, nil
}
