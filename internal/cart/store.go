package cart

import (
	"context"
	"errors"
	"fmt"

	"havenwood/internal/domain"
	"havenwood/internal/notify"

	"go.uber.org/zap"
)

var (
	// ErrInvalidQuantity is returned by SetQuantity for negative values.
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
)

// Store is the single owner of cart mutation. Every operation applies a pure
// transition and synchronously writes the whole new state back to the
// repository before returning, so durable storage is always consistent with
// what the caller saw.
type Store struct {
	repo     Repository
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewStore creates a cart store.
func NewStore(repo Repository, notifier notify.Notifier, logger *zap.Logger) *Store {
	return &Store{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Lines returns the current cart state.
func (s *Store) Lines(ctx context.Context, cartID string) (Lines, error) {
	return s.repo.Load(ctx, cartID)
}

// AddItem merges the snapshot into the cart. An existing line for the same
// product has its quantity incremented by item.Quantity; otherwise the item
// is appended as a new line. A non-positive quantity on the snapshot is
// treated as 1. Stock is advisory only and never checked here.
func (s *Store) AddItem(ctx context.Context, cartID string, item domain.CartLine) (Lines, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	lines, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	next, updated := Add(lines, item)
	if err := s.repo.Save(ctx, cartID, next); err != nil {
		return nil, err
	}

	if updated {
		s.notifier.Notify(notify.KindSuccess, fmt.Sprintf("Updated quantity for %s", item.Name))
	} else {
		s.notifier.Notify(notify.KindSuccess, fmt.Sprintf("%s added to cart!", item.Name))
	}

	s.logger.Debug("Cart item added",
		zap.String("cart_id", cartID),
		zap.Int64("product_id", item.ProductID),
		zap.Int("quantity", item.Quantity),
		zap.Bool("merged", updated),
	)

	return next, nil
}

// RemoveItem deletes the line with the given product id. Removing an absent
// product is a silent no-op.
func (s *Store) RemoveItem(ctx context.Context, cartID string, productID int64) (Lines, error) {
	lines, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	removed, found := lines.Find(productID)

	next, _ := Remove(lines, productID)
	if err := s.repo.Save(ctx, cartID, next); err != nil {
		return nil, err
	}

	if found {
		s.notifier.Notify(notify.KindError, fmt.Sprintf("%s removed from cart", removed.Name))
	}

	return next, nil
}

// SetQuantity sets a line's quantity to an absolute value. Quantity 0 removes
// the line; a missing line is a no-op; negative values are rejected with
// ErrInvalidQuantity before any state changes.
func (s *Store) SetQuantity(ctx context.Context, cartID string, productID int64, quantity int) (Lines, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	lines, err := s.repo.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line, found := lines.Find(productID)

	next, _ := SetQuantity(lines, productID, quantity)
	if err := s.repo.Save(ctx, cartID, next); err != nil {
		return nil, err
	}

	if found && quantity == 0 {
		s.notifier.Notify(notify.KindError, fmt.Sprintf("%s removed from cart", line.Name))
	}

	return next, nil
}

// Clear empties the cart and deletes the persisted snapshot entirely rather
// than writing an empty array, so a cleared cart and a never-used cart are
// indistinguishable on the next load.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	if err := s.repo.Delete(ctx, cartID); err != nil {
		return err
	}

	s.notifier.Notify(notify.KindSuccess, "Cart cleared successfully")

	s.logger.Debug("Cart cleared", zap.String("cart_id", cartID))
	return nil
}
