package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix namespaces cart snapshots in Redis.
const keyPrefix = "cart:"

// Repository persists full cart snapshots under a single key per cart.
type Repository interface {
	// Load returns the stored lines for a cart. An absent or unparseable
	// value yields an empty cart, never an error.
	Load(ctx context.Context, cartID string) (Lines, error)

	// Save replaces the stored snapshot with the given lines.
	Save(ctx context.Context, cartID string, lines Lines) error

	// Delete removes the stored snapshot entirely.
	Delete(ctx context.Context, cartID string) error
}

type redisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRepository creates a Repository backed by Redis. Snapshots are
// written without a TTL; the cart survives for as long as the session token
// that references it keeps being presented.
func NewRedisRepository(client *redis.Client, logger *zap.Logger) Repository {
	return &redisRepository{client: client, logger: logger}
}

func (r *redisRepository) Load(ctx context.Context, cartID string) (Lines, error) {
	raw, err := r.client.Get(ctx, keyPrefix+cartID).Result()
	if err == redis.Nil {
		return Lines{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	var lines Lines
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		// Corrupt snapshots are never fatal: an empty cart is the safe
		// default on the next load.
		r.logger.Debug("Discarding unparseable cart snapshot",
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
		return Lines{}, nil
	}

	return lines, nil
}

func (r *redisRepository) Save(ctx context.Context, cartID string, lines Lines) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to serialize cart %s: %w", cartID, err)
	}

	if err := r.client.Set(ctx, keyPrefix+cartID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cartID, err)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}
