package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"havenwood/internal/cart"
	"havenwood/internal/catalog"
	"havenwood/internal/domain"
	"havenwood/internal/middleware"
	"havenwood/internal/notify"
	"havenwood/internal/repository"
	"havenwood/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// memoryOrderRepository keeps orders in a map for handler tests
type memoryOrderRepository struct {
	orders map[uuid.UUID]*domain.Order
}

func (m *memoryOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *memoryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Aria Lounge Chair", Description: "Mid-century lounge chair", Category: domain.CategoryChair, Price: 249.99, Rating: 4.6, Stock: 8},
		{ID: 2, Name: "Nordic Oak Cabinet", Description: "Two-door storage cabinet", Category: domain.CategoryCabinet, Price: 579.00, Rating: 4.8, Stock: 3},
		{ID: 7, Name: "Elite Chair", Description: "Executive desk chair", Category: domain.CategoryChair, Price: 150.00, Rating: 4.4, Stock: 12},
	}
}

type fixture struct {
	router chi.Router
	mr     *miniredis.Miniredis
	orders *memoryOrderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	notifier := notify.Nop()

	cat := catalog.New(fixtureProducts())
	store := cart.NewStore(cart.NewRedisRepository(client, logger), notifier, logger)
	orders := &memoryOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
	checkout := service.NewCheckoutService(store, orders, notifier)

	r := chi.NewRouter()
	r.Use(middleware.CartSessionMiddleware("test-secret", logger))

	NewCatalogHandler(cat, logger).RegisterRoutes(r)
	NewCartHandler(store, cat, logger).RegisterRoutes(r)
	NewCheckoutHandler(checkout, logger).RegisterRoutes(r, nil)

	return &fixture{router: r, mr: mr, orders: orders}
}

// do performs a request, carrying the cart token across calls so consecutive
// requests hit the same cart.
func (f *fixture) do(t *testing.T, method, target, body, token string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(middleware.CartTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec, rec.Header().Get(middleware.CartTokenHeader)
}
