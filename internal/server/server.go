package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"havenwood/internal/cart"
	"havenwood/internal/catalog"
	"havenwood/internal/config"
	custommiddleware "havenwood/internal/middleware"
	"havenwood/internal/notify"
	"havenwood/internal/repository"
	"havenwood/internal/service"
	"havenwood/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client, cat *catalog.Catalog) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Every request carries an anonymous cart session
	router.Use(custommiddleware.CartSessionMiddleware(cfg.Session.Secret, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize cart store and repositories
	notifier := notify.NewLogNotifier(logger)
	cartRepo := cart.NewRedisRepository(redisClient, logger)
	cartStore := cart.NewStore(cartRepo, notifier, logger)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	checkoutService := service.NewCheckoutService(cartStore, orderRepo, notifier)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(cat, logger)
	cartHandler := transport.NewCartHandler(cartStore, cat, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkoutService, logger)

	// Checkout is the only endpoint worth rate limiting
	checkoutRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		KeyPrefix:         "ratelimit:checkout",
	}, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router, checkoutRateLimit)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
