package transport

import (
	"net/http"
	"strconv"

	"havenwood/internal/catalog"
	"havenwood/internal/domain"
	"havenwood/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse represents a catalog view
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
}

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(c *catalog.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{productID}", h.Get)
	})
	r.Get("/api/categories", h.Categories)
}

// List returns a filtered, sorted view of the catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	cfg := catalog.QueryConfig{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     catalog.SortKey(q.Get("sort")),
	}

	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// The query engine never fails; a malformed ceiling disables
			// the stage instead of erroring the request.
			h.logger.Debug("Ignoring malformed max_price", zap.String("max_price", raw))
		} else {
			cfg.PriceMax = maxPrice
		}
	}

	view := h.catalog.Query(cfg)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: view,
		Count:    len(view),
		Total:    h.catalog.Len(),
	})
}

// Get returns a single product by id
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, ok := h.catalog.Get(productID)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Categories returns the fixed category list
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string][]domain.Category{
		"categories": domain.Categories(),
	})
}
