package transport

import (
	"net/http"
	"strconv"

	"havenwood/internal/cart"
	"havenwood/internal/catalog"
	"havenwood/internal/domain"
	"havenwood/internal/middleware"
	"havenwood/internal/pricing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart request payload
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateQuantityRequest represents the set-quantity request payload.
// Quantity 0 removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// CartResponse represents the cart with its derived totals
type CartResponse struct {
	Items     cart.Lines    `json:"items"`
	ItemCount int           `json:"item_count"`
	Pricing   pricing.Quote `json:"pricing"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	store   *cart.Store
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *cart.Store, c *catalog.Catalog, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: c,
		logger:  logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.UpdateQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
	})
}

// Get returns the current cart with its price quote
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, ok := middleware.GetCartID(r.Context())
	if !ok {
		h.logger.Error("Cart ID not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing cart session")
		return
	}

	lines, err := h.store.Lines(r.Context(), cartID)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	h.respondCart(w, lines)
}

// AddItem snapshots the product from the catalog and merges it into the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := middleware.GetCartID(r.Context())
	if !ok {
		h.logger.Error("Cart ID not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing cart session")
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	// The line carries a snapshot of the product's display fields as of now;
	// later catalog changes never touch existing cart entries.
	snapshot := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  req.Quantity,
	}

	lines, err := h.store.AddItem(r.Context(), cartID, snapshot)
	if err != nil {
		h.logger.Error("Failed to add cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item to cart")
		return
	}

	h.respondCart(w, lines)
}

// UpdateQuantity sets a line's quantity to an absolute value
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := middleware.GetCartID(r.Context())
	if !ok {
		h.logger.Error("Cart ID not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing cart session")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update quantity validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines, err := h.store.SetQuantity(r.Context(), cartID, productID, *req.Quantity)
	if err != nil {
		if err == cart.ErrInvalidQuantity {
			middleware.RespondWithError(w, http.StatusBadRequest, "quantity cannot be negative")
			return
		}

		h.logger.Error("Failed to update cart quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondCart(w, lines)
}

// RemoveItem deletes a line; removing an absent product succeeds as a no-op
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := middleware.GetCartID(r.Context())
	if !ok {
		h.logger.Error("Cart ID not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing cart session")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	lines, err := h.store.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove item from cart")
		return
	}

	h.respondCart(w, lines)
}

// Clear empties the cart entirely
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, ok := middleware.GetCartID(r.Context())
	if !ok {
		h.logger.Error("Cart ID not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing cart session")
		return
	}

	if err := h.store.Clear(r.Context(), cartID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	h.respondCart(w, cart.Lines{})
}

func (h *CartHandler) respondCart(w http.ResponseWriter, lines cart.Lines) {
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items:     lines,
		ItemCount: lines.ItemCount(),
		Pricing:   pricing.Calculate(lines.Subtotal()),
	})
}
