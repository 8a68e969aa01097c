package transport

import (
	"net/http"
	"time"

	"havenwood/internal/middleware"
	"havenwood/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout form payload. Card fields are
// validated here and then discarded; payment is mock and nothing stores them.
type CheckoutRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	ZipCode    string `json:"zip_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	CardNumber string `json:"card_number" validate:"required,len=16,numeric"`
	ExpiryDate string `json:"expiry_date" validate:"required,len=5"`
	CVV        string `json:"cvv" validate:"required,min=3,max=4,numeric"`
}

// OrderResponse represents a successfully placed order
type OrderResponse struct {
	OrderID    string  `json:"order_id"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
	Message    string  `json:"message"`
}

// CheckoutHandler handles HTTP requests for order placement
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post("/api/checkout", h.PlaceOrder)
	})
}

// PlaceOrder validates the checkout form, places the order and clears the cart
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	cartID, ok := middleware.GetCartID(r.Context())
	if !ok {
		h.logger.Error("Cart ID not found in context")
		middleware.RespondWithError(w, http.StatusInternalServerError, "missing cart session")
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// MM/YY, matching the card form mask.
	if _, err := time.Parse("01/06", req.ExpiryDate); err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "ExpiryDate", Message: "Expiry date must be MM/YY"},
		})
		return
	}

	order, err := h.checkoutService.PlaceOrder(r.Context(), cartID, service.CheckoutInfo{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
	})
	if err != nil {
		if err == service.ErrEmptyCart {
			middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
			return
		}

		h.logger.Error("Order placement failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed successfully",
		zap.String("order_id", order.ID.String()),
		zap.String("cart_id", cartID),
		zap.Float64("grand_total", order.GrandTotal),
	)

	middleware.RespondWithJSON(w, http.StatusCreated, OrderResponse{
		OrderID:    order.ID.String(),
		Subtotal:   order.Subtotal,
		Shipping:   order.Shipping,
		Tax:        order.Tax,
		GrandTotal: order.GrandTotal,
		Message:    "Order placed successfully!",
	})
}
