package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	// CartIDKey holds the cart session id in the request context.
	CartIDKey contextKey = "cart_id"

	// CartTokenHeader carries the signed cart session token on both requests
	// and responses.
	CartTokenHeader = "X-Cart-Token"
)

// CartSessionMiddleware attaches a cart identity to every request. Carts are
// anonymous: the token carries nothing but a random cart id, signed so that
// clients cannot pick arbitrary cart keys. A missing or invalid token is not
// an error; the request simply gets a fresh empty cart. The current token is
// always echoed on the response so the client can persist it across reloads.
func CartSessionMiddleware(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID := ""

			tokenString := r.Header.Get(CartTokenHeader)
			if tokenString != "" {
				id, err := parseCartToken(tokenString, jwtSecret)
				if err != nil {
					logger.Debug("Invalid cart token, issuing a new cart", zap.Error(err))
				} else {
					cartID = id
				}
			}

			if cartID == "" {
				cartID = uuid.New().String()

				signed, err := signCartToken(cartID, jwtSecret)
				if err != nil {
					logger.Error("Failed to sign cart token", zap.Error(err))
					RespondWithError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				tokenString = signed

				logger.Debug("Issued new cart session", zap.String("cart_id", cartID))
			}

			w.Header().Set(CartTokenHeader, tokenString)

			ctx := context.WithValue(r.Context(), CartIDKey, cartID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCartID extracts the cart session id from the request context.
func GetCartID(ctx context.Context) (string, bool) {
	cartID, ok := ctx.Value(CartIDKey).(string)
	return cartID, ok
}

func signCartToken(cartID, jwtSecret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"cart_id": cartID,
	})
	return token.SignedString([]byte(jwtSecret))
}

func parseCartToken(tokenString, jwtSecret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	cartID, ok := claims["cart_id"].(string)
	if !ok || cartID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return cartID, nil
}
