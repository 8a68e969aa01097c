package transport

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"
)

func decodeCart(t *testing.T, body []byte) CartResponse {
	t.Helper()

	var resp CartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("Failed to decode cart response: %v", err)
	}
	return resp
}

func TestGetEmptyCart(t *testing.T) {
	f := newFixture(t)

	rec, token := f.do(t, "GET", "/api/cart", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/cart = %d, want 200", rec.Code)
	}
	if token == "" {
		t.Error("first request should issue a cart token")
	}

	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 || resp.ItemCount != 0 {
		t.Errorf("empty cart = %+v", resp)
	}
	if resp.Pricing.Subtotal != 0 {
		t.Errorf("empty cart subtotal = %v, want 0", resp.Pricing.Subtotal)
	}
}

func TestAddItemToCart(t *testing.T) {
	f := newFixture(t)

	rec, token := f.do(t, "POST", "/api/cart/items", `{"product_id": 7}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/cart/items = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 1 {
		t.Fatalf("cart after add = %+v", resp.Items)
	}

	line := resp.Items[0]
	if line.ProductID != 7 || line.Name != "Elite Chair" || line.Price != 150 {
		t.Errorf("line should snapshot the catalog product, got %+v", line)
	}

	// 150 ships free, 8% tax
	if resp.Pricing.Shipping != 0 || math.Abs(resp.Pricing.GrandTotal-162.00) > 1e-9 {
		t.Errorf("pricing = %+v, want free shipping and total 162.00", resp.Pricing)
	}

	// Same token, same cart: a second add merges quantities
	rec, _ = f.do(t, "POST", "/api/cart/items", `{"product_id": 7, "quantity": 2}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add = %d, want 200", rec.Code)
	}

	resp = decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 3 || resp.ItemCount != 3 {
		t.Errorf("cart after merge = %+v", resp)
	}
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown product", `{"product_id": 999}`, http.StatusNotFound},
		{"missing product id", `{"quantity": 2}`, http.StatusBadRequest},
		{"negative quantity", `{"product_id": 7, "quantity": -1}`, http.StatusBadRequest},
		{"malformed json", `{product_id}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := f.do(t, "POST", "/api/cart/items", tt.body, "")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAddItemOmittedQuantityDefaultsToOne(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, "POST", "/api/cart/items", `{"product_id": 7, "quantity": 0}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("zero quantity = %d, want 200 with quantity defaulted", rec.Code)
	}

	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 1 {
		t.Errorf("omitted quantity should default to 1, got %+v", resp.Items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	f := newFixture(t)

	_, token := f.do(t, "POST", "/api/cart/items", `{"product_id": 7, "quantity": 2}`, "")

	rec, _ := f.do(t, "PUT", "/api/cart/items/7", `{"quantity": 5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/cart/items/7 = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 5 {
		t.Errorf("quantity should be set absolutely, got %+v", resp.Items)
	}

	// Quantity 0 removes the line
	rec, _ = f.do(t, "PUT", "/api/cart/items/7", `{"quantity": 0}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT quantity 0 = %d, want 200", rec.Code)
	}

	resp = decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 {
		t.Errorf("quantity 0 should remove the line, got %+v", resp.Items)
	}
}

func TestUpdateQuantityValidation(t *testing.T) {
	f := newFixture(t)

	_, token := f.do(t, "POST", "/api/cart/items", `{"product_id": 7}`, "")

	rec, _ := f.do(t, "PUT", "/api/cart/items/7", `{"quantity": -2}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative quantity = %d, want 400", rec.Code)
	}

	rec, _ = f.do(t, "PUT", "/api/cart/items/7", `{}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing quantity = %d, want 400", rec.Code)
	}

	rec, _ = f.do(t, "PUT", "/api/cart/items/chair", `{"quantity": 1}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric product id = %d, want 400", rec.Code)
	}
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t)

	_, token := f.do(t, "POST", "/api/cart/items", `{"product_id": 7}`, "")
	_, token = f.do(t, "POST", "/api/cart/items", `{"product_id": 1}`, token)

	rec, _ := f.do(t, "DELETE", "/api/cart/items/7", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /api/cart/items/7 = %d, want 200", rec.Code)
	}

	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 || resp.Items[0].ProductID != 1 {
		t.Errorf("cart after remove = %+v", resp.Items)
	}

	// Removing an absent product is a success, not an error
	rec, _ = f.do(t, "DELETE", "/api/cart/items/7", "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("removing absent product = %d, want 200", rec.Code)
	}
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)

	_, token := f.do(t, "POST", "/api/cart/items", `{"product_id": 7}`, "")

	rec, _ := f.do(t, "DELETE", "/api/cart", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /api/cart = %d, want 200", rec.Code)
	}

	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 || resp.ItemCount != 0 {
		t.Errorf("cleared cart = %+v", resp)
	}

	rec, _ = f.do(t, "GET", "/api/cart", "", token)
	resp = decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 {
		t.Errorf("cart should stay empty after clear, got %+v", resp.Items)
	}
}

func TestCartsAreIsolatedBySession(t *testing.T) {
	f := newFixture(t)

	_, tokenA := f.do(t, "POST", "/api/cart/items", `{"product_id": 7}`, "")

	// A request without a token gets a brand new cart
	rec, tokenB := f.do(t, "GET", "/api/cart", "", "")
	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 {
		t.Errorf("fresh session should see an empty cart, got %+v", resp.Items)
	}
	if tokenA == tokenB {
		t.Error("two sessions should not share a token")
	}

	rec, _ = f.do(t, "GET", "/api/cart", "", tokenA)
	resp = decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 1 {
		t.Errorf("original session lost its cart: %+v", resp.Items)
	}
}
