package api

import (
	"net/http"
	"testing"

	"shop_system/internal/domain"

	"github.com/google/uuid"
)

func TestCartQuantityZeroIsNoop(t *testing.T) {
	user, token := createTestUser(t, "cart-zero@example.com", domain.RoleUser)
	category := createTestCategory(t, "Cart Zero Category")
	product := createTestProduct(t, "Cart Zero Product", 25, 10, category.ID)

	// Quantity 0 for a product never in the cart must not create a row
	quantity := 0
	w, _ := doJSON(t, http.MethodPost, "/api/v1/cart",
		map[string]any{"productId": product.ID, "quantity": quantity}, token)
	expectStatus(t, w, http.StatusOK)

	var count int64
	testDB.Model(&domain.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected zero cart rows, got %d", count)
	}
}

func TestCartUpsertLifecycle(t *testing.T) {
	user, token := createTestUser(t, "cart-life@example.com", domain.RoleUser)
	category := createTestCategory(t, "Cart Life Category")
	product := createTestProduct(t, "Cart Life Product", 120, 10, category.ID)

	// Add captures the current price
	w, _ := doJSON(t, http.MethodPost, "/api/v1/cart",
		map[string]any{"productId": product.ID, "quantity": 2}, token)
	expectStatus(t, w, http.StatusOK)

	var line domain.CartItem
	if err := testDB.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&line).Error; err != nil {
		t.Fatalf("cart line not found: %v", err)
	}
	if line.Quantity != 2 || line.PriceAtAdd != 120 {
		t.Errorf("unexpected line: quantity %d priceAtAdd %v", line.Quantity, line.PriceAtAdd)
	}

	// Upsert replaces the quantity in place, it never adds a second row
	w, _ = doJSON(t, http.MethodPost, "/api/v1/cart",
		map[string]any{"productId": product.ID, "quantity": 5}, token)
	expectStatus(t, w, http.StatusOK)

	var lines []domain.CartItem
	testDB.Where("user_id = ?", user.ID).Find(&lines)
	if len(lines) != 1 || lines[0].Quantity != 5 || lines[0].ID != line.ID {
		t.Errorf("expected one updated line, got %+v", lines)
	}

	// Quantity 0 removes the line
	w, _ = doJSON(t, http.MethodPost, "/api/v1/cart",
		map[string]any{"productId": product.ID, "quantity": 0}, token)
	expectStatus(t, w, http.StatusOK)
	var count int64
	testDB.Model(&domain.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected the line to be removed, %d rows remain", count)
	}
}

func TestCartUnknownProduct(t *testing.T) {
	_, token := createTestUser(t, "cart-404@example.com", domain.RoleUser)

	w, env := doJSON(t, http.MethodPost, "/api/v1/cart",
		map[string]any{"productId": uuid.NewString(), "quantity": 1}, token)
	expectStatus(t, w, http.StatusNotFound)
	if env.Message != "Product not found" {
		t.Errorf("expected %q, got %q", "Product not found", env.Message)
	}
}

func TestViewCartPreloadsProducts(t *testing.T) {
	_, token := createTestUser(t, "cart-view@example.com", domain.RoleUser)
	category := createTestCategory(t, "Cart View Category")
	product := createTestProduct(t, "Cart View Product", 60, 10, category.ID)

	w, _ := doJSON(t, http.MethodPost, "/api/v1/cart",
		map[string]any{"productId": product.ID, "quantity": 3}, token)
	expectStatus(t, w, http.StatusOK)

	w, env := doJSON(t, http.MethodGet, "/api/v1/cart", nil, token)
	expectStatus(t, w, http.StatusOK)
	var lines []domain.CartItem
	decodeData(t, env, &lines)
	if len(lines) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(lines))
	}
	if lines[0].Product == nil || lines[0].Product.Name != "Cart View Product" {
		t.Errorf("expected the product preloaded, got %+v", lines[0].Product)
	}
}
