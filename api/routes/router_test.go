package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/threadline/storefront/internal/cart"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/orders"
	"github.com/threadline/storefront/internal/state"
	"github.com/threadline/storefront/internal/wishlist"
	"github.com/threadline/storefront/pkg/config"
	"github.com/threadline/storefront/pkg/events"
)

type memoryRepo struct {
	data map[string][]byte
}

func (m *memoryRepo) Get(ctx context.Context, namespace string) ([]byte, error) {
	return m.data[namespace], nil
}

func (m *memoryRepo) Put(ctx context.Context, namespace string, payload []byte) error {
	m.data[namespace] = payload
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := state.NewStore(&memoryRepo{data: make(map[string][]byte)}, events.NewBroker(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catalogSvc := catalog.NewService()
	cartSvc, err := cart.NewService(store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wishlistSvc, err := wishlist.NewService(store, cartSvc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewRouter(Deps{
		Config:   &config.Config{App: config.AppConfig{Env: "test"}},
		Broker:   store.Broker(),
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Wishlist: wishlistSvc,
		Orders:   orders.NewService(),
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var envelope map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, envelope
}

func dataOf(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %v", envelope)
	}
	return data
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w, envelope := doJSON(t, router, http.MethodGet, "/health/live", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["status"] != "live" {
		t.Fatalf("unexpected body: %v", envelope)
	}
	if w.Header().Get("X-Threadline-Env") != "test" {
		t.Fatalf("missing env header")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w, envelope := doJSON(t, router, http.MethodGet, "/api/v1/catalog?category=Men", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if products, ok := envelope["data"].([]any); !ok || len(products) != 2 {
		t.Fatalf("expected 2 men's products, got %v", envelope["data"])
	}

	w, envelope = doJSON(t, router, http.MethodGet, "/api/v1/catalog/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["name"] != "Classic T-Shirt" {
		t.Fatalf("unexpected product: %v", envelope)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/catalog/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/catalog/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestCartFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart", `{"productId":1,"quantity":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", w.Code, envelope)
	}
	if dataOf(t, envelope)["count"] != float64(2) {
		t.Fatalf("unexpected count: %v", envelope)
	}

	w, envelope = doJSON(t, router, http.MethodPost, "/api/v1/cart", `{"productId":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if dataOf(t, envelope)["count"] != float64(3) {
		t.Fatalf("missing quantity must default to 1: %v", envelope)
	}

	w, envelope = doJSON(t, router, http.MethodGet, "/api/v1/cart/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["subtotal"] != "89.97" {
		t.Fatalf("unexpected subtotal: %v", envelope)
	}
	if dataOf(t, envelope)["grandTotal"] != "107.1676" {
		t.Fatalf("unexpected grand total: %v", envelope)
	}

	w, envelope = doJSON(t, router, http.MethodPatch, "/api/v1/cart/1", `{"delta":-5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["count"] != float64(2) {
		t.Fatalf("quantity must floor at 1: %v", envelope)
	}

	w, envelope = doJSON(t, router, http.MethodDelete, "/api/v1/cart/2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["count"] != float64(1) {
		t.Fatalf("unexpected count after removal: %v", envelope)
	}

	w, envelope = doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["status"] != "confirmed" {
		t.Fatalf("unexpected checkout response: %v", envelope)
	}

	_, envelope = doJSON(t, router, http.MethodGet, "/api/v1/cart", "")
	if dataOf(t, envelope)["count"] != float64(0) {
		t.Fatalf("checkout must clear the cart: %v", envelope)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart", `{"productId":999}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCartAddRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart", `{"productId":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWishlistFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w, envelope := doJSON(t, router, http.MethodPost, "/api/v1/wishlist/toggle", `{"productId":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["added"] != true {
		t.Fatalf("expected toggle to add: %v", envelope)
	}

	w, envelope = doJSON(t, router, http.MethodPost, "/api/v1/wishlist/3/move-to-cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if items, ok := dataOf(t, envelope)["items"].([]any); !ok || len(items) != 0 {
		t.Fatalf("moved item must leave the wishlist: %v", envelope)
	}

	_, envelope = doJSON(t, router, http.MethodGet, "/api/v1/cart", "")
	if dataOf(t, envelope)["count"] != float64(1) {
		t.Fatalf("moved item must land in the cart: %v", envelope)
	}
}

func TestOrdersEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w, envelope := doJSON(t, router, http.MethodGet, "/api/v1/orders", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if list, ok := envelope["data"].([]any); !ok || len(list) != 3 {
		t.Fatalf("expected 3 orders, got %v", envelope["data"])
	}

	w, envelope = doJSON(t, router, http.MethodGet, "/api/v1/orders/ORD001", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if dataOf(t, envelope)["total"] != "185.07" {
		t.Fatalf("unexpected order total: %v", envelope)
	}

	w, _ = doJSON(t, router, http.MethodGet, "/api/v1/orders/ORD999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
