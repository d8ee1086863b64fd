// internal/interfaces/http/handlers/cart_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
)

type fakeCatalog map[uint]*product.Product

func (f fakeCatalog) FindProduct(_ context.Context, id uint) (*product.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := fakeCatalog{
		1: {ID: 1, Name: "Classic Cotton Tee", Price: 10000, SalePrice: 8000, Stock: 50, TrackStock: true, IsActive: true},
		2: {ID: 2, Name: "Stoneware Mug", Price: 1600, Stock: 5, TrackStock: true, IsActive: true},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := cart.NewService(
		cart.NewMemoryRepository(),
		cart.NewMemoryRepository(),
		catalog,
		notify.NewLogNotifier(log),
		&config.Config{},
		log,
	)
	h := NewCartHandler(svc)

	router := gin.New()
	group := router.Group("/api/v1")
	{
		group.GET("/cart", h.GetCart)
		group.POST("/cart/items", h.AddToCart)
		group.PUT("/cart/items/:id", h.UpdateCartItem)
		group.DELETE("/cart/items/:id", h.RemoveFromCart)
		group.DELETE("/cart", h.ClearCart)
		group.GET("/cart/count", h.GetCartCount)
		group.GET("/cart/contains", h.ContainsItem)
		group.POST("/cart/validate", h.ValidateCart)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func sessionCookie(id string) []*http.Cookie {
	return []*http.Cookie{{Name: sessionCookieName, Value: id}}
}

func TestGetCartMintsSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var minted bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName && ck.Value != "" {
			minted = true
		}
	}
	assert.True(t, minted, "a guest without a session cookie must get one")
}

func TestAddToCartMergesQuantities(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")
	body := map[string]interface{}{"product_id": 1, "quantity": 2, "color": "blue", "size": "M"}

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", body, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	body["quantity"] = 3
	w = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", body, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeView(t, w)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, float64(5), line["quantity"])
	// sale price captured at add time
	assert.Equal(t, float64(8000), line["unit_price"])
	assert.Equal(t, float64(40000), line["line_total"])
}

func TestAddToCartRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	// binding rejects a missing quantity
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"product_id": 1}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown product
	w = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"product_id": 99, "quantity": 1}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemQuantityFloor(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 1, "quantity": 2, "color": "blue", "size": "M"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// below the floor: the line survives unchanged
	w = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/1?color=blue&size=M",
		map[string]interface{}{"quantity": -1}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeView(t, w)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])

	w = doJSON(t, router, http.MethodPut, "/api/v1/cart/items/1?color=blue&size=M",
		map[string]interface{}{"quantity": 7}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeView(t, w)
	items = data["items"].([]interface{})
	assert.Equal(t, float64(7), items[0].(map[string]interface{})["quantity"])
}

func TestUpdateUnknownKeyIsSoftNoop(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	w := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/42",
		map[string]interface{}{"quantity": 3}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeView(t, w)
	assert.Empty(t, data["items"])
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 2, "quantity": 1}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// variants default, so no color/size query is needed
	w = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/2", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeView(t, w)["items"])

	w = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/2", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartCountAndContains(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 1, "quantity": 2, "color": "blue", "size": "M"}, cookies)
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 2, "quantity": 1}, cookies)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart/count", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeView(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart/contains?product_id=1&color=blue&size=M", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeView(t, w)["in_cart"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart/contains?product_id=1&color=red&size=M", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeView(t, w)["in_cart"])
}

func TestClearCart(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 1, "quantity": 2}, cookies)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/cart", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeView(t, w)["items"])
}

func TestValidateCartReportsIssues(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	// mug stock is 5; asking for 9 must surface a stock issue at validation
	doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 2, "quantity": 9}, cookies)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/validate", nil, cookies)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Issues []cart.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, uint(2), resp.Issues[0].ProductID)
}

func TestValidateCleanCart(t *testing.T) {
	router := newTestRouter(t)
	cookies := sessionCookie("guest-1")

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 2, "quantity": 2}, cookies)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/validate", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestSessionsAreIsolated(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product_id": 1, "quantity": 1}, sessionCookie("guest-a"))

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil, sessionCookie("guest-b"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeView(t, w)["items"])
}
