package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/dpaiva/lojinha-backend/internal/app/model"
	"github.com/dpaiva/lojinha-backend/internal/app/service"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/internal/middleware"
	"github.com/dpaiva/lojinha-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCartID pins the session cart id so tests don't depend on cookies.
func withCartID(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CartIDKey, id)
		c.Next()
	}
}

func setupCartControllerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feed := catalog.NewFeed([]model.Product{
		{ID: 1, Name: "Tênis Corrida", Price: 299.9},
		{ID: 2, Name: "Camiseta", Price: 59.9},
	})
	cartStore := storage.NewCartStore(storage.NewMemoryKV(), time.Hour)
	cartController := NewCartController(service.NewCartService(cartStore, feed))

	router := gin.New()
	group := router.Group("/api/v1/cart", withCartID("test-cart"))
	{
		group.GET("", cartController.GetCart)
		group.POST("", cartController.AddToCart)
		group.PUT("/:product_id", cartController.SetQuantity)
		group.DELETE("/:product_id", cartController.RemoveFromCart)
		group.DELETE("", cartController.ClearCart)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeSummary(t *testing.T, w *httptest.ResponseRecorder) service.CartSummary {
	t.Helper()

	var summary service.CartSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	return summary
}

func TestCartController_GetCart_Empty(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.TotalItems)
}

func TestCartController_AddToCart(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].Quantity)
	assert.Equal(t, 299.9, summary.TotalPrice)
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestCartController_AddToCart_InvalidBody(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart", gin.H{"product": "not-an-id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_SetQuantity(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/cart/1", gin.H{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 4, summary.Items[0].Quantity)
}

func TestCartController_SetQuantity_ZeroRemovesLine(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	// An explicit zero must reach the service, not be rejected by binding.
	w = doJSON(t, router, http.MethodPut, "/api/v1/cart/1", gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
}

func TestCartController_SetQuantity_MissingQuantity(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/cart/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_SetQuantity_InvalidProductID(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/cart/abc", gin.H{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_ID")
}

func TestCartController_RemoveFromCart(t *testing.T) {
	router := setupCartControllerTest(t)

	for _, id := range []uint{1, 2} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: id})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodDelete, "/api/v1/cart/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, uint(2), summary.Items[0].Product.ID)
}

func TestCartController_ClearCart(t *testing.T) {
	router := setupCartControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0.0, summary.TotalPrice)
}

func TestCartController_StatePersistsAcrossRequests(t *testing.T) {
	router := setupCartControllerTest(t)

	for i := 0; i < 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/cart", AddToCartRequest{ProductID: 1})
		require.Equal(t, http.StatusCreated, w.Code, fmt.Sprintf("add %d", i))
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decodeSummary(t, w)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Quantity)
	assert.Equal(t, 3, summary.TotalItems)
}

func TestCartController_MissingSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	feed := catalog.NewFeed(nil)
	cartStore := storage.NewCartStore(storage.NewMemoryKV(), time.Hour)
	cartController := NewCartController(service.NewCartService(cartStore, feed))

	router := gin.New()
	router.GET("/api/v1/cart", cartController.GetCart) // no session middleware

	w := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "CART_SESSION_MISSING")
}
