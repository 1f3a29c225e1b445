package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acryfusion/storefront/internal/cart"
	"github.com/acryfusion/storefront/internal/http/controller"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cartCtr := controller.NewCartController(cart.NewRegistry())

	router := gin.New()
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", cartCtr.GetCart)
		cartGroup.POST("/items", cartCtr.AddItem)
		cartGroup.DELETE("/items", cartCtr.RemoveItem)
		cartGroup.PUT("/items/quantity", cartCtr.SetQuantity)
		cartGroup.POST("/clear", cartCtr.ClearCart)
	}
	return router
}

func cartDo(t *testing.T, router *gin.Engine, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) controller.CartResponse {
	t.Helper()
	var resp controller.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetCartEndpoint(t *testing.T) {
	router := newCartRouter(t)

	t.Run("empty cart", func(t *testing.T) {
		w := cartDo(t, router, http.MethodGet, "/cart", "session-a", "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeCart(t, w)
		assert.Empty(t, resp.Lines)
		assert.Zero(t, resp.Subtotal)
	})

	t.Run("missing session header", func(t *testing.T) {
		w := cartDo(t, router, http.MethodGet, "/cart", "", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "X-Session-ID")
	})
}

func TestAddItemEndpoint(t *testing.T) {
	router := newCartRouter(t)
	line := `{"productId":"000001","size":"S","optionName":"Red","name":"Laser Kit","price":10.5,"quantity":1}`

	w := cartDo(t, router, http.MethodPost, "/cart/items", "session-a", line)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same key again with quantity 2 merges into one line of 3.
	line2 := `{"productId":"000001","size":"S","optionName":"Red","name":"Laser Kit","price":10.5,"quantity":2}`
	w = cartDo(t, router, http.MethodPost, "/cart/items", "session-a", line2)

	resp := decodeCart(t, w)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 3, resp.Lines[0].Quantity)
	assert.InDelta(t, 31.5, resp.Subtotal, 0.0001)
}

func TestCartSessionIsolation(t *testing.T) {
	router := newCartRouter(t)
	line := `{"productId":"000001","size":"S","optionName":"Red","price":10.5}`

	cartDo(t, router, http.MethodPost, "/cart/items", "session-a", line)

	w := cartDo(t, router, http.MethodGet, "/cart", "session-b", "")
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Lines)
}

func TestRemoveItemEndpoint(t *testing.T) {
	router := newCartRouter(t)
	line := `{"productId":"000001","size":"S","optionName":"Red","price":10.5}`
	cartDo(t, router, http.MethodPost, "/cart/items", "session-a", line)

	w := cartDo(t, router, http.MethodDelete, "/cart/items", "session-a",
		`{"productId":"000001","size":"S","optionName":"Red"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Lines)
}

func TestSetQuantityEndpoint(t *testing.T) {
	router := newCartRouter(t)
	line := `{"productId":"000001","size":"S","optionName":"Red","price":10.5,"quantity":2}`
	cartDo(t, router, http.MethodPost, "/cart/items", "session-a", line)

	t.Run("sets the quantity", func(t *testing.T) {
		w := cartDo(t, router, http.MethodPut, "/cart/items/quantity", "session-a",
			`{"productId":"000001","size":"S","optionName":"Red","quantity":7}`)

		resp := decodeCart(t, w)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 7, resp.Lines[0].Quantity)
	})

	t.Run("clamps zero to one", func(t *testing.T) {
		w := cartDo(t, router, http.MethodPut, "/cart/items/quantity", "session-a",
			`{"productId":"000001","size":"S","optionName":"Red","quantity":0}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeCart(t, w)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 1, resp.Lines[0].Quantity)
	})

	t.Run("clamps negative to one", func(t *testing.T) {
		w := cartDo(t, router, http.MethodPut, "/cart/items/quantity", "session-a",
			`{"productId":"000001","size":"S","optionName":"Red","quantity":-2}`)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeCart(t, w)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 1, resp.Lines[0].Quantity)
	})
}

func TestClearCartEndpoint(t *testing.T) {
	router := newCartRouter(t)
	cartDo(t, router, http.MethodPost, "/cart/items", "session-a",
		`{"productId":"000001","size":"S","optionName":"Red","price":10.5}`)

	w := cartDo(t, router, http.MethodPost, "/cart/clear", "session-a", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Lines)
	assert.Zero(t, resp.Subtotal)
}
