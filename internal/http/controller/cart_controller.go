package controller

import (
	"net/http"

	"github.com/acryfusion/storefront/internal/cart"
	"github.com/gin-gonic/gin"
)

// sessionHeader carries the opaque client session id that keys a cart.
const sessionHeader = "X-Session-ID"

// CartController handles HTTP requests for per-session cart operations.
type CartController struct {
	registry *cart.Registry
}

// NewCartController creates a new CartController with the given cart registry.
func NewCartController(registry *cart.Registry) *CartController {
	return &CartController{
		registry: registry,
	}
}

// CartResponse represents the response body for a cart.
type CartResponse struct {
	Lines    []cart.Line `json:"lines"`
	Subtotal float64     `json:"subtotal"`
	Open     bool        `json:"open"`
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ProductID  string  `json:"productId" binding:"required"`
	Size       string  `json:"size"`
	OptionName string  `json:"optionName"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"imageUrl"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// LineKeyRequest identifies one cart line by its composite key.
type LineKeyRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	Size       string `json:"size"`
	OptionName string `json:"optionName"`
}

// SetQuantityRequest represents the request body for changing a line quantity.
// Quantity has no required binding: zero is a valid input that the cart
// clamps to 1, and the validator would reject it as a missing field.
type SetQuantityRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	Size       string `json:"size"`
	OptionName string `json:"optionName"`
	Quantity   int    `json:"quantity"`
}

func (cc *CartController) sessionCart(c *gin.Context) (*cart.Cart, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return nil, false
	}
	return cc.registry.Get(sessionID), true
}

func toCartResponse(sc *cart.Cart) CartResponse {
	lines := sc.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponse{
		Lines:    lines,
		Subtotal: sc.Subtotal(),
		Open:     sc.IsOpen(),
	}
}

// GetCart handles the HTTP GET request for the session's cart.
func (cc *CartController) GetCart(c *gin.Context) {
	sc, ok := cc.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCartResponse(sc))
}

// AddItem handles the HTTP POST request for adding a line to the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	sc, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.AddItem(cart.Line{
		ProductID:  req.ProductID,
		Size:       req.Size,
		OptionName: req.OptionName,
		Name:       req.Name,
		ImageURL:   req.ImageURL,
		Price:      req.Price,
		Quantity:   req.Quantity,
	})
	c.JSON(http.StatusOK, toCartResponse(sc))
}

// RemoveItem handles the HTTP DELETE request for removing a line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	sc, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	var req LineKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.RemoveItem(req.ProductID, req.Size, req.OptionName)
	c.JSON(http.StatusOK, toCartResponse(sc))
}

// SetQuantity handles the HTTP PUT request for changing a line's quantity.
func (cc *CartController) SetQuantity(c *gin.Context) {
	sc, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.SetQuantity(req.ProductID, req.Size, req.OptionName, req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(sc))
}

// ClearCart handles the HTTP POST request for emptying the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	sc, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	sc.Clear()
	c.JSON(http.StatusOK, toCartResponse(sc))
}
