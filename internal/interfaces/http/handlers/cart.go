// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

const sessionCookieName = "session_id"

// CartHandler handles cart endpoints for signed-in users and guest sessions.
type CartHandler struct {
	carts *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	view, err := h.carts.GetCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    view,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.carts.AddToCart(c.Request.Context(), userID, sessionID, &req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, cart.ErrInvalidRequest) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    view,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	key, ok := h.itemKeyFromRequest(c)
	if !ok {
		return
	}

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	view, err := h.carts.UpdateQuantity(c.Request.Context(), userID, sessionID, key, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    view,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	key, ok := h.itemKeyFromRequest(c)
	if !ok {
		return
	}

	view, err := h.carts.RemoveFromCart(c.Request.Context(), userID, sessionID, key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    view,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	if err := h.carts.ClearCart(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}

// GetCartCount handles GET /cart/count - the cart icon badge
func (h *CartHandler) GetCartCount(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	count, err := h.carts.ItemCount(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}

// ContainsItem handles GET /cart/contains - drives "already in cart" UI state
func (h *CartHandler) ContainsItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	productID, err := strconv.ParseUint(c.Query("product_id"), 10, 32)
	if err != nil || productID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	inCart, err := h.carts.Contains(c.Request.Context(), userID, sessionID,
		uint(productID), c.Query("color"), c.Query("size"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart checked successfully",
		"data":    gin.H{"in_cart": inCart},
	})
}

// MergeGuestCart handles POST /cart/merge - called after login
func (h *CartHandler) MergeGuestCart(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sessionID := h.getOrCreateSessionID(c)

	if err := h.carts.MergeGuestCart(c.Request.Context(), *userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
		return
	}

	view, err := h.carts.GetCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve merged cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Guest cart merged successfully",
		"data":    view,
	})
}

// ValidateCart handles POST /cart/validate - pre-checkout drift report
func (h *CartHandler) ValidateCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	view, issues, err := h.carts.ValidateCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate cart"})
		return
	}

	if len(issues) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cart validation failed",
			"issues": issues,
			"data":   view,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart validation successful",
		"data":    view,
	})
}

// itemKeyFromRequest builds the composite item key from the path product id
// and the color/size query parameters.
func (h *CartHandler) itemKeyFromRequest(c *gin.Context) (cart.ItemKey, bool) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || productID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return cart.ItemKey{}, false
	}
	return cart.NewItemKey(uint(productID), c.Query("color"), c.Query("size")), true
}

// getOrCreateSessionID gets the guest session id from the cookie or mints one.
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie(sessionCookieName, sessionID, 86400*7, "/", "", false, true)
	}
	return sessionID
}
