// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler owns the cart side of checkout. Order placement and payment
// live in the external order system; this handler validates the cart before
// handoff and clears it once the order is confirmed.
type CheckoutHandler struct {
	carts *cart.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(carts *cart.Service) *CheckoutHandler {
	return &CheckoutHandler{carts: carts}
}

// CompleteCheckout handles POST /checkout/complete. The cart must be
// non-empty and pass validation; on success it is emptied.
func (h *CheckoutHandler) CompleteCheckout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil && userID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No cart session"})
		return
	}

	view, issues, err := h.carts.ValidateCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate cart"})
		return
	}
	if len(view.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
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

	if err := h.carts.ClearCart(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout completed, cart cleared",
		"data":    view,
	})
}
