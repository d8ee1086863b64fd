// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// SessionHandler owns the cart side of session lifecycle. Credentials and
// token issuance live in the external auth provider.
type SessionHandler struct {
	carts *cart.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(carts *cart.Service) *SessionHandler {
	return &SessionHandler{carts: carts}
}

// Logout handles POST /auth/logout, applying the configured cart policy.
func (h *SessionHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.carts.HandleLogout(c.Request.Context(), *userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
