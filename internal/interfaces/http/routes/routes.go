// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes to their handlers. Cart routes accept both
// authenticated users and guest sessions through optional auth; the merge,
// logout and checkout endpoints require a signed-in user.
func SetupRoutes(rg *gin.RouterGroup, carts *cart.Service, products *product.Service, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(carts)
	productHandler := handlers.NewProductHandler(products)
	checkoutHandler := handlers.NewCheckoutHandler(carts)
	sessionHandler := handlers.NewSessionHandler(carts)

	productRoutes := rg.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProduct)
		productRoutes.GET("/slug/:slug", productHandler.GetProductBySlug)
	}

	cartRoutes := rg.Group("/cart")
	cartRoutes.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.GET("/count", cartHandler.GetCartCount)
		cartRoutes.GET("/contains", cartHandler.ContainsItem)
		cartRoutes.POST("/validate", cartHandler.ValidateCart)
	}

	cartMerge := rg.Group("/cart")
	cartMerge.Use(middleware.AuthMiddleware(cfg))
	{
		cartMerge.POST("/merge", cartHandler.MergeGuestCart)
	}

	checkoutRoutes := rg.Group("/checkout")
	checkoutRoutes.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		checkoutRoutes.POST("/complete", checkoutHandler.CompleteCheckout)
	}

	authRoutes := rg.Group("/auth")
	authRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutes.POST("/logout", sessionHandler.Logout)
	}
}
