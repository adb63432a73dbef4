package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/cache"
	"github.com/murali55525/erode-local-sub000/services"
	"gorm.io/gorm"
)

// Deps carries everything the route groups need. Built once in main.
type Deps struct {
	DB         *gorm.DB
	UserCarts  *services.CartService
	GuestCarts *services.CartService
	GuestRepo  services.CartRepository
	Checkout   *services.CheckoutService
	Products   cache.ProductCache
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Public catalog + guest cart
	SetupPublicRoutes(r, deps)

	// User routes (JWT-protected)
	SetupUserRoutes(r, deps)

	// Order routes
	SetupOrderRoutes(r, deps)

	// Payment gateway callbacks
	SetupPaymentRoutes(r, deps)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, deps)
}
