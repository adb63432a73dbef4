package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/murali55525/erode-local-sub000/controllers/cart"
	paymentControllers "github.com/murali55525/erode-local-sub000/controllers/payment"
	reviewControllers "github.com/murali55525/erode-local-sub000/controllers/review"
	userControllers "github.com/murali55525/erode-local-sub000/controllers/user"
	wishlistControllers "github.com/murali55525/erode-local-sub000/controllers/wishlist"
	"github.com/murali55525/erode-local-sub000/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/me", userControllers.GetUser(deps.DB))
		userGroup.PUT("/me", userControllers.UpdateUser(deps.DB))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(deps.UserCarts))
			cartGroup.POST("", cartControllers.AddCartItem(deps.UserCarts))
			cartGroup.PUT("/:item_id", cartControllers.UpdateCartItemQuantity(deps.UserCarts))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(deps.UserCarts))
			cartGroup.DELETE("", cartControllers.ClearUserCart(deps.UserCarts))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(deps.DB))
			wishlistGroup.POST("", wishlistControllers.AddToWishlist(deps.DB))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.RemoveFromWishlist(deps.DB))
		}

		// ──────────────── Reviews ────────────────
		userGroup.POST("/products/:id/reviews", reviewControllers.CreateReview(deps.DB))
		userGroup.DELETE("/products/:id/reviews", reviewControllers.DeleteOwnReview(deps.DB))

		// ──────────────── Payment verification ────────────────
		userGroup.GET("/payment/verify", paymentControllers.VerifyPaymentHandler(deps.Checkout))
	}
}
