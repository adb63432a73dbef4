package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/murali55525/erode-local-sub000/controllers/admin"
	cartControllers "github.com/murali55525/erode-local-sub000/controllers/cart"
	productcontroller "github.com/murali55525/erode-local-sub000/controllers/product"
	reviewControllers "github.com/murali55525/erode-local-sub000/controllers/review"
)

// SetupPublicRoutes registers the unauthenticated storefront surface:
// catalog browsing, banners and the guest cart.
func SetupPublicRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", productcontroller.GetProducts(deps.DB))
	r.GET("/products/:id", productcontroller.GetProductByID(deps.DB, deps.Products))
	r.GET("/products/:id/reviews", reviewControllers.GetProductReviews(deps.DB))
	r.GET("/categories", productcontroller.GetAllCategories(deps.DB))
	r.GET("/banners", adminController.GetBanners(deps.DB))

	guestCart := r.Group("/guest/cart")
	{
		guestCart.GET("", cartControllers.GetGuestCart(deps.GuestCarts))
		guestCart.POST("", cartControllers.AddGuestCartItem(deps.GuestCarts))
		guestCart.PUT("/:item_id", cartControllers.UpdateGuestCartItemQuantity(deps.GuestCarts))
		guestCart.DELETE("/:item_id", cartControllers.DeleteGuestCartItem(deps.GuestCarts))
		guestCart.DELETE("", cartControllers.ClearGuestCart(deps.GuestCarts))
	}
}
