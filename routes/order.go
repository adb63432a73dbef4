package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/murali55525/erode-local-sub000/controllers/order"
	"github.com/murali55525/erode-local-sub000/middleware"
)

// SetupOrderRoutes registers the JWT-protected order endpoints.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/user/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(deps.Checkout))
		orders.GET("", orderControllers.GetUserOrdersHandler(deps.DB))
		orders.GET("/:order_id", orderControllers.GetOrderByIDHandler(deps.DB))
	}
}
