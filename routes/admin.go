package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/murali55525/erode-local-sub000/controllers/admin"
	cartControllers "github.com/murali55525/erode-local-sub000/controllers/cart"
	orderControllers "github.com/murali55525/erode-local-sub000/controllers/order"
	productcontroller "github.com/murali55525/erode-local-sub000/controllers/product"
	userControllers "github.com/murali55525/erode-local-sub000/controllers/user"
	"github.com/murali55525/erode-local-sub000/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Admin & User Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(deps.DB))
		adminGroup.GET("/users", userControllers.GetAllUsers(deps.DB))
		adminGroup.GET("/stats", adminController.GetDashboardStats(deps.DB))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(deps.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(deps.DB, deps.Products))
			productAdmin.GET("", productcontroller.GetProducts(deps.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(deps.DB, deps.Products))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(deps.DB))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(deps.DB))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(deps.DB))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(deps.DB))
			categoryAdmin.GET("", productcontroller.GetAllCategories(deps.DB))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(deps.DB))
		}

		// ─────────── Coupon Management ───────────
		couponAdmin := adminGroup.Group("/coupons")
		{
			couponAdmin.GET("", adminController.GetCoupons(deps.DB))
			couponAdmin.POST("", adminController.CreateCoupon(deps.DB))
			couponAdmin.PUT("/:code", adminController.UpdateCoupon(deps.DB))
			couponAdmin.DELETE("/:code", adminController.DeleteCoupon(deps.DB))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.DB))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(deps.DB))
			orderAdmin.PUT("/:order_id/status", orderControllers.UpdateOrderStatusHandler(deps.DB))
			orderAdmin.PUT("/:order_id/payment-status", orderControllers.UpdatePaymentStatusHandler(deps.DB))
			orderAdmin.DELETE("/:order_id", orderControllers.DeleteOrderHandler(deps.DB))
		}

		// ─────────── Admin Approval Workflow ───────────
		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(deps.DB))
			adminMgmt.POST("/approve", adminController.ApproveAdmin(deps.DB))
			adminMgmt.POST("/reject", adminController.RejectAdmin(deps.DB))
		}

		bannerMgmt := adminGroup.Group("/banners")
		{
			bannerMgmt.POST("", adminController.UploadBanner(deps.DB))
			bannerMgmt.GET("", adminController.GetBanners(deps.DB))
			bannerMgmt.DELETE("/:id", adminController.DeleteBanner(deps.DB))
		}

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(deps.UserCarts))
		}
	}
}
