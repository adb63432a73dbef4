package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/murali55525/erode-local-sub000/controllers/payment"
	"github.com/murali55525/erode-local-sub000/middleware"
)

// SetupPaymentRoutes registers the gateway callback endpoint. The webhook
// middleware handles sandbox/prod signature verification.
func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	payment := r.Group("/payment")
	{
		payment.POST("/callback",
			middleware.PaymentWebhookAuth(),
			paymentControllers.PaymentCallbackHandler(deps.Checkout),
		)
	}
}
