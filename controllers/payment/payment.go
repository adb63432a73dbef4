package paymentControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/controllers/httperr"
	"github.com/murali55525/erode-local-sub000/services"
)

// PaymentCallbackHandler is hit by the gateway after the hosted payment
// page completes. The reference is re-verified with the gateway before the
// order is marked paid; the callback body alone is never trusted.
// POST /payment/callback
func PaymentCallbackHandler(checkout *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentRef := c.PostForm("tran_ref")
		if paymentRef == "" {
			paymentRef = c.Query("payment_ref")
		}
		if paymentRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment reference is required"})
			return
		}

		order, err := checkout.ConfirmPayment(c.Request.Context(), paymentRef)
		if err != nil {
			log.Printf("❌ Payment confirmation failed for ref %s: %v", paymentRef, err)
			httperr.Write(c, err)
			return
		}

		log.Printf("✅ Payment confirmed for order %s", order.OrderRef)
		c.JSON(http.StatusOK, gin.H{
			"message":        "Payment confirmed",
			"order_ref":      order.OrderRef,
			"payment_status": order.PaymentStatus,
		})
	}
}

// VerifyPaymentHandler lets the frontend poll a payment reference after
// returning from the gateway. GET /user/payment/verify?payment_ref=...
func VerifyPaymentHandler(checkout *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentRef := c.Query("payment_ref")
		if paymentRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_ref is required"})
			return
		}
		order, err := checkout.ConfirmPayment(c.Request.Context(), paymentRef)
		if err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order_ref":      order.OrderRef,
			"payment_status": order.PaymentStatus,
			"total_amount":   order.TotalAmount,
		})
	}
}
