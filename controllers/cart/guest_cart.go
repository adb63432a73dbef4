package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/controllers/httperr"
	"github.com/murali55525/erode-local-sub000/services"
)

// Guest cart endpoints mirror the user cart surface but are keyed by the
// guest_id issued at session creation instead of a JWT identity.

func guestIDQuery(c *gin.Context) (string, bool) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return "", false
	}
	return guestID, true
}

// GET /guest/cart
func GetGuestCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDQuery(c)
		if !ok {
			return
		}
		cart, err := carts.Get(c.Request.Context(), guestID)
		if err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /guest/cart
func AddGuestCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDQuery(c)
		if !ok {
			return
		}
		var input services.AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		cart, err := carts.AddItem(c.Request.Context(), guestID, input)
		if err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// PUT /guest/cart/:item_id
func UpdateGuestCartItemQuantity(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDQuery(c)
		if !ok {
			return
		}
		itemID, ok := itemIDParam(c)
		if !ok {
			return
		}
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		cart, err := carts.UpdateQuantity(c.Request.Context(), guestID, itemID, input.Quantity)
		if err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /guest/cart/:item_id
func DeleteGuestCartItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDQuery(c)
		if !ok {
			return
		}
		itemID, ok := itemIDParam(c)
		if !ok {
			return
		}
		cart, err := carts.RemoveItem(c.Request.Context(), guestID, itemID)
		if err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /guest/cart
func ClearGuestCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDQuery(c)
		if !ok {
			return
		}
		cart, err := carts.Clear(c.Request.Context(), guestID)
		if err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
