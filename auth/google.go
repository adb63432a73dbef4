package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/models"
	"github.com/murali55525/erode-local-sub000/services"
	"gorm.io/gorm"
)

// GoogleUserLoginHandler signs a user in with a Firebase-verified Google ID
// token, creating the account and its cart on first login. If the request
// carries a guest_id the guest cart is folded into the user cart.
// POST /auth/google
func GoogleUserLoginHandler(db *gorm.DB, carts *services.CartService, guests services.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken"`
			GuestID string `json:"guest_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		ctx := c.Request.Context()

		token, err := verifyFirebaseToken(ctx, req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
			return
		}
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)
		firebaseUserID := token.UID

		var user models.User
		err = db.Preload("Cart.Items").Where("id = ?", firebaseUserID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				ID:       firebaseUserID,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
				Cart:     models.Cart{UserID: firebaseUserID},
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err == nil {
			db.Model(&user).Updates(models.User{Name: name, Picture: picture})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		mergeStatus := "no-guest-cart"
		if req.GuestID != "" {
			if _, err := carts.MergeFrom(ctx, guests, req.GuestID, user.ID); err != nil {
				mergeStatus = "merge-failed"
			} else {
				mergeStatus = "merged"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"merge_status": mergeStatus,
			"user":         user,
			"token":        issueJWT(email, "user", firebaseUserID, name, picture),
		})
	}
}
