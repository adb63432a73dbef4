package adminController

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/models"
	"gorm.io/gorm"
)

type CouponInput struct {
	Code    string `json:"code" binding:"required"`
	Percent int    `json:"percent" binding:"required"`
	Active  *bool  `json:"active"`
}

// GET /admin/coupons
func GetCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("code asc").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// POST /admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Percent < 1 || input.Percent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percent must be between 1 and 100"})
			return
		}

		coupon := models.Coupon{
			Code:    strings.ToUpper(strings.TrimSpace(input.Code)),
			Percent: input.Percent,
			Active:  true,
		}
		if input.Active != nil {
			coupon.Active = *input.Active
		}
		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

// PUT /admin/coupons/:code
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))

		var coupon models.Coupon
		if err := db.Where("code = ?", code).First(&coupon).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}

		var input struct {
			Percent *int  `json:"percent"`
			Active  *bool `json:"active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Percent != nil {
			if *input.Percent < 1 || *input.Percent > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Percent must be between 1 and 100"})
				return
			}
			coupon.Percent = *input.Percent
		}
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}

// DELETE /admin/coupons/:code
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(c.Param("code"))
		res := db.Where("code = ?", code).Delete(&models.Coupon{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}
