package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/cache"
	"github.com/murali55525/erode-local-sub000/controllers/httperr"
	"github.com/murali55525/erode-local-sub000/models"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Concurrent misses for the same product collapse into one database load.
var productLoads singleflight.Group

// GetProductByID returns a single product through the read-through cache.
// URL param: /products/:id
func GetProductByID(db *gorm.DB, products cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		productID := uint(id)
		ctx := c.Request.Context()

		if p, err := products.Get(ctx, productID); err == nil {
			c.JSON(http.StatusOK, p)
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			// unhealthy cache; fall through to the database
		}

		v, err, _ := productLoads.Do(fmt.Sprintf("product:%d", productID), func() (interface{}, error) {
			var product models.Product
			if err := db.Preload("Categories").First(&product, productID).Error; err != nil {
				return nil, err
			}
			_ = products.Set(ctx, &product)
			return &product, nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, v.(*models.Product))
	}
}
