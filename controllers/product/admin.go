package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/cache"
	"github.com/murali55525/erode-local-sub000/controllers/httperr"
	"github.com/murali55525/erode-local-sub000/models"
	"gorm.io/gorm"
)

// CreateProduct creates a product from a multipart form: fields plus an
// optional image upload. POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		product := models.Product{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
		}
		if rp := c.PostForm("regular_price"); rp != "" {
			v, err := strconv.ParseFloat(rp, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid regular_price"})
				return
			}
			product.RegularPrice = v
		}
		if st := c.PostForm("stock"); st != "" {
			v, err := strconv.Atoi(st)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			product.Stock = v
		}
		if colors := c.PostForm("colors"); colors != "" {
			for _, col := range strings.Split(colors, ",") {
				if col = strings.TrimSpace(col); col != "" {
					product.Colors = append(product.Colors, col)
				}
			}
		}

		categories, err := parseCategoryIDs(db, c.PostForm("category_ids"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		product.Categories = categories

		if url, ok := saveUploadedImage(c, "image"); ok {
			product.ImageURL = url
		}

		if err := db.Create(&product).Error; err != nil {
			httperr.Write(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct applies a partial multipart update and invalidates the
// cached copy. PUT /admin/products/:id
func UpdateProduct(db *gorm.DB, products cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			httperr.Write(c, err)
			return
		}

		updates := map[string]interface{}{}
		if v := c.PostForm("name"); v != "" {
			updates["name"] = v
		}
		if v := c.PostForm("description"); v != "" {
			updates["description"] = v
		}
		if v := c.PostForm("price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			updates["price"] = price
		}
		if v := c.PostForm("stock"); v != "" {
			stock, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			updates["stock"] = stock
		}
		if url, ok := saveUploadedImage(c, "image"); ok {
			updates["image_url"] = url
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				httperr.Write(c, err)
				return
			}
		}

		if ids := c.PostForm("category_ids"); ids != "" {
			categories, err := parseCategoryIDs(db, ids)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
				httperr.Write(c, err)
				return
			}
		}

		_ = products.Invalidate(c.Request.Context(), product.ID)
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct soft-deletes a product and drops it from the cache.
// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB, products cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		res := db.Delete(&models.Product{}, uint(id))
		if res.Error != nil {
			httperr.Write(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		_ = products.Invalidate(c.Request.Context(), uint(id))
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

func parseCategoryIDs(db *gorm.DB, raw string) ([]models.Category, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q", tok)
		}
		ids = append(ids, uint(id))
	}
	var categories []models.Category
	if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to look up categories")
	}
	if len(categories) != len(ids) {
		return nil, fmt.Errorf("one or more categories do not exist")
	}
	return categories, nil
}

// saveUploadedImage stores the uploaded file under the uploads directory
// and returns its public URL. Missing file is not an error; the caller
// just keeps the existing image.
func saveUploadedImage(c *gin.Context, field string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", false
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", false
	}
	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, filename)); err != nil {
		return "", false
	}
	return "/uploads/" + filename, true
}
