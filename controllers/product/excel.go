package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportProductsToExcel streams the catalog as an xlsx workbook.
// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Name", "Description", "Price", "RegularPrice", "Stock", "Colors", "ImageURL"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(int(p.ID))
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.RegularPrice)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(strings.Join(p.Colors, ","))
			row.AddCell().SetValue(p.ImageURL)
		}

		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}

// ImportProductsFromExcel upserts products from an uploaded workbook in
// the export format. Rows with an ID update; rows without create.
// POST /admin/products/import-excel
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}
		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		created, updated, skipped := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			name := get(1)
			priceStr := get(3)
			if name == "" || priceStr == "" {
				skipped++
				continue
			}
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				skipped++
				continue
			}

			product := models.Product{
				Name:        name,
				Description: get(2),
				Price:       price,
				ImageURL:    get(7),
			}
			if rp, err := strconv.ParseFloat(get(4), 64); err == nil {
				product.RegularPrice = rp
			}
			if st, err := strconv.Atoi(get(5)); err == nil {
				product.Stock = st
			}
			for _, col := range strings.Split(get(6), ",") {
				if col = strings.TrimSpace(col); col != "" {
					product.Colors = append(product.Colors, col)
				}
			}

			if idStr := get(0); idStr != "" {
				id, err := strconv.ParseUint(idStr, 10, 64)
				if err != nil {
					skipped++
					continue
				}
				product.ID = uint(id)
				if err := db.Save(&product).Error; err != nil {
					skipped++
					continue
				}
				updated++
			} else {
				if err := db.Create(&product).Error; err != nil {
					skipped++
					continue
				}
				created++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Import complete: %d created, %d updated, %d skipped", created, updated, skipped),
			"created": created,
			"updated": updated,
			"skipped": skipped,
		})
	}
}
