package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	Price        float64        `gorm:"not null" json:"price"` // current sale price
	RegularPrice float64        `json:"regular_price"`
	ImageURL     string         `gorm:"not null" json:"image_url"`
	Colors       pq.StringArray `gorm:"type:text[]" json:"colors"` // available variant colors
	Categories   []Category     `gorm:"many2many:product_categories;" json:"categories"`
	Stock        int            `json:"stock"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
