package models

import "time"

type Cart struct {
	CartID        uint       `gorm:"primaryKey" json:"cart_id"`
	UserID        string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    float64    `json:"total_price"`
	Version       uint       `json:"-"` // bumped on every save; stale writers lose
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index" json:"-"`
	ProductID uint      `json:"product_id"`
	Color     *string   `json:"color"` // optional variant; nil matches only nil
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Price     float64   `json:"price"` // snapshot taken at add time, never re-read from catalog
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// SameLine reports whether the item is the same cart line as the given
// (product, color) pair. Two lines are merged only when both match.
func (i CartItem) SameLine(productID uint, color *string) bool {
	if i.ProductID != productID {
		return false
	}
	if i.Color == nil || color == nil {
		return i.Color == nil && color == nil
	}
	return *i.Color == *color
}

// RecomputeTotals derives cart totals from the item list. Totals are never
// written directly; every mutation goes through this.
func RecomputeTotals(items []CartItem) (quantity int, price float64) {
	for _, it := range items {
		quantity += it.Quantity
		price += it.Price * float64(it.Quantity)
	}
	return quantity, price
}

// Recalculate refreshes the derived totals from the current items.
func (c *Cart) Recalculate() {
	c.TotalQuantity, c.TotalPrice = RecomputeTotals(c.Items)
}

// FindItem returns the index of the line matching (productID, color), or -1.
func (c *Cart) FindItem(productID uint, color *string) int {
	for i, it := range c.Items {
		if it.SameLine(productID, color) {
			return i
		}
	}
	return -1
}
