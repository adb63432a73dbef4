package models

import "time"

// GuestCart mirrors Cart for device-local sessions that have not signed in
// yet. On login its items are merged into the user's cart and it is deleted.
type GuestCart struct {
	CartID        uint            `gorm:"primaryKey" json:"cart_id"`
	GuestID       string          `gorm:"uniqueIndex" json:"guest_id"` // Enforces ONE cart per guest
	Items         []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    float64         `json:"total_price"`
	Version       uint            `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type GuestCartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index" json:"-"`
	ProductID uint      `json:"product_id"`
	Color     *string   `json:"color"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
