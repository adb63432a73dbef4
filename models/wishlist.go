package models

import "time"

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"index:idx_wishlist_user_product,unique" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	AddedAt   time.Time `json:"added_at"`
}
