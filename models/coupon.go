package models

// Coupon maps a code to a percentage taken off the order subtotal.
type Coupon struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Code    string `gorm:"uniqueIndex;not null" json:"code"`
	Percent int    `gorm:"not null" json:"percent"`
	Active  bool   `gorm:"default:true" json:"active"`
}
