package models

import "time"

type OrderStatus string
type PaymentStatus string
type DeliveryType string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting confirmation
	OrderStatusProcessing  OrderStatus = "processing"    // Being prepared
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // Customer returned the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer

	// Delivery tiers; flat charges, not weight- or distance-based
	DeliveryNormal  DeliveryType = "normal"  // 7 days
	DeliveryExpress DeliveryType = "express" // 2 days
)

// ShippingInfo is frozen into the order; validated non-empty before creation.
type ShippingInfo struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	OrderRef string       `gorm:"uniqueIndex" json:"order_ref"`
	UserID   string       `gorm:"not null;index" json:"user_id"`
	Items    []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Shipping ShippingInfo `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`

	DeliveryType DeliveryType `gorm:"type:VARCHAR(20);default:'normal'" json:"delivery_type"`
	GiftWrapping bool         `json:"gift_wrapping"`
	GiftMessage  string       `json:"gift_message"`
	CouponCode   string       `json:"coupon_code"`

	// Amounts are computed once at creation and never recomputed.
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"delivery_charge"`
	GiftCharge     float64 `json:"gift_charge"`
	Discount       float64 `json:"discount"`
	TotalAmount    float64 `json:"total_amount"`

	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod     string        `json:"payment_method"` // "cod" or "card"
	PaymentRef        string        `json:"payment_ref,omitempty"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	CreatedAt         time.Time     `json:"created_at"`
}

// OrderItem is a deep copy of a cart line at purchase time; it never
// references live cart or catalog state.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"product_id"`
	Color     *string `json:"color"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
