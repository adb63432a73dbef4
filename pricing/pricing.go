package pricing

import (
	"errors"
	"time"

	"github.com/murali55525/erode-local-sub000/models"
)

var (
	ErrInvalidCoupon      = errors.New("invalid coupon code")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)

// Flat charge schedule. Delivery is tier-based, not weight- or
// distance-based.
const (
	NormalDeliveryCharge  = 20.0
	ExpressDeliveryCharge = 50.0
	GiftWrapCharge        = 50.0

	NormalDeliveryDays  = 7
	ExpressDeliveryDays = 2

	// Loyalty points redeem in whole blocks of 100, worth 10 currency
	// units each. No partial blocks.
	RedeemBlock      = 100
	DiscountPerBlock = 10.0

	// One point earned per 10 currency units of the final amount.
	EarnRate = 10.0
)

// CouponSource resolves a coupon code to its discount percentage.
type CouponSource interface {
	Percent(code string) (int, bool)
}

// CouponMap is a CouponSource backed by a fixed table.
type CouponMap map[string]int

func (m CouponMap) Percent(code string) (int, bool) {
	p, ok := m[code]
	return p, ok
}

type Options struct {
	DeliveryType models.DeliveryType
	GiftWrapping bool
	CouponCode   string
	RedeemPoints int // loyalty points the buyer wants to redeem
}

// Quote is the deterministic breakdown of a checkout total. It is computed
// once at order creation and frozen into the order.
type Quote struct {
	Subtotal        float64 `json:"subtotal"`
	DeliveryCharge  float64 `json:"delivery_charge"`
	GiftCharge      float64 `json:"gift_charge"`
	CouponDiscount  float64 `json:"coupon_discount"`
	LoyaltyDiscount float64 `json:"loyalty_discount"`
	Discount        float64 `json:"discount"`
	Total           float64 `json:"total"`
	PointsRedeemed  int     `json:"points_redeemed"`
}

// DeliveryCharge returns the flat charge for a delivery tier.
func DeliveryCharge(t models.DeliveryType) float64 {
	if t == models.DeliveryExpress {
		return ExpressDeliveryCharge
	}
	return NormalDeliveryCharge
}

// EstimatedDelivery returns the promised delivery date for a tier.
func EstimatedDelivery(t models.DeliveryType, from time.Time) time.Time {
	days := NormalDeliveryDays
	if t == models.DeliveryExpress {
		days = ExpressDeliveryDays
	}
	return from.AddDate(0, 0, days)
}

// QuoteOrder computes the payable amount for the selected cart lines.
// The result is order-independent over the item list. A discount larger
// than subtotal plus charges clamps the total to zero rather than going
// negative.
func QuoteOrder(items []models.CartItem, opts Options, coupons CouponSource, pointsBalance int) (Quote, error) {
	q := Quote{
		DeliveryCharge: DeliveryCharge(opts.DeliveryType),
	}
	for _, it := range items {
		q.Subtotal += it.Price * float64(it.Quantity)
	}
	if opts.GiftWrapping {
		q.GiftCharge = GiftWrapCharge
	}

	if opts.CouponCode != "" {
		percent, ok := coupons.Percent(opts.CouponCode)
		if !ok {
			return Quote{}, ErrInvalidCoupon
		}
		q.CouponDiscount = q.Subtotal * float64(percent) / 100.0
	}

	if opts.RedeemPoints > 0 {
		blocks := opts.RedeemPoints / RedeemBlock
		if blocks == 0 || opts.RedeemPoints > pointsBalance {
			return Quote{}, ErrInsufficientPoints
		}
		q.PointsRedeemed = blocks * RedeemBlock
		q.LoyaltyDiscount = float64(blocks) * DiscountPerBlock
	}

	q.Discount = q.CouponDiscount + q.LoyaltyDiscount
	q.Total = q.Subtotal + q.DeliveryCharge + q.GiftCharge - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}
	return q, nil
}

// PointsEarned returns the loyalty points awarded for a paid amount.
func PointsEarned(total float64) int {
	return int(total / EarnRate)
}
