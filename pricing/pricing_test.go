package pricing

import (
	"testing"
	"time"

	"github.com/murali55525/erode-local-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCoupons = CouponMap{
	"DISCOUNT10": 10,
	"DISCOUNT20": 20,
}

func items(lines ...models.CartItem) []models.CartItem { return lines }

func TestQuoteOrder_FixedVector(t *testing.T) {
	// subtotal 500, express, gift wrap, 10% coupon
	q, err := QuoteOrder(items(
		models.CartItem{Price: 100, Quantity: 3},
		models.CartItem{Price: 200, Quantity: 1},
	), Options{
		DeliveryType: models.DeliveryExpress,
		GiftWrapping: true,
		CouponCode:   "DISCOUNT10",
	}, testCoupons, 0)
	require.NoError(t, err)

	assert.Equal(t, 500.0, q.Subtotal)
	assert.Equal(t, 50.0, q.DeliveryCharge)
	assert.Equal(t, 50.0, q.GiftCharge)
	assert.Equal(t, 50.0, q.Discount)
	assert.Equal(t, 550.0, q.Total)
}

func TestQuoteOrder_DefaultsToNormalDelivery(t *testing.T) {
	q, err := QuoteOrder(items(models.CartItem{Price: 100, Quantity: 1}), Options{}, testCoupons, 0)
	require.NoError(t, err)
	assert.Equal(t, 20.0, q.DeliveryCharge)
	assert.Equal(t, 120.0, q.Total)
}

func TestQuoteOrder_OrderIndependent(t *testing.T) {
	a := models.CartItem{Price: 33.5, Quantity: 2}
	b := models.CartItem{Price: 12.25, Quantity: 4}
	c := models.CartItem{Price: 99, Quantity: 1}
	opts := Options{DeliveryType: models.DeliveryExpress, CouponCode: "DISCOUNT20"}

	q1, err := QuoteOrder(items(a, b, c), opts, testCoupons, 0)
	require.NoError(t, err)
	q2, err := QuoteOrder(items(c, a, b), opts, testCoupons, 0)
	require.NoError(t, err)
	assert.Equal(t, q1, q2)
}

func TestQuoteOrder_UnknownCouponRejected(t *testing.T) {
	_, err := QuoteOrder(items(models.CartItem{Price: 100, Quantity: 1}), Options{
		CouponCode: "BOGUS",
	}, testCoupons, 0)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestQuoteOrder_Loyalty(t *testing.T) {
	t.Run("redeems whole blocks only", func(t *testing.T) {
		q, err := QuoteOrder(items(models.CartItem{Price: 100, Quantity: 5}), Options{
			RedeemPoints: 250,
		}, testCoupons, 300)
		require.NoError(t, err)
		assert.Equal(t, 200, q.PointsRedeemed)
		assert.Equal(t, 20.0, q.LoyaltyDiscount)
	})

	t.Run("balance below requested redemption", func(t *testing.T) {
		_, err := QuoteOrder(items(models.CartItem{Price: 100, Quantity: 1}), Options{
			RedeemPoints: 200,
		}, testCoupons, 150)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("less than one block", func(t *testing.T) {
		_, err := QuoteOrder(items(models.CartItem{Price: 100, Quantity: 1}), Options{
			RedeemPoints: 50,
		}, testCoupons, 500)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})
}

func TestQuoteOrder_ClampsToZero(t *testing.T) {
	// Stacked discounts larger than subtotal plus charges clamp to zero
	// instead of producing a negative payable amount.
	q, err := QuoteOrder(items(models.CartItem{Price: 5, Quantity: 1}), Options{
		CouponCode:   "DISCOUNT100",
		RedeemPoints: 1000,
	}, CouponMap{"DISCOUNT100": 100}, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.Total)
}

func TestDeliverySchedule(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, 7), EstimatedDelivery(models.DeliveryNormal, now))
	assert.Equal(t, now.AddDate(0, 0, 2), EstimatedDelivery(models.DeliveryExpress, now))
}

func TestPointsEarned(t *testing.T) {
	assert.Equal(t, 55, PointsEarned(550))
	assert.Equal(t, 0, PointsEarned(9.99))
}
