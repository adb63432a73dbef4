package services

import (
	"context"
	"errors"
	"testing"

	"github.com/murali55525/erode-local-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCheckoutStore struct {
	cart    *models.Cart
	user    *models.User
	coupons map[string]int

	commitErr error
	committed []models.Order
}

func (m *mockCheckoutStore) LoadCart(context.Context, string) (*models.Cart, error) {
	if m.cart == nil {
		return nil, ErrNotFound
	}
	return m.cart, nil
}

func (m *mockCheckoutStore) LoadUser(context.Context, string) (*models.User, error) {
	return m.user, nil
}

func (m *mockCheckoutStore) CouponPercent(_ context.Context, code string) (int, bool, error) {
	p, ok := m.coupons[code]
	return p, ok, nil
}

func (m *mockCheckoutStore) CommitOrder(_ context.Context, order *models.Order, purchasedItemIDs []uint, pointsDelta int) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	purchased := make(map[uint]struct{}, len(purchasedItemIDs))
	for _, id := range purchasedItemIDs {
		purchased[id] = struct{}{}
	}
	remaining := make([]models.CartItem, 0, len(m.cart.Items))
	for _, it := range m.cart.Items {
		if _, ok := purchased[it.ID]; !ok {
			remaining = append(remaining, it)
		}
	}
	m.cart.Items = remaining
	m.cart.Recalculate()
	m.user.LoyaltyPoints += pointsDelta
	m.committed = append(m.committed, *order)
	return nil
}

func (m *mockCheckoutStore) MarkOrderPaid(_ context.Context, paymentRef string) (*models.Order, error) {
	for i := range m.committed {
		if m.committed[i].PaymentRef == paymentRef {
			m.committed[i].PaymentStatus = models.PaymentStatusPaid
			return &m.committed[i], nil
		}
	}
	return nil, ErrNotFound
}

type mockGateway struct {
	intentErr  error
	verifyOK   bool
	verifyErr  error
	lastAmount float64
}

func (m *mockGateway) CreateIntent(_ context.Context, amount float64, _, orderRef string, _ models.ShippingInfo) (PaymentIntent, error) {
	if m.intentErr != nil {
		return PaymentIntent{}, m.intentErr
	}
	m.lastAmount = amount
	return PaymentIntent{Ref: "pay-" + orderRef, URL: "https://gateway.test/pay"}, nil
}

func (m *mockGateway) Verify(context.Context, string) (bool, error) {
	return m.verifyOK, m.verifyErr
}

func validShipping() models.ShippingInfo {
	return models.ShippingInfo{
		FullName: "Asha Kumar",
		Phone:    "9876543210",
		Street:   "14 Gandhi Road",
		City:     "Erode",
		Country:  "IN",
	}
}

func newStore(items ...models.CartItem) *mockCheckoutStore {
	cart := &models.Cart{CartID: 1, UserID: "u1", Items: items}
	cart.Recalculate()
	return &mockCheckoutStore{
		cart:    cart,
		user:    &models.User{ID: "u1", Email: "asha@example.com", LoyaltyPoints: 0},
		coupons: map[string]int{"DISCOUNT10": 10, "DISCOUNT20": 20},
	}
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	// AddItem(qty 2) then AddItem(qty 1) merged into one line, quantity
	// reduced to 1: checkout at normal delivery = 100 + 20.
	store := newStore(models.CartItem{ID: 10, ProductID: 1, Name: "Silk Saree", Price: 100, Quantity: 1})
	svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)

	order, err := svc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		SelectedItemIDs: []uint{10},
		Shipping:        validShipping(),
		DeliveryType:    models.DeliveryNormal,
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "cod", order.PaymentMethod)
	assert.NotEmpty(t, order.OrderRef)

	// cart cleared, totals zeroed
	assert.Empty(t, store.cart.Items)
	assert.Zero(t, store.cart.TotalQuantity)
	assert.Zero(t, store.cart.TotalPrice)
}

func TestPlaceOrder_PricingVector(t *testing.T) {
	store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 250, Quantity: 2})
	svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)

	order, err := svc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		SelectedItemIDs: []uint{10},
		Shipping:        validShipping(),
		DeliveryType:    models.DeliveryExpress,
		GiftWrapping:    true,
		CouponCode:      "DISCOUNT10",
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, order.Subtotal)
	assert.Equal(t, 50.0, order.DeliveryCharge)
	assert.Equal(t, 50.0, order.GiftCharge)
	assert.Equal(t, 50.0, order.Discount)
	assert.Equal(t, 550.0, order.TotalAmount)
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty selection", func(t *testing.T) {
		svc := NewCheckoutService(newStore(), &mockGateway{}, "INR", nil)
		_, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{Shipping: validShipping()})
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("incomplete shipping", func(t *testing.T) {
		svc := NewCheckoutService(newStore(), &mockGateway{}, "INR", nil)
		ship := validShipping()
		ship.Phone = ""
		_, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{SelectedItemIDs: []uint{10}, Shipping: ship})
		assert.ErrorIs(t, err, ErrIncompleteShipping)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 1})
		svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)
		_, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{
			SelectedItemIDs: []uint{10},
			Shipping:        validShipping(),
			CouponCode:      "BOGUS",
		})
		assert.ErrorIs(t, err, ErrInvalidCoupon)
		assert.Len(t, store.cart.Items, 1) // nothing was mutated
	})

	t.Run("selection not in cart", func(t *testing.T) {
		store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 1})
		svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)
		_, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{
			SelectedItemIDs: []uint{10, 77},
			Shipping:        validShipping(),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("insufficient points", func(t *testing.T) {
		store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 1})
		store.user.LoyaltyPoints = 50
		svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)
		_, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{
			SelectedItemIDs: []uint{10},
			Shipping:        validShipping(),
			RedeemPoints:    100,
		})
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})
}

func TestPlaceOrder_CommitFailureLeavesCartIntact(t *testing.T) {
	store := newStore(
		models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 2},
		models.CartItem{ID: 11, ProductID: 2, Price: 250, Quantity: 1},
	)
	store.commitErr = errors.New("connection reset")
	svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)

	_, err := svc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		SelectedItemIDs: []uint{10, 11},
		Shipping:        validShipping(),
	})
	require.Error(t, err)

	assert.Len(t, store.cart.Items, 2)
	assert.Equal(t, 3, store.cart.TotalQuantity)
	assert.Empty(t, store.committed)
}

func TestPlaceOrder_ClearsOnlyPurchasedSubset(t *testing.T) {
	store := newStore(
		models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 2},
		models.CartItem{ID: 11, ProductID: 2, Price: 250, Quantity: 1},
	)
	svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)

	order, err := svc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		SelectedItemIDs: []uint{11},
		Shipping:        validShipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, 250.0, order.Subtotal)
	require.Len(t, store.cart.Items, 1)
	assert.Equal(t, uint(10), store.cart.Items[0].ID)
	assert.Equal(t, 2, store.cart.TotalQuantity)
}

func TestPlaceOrder_OrderItemsAreFrozenCopies(t *testing.T) {
	store := newStore(models.CartItem{ID: 10, ProductID: 1, Name: "Silk Saree", Price: 100, Quantity: 1, Color: strptr("red")})
	svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)

	order, err := svc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		SelectedItemIDs: []uint{10},
		Shipping:        validShipping(),
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Silk Saree", order.Items[0].Name)
	assert.Equal(t, 100.0, order.Items[0].Price)
	require.NotNil(t, order.Items[0].Color)
	assert.Equal(t, "red", *order.Items[0].Color)
}

func TestPlaceOrder_LoyaltyAccrualAndRedemption(t *testing.T) {
	store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 500, Quantity: 1})
	store.user.LoyaltyPoints = 200
	svc := NewCheckoutService(store, &mockGateway{}, "INR", nil)

	order, err := svc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		SelectedItemIDs: []uint{10},
		Shipping:        validShipping(),
		RedeemPoints:    200,
	})
	require.NoError(t, err)

	// 500 + 20 - 20 = 500 payable; earns 50 points, spent 200
	assert.Equal(t, 500.0, order.TotalAmount)
	assert.Equal(t, 200-200+50, store.user.LoyaltyPoints)
}

func TestPlaceOrder_CardFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the payment reference", func(t *testing.T) {
		store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 1})
		gw := &mockGateway{verifyOK: true}
		svc := NewCheckoutService(store, gw, "INR", nil)

		order, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{
			SelectedItemIDs: []uint{10},
			Shipping:        validShipping(),
			PaymentMethod:   "card",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, order.PaymentRef)
		assert.Equal(t, order.TotalAmount, gw.lastAmount)
		assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

		paid, err := svc.ConfirmPayment(ctx, order.PaymentRef)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	})

	t.Run("gateway failure places no order", func(t *testing.T) {
		store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 1})
		gw := &mockGateway{intentErr: errors.New("gateway down")}
		svc := NewCheckoutService(store, gw, "INR", nil)

		_, err := svc.PlaceOrder(ctx, "u1", PlaceOrderInput{
			SelectedItemIDs: []uint{10},
			Shipping:        validShipping(),
			PaymentMethod:   "card",
		})
		assert.ErrorIs(t, err, ErrPaymentFailed)
		assert.Empty(t, store.committed)
		assert.Len(t, store.cart.Items, 1)
	})

	t.Run("unverified callback changes nothing", func(t *testing.T) {
		store := newStore(models.CartItem{ID: 10, ProductID: 1, Price: 100, Quantity: 1})
		gw := &mockGateway{verifyOK: false}
		svc := NewCheckoutService(store, gw, "INR", nil)

		_, err := svc.ConfirmPayment(ctx, "pay-whatever")
		assert.ErrorIs(t, err, ErrPaymentFailed)
	})
}
