package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/murali55525/erode-local-sub000/models"
	"github.com/murali55525/erode-local-sub000/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentIntent is the reference handed back by the external gateway when a
// card payment is initiated.
type PaymentIntent struct {
	Ref string `json:"ref"`
	URL string `json:"url"`
}

// PaymentGateway is the external payment collaborator. Checkout only
// proceeds to "paid" on a verified success.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency, orderRef string, ship models.ShippingInfo) (PaymentIntent, error)
	Verify(ctx context.Context, paymentRef string) (bool, error)
}

// CheckoutStore is the persistence boundary for order finalization.
// CommitOrder must apply the order, the cart subset clear, the stock
// deduction and the loyalty balance change atomically: either all of it is
// durable or none of it is.
type CheckoutStore interface {
	LoadCart(ctx context.Context, userID string) (*models.Cart, error)
	LoadUser(ctx context.Context, userID string) (*models.User, error)
	CouponPercent(ctx context.Context, code string) (int, bool, error)
	CommitOrder(ctx context.Context, order *models.Order, purchasedItemIDs []uint, pointsDelta int) error
	MarkOrderPaid(ctx context.Context, paymentRef string) (*models.Order, error)
}

type PlaceOrderInput struct {
	SelectedItemIDs []uint              `json:"selected_item_ids" binding:"required"`
	Shipping        models.ShippingInfo `json:"shipping"`
	DeliveryType    models.DeliveryType `json:"delivery_type"`
	GiftWrapping    bool                `json:"gift_wrapping"`
	GiftMessage     string              `json:"gift_message"`
	CouponCode      string              `json:"coupon_code"`
	RedeemPoints    int                 `json:"redeem_points"`
	PaymentMethod   string              `json:"payment_method"` // "cod" (default) or "card"
}

// CheckoutService turns a selected subset of the cart plus shipping and
// discount inputs into one immutable order.
type CheckoutService struct {
	store    CheckoutStore
	gateway  PaymentGateway
	currency string
	notify   func(models.Order) // optional hook, e.g. admin websocket feed
}

func NewCheckoutService(store CheckoutStore, gateway PaymentGateway, currency string, notify func(models.Order)) *CheckoutService {
	if currency == "" {
		currency = "INR"
	}
	return &CheckoutService{store: store, gateway: gateway, currency: currency, notify: notify}
}

// PlaceOrder validates the request, prices it deterministically and commits
// the order. Validation happens before any mutation; a commit failure
// leaves the cart exactly as it was.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	selected := dedupeIDs(in.SelectedItemIDs)
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}
	if !shippingComplete(in.Shipping) {
		return nil, ErrIncompleteShipping
	}
	method := strings.ToLower(in.PaymentMethod)
	if method == "" {
		method = "cod"
	}
	if method != "cod" && method != "card" {
		return nil, fmt.Errorf("unknown payment method %q: %w", in.PaymentMethod, ErrInvalidArgument)
	}

	cart, err := s.store.LoadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines, err := selectLines(cart, selected)
	if err != nil {
		return nil, err
	}

	user, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupons := pricing.CouponMap{}
	if in.CouponCode != "" {
		percent, ok, err := s.store.CouponPercent(ctx, in.CouponCode)
		if err != nil {
			return nil, err
		}
		if ok {
			coupons[in.CouponCode] = percent
		}
	}

	quote, err := pricing.QuoteOrder(lines, pricing.Options{
		DeliveryType: deliveryOrDefault(in.DeliveryType),
		GiftWrapping: in.GiftWrapping,
		CouponCode:   in.CouponCode,
		RedeemPoints: in.RedeemPoints,
	}, coupons, user.LoyaltyPoints)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := models.Order{
		OrderRef:          generateOrderRef(),
		UserID:            userID,
		Items:             freezeLines(lines),
		Shipping:          in.Shipping,
		DeliveryType:      deliveryOrDefault(in.DeliveryType),
		GiftWrapping:      in.GiftWrapping,
		GiftMessage:       in.GiftMessage,
		CouponCode:        in.CouponCode,
		Subtotal:          quote.Subtotal,
		DeliveryCharge:    quote.DeliveryCharge,
		GiftCharge:        quote.GiftCharge,
		Discount:          quote.Discount,
		TotalAmount:       quote.Total,
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		PaymentMethod:     method,
		EstimatedDelivery: pricing.EstimatedDelivery(deliveryOrDefault(in.DeliveryType), now),
		CreatedAt:         now,
	}

	if method == "card" {
		intent, err := s.gateway.CreateIntent(ctx, order.TotalAmount, s.currency, order.OrderRef, order.Shipping)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		order.PaymentRef = intent.Ref
	}

	pointsDelta := pricing.PointsEarned(quote.Total) - quote.PointsRedeemed
	if err := s.store.CommitOrder(ctx, &order, selected, pointsDelta); err != nil {
		return nil, err
	}

	if s.notify != nil {
		s.notify(order)
	}
	return &order, nil
}

// ConfirmPayment is driven by the gateway callback. The order only becomes
// "paid" after the gateway re-verifies the reference; an unverified callback
// changes nothing.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, paymentRef string) (*models.Order, error) {
	if paymentRef == "" {
		return nil, fmt.Errorf("payment reference required: %w", ErrInvalidArgument)
	}
	ok, err := s.gateway.Verify(ctx, paymentRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !ok {
		return nil, ErrPaymentFailed
	}
	return s.store.MarkOrderPaid(ctx, paymentRef)
}

func deliveryOrDefault(t models.DeliveryType) models.DeliveryType {
	if t == models.DeliveryExpress {
		return models.DeliveryExpress
	}
	return models.DeliveryNormal
}

func shippingComplete(s models.ShippingInfo) bool {
	return s.FullName != "" && s.Phone != "" && s.Street != "" && s.City != "" && s.Country != ""
}

func selectLines(cart *models.Cart, ids []uint) ([]models.CartItem, error) {
	byID := make(map[uint]models.CartItem, len(cart.Items))
	for _, it := range cart.Items {
		byID[it.ID] = it
	}
	lines := make([]models.CartItem, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
		}
		lines = append(lines, it)
	}
	return lines, nil
}

// freezeLines deep-copies the purchased lines; the order must never
// reference live cart rows.
func freezeLines(lines []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(lines))
	for _, it := range lines {
		var color *string
		if it.Color != nil {
			c := *it.Color
			color = &c
		}
		out = append(out, models.OrderItem{
			ProductID: it.ProductID,
			Color:     color,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return out
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// ---------------- gorm-backed store ----------------

type gormCheckoutStore struct{ db *gorm.DB }

func NewCheckoutStore(db *gorm.DB) CheckoutStore { return &gormCheckoutStore{db: db} }

func (s *gormCheckoutStore) LoadCart(ctx context.Context, userID string) (*models.Cart, error) {
	return loadCart(s.db.WithContext(ctx), userID)
}

func (s *gormCheckoutStore) LoadUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormCheckoutStore) CouponPercent(ctx context.Context, code string) (int, bool, error) {
	var coupon models.Coupon
	err := s.db.WithContext(ctx).Where("code = ? AND active = ?", code, true).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return coupon.Percent, true, nil
}

// CommitOrder runs the whole finalization in one transaction: stock is
// locked and deducted, the order is created, the purchased cart lines are
// removed with totals recomputed, and the loyalty balance is adjusted.
func (s *gormCheckoutStore) CommitOrder(ctx context.Context, order *models.Order, purchasedItemIDs []uint, pointsDelta int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range order.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", it.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < it.Quantity {
				return fmt.Errorf("insufficient stock for %s: %w", it.Name, ErrConflict)
			}
			product.Stock -= it.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		cart, err := loadCart(tx, order.UserID)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ? AND id IN ?", cart.CartID, purchasedItemIDs).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		remaining := cart.Items[:0]
		purchased := make(map[uint]struct{}, len(purchasedItemIDs))
		for _, id := range purchasedItemIDs {
			purchased[id] = struct{}{}
		}
		for _, it := range cart.Items {
			if _, ok := purchased[it.ID]; !ok {
				remaining = append(remaining, it)
			}
		}
		cart.Items = remaining
		if err := saveCartTotals(tx, cart); err != nil {
			return err
		}

		if pointsDelta != 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", order.UserID).
				Update("loyalty_points", gorm.Expr("loyalty_points + ?", pointsDelta)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormCheckoutStore) MarkOrderPaid(ctx context.Context, paymentRef string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Where("payment_ref = ?", paymentRef).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("payment ref %s: %w", paymentRef, ErrNotFound)
			}
			return err
		}
		order.PaymentStatus = models.PaymentStatusPaid
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("payment_status", models.PaymentStatusPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
