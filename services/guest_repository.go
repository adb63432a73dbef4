package services

import (
	"context"
	"errors"
	"time"

	"github.com/murali55525/erode-local-sub000/models"
	"gorm.io/gorm"
)

// guestCartRepository stores carts for not-yet-authenticated sessions in
// their own tables, keyed by guest id. It speaks the same CartRepository
// contract as user carts so handlers and the merge path treat both alike.
type guestCartRepository struct{ db *gorm.DB }

func NewGuestCartRepository(db *gorm.DB) CartRepository { return &guestCartRepository{db: db} }

func (r *guestCartRepository) Get(ctx context.Context, guestID string) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadOrCreateGuestCart(tx, guestID)
		if err != nil {
			return err
		}
		out = guestToCart(cart)
		return nil
	})
	return out, err
}

func (r *guestCartRepository) Find(ctx context.Context, guestID string) (*models.Cart, error) {
	cart, err := findGuestCart(r.db.WithContext(ctx), guestID)
	if err != nil {
		return nil, err
	}
	return guestToCart(cart), nil
}

func (r *guestCartRepository) AddOrMergeItem(ctx context.Context, guestID string, item models.CartItem) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadOrCreateGuestCart(tx, guestID)
		if err != nil {
			return err
		}
		now := time.Now()
		merged := false
		for i := range cart.Items {
			if sameGuestLine(cart.Items[i], item.ProductID, item.Color) {
				cart.Items[i].Quantity += item.Quantity
				cart.Items[i].AddedAt = now
				if err := tx.Save(&cart.Items[i]).Error; err != nil {
					return err
				}
				merged = true
				break
			}
		}
		if !merged {
			line := models.GuestCartItem{
				CartID:    cart.CartID,
				ProductID: item.ProductID,
				Color:     item.Color,
				Name:      item.Name,
				ImageURL:  item.ImageURL,
				Price:     item.Price,
				Quantity:  item.Quantity,
				AddedAt:   now,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			cart.Items = append(cart.Items, line)
		}
		if err := saveGuestCartTotals(tx, cart); err != nil {
			return err
		}
		out = guestToCart(cart)
		return nil
	})
	return out, err
}

func (r *guestCartRepository) SetItemQuantity(ctx context.Context, guestID string, itemID uint, quantity int) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findGuestCart(tx, guestID)
		if err != nil {
			return err
		}
		idx := -1
		for i, it := range cart.Items {
			if it.ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		cart.Items[idx].Quantity = quantity
		if err := tx.Save(&cart.Items[idx]).Error; err != nil {
			return err
		}
		if err := saveGuestCartTotals(tx, cart); err != nil {
			return err
		}
		out = guestToCart(cart)
		return nil
	})
	return out, err
}

func (r *guestCartRepository) RemoveItem(ctx context.Context, guestID string, itemID uint) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findGuestCart(tx, guestID)
		if err != nil {
			return err
		}
		idx := -1
		for i, it := range cart.Items {
			if it.ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		if err := tx.Delete(&models.GuestCartItem{}, itemID).Error; err != nil {
			return err
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		if err := saveGuestCartTotals(tx, cart); err != nil {
			return err
		}
		out = guestToCart(cart)
		return nil
	})
	return out, err
}

func (r *guestCartRepository) Clear(ctx context.Context, guestID string) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadOrCreateGuestCart(tx, guestID)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
			return err
		}
		cart.Items = nil
		if err := saveGuestCartTotals(tx, cart); err != nil {
			return err
		}
		out = guestToCart(cart)
		return nil
	})
	return out, err
}

func (r *guestCartRepository) Delete(ctx context.Context, guestID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.GuestCart
		err := tx.Where("guest_id = ?", guestID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // already gone; merge retries hit this path
		}
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
}

func findGuestCart(tx *gorm.DB, guestID string) (*models.GuestCart, error) {
	var cart models.GuestCart
	err := tx.Preload("Items").Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func loadOrCreateGuestCart(tx *gorm.DB, guestID string) (*models.GuestCart, error) {
	cart, err := findGuestCart(tx, guestID)
	if errors.Is(err, ErrNotFound) {
		cart = &models.GuestCart{GuestID: guestID}
		if err := tx.Create(cart).Error; err != nil {
			return nil, err
		}
		return cart, nil
	}
	return cart, err
}

func saveGuestCartTotals(tx *gorm.DB, cart *models.GuestCart) error {
	qty, price := 0, 0.0
	for _, it := range cart.Items {
		qty += it.Quantity
		price += it.Price * float64(it.Quantity)
	}
	cart.TotalQuantity, cart.TotalPrice = qty, price
	res := tx.Model(&models.GuestCart{}).
		Where("cart_id = ? AND version = ?", cart.CartID, cart.Version).
		Updates(map[string]interface{}{
			"total_quantity": cart.TotalQuantity,
			"total_price":    cart.TotalPrice,
			"version":        cart.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	cart.Version++
	return nil
}

func sameGuestLine(it models.GuestCartItem, productID uint, color *string) bool {
	if it.ProductID != productID {
		return false
	}
	if it.Color == nil || color == nil {
		return it.Color == nil && color == nil
	}
	return *it.Color == *color
}

// guestToCart exposes a guest cart through the shared cart shape. OwnerID
// rides in UserID; callers only ever read it.
func guestToCart(g *models.GuestCart) *models.Cart {
	cart := &models.Cart{
		CartID:        g.CartID,
		UserID:        g.GuestID,
		TotalQuantity: g.TotalQuantity,
		TotalPrice:    g.TotalPrice,
		Version:       g.Version,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	for _, it := range g.Items {
		cart.Items = append(cart.Items, models.CartItem{
			ID:        it.ID,
			CartID:    it.CartID,
			ProductID: it.ProductID,
			Color:     it.Color,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Price:     it.Price,
			Quantity:  it.Quantity,
			AddedAt:   it.AddedAt,
		})
	}
	return cart
}
