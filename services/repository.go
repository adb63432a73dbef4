package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/murali55525/erode-local-sub000/models"
	"gorm.io/gorm"
)

// CartRepository is the storage contract shared by server-persisted user
// carts and device-session guest carts. Every mutation returns the full
// cart with totals already recomputed, so callers never derive totals
// themselves.
type CartRepository interface {
	// Get returns the owner's cart, creating an empty one if absent.
	Get(ctx context.Context, ownerID string) (*models.Cart, error)
	// Find returns the owner's cart or ErrNotFound; it never creates.
	Find(ctx context.Context, ownerID string) (*models.Cart, error)
	// AddOrMergeItem appends the item, or increments the quantity of the
	// existing line with the same (product, color) identity.
	AddOrMergeItem(ctx context.Context, ownerID string, item models.CartItem) (*models.Cart, error)
	// SetItemQuantity replaces a line's quantity in place.
	SetItemQuantity(ctx context.Context, ownerID string, itemID uint, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, ownerID string, itemID uint) (*models.Cart, error)
	// Clear empties the cart and zeroes its totals; clearing an already
	// empty cart is a no-op.
	Clear(ctx context.Context, ownerID string) (*models.Cart, error)
	// Delete removes the cart entirely (guest cart teardown after merge).
	Delete(ctx context.Context, ownerID string) error
}

// ProductCatalog is the read-only catalog boundary the cart snapshots
// price/name/image from at add time.
type ProductCatalog interface {
	Product(ctx context.Context, id uint) (*models.Product, error)
}

type gormCatalog struct{ db *gorm.DB }

func NewProductCatalog(db *gorm.DB) ProductCatalog { return gormCatalog{db: db} }

func (g gormCatalog) Product(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := g.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// ---------------- user carts ----------------

type userCartRepository struct{ db *gorm.DB }

func NewUserCartRepository(db *gorm.DB) CartRepository { return &userCartRepository{db: db} }

func (r *userCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = loadOrCreateCart(tx, userID)
		return err
	})
	return cart, err
}

func (r *userCartRepository) Find(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *userCartRepository) AddOrMergeItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		now := time.Now()
		if idx := cart.FindItem(item.ProductID, item.Color); idx >= 0 {
			line := &cart.Items[idx]
			line.Quantity += item.Quantity
			line.AddedAt = now
			if err := tx.Save(line).Error; err != nil {
				return err
			}
		} else {
			item.ID = 0
			item.CartID = cart.CartID
			item.AddedAt = now
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			cart.Items = append(cart.Items, item)
		}
		out = cart
		return saveCartTotals(tx, cart)
	})
	return out, err
}

func (r *userCartRepository) SetItemQuantity(ctx context.Context, userID string, itemID uint, quantity int) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		idx := findItemID(cart.Items, itemID)
		if idx < 0 {
			return ErrNotFound
		}
		cart.Items[idx].Quantity = quantity
		if err := tx.Save(&cart.Items[idx]).Error; err != nil {
			return err
		}
		out = cart
		return saveCartTotals(tx, cart)
	})
	return out, err
}

func (r *userCartRepository) RemoveItem(ctx context.Context, userID string, itemID uint) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadCart(tx, userID)
		if err != nil {
			return err
		}
		idx := findItemID(cart.Items, itemID)
		if idx < 0 {
			return ErrNotFound
		}
		if err := tx.Delete(&models.CartItem{}, itemID).Error; err != nil {
			return err
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		out = cart
		return saveCartTotals(tx, cart)
	})
	return out, err
}

func (r *userCartRepository) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	var out *models.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := loadOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		cart.Items = nil
		out = cart
		return saveCartTotals(tx, cart)
	})
	return out, err
}

func (r *userCartRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
}

func loadCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func loadOrCreateCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	cart, err := loadCart(tx, userID)
	if errors.Is(err, ErrNotFound) {
		cart = &models.Cart{UserID: userID}
		if err := tx.Create(cart).Error; err != nil {
			return nil, err
		}
		return cart, nil
	}
	return cart, err
}

// saveCartTotals recomputes the derived totals and persists them with an
// optimistic version check. A concurrent mutation that bumped the version
// first wins; the loser surfaces ErrConflict instead of silently dropping
// its update.
func saveCartTotals(tx *gorm.DB, cart *models.Cart) error {
	cart.Recalculate()
	res := tx.Model(&models.Cart{}).
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

func findItemID(items []models.CartItem, itemID uint) int {
	for i, it := range items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
