package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/murali55525/erode-local-sub000/models"
)

// CartService owns the business rules around one cart collection: input
// validation, catalog snapshotting and the guest-to-user merge. It is
// instantiated once over the user cart repository and once over the guest
// cart repository.
type CartService struct {
	repo    CartRepository
	catalog ProductCatalog
}

func NewCartService(repo CartRepository, catalog ProductCatalog) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

type AddItemInput struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity"`
	Color     *string `json:"color"`
}

// Get returns the owner's cart, lazily creating an empty one.
func (s *CartService) Get(ctx context.Context, ownerID string) (*models.Cart, error) {
	return s.repo.Get(ctx, ownerID)
}

// AddItem validates the product, snapshots its price/name/image and merges
// the line into the cart by (product, color) identity.
func (s *CartService) AddItem(ctx context.Context, ownerID string, in AddItemInput) (*models.Cart, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrInvalidArgument)
	}
	product, err := s.catalog.Product(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("product does not exist: %w", ErrInvalidArgument)
		}
		return nil, err
	}
	if in.Color != nil && !offersColor(product, *in.Color) {
		return nil, fmt.Errorf("color %q not offered for product %d: %w", *in.Color, product.ID, ErrInvalidArgument)
	}

	return s.repo.AddOrMergeItem(ctx, ownerID, models.CartItem{
		ProductID: product.ID,
		Color:     in.Color,
		Name:      product.Name,
		ImageURL:  product.ImageURL,
		Price:     product.Price,
		Quantity:  in.Quantity,
	})
}

// UpdateQuantity sets a line's quantity in place. Zero or negative is
// rejected; removal is an explicit separate operation.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID string, itemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, use remove instead: %w", ErrInvalidArgument)
	}
	return s.repo.SetItemQuantity(ctx, ownerID, itemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, ownerID string, itemID uint) (*models.Cart, error) {
	return s.repo.RemoveItem(ctx, ownerID, itemID)
}

func (s *CartService) Clear(ctx context.Context, ownerID string) (*models.Cart, error) {
	return s.repo.Clear(ctx, ownerID)
}

// MergeFrom folds a guest cart into this service's cart for userID, then
// deletes the guest cart. The merge is best effort: a line that fails to
// apply is logged and skipped rather than aborting the rest. Re-running
// after the guest cart is gone is a no-op, so retries are safe.
func (s *CartService) MergeFrom(ctx context.Context, guests CartRepository, guestID, userID string) (*models.Cart, error) {
	guestCart, err := guests.Find(ctx, guestID)
	if errors.Is(err, ErrNotFound) {
		return s.repo.Get(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	for _, it := range guestCart.Items {
		_, err := s.repo.AddOrMergeItem(ctx, userID, models.CartItem{
			ProductID: it.ProductID,
			Color:     it.Color,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
		if err != nil {
			log.Printf("cart merge: skipping product %d for user %s: %v", it.ProductID, userID, err)
		}
	}

	if err := guests.Delete(ctx, guestID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func offersColor(p *models.Product, color string) bool {
	if len(p.Colors) == 0 {
		return true // product has no variants; any label is tolerated
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
