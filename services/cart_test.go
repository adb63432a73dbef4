package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/murali55525/erode-local-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartRepository struct {
	m      sync.Mutex
	carts  map[string]*models.Cart
	nextID uint

	failProductID uint  // AddOrMergeItem fails for this product
	err           error // every call fails with this when set
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: map[string]*models.Cart{}, nextID: 1}
}

func (m *mockCartRepository) cart(ownerID string) *models.Cart {
	if c, ok := m.carts[ownerID]; ok {
		return c
	}
	c := &models.Cart{CartID: m.nextID, UserID: ownerID}
	m.nextID++
	m.carts[ownerID] = c
	return c
}

func (m *mockCartRepository) Get(_ context.Context, ownerID string) (*models.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.cart(ownerID), nil
}

func (m *mockCartRepository) Find(_ context.Context, ownerID string) (*models.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *mockCartRepository) AddOrMergeItem(_ context.Context, ownerID string, item models.CartItem) (*models.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if item.ProductID == m.failProductID && m.failProductID != 0 {
		return nil, fmt.Errorf("simulated storage failure")
	}
	c := m.cart(ownerID)
	if idx := c.FindItem(item.ProductID, item.Color); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
	} else {
		item.ID = m.nextID
		m.nextID++
		item.CartID = c.CartID
		c.Items = append(c.Items, item)
	}
	c.Recalculate()
	return c, nil
}

func (m *mockCartRepository) SetItemQuantity(_ context.Context, ownerID string, itemID uint, quantity int) (*models.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	idx := findItemID(c.Items, itemID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	c.Items[idx].Quantity = quantity
	c.Recalculate()
	return c, nil
}

func (m *mockCartRepository) RemoveItem(_ context.Context, ownerID string, itemID uint) (*models.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.carts[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	idx := findItemID(c.Items, itemID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.Recalculate()
	return c, nil
}

func (m *mockCartRepository) Clear(_ context.Context, ownerID string) (*models.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c := m.cart(ownerID)
	c.Items = nil
	c.Recalculate()
	return c, nil
}

func (m *mockCartRepository) Delete(_ context.Context, ownerID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, ownerID)
	return nil
}

type mockCatalog struct {
	products map[uint]*models.Product
}

func (m *mockCatalog) Product(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func testCatalog() *mockCatalog {
	return &mockCatalog{products: map[uint]*models.Product{
		1: {ID: 1, Name: "Silk Saree", Price: 100, ImageURL: "/uploads/saree.jpg", Colors: []string{"red", "blue"}, Stock: 50},
		2: {ID: 2, Name: "Cotton Kurta", Price: 250, ImageURL: "/uploads/kurta.jpg", Stock: 20},
	}}
}

func strptr(s string) *string { return &s }

func TestAddItem_MergesSameProductAndColor(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 2, Color: strptr("red")})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 3, Color: strptr("red")})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalQuantity)
	assert.Equal(t, 500.0, cart.TotalPrice)
}

func TestAddItem_DifferentColorIsSeparateLine(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 1, Color: strptr("red")})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 1, Color: strptr("blue")})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.TotalQuantity)
}

func TestAddItem_NilColorOnlyMatchesNilColor(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 1, Color: strptr("red")})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
}

func TestAddItem_Validation(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()

	t.Run("defaults quantity to one", func(t *testing.T) {
		cart, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 2})
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: -2})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 99, Quantity: 1})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("color not offered", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 1, Color: strptr("green")})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestAddItem_SnapshotsCatalogFields(t *testing.T) {
	catalog := testCatalog()
	svc := NewCartService(newMockCartRepository(), catalog)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Silk Saree", cart.Items[0].Name)
	assert.Equal(t, 100.0, cart.Items[0].Price)

	// later catalog price changes do not touch the snapshot
	catalog.products[1].Price = 999
	cart, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, cart.Items[0].Price)
	assert.Equal(t, 100.0, cart.TotalPrice)
}

func TestUpdateQuantity(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	t.Run("replaces in place", func(t *testing.T) {
		cart, err := svc.UpdateQuantity(ctx, "u1", itemID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, cart.TotalQuantity)
		assert.Equal(t, 100.0, cart.TotalPrice)
	})

	t.Run("rejects non-positive", func(t *testing.T) {
		_, err := svc.UpdateQuantity(ctx, "u1", itemID, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := svc.UpdateQuantity(ctx, "u1", 9999, 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoveItem_MissingIsNotFound(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	_, err := svc.RemoveItem(context.Background(), "u1", 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClear_Idempotent(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 4})
	require.NoError(t, err)

	first, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)
	second, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)

	for _, cart := range []*models.Cart{first, second} {
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.TotalQuantity)
		assert.Zero(t, cart.TotalPrice)
	}
}

// Totals must equal the recomputed sums after any sequence of mutations.
func TestTotalsInvariantUnderRandomOps(t *testing.T) {
	svc := NewCartService(newMockCartRepository(), testCatalog())
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	var cart *models.Cart
	var err error
	for i := 0; i < 200; i++ {
		switch rng.Intn(4) {
		case 0:
			cart, err = svc.AddItem(ctx, "u1", AddItemInput{
				ProductID: uint(1 + rng.Intn(2)),
				Quantity:  1 + rng.Intn(5),
			})
		case 1:
			cart, err = svc.AddItem(ctx, "u1", AddItemInput{
				ProductID: 1,
				Quantity:  1 + rng.Intn(3),
				Color:     strptr([]string{"red", "blue"}[rng.Intn(2)]),
			})
		case 2:
			cart, err = svc.Get(ctx, "u1")
			require.NoError(t, err)
			if len(cart.Items) > 0 {
				cart, err = svc.RemoveItem(ctx, "u1", cart.Items[rng.Intn(len(cart.Items))].ID)
			}
		case 3:
			cart, err = svc.Get(ctx, "u1")
			require.NoError(t, err)
			if len(cart.Items) > 0 {
				cart, err = svc.UpdateQuantity(ctx, "u1", cart.Items[rng.Intn(len(cart.Items))].ID, 1+rng.Intn(9))
			}
		}
		require.NoError(t, err)

		wantQty, wantPrice := models.RecomputeTotals(cart.Items)
		require.Equal(t, wantQty, cart.TotalQuantity)
		require.InDelta(t, wantPrice, cart.TotalPrice, 1e-9)
	}
}

func TestMergeFrom(t *testing.T) {
	ctx := context.Background()

	setup := func() (*CartService, *mockCartRepository, *mockCartRepository) {
		users := newMockCartRepository()
		guests := newMockCartRepository()
		svc := NewCartService(users, testCatalog())
		return svc, users, guests
	}

	seedGuest := func(guests *mockCartRepository) {
		_, err := guests.AddOrMergeItem(ctx, "g1", models.CartItem{ProductID: 1, Quantity: 2, Price: 100, Name: "Silk Saree"})
		require.NoError(t, err)
		_, err = guests.AddOrMergeItem(ctx, "g1", models.CartItem{ProductID: 2, Quantity: 1, Price: 250, Name: "Cotton Kurta"})
		require.NoError(t, err)
	}

	t.Run("sums quantities on identity match", func(t *testing.T) {
		svc, _, guests := setup()
		seedGuest(guests)
		_, err := svc.AddItem(ctx, "u1", AddItemInput{ProductID: 1, Quantity: 3})
		require.NoError(t, err)

		cart, err := svc.MergeFrom(ctx, guests, "g1", "u1")
		require.NoError(t, err)

		require.Len(t, cart.Items, 2)
		idx := cart.FindItem(1, nil)
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, 5, cart.Items[idx].Quantity)
		assert.Equal(t, 6, cart.TotalQuantity)

		// guest cart is gone
		_, err = guests.Find(ctx, "g1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("idempotent under retry", func(t *testing.T) {
		svc, _, guests := setup()
		seedGuest(guests)

		first, err := svc.MergeFrom(ctx, guests, "g1", "u1")
		require.NoError(t, err)
		again, err := svc.MergeFrom(ctx, guests, "g1", "u1")
		require.NoError(t, err)

		assert.Equal(t, first.TotalQuantity, again.TotalQuantity)
		assert.Equal(t, first.TotalPrice, again.TotalPrice)
	})

	t.Run("skips failing lines without aborting", func(t *testing.T) {
		svc, users, guests := setup()
		seedGuest(guests)
		users.failProductID = 1

		cart, err := svc.MergeFrom(ctx, guests, "g1", "u1")
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, uint(2), cart.Items[0].ProductID)
	})
}
