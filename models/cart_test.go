package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func colorPtr(s string) *string { return &s }

func TestSameLine(t *testing.T) {
	red := CartItem{ProductID: 1, Color: colorPtr("red")}
	plain := CartItem{ProductID: 1, Color: nil}

	assert.True(t, red.SameLine(1, colorPtr("red")))
	assert.False(t, red.SameLine(1, colorPtr("blue")))
	assert.False(t, red.SameLine(2, colorPtr("red")))
	assert.False(t, red.SameLine(1, nil))

	assert.True(t, plain.SameLine(1, nil))
	assert.False(t, plain.SameLine(1, colorPtr("red")))
}

func TestRecomputeTotals(t *testing.T) {
	qty, price := RecomputeTotals(nil)
	assert.Zero(t, qty)
	assert.Zero(t, price)

	qty, price = RecomputeTotals([]CartItem{
		{Price: 100, Quantity: 2},
		{Price: 250, Quantity: 1},
	})
	assert.Equal(t, 3, qty)
	assert.Equal(t, 450.0, price)
}

func TestRecalculateMatchesItemSums(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 50; trial++ {
		cart := Cart{}
		wantQty := 0
		wantPrice := 0.0
		for i := 0; i < rng.Intn(20); i++ {
			it := CartItem{
				ProductID: uint(rng.Intn(5) + 1),
				Price:     float64(rng.Intn(500)) + 0.5,
				Quantity:  rng.Intn(9) + 1,
			}
			cart.Items = append(cart.Items, it)
			wantQty += it.Quantity
			wantPrice += it.Price * float64(it.Quantity)
		}

		cart.Recalculate()
		assert.Equal(t, wantQty, cart.TotalQuantity)
		assert.InDelta(t, wantPrice, cart.TotalPrice, 1e-9)
	}
}

func TestFindItem(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: 1, Color: colorPtr("red")},
		{ProductID: 1, Color: nil},
		{ProductID: 2, Color: colorPtr("blue")},
	}}

	assert.Equal(t, 0, cart.FindItem(1, colorPtr("red")))
	assert.Equal(t, 1, cart.FindItem(1, nil))
	assert.Equal(t, 2, cart.FindItem(2, colorPtr("blue")))
	assert.Equal(t, -1, cart.FindItem(3, nil))
}
