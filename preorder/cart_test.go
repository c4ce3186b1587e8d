package preorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	buddhaBowl = MenuItem{ID: 1, Name: "Buddha Bowl", Price: 1499}
	risotto    = MenuItem{ID: 2, Name: "Mushroom Risotto", Price: 1699}
	curry      = MenuItem{ID: 3, Name: "Chickpea Curry", Price: 1399}
)

func TestSelectItemAccumulatesQuantity(t *testing.T) {
	// Arrange
	var cart Cart

	// Act
	for i := 0; i < 5; i++ {
		cart.SelectItem(buddhaBowl)
	}

	// Assert
	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, buddhaBowl.ID, lines[0].ItemID)
}

func TestSelectItemPreservesInsertionOrder(t *testing.T) {
	// Arrange
	var cart Cart
	cart.SelectItem(buddhaBowl)
	cart.SelectItem(risotto)
	cart.SelectItem(curry)

	// Act: incrementing the first line must not reorder it
	cart.SelectItem(buddhaBowl)

	// Assert
	lines := cart.Lines()
	assert.Equal(t, []int64{1, 2, 3}, []int64{lines[0].ItemID, lines[1].ItemID, lines[2].ItemID})
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestChangeQuantity(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		wantLines    int
		wantQuantity int
	}{
		{name: "sets exact quantity", quantity: 7, wantLines: 1, wantQuantity: 7},
		{name: "quantity one keeps the line", quantity: 1, wantLines: 1, wantQuantity: 1},
		{name: "zero removes the line", quantity: 0, wantLines: 0},
		{name: "negative removes the line", quantity: -1, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var cart Cart
			cart.SelectItem(buddhaBowl)

			// Act
			cart.ChangeQuantity(buddhaBowl.ID, tt.quantity)

			// Assert
			lines := cart.Lines()
			assert.Len(t, lines, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQuantity, lines[0].Quantity)
			}
		})
	}
}

func TestRemoveItem(t *testing.T) {
	// Arrange
	var cart Cart
	cart.SelectItem(buddhaBowl)
	cart.SelectItem(risotto)

	// Act
	cart.RemoveItem(buddhaBowl.ID)

	// Assert
	lines := cart.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, risotto.ID, lines[0].ItemID)
}

func TestTotalTracksEveryMutation(t *testing.T) {
	// Arrange
	var cart Cart

	// Act / Assert: the total always equals the sum over current lines
	cart.SelectItem(buddhaBowl)
	cart.SelectItem(buddhaBowl)
	cart.SelectItem(risotto)
	assert.Equal(t, int64(1499*2+1699), cart.Total())

	cart.ChangeQuantity(buddhaBowl.ID, 1)
	assert.Equal(t, int64(1499+1699), cart.Total())

	cart.SelectItem(curry)
	cart.RemoveItem(risotto.ID)
	assert.Equal(t, int64(1499+1399), cart.Total())

	cart.ChangeQuantity(curry.ID, 0)
	assert.Equal(t, int64(1499), cart.Total())

	cart.RemoveItem(buddhaBowl.ID)
	assert.Zero(t, cart.Total())
	assert.True(t, cart.Empty())
}
