package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taldoflemis/veggie-delight/preorder"
	"github.com/taldoflemis/veggie-delight/verdura"
)

func sampleDraft() preorder.OrderDraft {
	return preorder.OrderDraft{
		Contact: preorder.ContactDetails{
			Name:          "Jane Doe",
			Email:         "jane@example.com",
			Phone:         "5551234567",
			OrderType:     preorder.OrderTypePickup,
			RequestedTime: time.Now().Add(time.Hour),
		},
		Items: []preorder.CartLine{
			{ItemID: 1, Name: "Buddha Bowl", UnitPrice: 1499, Quantity: 2},
			{ItemID: 2, Name: "Mushroom Risotto", UnitPrice: 1699, Quantity: 1},
		},
		Total: 4697,
	}
}

func TestMemoryOrderStoreCreateAndLookup(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := NewMemoryOrderStore(verdura.NewOrderNumberGenerator(1))

	// Act
	created, err := store.CreateOrder(ctx, sampleDraft())

	// Assert
	require.NoError(t, err)
	assert.Regexp(t, `^VEG-\d{6}$`, created.OrderNumber)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(4697), created.Total)
	assert.Len(t, created.Items, 2)

	found, ok, err := store.GetOrderByNumber(ctx, created.OrderNumber)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.OrderNumber, found.OrderNumber)
	assert.Equal(t, "jane@example.com", found.Email)
}

func TestMemoryOrderStoreUnknownNumber(t *testing.T) {
	// Arrange
	store := NewMemoryOrderStore(verdura.NewOrderNumberGenerator(1))

	// Act
	order, ok, err := store.GetOrderByNumber(context.Background(), "VEG-000000")

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, order)
}

func TestMemoryOrderStoreNumbersAreUnique(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := NewMemoryOrderStore(verdura.NewOrderNumberGenerator(42))

	// Act
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		order, err := store.CreateOrder(ctx, sampleDraft())
		require.NoError(t, err)
		seen[order.OrderNumber] = struct{}{}
	}

	// Assert
	assert.Len(t, seen, 200)
}

func TestMemoryOrderStoreRetriesOnCollision(t *testing.T) {
	// Arrange: a twin generator with the same seed predicts the first number
	// the store will draw, and we occupy it up front
	ctx := context.Background()
	store := NewMemoryOrderStore(verdura.NewOrderNumberGenerator(7))
	twin := verdura.NewOrderNumberGenerator(7)
	taken := twin.Next()
	store.orders[taken] = preorder.SubmittedOrder{OrderNumber: taken}

	// Act
	order, err := store.CreateOrder(ctx, sampleDraft())

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, taken, order.OrderNumber)
	assert.Equal(t, twin.Next(), order.OrderNumber)
}

func TestMemoryOrderStoreDuplicateDraftsMakeDistinctOrders(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := NewMemoryOrderStore(verdura.NewOrderNumberGenerator(3))
	draft := sampleDraft()

	// Act
	first, err := store.CreateOrder(ctx, draft)
	require.NoError(t, err)
	second, err := store.CreateOrder(ctx, draft)
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSubmittedFromDraftComputesEstimatedTime(t *testing.T) {
	// Arrange
	draft := sampleDraft()
	draft.Contact.OrderType = preorder.OrderTypeDelivery
	draft.Contact.Address = "42 Garden Lane"

	// Act
	order := submittedFromDraft(draft, 9, "VEG-111111", time.Now().UTC())

	// Assert
	assert.Equal(t, draft.Contact.RequestedTime.Add(preorder.DeliveryOffset), order.EstimatedTime)
	assert.Equal(t, "42 Garden Lane", order.Address)
}
