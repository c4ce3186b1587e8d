package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoyaltyStoreAccumulates(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := NewMemoryLoyaltyStore()

	// Act
	balance, err := store.AddPoints(ctx, "jane@example.com", 46)
	require.NoError(t, err)
	assert.Equal(t, int64(46), balance)

	balance, err = store.AddPoints(ctx, "jane@example.com", 12)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(58), balance)

	points, err := store.GetPoints(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(58), points)
}

func TestMemoryLoyaltyStoreNormalizesEmail(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := NewMemoryLoyaltyStore()
	_, err := store.AddPoints(ctx, " Jane@Example.COM ", 10)
	require.NoError(t, err)

	// Act
	points, err := store.GetPoints(ctx, "jane@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(10), points)
}

func TestMemoryLoyaltyStoreUnknownEmail(t *testing.T) {
	// Arrange
	store := NewMemoryLoyaltyStore()

	// Act
	points, err := store.GetPoints(context.Background(), "nobody@example.com")

	// Assert
	require.NoError(t, err)
	assert.Zero(t, points)
}
