package preorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClientCreateOrder(t *testing.T) {
	// Arrange
	requested := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Jane Doe", body["name"])
		assert.Equal(t, "5551234567", body["phone"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"orderNumber": "VEG-654321",
			"message":     "Order created successfully",
			"data": SubmittedOrder{
				ID:          1,
				OrderNumber: "VEG-654321",
				Name:        "Jane Doe",
				OrderType:   OrderTypePickup,
				PickupTime:  requested,
				Total:       4697,
			},
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL)
	draft := OrderDraft{
		Contact: ContactDetails{
			Name:          "Jane Doe",
			Email:         "jane@example.com",
			Phone:         "(555) 123-4567",
			OrderType:     OrderTypePickup,
			RequestedTime: requested,
		},
		Items: []CartLine{
			{ItemID: 1, Name: "Buddha Bowl", UnitPrice: 1499, Quantity: 2},
			{ItemID: 2, Name: "Mushroom Risotto", UnitPrice: 1699, Quantity: 1},
		},
		Total: 4697,
	}

	// Act
	order, err := client.CreateOrder(context.Background(), draft)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "VEG-654321", order.OrderNumber)
	assert.Equal(t, int64(4697), order.Total)
}

func TestAPIClientCreateOrderRejection(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Invalid order data",
			"errors":  map[string]string{"address": "Address is required for delivery orders"},
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL)

	// Act
	_, err := client.CreateOrder(context.Background(), OrderDraft{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid order data")
}

func TestAPIClientGetOrderByNumber(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/orders/VEG-654321":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    SubmittedOrder{OrderNumber: "VEG-654321", Total: 4697},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "Order not found",
			})
		}
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL)

	// Act / Assert: known number
	order, err := client.GetOrderByNumber(context.Background(), "VEG-654321")
	require.NoError(t, err)
	assert.Equal(t, int64(4697), order.Total)

	// Act / Assert: unknown number maps to the sentinel
	_, err = client.GetOrderByNumber(context.Background(), "VEG-000000")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAPIClientGetMenu(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/menu", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []MenuItem{
				{ID: 1, Name: "Buddha Bowl", Price: 1499, Category: "mains"},
			},
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL)

	// Act
	items, err := client.GetMenu(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Buddha Bowl", items[0].Name)
}
