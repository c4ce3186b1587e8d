// Package preorder implements the multi-step pre-order workflow of the
// Veggie Delight storefront: a four-state wizard that accumulates contact
// details and a cart, validates transitions, computes derived values and
// submits the finished draft to the counter API.
package preorder

import (
	"time"
)

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// Ready-time offsets added to the requested time.
const (
	PickupOffset   = 20 * time.Minute
	DeliveryOffset = 45 * time.Minute
)

// MenuItem is one orderable catalog entry. Price is in cents.
type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// CartLine is one orderable item plus its requested quantity. UnitPrice is in
// cents. Quantity is always >= 1; a line that would drop below 1 is removed
// from the cart instead.
type CartLine struct {
	ItemID    int64  `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// ContactDetails carries the customer-facing half of a draft. Fields are
// mutated one by one as the user types and validated on step transitions.
type ContactDetails struct {
	Name                string
	Email               string
	Phone               string
	OrderType           OrderType
	Address             string
	RequestedTime       time.Time
	DietaryRestrictions []string
	SpecialInstructions string
}

// ToggleDietaryRestriction adds the restriction when absent and removes it
// when present, preserving the order of the remaining entries.
func (c *ContactDetails) ToggleDietaryRestriction(restriction string) {
	for i, r := range c.DietaryRestrictions {
		if r == restriction {
			c.DietaryRestrictions = append(
				c.DietaryRestrictions[:i],
				c.DietaryRestrictions[i+1:]...,
			)
			return
		}
	}
	c.DietaryRestrictions = append(c.DietaryRestrictions, restriction)
}

// OrderDraft is the complete not-yet-submitted order state.
type OrderDraft struct {
	Contact ContactDetails
	Items   []CartLine
	Total   int64
}

// EstimatedReadyTime derives the ready time from the requested time and the
// order type: 20 minutes for pickup, 45 minutes for delivery.
func (d *OrderDraft) EstimatedReadyTime() time.Time {
	if d.Contact.OrderType == OrderTypeDelivery {
		return d.Contact.RequestedTime.Add(DeliveryOffset)
	}
	return d.Contact.RequestedTime.Add(PickupOffset)
}

// SubmittedOrder is the immutable record returned after successful creation.
type SubmittedOrder struct {
	ID                  int64      `json:"id"`
	OrderNumber         string     `json:"orderNumber"`
	OrderDate           time.Time  `json:"orderDate"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	OrderType           OrderType  `json:"orderType"`
	Address             string     `json:"address,omitempty"`
	PickupTime          time.Time  `json:"pickupTime"`
	DietaryRestrictions []string   `json:"dietaryRestrictions,omitempty"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
	Items               []CartLine `json:"items"`
	Total               int64      `json:"total"`
	EstimatedTime       time.Time  `json:"estimatedTime"`
}
