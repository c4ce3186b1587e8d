package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/taldoflemis/veggie-delight/preorder"
	"github.com/taldoflemis/veggie-delight/verdura"
)

// maxOrderNumberAttempts bounds regeneration when a freshly drawn order
// number collides with an existing one.
const maxOrderNumberAttempts = 5

var errOrderNumbersExhausted = errors.New("could not allocate a unique order number")

// OrderStore persists submitted orders. Orders are write-once; there are no
// update or delete operations.
type OrderStore interface {
	CreateOrder(ctx context.Context, draft preorder.OrderDraft) (*preorder.SubmittedOrder, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*preorder.SubmittedOrder, bool, error)
}

// MemoryOrderStore keeps orders in a map keyed by order number. Writes are
// serialized by a mutex so concurrent requests cannot allocate the same
// number.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]preorder.SubmittedOrder
	nextID int64
	gen    *verdura.OrderNumberGenerator
}

var _ OrderStore = (*MemoryOrderStore)(nil)

func NewMemoryOrderStore(gen *verdura.OrderNumberGenerator) *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[string]preorder.SubmittedOrder),
		nextID: 1,
		gen:    gen,
	}
}

// CreateOrder implements OrderStore. The order number is regenerated on
// collision, up to maxOrderNumberAttempts times. Identical drafts always
// produce distinct orders; there is no idempotency key.
func (s *MemoryOrderStore) CreateOrder(ctx context.Context, draft preorder.OrderDraft) (*preorder.SubmittedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orderNumber string
	for attempt := 0; ; attempt++ {
		if attempt == maxOrderNumberAttempts {
			return nil, errOrderNumbersExhausted
		}
		orderNumber = s.gen.Next()
		if _, taken := s.orders[orderNumber]; !taken {
			break
		}
	}

	order := submittedFromDraft(draft, s.nextID, orderNumber, time.Now().UTC())
	s.nextID++
	s.orders[orderNumber] = order

	return &order, nil
}

// GetOrderByNumber implements OrderStore. Absence is reported through the
// found flag, not an error.
func (s *MemoryOrderStore) GetOrderByNumber(ctx context.Context, orderNumber string) (*preorder.SubmittedOrder, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderNumber]
	if !ok {
		return nil, false, nil
	}
	return &order, true, nil
}

func submittedFromDraft(draft preorder.OrderDraft, id int64, orderNumber string, orderDate time.Time) preorder.SubmittedOrder {
	items := make([]preorder.CartLine, len(draft.Items))
	copy(items, draft.Items)

	return preorder.SubmittedOrder{
		ID:                  id,
		OrderNumber:         orderNumber,
		OrderDate:           orderDate,
		Name:                draft.Contact.Name,
		Email:               draft.Contact.Email,
		Phone:               draft.Contact.Phone,
		OrderType:           draft.Contact.OrderType,
		Address:             draft.Contact.Address,
		PickupTime:          draft.Contact.RequestedTime,
		DietaryRestrictions: draft.Contact.DietaryRestrictions,
		SpecialInstructions: draft.Contact.SpecialInstructions,
		Items:               items,
		Total:               draft.Total,
		EstimatedTime:       draft.EstimatedReadyTime(),
	}
}
