package preorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	calls  int
	fail   error
	nextID int64
	hook   func(ctx context.Context) error
}

func (f *fakeCreator) CreateOrder(ctx context.Context, draft OrderDraft) (*SubmittedOrder, error) {
	f.calls++
	if f.hook != nil {
		if err := f.hook(ctx); err != nil {
			return nil, err
		}
	}
	if f.fail != nil {
		return nil, f.fail
	}

	f.nextID++
	return &SubmittedOrder{
		ID:          f.nextID,
		OrderNumber: "VEG-123456",
		OrderDate:   time.Now(),
		Name:        draft.Contact.Name,
		Email:       draft.Contact.Email,
		OrderType:   draft.Contact.OrderType,
		PickupTime:  draft.Contact.RequestedTime,
		Items:       draft.Items,
		Total:       draft.Total,
	}, nil
}

func readyWorkflow(t *testing.T, creator OrderCreator, now time.Time) *Workflow {
	t.Helper()

	wf := NewWorkflow(creator, WithClock(func() time.Time { return now }))
	wf.SetName("Jane Doe")
	wf.SetEmail("jane@example.com")
	wf.SetPhone("5551234567")
	wf.SetOrderType(OrderTypePickup)
	wf.SetRequestedTime(now.Add(time.Hour))

	return wf
}

func TestWorkflowHappyPath(t *testing.T) {
	// Arrange
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	creator := &fakeCreator{}
	wf := readyWorkflow(t, creator, now)

	// Act / Assert: walk the whole wizard forward
	assert.Equal(t, StepContactInfo, wf.Step())
	require.NoError(t, wf.ContinueToMenu())
	assert.Equal(t, StepMenuSelection, wf.Step())

	wf.SelectItem(buddhaBowl)
	wf.SelectItem(buddhaBowl)
	wf.SelectItem(risotto)
	assert.Equal(t, int64(4697), wf.Total())

	require.NoError(t, wf.ContinueToReview())
	assert.Equal(t, StepReview, wf.Step())

	order, err := wf.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, wf.Step())
	assert.Regexp(t, `^VEG-\d{6}$`, order.OrderNumber)
	assert.Equal(t, int64(4697), order.Total)
	assert.Same(t, order, wf.ConfirmedOrder())
	assert.Equal(t, 1, creator.calls)
}

func TestContactStepBlocksOnInvalidDetails(t *testing.T) {
	// Arrange
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	wf := readyWorkflow(t, &fakeCreator{}, now)
	wf.SetOrderType(OrderTypeDelivery)
	wf.SetAddress("")

	// Act
	err := wf.ContinueToMenu()

	// Assert: blocked with an address-specific error, no state change
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "address")
	assert.Equal(t, StepContactInfo, wf.Step())
}

func TestMenuStepBlocksOnEmptyCart(t *testing.T) {
	// Arrange
	now := time.Now()
	wf := readyWorkflow(t, &fakeCreator{}, now)
	require.NoError(t, wf.ContinueToMenu())

	// Act
	err := wf.ContinueToReview()

	// Assert
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StepMenuSelection, wf.Step())
}

func TestBackNavigationNeverValidates(t *testing.T) {
	// Arrange
	now := time.Now()
	wf := readyWorkflow(t, &fakeCreator{}, now)
	require.NoError(t, wf.ContinueToMenu())
	wf.SelectItem(buddhaBowl)
	require.NoError(t, wf.ContinueToReview())

	// Act / Assert: back from review, then back from menu, even after the
	// contact details were made invalid in the meantime
	require.NoError(t, wf.BackToMenu())
	wf.SetEmail("broken")
	require.NoError(t, wf.BackToContact())
	assert.Equal(t, StepContactInfo, wf.Step())
}

func TestSkippingStatesIsRejected(t *testing.T) {
	tests := []struct {
		name string
		act  func(wf *Workflow) error
	}{
		{name: "review from contact info", act: func(wf *Workflow) error { return wf.ContinueToReview() }},
		{name: "submit from contact info", act: func(wf *Workflow) error {
			_, err := wf.Submit(context.Background())
			return err
		}},
		{name: "reset from contact info", act: func(wf *Workflow) error { return wf.Reset() }},
		{name: "back to menu from contact info", act: func(wf *Workflow) error { return wf.BackToMenu() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			wf := readyWorkflow(t, &fakeCreator{}, time.Now())

			// Act
			err := tt.act(wf)

			// Assert
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestSubmitRejectsStaleRequestedTime(t *testing.T) {
	// Arrange: the requested time was fine when entered but is in the past
	// by the time the user submits
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	clock := now
	creator := &fakeCreator{}
	wf := NewWorkflow(creator, WithClock(func() time.Time { return clock }))
	wf.SetName("Jane Doe")
	wf.SetEmail("jane@example.com")
	wf.SetPhone("5551234567")
	wf.SetRequestedTime(now.Add(10 * time.Minute))
	require.NoError(t, wf.ContinueToMenu())
	wf.SelectItem(buddhaBowl)
	require.NoError(t, wf.ContinueToReview())

	clock = now.Add(time.Hour)

	// Act
	_, err := wf.Submit(context.Background())

	// Assert: rejected before any network call
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "pickupTime")
	assert.Zero(t, creator.calls)
	assert.Equal(t, StepReview, wf.Step())
}

func TestSubmitBlocksWhileInFlight(t *testing.T) {
	// Arrange: the creator re-enters Submit while the first call is pending
	now := time.Now()
	creator := &fakeCreator{}
	wf := readyWorkflow(t, creator, now)

	var reentrantErr error
	creator.hook = func(ctx context.Context) error {
		_, reentrantErr = wf.Submit(ctx)
		return nil
	}

	require.NoError(t, wf.ContinueToMenu())
	wf.SelectItem(buddhaBowl)
	require.NoError(t, wf.ContinueToReview())

	// Act
	_, err := wf.Submit(context.Background())

	// Assert
	require.NoError(t, err)
	assert.ErrorIs(t, reentrantErr, ErrSubmissionInFlight)
	assert.Equal(t, 1, creator.calls)
}

func TestSubmitFailureKeepsDraftForRetry(t *testing.T) {
	// Arrange
	now := time.Now()
	creator := &fakeCreator{fail: errors.New("connection refused")}
	wf := readyWorkflow(t, creator, now)
	require.NoError(t, wf.ContinueToMenu())
	wf.SelectItem(buddhaBowl)
	wf.SelectItem(risotto)
	require.NoError(t, wf.ContinueToReview())

	// Act
	_, err := wf.Submit(context.Background())

	// Assert: still in review with the cart intact
	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, StepReview, wf.Step())
	assert.Len(t, wf.Lines(), 2)
	assert.Equal(t, int64(1499+1699), wf.Total())

	// Act: retry succeeds
	creator.fail = nil
	order, err := wf.Submit(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, wf.Step())
	assert.Equal(t, int64(1499+1699), order.Total)
}

func TestResetClearsEverything(t *testing.T) {
	// Arrange
	now := time.Now()
	wf := readyWorkflow(t, &fakeCreator{}, now)
	wf.ToggleDietaryRestriction("vegan")
	require.NoError(t, wf.ContinueToMenu())
	wf.SelectItem(buddhaBowl)
	require.NoError(t, wf.ContinueToReview())
	_, err := wf.Submit(context.Background())
	require.NoError(t, err)

	// Act
	require.NoError(t, wf.Reset())

	// Assert
	assert.Equal(t, StepContactInfo, wf.Step())
	assert.Nil(t, wf.ConfirmedOrder())
	assert.Empty(t, wf.Lines())
	assert.Zero(t, wf.Total())
	contact := wf.Contact()
	assert.Empty(t, contact.Name)
	assert.Empty(t, contact.DietaryRestrictions)
	assert.Equal(t, OrderTypePickup, contact.OrderType)
}

func TestEstimatedReadyTime(t *testing.T) {
	requested := time.Date(2026, time.March, 14, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		orderType OrderType
		want      time.Time
	}{
		{name: "pickup adds twenty minutes", orderType: OrderTypePickup, want: requested.Add(20 * time.Minute)},
		{name: "delivery adds forty five minutes", orderType: OrderTypeDelivery, want: requested.Add(45 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			wf := NewWorkflow(&fakeCreator{})
			wf.SetOrderType(tt.orderType)
			wf.SetRequestedTime(requested)

			// Act / Assert
			assert.Equal(t, tt.want, wf.EstimatedReadyTime())
		})
	}
}
