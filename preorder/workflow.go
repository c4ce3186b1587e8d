package preorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("preorder")

// Step is one of the four wizard states.
type Step int

const (
	StepContactInfo Step = iota
	StepMenuSelection
	StepReview
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepContactInfo:
		return "contact_info"
	case StepMenuSelection:
		return "menu_selection"
	case StepReview:
		return "review"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// OrderCreator is the persistence collaborator the workflow submits through.
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (*SubmittedOrder, error)
}

// Workflow is the four-state pre-order wizard:
//
//	ContactInfo -> MenuSelection -> Review -> Confirmed
//
// Navigation is linear, forward transitions are guarded, and Confirmed is
// terminal until Reset. A Workflow is owned by a single session and is not
// safe for concurrent use.
type Workflow struct {
	SessionID uuid.UUID

	creator    OrderCreator
	now        func() time.Time
	step       Step
	contact    ContactDetails
	cart       Cart
	submitting bool
	confirmed  *SubmittedOrder
}

type WorkflowOption func(*Workflow)

// WithClock overrides the time source used by validation.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) {
		w.now = now
	}
}

func NewWorkflow(creator OrderCreator, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		SessionID: uuid.New(),
		creator:   creator,
		now:       time.Now,
		step:      StepContactInfo,
		contact:   ContactDetails{OrderType: OrderTypePickup},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Step() Step {
	return w.step
}

// Contact returns a copy of the current contact details.
func (w *Workflow) Contact() ContactDetails {
	return w.contact
}

func (w *Workflow) SetName(name string)             { w.contact.Name = name }
func (w *Workflow) SetEmail(email string)           { w.contact.Email = email }
func (w *Workflow) SetPhone(phone string)           { w.contact.Phone = phone }
func (w *Workflow) SetAddress(address string)       { w.contact.Address = address }
func (w *Workflow) SetOrderType(t OrderType)        { w.contact.OrderType = t }
func (w *Workflow) SetRequestedTime(t time.Time)    { w.contact.RequestedTime = t }
func (w *Workflow) SetSpecialInstructions(s string) { w.contact.SpecialInstructions = s }

func (w *Workflow) ToggleDietaryRestriction(restriction string) {
	w.contact.ToggleDietaryRestriction(restriction)
}

func (w *Workflow) SelectItem(item MenuItem) {
	w.cart.SelectItem(item)
}

func (w *Workflow) ChangeQuantity(itemID int64, quantity int) {
	w.cart.ChangeQuantity(itemID, quantity)
}

func (w *Workflow) RemoveItem(itemID int64) {
	w.cart.RemoveItem(itemID)
}

func (w *Workflow) Lines() []CartLine {
	return w.cart.Lines()
}

// Total is the running cart total in cents, recomputed from current lines.
func (w *Workflow) Total() int64 {
	return w.cart.Total()
}

// EstimatedReadyTime is the requested time plus the order-type offset.
func (w *Workflow) EstimatedReadyTime() time.Time {
	draft := OrderDraft{Contact: w.contact}
	return draft.EstimatedReadyTime()
}

// ConfirmedOrder returns the submitted order once the workflow reached
// Confirmed, nil before that.
func (w *Workflow) ConfirmedOrder() *SubmittedOrder {
	return w.confirmed
}

// ContinueToMenu moves ContactInfo -> MenuSelection. The transition is gated
// on contact validation; on failure the workflow stays put and the field
// errors are returned with no side effects.
func (w *Workflow) ContinueToMenu() error {
	if w.step != StepContactInfo {
		return ErrInvalidTransition
	}
	if errs := ValidateContactDetails(w.contact, w.now()); errs != nil {
		return &ValidationError{Fields: errs}
	}
	w.step = StepMenuSelection
	return nil
}

// ContinueToReview moves MenuSelection -> Review, gated on a non-empty cart.
func (w *Workflow) ContinueToReview() error {
	if w.step != StepMenuSelection {
		return ErrInvalidTransition
	}
	if w.cart.Empty() {
		return ErrEmptyCart
	}
	w.step = StepReview
	return nil
}

// BackToContact moves MenuSelection -> ContactInfo. Never validated.
func (w *Workflow) BackToContact() error {
	if w.step != StepMenuSelection {
		return ErrInvalidTransition
	}
	w.step = StepContactInfo
	return nil
}

// BackToMenu moves Review -> MenuSelection. Never validated.
func (w *Workflow) BackToMenu() error {
	if w.step != StepReview {
		return ErrInvalidTransition
	}
	w.step = StepMenuSelection
	return nil
}

// Draft snapshots the current contact details, cart lines and total.
func (w *Workflow) Draft() OrderDraft {
	return OrderDraft{
		Contact: w.contact,
		Items:   w.cart.Lines(),
		Total:   w.cart.Total(),
	}
}

// Submit moves Review -> Confirmed through the order creator. Guards: contact
// details must still validate, the cart must be non-empty and no submission
// may already be in flight. On failure the draft is kept and the workflow
// stays in Review so the user can retry.
func (w *Workflow) Submit(ctx context.Context) (*SubmittedOrder, error) {
	ctx, span := tracer.Start(ctx, "Workflow.Submit")
	defer span.End()

	span.SetAttributes(attribute.String("preorder.session_id", w.SessionID.String()))

	if w.step != StepReview {
		return nil, ErrInvalidTransition
	}
	if w.submitting {
		return nil, ErrSubmissionInFlight
	}
	if errs := ValidateContactDetails(w.contact, w.now()); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}
	if w.cart.Empty() {
		return nil, ErrEmptyCart
	}

	w.submitting = true
	defer func() {
		w.submitting = false
	}()

	draft := w.Draft()

	slog.InfoContext(ctx, "submitting order",
		slog.String("session_id", w.SessionID.String()),
		slog.Int("lines", len(draft.Items)),
		slog.Int64("total", draft.Total),
	)

	order, err := w.creator.CreateOrder(ctx, draft)
	if err != nil {
		slog.ErrorContext(ctx, "order submission failed", slog.Any("err", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "order submission failed")
		return nil, &SubmissionError{Reason: err}
	}

	slog.InfoContext(ctx, "order confirmed",
		slog.String("session_id", w.SessionID.String()),
		slog.String("order_number", order.OrderNumber),
	)

	w.confirmed = order
	w.step = StepConfirmed
	w.contact = ContactDetails{OrderType: OrderTypePickup}
	w.cart.Clear()

	return order, nil
}

// Reset moves Confirmed -> ContactInfo with a cleared draft, ready for a new
// order.
func (w *Workflow) Reset() error {
	if w.step != StepConfirmed {
		return ErrInvalidTransition
	}
	w.step = StepContactInfo
	w.contact = ContactDetails{OrderType: OrderTypePickup}
	w.cart.Clear()
	w.confirmed = nil
	return nil
}
