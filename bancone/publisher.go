package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/taldoflemis/veggie-delight/preorder"
	"github.com/taldoflemis/veggie-delight/verdura/telemetry"
	"go.opentelemetry.io/otel/codes"
)

const liveOrderChannelSize = 16

// OrderPublisher fans created orders out to interested parties: the SSE live
// feed and, when NATS is enabled, the kitchen consumer.
type OrderPublisher interface {
	PubOrder(ctx context.Context, order preorder.SubmittedOrder) error
	SubLiveOrders(ctx context.Context, flusher http.Flusher) (<-chan preorder.SubmittedOrder, error)
	UnsubLiveOrders(ctx context.Context, flusher http.Flusher) error
}

// GoChannelOrderPublisher is the in-process implementation used when NATS is
// disabled. Slow SSE subscribers are skipped rather than blocking order
// creation.
type GoChannelOrderPublisher struct {
	liveSubscribers map[http.Flusher]chan preorder.SubmittedOrder
	mu              sync.Mutex
}

var _ OrderPublisher = (*GoChannelOrderPublisher)(nil)

func NewGoChannelOrderPublisher() *GoChannelOrderPublisher {
	return &GoChannelOrderPublisher{
		liveSubscribers: make(map[http.Flusher]chan preorder.SubmittedOrder),
	}
}

// PubOrder implements OrderPublisher.
func (g *GoChannelOrderPublisher) PubOrder(ctx context.Context, order preorder.SubmittedOrder) error {
	ctx, span := tracer.Start(ctx, "GoChannelOrderPublisher.PubOrder")
	defer span.End()

	slog.InfoContext(ctx, "publishing order", slog.String("order_number", order.OrderNumber))

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, subChan := range g.liveSubscribers {
		select {
		case subChan <- order:
		default:
			slog.WarnContext(ctx, "dropping live order for slow subscriber",
				slog.String("order_number", order.OrderNumber))
		}
	}

	return nil
}

// SubLiveOrders implements OrderPublisher for SSE.
func (g *GoChannelOrderPublisher) SubLiveOrders(ctx context.Context, flusher http.Flusher) (<-chan preorder.SubmittedOrder, error) {
	ctx, span := tracer.Start(ctx, "GoChannelOrderPublisher.SubLiveOrders")
	defer span.End()

	slog.InfoContext(ctx, "subscribing to live orders (SSE)")

	ch := make(chan preorder.SubmittedOrder, liveOrderChannelSize)
	g.mu.Lock()
	g.liveSubscribers[flusher] = ch
	g.mu.Unlock()
	return ch, nil
}

// UnsubLiveOrders implements OrderPublisher for SSE.
func (g *GoChannelOrderPublisher) UnsubLiveOrders(ctx context.Context, flusher http.Flusher) error {
	ctx, span := tracer.Start(ctx, "GoChannelOrderPublisher.UnsubLiveOrders")
	defer span.End()

	slog.InfoContext(ctx, "unsubscribing from live orders (SSE)")

	g.mu.Lock()
	delete(g.liveSubscribers, flusher)
	g.mu.Unlock()
	return nil
}

// NATSOrderPublisher publishes created orders on a NATS subject with trace
// context in the headers, and serves the SSE feed from the same subject.
type NATSOrderPublisher struct {
	nc      *nats.Conn
	subject string
	mu      sync.Mutex
	subs    map[http.Flusher]*nats.Subscription
}

var _ OrderPublisher = (*NATSOrderPublisher)(nil)

func NewNATSOrderPublisher(nc *nats.Conn, subject string) *NATSOrderPublisher {
	return &NATSOrderPublisher{
		nc:      nc,
		subject: subject,
		subs:    make(map[http.Flusher]*nats.Subscription),
	}
}

// PubOrder implements OrderPublisher.
func (n *NATSOrderPublisher) PubOrder(ctx context.Context, order preorder.SubmittedOrder) error {
	msg := &nats.Msg{
		Subject: n.subject,
		Header:  nats.Header{},
	}
	telemetry.InjectContextToNatsMsg(ctx, msg)

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	msg.Data = data
	return n.nc.PublishMsg(msg)
}

// SubLiveOrders implements OrderPublisher.
func (n *NATSOrderPublisher) SubLiveOrders(ctx context.Context, flusher http.Flusher) (<-chan preorder.SubmittedOrder, error) {
	ctx, span := tracer.Start(ctx, "NATSOrderPublisher.SubLiveOrders")
	defer span.End()

	orderCh := make(chan preorder.SubmittedOrder, liveOrderChannelSize)
	sub, err := n.nc.Subscribe(n.subject, func(msg *nats.Msg) {
		msgCtx := telemetry.GetContextFromNatsMsg(ctx, msg)

		var order preorder.SubmittedOrder
		if err := json.Unmarshal(msg.Data, &order); err != nil {
			slog.ErrorContext(msgCtx, "failed to unmarshal order from NATS message", slog.Any("err", err))
			return
		}

		select {
		case orderCh <- order:
		default:
			slog.WarnContext(msgCtx, "dropping live order for slow subscriber",
				slog.String("order_number", order.OrderNumber))
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to NATS subject",
			slog.String("subject", n.subject), slog.Any("err", err))
		span.SetStatus(codes.Error, "failed to subscribe to NATS subject")
		span.RecordError(err)
		return nil, err
	}

	n.mu.Lock()
	n.subs[flusher] = sub
	n.mu.Unlock()

	return orderCh, nil
}

// UnsubLiveOrders implements OrderPublisher.
func (n *NATSOrderPublisher) UnsubLiveOrders(ctx context.Context, flusher http.Flusher) error {
	ctx, span := tracer.Start(ctx, "NATSOrderPublisher.UnsubLiveOrders")
	defer span.End()

	slog.InfoContext(ctx, "unsubscribing from live orders")

	n.mu.Lock()
	defer n.mu.Unlock()

	sub, ok := n.subs[flusher]
	if !ok {
		slog.WarnContext(ctx, "no subscription found for SSE client")
		return nil
	}

	sub.Unsubscribe()
	delete(n.subs, flusher)

	return nil
}
