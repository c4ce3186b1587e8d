package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/taldoflemis/veggie-delight/preorder"
	"github.com/taldoflemis/veggie-delight/verdura/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("cucina")
	meter  = otel.Meter("cucina")
)

// ticketWorker consumes created orders from NATS and works each ticket. All
// workers share a queue group so every order lands on exactly one kitchen.
type ticketWorker struct {
	nc       *nats.Conn
	settings CucinaSettings

	ticketCounter metric.Int64Counter
	prepHistogram metric.Float64Histogram
	itemsCounter  metric.Int64Counter
}

func newTicketWorker(nc *nats.Conn, settings CucinaSettings) (*ticketWorker, error) {
	ctx := context.Background()

	ticketCounter, err := meter.Int64Counter(
		"cucina.tickets.count",
		metric.WithDescription("Number of order tickets the kitchen has worked"),
		metric.WithUnit("{ticket}"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create ticket counter", slog.Any("err", err))
		return nil, err
	}

	prepHistogram, err := meter.Float64Histogram(
		"cucina.prep.duration",
		metric.WithDescription("Duration of ticket preparation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create prep histogram", slog.Any("err", err))
		return nil, err
	}

	itemsCounter, err := meter.Int64Counter(
		"cucina.items.count",
		metric.WithDescription("Number of individual items prepared"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create items counter", slog.Any("err", err))
		return nil, err
	}

	return &ticketWorker{
		nc:            nc,
		settings:      settings,
		ticketCounter: ticketCounter,
		prepHistogram: prepHistogram,
		itemsCounter:  itemsCounter,
	}, nil
}

// Listen consumes the subject until the context is cancelled.
func (w *ticketWorker) Listen(ctx context.Context) error {
	msgCh := make(chan *nats.Msg, 64)
	sub, err := w.nc.ChanQueueSubscribe(w.settings.Subject, w.settings.Queue, msgCh)
	if err != nil {
		slog.ErrorContext(ctx, "failed to subscribe to orders subject",
			slog.String("subject", w.settings.Subject), slog.Any("err", err))
		return err
	}
	defer sub.Unsubscribe()

	slog.InfoContext(ctx, "listening for order tickets",
		slog.String("subject", w.settings.Subject),
		slog.String("queue", w.settings.Queue),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgCh:
			w.workTicket(ctx, msg)
		}
	}
}

func (w *ticketWorker) workTicket(ctx context.Context, msg *nats.Msg) {
	ctx = telemetry.GetContextFromNatsMsg(ctx, msg)
	ctx, span := tracer.Start(ctx, "ticketWorker.workTicket")
	defer span.End()

	var order preorder.SubmittedOrder
	if err := json.Unmarshal(msg.Data, &order); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal order from NATS message", slog.Any("err", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("order.number", order.OrderNumber),
		attribute.String("order.type", string(order.OrderType)),
		attribute.Int("order.lines", len(order.Items)),
		attribute.Int64("order.total", order.Total),
	)

	var itemCount int
	for _, line := range order.Items {
		itemCount += line.Quantity
		slog.InfoContext(ctx, "ticket line",
			slog.String("order_number", order.OrderNumber),
			slog.String("item", line.Name),
			slog.Int("quantity", line.Quantity),
		)
	}

	prepDuration := time.Duration(itemCount*w.settings.PrepSecondsPerItem) * time.Second
	slog.InfoContext(ctx, "preparing ticket",
		slog.String("order_number", order.OrderNumber),
		slog.Duration("prep_duration", prepDuration),
	)
	time.Sleep(prepDuration)

	w.ticketCounter.Add(ctx, 1)
	w.itemsCounter.Add(ctx, int64(itemCount))
	w.prepHistogram.Record(ctx, prepDuration.Seconds())

	slog.InfoContext(ctx, "ticket ready",
		slog.String("order_number", order.OrderNumber),
		slog.String("order_type", string(order.OrderType)),
	)
}
