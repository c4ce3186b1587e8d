package telemetry

import (
	"context"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// InjectContextToNatsMsg copies the active trace context into the message
// headers so consumers can continue the same trace.
func InjectContextToNatsMsg(ctx context.Context, msg *nats.Msg) {
	if msg.Header == nil {
		msg.Header = nats.Header{}
	}
	propagator := otel.GetTextMapPropagator()
	propagator.Inject(ctx, propagation.HeaderCarrier(msg.Header))
}

// GetContextFromNatsMsg extracts trace context from the message headers.
func GetContextFromNatsMsg(ctx context.Context, msg *nats.Msg) context.Context {
	propagator := otel.GetTextMapPropagator()
	return propagator.Extract(ctx, propagation.HeaderCarrier(msg.Header))
}
