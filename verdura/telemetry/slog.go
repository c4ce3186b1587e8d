package telemetry

import (
	"context"
	"fmt"
	"log/slog"
)

// errorFormattingMiddleware expands "err" attributes into a group carrying the
// error message and its Go type, so downstream handlers index them uniformly.
func errorFormattingMiddleware(
	ctx context.Context,
	record slog.Record,
	next func(context.Context, slog.Record) error,
) error {
	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key != "err" && attr.Key != "error" {
			out.AddAttrs(attr)
			return true
		}

		err, ok := attr.Value.Any().(error)
		if !ok {
			out.AddAttrs(attr)
			return true
		}

		out.AddAttrs(slog.Group("error",
			slog.String("message", err.Error()),
			slog.String("type", fmt.Sprintf("%T", err)),
		))
		return true
	})

	return next(ctx, out)
}
