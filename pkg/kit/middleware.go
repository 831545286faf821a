package kit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// RequestID assigns a fresh request id unless the context already carries one.
func RequestID() Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			if GetRequestID(ctx) == "" {
				ctx = WithRequestID(ctx, uuid.NewString())
			}
			return next(ctx, request)
		}
	}
}

// Logging logs every call of the named endpoint with its duration and outcome.
func Logging(logger *slog.Logger, name string) Middleware {
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"endpoint", name,
				"transport", GetTransport(ctx),
				"request_id", GetRequestID(ctx),
				"duration", time.Since(start),
			}
			if err != nil {
				logger.WarnContext(ctx, "endpoint failed", append(attrs, "error", err)...)
			} else {
				logger.DebugContext(ctx, "endpoint served", attrs...)
			}
			return resp, err
		}
	}
}
