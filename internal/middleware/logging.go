package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, peer address and duration.
// Server-side failures are logged at error level, rejected requests at warn.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				slog.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			msg := err.Error()
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				msg = connectErr.Message()
			}
			attrs = append(attrs, slog.String("code", code.String()), slog.String("error", msg))
			slog.LogAttrs(ctx, levelFor(code), "RPC error", attrs...)

			return resp, err
		}
	}
}

func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
