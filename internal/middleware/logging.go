package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/salestax/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records its duration in m. m may be nil.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			terminalID := GetTerminalID(ctx) // empty if pre-auth

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			duration := elapsed.Milliseconds()
			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"terminal_id", terminalID,
						"duration_ms", duration,
					)
				} else {
					code = connect.CodeUnknown.String()
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"terminal_id", terminalID,
						"duration_ms", duration,
					)
				}
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"terminal_id", terminalID,
					"duration_ms", duration,
				)
			}
			m.ObserveRPC(procedure, code, elapsed)

			return resp, err
		}
	}
}
