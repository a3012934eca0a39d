package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/salestax/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// TerminalIDKey is the context key for the authenticated terminal ID.
const TerminalIDKey contextKey = "terminal_id"

// GetTerminalID extracts the terminal ID from the context.
// Returns empty string if not found.
func GetTerminalID(ctx context.Context) string {
	id, _ := ctx.Value(TerminalIDKey).(string)
	return id
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth returns an interceptor that rejects calls without a valid
// terminal token and stores the terminal ID in the request context.
func RequireAuth(tokens *auth.TokenManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, TerminalIDKey, claims.TerminalID)
			return next(ctx, req)
		}
	}
}

// OptionalAuth returns an interceptor that records the terminal ID when a
// valid token is present but lets anonymous calls through.
func OptionalAuth(tokens *auth.TokenManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// Invalid tokens are ignored
				if claims, err := tokens.Validate(tokenString); err == nil {
					ctx = context.WithValue(ctx, TerminalIDKey, claims.TerminalID)
				}
			}
			return next(ctx, req)
		}
	}
}
