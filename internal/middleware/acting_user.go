package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/checklists/pkg/requestcontext"
)

// ActingUserHeader lets a client act as a roster member for one call without
// changing the stored preference.
const ActingUserHeader = "X-Acting-User"

// GetActingUser extracts the per-request acting user from the context.
// Returns empty string if not found.
func GetActingUser(ctx context.Context) string {
	return requestcontext.ActingUser(ctx)
}

// ActingUser returns an interceptor that reads ActingUserHeader, if present,
// and puts it on the request context. Requests without the header fall back
// to the stored preference. The value is not checked against the roster: an
// unknown user simply gets a read-only view.
func ActingUser() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if user := strings.TrimSpace(req.Header().Get(ActingUserHeader)); user != "" {
				ctx = requestcontext.WithActingUser(ctx, user)
			}
			return next(ctx, req)
		}
	}
}
