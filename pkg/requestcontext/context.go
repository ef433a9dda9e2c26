// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; the application reads them.
package requestcontext

import "context"

type actingUserKey struct{}

// WithActingUser returns a context carrying a per-request acting user.
func WithActingUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, actingUserKey{}, user)
}

// ActingUser returns the per-request acting user, or "" if none was set.
func ActingUser(ctx context.Context) string {
	user, _ := ctx.Value(actingUserKey{}).(string)
	return user
}
