package middleware

import "context"

// contextKey avoids collisions with other packages' context values.
type contextKey string

const emailKey contextKey = "claim_email"

// WithClaimEmail stores the verified token email on the context.
func WithClaimEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// ClaimEmail extracts the verified token email placed by RequireAuth.
func ClaimEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}
