// Package requestcontext stores request-scoped values shared by middleware,
// handlers and services.
package requestcontext

import "context"

type (
	requestIDKey    struct{}
	clientIPKey     struct{}
	adminSubjectKey struct{}
)

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// WithAdminSubject records the subject of a validated admin token.
func WithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey{}, subject)
}

// AdminSubject returns the authenticated admin subject, or "" for anonymous requests.
func AdminSubject(ctx context.Context) string {
	if s, ok := ctx.Value(adminSubjectKey{}).(string); ok {
		return s
	}
	return ""
}
