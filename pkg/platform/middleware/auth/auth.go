// Package auth guards the principal-sponsor write routes with an admin bearer token.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "weddingapi/pkg/domain-errors"
	"weddingapi/pkg/platform/httputil"
	"weddingapi/pkg/requestcontext"
)

// AdminValidator validates a raw bearer token and returns the admin subject.
type AdminValidator interface {
	ValidateAdmin(token string) (subject string, err error)
}

// RequireAdmin returns middleware that rejects requests without a valid admin
// token. A nil validator disables the check, which keeps writes open the way
// the site has always run them when no secret is configured.
func RequireAdmin(validator AdminValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized write - missing token",
					"request_id", requestID,
					"method", r.Method,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}

			subject, err := validator.ValidateAdmin(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized write - invalid token",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithAdminSubject(ctx, subject)))
		})
	}
}
