package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"weddingapi/pkg/requestcontext"
)

type stubValidator struct {
	subject string
	err     error
	gotRaw  string
}

func (s *stubValidator) ValidateAdmin(token string) (string, error) {
	s.gotRaw = token
	return s.subject, s.err
}

func TestRequireAdmin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seenSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject = requestcontext.AdminSubject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("nil validator passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(nil, logger)(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAdmin(&stubValidator{subject: "coordinator"}, logger)(next).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Missing or invalid Authorization header","code":"unauthorized"}`, w.Body.String())
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		RequireAdmin(&stubValidator{err: errors.New("signature invalid")}, logger)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "signature invalid")
	})

	t.Run("valid token sets subject", func(t *testing.T) {
		v := &stubValidator{subject: "coordinator"}
		req := httptest.NewRequest(http.MethodPut, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		RequireAdmin(v, logger)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "good-token", v.gotRaw)
		assert.Equal(t, "coordinator", seenSubject)
	})
}
