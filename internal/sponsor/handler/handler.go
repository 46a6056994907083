package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"weddingapi/internal/sponsor/metrics"
	"weddingapi/internal/sponsor/models"
	"weddingapi/pkg/platform/httputil"
	"weddingapi/pkg/requestcontext"
)

// Path is the single resource path for principal sponsors.
const Path = "/api/principal-sponsor"

// SourceHeader tells the caller whether a list came from the remote store or
// the bundled fallback.
const SourceHeader = "X-Sponsor-Source"

type Service interface {
	List(ctx context.Context) models.ListResult
	Create(ctx context.Context, req *models.CreateRequest) ([]byte, error)
	Update(ctx context.Context, req *models.UpdateRequest) ([]byte, error)
	Delete(ctx context.Context, req *models.DeleteRequest) ([]byte, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Handler)

// WithMetrics counts rejected writes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the sponsor routes. writeMiddleware wraps POST, PUT and
// DELETE only; reads stay public.
func (h *Handler) Register(r chi.Router, writeMiddleware ...func(http.Handler) http.Handler) {
	r.Get(Path, h.HandleList)
	r.Group(func(r chi.Router) {
		r.Use(writeMiddleware...)
		r.Post(Path, h.HandleCreate)
		r.Put(Path, h.HandleUpdate)
		r.Delete(Path, h.HandleDelete)
	})
}

// HandleList implements GET /api/principal-sponsor.
// Output: 200 with a JSON array of {MalePrincipalSponsor, FemalePrincipalSponsor}.
// Remote failures are answered from the fallback dataset, never with an error.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	res := h.service.List(r.Context())

	w.Header().Set(SourceHeader, string(res.Source))
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteRaw(w, http.StatusOK, res.Body)
}

// HandleCreate implements POST /api/principal-sponsor.
// Input: { "MalePrincipalSponsor": "...", "FemalePrincipalSponsor": "..." }
// Output: 201 with the remote store's response body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		h.recordRejected("create")
		return
	}

	body, err := h.service.Create(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "principal sponsor added",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
	)
	httputil.WriteRaw(w, http.StatusCreated, body)
}

// HandleUpdate implements PUT /api/principal-sponsor.
// Input: { "originalName": "...", "MalePrincipalSponsor": "...", "FemalePrincipalSponsor": "..." }
// Output: 200 with the remote store's response body.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		h.recordRejected("update")
		return
	}

	body, err := h.service.Update(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "principal sponsor updated",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
	)
	httputil.WriteRaw(w, http.StatusOK, body)
}

// HandleDelete implements DELETE /api/principal-sponsor.
// Input: { "MalePrincipalSponsor": "..." }
// Output: 200 with the remote store's response body.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.DeleteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		h.recordRejected("delete")
		return
	}

	body, err := h.service.Delete(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "principal sponsor deleted",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
	)
	httputil.WriteRaw(w, http.StatusOK, body)
}

func (h *Handler) recordRejected(op string) {
	if h.metrics != nil {
		h.metrics.IncrementValidationFailure(op)
	}
}
