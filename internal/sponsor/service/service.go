// Package service orchestrates the principal-sponsor proxy: reads go to the
// remote store behind a circuit breaker and fall back to the bundled dataset,
// writes are forwarded once and fail loudly.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"weddingapi/internal/sponsor/fallback"
	"weddingapi/internal/sponsor/metrics"
	"weddingapi/internal/sponsor/models"
	"weddingapi/internal/sponsor/remote"
	"weddingapi/internal/sponsor/tracer"
	dErrors "weddingapi/pkg/domain-errors"
	"weddingapi/pkg/platform/circuit"
	"weddingapi/pkg/requestcontext"
)

// Public messages for failed writes. Remote details are only logged.
const (
	MsgCreateFailed = "Failed to add principal sponsor"
	MsgUpdateFailed = "Failed to update principal sponsor"
	MsgDeleteFailed = "Failed to delete principal sponsor"
)

// Remote is the subset of the remote store client the service needs.
type Remote interface {
	List(ctx context.Context) ([]byte, error)
	Create(ctx context.Context, payload any) ([]byte, error)
	Update(ctx context.Context, payload any) ([]byte, error)
	Delete(ctx context.Context, payload any) ([]byte, error)
}

// Service implements the sponsor operations. It is safe for concurrent use;
// the only shared mutable state is the breaker.
type Service struct {
	remote       Remote
	dataset      *fallback.Dataset
	fallbackBody []byte
	breaker      *circuit.Breaker
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
	logger       *slog.Logger
}

type Option func(*Service)

func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a Service. The fallback response is encoded once here.
func New(r Remote, dataset *fallback.Dataset, opts ...Option) (*Service, error) {
	if r == nil {
		return nil, errors.New("remote store client is required")
	}
	if dataset == nil {
		return nil, errors.New("fallback dataset is required")
	}

	body, err := json.Marshal(dataset.Records())
	if err != nil {
		return nil, fmt.Errorf("encode fallback dataset: %w", err)
	}

	s := &Service{
		remote:       r,
		dataset:      dataset,
		fallbackBody: body,
		breaker:      circuit.New("principal_sponsor_remote"),
		tracer:       tracer.NewNoop(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns the remote list, or the fallback list when the remote call
// fails or the breaker is open. It never returns an error.
func (s *Service) List(ctx context.Context) models.ListResult {
	ctx, span := s.tracer.Start(ctx, tracer.SpanList)
	defer span.End(nil)

	if !s.breaker.Allow() {
		span.SetAttributes(tracer.String(tracer.AttrBreakerState, s.breaker.State().String()))
		return s.serveFallback(ctx, span, remote.CategoryCircuitOpen, nil)
	}

	start := time.Now()
	body, err := s.remote.List(ctx)
	s.observeRemote(remote.OperationList, err, start)

	if err != nil {
		if change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "principal sponsor read breaker opened",
				"breaker", s.breaker.Name(),
			)
			span.AddEvent(tracer.EventBreakerOpened)
		}
		s.syncBreakerGauge()
		return s.serveFallback(ctx, span, remote.CategoryOf(err), err)
	}

	if change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "principal sponsor read breaker closed",
			"breaker", s.breaker.Name(),
		)
		span.AddEvent(tracer.EventBreakerClosed)
	}
	s.syncBreakerGauge()

	span.SetAttributes(tracer.String(tracer.AttrSource, string(models.SourceRemote)))
	return models.ListResult{Body: body, Source: models.SourceRemote}
}

func (s *Service) serveFallback(ctx context.Context, span tracer.Span, reason remote.Category, cause error) models.ListResult {
	attrs := []any{
		"reason", string(reason),
		"records", s.dataset.Len(),
		"request_id", requestcontext.RequestID(ctx),
	}
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	s.logger.WarnContext(ctx, "serving principal sponsor fallback", attrs...)

	if s.metrics != nil {
		s.metrics.IncrementFallbackServed(string(reason))
	}
	span.SetAttributes(
		tracer.String(tracer.AttrSource, string(models.SourceFallback)),
		tracer.String(tracer.AttrFallbackReason, string(reason)),
	)
	span.AddEvent(tracer.EventFallbackServed, tracer.Int(tracer.AttrRecordCount, s.dataset.Len()))

	body := make([]byte, len(s.fallbackBody))
	copy(body, s.fallbackBody)
	return models.ListResult{Body: body, Source: models.SourceFallback, Reason: string(reason)}
}

// Create forwards a validated, normalized create request.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) ([]byte, error) {
	return s.write(ctx, tracer.SpanCreate, remote.OperationCreate, MsgCreateFailed,
		func(ctx context.Context) ([]byte, error) {
			return s.remote.Create(ctx, req.Payload())
		})
}

// Update forwards a validated, normalized update request.
func (s *Service) Update(ctx context.Context, req *models.UpdateRequest) ([]byte, error) {
	return s.write(ctx, tracer.SpanUpdate, remote.OperationUpdate, MsgUpdateFailed,
		func(ctx context.Context) ([]byte, error) {
			return s.remote.Update(ctx, req.Payload())
		})
}

// Delete forwards a validated, normalized delete request.
func (s *Service) Delete(ctx context.Context, req *models.DeleteRequest) ([]byte, error) {
	return s.write(ctx, tracer.SpanDelete, remote.OperationDelete, MsgDeleteFailed,
		func(ctx context.Context) ([]byte, error) {
			return s.remote.Delete(ctx, req.Payload())
		})
}

func (s *Service) write(ctx context.Context, spanName, op, publicMsg string, call func(context.Context) ([]byte, error)) (body []byte, err error) {
	ctx, span := s.tracer.Start(ctx, spanName)
	defer func() { span.End(err) }()

	start := time.Now()
	body, err = call(ctx)
	s.observeRemote(op, err, start)
	if err != nil {
		s.logger.ErrorContext(ctx, "principal sponsor write failed",
			"operation", op,
			"category", string(remote.CategoryOf(err)),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		span.SetAttributes(tracer.String(tracer.AttrRemoteCategory, string(remote.CategoryOf(err))))
		return nil, dErrors.Upstream(publicMsg, err)
	}
	return body, nil
}

func (s *Service) observeRemote(op string, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveRemoteCall(op, err, time.Since(start).Seconds())
}

func (s *Service) syncBreakerGauge() {
	if s.metrics == nil {
		return
	}
	s.metrics.SetBreakerOpen(s.breaker.IsOpen())
}

// CheckRemote reports the read path as unhealthy while the breaker is open.
// It does not call the remote store.
func (s *Service) CheckRemote(_ context.Context) error {
	if s.breaker.IsOpen() {
		return fmt.Errorf("circuit %s is %s", s.breaker.Name(), s.breaker.State())
	}
	return nil
}

// CheckFallback reports an empty fallback dataset as unhealthy.
func (s *Service) CheckFallback(_ context.Context) error {
	if s.dataset.Len() == 0 {
		return errors.New("fallback dataset is empty")
	}
	return nil
}
