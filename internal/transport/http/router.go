package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weddingapi/internal/platform/health"
	sponsorhandler "weddingapi/internal/sponsor/handler"
	"weddingapi/pkg/platform/middleware/auth"
	request "weddingapi/pkg/platform/middleware/request"
)

// Dependencies is everything the router mounts. AdminValidator may be nil,
// which leaves the write routes open.
type Dependencies struct {
	Logger           *slog.Logger
	Sponsors         *sponsorhandler.Handler
	Health           *health.Handler
	Gatherer         prometheus.Gatherer
	RequestMetrics   *request.Metrics
	AdminValidator   auth.AdminValidator
	CORSAllowOrigins []string
	RequestTimeout   time.Duration
	MaxBodyBytes     int64
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientIP)
	r.Use(request.Logger(d.Logger))
	r.Use(request.LatencyMiddleware(d.RequestMetrics))
	r.Use(cors.Handler(corsOptions(d.CORSAllowOrigins)))

	d.Health.Register(r)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// Reads are bounded by the remote client timeout and always end in a
	// remote or fallback list, so only writes get the handler timeout.
	r.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(d.MaxBodyBytes))
		r.Use(request.ContentTypeJSON)

		d.Sponsors.Register(r,
			request.Timeout(d.RequestTimeout),
			auth.RequireAdmin(d.AdminValidator, d.Logger),
		)
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{sponsorhandler.SourceHeader, "X-Request-ID"},
		MaxAge:         300,
	}
}
