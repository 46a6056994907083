package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"weddingapi/internal/admintoken"
	"weddingapi/internal/platform/config"
	"weddingapi/internal/platform/health"
	"weddingapi/internal/sponsor/fallback"
	sponsorhandler "weddingapi/internal/sponsor/handler"
	"weddingapi/internal/sponsor/metrics"
	"weddingapi/internal/sponsor/remote"
	"weddingapi/internal/sponsor/service"
	"weddingapi/internal/sponsor/tracer"
	httptransport "weddingapi/internal/transport/http"
	"weddingapi/pkg/platform/circuit"
	"weddingapi/pkg/platform/middleware/auth"
	request "weddingapi/pkg/platform/middleware/request"
)

// newRouter builds the sponsor stack from cfg and registers its collectors on reg.
func newRouter(cfg config.Server, log *slog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	dataset, err := fallback.LoadFile(cfg.FallbackDataset)
	if err != nil {
		return nil, fmt.Errorf("load fallback dataset: %w", err)
	}

	sponsorMetrics := metrics.New(reg)
	client := remote.New(remote.Config{
		URL:     cfg.ScriptURL,
		Timeout: cfg.RemoteTimeout,
	})
	breaker := circuit.New("principal_sponsor_remote",
		circuit.WithFailureThreshold(cfg.BreakerFailureThreshold),
		circuit.WithCooldown(cfg.BreakerCooldown),
	)

	svc, err := service.New(client, dataset,
		service.WithBreaker(breaker),
		service.WithMetrics(sponsorMetrics),
		service.WithTracer(tracer.NewOTel()),
		service.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("principal_sponsor_remote", svc.CheckRemote)
	healthHandler.RegisterCheck("fallback_dataset", svc.CheckFallback)

	var adminValidator auth.AdminValidator
	if cfg.AdminAuthEnabled() {
		adminValidator = admintoken.New(cfg.AdminJWTSecret)
	}

	return httptransport.NewRouter(httptransport.Dependencies{
		Logger:           log,
		Sponsors:         sponsorhandler.New(svc, log, sponsorhandler.WithMetrics(sponsorMetrics)),
		Health:           healthHandler,
		Gatherer:         reg,
		RequestMetrics:   request.NewMetrics(reg),
		AdminValidator:   adminValidator,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		RequestTimeout:   cfg.RequestTimeout,
		MaxBodyBytes:     cfg.MaxBodyBytes,
	}), nil
}
