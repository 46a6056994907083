// Command sponsor-script-mock serves an in-memory copy of the principal
// sponsor spreadsheet script for local development. Point
// PRINCIPAL_SPONSOR_SCRIPT_URL at it.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"weddingapi/internal/platform/logger"
	"weddingapi/internal/sponsor/fallback"
	"weddingapi/internal/sponsor/scriptmock"
)

const defaultPort = "8081"

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))
	port := getEnv("PORT", defaultPort)
	latency := time.Duration(getEnvInt("LATENCY_MS", 0)) * time.Millisecond

	ds, err := fallback.LoadEmbedded()
	if err != nil {
		log.Error("load seed data", "error", err)
		os.Exit(1)
	}
	store := scriptmock.New(ds.Records()...)

	var handler http.Handler = store
	if latency > 0 {
		handler = withLatency(store, latency)
	}

	log.Info("mock principal sponsor script starting",
		"port", port,
		"rows", len(store.Rows()),
		"latency_ms", latency.Milliseconds(),
	)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("mock server error", "error", err)
		os.Exit(1)
	}
}

func withLatency(next http.Handler, d time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
		return def
	}
	return n
}
