package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string

	ScriptURL       string
	RemoteTimeout   time.Duration
	RequestTimeout  time.Duration
	MaxBodyBytes    int64
	FallbackDataset string

	BreakerFailureThreshold int
	BreakerCooldown         time.Duration

	AdminJWTSecret   string
	CORSAllowOrigins []string
}

// Defaults.
const (
	DefaultAddr                    = ":8080"
	DefaultEnvironment             = "development"
	DefaultLogLevel                = "info"
	DefaultRemoteTimeout           = 10 * time.Second
	DefaultRequestTimeout          = 30 * time.Second
	DefaultMaxBodyBytes      int64 = 64 * 1024
	DefaultBreakerThreshold        = 5
	DefaultBreakerCooldown         = 30 * time.Second
)

// FromEnv loads an optional .env file, then builds a Server config from the
// process environment. Variables already set in the environment win over .env.
func FromEnv() (Server, error) {
	_ = godotenv.Load()
	return Load(os.Getenv)
}

// Load builds a Server config from getenv. Parse errors are collected rather
// than silently replaced with defaults.
func Load(getenv func(string) string) (Server, error) {
	p := parser{getenv: getenv}

	cfg := Server{
		Addr:            p.str("WEDDINGAPI_ADDR", DefaultAddr),
		Environment:     p.str("WEDDINGAPI_ENV", DefaultEnvironment),
		LogLevel:        p.str("LOG_LEVEL", DefaultLogLevel),
		ScriptURL:       strings.TrimSpace(getenv("PRINCIPAL_SPONSOR_SCRIPT_URL")),
		RemoteTimeout:   p.duration("REMOTE_TIMEOUT", DefaultRemoteTimeout),
		RequestTimeout:  p.duration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		MaxBodyBytes:    p.int64("MAX_BODY_BYTES", DefaultMaxBodyBytes),
		FallbackDataset: strings.TrimSpace(getenv("FALLBACK_DATASET_PATH")),

		BreakerFailureThreshold: int(p.int64("BREAKER_FAILURE_THRESHOLD", DefaultBreakerThreshold)),
		BreakerCooldown:         p.duration("BREAKER_COOLDOWN", DefaultBreakerCooldown),

		AdminJWTSecret:   getenv("ADMIN_JWT_SECRET"),
		CORSAllowOrigins: splitList(getenv("CORS_ALLOW_ORIGINS")),
	}
	if len(p.errs) > 0 {
		return Server{}, errors.Join(p.errs...)
	}
	return cfg, nil
}

// Validate checks what the server needs to start.
func (s Server) Validate() error {
	var errs []error
	if s.ScriptURL == "" {
		errs = append(errs, errors.New("PRINCIPAL_SPONSOR_SCRIPT_URL is required"))
	} else if u, err := url.Parse(s.ScriptURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("PRINCIPAL_SPONSOR_SCRIPT_URL must be an absolute http(s) URL, got %q", s.ScriptURL))
	}
	if s.RemoteTimeout <= 0 {
		errs = append(errs, errors.New("REMOTE_TIMEOUT must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	} else if s.RemoteTimeout > 0 && s.RequestTimeout <= s.RemoteTimeout {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT (%s) must be longer than REMOTE_TIMEOUT (%s)", s.RequestTimeout, s.RemoteTimeout))
	}
	if s.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if s.BreakerFailureThreshold <= 0 {
		errs = append(errs, errors.New("BREAKER_FAILURE_THRESHOLD must be positive"))
	}
	if s.BreakerCooldown <= 0 {
		errs = append(errs, errors.New("BREAKER_COOLDOWN must be positive"))
	}
	return errors.Join(errs...)
}

// AdminAuthEnabled reports whether write routes require an admin token.
func (s Server) AdminAuthEnabled() bool {
	return s.AdminJWTSecret != ""
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) int64(key string, def int64) int64 {
	v := strings.TrimSpace(p.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
