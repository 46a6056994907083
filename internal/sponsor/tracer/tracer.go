// Package tracer is a small tracing abstraction for the sponsor proxy, so the
// service layer can emit spans without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and disabled tracing
//   - OTelTracer: OpenTelemetry adapter
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span. A non-nil err marks it failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to a span.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanList   = "sponsor.list"
	SpanCreate = "sponsor.create"
	SpanUpdate = "sponsor.update"
	SpanDelete = "sponsor.delete"
)

// Attribute keys.
const (
	AttrSource         = "sponsor.source"
	AttrFallbackReason = "sponsor.fallback_reason"
	AttrRecordCount    = "sponsor.record_count"
	AttrBreakerState   = "breaker.state"
	AttrRemoteCategory = "remote.error_category"
)

// Event names.
const (
	EventFallbackServed = "fallback.served"
	EventBreakerOpened  = "breaker.opened"
	EventBreakerClosed  = "breaker.closed"
)
