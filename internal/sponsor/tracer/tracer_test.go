package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"weddingapi/internal/sponsor/tracer"
)

func TestNoopTracer(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanList, tracer.String("key", "value"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Bool(tracer.AttrSource, true))
	span.AddEvent(tracer.EventFallbackServed, tracer.Int(tracer.AttrRecordCount, 3))
	span.End(errors.New("boom"))
}

func TestOTelTracer(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithTracerProvider(noop.NewTracerProvider()))

	ctx, span := tr.Start(context.Background(), tracer.SpanCreate,
		tracer.String("s", "v"),
		tracer.Int("i", 1),
		tracer.Duration("d", 2*time.Second),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	assert.NotPanics(t, func() {
		span.SetAttributes(tracer.Bool("b", false), tracer.Attribute{Key: "f", Value: 1.5})
		span.AddEvent(tracer.EventBreakerOpened)
		span.End(errors.New("remote down"))
	})
}

func TestOTelTracer_DefaultsToGlobalProvider(t *testing.T) {
	tr := tracer.NewOTel()
	_, span := tr.Start(context.Background(), tracer.SpanList)
	assert.NotPanics(t, func() { span.End(nil) })
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, tracer.Attribute{Key: "k", Value: "v"}, tracer.String("k", "v"))
	assert.Equal(t, tracer.Attribute{Key: "k", Value: true}, tracer.Bool("k", true))
	assert.Equal(t, tracer.Attribute{Key: "k", Value: 7}, tracer.Int("k", 7))
	assert.Equal(t, tracer.Attribute{Key: "k", Value: int64(150)}, tracer.Duration("k", 150*time.Millisecond))
}
