package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestHelpers_WithoutSpan(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetTraceID(ctx))
	traceID, spanID := GetTraceIDAndSpanID(ctx)
	assert.Empty(t, traceID)
	assert.Empty(t, spanID)
	assert.Nil(t, LogFields(ctx))
}

func TestHelpers_WithSpan(t *testing.T) {
	// Arrange
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	// Act
	fields := LogFields(ctx)

	// Assert
	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
	require.Len(t, fields, 2)
	assert.Equal(t, "trace_id", fields[0].Key)
	assert.Equal(t, span.SpanContext().SpanID().String(), fields[1].String)
}
