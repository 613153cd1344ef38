package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInit_RegistersGlobalProviders(t *testing.T) {
	ctx := context.Background()

	providers, err := Init(ctx, Config{Endpoint: "localhost:4318", ServiceName: "store-test"})

	require.NoError(t, err)
	assert.Same(t, providers.Tracer, otel.GetTracerProvider())
	assert.Same(t, providers.Meter, otel.GetMeterProvider())
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	_ = providers.Shutdown(shutdownCtx)
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected string
	}{
		{name: "zero samples everything", ratio: 0, expected: sdktrace.AlwaysSample().Description()},
		{name: "one samples everything", ratio: 1, expected: sdktrace.AlwaysSample().Description()},
		{name: "fraction", ratio: 0.25, expected: sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sampler(tt.ratio).Description())
		})
	}
}
