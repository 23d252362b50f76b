package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tms/backend/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	cfg := telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "tms-backend-test",
	}

	tp, err := telemetry.NewTracerProvider(ctx, cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())

	// Shutdown is a no-op for a disabled provider
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestTracerProvider_Tracer_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:     false,
		ServiceName: "tms-backend-test",
	}, logger)
	require.NoError(t, err)

	// Disabled provider still hands out a usable no-op tracer
	tracer := tp.Tracer("loads")
	require.NotNil(t, tracer)

	_, span := tracer.Start(ctx, "compute-totals")
	span.End()
}

func TestTracerProvider_ForceFlush_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)

	assert.NoError(t, tp.ForceFlush(ctx))
}

func TestTracerProvider_ShutdownWithCancelledContext(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)

	cancelledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	// A disabled provider has nothing to flush, so a dead context is fine
	assert.NoError(t, tp.Shutdown(cancelledCtx))
}
