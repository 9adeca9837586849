package support

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/wee-blink-go/we"
)

func exporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Tracing {
	case TracingConsole:
		return we.ConsoleExporter(os.Stdout)
	case TracingJaeger:
		return we.JaegerExporter(cfg.JaegerEndpoint)
	case TracingHoneycomb:
		return we.HoneycombExporter(ctx, cfg.HoneycombTeam, cfg.HoneycombDataset)
	case TracingNone, "":
		return nil, nil
	}

	return nil, errors.Errorf("unknown trace exporter %q", cfg.Tracing)
}

// TracerProvider installs the global tracer provider. Without an exporter spans are
// recorded but never exported.
func TracerProvider(ctx context.Context, cfg Config, log *zerolog.Logger) (*sdktrace.TracerProvider, func(), error) {
	exp, err := exporter(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create trace exporter")
	}

	var options []sdktrace.TracerProviderOption
	if exp != nil {
		options = append(options, sdktrace.WithBatcher(exp))
	}

	provider := sdktrace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := provider.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}

	return provider, cleanup, nil
}
