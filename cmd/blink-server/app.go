package main

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/wee-blink-go/blink"
	"github.com/weegigs/wee-blink-go/connectors/wehttp"
	"github.com/weegigs/wee-blink-go/hosting"
	"github.com/weegigs/wee-blink-go/static"
	"github.com/weegigs/wee-blink-go/support"
)

type App struct {
	Log     *zerolog.Logger
	Backend hosting.Backend
	Handler http.Handler
	Tracer  *sdktrace.TracerProvider
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Debug().Str("backend", a.Backend.Name()).Msg("starting")
	return a.Backend.Serve(ctx, a.Handler)
}

func assets(cfg support.Config) (fs.FS, error) {
	return static.Open(cfg.PublicFolder)
}

func newHandler(counter blink.CounterService, assets fs.FS, log *zerolog.Logger, access *logrus.Logger) http.Handler {
	return wehttp.NewHandler(counter, assets, wehttp.Logger(log), wehttp.AccessLog(access))
}

// newBackend flushes spans after every Lambda invocation, since the runtime freezes
// the function between requests and never runs the provider's cleanup.
func newBackend(cfg support.Config, log *zerolog.Logger, tracer *sdktrace.TracerProvider) (hosting.Backend, error) {
	return hosting.Select(
		cfg.Servers,
		hosting.NewLambdaBackend(log, hosting.AfterInvoke(tracer.ForceFlush)),
		hosting.NewHTTPBackend(cfg.Addr, hosting.ShutdownTimeout(cfg.ShutdownTimeout), hosting.WithLogger(log)),
	)
}
