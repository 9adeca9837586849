package hosting

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ProxyFunction = func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type LambdaOption func(*LambdaBackend)

// AfterInvoke runs flush once each invocation has been answered, before the runtime
// freezes the function.
func AfterInvoke(flush func(ctx context.Context) error) LambdaOption {
	return func(b *LambdaBackend) {
		b.flush = flush
	}
}

type LambdaBackend struct {
	log    *zerolog.Logger
	lookup func(key string) string
	start  func(handler interface{})
	flush  func(ctx context.Context) error
}

func NewLambdaBackend(log *zerolog.Logger, options ...LambdaOption) *LambdaBackend {
	backend := &LambdaBackend{
		log:    log,
		lookup: os.Getenv,
		start:  lambda.Start,
	}

	for _, option := range options {
		option(backend)
	}

	return backend
}

func (b *LambdaBackend) Name() string {
	return "lambda"
}

// Available reports whether the process was started by a Lambda runtime.
func (b *LambdaBackend) Available() bool {
	return b.lookup("AWS_LAMBDA_RUNTIME_API") != "" || b.lookup("_LAMBDA_SERVER_PORT") != ""
}

// Serve hands the process over to the Lambda runtime, which does not return.
func (b *LambdaBackend) Serve(_ context.Context, handler http.Handler) error {
	b.logger().Info().Str("backend", b.Name()).Str("function", b.lookup("AWS_LAMBDA_FUNCTION_NAME")).Msg("blink server has taken the stage")
	b.start(b.invoke(ProxyHandler(handler)))

	return nil
}

func (b *LambdaBackend) invoke(proxy ProxyFunction) ProxyFunction {
	if b.flush == nil {
		return proxy
	}

	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		response, err := proxy(ctx, event)
		if ferr := b.flush(ctx); ferr != nil {
			b.logger().Warn().Err(ferr).Msg("failed to flush after invocation")
		}

		return response, err
	}
}

func (b *LambdaBackend) logger() *zerolog.Logger {
	if b.log == nil {
		return &log.Logger
	}

	return b.log
}

// ProxyHandler adapts an http.Handler to API Gateway HTTP API (payload 2.0) events.
func ProxyHandler(handler http.Handler) ProxyFunction {
	return httpadapter.NewV2(handler).ProxyWithContext
}
