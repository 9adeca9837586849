package hosting

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	defaultBindAttempts    = 3
	defaultBindDelay       = 250 * time.Millisecond
)

type Listen func(network, address string) (net.Listener, error)

type HTTPOption func(*HTTPBackend)

func ShutdownTimeout(timeout time.Duration) HTTPOption {
	return func(b *HTTPBackend) {
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}

		b.shutdownTimeout = timeout
	}
}

func BindAttempts(attempts uint, delay time.Duration) HTTPOption {
	return func(b *HTTPBackend) {
		if attempts == 0 {
			attempts = defaultBindAttempts
		}

		b.attempts = attempts
		b.delay = delay
	}
}

func WithListener(listen Listen) HTTPOption {
	return func(b *HTTPBackend) {
		b.listen = listen
	}
}

func WithLogger(log *zerolog.Logger) HTTPOption {
	return func(b *HTTPBackend) {
		b.log = log
	}
}

type HTTPBackend struct {
	addr            string
	shutdownTimeout time.Duration
	attempts        uint
	delay           time.Duration
	listen          Listen
	log             *zerolog.Logger
}

func NewHTTPBackend(addr string, options ...HTTPOption) *HTTPBackend {
	backend := &HTTPBackend{
		addr:            addr,
		shutdownTimeout: defaultShutdownTimeout,
		attempts:        defaultBindAttempts,
		delay:           defaultBindDelay,
		listen:          net.Listen,
	}

	for _, option := range options {
		option(backend)
	}

	if backend.log == nil {
		backend.log = &log.Logger
	}

	return backend
}

func (b *HTTPBackend) Name() string {
	return "http"
}

func (b *HTTPBackend) Available() bool {
	return true
}

func (b *HTTPBackend) Serve(ctx context.Context, handler http.Handler) error {
	var listener net.Listener
	err := retry.Do(
		func() error {
			l, err := b.listen("tcp", b.addr)
			if err != nil {
				return err
			}

			listener = l
			return nil
		},
		retry.Attempts(b.attempts),
		retry.Delay(b.delay),
		retry.OnRetry(func(n uint, err error) {
			b.log.Warn().Err(err).Uint("attempt", n+1).Str("addr", b.addr).Msg("failed to bind, retrying")
		}),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", b.addr)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	b.log.Info().Str("backend", b.Name()).Str("addr", listener.Addr().String()).Msg("blink server has taken the stage")

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(listener)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	b.log.Info().Dur("timeout", b.shutdownTimeout).Msg("blink server shutting down")

	shutdown, cancel := context.WithTimeout(context.Background(), b.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdown); err != nil {
		return errors.Wrap(err, "failed to shut down http server")
	}

	return nil
}
