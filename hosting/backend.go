package hosting

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var ErrNoBackend = errors.New("no available server backend")

// Backend hosts an http.Handler until ctx is cancelled or the backend fails.
type Backend interface {
	Name() string
	Available() bool
	Serve(ctx context.Context, handler http.Handler) error
}

type Preferences []string

// Select returns the first available backend in preference order. Naming a backend
// that is not registered is a configuration error, even when an earlier preference
// would have been chosen.
func Select(preferences Preferences, backends ...Backend) (Backend, error) {
	known := make(map[string]Backend, len(backends))
	for _, backend := range backends {
		known[backend.Name()] = backend
	}

	if len(preferences) == 0 {
		return nil, errors.Wrap(ErrNoBackend, "no server backends configured")
	}

	for _, name := range preferences {
		if _, ok := known[name]; !ok {
			return nil, errors.Errorf("unknown server backend %q", name)
		}
	}

	for _, name := range preferences {
		if backend := known[name]; backend.Available() {
			return backend, nil
		}
	}

	return nil, errors.Wrapf(ErrNoBackend, "tried %s", strings.Join(preferences, ", "))
}
