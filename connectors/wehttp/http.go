package wehttp

import (
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"

	"github.com/weegigs/wee-blink-go/blink"
	"github.com/weegigs/wee-blink-go/we"
)

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

// AccessLog enables request logging. A nil logger leaves it disabled.
func AccessLog(logger *logrus.Logger) HandlerOption {
	return func(service *httpService) {
		service.access = logger
	}
}

func NewHandler(counter blink.CounterService, assets fs.FS, options ...HandlerOption) http.Handler {
	service := &httpService{
		counter: counter,
		assets:  assets,
		encoder: we.NewResourceEncoder[blink.Counter](blink.Serializer),
	}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	if service.access != nil {
		r.Use(withLogging(service.access))
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/", service.index())

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)

		r.Get("/blink-number", service.blinkNumber())
		r.Get("/blinked", service.blinked())
		r.Get("/angel-changing.png", service.angel())
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/counter", service.getCounter())
	})

	r.Get("/*", service.files())

	return WithTelemetry(r, "blink-http")
}

type httpService struct {
	log     *zerolog.Logger
	access  *logrus.Logger
	counter blink.CounterService
	assets  fs.FS
	encoder we.EntityEncoder[blink.Counter]
}

func (service *httpService) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(service.assets, "index.html")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				http.NotFound(w, r)
				return
			}

			service.log.Error().Err(err).Msg("failed to read index page")
			http.Error(w, "failed to read index page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func (service *httpService) blinkNumber() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := service.counter.Value(r.Context())
		render.PlainText(w, r, strconv.FormatInt(value, 10))
	}
}

func (service *httpService) blinked() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := service.counter.Increment(r.Context())
		service.log.Debug().Int64("blink", value).Msg("blinked")
		render.PlainText(w, r, strconv.FormatInt(value, 10))
	}
}

func (service *httpService) angel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index := service.counter.Index(r.Context())
		http.Redirect(w, r, blink.ImagePath(index), http.StatusFound)
	}
}

func (service *httpService) getCounter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := service.counter.Load(r.Context())
		if err := service.encoder.Encode(w, r, entity); err != nil {
			service.log.Info().Err(err).Msg("failed to encode counter")
		}
	}
}

func (service *httpService) files() http.HandlerFunc {
	files := http.FileServer(http.FS(service.assets))

	return func(w http.ResponseWriter, r *http.Request) {
		// no directory listings
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}

		files.ServeHTTP(w, r)
	}
}
