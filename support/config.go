package support

import (
	"time"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/weegigs/wee-blink-go/we"
)

const EnvPrefix = "BLINK"

const (
	TracingNone      = "none"
	TracingConsole   = "console"
	TracingJaeger    = "jaeger"
	TracingHoneycomb = "honeycomb"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

type Config struct {
	PublicFolder     string
	Servers          []string
	Addr             string
	ShutdownTimeout  time.Duration
	Logging          bool
	LogLevel         string
	LogFormat        string
	Tracing          string
	JaegerEndpoint   string
	HoneycombTeam    string
	HoneycombDataset string
}

func DefaultConfig() Config {
	return Config{
		Servers:         []string{"lambda", "http"},
		Addr:            ":4567",
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "info",
		LogFormat:       LogFormatConsole,
		Tracing:         TracingNone,
		JaegerEndpoint:  we.DefaultJaegerEndpoint,
	}
}

func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.PublicFolder, "public-folder", c.PublicFolder, "directory holding index.html and images/ (default: embedded assets)")
	flags.StringSliceVar(&c.Servers, "server", c.Servers, "server backends in order of preference")
	flags.StringVar(&c.Addr, "addr", c.Addr, "listen address for the http backend")
	flags.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "time allowed for in flight requests on shutdown")
	flags.BoolVar(&c.Logging, "logging", c.Logging, "log every request")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "application log level")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format, console or json")
	flags.StringVar(&c.Tracing, "tracing", c.Tracing, "trace exporter: none, console, jaeger or honeycomb")
	flags.StringVar(&c.JaegerEndpoint, "jaeger-endpoint", c.JaegerEndpoint, "jaeger collector endpoint")
	flags.StringVar(&c.HoneycombTeam, "honeycomb-team", c.HoneycombTeam, "honeycomb api key")
	flags.StringVar(&c.HoneycombDataset, "honeycomb-dataset", c.HoneycombDataset, "honeycomb dataset")
}

// EnvName maps a flag name onto its environment variable, e.g. public-folder is
// read from BLINK_PUBLIC_FOLDER.
func EnvName(flag string) string {
	return EnvPrefix + "_" + strcase.ToScreamingSnake(flag)
}

type LookupEnv func(key string) (string, bool)

// ApplyEnvironment sets every flag that was not given on the command line from its
// environment variable, so flags win over the environment and the environment wins
// over defaults.
func ApplyEnvironment(flags *pflag.FlagSet, lookup LookupEnv) error {
	var err error
	flags.VisitAll(func(flag *pflag.Flag) {
		if err != nil || flag.Changed {
			return
		}

		value, ok := lookup(EnvName(flag.Name))
		if !ok {
			return
		}

		if e := flags.Set(flag.Name, value); e != nil {
			err = errors.Wrapf(e, "invalid value for %s", EnvName(flag.Name))
		}
	})

	return err
}

func (c Config) Validate() error {
	if len(c.Servers) == 0 {
		return errors.New("at least one server backend is required")
	}

	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}

	switch c.Tracing {
	case TracingNone, TracingConsole, TracingJaeger:
	case TracingHoneycomb:
		if c.HoneycombTeam == "" || c.HoneycombDataset == "" {
			return errors.New("honeycomb tracing requires a team and a dataset")
		}
	default:
		return errors.Errorf("unknown trace exporter %q", c.Tracing)
	}

	return nil
}
