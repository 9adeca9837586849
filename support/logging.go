package support

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
)

func NewLogger(cfg Config, out io.Writer) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	w := out
	if cfg.LogFormat == LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &logger, nil
}

// Logger builds the application logger and installs it as the zerolog global, so
// errors reported after startup honour the configured level and format.
func Logger(cfg Config) (*zerolog.Logger, error) {
	logger, err := NewLogger(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}

	log.Logger = *logger
	return logger, nil
}

// NewAccessLogger returns the request logger, or nil when request logging is off.
func NewAccessLogger(cfg Config, out io.Writer) *logrus.Logger {
	if !cfg.Logging {
		return nil
	}

	logger := logrus.New()
	logger.SetOutput(out)
	if cfg.LogFormat == LogFormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

func AccessLogger(cfg Config) *logrus.Logger {
	return NewAccessLogger(cfg, os.Stderr)
}
