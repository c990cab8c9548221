package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	environmentProduction = "production"
	sentryFlushTimeout    = 2 * time.Second
)

type Config struct {
	Environment string
	SentryDSN   string
}

// sentryHook leaves info and warn entries as breadcrumbs and reports errors.
func sentryHook(hub *sentry.Hub) func(zapcore.Entry) error {
	return func(e zapcore.Entry) error {
		if hub.Client() == nil {
			return nil
		}
		if e.Level < zapcore.ErrorLevel {
			if e.Level >= zapcore.InfoLevel {
				hub.AddBreadcrumb(&sentry.Breadcrumb{
					Type:      "info",
					Category:  e.LoggerName,
					Message:   e.Message,
					Level:     sentry.LevelInfo,
					Timestamp: e.Time,
				}, nil)
			}
			return nil
		}
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("logger", e.LoggerName)
			scope.SetLevel(sentry.LevelError)
			hub.CaptureMessage(e.Message)
		})
		return nil
	}
}

// New builds a development logger unless running in production. With a
// Sentry DSN, error entries are also sent to Sentry.
func New(cfg Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.Environment == environmentProduction {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}

	if cfg.SentryDSN == "" {
		return log, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Debug:       cfg.Environment != environmentProduction,
	}); err != nil {
		log.Warn("failed to initialize sentry", zap.Error(err))
		return log, nil
	}
	return log.WithOptions(zap.Hooks(sentryHook(sentry.CurrentHub()))), nil
}

// Init installs the logger as zap's global one.
func Init(cfg Config) error {
	log, err := New(cfg)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(log)
	return nil
}

func Flush() {
	_ = zap.L().Sync()
	sentry.Flush(sentryFlushTimeout)
}
