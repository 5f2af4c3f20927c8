package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Service string
	Env     string
	Level   string
}

// New builds a JSON logger for production and a console logger otherwise.
// Every entry carries the service and env fields.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Env == "production" || opts.Env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(opts.Level))

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	log = log.With(
		zap.String("service", opts.Service),
		zap.String("env", opts.Env),
	)

	zap.ReplaceGlobals(log)
	return log, nil
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
