package log

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var defaultLogger = zap.NewNop()

func Get() *zap.Logger {
	return defaultLogger
}

// Set builds the process logger. Format is "console" or "json".
func Set(level, format string) error {
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	if strings.TrimSpace(level) != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return errors.Wrapf(err, "log level %q", level)
		}
		lvl = parsed
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return errors.Errorf("unsupported log format %q", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	defaultLogger = logger
	return nil
}

// Replace swaps the process logger and returns a func restoring the old one.
func Replace(logger *zap.Logger) func() {
	prev := defaultLogger
	defaultLogger = logger
	return func() { defaultLogger = prev }
}

func Flush() {
	_ = defaultLogger.Sync()
}
