package logging

import (
	"errors"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log level (debug, info, warn, error) and the encoding
// (console or json).
type Config struct {
	Level  string
	Format string
}

// New builds a logger writing to stderr. An unknown level falls back to info.
func New(cfg Config) *zap.Logger {
	return NewWithWriter(cfg, zapcore.Lock(os.Stderr))
}

func NewWithWriter(cfg Config, out zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	core := zapcore.NewCore(encoder(cfg.Format), out, level)
	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel)).Named("lumen")
}

func encoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if format == "json" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// Sync flushes the logger, ignoring the errors stderr returns when it is a
// terminal.
func Sync(logger *zap.Logger) error {
	err := logger.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	if strings.Contains(err.Error(), "/dev/stderr") {
		return nil
	}
	return err
}
