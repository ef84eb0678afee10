package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskrunner/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter implements LoggerPort on a zap sugared logger. Log lines go
// to stderr as JSON so stdout stays clean for the task result.
type ZapAdapter struct {
	sugar *zap.SugaredLogger
}

func NewZapAdapter(level string) (*ZapAdapter, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &ZapAdapter{sugar: base.Sugar()}, nil
}

func (l *ZapAdapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapAdapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapAdapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapAdapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{sugar: l.sugar.With(key, value)}
}

func (l *ZapAdapter) Close() error {
	// Sync fails on stderr on some platforms; nothing useful to report.
	_ = l.sugar.Sync()
	return nil
}
