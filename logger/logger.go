// Package logger wraps a zap logger that travels through context.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment logs human-readable console lines.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment logs JSON.
	ProductionEnvironment = "production"
)

var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup replaces the default logger for the given environment.
func Setup(environment string) {
	var (
		l   *zap.Logger
		err error
	)
	if environment == ProductionEnvironment {
		l, err = zap.NewProduction()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		l, err = cfg.Build()
	}
	if err != nil {
		return
	}

	defaultLogger = l
}

type key struct{}

// Get returns the logger stored in ctx, or the default one.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}

	return defaultLogger
}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields attaches a logger carrying fields to ctx.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}

// Sync flushes the default logger.
func Sync() {
	_ = defaultLogger.Sync()
}
