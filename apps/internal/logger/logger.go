// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package logger wraps a *slog.Logger with the level names and PII policy used by the
// token acquisition code.
package logger

import (
	"context"
	"io"
	"log/slog"
)

type Level string

const (
	Info  Level = "info"
	Err   Level = "error"
	Warn  Level = "warn"
	Debug Level = "debug"
)

// Logger logs structured records. The zero value and a nil *Logger discard everything.
type Logger struct {
	logging *slog.Logger
	pii     bool
}

// Option configures a Logger.
type Option func(l *Logger)

// WithPii allows fields marked with PiiField to be written.
func WithPii(enabled bool) Option {
	return func(l *Logger) {
		l.pii = enabled
	}
}

// New creates a Logger. A nil slogLogger yields a Logger that writes nowhere.
func New(slogLogger *slog.Logger, options ...Option) *Logger {
	if slogLogger == nil {
		slogLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &Logger{logging: slogLogger}
	for _, o := range options {
		o(l)
	}
	return l
}

// Log writes message at level with the given slog fields.
func (a *Logger) Log(ctx context.Context, level Level, message string, fields ...any) {
	if a == nil || a.logging == nil {
		return
	}
	var slogLevel slog.Level
	switch level {
	case Info:
		slogLevel = slog.LevelInfo
	case Err:
		slogLevel = slog.LevelError
	case Warn:
		slogLevel = slog.LevelWarn
	case Debug:
		slogLevel = slog.LevelDebug
	default:
		slogLevel = slog.LevelInfo
	}

	a.logging.Log(
		ctx,
		slogLevel,
		message,
		fields...,
	)
}

// PiiField returns a field for value when PII logging is enabled and a redacted
// placeholder otherwise.
func (a *Logger) PiiField(key string, value string) any {
	if a == nil || !a.pii {
		return slog.String(key, "(pii)")
	}
	return slog.String(key, value)
}

// Field creates a slog field for any value
func Field(key string, value any) any {
	return slog.Any(key, value)
}
