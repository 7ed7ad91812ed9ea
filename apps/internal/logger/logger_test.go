// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Log_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug, // Set the log level to Debug to capture all log levels
	})

	logInstance := New(slog.New(handler))
	ctx := context.Background()

	logInstance.Log(ctx, Info, "This is an info message via slog.", Field("flow", "interactive"), slog.Int("attempt", 1))
	logInstance.Log(ctx, Err, "This is an error message via slog.", slog.String("module", "dispatch"))
	logInstance.Log(ctx, Warn, "This is a warn message via slog.", slog.Int("free_space_mb", 100))
	logInstance.Log(ctx, Debug, "This is a debug message via slog.", slog.String("module", "main"))

	output := buf.String()
	expectedMessages := []string{
		"This is an info message via slog.",
		"This is an error message via slog.",
		"This is a warn message via slog.",
		"This is a debug message via slog.",
	}

	for _, msg := range expectedMessages {
		if !strings.Contains(output, msg) {
			t.Errorf("expected log message %q not found in output", msg)
		}
	}
}

func TestLogger_New_NilLogger(t *testing.T) {
	logInstance := New(nil)
	if logInstance == nil {
		t.Fatalf("expected non-nil logInstance, got nil")
	}
	// must not panic
	logInstance.Log(context.Background(), Info, "discarded")

	var nilLogger *Logger
	nilLogger.Log(context.Background(), Info, "discarded")
}

func TestLogger_PiiField(t *testing.T) {
	tests := []struct {
		desc string
		pii  bool
		want string
	}{
		{desc: "pii disabled", pii: false, want: `"login_hint":"(pii)"`},
		{desc: "pii enabled", pii: true, want: `"login_hint":"user@contoso.com"`},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		l := New(slog.New(slog.NewJSONHandler(&buf, nil)), WithPii(test.pii))
		l.Log(context.Background(), Info, "hint", l.PiiField("login_hint", "user@contoso.com"))
		if !strings.Contains(buf.String(), test.want) {
			t.Errorf("TestLogger_PiiField(%s): got %s, want it to contain %s", test.desc, buf.String(), test.want)
		}
	}
}
