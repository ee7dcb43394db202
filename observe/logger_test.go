package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func parseLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("malformed log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	entries := parseLogLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries at warn level, got %d", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_WithOp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	ctx := context.Background()

	opLogger := logger.WithOp(OpMeta{Op: "database_query", Resource: "database", Method: "POST"})
	opLogger.Info(ctx, "api call completed")

	entries := parseLogLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["op"] != "database_query" {
		t.Errorf("op = %v, want database_query", entry["op"])
	}
	if entry["resource"] != "database" {
		t.Errorf("resource = %v, want database", entry["resource"])
	}
	if entry["method"] != "POST" {
		t.Errorf("method = %v, want POST", entry["method"])
	}

	// Parent logger unaffected
	logger.Info(ctx, "plain")
	entries = parseLogLines(t, &buf)
	if _, ok := entries[1]["op"]; ok {
		t.Error("parent logger must not inherit op context")
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	ctx := context.Background()

	logger.Info(ctx, "configured client",
		Field{Key: "token", Value: "secret-integration-token"},
		Field{Key: "base_url", Value: "https://api.example.com"},
	)

	entries := parseLogLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entries[0]["token"])
	}
	if entries[0]["base_url"] != "https://api.example.com" {
		t.Errorf("base_url should not be redacted, got %v", entries[0]["base_url"])
	}
	if strings.Contains(buf.String(), "secret-integration-token") {
		t.Error("raw token leaked into log output")
	}
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tc := range testCases {
		if got := ParseLogLevel(tc.in); got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	levels := map[LogLevel]string{
		LevelDebug: "debug",
		LevelInfo:  "info",
		LevelWarn:  "warn",
		LevelError: "error",
	}
	for level, want := range levels {
		if got := level.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
