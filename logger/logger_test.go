package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSON(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "test-svc", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", l.name)
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(&buf, "info")
	l.Info("imported", Fields("count", 3))

	m := decodeLine(t, &buf)
	if m["message"] != "imported" {
		t.Errorf("expected message 'imported', got %v", m["message"])
	}
	if m[FieldService] != "test-svc" {
		t.Errorf("expected service field, got %v", m[FieldService])
	}
	if m["count"] != float64(3) {
		t.Errorf("expected count 3, got %v", m["count"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(&buf, "warn")
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info/debug to be filtered, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(&buf, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info level fallback, got %q", buf.String())
	}
}

func TestScopedLoggers(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(&buf, "debug").
		WithComponent("sample").
		WithRunID("run-1").
		WithSegment(7).
		WithFields(map[string]interface{}{"extra": "x"})
	l.Warn("rejected", Fields(FieldReason, "too_short"))

	m := decodeLine(t, &buf)
	tests := []struct {
		key  string
		want interface{}
	}{
		{FieldComponent, "sample"},
		{FieldRunID, "run-1"},
		{FieldSegmentID, float64(7)},
		{"extra", "x"},
		{FieldReason, "too_short"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if m[tc.key] != tc.want {
				t.Errorf("expected %s=%v, got %v", tc.key, tc.want, m[tc.key])
			}
		})
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	newJSON(&buf, "info").WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, &buf)
	if m["error"] != "boom" {
		t.Errorf("expected error field 'boom', got %v", m["error"])
	}
}

func TestConsoleFormat_NoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "", &buf)
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[INF]") || !strings.Contains(out, "hello") {
		t.Errorf("unexpected console output %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no color codes, got %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Info("discarded")
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if Get() == nil {
		t.Fatal("expected a default global logger")
	}

	custom := Nop()
	SetGlobalLogger(custom)
	if Get() != custom {
		t.Error("expected the custom global logger")
	}
	if WithComponent("x") == nil {
		t.Error("expected a component logger")
	}

	l := Init(Config{Level: "debug", Format: FormatJSON}, "svc")
	if Get() != l {
		t.Error("Init should install the global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stderr"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stderr"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("partition", errors.New("bad"))
	if ef[FieldPhase] != "partition" || ef[FieldError] != "bad" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("extract", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}
