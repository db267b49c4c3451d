package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	a := NewLogger("test-component")
	if a.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", a.Data["component"])
	}
	if b := NewLogger("test-component"); a != b {
		t.Error("Expected the same entry for the same component")
	}
	if c := NewLogger("other"); a == c {
		t.Error("Expected a different entry for another component")
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "tree rebuilt",
				Data:    logrus.Fields{"component": "session", "nodes": 12, "file": "a.json"},
			},
			want: []string{"[INFO]", "session", "tree rebuilt", "file=a.json nodes=12"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "regex did not compile",
				Data:    logrus.Fields{"component": "filter"},
			},
			want:    []string{"[WARN]", "regex did not compile"},
			notWant: []string{"filter", "-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config, Plain: true}
			out, err := f.Format(tt.entry)
			if err != nil {
				t.Fatalf("Format returned error: %v", err)
			}
			s := string(out)
			for _, w := range tt.want {
				if !strings.Contains(s, w) {
					t.Errorf("expected %q in %q", w, s)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(s, nw) {
					t.Errorf("did not expect %q in %q", nw, s)
				}
			}
			if !strings.HasSuffix(s, "\n") {
				t.Error("expected a trailing newline")
			}
		})
	}
}

func TestResolveLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if got := resolveLevel(Config{}); got != logrus.InfoLevel {
		t.Errorf("default level = %v, want info", got)
	}
	if got := resolveLevel(Config{Level: "debug"}); got != logrus.DebugLevel {
		t.Errorf("config level = %v, want debug", got)
	}
	if got := resolveLevel(Config{Level: "loud"}); got != logrus.InfoLevel {
		t.Errorf("invalid level = %v, want info", got)
	}

	t.Setenv(EnvLogLevel, "error")
	if got := resolveLevel(Config{Level: "debug"}); got != logrus.ErrorLevel {
		t.Errorf("env level = %v, want error", got)
	}
}

func TestShouldLogToStderr(t *testing.T) {
	t.Setenv(EnvDebug, "")
	tests := []struct {
		mode        string
		level       logrus.Level
		interactive bool
		want        bool
	}{
		{"always", logrus.InfoLevel, true, true},
		{"never", logrus.DebugLevel, false, false},
		{"auto", logrus.InfoLevel, true, false},
		{"auto", logrus.InfoLevel, false, true},
		{"", logrus.DebugLevel, true, true},
	}
	for _, tt := range tests {
		if got := shouldLogToStderr(tt.mode, tt.level, tt.interactive); got != tt.want {
			t.Errorf("shouldLogToStderr(%q, %v, %v) = %v, want %v", tt.mode, tt.level, tt.interactive, got, tt.want)
		}
	}

	t.Setenv(EnvDebug, "1")
	if !shouldLogToStderr("auto", logrus.InfoLevel, true) {
		t.Error("JSONVIEW_DEBUG=1 should force stderr in auto mode")
	}
}

func TestGlobalOutputRedirect(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	defer SetGlobalOutput(os.Stderr)

	entry := newLogger("redirect", Config{Format: FormatConfig{StructuredToStderr: "always"}}, true)
	entry.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log line in redirected output, got %q", buf.String())
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jsonview.log")
	entry := newLogger("file", Config{
		File:   FileSinkConfig{Enabled: true, Path: path, Format: "json"},
		Format: FormatConfig{StructuredToStderr: "never"},
	}, true)
	entry.WithField("line", 3).Warn("invalid line skipped")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	var record map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("expected a JSON record, got %q: %v", data, err)
	}
	if record["msg"] != "invalid line skipped" || record["component"] != "file" || record["level"] != "warning" {
		t.Errorf("unexpected record %v", record)
	}
}

func TestFormatterPresets(t *testing.T) {
	if _, ok := formatterFor("json", FormatConfig{}).(*logrus.JSONFormatter); !ok {
		t.Error("json preset should use logrus.JSONFormatter")
	}
	simple, ok := formatterFor("simple", FormatConfig{}).(*TextFormatter)
	if !ok || !simple.Config.DisableTimestamp || !simple.Config.DisableComponent {
		t.Errorf("simple preset should hide timestamp and component, got %+v", simple)
	}
}
