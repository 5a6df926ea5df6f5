package logs

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/pkg/reqctx"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandler_JSONToStderr(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output.Stderr = true

	var buf bytes.Buffer
	logger := slog.New(newHandler(cfg, &buf))
	logger.Info("session established", "store", "file")
	logger.Debug("dropped")

	out := buf.String()
	if !strings.Contains(out, `"msg":"session established"`) {
		t.Errorf("expected JSON record, got %s", out)
	}
	if strings.Contains(out, "dropped") {
		t.Errorf("debug record should be filtered at info level")
	}
}

func TestNewHandler_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.log")

	cfg := &config.Config{}
	cfg.Logging.Level = "warn"
	cfg.Logging.Output.File.Enabled = true
	cfg.Logging.Output.File.Path = path
	cfg.Logging.Output.File.MaxSizeMB = 1

	var stderr bytes.Buffer
	logger := slog.New(newHandler(cfg, &stderr))
	logger.Warn("list fetch failed", "view", "doctors")

	if stderr.Len() != 0 {
		t.Errorf("stderr should stay quiet when only file output is enabled, got %q", stderr.String())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(b), "list fetch failed") {
		t.Errorf("expected record in log file, got %q", string(b))
	}
}

func TestNewHandler_StampsRequestMeta(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Output.Stderr = true

	var buf bytes.Buffer
	logger := slog.New(newHandler(cfg, &buf)).With("component", "views")

	meta := &reqctx.RequestMeta{RequestID: "req-42", Command: "clinic doctors list"}
	logger.InfoContext(reqctx.WithRequestMeta(context.Background(), meta), "loaded")
	logger.Info("bare")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %q", buf.String())
	}
	for _, want := range []string{`"request_id":"req-42"`, `"command":"clinic doctors list"`, `"component":"views"`} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("expected %s in %s", want, lines[0])
		}
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("record without meta should not carry a request_id: %s", lines[1])
	}
}
