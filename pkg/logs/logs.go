package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/pkg/reqctx"
)

// New builds a logger from config. Command output goes to stdout, so logs
// fan out to stderr and/or a rotated file.
func New(cfg *config.Config) *slog.Logger {
	return slog.New(newHandler(cfg, os.Stderr)).With(
		slog.String("service", cfg.Observability.ServiceName),
		slog.String("version", cfg.Observability.ServiceVersion),
	)
}

func newHandler(cfg *config.Config, stderr io.Writer) slog.Handler {
	level := parseLevel(cfg.Logging.Level)

	var writers []io.Writer

	if cfg.Logging.Output.Stderr || !cfg.Logging.Output.File.Enabled {
		writers = append(writers, stderr)
	}

	// File output with rotation via lumberjack
	if cfg.Logging.Output.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Logging.Output.File.Path,
			MaxSize:    cfg.Logging.Output.File.MaxSizeMB,
			MaxBackups: cfg.Logging.Output.File.MaxBackups,
			MaxAge:     cfg.Logging.Output.File.MaxAgeDays,
			Compress:   cfg.Logging.Output.File.Compress,
		})
	}

	w := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	if strings.EqualFold(cfg.Logging.Format, "json") {
		return contextHandler{slog.NewJSONHandler(w, opts)}
	}
	return contextHandler{slog.NewTextHandler(w, opts)}
}

// contextHandler stamps records logged with a context carrying
// reqctx.RequestMeta, so console and mock API lines share a request_id.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if meta, ok := reqctx.RequestMetaFromContext(ctx); ok && meta != nil {
		r.AddAttrs(
			slog.String("request_id", meta.RequestID),
			slog.String("command", meta.Command),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
