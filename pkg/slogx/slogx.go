package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// MaskedValue replaces PII attribute values when PII logging is off.
const MaskedValue = "MASKED"

// piiKeys are attribute names whose values identify a person.
var piiKeys = map[string]struct{}{
	"username":   {},
	"first_name": {},
	"last_name":  {},
	"password":   {},
	"email":      {},
}

type Config struct {
	Service string
	Version string
	Env     string // e.g. "dev", "prod"
	Level   string // e.g. "debug", "info", "warn", "error"
	Format  string // e.g. "json", "text"
	LogPII  bool   // when false, PII attributes are masked

	// Output defaults to os.Stdout.
	Output io.Writer
}

// New returns a configured slog.Logger instance.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev", // Add source info in dev mode
		Level:     parseLevel(cfg.Level),
	}
	if !cfg.LogPII {
		opts.ReplaceAttr = MaskPII
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

// MaskPII is a slog ReplaceAttr func that hides the values of PII attributes.
func MaskPII(_ []string, a slog.Attr) slog.Attr {
	if _, ok := piiKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, MaskedValue)
	}
	return a
}

// parseLevel maps a string to slog.Level.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
