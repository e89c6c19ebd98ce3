package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mandalnilabja/llmshim/internal/config"
)

func setupLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}

// parseLevel maps a config level name to slog; unknown names mean info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func printStartupBanner(cfg *config.Config, providers []string) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "llmshim - OpenAI-compatible gateway\n")
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Completions: http://localhost%s/v1/completions\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Chat:        http://localhost%s/v1/chat/completions\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Usage API:   http://localhost%s/api/usage\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Metrics:     http://localhost%s/metrics\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Providers:   %s\n", strings.Join(providers, ", "))
	fmt.Fprintf(os.Stderr, "Data:        %s\n", config.DataDir())
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
