package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// NewLogger returns a JSON logger on stdout tagged with the tool name and a fresh run id.
func NewLogger(env, tool string) *slog.Logger {
	return newLogger(os.Stdout, env).With(
		slog.String("tool", tool),
		slog.String("run_id", uuid.NewString()),
	)
}

func newLogger(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}
