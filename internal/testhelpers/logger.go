package testhelpers

import (
	"github.com/myrjola/coachapp/internal/logging"
	"io"
	"log/slog"
)

// NewLogger creates a debug-level logger writing to the given sink, e.g.
// testhelpers.NewWriter(t) or a bytes.Buffer for log assertions.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
