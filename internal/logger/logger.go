package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"fiscal/internal/config"
)

// New builds the process logger. Without verbose mode only warnings and
// errors are printed, which is how the ingestion stays silent for callers
// that render their own output.
func New(cfg config.Config) *charmlog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

func NewWithWriter(w io.Writer, cfg config.Config) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "fiscal",
	})
	if cfg.LogJSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	l.SetLevel(ParseLevel(cfg.LogLevel, cfg.Verbose))
	return l
}

func ParseLevel(level string, verbose bool) charmlog.Level {
	if !verbose {
		return charmlog.WarnLevel
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Discard is a logger for tests and library callers that want no output.
func Discard() *charmlog.Logger {
	l := charmlog.New(io.Discard)
	l.SetLevel(charmlog.FatalLevel)
	return l
}
