package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the CLI logger. Unknown levels fall back to info.
func NewLogger(w io.Writer, logLevel string, logJSON bool) *log.Logger {
	var level log.Level
	switch logLevel {
	case "debug":
		level = log.DebugLevel
	case "info":
		level = log.InfoLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	default:
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "chunkwise",
	})
	if logJSON {
		logger.SetFormatter(log.JSONFormatter)
	} else {
		logger.SetFormatter(log.TextFormatter)
	}
	return logger
}
