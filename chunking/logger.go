package chunking

// Logger receives debug events from a chunking run. The method set matches
// charmbracelet/log's *Logger so one can be passed directly.
type Logger interface {
	Debug(msg any, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}
