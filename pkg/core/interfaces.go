package core

// Logger receives progress and summary lines from the renderer
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything; useful in tests
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
