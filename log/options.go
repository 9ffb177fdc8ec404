package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options is a function type that can be used to configure the logger
type Options func(*LogWrapper)

// WithLevel configures the log level, falling back to info on a bad level
// string. Debug and trace levels also report the caller. The formatter is
// left as configured.
func WithLevel(level string) Options {
	return func(lw *LogWrapper) {
		l, err := logrus.ParseLevel(level)
		if err != nil {
			l = logrus.InfoLevel
		}
		lw.entry.Logger.SetLevel(l)
		if l == logrus.DebugLevel || l == logrus.TraceLevel {
			lw.entry.Logger.SetReportCaller(true)
		}
	}
}

// WithOutput configures the output destination
func WithOutput(output io.Writer) Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetOutput(output)
	}
}

// WithFormatter configures the log formatter
func WithFormatter(formatter logrus.Formatter) Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetFormatter(formatter)
	}
}

// WithNullLogger sets the logger to discard all output
func WithNullLogger() Options {
	return func(lw *LogWrapper) {
		lw.entry.Logger.SetOutput(io.Discard)
	}
}
