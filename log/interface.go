package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the subset of logrus used by components that take an injected
// logger instead of the global one.
type Logger interface {
	Debug(keyvals ...interface{})
	Debugf(msg string, args ...interface{})
	Info(keyvals ...interface{})
	Infof(msg string, args ...interface{})
	Warn(keyvals ...interface{})
	Warnf(msg string, args ...interface{})
	Error(keyvals ...interface{})
	Errorf(msg string, args ...interface{})

	WithField(key string, val interface{}) Logger
	WithFields(fields Fields) Logger
}

type LogWrapper struct {
	entry *logrus.Entry
}

// Interface assertion
var _ Logger = (*LogWrapper)(nil)

// New builds a standalone logger. Without options it logs at info level to
// stderr.
func New(opts ...Options) Logger {
	lw := &LogWrapper{entry: logrus.NewEntry(logrus.New())}
	for _, opt := range opts {
		opt(lw)
	}
	return lw
}

// Root wraps the global logger.
func Root() Logger {
	return &LogWrapper{entry: logrus.NewEntry(Global)}
}

func (l *LogWrapper) Debug(keyvals ...interface{}) { l.entry.Debug(keyvals...) }

func (l *LogWrapper) Debugf(msg string, args ...interface{}) { l.entry.Debugf(msg, args...) }

func (l *LogWrapper) Info(keyvals ...interface{}) { l.entry.Info(keyvals...) }

func (l *LogWrapper) Infof(msg string, args ...interface{}) { l.entry.Infof(msg, args...) }

func (l *LogWrapper) Warn(keyvals ...interface{}) { l.entry.Warn(keyvals...) }

func (l *LogWrapper) Warnf(msg string, args ...interface{}) { l.entry.Warnf(msg, args...) }

func (l *LogWrapper) Error(keyvals ...interface{}) { l.entry.Error(keyvals...) }

func (l *LogWrapper) Errorf(msg string, args ...interface{}) { l.entry.Errorf(msg, args...) }

func (l *LogWrapper) WithField(key string, val interface{}) Logger {
	return &LogWrapper{entry: l.entry.WithField(key, val)}
}

func (l *LogWrapper) WithFields(fields Fields) Logger {
	return &LogWrapper{entry: l.entry.WithFields(fields)}
}
