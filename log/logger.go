package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	// default log level
	defaultLogLevel = logrus.InfoLevel

	// log file name
	globalLogFileName = "global.log"
	// default log directory
	logDir = "logs"
	// default log file params
	defaultLogMaxSize    = 100  // maximum file size before rotation, in MB
	defaultLogMaxBackups = 3    // maximum number of old log files to keep
	defaultLogMaxAge     = 28   // maximum number of days to retain old log files
	defaultLogCompress   = true // whether to compress the rotated log files using gzip
)

// Fields is re-exported so callers never import logrus directly.
type Fields = logrus.Fields

var (
	// Global is the logger used by every package that does not own a
	// component logger.
	Global *logrus.Logger

	defaultLogFilePath = filepath.Join(".", logDir, globalLogFileName)
)

func init() {
	Global = createStandardLogger(defaultLogFilePath, defaultLogLevel.String(), true)
}

// SetGlobalLogger redirects the global logger to logFilename (stderr is always
// kept) and changes its level. An empty filename keeps the default path.
func SetGlobalLogger(logFilename string, logLevel string) {
	if logFilename == "" {
		logFilename = defaultLogFilePath
	}
	Global.SetOutput(io.MultiWriter(newRotatingFile(logFilename), os.Stderr))

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = defaultLogLevel
	}
	Global.SetLevel(level)
}

// NewLogger returns a component logger that writes only to its own file.
func NewLogger(logFilename string, logLevel string) *logrus.Logger {
	if logFilename == "" {
		logFilename = defaultLogFilePath
	}
	logger := createStandardLogger(logFilename, logLevel, false)
	logger.WithFields(Fields{
		"path":  logFilename,
		"level": logLevel,
	}).Info("Component logger started")
	return logger
}

func newRotatingFile(logFilename string) io.Writer {
	return &lumberjack.Logger{
		Filename:   logFilename,
		MaxSize:    defaultLogMaxSize,
		MaxBackups: defaultLogMaxBackups,
		MaxAge:     defaultLogMaxAge,
		Compress:   defaultLogCompress,
	}
}

func createStandardLogger(logFilename string, logLevel string, stdOut bool) *logrus.Logger {
	logger := logrus.New()
	output := newRotatingFile(logFilename)

	if stdOut {
		logger.SetOutput(io.MultiWriter(output, os.Stderr))
	} else {
		logger.SetOutput(output)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		PadLevelText:    true,
		FullTimestamp:   true,
		TimestampFormat: "01-02|15:04:05.000",
	})
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = defaultLogLevel
	}
	logger.SetLevel(level)
	return logger
}

func WithField(key string, val interface{}) *logrus.Entry {
	return Global.WithField(key, val)
}

func WithFields(fields Fields) *logrus.Entry {
	return Global.WithFields(fields)
}

func Debug(keyvals ...interface{}) {
	Global.Debug(keyvals...)
}

func Debugf(msg string, args ...interface{}) {
	Global.Debugf(msg, args...)
}

func Info(keyvals ...interface{}) {
	Global.Info(keyvals...)
}

func Infof(msg string, args ...interface{}) {
	Global.Infof(msg, args...)
}

func Warn(keyvals ...interface{}) {
	Global.Warn(keyvals...)
}

func Error(keyvals ...interface{}) {
	Global.Error(keyvals...)
}

func Errorf(msg string, args ...interface{}) {
	Global.Errorf(msg, args...)
}

func Fatal(keyvals ...interface{}) {
	Global.Fatal(keyvals...)
}
