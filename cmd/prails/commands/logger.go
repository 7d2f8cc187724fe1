package commands

import (
	"io"
	"os"
	"strings"

	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/sirupsen/logrus"
)

var _ paymentrails.Logger = (*Logger)(nil)

// Logger backs paymentrails.Logger with logrus.
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a logger writing to stderr. An empty level means info,
// or debug when verbose is set.
func NewLogger(level string, verbose bool) *Logger {
	return newLoggerTo(os.Stderr, level, verbose)
}

func newLoggerTo(out io.Writer, level string, verbose bool) *Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	if strings.EqualFold(os.Getenv("PAYMENTRAILS_LOG_FORMAT"), "json") {
		log.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}

	switch parsed, err := logrus.ParseLevel(level); {
	case err == nil && level != "":
		log.SetLevel(parsed)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Logger: log}
}

// Debug implements paymentrails.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Debug(msg)
}

// Info implements paymentrails.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Info(msg)
}

// Warn implements paymentrails.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Warn(msg)
}

// Error implements paymentrails.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.WithFields(fields).Error(msg)
}
