package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.NewEntry(logrus.StandardLogger())

// Init configures the process-wide JSON logger and tags every entry with the
// emitting service name.
func Init(service string) {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	base.SetLevel(logLevel)

	if service == "" {
		Log = logrus.NewEntry(base)
		return
	}
	Log = base.WithField("service", service)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return Log.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

func WithSession(sessionID string) *logrus.Entry {
	return Log.WithField("session_id", sessionID)
}
