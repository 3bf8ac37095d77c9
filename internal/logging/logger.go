package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the service logger. A development logger writes text with full
// timestamps at debug level; otherwise it logs JSON at info level.
func New(appName, env string, development bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if development {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *logrus.Logger) *logrus.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
