package logger

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the service-wide JSON logger. Output goes to stdout and,
// when POSTGUARD_LOG_FILE is set, is mirrored to that file.
func NewLogger() *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logFile := os.Getenv("POSTGUARD_LOG_FILE")
	if logFile == "" {
		logger.SetOutput(os.Stdout)
		return logger
	}

	logFile = filepath.Clean(logFile)
	if err := os.MkdirAll(filepath.Dir(logFile), 0750); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	logger.SetOutput(file)
	logger.AddHook(newConsoleHook())

	return logger
}
