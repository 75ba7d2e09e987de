// Package datastore logging helpers.
package datastore

import (
	"log/slog"
	"sync"

	"github.com/koreality/koreality-go/internal/logging"
)

var (
	datastoreLogger   *slog.Logger
	datastoreLevelVar = new(slog.LevelVar)
	loggerCloseFunc   func() error
	loggerOnce        sync.Once
	loggerMu          sync.RWMutex
)

const defaultLogPath = "logs/datastore.log"

// InitializeLogger initializes the datastore file logger.
// Safe to call multiple times, initialization happens only once.
func InitializeLogger(logFilePath string) error {
	var initErr error

	loggerOnce.Do(func() {
		if logFilePath == "" {
			logFilePath = defaultLogPath
		}

		datastoreLevelVar.Set(slog.LevelInfo)

		var err error
		loggerMu.Lock()
		defer loggerMu.Unlock()
		datastoreLogger, loggerCloseFunc, err = logging.NewFileLogger(logFilePath, "datastore", datastoreLevelVar)
		if err != nil {
			datastoreLogger = nil
			loggerCloseFunc = func() error { return nil }
			initErr = err
		}
	})

	return initErr
}

// getLogger returns the datastore logger, falling back to the service logger
// when no file logger has been initialized.
func getLogger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if datastoreLogger != nil {
		return datastoreLogger
	}
	if l := logging.ForService("datastore"); l != nil {
		return l
	}
	return slog.Default()
}

// CloseLogger releases the underlying log writer.
func CloseLogger() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if loggerCloseFunc != nil {
		return loggerCloseFunc()
	}
	return nil
}
