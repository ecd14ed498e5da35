// Package logger owns the process-wide structured logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	global *zap.SugaredLogger
	once   sync.Once
)

// Init builds the global logger once. Production gets the JSON encoder;
// every other environment gets the console encoder for readable local logs.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		switch env {
		case "production":
			base, err = zap.NewProduction()
		default:
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			base = zap.NewNop()
		}

		global = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger
// on first use if Init was never called. Tests rely on this path.
func Get() *zap.SugaredLogger {
	if global == nil {
		Init("development")
	}
	return global
}

// Sync flushes buffered entries. Call on shutdown.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
