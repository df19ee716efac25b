package typeguard

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger. Rejected writes and ignored
// factory arguments are reported through it.
// This must be called before any descriptors are used.
func SetLogger(l *zap.Logger) {
	logger = l
}
