package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv enables debug logging to debug.log when set to any non-empty value.
const DebugEnv = "IMAGEINFO_DEBUG"

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	enabled bool
)

func init() {
	if os.Getenv(DebugEnv) != "" {
		_ = Enable("debug.log")
	}
}

// Enable switches logging on, writing development-style entries to path.
// Falls back to stderr if the file can't be opened; an error is returned only
// when no logger could be built at all.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		// Fallback to stderr if we can't open the file
		cfg.OutputPaths = []string{"stderr"}
		fallback, ferr := cfg.Build()
		if ferr != nil {
			return ferr
		}
		fallback.Debug("debug log unavailable, using stderr", zap.String("path", path), zap.Error(err))
		logger = fallback
	}

	base = logger
	enabled = true
	return nil
}

// Enabled reports whether Enable has installed a logger.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Logger returns the process-wide logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Named returns a child logger for a component, e.g. Named("scanner").
func Named(component string) *zap.Logger {
	return Logger().Named(component)
}

// Sync flushes buffered entries. Safe to call when logging is disabled.
func Sync() {
	_ = Logger().Sync()
}
