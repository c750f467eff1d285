package debug

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	logger *zap.Logger
)

// Enable starts debug logging to ~/.config/midikeys/debug.log
func Enable() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "midikeys")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return EnableAt(filepath.Join(dir, "debug.log"))
}

// EnableAt starts debug logging to the given file.
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("debug logging started")
	return nil
}

// Disable flushes and stops debug logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		logger.Sync()
		logger = nil
	}
}

// Log writes a debug message with structured fields. No-op unless
// logging has been enabled.
func Log(msg string, fields ...zap.Field) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Debug(msg, fields...)
}

// Warn writes a warning with structured fields.
func Warn(msg string, fields ...zap.Field) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Warn(msg, fields...)
}
