// Package logger provides a level-gated wrapper over the standard
// library logger, adapted from the teacher's own internal/logger.
package logger

import (
	"log"
	"sync"

	"github.com/Abdulbasit24075/omnifs/internal/config"
)

var (
	level config.LogLevel
	mu    sync.RWMutex
)

// SetLevel changes the global minimum level that gets printed.
func SetLevel(l config.LogLevel) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// GetLevel returns the current minimum level.
func GetLevel() config.LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

func Debug(format string, args ...interface{}) {
	if GetLevel() <= config.LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if GetLevel() <= config.LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if GetLevel() <= config.LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if GetLevel() <= config.LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}
