//
//  Copyright © Altinn. All rights reserved.
//

package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// logManager keeps track of all instantiated loggers so that level
// changes can be applied across modules at runtime.
type logManager struct {
	loggers  map[string]*Logger
	defLevel zapcore.Level
}

var (
	manager *logManager
	mu      sync.RWMutex
	once    sync.Once
)

// resetForTesting resets the manager state. Testing only.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	manager = nil
	once = sync.Once{}
}

func initManager() {
	manager = &logManager{
		loggers:  make(map[string]*Logger),
		defLevel: zapcore.InfoLevel,
	}
}

// GetLogger returns the logger for the specified module, creating it at
// the manager's default level if it does not exist yet.
func GetLogger(module string) *Logger {
	once.Do(initManager)

	mu.RLock()
	if l := manager.loggers[module]; l != nil {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// double-check after acquiring the write lock
	if l := manager.loggers[module]; l != nil {
		return l
	}

	l := newLogger(module)
	l.SetLevel(manager.defLevel)
	manager.loggers[module] = l

	return l
}

func parseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	case "error":
		return zapcore.ErrorLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "info":
		return zapcore.InfoLevel
	case "debug", "trace":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// UpdateLogLevels updates log levels from a string of the form
// "mod1:debug;mod2:error;.:info". The "." entry sets the default level
// for modules without an explicit entry. Whitespace is tolerated.
func UpdateLogLevels(logstr string) error {
	once.Do(initManager)

	for _, ws := range []string{" ", "\t", "\n"} {
		logstr = strings.ReplaceAll(logstr, ws, "")
	}

	mu.Lock()
	defer mu.Unlock()

	explicit := make(map[string]bool)
	defaultLevel := manager.defLevel
	hasDefault := false

	for _, entry := range strings.Split(logstr, ";") {
		mod, levelStr, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}

		level := parseLevel(levelStr)
		if mod == "." {
			defaultLevel = level
			hasDefault = true
			continue
		}

		explicit[mod] = true
		l := manager.loggers[mod]
		if l == nil {
			l = newLogger(mod)
			manager.loggers[mod] = l
		}
		l.SetLevel(level)
	}

	if hasDefault {
		manager.defLevel = defaultLevel
		for mod, l := range manager.loggers {
			if !explicit[mod] {
				l.SetLevel(defaultLevel)
			}
		}
	}

	return nil
}
