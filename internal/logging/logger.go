//
//  Copyright © Altinn. All rights reserved.
//

// Package logging wraps zap with per-module loggers carrying structured
// (actor, action, module) fields, so that every log line can be traced
// back to the party acting and the operation in flight.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper around zap.Logger scoped to one module.
type Logger struct {
	module string
	sugar  *zap.SugaredLogger
	level  zapcore.Level
	writer io.Writer
}

const (
	actor     = "actor"
	action    = "action"
	module    = "module"
	defActor  = "sys"
	defAction = "unk"
)

// internal constructor; applications should call GetLogger() to obtain a
// configured logger tracked by the manager.
func newLogger(mod string) *Logger {
	l := &Logger{
		module: mod,
		level:  zapcore.InfoLevel,
	}
	l.rebuild()
	return l
}

// rebuild recreates the underlying zap logger from the current level and
// writer. zap cores are immutable once built, so level changes require a
// new core.
func (l *Logger) rebuild() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	var encoder zapcore.Encoder
	switch os.Getenv("LOG_FORMATTER") {
	case "text":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var output io.Writer = os.Stdout
	if l.writer != nil {
		output = l.writer
	}

	options := []zap.Option{
		zap.AddCallerSkip(1),
	}
	if os.Getenv("LOG_REPORT_CALLER") != "" {
		options = append(options, zap.AddCaller())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), l.level)
	l.sugar = zap.New(core, options...).Sugar()
}

// SetLevel sets the logging level.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level = level
	l.rebuild()
}

// SetOut redirects the logger output. Intended for tests.
func (l *Logger) SetOut(w io.Writer) {
	l.writer = w
	l.rebuild()
}

// Out returns the current output writer.
func (l *Logger) Out() io.Writer {
	if l.writer != nil {
		return l.writer
	}
	return os.Stdout
}

// IsDebugEnabled returns true if the current logging level is debug or
// higher. Use as a guard where computing log output is expensive.
func (l *Logger) IsDebugEnabled() bool {
	return l.level <= zapcore.DebugLevel
}

func (l *Logger) with(actorID, actionID string) *zap.SugaredLogger {
	return l.sugar.With(
		zap.String(actor, actorID),
		zap.String(action, actionID),
		zap.String(module, l.module),
	)
}

// Debug logs a debug message.
func (l *Logger) Debug(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Debug(args...)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Info(args...)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Warn(args...)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(actorID, actionID string, args ...interface{}) {
	l.with(actorID, actionID).Error(args...)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Errorf(format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *Logger) Fatalf(actorID, actionID string, format string, args ...interface{}) {
	l.with(actorID, actionID).Fatalf(format, args...)
}

// Below are variants using the default actor and action, for log sites
// outside of any request context.

// SysDebugf logs a formatted debug message with default actor and action.
func (l *Logger) SysDebugf(format string, args ...interface{}) {
	l.Debugf(defActor, defAction, format, args...)
}

// SysInfof logs a formatted info message with default actor and action.
func (l *Logger) SysInfof(format string, args ...interface{}) {
	l.Infof(defActor, defAction, format, args...)
}

// SysWarnf logs a formatted warning message with default actor and action.
func (l *Logger) SysWarnf(format string, args ...interface{}) {
	l.Warnf(defActor, defAction, format, args...)
}

// SysErrorf logs a formatted error message with default actor and action.
func (l *Logger) SysErrorf(format string, args ...interface{}) {
	l.Errorf(defActor, defAction, format, args...)
}
