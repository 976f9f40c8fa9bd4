/**
 * @description
 * Structured logger for the ASSR check-in bot.
 * Info messages go to stdout, errors to stderr.
 *
 * @dependencies
 * - go.uber.org/zap
 */

package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

func init() {
	sugar = build(os.Stdout, os.Stderr, zapcore.InfoLevel)
}

func build(out, errOut io.Writer, level zapcore.Level) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoder := zapcore.NewConsoleEncoder(encCfg)

	infoLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l < zapcore.ErrorLevel
	})
	errorLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= level && l >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(out), infoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(errOut), errorLevel),
	)
	return zap.New(core).Sugar()
}

// SetLevel rebuilds the logger with the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	sugar = build(os.Stdout, os.Stderr, lvl)
}

// SetOutput redirects both streams, mostly for tests.
func SetOutput(w io.Writer) {
	sugar = build(w, w, zapcore.DebugLevel)
}

// Debug logs a debug message to stdout
func Debug(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

// Info logs an info message to stdout
func Info(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

// Warn logs a warning to stdout
func Warn(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

// Error logs an error message to stderr
func Error(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

// Fatal logs an error and exits with status 1
func Fatal(format string, v ...interface{}) {
	sugar.Fatalf(format, v...)
}

// Sync flushes buffered entries
func Sync() {
	_ = sugar.Sync()
}
