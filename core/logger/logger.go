package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// Init configures the global logger. level is one of debug|info|warn|error,
// format is "json" or "console". Safe to call more than once; only the first
// call takes effect.
func Init(level, format string) {
	once.Do(func() {
		log = build(level, format)
	})
}

func build(level, format string) *zap.SugaredLogger {
	var lvl zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.ToLower(format) == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)
	return zap.New(core, zap.AddCallerSkip(1)).Sugar()
}

func get() *zap.SugaredLogger {
	if log == nil {
		Init("info", "json")
	}
	return log
}

// Info logs a message with alternating key/value pairs
func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, keysAndValues...)
}

// Warn logs a warning with alternating key/value pairs
func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, keysAndValues...)
}

// Error logs an error with alternating key/value pairs
func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
}

// Debug logs a debug message with alternating key/value pairs
func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, keysAndValues...)
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
