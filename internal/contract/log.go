package contract

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu  sync.RWMutex
	logger = newLogger(zapcore.WarnLevel)
)

// exit is swapped out in tests.
var exit = os.Exit

func newLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// InitLogger replaces the global logger with one at the given level.
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	l := newLogger(lvl)

	logMu.Lock()
	defer logMu.Unlock()
	_ = logger.Sync()
	logger = l
	return nil
}

// SetLogger installs an explicit logger, e.g. zaptest or zap.NewNop in tests.
func SetLogger(l *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	logger = l
}

// Logger returns the global logger.
func Logger() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	_ = Logger().Sync()
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger().Error(msg, zap.Error(err))
	SyncLogger()
	exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, zap.Error(err))
}

// LogInfo logs an informational message with optional fields.
func LogInfo(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

// LogDebug logs a debug message with optional fields.
func LogDebug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}
