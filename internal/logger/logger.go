package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger for the whole engine. Call Init before use.
var Log *zap.Logger

var level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

func Init() {
	if Log != nil {
		return
	}
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		// Fall back to a no-op logger rather than crashing the engine
		Log = zap.NewNop()
		return
	}
	Log = logger
}

// SetDebug switches the minimum level at runtime, in either direction.
func SetDebug(debug bool) {
	if Log == nil {
		Init()
	}
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}
