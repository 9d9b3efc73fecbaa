package logging

import (
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ARPSCAN_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks the ARPSCAN_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - treat as info when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the ARPSCAN_LOG_LEVEL
// environment variable. Silent by default, which keeps the scan report on
// stdout machine-parseable.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogDiscovery logs a newly discovered host
func LogDiscovery(ip net.IP, mac net.HardwareAddr, age time.Duration) {
	Info("Host is up",
		zap.String("ip", ip.String()),
		zap.String("mac", mac.String()),
		zap.Duration("age", age),
	)
}

// LogFrameDropped logs a frame that was read but not usable. Individual
// dropped frames are routine during a scan and never surface as errors.
func LogFrameDropped(reason string, length int) {
	Debug("Frame dropped",
		zap.String("reason", reason),
		zap.Int("length", length),
	)
}

// LogBatch logs progress of the request sender
func LogBatch(batch, sent, total int) {
	Debug("Batch transmitted",
		zap.Int("batch", batch),
		zap.Int("sent", sent),
		zap.Int("total", total),
	)
}

// LogSkippedLine logs a label-file line that could not be parsed
func LogSkippedLine(path string, lineNo int, reason string) {
	Warn("Skipped label line",
		zap.String("path", path),
		zap.Int("line", lineNo),
		zap.String("reason", reason),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
