package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Default is the process-wide logger used by the package-level helpers
	Default *zap.SugaredLogger
)

func init() {
	Default = NewText("info", os.Stderr)
}

// ParseLevel maps debug, info, warn(ing) and error onto zap levels; anything
// else is info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func build(enc zapcore.Encoder, level string, output io.Writer) *zap.SugaredLogger {
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(output)), ParseLevel(level))
	return zap.New(core).Sugar()
}

// New creates a JSON logger with the specified level and output
func New(level string, output io.Writer) *zap.SugaredLogger {
	return build(zapcore.NewJSONEncoder(encoderConfig()), level, output)
}

// NewText creates a console logger, the default for the commands
func NewText(level string, output io.Writer) *zap.SugaredLogger {
	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return build(zapcore.NewConsoleEncoder(cfg), level, output)
}

// NewNop discards everything; used by tests.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// SetDefault replaces the default logger
func SetDefault(l *zap.SugaredLogger) {
	Default = l
}

func Debug(msg string, args ...any) {
	Default.Debugw(msg, args...)
}

func Info(msg string, args ...any) {
	Default.Infow(msg, args...)
}

func Warn(msg string, args ...any) {
	Default.Warnw(msg, args...)
}

// Sync flushes buffered entries of the default logger.
func Sync() {
	_ = Default.Sync()
}
