package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent.
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "CONTACTFORM_LOG_LEVEL"

// New builds a logger for level without touching the global one. If level is
// empty, CONTACTFORM_LOG_LEVEL is consulted; if that is empty too the logger
// is a no-op. Output goes to stderr so rendered forms on stdout stay clean.
func New(level string) (*zap.Logger, error) {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zap.NewNop(), nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return built, nil
}

// Initialize replaces the global logger with one built by New.
func Initialize(level string) error {
	built, err := New(level)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = built
	mu.Unlock()
	return nil
}

// GetLogger returns the global logger, a no-op one until Initialize runs.
func GetLogger() *zap.Logger {
	mu.RLock()
	current := logger
	mu.RUnlock()
	if current == nil {
		return zap.NewNop()
	}
	return current
}

// LogWebSocketMessage logs one live-validation frame on l.
func LogWebSocketMessage(l *zap.Logger, session, direction string, messageType int, data []byte) {
	if l == nil {
		return
	}
	fields := []zap.Field{
		zap.String("session", session),
		zap.String("direction", direction),
		zap.String("message_type", wsMessageTypeName(messageType)),
		zap.Int("length", len(data)),
	}
	if messageType == websocket.TextMessage && l.Core().Enabled(zapcore.DebugLevel) {
		fields = append(fields, zap.String("content", truncate(string(data), 256)))
	}
	l.Debug("websocket message", fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = GetLogger().Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func wsMessageTypeName(msgType int) string {
	switch msgType {
	case websocket.TextMessage:
		return "text"
	case websocket.BinaryMessage:
		return "binary"
	case websocket.CloseMessage:
		return "close"
	case websocket.PingMessage:
		return "ping"
	case websocket.PongMessage:
		return "pong"
	default:
		return fmt.Sprintf("unknown(%d)", msgType)
	}
}

// truncate keeps the first limit runes of s.
func truncate(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i] + "..."
		}
		count++
	}
	return s
}
