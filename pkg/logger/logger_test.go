package logger

import (
	"path/filepath"
	"testing"

	"foody/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	testLogger := With(zap.String("key", "value"))
	if testLogger == nil {
		t.Error("With() returned nil logger")
	}
	testLogger.Info("test with")

	reqLogger := WithRequestID("test-id")
	if reqLogger == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	reqLogger.Info("test with request id")

	if err := Sync(); err != nil {
		t.Errorf("Sync on nil logger must be a no-op, got %v", err)
	}
}

func TestDevelopmentConfig(t *testing.T) {
	devConfig := &config.LogConfig{
		Level:  "debug",
		Format: "",
		Output: "stdout",
	}

	if err := Init(devConfig, "dev"); err != nil {
		t.Fatalf("Failed to initialize development logger: %v", err)
	}
	defer Sync()

	Info("Development logger initialized", zap.String("env", "dev"))
	Debug("Debug message should appear")
	Warn("Warning message with fields", zap.String("component", "test"), zap.Int("value", 42))
}

func TestFileOutput(t *testing.T) {
	fileConfig := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "logs", "app.log"),
	}

	if err := Init(fileConfig, "production"); err != nil {
		t.Fatalf("Failed to initialize file logger: %v", err)
	}
	defer Sync()

	Info("File logger initialized")
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		raw  string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		if got := parseLevel(tc.raw); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
