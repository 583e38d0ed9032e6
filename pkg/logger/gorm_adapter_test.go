/*
Package logger - GORM logger adapter tests
*/
package logger

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"

	"foody/infrastructure/persistence"
)

func TestGormLoggerAdapterLevels(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	testCases := []struct {
		name      string
		logLevel  logger.LogLevel
		wantInfo  bool
		wantWarn  bool
		wantError bool
		wantTrace bool
	}{
		{"Info Level", logger.Info, true, true, true, true},
		{"Warn Level", logger.Warn, false, true, true, false},
		{"Error Level", logger.Error, false, false, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			log = zap.New(core)

			adapter := NewGormLoggerAdapter(tc.logLevel)
			ctx := context.Background()

			adapter.Info(ctx, "test info message")
			adapter.Warn(ctx, "test warn message")
			adapter.Error(ctx, "test error message")
			adapter.Trace(ctx, time.Now(), func() (string, int64) {
				return "SELECT * FROM orders", 1
			}, nil)

			foundInfo := false
			foundWarn := false
			foundError := false
			foundTrace := false
			for _, logEntry := range logs.All() {
				switch logEntry.Message {
				case "test info message":
					foundInfo = true
				case "test warn message":
					foundWarn = true
				case "test error message":
					foundError = true
				case "SQL query executed":
					foundTrace = true
					hasSQL := false
					for _, field := range logEntry.Context {
						if field.Key == "sql" {
							hasSQL = true
							break
						}
					}
					if !hasSQL {
						t.Error("SQL query not found in trace log fields")
					}
				}
			}

			if foundInfo != tc.wantInfo {
				t.Errorf("info logged = %v, want %v", foundInfo, tc.wantInfo)
			}
			if foundWarn != tc.wantWarn {
				t.Errorf("warn logged = %v, want %v", foundWarn, tc.wantWarn)
			}
			if foundError != tc.wantError {
				t.Errorf("error logged = %v, want %v", foundError, tc.wantError)
			}
			if foundTrace != tc.wantTrace {
				t.Errorf("trace logged = %v, want %v", foundTrace, tc.wantTrace)
			}
		})
	}
}

func TestGormLoggerAdapterSlowQuery(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := NewGormLoggerAdapterWithConfig(logger.Warn, &GormLoggerConfig{
		SlowThreshold:             time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})

	begin := time.Now().Add(-time.Second)
	adapter.Trace(context.Background(), begin, func() (string, int64) {
		return "SELECT * FROM orders WHERE status = 'READY'", 42
	}, nil)

	found := false
	for _, logEntry := range logs.All() {
		if logEntry.Message == "Slow SQL query" {
			found = true
			if logEntry.Level != zapcore.WarnLevel {
				t.Errorf("slow query logged at %v, want warn", logEntry.Level)
			}
		}
	}
	if !found {
		t.Error("slow query was not logged")
	}
}

func TestGormLoggerAdapterIgnoresRecordNotFound(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := NewGormLoggerAdapter(logger.Error)
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM carts WHERE customer_id = 'nobody'", 0
	}, logger.ErrRecordNotFound)

	if logs.Len() != 0 {
		t.Errorf("record-not-found must not be logged, got %d entries", logs.Len())
	}
}

func TestGormLoggerAdapterRequestID(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := NewGormLoggerAdapter(logger.Info)
	ctx := persistence.ContextWithRequestID(context.Background(), "req-123")
	adapter.Info(ctx, "scoped message")

	found := false
	for _, logEntry := range logs.All() {
		if logEntry.Message != "scoped message" {
			continue
		}
		for _, field := range logEntry.Context {
			if field.Key == "request_id" && field.String == "req-123" {
				found = true
			}
		}
	}
	if !found {
		t.Error("request_id field not attached from context")
	}
}
