package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodorder/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestGormLoggerAdapterLevels(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  gormlogger.LogLevel
		wantInfo  bool
		wantTrace bool
	}{
		{"warn", gormlogger.Warn, false, false},
		{"info", gormlogger.Info, true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := observe(t)
			adapter := NewGormLoggerAdapter(tc.logLevel)
			ctx := context.Background()

			adapter.Info(ctx, "info %s", "message")
			adapter.Warn(ctx, "warn message")
			adapter.Error(ctx, "error message")
			adapter.Trace(ctx, time.Now(), func() (string, int64) {
				return "SELECT * FROM menus", 1
			}, nil)

			got := map[string]bool{}
			for _, entry := range logs.All() {
				got[entry.Message] = true
				if entry.Message == "SQL query executed" {
					if _, ok := entry.ContextMap()["sql"]; !ok {
						t.Error("trace entry has no sql field")
					}
				}
			}

			if got["info message"] != tc.wantInfo {
				t.Errorf("info logged = %v, want %v", got["info message"], tc.wantInfo)
			}
			if !got["warn message"] || !got["error message"] {
				t.Errorf("warn/error missing: %v", got)
			}
			if got["SQL query executed"] != tc.wantTrace {
				t.Errorf("trace logged = %v, want %v", got["SQL query executed"], tc.wantTrace)
			}
		})
	}
}

func TestGormLoggerAdapterSlowQueryAndErrors(t *testing.T) {
	logs := observe(t)
	adapter := NewGormLoggerAdapterWithConfig(gormlogger.Warn, &GormLoggerConfig{
		SlowThreshold:             10 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})
	ctx := persistence.ContextWithRequestID(context.Background(), "req-1")

	adapter.Trace(ctx, time.Now().Add(-50*time.Millisecond), func() (string, int64) {
		return "SELECT * FROM carts", 0
	}, nil)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM carts WHERE id = 9", 0
	}, gormlogger.ErrRecordNotFound)
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "UPDATE carts SET total_price = 1", 0
	}, errors.New("boom"))

	slow := logs.FilterMessage("Slow SQL query").All()
	if len(slow) != 1 {
		t.Fatalf("slow query entries = %d, want 1", len(slow))
	}
	if slow[0].ContextMap()["request_id"] != "req-1" {
		t.Errorf("request_id = %v", slow[0].ContextMap()["request_id"])
	}

	failed := logs.FilterMessage("Database operation failed").All()
	if len(failed) != 1 {
		t.Fatalf("failed entries = %d, want 1 (record not found is ignored)", len(failed))
	}
}

func TestGormLoggerAdapterSilent(t *testing.T) {
	logs := observe(t)
	adapter := NewGormLoggerAdapter(gormlogger.Info).LogMode(gormlogger.Silent)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, errors.New("ignored"))

	if logs.Len() != 0 {
		t.Errorf("silent adapter wrote %d entries", logs.Len())
	}
}
