package logger

import (
	"path/filepath"
	"testing"

	"foodorder/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestHelpersAreNilSafe(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	Info("dropped")
	Warn("dropped")
	Debug("dropped")
	if Get() == nil {
		t.Fatal("Get() returned nil before Init")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync() = %v", err)
	}
}

func TestInitFileOutput(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	cfg := &config.LogConfig{
		Level:    "debug",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "logs", "app.log"),
	}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !Get().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	UpdateLevel("error")
	if Get().Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be disabled after UpdateLevel(error)")
	}
	WithRequestID("abc").Error("written", zap.Int("n", 1))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"unknown": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
