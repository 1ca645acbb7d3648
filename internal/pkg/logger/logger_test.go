package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func resetLogger() {
	mu.Lock()
	global = nil
	mu.Unlock()
}

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", "info", "json", zapcore.InfoLevel, false},
		{"console debug", "debug", "console", zapcore.DebugLevel, false},
		{"default format warn", "warn", "", zapcore.WarnLevel, false},
		{"invalid level", "loud", "json", 0, true},
		{"invalid format", "info", "xml", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger()
			err := Init(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
			}
			if !tt.wantErr && GetLevel() != tt.wantLevel {
				t.Fatalf("GetLevel() = %v, want %v", GetLevel(), tt.wantLevel)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	resetLogger()
	if err := Init("info", "json"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := SetLevel("error"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if GetLevel() != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", GetLevel())
	}
	if L().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be disabled at error level")
	}
	if err := SetLevel("nope"); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestLBeforeInitIsNop(t *testing.T) {
	resetLogger()
	if L() == nil {
		t.Fatalf("expected fallback logger")
	}
	With().Info("dropped")
	if err := Sync(); err != nil {
		t.Fatalf("sync without logger: %v", err)
	}
}

func TestNewDoesNotReplaceGlobal(t *testing.T) {
	resetLogger()
	l, err := New("debug", "console")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug enabled")
	}
	mu.RLock()
	defer mu.RUnlock()
	if global != nil {
		t.Fatalf("New must not install a global logger")
	}
}
