package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  ZapLoggerConfig
	}{
		{"production json", ZapLoggerConfig{Encoding: "json", Level: "info"}},
		{"development console", ZapLoggerConfig{IsDevelopment: true, Encoding: "console", Level: "debug"}},
		{"bad level falls back", ZapLoggerConfig{Level: "loud"}},
		{"bad encoding falls back to nop", ZapLoggerConfig{Encoding: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewZapLogger(&tt.cfg)
			if l == nil {
				t.Fatal("logger is nil")
			}
			l.With(zap.String("k", "v")).Debug("hello")
		})
	}
}

func TestWrap_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := Wrap(zap.New(core)).With(zap.String("run_id", "abc"))

	l.Debug("dropped")
	l.Info("kept", zap.Int("n", 1))
	l.Warn("careful")

	if logs.Len() != 2 {
		t.Fatalf("got %d entries, want 2", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "kept" {
		t.Errorf("message = %q", entry.Message)
	}
	ctx := entry.ContextMap()
	if ctx["run_id"] != "abc" || ctx["n"] != int64(1) {
		t.Errorf("context = %v", ctx)
	}
}
