package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantErr   bool
		wantLevel zapcore.Level
	}{
		{name: "prod default", env: "prod", wantLevel: zapcore.InfoLevel},
		{name: "local default", env: "local", wantLevel: zapcore.DebugLevel},
		{name: "override", env: "prod", level: "warn", wantLevel: zapcore.WarnLevel},
		{name: "unknown env", env: "staging", wantErr: true},
		{name: "bad level", env: "local", level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.env, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := l.Level(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)

	if FromContext(ctx) != l {
		t.Error("expected stored logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("expected nop logger, got nil")
	}

	fallback := zap.NewExample()
	if FromContextOr(ctx, fallback) != l {
		t.Error("stored logger should win over fallback")
	}
	if FromContextOr(context.Background(), fallback) != fallback {
		t.Error("expected fallback")
	}
}
