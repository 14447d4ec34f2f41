package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevel(t *testing.T) {
	if got := Level(true); got != zapcore.DebugLevel {
		t.Fatalf("debug level: got %v", got)
	}
	if got := Level(false); got != zapcore.WarnLevel {
		t.Fatalf("default level: got %v", got)
	}
}

func TestNew(t *testing.T) {
	logger, err := New(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug logger should enable debug level")
	}

	logger, err = New(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("non-debug logger should drop info")
	}
}

func TestWithLevelOverridesBaseLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	base := zap.New(core)
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger := WithLevel(base, level)

	logger.Debug("visible")
	base.Debug("filtered by base")
	if got := logs.FilterMessage("visible").Len(); got != 1 {
		t.Fatalf("debug entry through widened level: got %d", got)
	}
	if got := logs.FilterMessage("filtered by base").Len(); got != 0 {
		t.Fatalf("base logger must keep its level: got %d", got)
	}

	level.SetLevel(zapcore.WarnLevel)
	logger.With(zap.String("k", "v")).Info("muted")
	logger.Error("kept")
	if got := logs.FilterMessage("muted").Len(); got != 0 {
		t.Fatalf("info entry after raising level: got %d", got)
	}
	if got := logs.FilterMessage("kept").Len(); got != 1 {
		t.Fatalf("error entry: got %d", got)
	}
}
