package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// resetLogging restores the disabled state after a test
func resetLogging(t *testing.T) {
	t.Helper()
	mu.Lock()
	base = zap.NewNop()
	enabled = false
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		base = zap.NewNop()
		enabled = false
		mu.Unlock()
	})
}

func TestDisabledByDefault(t *testing.T) {
	resetLogging(t)

	if Enabled() {
		t.Error("logging should start disabled")
	}

	logger := Named("scanner")
	if logger == nil {
		t.Fatal("Named returned nil before Enable")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("logger should discard entries before Enable")
	}
	logger.Debug("dropped")
	Sync()
}

func TestEnableWritesToFile(t *testing.T) {
	resetLogging(t)
	path := filepath.Join(t.TempDir(), "debug.log")

	if err := Enable(path); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !Enabled() {
		t.Error("Enabled should report true after Enable")
	}

	Named("scanner").Debug("root scanned", zap.String("root", "pictures"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "root scanned") || !strings.Contains(out, "scanner") {
		t.Errorf("log entry missing from %q", out)
	}
}

func TestEnableFallsBackToStderr(t *testing.T) {
	resetLogging(t)
	path := filepath.Join(t.TempDir(), "missing", "sub", "debug.log")

	if err := Enable(path); err != nil {
		t.Fatalf("Enable should recover with the stderr logger, got %v", err)
	}
	if !Enabled() {
		t.Error("Enabled should report true after falling back")
	}
	if !Logger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("fallback logger should accept debug entries")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("no log file should be created under a missing directory")
	}
}

func TestEnableWhenPathIsDirectory(t *testing.T) {
	resetLogging(t)
	dir := filepath.Join(t.TempDir(), "debug.log")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := Enable(dir); err != nil {
		t.Fatalf("Enable should recover with the stderr logger, got %v", err)
	}
	if !Enabled() {
		t.Error("Enabled should report true after falling back")
	}
}
