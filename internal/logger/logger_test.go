package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileOnly(t *testing.T, lvl, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := Setup(Options{
		Level: lvl,
		File:  FileConfig{Path: path, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	return string(data)
}

func TestNopBeforeSetup(t *testing.T) {
	if Log == nil || Sugar == nil {
		t.Fatal("global logger must never be nil")
	}
	// Must not panic.
	Debug("ignored")
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shadelab.log")
	err := Setup(Options{
		Level: "debug",
		File:  FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	payload := strings.Repeat("y", 200)
	for i := 0; i < 12000; i++ {
		Sugar.Infof("frame %d %s", i, payload)
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	rotated := 0
	for _, e := range entries {
		if e.Name() != "shadelab.log" && strings.HasPrefix(e.Name(), "shadelab-") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("expected a rotated file, got %d entries", len(entries))
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		name := tt.level
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			path := fileOnly(t, tt.level, name+".log")

			Debug("d")
			Info("i")
			Warn("w")
			Error("e")

			out := readLog(t, path)
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("missing %s", want)
				}
			}
			for _, bad := range tt.excluded {
				if strings.Contains(out, bad) {
					t.Errorf("unexpected %s at level %q", bad, tt.level)
				}
			}
		})
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	path := fileOnly(t, "info", "runtime.log")

	Debug("hidden")
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	Debug("shown")

	out := readLog(t, path)
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written before level change")
	}
	if !strings.Contains(out, "shown") {
		t.Error("debug entry missing after level change")
	}
	_ = SetLevel("info")
}

func TestNamedTagsComponent(t *testing.T) {
	path := fileOnly(t, "info", "named.log")
	Named("renderer").Info("ready")

	if out := readLog(t, path); !strings.Contains(out, "renderer") {
		t.Errorf("component name missing from %q", out)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/shadelab.log")

	if cfg.Path != "/tmp/shadelab.log" {
		t.Errorf("path = %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("MaxSizeMB = %d, want 20", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("MaxBackups = %d, want 3", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 14 {
		t.Errorf("MaxAgeDays = %d, want 14", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("Compress should default to true")
	}
}
