package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.GapThreshold(); got != 4*time.Second {
		t.Errorf("GapThreshold = %v, want 4s", got)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[detection]
gap_threshold_seconds = 10
raw_extensions = ["NEF", ".arw"]

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Detection.GapThresholdSeconds != 10 {
		t.Errorf("gap threshold = %d, want 10", cfg.Detection.GapThresholdSeconds)
	}
	want := []string{".nef", ".arw"}
	if len(cfg.Detection.RawExtensions) != len(want) {
		t.Fatalf("extensions = %v, want %v", cfg.Detection.RawExtensions, want)
	}
	for i, ext := range want {
		if cfg.Detection.RawExtensions[i] != ext {
			t.Errorf("extension[%d] = %q, want %q", i, cfg.Detection.RawExtensions[i], ext)
		}
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	cfg, _, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if cfg.Detection.GapThresholdSeconds != defaultGapThresholdSeconds {
		t.Errorf("gap threshold = %d, want default", cfg.Detection.GapThresholdSeconds)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Detection.GapThresholdSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero gap threshold")
	}

	cfg = Default()
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported log format")
	}
}

func TestSampleConfigMentionsEverySection(t *testing.T) {
	sample := SampleConfig()
	for _, section := range []string{"[paths]", "[detection]", "[tools]", "[stitch]", "[logging]"} {
		if !strings.Contains(sample, section) {
			t.Errorf("sample config missing %s", section)
		}
	}
}
