package testsupport

import (
	"path/filepath"
	"testing"

	"pano/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.StylesDir = filepath.Join(base, "styles")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGapThreshold overrides the burst gap threshold, in seconds.
func WithGapThreshold(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Detection.GapThresholdSeconds = seconds
	}
}

// WithRawExtensions overrides the recognized capture file extensions.
func WithRawExtensions(exts ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Detection.RawExtensions = exts
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
