package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.normalizeTools()
	c.normalizeStitch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.StylesDir, err = ExpandPath(c.Paths.StylesDir); err != nil {
		return fmt.Errorf("paths.styles_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	if len(c.Detection.RawExtensions) == 0 {
		c.Detection.RawExtensions = defaultRawExtensions()
	}
	normalized := make([]string, 0, len(c.Detection.RawExtensions))
	for _, ext := range c.Detection.RawExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Detection.RawExtensions = normalized
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.Exiv2) == "" {
		c.Tools.Exiv2 = defaultExiv2Binary
	}
	if strings.TrimSpace(c.Tools.Darktable) == "" {
		c.Tools.Darktable = defaultDarktableBinary
	}
	if strings.TrimSpace(c.Tools.DarktableCLI) == "" {
		c.Tools.DarktableCLI = defaultDarktableCLIBinary
	}
	if strings.TrimSpace(c.Tools.Viewer) == "" {
		c.Tools.Viewer = defaultViewerBinary
	}
}

func (c *Config) normalizeStitch() {
	if strings.TrimSpace(c.Stitch.IntermediateFormat) == "" {
		c.Stitch.IntermediateFormat = defaultIntermediateFormat
	}
	if !strings.HasPrefix(c.Stitch.IntermediateFormat, ".") {
		c.Stitch.IntermediateFormat = "." + c.Stitch.IntermediateFormat
	}
	if len(c.Stitch.DefaultProjections) == 0 {
		c.Stitch.DefaultProjections = []string{defaultProjection}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
