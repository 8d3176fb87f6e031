package config

const (
	defaultLogDir              = "~/.local/share/pano/logs"
	defaultStylesDir           = "~/.config/darktable/styles"
	defaultGapThresholdSeconds = 4
	defaultExiv2Binary         = "exiv2"
	defaultDarktableBinary     = "darktable"
	defaultDarktableCLIBinary  = "darktable-cli"
	defaultViewerBinary        = "gwenview"
	defaultIntermediateFormat  = ".tif"
	defaultProjection          = "rectilinear"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

func defaultRawExtensions() []string {
	return []string{".raw", ".nef"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			StylesDir: defaultStylesDir,
		},
		Detection: Detection{
			GapThresholdSeconds: defaultGapThresholdSeconds,
			RawExtensions:       defaultRawExtensions(),
		},
		Tools: Tools{
			Exiv2:        defaultExiv2Binary,
			Darktable:    defaultDarktableBinary,
			DarktableCLI: defaultDarktableCLIBinary,
			Viewer:       defaultViewerBinary,
		},
		Stitch: Stitch{
			DefaultProjections: []string{defaultProjection},
			IntermediateFormat: defaultIntermediateFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
