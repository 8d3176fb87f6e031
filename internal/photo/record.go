package photo

import (
	"maps"
	"time"
)

// TimeKey is the Exif key carrying the original capture timestamp.
const TimeKey = "DateTimeOriginal"

// TimeLayout is the Exif timestamp layout (one-second resolution).
const TimeLayout = "2006:01:02 15:04:05"

// settingsKeys is the closed set of Exif.Photo attributes that define
// setting-equality between captures. The capture timestamp is deliberately
// not part of the set.
var settingsKeys = []string{
	"Contrast",
	"ExposureBiasValue",
	"ExposureMode",
	"ExposureProgram",
	"ExposureTime",
	"FNumber",
	"Flash",
	"FocalLength",
	"GainControl",
	"ISOSpeedRatings",
	"LightSource",
	"MaxApertureValue",
	"MeteringMode",
	"RecommendedExposureIndex",
	"Saturation",
	"SceneCaptureType",
	"SensingMethod",
	"SensitivityType",
	"Sharpness",
	"WhiteBalance",
}

var settingsKeySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(settingsKeys))
	for _, key := range settingsKeys {
		set[key] = struct{}{}
	}
	return set
}()

// SettingsKeys returns the attribute names that participate in
// setting-equality, in a stable order.
func SettingsKeys() []string {
	out := make([]string, len(settingsKeys))
	copy(out, settingsKeys)
	return out
}

// IsSettingsKey reports whether key belongs to the setting-equality set.
func IsSettingsKey(key string) bool {
	_, ok := settingsKeySet[key]
	return ok
}

// CaptureRecord is the normalized per-image metadata the detector consumes.
type CaptureRecord struct {
	// Name is the file stem, unique within a working directory.
	Name string
	// Path is the absolute path of the source RAW file.
	Path string
	// Settings maps each settings key to the raw value reported by the camera.
	Settings map[string]string
	// CapturedAt is the parsed DateTimeOriginal timestamp.
	CapturedAt time.Time
}

// SettingsEqual reports whether both records carry exactly the same settings
// mapping. Partial or fuzzy matches never count as equal.
func (r CaptureRecord) SettingsEqual(other CaptureRecord) bool {
	return maps.Equal(r.Settings, other.Settings)
}
