package exiv2

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pano/internal/photo"
	"pano/internal/services"
)

// Reader defines the behaviour the workflow needs from metadata extraction.
type Reader interface {
	ReadMetadata(ctx context.Context, path string) (photo.CaptureRecord, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps exiv2 CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs an exiv2 client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiv2 binary required")
	}
	client := &Client{
		binary: binary,
		exec:   services.NewExecutor(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ReadMetadata extracts the photographic metadata group for one file and
// normalizes it into a CaptureRecord. Extraction failure, an unparsable
// line, or any missing mandatory attribute is fatal for that file: detection
// must never proceed with a partially populated record.
func (c *Client) ReadMetadata(ctx context.Context, path string) (photo.CaptureRecord, error) {
	base := filepath.Base(path)

	var lines []string
	err := c.exec.Run(ctx, c.binary,
		[]string{"-g", "Exif.Photo", "-Pkv", path},
		func(line string) { lines = append(lines, line) })
	if err != nil {
		return photo.CaptureRecord{}, services.Wrap(services.ErrMetadata, "exiv2", "read metadata", base, err)
	}

	settings := make(map[string]string, len(photo.SettingsKeys()))
	var capturedAt time.Time
	var haveTime bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, err := parseLine(line)
		if err != nil {
			return photo.CaptureRecord{}, services.Wrap(services.ErrMetadata, "exiv2", "read metadata", base, err)
		}
		switch {
		case key == photo.TimeKey:
			parsed, err := time.Parse(photo.TimeLayout, value)
			if err != nil {
				return photo.CaptureRecord{}, services.Wrap(services.ErrMetadata, "exiv2", "read metadata", base,
					fmt.Errorf("parse %s %q: %w", photo.TimeKey, value, err))
			}
			capturedAt = parsed
			haveTime = true
		case photo.IsSettingsKey(key):
			settings[key] = value
		}
	}

	if !haveTime {
		return photo.CaptureRecord{}, services.Wrap(services.ErrMetadata, "exiv2", "read metadata", base,
			fmt.Errorf("missing %s", photo.TimeKey))
	}
	if missing := missingKeys(settings); len(missing) > 0 {
		return photo.CaptureRecord{}, services.Wrap(services.ErrMetadata, "exiv2", "read metadata", base,
			fmt.Errorf("missing attributes: %s", strings.Join(missing, ", ")))
	}

	return photo.CaptureRecord{
		Name:       strings.TrimSuffix(base, filepath.Ext(base)),
		Path:       path,
		Settings:   settings,
		CapturedAt: capturedAt,
	}, nil
}

// parseLine splits one "Exif.Photo.Key value" output line, keeping only the
// final segment of the dotted key path.
func parseLine(line string) (string, string, error) {
	idx := strings.IndexAny(line, " \t")
	if idx <= 0 {
		return "", "", fmt.Errorf("unparsable metadata line %q", line)
	}
	key := line[:idx]
	value := strings.TrimSpace(line[idx:])
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key, value, nil
}

func missingKeys(settings map[string]string) []string {
	var missing []string
	for _, key := range photo.SettingsKeys() {
		if _, ok := settings[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
