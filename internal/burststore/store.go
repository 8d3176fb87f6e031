package burststore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"pano/internal/burst"
	"pano/internal/logging"
	"pano/internal/services"
)

// Store owns the durable representation of one project's burst collection.
// Callers receive mutable in-memory copies and must call Save to persist any
// mutation; the store never auto-persists.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store for the artifact at path.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "burststore"),
	}
}

// Path returns the artifact location.
func (s *Store) Path() string { return s.path }

// Exists reports whether a persisted artifact is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the persisted collection. A missing artifact yields ErrNotFound;
// an unreadable or undecodable one yields ErrStorageCorrupt — no auto-repair
// is attempted, the user must invalidate and re-detect.
func (s *Store) Load() ([]burst.Burst, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "burststore", "load", s.path, nil)
		}
		return nil, services.Wrap(services.ErrStorageCorrupt, "burststore", "load", s.path, err)
	}

	var nested [][]string
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, services.Wrap(services.ErrStorageCorrupt, "burststore", "load", s.path, err)
	}

	collection := make([]burst.Burst, 0, len(nested))
	for _, paths := range nested {
		frames := make([]burst.Frame, len(paths))
		for i, path := range paths {
			frames[i] = burst.FrameFromPath(path)
		}
		collection = append(collection, burst.Burst{Frames: frames})
	}

	s.logger.Debug("loaded burst collection",
		logging.Int("bursts", len(collection)),
		logging.String("path", s.path))
	return collection, nil
}

// Save serializes the full collection and writes it atomically via a temp
// file rename, overwriting any prior artifact. The on-disk format is a JSON
// array of path arrays; there is no schema version.
func (s *Store) Save(collection []burst.Burst) error {
	nested := make([][]string, len(collection))
	for i, b := range collection {
		nested[i] = b.Paths()
	}

	data, err := json.MarshalIndent(nested, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.Debug("saved burst collection",
		logging.Int("bursts", len(collection)),
		logging.String("path", s.path))
	return nil
}

// Remove deletes the persisted artifact, forcing re-detection on the next
// run. Removing an absent artifact is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}

// Reject returns a copy of collection without the bursts at the given
// 0-based positions. All indices address the collection as passed in: the
// whole batch is validated against that snapshot before any removal, so an
// out-of-range index fails the batch without mutating anything. Duplicate
// indices are collapsed.
func Reject(collection []burst.Burst, indices []int) ([]burst.Burst, error) {
	unique := make(map[int]struct{}, len(indices))
	for _, index := range indices {
		if index < 0 || index >= len(collection) {
			return nil, services.Wrap(services.ErrIndexOutOfRange, "burststore", "reject",
				fmt.Sprintf("index %d (collection has %d bursts)", index, len(collection)), nil)
		}
		unique[index] = struct{}{}
	}

	ordered := make([]int, 0, len(unique))
	for index := range unique {
		ordered = append(ordered, index)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))

	result := append([]burst.Burst(nil), collection...)
	for _, index := range ordered {
		result = append(result[:index], result[index+1:]...)
	}
	return result, nil
}
