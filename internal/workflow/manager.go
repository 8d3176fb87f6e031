package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pano/internal/burst"
	"pano/internal/burststore"
	"pano/internal/catalog"
	"pano/internal/config"
	"pano/internal/logging"
	"pano/internal/photo"
	"pano/internal/project"
	"pano/internal/services"
	"pano/internal/services/darktable"
	"pano/internal/services/exiv2"
	"pano/internal/services/hugin"
	"pano/internal/services/viewer"
)

// Deps bundles the external tool clients the manager drives. Every field is
// required.
type Deps struct {
	Metadata  exiv2.Reader
	Converter darktable.Converter
	Stitcher  hugin.Stitcher
	Viewer    viewer.Opener
}

// StitchOptions configures one panorama materialization.
type StitchOptions struct {
	// Style is the darktable style applied while converting frames; empty
	// means no style.
	Style string
	// Projections to render; empty falls back to the configured defaults.
	Projections []string
	// Adjust opens the interactive hugin editor before rendering.
	Adjust bool
}

// Manager coordinates burst detection, persistence, and panorama
// materialization for one project directory.
type Manager struct {
	cfg     *config.Config
	layout  *project.Layout
	store   *burststore.Store
	catalog *catalog.Store
	deps    Deps
	logger  *slog.Logger
}

// New constructs a manager. The catalog store is owned by the caller.
func New(cfg *config.Config, layout *project.Layout, cat *catalog.Store, deps Deps, logger *slog.Logger) (*Manager, error) {
	if cfg == nil || layout == nil || cat == nil {
		return nil, errors.New("workflow: config, layout, and catalog required")
	}
	if deps.Metadata == nil || deps.Converter == nil || deps.Stitcher == nil || deps.Viewer == nil {
		return nil, errors.New("workflow: all tool clients required")
	}
	return &Manager{
		cfg:     cfg,
		layout:  layout,
		store:   burststore.New(layout.ArtifactPath(), logger),
		catalog: cat,
		deps:    deps,
		logger:  logging.NewComponentLogger(logger, "workflow"),
	}, nil
}

// Layout exposes the project layout the manager operates on.
func (m *Manager) Layout() *project.Layout { return m.layout }

// Bursts returns the project's burst collection, detecting and persisting it
// when no artifact exists yet. A persisted artifact is authoritative: it is
// returned as-is without consulting the filesystem or re-running detection.
func (m *Manager) Bursts(ctx context.Context) ([]burst.Burst, error) {
	if m.store.Exists() {
		return m.store.Load()
	}
	return m.detect(ctx)
}

// Rescan discards any persisted collection and runs detection from scratch.
func (m *Manager) Rescan(ctx context.Context) ([]burst.Burst, error) {
	if err := m.store.Remove(); err != nil {
		return nil, err
	}
	return m.detect(ctx)
}

// Clear removes the persisted collection without re-detecting.
func (m *Manager) Clear() error {
	return m.store.Remove()
}

// Reject removes the bursts at the given 0-based indices from the persisted
// collection. All indices address the collection as currently persisted; the
// batch is validated in full before anything is removed.
func (m *Manager) Reject(ctx context.Context, indices []int) ([]burst.Burst, error) {
	collection, err := m.Bursts(ctx)
	if err != nil {
		return nil, err
	}
	remaining, err := burststore.Reject(collection, indices)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(remaining); err != nil {
		return nil, err
	}
	m.logger.Info("rejected bursts",
		logging.Int("removed", len(collection)-len(remaining)),
		logging.Int("remaining", len(remaining)))
	return remaining, nil
}

// Burst returns the burst at the given 0-based index.
func (m *Manager) Burst(ctx context.Context, index int) (burst.Burst, error) {
	collection, err := m.Bursts(ctx)
	if err != nil {
		return burst.Burst{}, err
	}
	if index < 0 || index >= len(collection) {
		return burst.Burst{}, services.Wrap(services.ErrIndexOutOfRange, "workflow", "burst",
			fmt.Sprintf("index %d (collection has %d bursts)", index, len(collection)), nil)
	}
	return collection[index], nil
}

// Stitch materializes the burst at index into one panorama per requested
// projection under the Panoramas folder. Frames are first rendered to the
// intermediate format in a temp directory, applying the style if given, then
// handed to the hugin chain. Output names encode burst, style, and whether
// the project was adjusted interactively, so differently produced panoramas
// never collide.
func (m *Manager) Stitch(ctx context.Context, index int, opts StitchOptions) ([]string, error) {
	b, err := m.Burst(ctx, index)
	if err != nil {
		return nil, err
	}

	projections := opts.Projections
	if len(projections) == 0 {
		projections = m.cfg.Stitch.DefaultProjections
	}

	runID := uuid.NewString()[:8]
	logger := m.logger.With(
		logging.String("run", runID),
		logging.String("burst", b.Name()))
	logger.Info("stitching burst",
		logging.Int("frames", b.Len()),
		logging.String("style", opts.Style),
		logging.Bool("adjust", opts.Adjust))

	if err := m.layout.EnsureDirectories(); err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "pano-stitch-")
	if err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	frames := make([]string, 0, b.Len())
	for _, frame := range b.Frames {
		dst := filepath.Join(workDir, frame.Name+m.cfg.Stitch.IntermediateFormat)
		if err := m.deps.Converter.Convert(ctx, frame.Path, dst, opts.Style, false); err != nil {
			return nil, err
		}
		frames = append(frames, dst)
	}

	outputs, err := m.deps.Stitcher.Stitch(ctx, frames, workDir, m.layout.PanoramaDir, hugin.Options{
		Prefix:      stitchPrefix(b, opts),
		Projections: projections,
		Adjust:      opts.Adjust,
	})
	if err != nil {
		return nil, err
	}

	for _, frame := range b.Frames {
		if err := m.catalog.SetHasPano(ctx, frame.Name, true); err != nil && !errors.Is(err, services.ErrNotFound) {
			return nil, err
		}
	}

	logger.Info("stitched burst", logging.Int("outputs", len(outputs)))
	return outputs, nil
}

// stitchPrefix names a stitch run's outputs: burst name, style (or "none"),
// and an adjusted marker.
func stitchPrefix(b burst.Burst, opts StitchOptions) string {
	style := opts.Style
	if style == "" {
		style = "none"
	}
	adjusted := "n"
	if opts.Adjust {
		adjusted = "a"
	}
	return b.Name() + "-" + style + "-" + adjusted
}

// ConvertJpeg renders one photo into the Jpeg folder and returns the output
// path. An existing JPEG is kept unless overwrite is set.
func (m *Manager) ConvertJpeg(ctx context.Context, name, style string, overwrite bool) (string, error) {
	rawPath, err := m.findRaw(name)
	if err != nil {
		return "", err
	}
	if err := m.layout.EnsureDirectories(); err != nil {
		return "", err
	}
	dst := m.layout.JpegPath(name)
	if err := m.deps.Converter.Convert(ctx, rawPath, dst, style, overwrite); err != nil {
		return "", err
	}
	if err := m.catalog.SetHasJpeg(ctx, name, true); err != nil && !errors.Is(err, services.ErrNotFound) {
		return "", err
	}
	return dst, nil
}

// Discard moves a photo's RAW file (and darktable sidecar, if present) to the
// Trash folder, drops it from the catalog, and rewrites the persisted burst
// collection without it. A burst reduced to a single frame by the removal is
// eliminated.
func (m *Manager) Discard(ctx context.Context, name string) error {
	rawPath, err := m.findRaw(name)
	if err != nil {
		return err
	}
	if err := m.layout.EnsureDirectories(); err != nil {
		return err
	}

	if err := os.Rename(rawPath, m.layout.TrashPath(rawPath)); err != nil {
		return fmt.Errorf("move %s to trash: %w", name, err)
	}
	sidecar := m.layout.XmpPath(rawPath)
	if fileExists(sidecar) {
		if err := os.Rename(sidecar, m.layout.TrashPath(sidecar)); err != nil {
			return fmt.Errorf("move sidecar for %s to trash: %w", name, err)
		}
	}

	if err := m.catalog.Remove(ctx, name); err != nil && !errors.Is(err, services.ErrNotFound) {
		return err
	}

	if !m.store.Exists() {
		m.logger.Info("discarded photo", logging.String("photo", name))
		return nil
	}
	collection, err := m.store.Load()
	if err != nil {
		return err
	}
	remaining := make([]burst.Burst, 0, len(collection))
	for _, b := range collection {
		frames := make([]burst.Frame, 0, b.Len())
		for _, frame := range b.Frames {
			if frame.Name != name {
				frames = append(frames, frame)
			}
		}
		if len(frames) >= 2 {
			remaining = append(remaining, burst.Burst{Frames: frames})
		}
	}
	if err := m.store.Save(remaining); err != nil {
		return err
	}
	m.logger.Info("discarded photo",
		logging.String("photo", name),
		logging.Int("bursts", len(remaining)))
	return nil
}

// Show opens the panoramas already rendered for the burst at index in the
// configured viewer, or the burst's source frames when none exist yet.
func (m *Manager) Show(ctx context.Context, index int) error {
	b, err := m.Burst(ctx, index)
	if err != nil {
		return err
	}
	pattern := filepath.Join(m.layout.PanoramaDir, b.Name()+"-*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("glob panoramas: %w", err)
	}
	if len(matches) > 0 {
		return m.deps.Viewer.Open(ctx, matches...)
	}
	return m.deps.Viewer.Open(ctx, b.Paths()...)
}

// OpenPhoto shows one photo in the configured viewer, preferring its rendered
// JPEG over the RAW file.
func (m *Manager) OpenPhoto(ctx context.Context, name string) error {
	if jpeg := m.layout.JpegPath(name); fileExists(jpeg) {
		return m.deps.Viewer.Open(ctx, jpeg)
	}
	rawPath, err := m.findRaw(name)
	if err != nil {
		return err
	}
	return m.deps.Viewer.Open(ctx, rawPath)
}

// EditPhoto opens one photo in the interactive darktable editor.
func (m *Manager) EditPhoto(ctx context.Context, name string) error {
	rawPath, err := m.findRaw(name)
	if err != nil {
		return err
	}
	return m.deps.Converter.Edit(ctx, rawPath)
}

// Photos lists the catalogued photos.
func (m *Manager) Photos(ctx context.Context) ([]catalog.Photo, error) {
	return m.catalog.List(ctx)
}

// detect scans the project root, extracts metadata for every capture, runs
// burst detection, and persists both the collection and a refreshed catalog.
// Any single metadata failure fails the whole run: detection never proceeds
// with partial records.
func (m *Manager) detect(ctx context.Context) ([]burst.Burst, error) {
	runID := uuid.NewString()[:8]
	logger := m.logger.With(logging.String("run", runID))

	paths, err := m.layout.ListRaws(m.cfg.Detection.RawExtensions)
	if err != nil {
		return nil, err
	}
	logger.Info("scanning project",
		logging.String("root", m.layout.Root),
		logging.Int("captures", len(paths)))

	records := make([]photo.CaptureRecord, 0, len(paths))
	for _, path := range paths {
		record, err := m.deps.Metadata.ReadMetadata(ctx, path)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	collection := burst.Detect(records, m.cfg.GapThreshold())
	if err := m.store.Save(collection); err != nil {
		return nil, err
	}
	if err := m.refreshCatalog(ctx, records); err != nil {
		return nil, err
	}

	logger.Info("detected bursts",
		logging.Int("bursts", len(collection)),
		logging.Int("captures", len(records)))
	return collection, nil
}

// refreshCatalog replaces the catalog with the freshly scanned captures.
// Derived-output flags are recomputed from the filesystem where possible; the
// stitched flag survives from the previous catalog because panorama outputs
// are named per burst, not per photo.
func (m *Manager) refreshCatalog(ctx context.Context, records []photo.CaptureRecord) error {
	existing, err := m.catalog.List(ctx)
	if err != nil {
		return err
	}
	hasPano := make(map[string]bool, len(existing))
	for _, p := range existing {
		hasPano[p.Name] = p.HasPano
	}

	photos := make([]catalog.Photo, 0, len(records))
	for _, record := range records {
		photos = append(photos, catalog.Photo{
			Name:       record.Name,
			Path:       record.Path,
			CapturedAt: record.CapturedAt,
			HasJpeg:    fileExists(m.layout.JpegPath(record.Name)),
			HasPano:    hasPano[record.Name],
			HasXmp:     fileExists(m.layout.XmpPath(record.Path)),
		})
	}
	return m.catalog.Replace(ctx, photos)
}

// findRaw resolves a photo name to its RAW file under the project root.
func (m *Manager) findRaw(name string) (string, error) {
	paths, err := m.layout.ListRaws(m.cfg.Detection.RawExtensions)
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		base := filepath.Base(path)
		if strings.TrimSuffix(base, filepath.Ext(base)) == name {
			return path, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "workflow", "find photo", name, nil)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
