package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	jpegDirName   = "Jpeg"
	panoDirName   = "Panoramas"
	trashDirName  = "Trash"
	stateDirName  = ".pano"
	artifactName  = "bursts.json"
	catalogName   = "catalog.db"
	lockName      = "pano.lock"
	xmpSidecarExt = ".xmp"
)

// Layout describes one working directory of RAW captures and the folders
// pano derives from it.
type Layout struct {
	Root        string
	JpegDir     string
	PanoramaDir string
	TrashDir    string
	StateDir    string
}

// NewLayout resolves root and verifies it is an existing directory.
func NewLayout(root string) (*Layout, error) {
	resolved, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat root %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", resolved)
	}

	return &Layout{
		Root:        resolved,
		JpegDir:     filepath.Join(resolved, jpegDirName),
		PanoramaDir: filepath.Join(resolved, panoDirName),
		TrashDir:    filepath.Join(resolved, trashDirName),
		StateDir:    filepath.Join(resolved, stateDirName),
	}, nil
}

// EnsureDirectories creates the derived folders if missing.
func (l *Layout) EnsureDirectories() error {
	for _, dir := range []string{l.JpegDir, l.PanoramaDir, l.TrashDir, l.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ArtifactPath is the location of the persisted burst collection.
func (l *Layout) ArtifactPath() string { return filepath.Join(l.StateDir, artifactName) }

// CatalogPath is the location of the per-photo catalog database.
func (l *Layout) CatalogPath() string { return filepath.Join(l.StateDir, catalogName) }

// LockPath is the advisory lock file guarding mutating commands.
func (l *Layout) LockPath() string { return filepath.Join(l.StateDir, lockName) }

// JpegPath returns the rendered JPEG location for a photo name.
func (l *Layout) JpegPath(name string) string {
	return filepath.Join(l.JpegDir, name+".jpg")
}

// XmpPath returns the darktable sidecar location for a RAW file.
func (l *Layout) XmpPath(rawPath string) string {
	return rawPath + xmpSidecarExt
}

// TrashPath returns where a discarded RAW file is moved to.
func (l *Layout) TrashPath(rawPath string) string {
	return filepath.Join(l.TrashDir, filepath.Base(rawPath))
}

// ListRaws enumerates RAW files directly under the root whose lowercased
// extension matches one of extensions, sorted by name. Two files sharing a
// stem (e.g. shot.raw and shot.nef) are rejected because stems identify
// photos everywhere downstream.
func (l *Layout) ListRaws(extensions []string) ([]string, error) {
	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = struct{}{}
	}

	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("read root %q: %w", l.Root, err)
	}

	stems := make(map[string]string)
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := wanted[ext]; !ok {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if prior, dup := stems[stem]; dup {
			return nil, fmt.Errorf("duplicate photo name %q (%s and %s)", stem, prior, entry.Name())
		}
		stems[stem] = entry.Name()
		paths = append(paths, filepath.Join(l.Root, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
