package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"pano/internal/services"
)

// Photo is one catalogued capture and its derived-output flags.
type Photo struct {
	Name       string
	Path       string
	CapturedAt time.Time
	HasJpeg    bool
	HasPano    bool
	HasXmp     bool
}

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS photos (
    name        TEXT PRIMARY KEY,
    path        TEXT NOT NULL,
    captured_at TEXT NOT NULL,
    has_jpeg    INTEGER NOT NULL DEFAULT 0,
    has_pano    INTEGER NOT NULL DEFAULT 0,
    has_xmp     INTEGER NOT NULL DEFAULT 0
)`

// Open initializes or connects to the catalog database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Replace swaps the full catalog contents for the provided photos in one
// transaction. The catalog is a cache of filesystem state; a full refresh
// after each scan keeps it from drifting.
func (s *Store) Replace(ctx context.Context, photos []Photo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM photos`); err != nil {
		return fmt.Errorf("clear photos: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO photos (name, path, captured_at, has_jpeg, has_pano, has_xmp)
         VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, photo := range photos {
		_, err := stmt.ExecContext(ctx,
			photo.Name,
			photo.Path,
			photo.CapturedAt.UTC().Format(time.RFC3339),
			boolToInt(photo.HasJpeg),
			boolToInt(photo.HasPano),
			boolToInt(photo.HasXmp),
		)
		if err != nil {
			return fmt.Errorf("insert photo %q: %w", photo.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Get returns the photo with the given name.
func (s *Store) Get(ctx context.Context, name string) (*Photo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, path, captured_at, has_jpeg, has_pano, has_xmp
         FROM photos WHERE name = ?`, name)
	photo, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.Wrap(services.ErrNotFound, "catalog", "get", name, nil)
		}
		return nil, fmt.Errorf("get photo %q: %w", name, err)
	}
	return photo, nil
}

// List returns all catalogued photos ordered by name.
func (s *Store) List(ctx context.Context) ([]Photo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, path, captured_at, has_jpeg, has_pano, has_xmp
         FROM photos ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, *photo)
	}
	return photos, rows.Err()
}

// SetHasJpeg updates the rendered-JPEG flag for a photo.
func (s *Store) SetHasJpeg(ctx context.Context, name string, value bool) error {
	return s.setFlag(ctx, "has_jpeg", name, value)
}

// SetHasPano updates the stitched-panorama flag for a photo.
func (s *Store) SetHasPano(ctx context.Context, name string, value bool) error {
	return s.setFlag(ctx, "has_pano", name, value)
}

// SetHasXmp updates the darktable-sidecar flag for a photo.
func (s *Store) SetHasXmp(ctx context.Context, name string, value bool) error {
	return s.setFlag(ctx, "has_xmp", name, value)
}

// Remove drops a photo from the catalog.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("remove photo %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "catalog", "remove", name, nil)
	}
	return nil
}

func (s *Store) setFlag(ctx context.Context, column, name string, value bool) error {
	// column is one of the fixed flag names above, never caller input.
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE photos SET %s = ? WHERE name = ?`, column),
		boolToInt(value), name)
	if err != nil {
		return fmt.Errorf("update %s for %q: %w", column, name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "catalog", "update", name, nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*Photo, error) {
	var photo Photo
	var capturedAt string
	var hasJpeg, hasPano, hasXmp int
	if err := row.Scan(&photo.Name, &photo.Path, &capturedAt, &hasJpeg, &hasPano, &hasXmp); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339, capturedAt)
	if err != nil {
		return nil, fmt.Errorf("parse captured_at %q: %w", capturedAt, err)
	}
	photo.CapturedAt = parsed
	photo.HasJpeg = hasJpeg != 0
	photo.HasPano = hasPano != 0
	photo.HasXmp = hasXmp != 0
	return &photo, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
