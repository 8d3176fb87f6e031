package testsupport

import (
	"path/filepath"
	"testing"

	"pano/internal/catalog"
)

// MustOpenCatalog opens a catalog.Store backed by a temp database and
// registers cleanup.
func MustOpenCatalog(t testing.TB) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
