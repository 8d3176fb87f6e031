package burststore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pano/internal/burst"
	"pano/internal/services"
)

func testBursts() []burst.Burst {
	return []burst.Burst{
		{Frames: []burst.Frame{
			{Name: "a1", Path: "/p/a1.nef"},
			{Name: "a2", Path: "/p/a2.nef"},
		}},
		{Frames: []burst.Frame{
			{Name: "b1", Path: "/p/b1.nef"},
			{Name: "b2", Path: "/p/b2.nef"},
			{Name: "b3", Path: "/p/b3.nef"},
		}},
		{Frames: []burst.Frame{
			{Name: "c1", Path: "/p/c1.nef"},
			{Name: "c2", Path: "/p/c2.nef"},
		}},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), ".pano", "bursts.json"), nil)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	if store.Exists() {
		t.Fatal("fresh store should not report an artifact")
	}

	saved := testBursts()
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("artifact missing after Save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("loaded %d bursts, want %d", len(loaded), len(saved))
	}
	for i := range saved {
		wantPaths := saved[i].Paths()
		gotPaths := loaded[i].Paths()
		if len(gotPaths) != len(wantPaths) {
			t.Fatalf("burst %d: %v, want %v", i, gotPaths, wantPaths)
		}
		for j := range wantPaths {
			if gotPaths[j] != wantPaths[j] {
				t.Errorf("burst %d frame %d: %q, want %q", i, j, gotPaths[j], wantPaths[j])
			}
		}
		if loaded[i].Frames[0].Name != saved[i].Frames[0].Name {
			t.Errorf("burst %d: name %q not rederived from path", i, loaded[i].Frames[0].Name)
		}
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load()
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadCorruptArtifact(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, services.ErrStorageCorrupt) {
		t.Fatalf("err = %v, want ErrStorageCorrupt", err)
	}
}

func TestSaveOverwritesPriorArtifact(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(testBursts()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(testBursts()[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d bursts, want 1", len(loaded))
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Remove(); err != nil {
		t.Fatalf("removing absent artifact: %v", err)
	}
	if err := store.Save(testBursts()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Exists() {
		t.Fatal("artifact still present after Remove")
	}
}

func TestRejectSingleIndex(t *testing.T) {
	collection := testBursts()
	result, err := Reject(collection, []int{1})
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("got %d bursts, want 2", len(result))
	}
	if result[0].Name() != "a1-a2" || result[1].Name() != "c1-c2" {
		t.Errorf("remaining bursts %q, %q", result[0].Name(), result[1].Name())
	}
	if len(collection) != 3 {
		t.Error("input collection mutated")
	}
}

func TestRejectBatchUsesSnapshotIndices(t *testing.T) {
	// Indices 0 and 2 address the original listing; removing 0 first must not
	// shift 2 onto the wrong element.
	result, err := Reject(testBursts(), []int{0, 2})
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("got %d bursts, want 1", len(result))
	}
	if result[0].Name() != "b1-b3" {
		t.Errorf("survivor = %q, want b1-b3", result[0].Name())
	}
}

func TestRejectDuplicateIndices(t *testing.T) {
	result, err := Reject(testBursts(), []int{1, 1})
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("got %d bursts, want 2", len(result))
	}
}

func TestRejectOutOfRangeFailsWholeBatch(t *testing.T) {
	collection := testBursts()
	_, err := Reject(collection, []int{0, 7})
	if !errors.Is(err, services.ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
	if len(collection) != 3 {
		t.Error("failed batch must not mutate the collection")
	}
}
