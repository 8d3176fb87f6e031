package project

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte{0x42}, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNewLayoutRejectsMissingRoot(t *testing.T) {
	if _, err := NewLayout(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestNewLayoutRejectsFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	touch(t, path)
	if _, err := NewLayout(path); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestEnsureDirectories(t *testing.T) {
	layout, err := NewLayout(t.TempDir())
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	if err := layout.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{layout.JpegDir, layout.PanoramaDir, layout.TrashDir, layout.StateDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s missing after EnsureDirectories", dir)
		}
	}
}

func TestListRawsFiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	layout, err := NewLayout(root)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	touch(t, filepath.Join(root, "b.nef"))
	touch(t, filepath.Join(root, "a.NEF"))
	touch(t, filepath.Join(root, "c.raw"))
	touch(t, filepath.Join(root, "skip.jpg"))
	if err := os.Mkdir(filepath.Join(root, "sub.nef"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := layout.ListRaws([]string{".raw", ".nef"})
	if err != nil {
		t.Fatalf("ListRaws failed: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.NEF"),
		filepath.Join(root, "b.nef"),
		filepath.Join(root, "c.raw"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListRawsRejectsDuplicateStems(t *testing.T) {
	root := t.TempDir()
	layout, err := NewLayout(root)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	touch(t, filepath.Join(root, "shot.raw"))
	touch(t, filepath.Join(root, "shot.nef"))

	if _, err := layout.ListRaws([]string{".raw", ".nef"}); err == nil {
		t.Fatal("expected duplicate stem error")
	}
}

func TestDerivedPaths(t *testing.T) {
	root := t.TempDir()
	layout, err := NewLayout(root)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	if got := layout.JpegPath("shot"); got != filepath.Join(root, "Jpeg", "shot.jpg") {
		t.Errorf("JpegPath = %q", got)
	}
	raw := filepath.Join(root, "shot.nef")
	if got := layout.XmpPath(raw); got != raw+".xmp" {
		t.Errorf("XmpPath = %q", got)
	}
	if got := layout.TrashPath(raw); got != filepath.Join(root, "Trash", "shot.nef") {
		t.Errorf("TrashPath = %q", got)
	}
	if got := layout.ArtifactPath(); got != filepath.Join(root, ".pano", "bursts.json") {
		t.Errorf("ArtifactPath = %q", got)
	}
}
