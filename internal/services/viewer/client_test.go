package viewer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pano/internal/logging"
	"pano/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	err    error
	calls  int
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string, _ func(string)) error {
	f.calls++
	f.binary = binary
	f.args = args
	return f.err
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{1}, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestOpenSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "a.jpg")
	missing := filepath.Join(dir, "gone.jpg")

	exec := &fakeExecutor{}
	client, err := New("gwenview", logging.NewNop(), WithExecutor(exec))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := client.Open(context.Background(), present, missing); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if exec.binary != "gwenview" {
		t.Errorf("binary = %q", exec.binary)
	}
	if len(exec.args) != 1 || exec.args[0] != present {
		t.Errorf("args = %v, want only %q", exec.args, present)
	}
}

func TestOpenFailsWhenNothingExists(t *testing.T) {
	exec := &fakeExecutor{}
	client, err := New("gwenview", logging.NewNop(), WithExecutor(exec))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = client.Open(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if exec.calls != 0 {
		t.Errorf("viewer should not launch with nothing to show")
	}
}

func TestOpenToleratesUncleanViewerExit(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "a.jpg")

	exec := &fakeExecutor{err: errors.New("exit status 1")}
	client, err := New("gwenview", logging.NewNop(), WithExecutor(exec))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := client.Open(context.Background(), present); err != nil {
		t.Errorf("unclean viewer exit should not fail Open: %v", err)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  ", logging.NewNop()); err == nil {
		t.Error("expected error for blank binary")
	}
}
