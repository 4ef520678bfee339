package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"curator/internal/meta"
)

// MkdirAll creates a directory tree or fails the test.
func MkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WriteImages creates placeholder image files inside folder, creating the
// folder as needed.
func WriteImages(t testing.TB, folder string, names ...string) {
	t.Helper()
	MkdirAll(t, folder)
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(folder, name), []byte{0xff, 0xd8}, 0o644); err != nil {
			t.Fatalf("write image %s: %v", name, err)
		}
	}
}

// WriteProject creates a project folder under root with the given images
// and, when record is non-nil, a _meta.json describing it. Returns the
// folder path.
func WriteProject(t testing.TB, root, name string, record *meta.Record, images ...string) string {
	t.Helper()
	folder := filepath.Join(root, name)
	WriteImages(t, folder, images...)
	if record != nil {
		store := meta.NewStore("_meta.json", []string{".jpg", ".jpeg", ".png", ".webp"})
		if err := store.Write(folder, record); err != nil {
			t.Fatalf("write metadata for %s: %v", name, err)
		}
	}
	return folder
}
