package meta

import (
	"fmt"
	"os"

	"github.com/facette/natsort"
)

// ListImages returns the allow-listed image filenames in a folder. The list
// is natural-sorted so manifest output does not depend on the platform's
// directory enumeration order.
func (s *Store) ListImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if s.IsImage(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	natsort.Sort(images)
	return images, nil
}
