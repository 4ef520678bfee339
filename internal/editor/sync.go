package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"curator/internal/meta"
	"curator/internal/scan"
)

// CoverChange records one folder whose cover was rewritten during a sync.
type CoverChange struct {
	Folder string
	Cover  string
}

// SyncCovers reconciles every folder's cover against the images actually on
// disk and persists the folders that changed. Folders without metadata or
// without images are left alone; undecodable metadata is an error since a
// blind rewrite would discard the author's file.
func SyncCovers(root string, store *meta.Store) ([]CoverChange, error) {
	scanner := scan.New(store)
	folders, err := scanner.Folders(root)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	var changes []CoverChange
	for _, folder := range folders {
		path := filepath.Join(root, folder)
		record, err := store.Read(path)
		if err != nil {
			if errors.Is(err, meta.ErrNotFound) {
				continue
			}
			return changes, err
		}
		images, err := store.ListImages(path)
		if err != nil {
			return changes, err
		}
		if len(images) == 0 {
			continue
		}
		cover, _ := meta.ReconcileCover(record.Cover, images)
		if cover == record.Cover {
			continue
		}
		record.Cover = cover
		if err := store.Write(path, record); err != nil {
			return changes, err
		}
		changes = append(changes, CoverChange{Folder: folder, Cover: cover})
	}
	return changes, nil
}
