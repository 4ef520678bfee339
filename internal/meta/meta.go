package meta

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// ErrNotFound reports that a folder has no metadata file. This is the
// expected state for folders that have not been authored yet.
var ErrNotFound = errors.New("metadata not found")

// ErrParse reports that a metadata file exists but could not be decoded.
var ErrParse = errors.New("metadata invalid")

// Record is the authored, per-folder source of truth a project is derived
// from. Categories is ordered; the first entry drives grid filtering while
// the full list is retained for display.
type Record struct {
	Title        string   `json:"title,omitempty"`
	Categories   []string `json:"categories"`
	Cover        string   `json:"cover,omitempty"`
	Location     string   `json:"location,omitempty"`
	Date         string   `json:"date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Order        *float64 `json:"order,omitempty"`
	GalleryGroup string   `json:"gallery_group,omitempty"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Categories = append([]string(nil), r.Categories...)
	if r.Order != nil {
		order := *r.Order
		clone.Order = &order
	}
	return &clone
}

// HasCategories reports whether the record satisfies the non-empty category
// invariant.
func (r *Record) HasCategories() bool {
	return r != nil && len(r.Categories) > 0
}

// Store reads and writes per-folder metadata records and lists folder images.
type Store struct {
	filename   string
	extensions map[string]struct{}
}

// NewStore creates a store for the given metadata filename and image
// extension allow-list (dotted, lowercase).
func NewStore(metadataFile string, extensions []string) *Store {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Store{filename: metadataFile, extensions: allowed}
}

// Filename returns the metadata filename the store is bound to.
func (s *Store) Filename() string {
	return s.filename
}

// Path returns the metadata file location for a folder.
func (s *Store) Path(folder string) string {
	return filepath.Join(folder, s.filename)
}

// Read parses the metadata record for a folder. A missing file satisfies
// errors.Is(err, ErrNotFound); a present but undecodable file satisfies
// errors.Is(err, ErrParse). Authors get hujson leniency: comments and
// trailing commas are tolerated.
func (s *Store) Read(folder string) (*Record, error) {
	path := s.Path(folder)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrParse, err)
	}

	var record Record
	if err := json.Unmarshal(standardized, &record); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrParse, err)
	}
	return &record, nil
}

// Write persists a record atomically with stable two-space indentation so
// hand-edited files stay diffable. The file is never left partially written.
func (s *Store) Write(folder string, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	data = append(data, '\n')

	path := s.Path(folder)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// IsImage reports whether a filename matches the image allow-list, ignoring
// case.
func (s *Store) IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := s.extensions[ext]
	return ok
}
