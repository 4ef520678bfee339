package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"

	"curator/internal/meta"
)

// Reason classifies why a folder was left out of a scan.
type Reason int

const (
	ReasonNoMetadata Reason = iota
	ReasonParseError
	ReasonNoCategories
	ReasonNoImages
)

func (r Reason) String() string {
	switch r {
	case ReasonNoMetadata:
		return "no metadata"
	case ReasonParseError:
		return "metadata parse error"
	case ReasonNoCategories:
		return "categories required"
	case ReasonNoImages:
		return "no images"
	default:
		return "unknown"
	}
}

// Entry is one folder that passed validation.
type Entry struct {
	Folder string
	Record *meta.Record
	Images []string
}

// Skip records one excluded folder and why, for diagnostics.
type Skip struct {
	Folder string
	Reason Reason
	Detail string
}

// ExcludeFunc decides whether a directory name is outside gallery content.
type ExcludeFunc func(name string) bool

// DefaultExclude hides dot- and underscore-prefixed directories, which are
// used for generated output such as _thumbs.
func DefaultExclude(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// Scanner enumerates project folders under a content root.
type Scanner struct {
	store   *meta.Store
	exclude ExcludeFunc
}

// Option customizes scanner construction.
type Option func(*Scanner)

// WithExclude overrides the directory exclusion predicate.
func WithExclude(fn ExcludeFunc) Option {
	return func(s *Scanner) {
		if fn != nil {
			s.exclude = fn
		}
	}
}

// New creates a scanner over the given metadata store.
func New(store *meta.Store, opts ...Option) *Scanner {
	s := &Scanner{store: store, exclude: DefaultExclude}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Folders lists the immediate, non-excluded subdirectories of root in
// natural order. This is the universe a scan or an editor session works on,
// including folders that would fail validation.
func (s *Scanner) Folders(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read content root %s: %w", root, err)
	}
	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || s.exclude(entry.Name()) {
			continue
		}
		folders = append(folders, entry.Name())
	}
	natsort.Sort(folders)
	return folders, nil
}

// Scan walks root and yields every folder with a parseable metadata record,
// at least one category, and at least one allow-listed image. Folders
// failing validation never abort the scan; they are returned as skips with
// a distinguishable reason.
func (s *Scanner) Scan(root string) ([]Entry, []Skip, error) {
	folders, err := s.Folders(root)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, 0, len(folders))
	skips := make([]Skip, 0)
	for _, folder := range folders {
		record, err := s.store.Read(filepath.Join(root, folder))
		switch {
		case errors.Is(err, meta.ErrNotFound):
			skips = append(skips, Skip{Folder: folder, Reason: ReasonNoMetadata})
			continue
		case errors.Is(err, meta.ErrParse):
			skips = append(skips, Skip{Folder: folder, Reason: ReasonParseError, Detail: err.Error()})
			continue
		case err != nil:
			skips = append(skips, Skip{Folder: folder, Reason: ReasonParseError, Detail: err.Error()})
			continue
		}

		if !record.HasCategories() {
			skips = append(skips, Skip{Folder: folder, Reason: ReasonNoCategories})
			continue
		}

		images, err := s.store.ListImages(filepath.Join(root, folder))
		if err != nil {
			skips = append(skips, Skip{Folder: folder, Reason: ReasonNoImages, Detail: err.Error()})
			continue
		}
		if len(images) == 0 {
			skips = append(skips, Skip{Folder: folder, Reason: ReasonNoImages})
			continue
		}

		entries = append(entries, Entry{Folder: folder, Record: record, Images: images})
	}
	return entries, skips, nil
}

// Store exposes the metadata store the scanner was built with.
func (s *Scanner) Store() *meta.Store {
	return s.store
}
