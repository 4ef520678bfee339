package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/meta"
	"curator/internal/scan"
)

// Result summarizes one completed build.
type Result struct {
	Manifest Manifest
	Skips    []scan.Skip
	Path     string
	Duration time.Duration
}

// Builder produces the manifest file from the content root.
type Builder struct {
	cfg     *config.Config
	scanner *scan.Scanner
	logger  *slog.Logger
}

// NewBuilder wires a builder from configuration. A nil logger disables
// logging.
func NewBuilder(cfg *config.Config, logger *slog.Logger) *Builder {
	store := meta.NewStore(cfg.Gallery.MetadataFile, cfg.Gallery.Extensions)
	return &Builder{
		cfg:     cfg,
		scanner: scan.New(store),
		logger:  logging.NewComponentLogger(logger, "builder"),
	}
}

// Scanner exposes the builder's folder scanner.
func (b *Builder) Scanner() *scan.Scanner {
	return b.scanner
}

// Build scans the content root, derives a project per valid folder, sorts,
// and atomically writes the manifest. Per-folder failures are recorded as
// skips and never abort the build; zero valid folders still publishes an
// empty project list. The previous manifest survives any write failure
// untouched.
func (b *Builder) Build() (*Result, error) {
	started := time.Now()
	root := b.cfg.ContentDir()

	entries, skips, err := b.scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	for _, skip := range skips {
		b.logger.Warn("folder skipped",
			logging.String("folder", skip.Folder),
			logging.String("reason", skip.Reason.String()),
		)
	}

	projects := make([]Project, len(entries))
	var wg sync.WaitGroup
	for i, entry := range entries {
		i, entry := i, entry
		wg.Add(1)
		go func() {
			defer wg.Done()
			project, stale := BuildProject(b.cfg.Gallery.URLBase, entry.Folder, entry.Record, entry.Images)
			if stale {
				b.logger.Warn("stale cover reconciled",
					logging.String("folder", entry.Folder),
					logging.String("cover", entry.Record.Cover),
				)
			}
			projects[i] = project
		}()
	}
	wg.Wait()

	sortProjects(projects)

	manifest := Manifest{Projects: projects}
	if err := writeManifest(b.cfg.ManifestPath(), manifest); err != nil {
		return nil, err
	}

	result := &Result{
		Manifest: manifest,
		Skips:    skips,
		Path:     b.cfg.ManifestPath(),
		Duration: time.Since(started),
	}
	b.logger.Info("manifest written",
		logging.Int("projects", len(projects)),
		logging.Int("skipped", len(skips)),
		logging.String("path", result.Path),
		logging.Duration("took", result.Duration),
	)
	return result, nil
}

// sortProjects orders by ascending order value; projects without an order
// sort after every ordered one. The sort is stable so scan order breaks
// ties.
func sortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return orderValue(projects[i]) < orderValue(projects[j])
	})
}

func orderValue(p Project) float64 {
	if p.Order == nil {
		return math.Inf(1)
	}
	return *p.Order
}

func writeManifest(path string, manifest Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a previously published manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &manifest, nil
}
