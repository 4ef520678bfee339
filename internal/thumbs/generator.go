package thumbs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/manifest"
)

// Result summarizes one thumbnail pass.
type Result struct {
	Generated int
	Skipped   int
	Failed    int
}

// Generator renders downscaled JPEG previews for every manifest image into
// per-project directories under the thumbnail root.
type Generator struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "thumbs"),
	}
}

// Generate walks the manifest's projects and writes a thumbnail for each
// image that is missing or older than its source. A failed image is logged
// and counted, not fatal: one unreadable file must not sink the pass.
func (g *Generator) Generate(m *manifest.Manifest) (Result, error) {
	var result Result
	for _, project := range m.Projects {
		outDir := filepath.Join(g.cfg.Paths.ThumbnailDir, project.ID)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return result, fmt.Errorf("create thumbnail directory %s: %w", outDir, err)
		}
		srcDir := filepath.Join(g.cfg.ContentDir(), project.Folder())
		for _, image := range project.Images {
			src := filepath.Join(srcDir, image)
			dst := filepath.Join(outDir, thumbName(image))
			fresh, err := upToDate(src, dst)
			if err != nil {
				result.Failed++
				g.logger.Warn("stat image",
					logging.String("image", src),
					logging.Error(err))
				continue
			}
			if fresh {
				result.Skipped++
				continue
			}
			if err := g.render(src, dst); err != nil {
				result.Failed++
				g.logger.Warn("thumbnail failed",
					logging.String("image", src),
					logging.Error(err))
				continue
			}
			result.Generated++
		}
	}
	g.logger.Info("thumbnails generated",
		logging.Int("generated", result.Generated),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", result.Failed))
	return result, nil
}

func (g *Generator) render(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("open image %s: %w", src, err)
	}
	thumb := imaging.Fit(img, g.cfg.Thumbnails.MaxWidth, g.cfg.Thumbnails.MaxHeight, imaging.Lanczos)
	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(g.cfg.Thumbnails.Quality)); err != nil {
		return fmt.Errorf("save thumbnail %s: %w", dst, err)
	}
	return nil
}

// thumbName keeps the source basename but pins the extension to jpg since
// every thumbnail is encoded as JPEG.
func thumbName(image string) string {
	base := strings.TrimSuffix(image, filepath.Ext(image))
	return base + ".jpg"
}

// upToDate reports whether dst exists and is at least as new as src.
func upToDate(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !dstInfo.ModTime().Before(srcInfo.ModTime()), nil
}
