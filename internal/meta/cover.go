package meta

import "strings"

// ReconcileCover resolves the effective cover for an image list. A cover
// present in images wins; otherwise the first filename containing the token
// "cover" (case-insensitive) is preferred, falling back to the first image.
// The second return reports whether a configured cover was stale.
func ReconcileCover(cover string, images []string) (string, bool) {
	if cover != "" {
		for _, image := range images {
			if image == cover {
				return cover, false
			}
		}
	}
	stale := cover != ""
	for _, image := range images {
		if strings.Contains(strings.ToLower(image), "cover") {
			return image, stale
		}
	}
	if len(images) > 0 {
		return images[0], stale
	}
	return "", stale
}
