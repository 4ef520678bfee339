// Package thumbs renders downscaled JPEG previews for manifest images,
// mirroring the gallery's project layout under the thumbnail directory and
// regenerating only what is missing or stale.
package thumbs
