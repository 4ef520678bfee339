package manifest

import (
	"net/url"
	"strings"

	"curator/internal/meta"
)

// Project is one published gallery entry. Categories always holds exactly
// the filter category; AllCategories retains the full authored list.
type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Categories    []string `json:"categories"`
	AllCategories []string `json:"allCategories"`
	Path          string   `json:"path"`
	Cover         string   `json:"cover"`
	Images        []string `json:"images"`
	Location      string   `json:"location"`
	Date          string   `json:"date"`
	Description   string   `json:"description"`
	Order         *float64 `json:"order"`
	GalleryGroup  string   `json:"gallery_group"`
}

// Folder recovers the on-disk folder name from the project path. The path
// always ends with the escaped folder name and a trailing slash.
func (p Project) Folder() string {
	trimmed := strings.TrimSuffix(p.Path, "/")
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	folder, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return folder
}

// Manifest is the published description of all valid projects, ordered by
// ascending order value with unordered projects last.
type Manifest struct {
	Projects []Project `json:"projects"`
}

// ProjectID derives the URL/ID-safe token for a folder name: lower-cased,
// whitespace runs collapsed to single hyphens.
func ProjectID(folder string) string {
	return strings.Join(strings.Fields(strings.ToLower(folder)), "-")
}

// BuildProject derives the published record for one validated folder.
// images must be non-empty; the caller (the scanner) guarantees that. The
// second return reports whether a configured cover was stale and replaced.
func BuildProject(urlBase, folder string, record *meta.Record, images []string) (Project, bool) {
	cover, stale := meta.ReconcileCover(record.Cover, images)

	ordered := make([]string, 0, len(images))
	ordered = append(ordered, cover)
	for _, image := range images {
		if image != cover {
			ordered = append(ordered, image)
		}
	}

	title := record.Title
	if strings.TrimSpace(title) == "" {
		title = folder
	}

	project := Project{
		ID:            ProjectID(folder),
		Title:         title,
		Categories:    []string{record.Categories[0]},
		AllCategories: append([]string(nil), record.Categories...),
		Path:          urlBase + "/" + url.PathEscape(folder) + "/",
		Cover:         cover,
		Images:        ordered,
		Location:      record.Location,
		Date:          record.Date,
		Description:   record.Description,
		Order:         record.Order,
		GalleryGroup:  record.GalleryGroup,
	}
	return project, stale
}
