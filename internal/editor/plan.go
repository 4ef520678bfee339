package editor

import (
	"fmt"
	"strconv"
	"strings"

	"curator/internal/meta"
)

// Plan holds the values collected once for a batch. Nil pointers and empty
// slices mean the operator left the prompt blank, which preserves whatever
// each folder already has.
type Plan struct {
	Title       *string
	Categories  []string
	Group       *string
	Location    *string
	Date        *string
	Description *string
	Order       *float64
	SetCover    bool
	Sync        bool
}

// CollectPlan runs the batch-level prompts for the selected fields. Cover is
// excluded here: it is prompted per folder because the answer depends on the
// folder's images.
func (s *Session) collectPlan(fields FieldSet) (Plan, error) {
	var plan Plan
	if fields.Wants(FieldSync) {
		plan.Sync = true
		return plan, nil
	}
	if fields.Wants(FieldTitle) {
		value, err := s.ask("New title (empty keeps current, folder name if unset): ")
		if err != nil {
			return Plan{}, err
		}
		if value != "" {
			plan.Title = &value
		}
	}
	if fields.Wants(FieldCategories) {
		value, err := s.ask("Categories, comma separated (empty keeps current): ")
		if err != nil {
			return Plan{}, err
		}
		plan.Categories = splitCategories(value)
	}
	if fields.Wants(FieldGroup) {
		value, err := s.ask("Gallery group (empty keeps current): ")
		if err != nil {
			return Plan{}, err
		}
		if value != "" {
			plan.Group = &value
		}
	}
	if fields.Wants(FieldMeta) {
		location, err := s.ask("Location (empty keeps current): ")
		if err != nil {
			return Plan{}, err
		}
		if location != "" {
			plan.Location = &location
		}
		date, err := s.ask("Date (empty keeps current): ")
		if err != nil {
			return Plan{}, err
		}
		if date != "" {
			plan.Date = &date
		}
		description, err := s.ask("Description (empty keeps current): ")
		if err != nil {
			return Plan{}, err
		}
		if description != "" {
			plan.Description = &description
		}
	}
	if fields.Wants(FieldOrder) {
		value, err := s.ask("Sort order, lower first (empty keeps current): ")
		if err != nil {
			return Plan{}, err
		}
		if value != "" {
			order, err := strconv.ParseFloat(value, 64)
			if err != nil {
				fmt.Fprintf(s.out, "ignoring invalid order %q\n", value)
			} else {
				plan.Order = &order
			}
		}
	}
	plan.SetCover = fields.Wants(FieldCover)
	return plan, nil
}

// applyPlan returns a new record with the plan's values layered over the
// existing one. The folder name backfills a missing title so every record
// leaves the editor displayable.
func applyPlan(folder string, record *meta.Record, plan Plan) *meta.Record {
	next := record.Clone()
	if next == nil {
		next = &meta.Record{}
	}
	if plan.Title != nil {
		next.Title = *plan.Title
	}
	if next.Title == "" {
		next.Title = folder
	}
	if len(plan.Categories) > 0 {
		next.Categories = append([]string(nil), plan.Categories...)
	}
	if plan.Group != nil {
		next.GalleryGroup = *plan.Group
	}
	if plan.Location != nil {
		next.Location = *plan.Location
	}
	if plan.Date != nil {
		next.Date = *plan.Date
	}
	if plan.Description != nil {
		next.Description = *plan.Description
	}
	if plan.Order != nil {
		order := *plan.Order
		next.Order = &order
	}
	return next
}

func splitCategories(input string) []string {
	var categories []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}
