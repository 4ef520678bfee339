package editor

import (
	"strconv"
	"strings"
)

// Field identifies one editable aspect of a metadata record.
type Field int

const (
	FieldTitle Field = iota
	FieldCategories
	FieldCover
	FieldMeta
	FieldOrder
	FieldGroup
	FieldSync
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldCategories:
		return "categories"
	case FieldCover:
		return "cover"
	case FieldMeta:
		return "meta"
	case FieldOrder:
		return "order"
	case FieldGroup:
		return "gallery group"
	case FieldSync:
		return "sync"
	default:
		return "unknown"
	}
}

// FieldSet is the operator's field selection for one batch pass.
type FieldSet struct {
	fields map[Field]bool
}

// Wants reports whether a field was selected. When Sync was selected it is
// exclusive: no other field is reported as wanted.
func (fs FieldSet) Wants(field Field) bool {
	if fs.fields[FieldSync] {
		return field == FieldSync
	}
	return fs.fields[field]
}

// Empty reports whether nothing was selected.
func (fs FieldSet) Empty() bool {
	return len(fs.fields) == 0
}

var menuFields = map[string]Field{
	"1": FieldTitle,
	"2": FieldCategories,
	"3": FieldCover,
	"4": FieldMeta,
	"5": FieldOrder,
	"6": FieldGroup,
	"7": FieldSync,
}

// ParseFields interprets the numeric field menu input. "0" (and an empty
// input) selects every editable field; sync stays opt-in because it
// suppresses all other edits. Unknown tokens are dropped silently.
func ParseFields(input string) FieldSet {
	tokens := strings.Split(input, ",")
	selected := make(map[Field]bool)
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if token == "0" {
			for _, field := range menuFields {
				if field != FieldSync {
					selected[field] = true
				}
			}
			continue
		}
		if field, ok := menuFields[token]; ok {
			selected[field] = true
		}
	}
	if len(selected) == 0 && strings.TrimSpace(input) == "" {
		for _, field := range menuFields {
			if field != FieldSync {
				selected[field] = true
			}
		}
	}
	return FieldSet{fields: selected}
}

// SelectFolders resolves a selection input against the displayed folder
// list. "all" selects everything; otherwise the input is a comma-separated
// list of 1-based indices. Out-of-range or non-numeric entries are dropped
// silently. An empty result means no valid selection was made.
func SelectFolders(folders []string, input string) []string {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "all") {
		return append([]string(nil), folders...)
	}
	var selected []string
	for _, token := range strings.Split(input, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || index < 1 || index > len(folders) {
			continue
		}
		selected = append(selected, folders[index-1])
	}
	return selected
}
