// Package items holds the inventory domain of the API server: items, tags,
// quantity rules and full-text search.
package items

import "time"

type Tag struct {
	ID    string
	Name  string
	Color string
}

// Item is a stored inventory item. Tags is resolved from TagIDs on every
// read and reflects the tag registry at that moment.
type Item struct {
	ID          string
	Name        string
	Description string
	Quantity    int
	Used        int
	TagIDs      []string
	Tags        []Tag
	DateAdded   time.Time
	AddedBy     string
}

func (i Item) clone() Item {
	i.TagIDs = append([]string(nil), i.TagIDs...)
	i.Tags = append([]Tag(nil), i.Tags...)
	return i
}

func (i Item) hasAnyTag(ids map[string]bool) bool {
	for _, id := range i.TagIDs {
		if ids[id] {
			return true
		}
	}
	return false
}

// CreateItemInput carries a new item. Nil counts take their defaults:
// quantity 1, used 0.
type CreateItemInput struct {
	Name        string
	Description string
	Quantity    *int
	Used        *int
	TagIDs      []string
}

// UpdateItemInput changes only the non-nil fields. A non-nil empty TagIDs
// clears the item's tags.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Quantity    *int
	TagIDs      []string
}

type CreateTagInput struct {
	Name  string
	Color string
}
