package inventory

import (
	"slices"
	"strings"

	"github.com/hackinpovo/inventory/internal/client/models"
)

// Filter is the local view over the collection: a free-text query and a
// set of selected tag ids, kept in selection order.
type Filter struct {
	Query  string
	TagIDs []string
}

// Matches reports whether item passes both the query and the tag selection.
func (f Filter) Matches(item models.Item) bool {
	return f.matchesQuery(item) && f.matchesTags(item)
}

func (f Filter) matchesQuery(item models.Item) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	if strings.Contains(strings.ToLower(item.Name), q) ||
		strings.Contains(strings.ToLower(item.Description), q) {
		return true
	}
	for _, t := range item.Tags {
		if strings.Contains(strings.ToLower(t.Name), q) {
			return true
		}
	}
	return false
}

func (f Filter) matchesTags(item models.Item) bool {
	if len(f.TagIDs) == 0 {
		return true
	}
	for _, id := range f.TagIDs {
		if item.HasTag(id) {
			return true
		}
	}
	return false
}

// Apply returns the items that match, in their original order.
func (f Filter) Apply(items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

// WithQuery returns the filter with its query replaced.
func (f Filter) WithQuery(q string) Filter {
	return Filter{Query: q, TagIDs: slices.Clone(f.TagIDs)}
}

// Toggle selects id when absent and deselects it when present.
func (f Filter) Toggle(id string) Filter {
	if f.Selected(id) {
		return f.Deselect(id)
	}
	ids := make([]string, 0, len(f.TagIDs)+1)
	ids = append(ids, f.TagIDs...)
	ids = append(ids, id)
	return Filter{Query: f.Query, TagIDs: ids}
}

// Deselect removes id from the selection, if present.
func (f Filter) Deselect(id string) Filter {
	ids := make([]string, 0, len(f.TagIDs))
	for _, s := range f.TagIDs {
		if s != id {
			ids = append(ids, s)
		}
	}
	return Filter{Query: f.Query, TagIDs: ids}
}

// Clear empties the tag selection and keeps the query.
func (f Filter) Clear() Filter {
	return Filter{Query: f.Query}
}

func (f Filter) Selected(id string) bool {
	return slices.Contains(f.TagIDs, id)
}
