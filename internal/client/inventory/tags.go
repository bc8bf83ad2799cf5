package inventory

import (
	"strings"

	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/common"
)

// TagRegistry is the ordered set of known tags, in creation order.
type TagRegistry struct {
	tags []models.Tag
}

func NewTagRegistry(tags ...models.Tag) TagRegistry {
	return TagRegistry{tags: append([]models.Tag(nil), tags...)}
}

// ValidateNew checks a proposed tag name against the registry: it must be
// non-empty after trimming and unique case-insensitively.
func (r TagRegistry) ValidateNew(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &common.ValidationError{
			Message: "tag name is required",
		}
	}
	for _, t := range r.tags {
		if strings.EqualFold(strings.TrimSpace(t.Name), name) {
			return &common.ValidationError{
				Message: "a tag with this name already exists",
			}
		}
	}
	return nil
}

// Add appends tag.
func (r TagRegistry) Add(tag models.Tag) TagRegistry {
	out := make([]models.Tag, 0, len(r.tags)+1)
	out = append(out, r.tags...)
	out = append(out, tag)
	return TagRegistry{tags: out}
}

// Remove drops the tag with id; unknown ids are ignored.
func (r TagRegistry) Remove(id string) TagRegistry {
	out := make([]models.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return TagRegistry{tags: out}
}

func (r TagRegistry) Find(id string) (models.Tag, bool) {
	for _, t := range r.tags {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tag{}, false
}

// All returns a copy of the tags in creation order.
func (r TagRegistry) All() []models.Tag {
	return append([]models.Tag(nil), r.tags...)
}

func (r TagRegistry) Len() int { return len(r.tags) }
