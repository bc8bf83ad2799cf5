package inventory

import "github.com/hackinpovo/inventory/internal/client/models"

// Collection is the ordered list of items the client currently knows about.
// The zero value is an empty collection.
type Collection struct {
	items []models.Item
}

// NewCollection builds a collection from items, normalising each one.
func NewCollection(items ...models.Item) Collection {
	return Collection{}.SetAll(items)
}

// Load replaces the whole collection with the result of a list-all call.
func (c Collection) Load(items []models.Item) Collection {
	return c.SetAll(items)
}

// SetAll replaces the whole collection, e.g. with a search result.
func (c Collection) SetAll(items []models.Item) Collection {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		out = append(out, Normalize(it.Clone()))
	}
	return Collection{items: out}
}

// Add prepends item.
func (c Collection) Add(item models.Item) Collection {
	out := make([]models.Item, 0, len(c.items)+1)
	out = append(out, Normalize(item.Clone()))
	out = append(out, c.items...)
	return Collection{items: out}
}

// Replace overwrites the item with the same id. An unknown id leaves the
// collection unchanged.
func (c Collection) Replace(item models.Item) Collection {
	idx := c.index(item.ID)
	if idx < 0 {
		return c
	}
	out := append([]models.Item(nil), c.items...)
	out[idx] = Normalize(item.Clone())
	return Collection{items: out}
}

// Remove drops the item with id. Removing an absent id is a no-op.
func (c Collection) Remove(id string) Collection {
	idx := c.index(id)
	if idx < 0 {
		return c
	}
	out := make([]models.Item, 0, len(c.items)-1)
	out = append(out, c.items[:idx]...)
	out = append(out, c.items[idx+1:]...)
	return Collection{items: out}
}

// Find looks an item up by id.
func (c Collection) Find(id string) (models.Item, bool) {
	idx := c.index(id)
	if idx < 0 {
		return models.Item{}, false
	}
	return c.items[idx].Clone(), true
}

// Items returns a copy of the items in order.
func (c Collection) Items() []models.Item {
	out := make([]models.Item, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

func (c Collection) Len() int { return len(c.items) }

func (c Collection) index(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
