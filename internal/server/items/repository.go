package items

import (
	"context"
	"strings"
	"sync"

	"github.com/hackinpovo/inventory/internal/common"
)

type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id string) (Item, error)
	SaveItem(ctx context.Context, item Item) error
	DeleteItem(ctx context.Context, id string) error

	ListTags(ctx context.Context) ([]Tag, error)
	GetTag(ctx context.Context, id string) (Tag, error)
	GetTagByName(ctx context.Context, name string) (Tag, error)
	CreateTag(ctx context.Context, tag Tag) error
	DeleteTag(ctx context.Context, id string) error
}

// MemoryRepository keeps items and tags in process memory. Items are listed
// newest first, tags in creation order.
type MemoryRepository struct {
	mu       sync.RWMutex
	items    map[string]Item
	order    []string
	tags     map[string]Tag
	tagOrder []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]Item{}, tags: map[string]Tag{}}
}

func (r *MemoryRepository) ListItems(ctx context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.items[r.order[i]].clone())
	}
	return out, nil
}

func (r *MemoryRepository) GetItem(ctx context.Context, id string) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return Item{}, common.ErrNotFound
	}
	return it.clone(), nil
}

// SaveItem inserts or replaces by ID.
func (r *MemoryRepository) SaveItem(ctx context.Context, item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	item.Tags = nil
	r.items[item.ID] = item.clone()
	return nil
}

func (r *MemoryRepository) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.items, id)
	r.order = without(r.order, id)
	return nil
}

func (r *MemoryRepository) ListTags(ctx context.Context) ([]Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tag, 0, len(r.tagOrder))
	for _, id := range r.tagOrder {
		out = append(out, r.tags[id])
	}
	return out, nil
}

func (r *MemoryRepository) GetTag(ctx context.Context, id string) (Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tags[id]
	if !ok {
		return Tag{}, common.ErrNotFound
	}
	return t, nil
}

// GetTagByName matches names case-insensitively.
func (r *MemoryRepository) GetTagByName(ctx context.Context, name string) (Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.tagOrder {
		if strings.EqualFold(r.tags[id].Name, name) {
			return r.tags[id], nil
		}
	}
	return Tag{}, common.ErrNotFound
}

func (r *MemoryRepository) CreateTag(ctx context.Context, tag Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tags[tag.ID] = tag
	r.tagOrder = append(r.tagOrder, tag.ID)
	return nil
}

// DeleteTag removes the tag and detaches it from every item.
func (r *MemoryRepository) DeleteTag(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tags, id)
	r.tagOrder = without(r.tagOrder, id)

	for itemID, it := range r.items {
		if contains(it.TagIDs, id) {
			it.TagIDs = without(it.TagIDs, id)
			r.items[itemID] = it
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
