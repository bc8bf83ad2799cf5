package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hackinpovo/inventory/internal/common"
	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/server/ids"
)

var (
	errItemNotFound = common.NotFound("item not found")
	errTagNotFound  = common.NotFound("tag not found")
	errTagExists    = common.Conflict("a tag with this name already exists")
)

// Service applies the inventory rules on top of a Repository and keeps the
// search index in step with it. Writes are serialized so every
// read-modify-write of an item is atomic.
type Service struct {
	repo   Repository
	index  *SearchIndex
	logger logging.Logger
	now    func() time.Time
	mu     sync.Mutex
}

func NewService(repo Repository, index *SearchIndex, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		index:  index,
		logger: logger.With("module", "items"),
		now:    time.Now,
	}
}

func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	list, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return s.withTags(ctx, list)
}

// Search filters all items by the text query (see SearchIndex.Search) and,
// when tagIDs is non-empty, keeps only items carrying at least one of them.
func (s *Service) Search(ctx context.Context, q string, tagIDs []string) ([]Item, error) {
	list, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	var hits map[string]bool
	if len(queryTerms(q)) > 0 {
		hits, err = s.index.Search(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	selected := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		if id != "" {
			selected[id] = true
		}
	}

	out := make([]Item, 0, len(list))
	for _, it := range list {
		if hits != nil && !hits[it.ID] {
			continue
		}
		if len(selected) > 0 && !it.hasAnyTag(selected) {
			continue
		}
		out = append(out, it)
	}
	return s.withTags(ctx, out)
}

func (s *Service) CreateItem(ctx context.Context, userID string, in CreateItemInput) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tagIDs, err := s.checkTags(ctx, in.TagIDs)
	if err != nil {
		return Item{}, err
	}

	quantity, used := 1, 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if in.Used != nil {
		used = *in.Used
	}
	if quantity < 0 || used < 0 {
		return Item{}, common.Invalid("quantities must not be negative")
	}

	id, err := ids.Generate(ids.ItemPrefix)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    quantity,
		Used:        min(used, quantity),
		TagIDs:      tagIDs,
		DateAdded:   s.now().UTC(),
		AddedBy:     userID,
	}
	if err := s.save(ctx, item); err != nil {
		return Item{}, err
	}

	s.logger.Info(ctx, "item created", "id", item.ID, "user", userID)
	return s.withTag(ctx, item)
}

// UpdateItem applies the non-nil fields of in. Lowering the quantity below
// the used count lowers used with it.
func (s *Service) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.get(ctx, id)
	if err != nil {
		return Item{}, err
	}

	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return Item{}, common.Invalid("quantity must not be negative")
		}
		item.Quantity = *in.Quantity
		item.Used = min(item.Used, item.Quantity)
	}
	if in.TagIDs != nil {
		if item.TagIDs, err = s.checkTags(ctx, in.TagIDs); err != nil {
			return Item{}, err
		}
	}

	if err := s.save(ctx, item); err != nil {
		return Item{}, err
	}
	return s.withTag(ctx, item)
}

// SetQuantity sets the total count; used is lowered to fit.
func (s *Service) SetQuantity(ctx context.Context, id string, quantity int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 0 {
		return Item{}, common.Invalid("quantity must not be negative")
	}
	item, err := s.get(ctx, id)
	if err != nil {
		return Item{}, err
	}

	item.Quantity = quantity
	item.Used = min(item.Used, quantity)
	if err := s.save(ctx, item); err != nil {
		return Item{}, err
	}
	return s.withTag(ctx, item)
}

// SetUsed sets the in-use count; quantity is raised to fit.
func (s *Service) SetUsed(ctx context.Context, id string, used int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if used < 0 {
		return Item{}, common.Invalid("used quantity must not be negative")
	}
	item, err := s.get(ctx, id)
	if err != nil {
		return Item{}, err
	}

	item.Used = used
	item.Quantity = max(item.Quantity, used)
	if err := s.save(ctx, item); err != nil {
		return Item{}, err
	}
	return s.withTag(ctx, item)
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errItemNotFound
		}
		return err
	}
	if err := s.index.Delete(id); err != nil {
		s.logger.Warn(ctx, "failed to unindex item", "id", id, "error", err)
	}
	s.logger.Info(ctx, "item deleted", "id", id)
	return nil
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

// CreateTag rejects names already taken, ignoring case.
func (s *Service) CreateTag(ctx context.Context, in CreateTagInput) (Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Tag{}, common.Invalid("tag name is required")
	}

	_, err := s.repo.GetTagByName(ctx, name)
	switch {
	case err == nil:
		return Tag{}, errTagExists
	case !errors.Is(err, common.ErrNotFound):
		return Tag{}, err
	}

	id, err := ids.Generate(ids.TagPrefix)
	if err != nil {
		return Tag{}, err
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = common.DefaultTagColor
	}

	tag := Tag{ID: id, Name: name, Color: color}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}
	s.logger.Info(ctx, "tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// DeleteTag removes the tag from the registry and from every item.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteTag(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return errTagNotFound
		}
		return err
	}
	s.logger.Info(ctx, "tag deleted", "id", id)
	return nil
}

func (s *Service) get(ctx context.Context, id string) (Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return Item{}, errItemNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (s *Service) save(ctx context.Context, item Item) error {
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, err)
	}
	if err := s.index.Index(item); err != nil {
		return err
	}
	return nil
}

// checkTags deduplicates ids and fails on any unknown one. The result is
// never nil.
func (s *Service) checkTags(ctx context.Context, tagIDs []string) ([]string, error) {
	out := make([]string, 0, len(tagIDs))
	seen := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.repo.GetTag(ctx, id); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.Invalid(fmt.Sprintf("unknown tag %q", id))
			}
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *Service) withTag(ctx context.Context, item Item) (Item, error) {
	list, err := s.withTags(ctx, []Item{item})
	if err != nil {
		return Item{}, err
	}
	return list[0], nil
}

// withTags fills Tags from TagIDs using the current registry.
func (s *Service) withTags(ctx context.Context, list []Item) ([]Item, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}

	for i := range list {
		resolved := make([]Tag, 0, len(list[i].TagIDs))
		for _, id := range list[i].TagIDs {
			if t, ok := byID[id]; ok {
				resolved = append(resolved, t)
			}
		}
		list[i].Tags = resolved
	}
	return list, nil
}
