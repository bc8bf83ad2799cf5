package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/common"
	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/validation"
	"golang.org/x/sync/errgroup"
)

// ErrBusy is returned when the same control is triggered again while its
// previous request is still in flight. No request is made.
var ErrBusy = errors.New("request already in progress")

// Busy keys identify one control each. Per-item keys are suffixed with the
// item or tag id, e.g. "quantity:itm-1".
const (
	keyLoad       = "load"
	keySearch     = "search"
	keyAddItem    = "add-item"
	keyEditItem   = "edit-item:"
	keyDeleteItem = "delete-item:"
	keyQuantity   = "quantity:"
	keyUsed       = "used:"
	keyAddTag     = "add-tag"
	keyDeleteTag  = "delete-tag:"
)

// Failure notification titles, one per action.
const (
	titleLoadFailed       = "Could not load inventory"
	titleReloadFailed     = "Could not refresh items"
	titleSearchFailed     = "Search failed"
	titleAddItemFailed    = "Could not add item"
	titleEditItemFailed   = "Could not update item"
	titleDeleteItemFailed = "Could not delete item"
	titleQuantityFailed   = "Could not update quantity"
	titleUsedFailed       = "Could not update used count"
	titleCreateTagFailed  = "Could not create tag"
	titleDeleteTagFailed  = "Could not delete tag"
)

// Dashboard is the controller layer behind the inventory screen. Each method
// performs one user action: it validates locally, issues at most one API call,
// applies the confirmed result to the Store and reports the outcome as a
// Notification. Errors are also returned so callers and tests can inspect
// them.
//
// State changes are applied only after the server confirms them. When two
// requests for the same item overlap, the one that resolves last wins.
type Dashboard struct {
	client    client.Client
	store     *inventory.Store
	notifier  Notifier
	validator *validation.Validator
	logger    logging.Logger

	mu   sync.Mutex
	busy map[string]struct{}
}

// NewDashboard wires a Dashboard. A nil notifier discards notifications.
func NewDashboard(c client.Client, store *inventory.Store, n Notifier, logger logging.Logger) *Dashboard {
	if n == nil {
		n = discardNotifier{}
	}
	return &Dashboard{
		client:    c,
		store:     store,
		notifier:  n,
		validator: validation.New(),
		logger:    logger.With("module", "dashboard"),
		busy:      make(map[string]struct{}),
	}
}

// acquire marks key as in flight. The returned release must be deferred.
func (d *Dashboard) acquire(key string) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.busy[key]; ok {
		return nil, ErrBusy
	}
	d.busy[key] = struct{}{}
	return func() {
		d.mu.Lock()
		delete(d.busy, key)
		d.mu.Unlock()
	}, nil
}

// Busy reports whether the control identified by key has a request in flight.
func (d *Dashboard) Busy(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.busy[key]
	return ok
}

func (d *Dashboard) fail(ctx context.Context, title string, err error) error {
	d.logger.Warn(ctx, "action failed", "title", title, "error", err)
	d.notifier.Notify(failure(title, err))
	return err
}

func (d *Dashboard) succeed(ctx context.Context, title, description string) {
	d.logger.Info(ctx, strings.ToLower(title), "description", description)
	d.notifier.Notify(Notification{Title: title, Description: description})
}

// LoadInitial fetches items and tags concurrently and replaces both. On any
// failure the state is left as it was.
func (d *Dashboard) LoadInitial(ctx context.Context) error {
	release, err := d.acquire(keyLoad)
	if err != nil {
		return d.fail(ctx, titleLoadFailed, err)
	}
	defer release()

	var (
		items []models.Item
		tags  []models.Tag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = d.client.ListItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = d.client.ListTags(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.logger.Warn(ctx, "initial load failed", "error", err)
		d.notifier.Notify(Notification{
			Title:       titleLoadFailed,
			Description: "could not load the inventory data",
			Destructive: true,
		})
		return fmt.Errorf("load inventory: %w", err)
	}

	d.store.Update(func(s inventory.Snapshot) inventory.Snapshot {
		s.Items = s.Items.Load(items)
		s.Tags = inventory.NewTagRegistry(tags...)
		return s
	})
	d.logger.Debug(ctx, "inventory loaded", "items", len(items), "tags", len(tags))
	return nil
}

// Reload refreshes the item collection from the list-all endpoint.
func (d *Dashboard) Reload(ctx context.Context) error {
	items, err := d.client.ListItems(ctx)
	if err != nil {
		return d.fail(ctx, titleReloadFailed, err)
	}
	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.Load(items)
	})
	return nil
}

// Search runs the current query and tag selection on the server and replaces
// the collection with the result.
func (d *Dashboard) Search(ctx context.Context) error {
	release, err := d.acquire(keySearch)
	if err != nil {
		return d.fail(ctx, titleSearchFailed, err)
	}
	defer release()

	f := d.store.Snapshot().Filter
	items, err := d.client.SearchItems(ctx, f.Query, f.TagIDs)
	if err != nil {
		return d.fail(ctx, titleSearchFailed, err)
	}

	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.SetAll(items)
	})
	return nil
}

// SubmitAddItem creates an item from form. On success the item is prepended
// and the form is reset; on failure the form is left untouched.
func (d *Dashboard) SubmitAddItem(ctx context.Context, form *ItemForm) (models.Item, error) {
	if err := d.validator.Validate(form); err != nil {
		return models.Item{}, d.fail(ctx, titleAddItemFailed, err)
	}

	release, err := d.acquire(keyAddItem)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleAddItemFailed, err)
	}
	defer release()

	counts := inventory.SetQuantity(models.Item{Used: form.Used}, form.Quantity, inventory.OriginCreate)
	req := models.CreateItemRequest{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Quantity:    &counts.Quantity,
		Used:        &counts.Used,
		TagIDs:      form.tagIDs(),
	}

	created, err := d.client.CreateItem(ctx, req)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleAddItemFailed, err)
	}

	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.Add(created)
	})
	form.Reset()
	d.succeed(ctx, "Item added", fmt.Sprintf("%s was added to the inventory", created.Name))
	return created, nil
}

// SubmitEditItem saves form over the item with id.
func (d *Dashboard) SubmitEditItem(ctx context.Context, id string, form *ItemForm) (models.Item, error) {
	if err := d.validator.Validate(form); err != nil {
		return models.Item{}, d.fail(ctx, titleEditItemFailed, err)
	}

	release, err := d.acquire(keyEditItem + id)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleEditItemFailed, err)
	}
	defer release()

	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)
	quantity := inventory.OriginEdit.Clamp(form.Quantity)
	req := models.UpdateItemRequest{
		Name:        &name,
		Description: &description,
		Quantity:    &quantity,
		TagIDs:      form.tagIDs(),
	}

	updated, err := d.client.UpdateItem(ctx, id, req)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleEditItemFailed, err)
	}

	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.Replace(updated)
	})
	d.succeed(ctx, "Item updated", fmt.Sprintf("%s was updated", updated.Name))
	return updated, nil
}

// DeleteItem removes the item with id.
func (d *Dashboard) DeleteItem(ctx context.Context, id string) error {
	release, err := d.acquire(keyDeleteItem + id)
	if err != nil {
		return d.fail(ctx, titleDeleteItemFailed, err)
	}
	defer release()

	if err := d.client.DeleteItem(ctx, id); err != nil {
		return d.fail(ctx, titleDeleteItemFailed, err)
	}

	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.Remove(id)
	})
	d.succeed(ctx, "Item deleted", "the item was removed from the inventory")
	return nil
}

// Controls returns the stepper state of item id, with controls whose
// request is in flight disabled.
func (d *Dashboard) Controls(id string) (inventory.Controls, bool) {
	item, ok := d.store.Snapshot().Items.Find(id)
	if !ok {
		return inventory.Controls{}, false
	}
	c := inventory.ControlsFor(item)
	if d.Busy(keyQuantity + id) {
		c.QuantityDec, c.QuantityInc = false, false
	}
	if d.Busy(keyUsed + id) {
		c.UsedDec, c.UsedInc = false, false
	}
	return c, true
}

func (d *Dashboard) find(id string) (models.Item, error) {
	item, ok := d.store.Snapshot().Items.Find(id)
	if !ok {
		return models.Item{}, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return item, nil
}

// AdjustQuantity moves the item's quantity by delta. A step the controls
// do not allow is refused without a request.
func (d *Dashboard) AdjustQuantity(ctx context.Context, id string, delta int) (models.Item, error) {
	item, err := d.find(id)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleQuantityFailed, err)
	}

	controls := inventory.ControlsFor(item)
	target := item.Quantity + delta
	switch {
	case delta < 0 && !controls.QuantityDec:
		return models.Item{}, d.fail(ctx, titleQuantityFailed, &common.ValidationError{Message: "quantity cannot go below the used count"})
	case target < 0:
		return models.Item{}, d.fail(ctx, titleQuantityFailed, &common.ValidationError{Message: "quantity cannot be negative"})
	}

	release, err := d.acquire(keyQuantity + id)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleQuantityFailed, err)
	}
	defer release()

	updated, err := d.client.UpdateQuantity(ctx, id, target)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleQuantityFailed, err)
	}

	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.Replace(updated)
	})
	d.succeed(ctx, "Quantity updated", fmt.Sprintf("%s: %d in stock", updated.Name, updated.Quantity))
	return updated, nil
}

// AdjustUsed moves the item's used count by delta.
func (d *Dashboard) AdjustUsed(ctx context.Context, id string, delta int) (models.Item, error) {
	item, err := d.find(id)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleUsedFailed, err)
	}

	controls := inventory.ControlsFor(item)
	target := item.Used + delta
	switch {
	case delta > 0 && !controls.UsedInc:
		return models.Item{}, d.fail(ctx, titleUsedFailed, &common.ValidationError{Message: "every unit is already in use"})
	case delta < 0 && !controls.UsedDec:
		return models.Item{}, d.fail(ctx, titleUsedFailed, &common.ValidationError{Message: "no units are in use"})
	case target < 0:
		return models.Item{}, d.fail(ctx, titleUsedFailed, &common.ValidationError{Message: "used count cannot be negative"})
	}

	release, err := d.acquire(keyUsed + id)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleUsedFailed, err)
	}
	defer release()

	updated, err := d.client.UpdateUsedQuantity(ctx, id, target)
	if err != nil {
		return models.Item{}, d.fail(ctx, titleUsedFailed, err)
	}

	d.store.UpdateItems(func(c inventory.Collection) inventory.Collection {
		return c.Replace(updated)
	})
	d.succeed(ctx, "Quantity updated", fmt.Sprintf("%s: %d of %d in use", updated.Name, updated.Used, updated.Quantity))
	return updated, nil
}

// CreateTag validates form against the known tags and creates the tag.
// Invalid names never reach the network.
func (d *Dashboard) CreateTag(ctx context.Context, form *TagForm) (models.Tag, error) {
	if err := d.store.Snapshot().Tags.ValidateNew(form.Name); err != nil {
		return models.Tag{}, d.fail(ctx, titleCreateTagFailed, err)
	}
	if err := d.validator.Validate(form); err != nil {
		return models.Tag{}, d.fail(ctx, titleCreateTagFailed, err)
	}

	release, err := d.acquire(keyAddTag)
	if err != nil {
		return models.Tag{}, d.fail(ctx, titleCreateTagFailed, err)
	}
	defer release()

	tag, err := d.client.CreateTag(ctx, form.request())
	if err != nil {
		return models.Tag{}, d.fail(ctx, titleCreateTagFailed, err)
	}

	d.store.UpdateTags(func(r inventory.TagRegistry) inventory.TagRegistry {
		return r.Add(tag)
	})
	form.Reset()
	d.succeed(ctx, "Tag created", fmt.Sprintf("tag %s was created", tag.Name))
	return tag, nil
}

// DeleteTag deletes the tag, drops it from the active selection and reloads
// the collection so item tag snapshots no longer show it.
func (d *Dashboard) DeleteTag(ctx context.Context, id string) error {
	release, err := d.acquire(keyDeleteTag + id)
	if err != nil {
		return d.fail(ctx, titleDeleteTagFailed, err)
	}
	defer release()

	if err := d.client.DeleteTag(ctx, id); err != nil {
		return d.fail(ctx, titleDeleteTagFailed, err)
	}

	d.store.Update(func(s inventory.Snapshot) inventory.Snapshot {
		s.Tags = s.Tags.Remove(id)
		s.Filter = s.Filter.Deselect(id)
		return s
	})
	d.succeed(ctx, "Tag deleted", "the tag was removed")

	if err := d.Reload(ctx); err != nil {
		return fmt.Errorf("reload after tag delete: %w", err)
	}
	return nil
}

// SetQuery sets the local free-text filter.
func (d *Dashboard) SetQuery(q string) inventory.Snapshot {
	return d.store.UpdateFilter(func(f inventory.Filter) inventory.Filter { return f.WithQuery(q) })
}

// ToggleTag selects or deselects a tag in the local filter.
func (d *Dashboard) ToggleTag(id string) inventory.Snapshot {
	return d.store.UpdateFilter(func(f inventory.Filter) inventory.Filter { return f.Toggle(id) })
}

// ClearTags empties the tag selection.
func (d *Dashboard) ClearTags() inventory.Snapshot {
	return d.store.UpdateFilter(func(f inventory.Filter) inventory.Filter { return f.Clear() })
}

// Visible returns the filtered items.
func (d *Dashboard) Visible() []models.Item { return d.store.Snapshot().Visible() }

func (d *Dashboard) Items() []models.Item { return d.store.Snapshot().Items.Items() }

func (d *Dashboard) Tags() []models.Tag { return d.store.Snapshot().Tags.All() }

func (d *Dashboard) Snapshot() inventory.Snapshot { return d.store.Snapshot() }
