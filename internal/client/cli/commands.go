package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/client/services"
)

// Register prompts for email, name and password and creates an account.
// On success the new session is persisted and the user is signed in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	sess, err := a.session.Register(ctx, email, password, name)
	if err != nil {
		fmt.Fprintln(a.out, RenderNotification(services.Notification{Title: "Registration failed", Description: err.Error(), Destructive: true}))
		return err
	}

	fmt.Fprintln(a.out, RenderNotification(services.Notification{Title: "Welcome", Description: sess.Name}))
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	sess, err := a.session.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, RenderNotification(services.Notification{Title: "Login failed", Description: err.Error(), Destructive: true}))
		return err
	}

	fmt.Fprintln(a.out, RenderNotification(services.Notification{Title: "Signed in", Description: sess.Email}))
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Reload fetches items and tags again.
func (a *App) Reload(ctx context.Context) error {
	if err := a.dashboard.LoadInitial(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

// List prints the filtered items.
func (a *App) List(ctx context.Context) error {
	snap := a.dashboard.Snapshot()
	if snap.Filter.Query != "" || len(snap.Filter.TagIDs) > 0 {
		fmt.Fprintln(a.out, mutedStyle.Render(describeFilter(snap)))
	}
	fmt.Fprintln(a.out, RenderItems(snap.Visible(), a.dashboard.Controls))
	return nil
}

func describeFilter(snap inventory.Snapshot) string {
	var parts []string
	if snap.Filter.Query != "" {
		parts = append(parts, fmt.Sprintf("query %q", snap.Filter.Query))
	}
	for _, id := range snap.Filter.TagIDs {
		name := id
		if t, ok := snap.Tags.Find(id); ok {
			name = t.Name
		}
		parts = append(parts, "tag "+name)
	}
	return "filter: " + strings.Join(parts, ", ")
}

// Show prints one item.
func (a *App) Show(ctx context.Context, id string) error {
	it, ok := a.dashboard.Snapshot().Items.Find(id)
	if !ok {
		fmt.Fprintln(a.out, "Item not found:", id)
		return fmt.Errorf("item %s not found", id)
	}
	fmt.Fprintln(a.out, RenderItem(it))
	return nil
}

// Search asks the server for items matching the current filter.
func (a *App) Search(ctx context.Context) error {
	if err := a.dashboard.Search(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

// Filter sets the local text filter; an empty query clears it.
func (a *App) Filter(ctx context.Context, query string) error {
	a.dashboard.SetQuery(query)
	return a.List(ctx)
}

// ToggleTag selects or deselects a tag in the filter.
func (a *App) ToggleTag(ctx context.Context, id string) error {
	if _, ok := a.dashboard.Snapshot().Tags.Find(id); !ok {
		fmt.Fprintln(a.out, "Tag not found:", id)
		return fmt.Errorf("tag %s not found", id)
	}
	a.dashboard.ToggleTag(id)
	return a.List(ctx)
}

// ClearTags empties the tag selection.
func (a *App) ClearTags(ctx context.Context) error {
	a.dashboard.ClearTags()
	return a.List(ctx)
}

// Tags prints the tag registry.
func (a *App) Tags(ctx context.Context) error {
	snap := a.dashboard.Snapshot()
	fmt.Fprintln(a.out, RenderTags(snap.Tags.All(), snap.Filter))
	return nil
}

// AddItem runs the add-item dialog. After a failed submit the entered values
// become the defaults of the next add.
func (a *App) AddItem(ctx context.Context) error {
	form := a.pendingAdd
	if form == nil {
		form = services.NewItemForm()
	}
	if err := a.fillItemForm(form, inventory.OriginCreate); err != nil {
		return err
	}
	if _, err := a.dashboard.SubmitAddItem(ctx, form); err != nil {
		a.pendingAdd = form
		return a.hint(err)
	}
	a.pendingAdd = nil
	return a.List(ctx)
}

// EditItem runs the edit dialog prefilled from the item, or from the values
// of a failed edit of the same item.
func (a *App) EditItem(ctx context.Context, id string) error {
	it, ok := a.dashboard.Snapshot().Items.Find(id)
	if !ok {
		fmt.Fprintln(a.out, "Item not found:", id)
		return fmt.Errorf("item %s not found", id)
	}

	form, ok := a.pendingEdit[id]
	if !ok {
		form = services.EditItemForm(it)
	}
	if err := a.fillItemForm(form, inventory.OriginEdit); err != nil {
		return err
	}
	if _, err := a.dashboard.SubmitEditItem(ctx, id, form); err != nil {
		a.pendingEdit[id] = form
		return a.hint(err)
	}
	delete(a.pendingEdit, id)
	return a.List(ctx)
}

// fillItemForm prompts for every field of form. Empty answers keep the
// prefilled value.
func (a *App) fillItemForm(form *services.ItemForm, origin inventory.Origin) error {
	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", form.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		form.Name = name
	}

	description, err := getSimpleText(a.reader, fmt.Sprintf("Description [%s]", form.Description), a.out)
	if err != nil {
		return err
	}
	if description != "" {
		form.Description = description
	}

	q, err := getNumber(a.reader, "Quantity", form.Quantity, a.out)
	if err != nil {
		return err
	}
	form.SetQuantity(q, origin)

	if origin == inventory.OriginCreate {
		u, err := getNumber(a.reader, "Used", form.Used, a.out)
		if err != nil {
			return err
		}
		form.SetUsed(u)
	}

	tags := a.dashboard.Tags()
	if len(tags) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, RenderTags(tags, inventory.Filter{TagIDs: form.TagIDs}))
	ids, err := getSimpleText(a.reader, "Tag ids to toggle (space separated)", a.out)
	if err != nil {
		return err
	}
	for _, id := range strings.Fields(ids) {
		form.ToggleTag(id)
	}
	return nil
}

// DeleteItem deletes an item after confirmation.
func (a *App) DeleteItem(ctx context.Context, id string) error {
	ok, err := a.confirm(fmt.Sprintf("Delete item %s?", id))
	if err != nil || !ok {
		return err
	}
	if err := a.dashboard.DeleteItem(ctx, id); err != nil {
		return a.hint(err)
	}
	return nil
}

// AdjustQuantity steps the item's quantity.
func (a *App) AdjustQuantity(ctx context.Context, id string, delta int) error {
	if _, err := a.dashboard.AdjustQuantity(ctx, id, delta); err != nil {
		return a.hint(err)
	}
	return nil
}

// AdjustUsed steps the item's used count.
func (a *App) AdjustUsed(ctx context.Context, id string, delta int) error {
	if _, err := a.dashboard.AdjustUsed(ctx, id, delta); err != nil {
		return a.hint(err)
	}
	return nil
}

// AddTag runs the create-tag dialog, prefilled after a failed submit.
func (a *App) AddTag(ctx context.Context) error {
	form := a.pendingTag
	if form == nil {
		form = services.NewTagForm()
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Tag name [%s]", form.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		form.Name = name
	}

	color, err := getSimpleText(a.reader, fmt.Sprintf("Color [%s]", form.Color), a.out)
	if err != nil {
		return err
	}
	if color != "" {
		form.Color = color
	}

	if _, err := a.dashboard.CreateTag(ctx, form); err != nil {
		a.pendingTag = form
		return a.hint(err)
	}
	a.pendingTag = nil
	return nil
}

// DeleteTag deletes a tag after confirmation.
func (a *App) DeleteTag(ctx context.Context, id string) error {
	ok, err := a.confirm(fmt.Sprintf("Delete tag %s? It is removed from every item.", id))
	if err != nil || !ok {
		return err
	}
	if err := a.dashboard.DeleteTag(ctx, id); err != nil {
		return a.hint(err)
	}
	return a.List(ctx)
}

func (a *App) confirm(prompt string) (bool, error) {
	answer, err := getSimpleText(a.reader, prompt+" (y/N)", a.out)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// hint adds advice for errors the user can act on. The notification has
// already been printed by the dashboard.
func (a *App) hint(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		fmt.Fprintln(a.out, mutedStyle.Render("your session may have expired, try logout and login again"))
	}
	return err
}
