package services

import (
	"slices"
	"strings"

	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/common"
)

// ItemForm holds the fields of the add and edit item dialogs.
type ItemForm struct {
	Name        string   `json:"name" validate:"notblank,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Used        int      `json:"used" validate:"gte=0"`
	TagIDs      []string `json:"tagIds"`
}

// NewItemForm returns an empty add-item form: quantity 1, nothing used.
func NewItemForm() *ItemForm {
	return &ItemForm{Quantity: 1}
}

// EditItemForm returns a form prefilled from item.
func EditItemForm(item models.Item) *ItemForm {
	return &ItemForm{
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Used:        item.Used,
		TagIDs:      item.TagIDs(),
	}
}

// Reset restores the add-item defaults.
func (f *ItemForm) Reset() {
	*f = *NewItemForm()
}

// SetQuantity applies a quantity entered in the dialog and keeps used in range.
func (f *ItemForm) SetQuantity(q int, origin inventory.Origin) {
	f.apply(inventory.SetQuantity(f.counts(), q, origin))
}

// SetUsed applies a used count entered in the dialog, raising quantity if needed.
func (f *ItemForm) SetUsed(u int) {
	f.apply(inventory.SetUsed(f.counts(), u))
}

// ToggleTag adds or removes a tag id from the form's selection.
func (f *ItemForm) ToggleTag(id string) {
	if i := slices.Index(f.TagIDs, id); i >= 0 {
		f.TagIDs = slices.Delete(slices.Clone(f.TagIDs), i, i+1)
		return
	}
	f.TagIDs = append(slices.Clone(f.TagIDs), id)
}

func (f *ItemForm) counts() models.Item {
	return models.Item{Quantity: f.Quantity, Used: f.Used}
}

func (f *ItemForm) apply(it models.Item) {
	f.Quantity = it.Quantity
	f.Used = it.Used
}

func (f *ItemForm) tagIDs() []string {
	if f.TagIDs == nil {
		return []string{}
	}
	return slices.Clone(f.TagIDs)
}

// TagForm holds the fields of the create tag dialog.
type TagForm struct {
	Name  string `json:"name"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

func NewTagForm() *TagForm {
	return &TagForm{Color: common.DefaultTagColor}
}

func (f *TagForm) Reset() {
	*f = *NewTagForm()
}

func (f *TagForm) request() models.CreateTagRequest {
	color := strings.TrimSpace(f.Color)
	if color == "" {
		color = common.DefaultTagColor
	}
	return models.CreateTagRequest{Name: strings.TrimSpace(f.Name), Color: color}
}
