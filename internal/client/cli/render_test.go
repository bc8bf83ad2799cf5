package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/client/services"
	"github.com/stretchr/testify/assert"
)

var (
	renderTag  = models.Tag{ID: "tag-1", Name: "Cable", Color: "#3b82f6"}
	renderItem = models.Item{
		ID: "itm-1", Name: "LAN cable", Description: "2m, blue",
		Quantity: 5, Used: 2, Tags: []models.Tag{renderTag},
		DateAdded: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), AddedBy: "usr-1",
	}
)

func TestRenderItems(t *testing.T) {
	assert.Contains(t, RenderItems(nil, nil), "no items")

	controls := func(id string) (inventory.Controls, bool) {
		return inventory.ControlsFor(renderItem), true
	}
	out := RenderItems([]models.Item{renderItem}, controls)

	for _, want := range []string{"ID", "NAME", "FREE", "itm-1", "LAN cable", "Cable", "qty -+ used -+"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, " 3 ")
}

func TestRenderSteppers_DimsDisabled(t *testing.T) {
	out := renderSteppers(inventory.ControlsFor(models.Item{Quantity: 2, Used: 2}))
	assert.Equal(t, "qty ·+ used -·", out)
}

func TestRenderItem(t *testing.T) {
	out := RenderItem(renderItem)

	assert.Contains(t, out, "LAN cable")
	assert.Contains(t, out, "(itm-1)")
	assert.Contains(t, out, "2m, blue")
	assert.Contains(t, out, "quantity 5, used 2")
	assert.Contains(t, out, "added 2024-03-01 by usr-1")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRenderTags_MarksSelection(t *testing.T) {
	assert.Contains(t, RenderTags(nil, inventory.Filter{}), "no tags")

	other := models.Tag{ID: "tag-2", Name: "Tools"}
	out := RenderTags([]models.Tag{renderTag, other}, inventory.Filter{TagIDs: []string{"tag-2"}})
	lines := strings.Split(out, "\n")

	if assert.Len(t, lines, 2) {
		assert.True(t, strings.HasPrefix(lines[0], "  "))
		assert.True(t, strings.HasPrefix(lines[1], "* "))
		assert.Contains(t, lines[1], "tag-2")
	}
}

func TestNormalizeHex(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#3B82F6", "#3b82f6", true},
		{" #fff ", "#ffffff", true},
		{"3b82f6", "", false},
		{"#12345", "", false},
		{"#zzzzzz", "", false},
	}
	for _, c := range cases {
		got, ok := normalizeHex(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestBadgeForeground(t *testing.T) {
	assert.Equal(t, "#000000", badgeForeground("#ffffff"))
	assert.Equal(t, "#ffffff", badgeForeground("#000000"))
	assert.Equal(t, "#ffffff", badgeForeground("#3b82f6"))
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &writerNotifier{w: &buf}

	n.Notify(services.Notification{Title: "Item added", Description: "Drill was added"})
	n.Notify(services.Notification{Title: "Error", Destructive: true})

	assert.Equal(t, "Item added Drill was added\nError\n", buf.String())
}

func TestRenderDescription(t *testing.T) {
	assert.Empty(t, renderDescription("   "))

	out := renderDescription("Spare patch cables\n\nKeep them coiled.")
	assert.Contains(t, out, "Spare patch cables")
	assert.Contains(t, out, "Keep them coiled.")
	assert.False(t, strings.HasSuffix(out, "\n"))
}
