package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/client/services"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorAccent lipgloss.TerminalColor = ac("27", "62")
	colorDanger lipgloss.TerminalColor = ac("160", "203")
	colorOK     lipgloss.TerminalColor = ac("28", "78")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
)

// controlsFunc returns the stepper state of an item.
type controlsFunc func(id string) (inventory.Controls, bool)

// RenderItems renders items as a table. controls may be nil.
func RenderItems(items []models.Item, controls controlsFunc) string {
	if len(items) == 0 {
		return mutedStyle.Render("no items")
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		steppers := ""
		if controls != nil {
			if c, ok := controls(it.ID); ok {
				steppers = renderSteppers(c)
			}
		}
		rows = append(rows, []string{
			it.ID,
			it.Name,
			strconv.Itoa(it.Quantity),
			strconv.Itoa(it.Used),
			strconv.Itoa(it.Quantity - it.Used),
			renderBadges(it.Tags),
			steppers,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "NAME", "QTY", "USED", "FREE", "TAGS", "STEP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}

// renderSteppers shows qty-/qty+ and used-/used+ with disabled ones dimmed.
func renderSteppers(c inventory.Controls) string {
	step := func(label string, enabled bool) string {
		if !enabled {
			return mutedStyle.Render("·")
		}
		return label
	}
	return fmt.Sprintf("qty %s%s used %s%s",
		step("-", c.QuantityDec), step("+", c.QuantityInc),
		step("-", c.UsedDec), step("+", c.UsedInc))
}

// RenderItem renders the details of a single item.
func RenderItem(it models.Item) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(it.Name))
	b.WriteString(mutedStyle.Render(" (" + it.ID + ")"))
	b.WriteByte('\n')
	if d := renderDescription(it.Description); d != "" {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "quantity %d, used %d\n", it.Quantity, it.Used)
	if len(it.Tags) > 0 {
		b.WriteString(renderBadges(it.Tags))
		b.WriteByte('\n')
	}
	if !it.DateAdded.IsZero() {
		b.WriteString(mutedStyle.Render("added " + it.DateAdded.Format("2006-01-02")))
		if it.AddedBy != "" {
			b.WriteString(mutedStyle.Render(" by " + it.AddedBy))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderTags renders the registry, marking the tags selected in the filter.
func RenderTags(tags []models.Tag, f inventory.Filter) string {
	if len(tags) == 0 {
		return mutedStyle.Render("no tags")
	}
	lines := make([]string, 0, len(tags))
	for _, t := range tags {
		mark := "  "
		if f.Selected(t.ID) {
			mark = "* "
		}
		lines = append(lines, mark+RenderBadge(t)+mutedStyle.Render(" "+t.ID))
	}
	return strings.Join(lines, "\n")
}

func renderBadges(tags []models.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, RenderBadge(t))
	}
	return strings.Join(parts, " ")
}

// RenderBadge renders a tag name on its own color.
func RenderBadge(t models.Tag) string {
	st := lipgloss.NewStyle().Padding(0, 1)
	if bg, ok := normalizeHex(t.Color); ok {
		st = st.Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(badgeForeground(bg)))
	}
	return st.Render(t.Name)
}

// normalizeHex accepts "#rgb" and "#rrggbb" and returns the long form.
func normalizeHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToLower(h), true
}

// badgeForeground picks black or white text for a background color.
func badgeForeground(hex string) string {
	v, _ := strconv.ParseUint(hex[1:], 16, 32)
	r, g, b := float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)
	if 0.299*r+0.587*g+0.114*b > 150 {
		return "#000000"
	}
	return "#ffffff"
}

// RenderNotification renders a notification as a one-liner.
func RenderNotification(n services.Notification) string {
	title := successStyle.Render(n.Title)
	if n.Destructive {
		title = dangerStyle.Render(n.Title)
	}
	if n.Description == "" {
		return title
	}
	return title + " " + n.Description
}

// writerNotifier prints notifications to w, one per line.
type writerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func (n *writerNotifier) Notify(x services.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, RenderNotification(x))
}
