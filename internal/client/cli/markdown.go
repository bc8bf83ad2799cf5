package cli

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const descriptionWidth = 72

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
)

// renderDescription renders an item description as markdown. A fixed style is
// used so rendering never queries the terminal. Falls back to the raw text.
func renderDescription(md string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	mdOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("notty"),
			glamour.WithWordWrap(descriptionWidth),
		)
		if err == nil {
			mdRenderer = r
		}
	})
	if mdRenderer == nil {
		return md
	}
	out, err := mdRenderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
