package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/studentdb/internal/theme"
)

// choiceState is the cursor over a fixed single-choice list.
type choiceState struct {
	items  []string
	cursor int
}

func newChoice(items []string, initial string) *choiceState {
	c := &choiceState{items: append([]string(nil), items...)}
	for i, it := range c.items {
		if it == initial {
			c.cursor = i
			break
		}
	}
	return c
}

// HandleKey moves the cursor and reports whether it moved. Wrapping follows
// the list ends.
func (c *choiceState) HandleKey(keyName string) bool {
	if c == nil || len(c.items) == 0 {
		return false
	}
	before := c.cursor
	switch keyName {
	case "k", "up", "shift+tab":
		c.cursor--
		if c.cursor < 0 {
			c.cursor = len(c.items) - 1
		}
	case "j", "down", "tab":
		c.cursor++
		if c.cursor >= len(c.items) {
			c.cursor = 0
		}
	case "home", "g":
		c.cursor = 0
	case "end", "G":
		c.cursor = len(c.items) - 1
	}
	return c.cursor != before
}

func (c *choiceState) Selected() string {
	if c == nil || len(c.items) == 0 {
		return ""
	}
	return c.items[c.cursor]
}

func renderChoice(c *choiceState, styles theme.Styles) string {
	if c == nil {
		return ""
	}
	lines := make([]string, 0, len(c.items))
	for i, it := range c.items {
		if i == c.cursor {
			lines = append(lines, styles.Cursor.Render("> "+it))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorSubtext0).Render("  "+it))
	}
	return strings.Join(lines, "\n")
}
