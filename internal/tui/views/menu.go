package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/willie/internal/tui/styles"
)

const appTitle = "Groundskeeper Willie"

// ActionItem is an entry in the main menu.
type ActionItem struct {
	Name        string
	Description string
}

// MenuModel lets the user pick what Willie should do.
type MenuModel struct {
	items  []ActionItem
	cursor int
}

// NewMenuModel creates a menu with the given actions.
func NewMenuModel(items []ActionItem) MenuModel {
	return MenuModel{items: items}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles key navigation in the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(appTitle))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render("What'll it be, laddie?"))
	b.WriteString("\n")

	for i, item := range m.items {
		cursor := "  "
		nameStyle := styles.HelpStyle
		if i == m.cursor {
			cursor = styles.CursorStyle.Render("> ")
			nameStyle = styles.SelectedStyle
		}
		fmt.Fprintf(&b, "%s%-6s  %s\n",
			cursor,
			nameStyle.Render(item.Name),
			styles.HelpStyle.Render(item.Description),
		)
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ navigate • enter select • q quit"))
	return b.String()
}

// Selected returns the highlighted action, or nil when the menu is empty.
func (m MenuModel) Selected() *ActionItem {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.cursor]
}

func (m MenuModel) Cursor() int {
	return m.cursor
}

func (m MenuModel) Items() []ActionItem {
	return m.items
}
