package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/willie/internal/tui/styles"
)

// TargetModel asks for the file or directory to work on.
type TargetModel struct {
	textInput textinput.Model
	action    string
	err       string
}

// NewTargetModel creates a path input prefilled with ".".
func NewTargetModel() TargetModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. ./src or contract.sol"
	ti.SetValue(".")
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 50
	ti.PromptStyle = styles.CursorStyle
	ti.TextStyle = styles.SelectedStyle

	return TargetModel{textInput: ti}
}

// SetAction records which action the path is for.
func (m *TargetModel) SetAction(name string) {
	m.action = name
}

func (m TargetModel) Action() string {
	return m.action
}

func (m TargetModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TargetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if _, err := m.ValidatedPath(); err != nil {
			m.err = err.Error()
		} else {
			m.err = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.err = ""
	return m, cmd
}

func (m TargetModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(appTitle))
	b.WriteString("\n\n")
	b.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("Action: %s", m.action)))
	b.WriteString("\n")
	b.WriteString("Enter a file or directory:\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter submit • esc back"))
	return b.String()
}

// ValidatedPath returns the trimmed path, or an error when it is empty.
func (m TargetModel) ValidatedPath() (string, error) {
	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		return "", errors.New("path is required")
	}
	return value, nil
}
