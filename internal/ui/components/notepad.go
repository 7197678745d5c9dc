package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/dmehra/learnly/internal/ui/theme"
)

// Notepad wraps bubbles/textarea for multi-line text (lesson notes,
// essay answers).
type Notepad struct {
	Model textarea.Model
}

// NewNotepad creates a multi-line editor preloaded with content.
func NewNotepad(placeholder, content string) Notepad {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.SetValue(content)
	ta.Focus()
	return Notepad{Model: ta}
}

// Init returns the initial command.
func (n Notepad) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (n Notepad) Update(msg tea.Msg) (Notepad, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the editor.
func (n Notepad) View() string {
	return n.Model.View()
}

// Value returns the current text.
func (n Notepad) Value() string {
	return n.Model.Value()
}

// StatusLine renders a save status below the editor.
func (n Notepad) StatusLine(status string, failed bool) string {
	if status == "" {
		return ""
	}
	if failed {
		return theme.Incorrect.Render(status)
	}
	return theme.Hint.Render(status)
}
