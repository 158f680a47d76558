package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathchallenge/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput for numeric answers. Only characters
// that can appear in a decimal number are accepted.
type AnswerInput struct {
	Model    textinput.Model
	verdict  *bool
	disabled bool
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages. Disabled inputs ignore keys.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if a.disabled {
			return a, nil
		}
		if text := kmsg.Text; text != "" && !isNumericText(text) {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func isNumericText(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == ',':
		default:
			return false
		}
	}
	return true
}

// View renders the input with a verdict mark once one is set.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.verdict != nil {
		if *a.verdict {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// SetVerdict marks the input correct or incorrect and disables editing.
func (a *AnswerInput) SetVerdict(correct bool) {
	a.verdict = &correct
	a.disabled = true
	a.Model.Blur()
}

// Disable stops the input from accepting keys.
func (a *AnswerInput) Disable() {
	a.disabled = true
	a.Model.Blur()
}

// Disabled reports whether the input ignores keys.
func (a AnswerInput) Disabled() bool {
	return a.disabled
}
