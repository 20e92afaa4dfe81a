package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled is returned when the user leaves the prompt without submitting.
var ErrPromptCancelled = errors.New("input cancelled")

type promptModel struct {
	title     string
	input     textinput.Model
	styles    Styles
	value     string
	submitted bool
}

func newPromptModel(title, placeholder string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()
	return promptModel{title: title, input: ti, styles: DefaultStyles()}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.value = strings.TrimSpace(m.input.Value())
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted {
		return ""
	}
	return m.styles.Title.Render(m.title) + "\n\n" +
		m.styles.Prompt.Render("Channel URL: ") + m.input.View() + "\n\n" +
		m.styles.Faint.Render("enter: submit • esc: cancel") + "\n"
}

// Prompt asks for a channel URL on the terminal. The returned value is
// trimmed and may be empty.
func Prompt(ctx context.Context) (string, error) {
	m := newPromptModel("ytcatalog · YouTube channel video extractor", "https://www.youtube.com/@handle")
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(promptModel)
	if !ok || !fm.submitted {
		return "", ErrPromptCancelled
	}
	return fm.value, nil
}
